package models

import (
	"encoding/gob"
	"time"
)

func init() {
	gob.Register(Credential{})
}

// Credential is a named engine API key. Names are unique across the
// store; the key itself is never returned by listing endpoints.
type Credential struct {
	Name      string    `json:"name" badgerhold:"key"`
	Key       string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
