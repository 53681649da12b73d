package badger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ivywealth/ivy-portal/internal/common"
	"github.com/ivywealth/ivy-portal/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// ErrDuplicateName is returned when saving a credential whose name is
// already taken. Callers surface it as a validation failure; the store
// is not modified.
var ErrDuplicateName = errors.New("credential name already exists")

// ErrInvalidCredential is returned when the name or key is missing.
var ErrInvalidCredential = errors.New("invalid credential")

// CredentialStore persists named engine API keys.
type CredentialStore struct {
	db     *BadgerDB
	logger *common.Logger
}

// NewCredentialStore creates a credential store backed by BadgerDB.
func NewCredentialStore(db *BadgerDB, logger *common.Logger) *CredentialStore {
	return &CredentialStore{
		db:     db,
		logger: logger,
	}
}

// Save stores a new named API key. Names are unique; saving a duplicate
// returns ErrDuplicateName and leaves the existing entry untouched.
func (s *CredentialStore) Save(_ context.Context, name, key string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCredential)
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: key is required", ErrInvalidCredential)
	}

	cred := models.Credential{
		Name:      name,
		Key:       key,
		CreatedAt: time.Now().UTC(),
	}
	err := s.db.Store().Insert(name, &cred)
	if err != nil {
		if err == badgerhold.ErrKeyExists {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		return fmt.Errorf("failed to save credential %s: %w", name, err)
	}
	return nil
}

// Get retrieves a credential by name.
func (s *CredentialStore) Get(_ context.Context, name string) (*models.Credential, error) {
	var cred models.Credential
	err := s.db.Store().Get(name, &cred)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("credential not found: %s", name)
		}
		return nil, fmt.Errorf("failed to get credential %s: %w", name, err)
	}
	return &cred, nil
}

// Delete removes a credential by name.
func (s *CredentialStore) Delete(_ context.Context, name string) error {
	err := s.db.Store().Delete(name, models.Credential{})
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete credential %s: %w", name, err)
	}
	return nil
}

// Names returns the stored credential names sorted alphabetically. Key
// material is never listed.
func (s *CredentialStore) Names(_ context.Context) ([]string, error) {
	var creds []models.Credential
	err := s.db.Store().Find(&creds, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}

	names := make([]string, 0, len(creds))
	for _, c := range creds {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names, nil
}
