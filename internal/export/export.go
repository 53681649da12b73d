// Package export builds downloadable report artifacts.
package export

import (
	"encoding/json"
	"strings"
)

// filenameSuffix is appended to the sanitized client name.
const filenameSuffix = "_Wealth_Report.json"

// Filename derives the download filename from the client's display
// name. Runs of whitespace collapse to single underscores so the name
// survives Content-Disposition and filesystem handling.
func Filename(displayName string) string {
	fields := strings.Fields(displayName)
	if len(fields) == 0 {
		return "Client" + filenameSuffix
	}
	return strings.Join(fields, "_") + filenameSuffix
}

// Marshal serializes the export payload as indented JSON, matching the
// human-readable layout the dashboard download produces.
func Marshal(payload any) ([]byte, error) {
	return json.MarshalIndent(payload, "", "  ")
}
