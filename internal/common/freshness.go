// Package common provides shared utilities for Ivy Portal
package common

import "time"

// Freshness TTLs for portal data, organized in two tiers:
//
// Tier 1, upstream facts: engine health and the client roster. Short
// TTL; re-fetched from the engine when stale.
//
// Tier 2, generated intelligence: wealth reports. A report stays
// valid until the client asks for a new one, but the stored draft is
// considered stale for display purposes after a day.
const (
	FreshnessHealth = 1 * time.Minute
	FreshnessRoster = 5 * time.Minute
	FreshnessReport = 24 * time.Hour
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
