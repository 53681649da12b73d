// Package roster holds the in-memory client roster and its derived views.
package roster

import (
	"context"
	"sync"
	"time"

	"github.com/ivywealth/ivy-portal/internal/models"
)

// BannerFetchFailed is the canned message surfaced when a roster refresh
// fails. The previous list is retained.
const BannerFetchFailed = "Unable to reach the wealth engine. Showing previously loaded data."

// FetchFunc retrieves the full client list from the engine.
type FetchFunc func(ctx context.Context) ([]models.Client, error)

// Stats are the aggregates derived from the current roster. Recomputed
// whenever the source list changes; an empty roster yields zero values.
type Stats struct {
	TotalAUM      int64          `json:"total_aum"`
	AvgSharpe     float64        `json:"avg_sharpe"`
	AtRiskPct     float64        `json:"at_risk_pct"`
	OnTrackCount  int            `json:"on_track_count"`
	RiskHistogram map[string]int `json:"risk_histogram"`
}

// Store owns the client roster. The list is replaced wholesale on each
// successful refresh (no partial merge); a failed refresh retains the
// previous list and raises a single one-shot error banner.
// Thread-safe; concurrent refreshes are last-response-wins.
type Store struct {
	fetch FetchFunc

	mu         sync.RWMutex
	clients    []models.Client
	generation uint64
	fetchedAt  time.Time
	banner     string

	statsGen uint64
	stats    Stats
	statsOK  bool
}

// New creates an empty roster store backed by the given fetch function.
func New(fetch FetchFunc) *Store {
	return &Store{fetch: fetch}
}

// Refresh fetches the roster and replaces the list atomically. On failure
// the previous list is retained, the error banner is set (replacing any
// prior banner, never stacking), and the fetch error is returned.
func (s *Store) Refresh(ctx context.Context) error {
	clients, err := s.fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.banner = BannerFetchFailed
		return err
	}

	s.clients = clients
	s.generation++
	s.fetchedAt = time.Now()
	s.banner = ""
	return nil
}

// Clients returns a copy of the current roster.
func (s *Store) Clients() []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Client, len(s.clients))
	copy(out, s.clients)
	return out
}

// Filter returns the clients whose name or id contains the term,
// case-insensitive. An empty term returns the full roster.
func (s *Store) Filter(term string) []models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Client, 0, len(s.clients))
	for _, c := range s.clients {
		if c.Matches(term) {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the client with the given id, or false.
func (s *Store) Find(id string) (models.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.clients {
		if c.ID == id {
			return c, true
		}
	}
	return models.Client{}, false
}

// Aggregate returns the derived stats for the current roster. The result
// is memoized keyed on the list generation; an empty roster yields zero
// values rather than dividing by zero.
func (s *Store) Aggregate() Stats {
	s.mu.RLock()
	if s.statsOK && s.statsGen == s.generation {
		stats := cloneStats(s.stats)
		s.mu.RUnlock()
		return stats
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the write lock; another goroutine may have computed it.
	if s.statsOK && s.statsGen == s.generation {
		return cloneStats(s.stats)
	}

	stats := computeStats(s.clients)
	s.stats = stats
	s.statsGen = s.generation
	s.statsOK = true
	return cloneStats(stats)
}

// cloneStats copies the histogram map so callers never share the
// memoized copy, mirroring the copy Clients makes of the list.
func cloneStats(stats Stats) Stats {
	out := stats
	out.RiskHistogram = make(map[string]int, len(stats.RiskHistogram))
	for k, v := range stats.RiskHistogram {
		out.RiskHistogram[k] = v
	}
	return out
}

func computeStats(clients []models.Client) Stats {
	stats := Stats{RiskHistogram: make(map[string]int)}
	if len(clients) == 0 {
		return stats
	}

	var sharpeSum float64
	var atRisk int
	for _, c := range clients {
		stats.TotalAUM += c.PortfolioValue
		sharpeSum += c.EffectiveSharpe()
		switch c.Status {
		case models.StatusAtRisk:
			atRisk++
		case models.StatusOnTrack:
			stats.OnTrackCount++
		}
		stats.RiskHistogram[c.RiskTolerance]++
	}

	n := float64(len(clients))
	stats.AvgSharpe = sharpeSum / n
	stats.AtRiskPct = float64(atRisk) / n * 100
	return stats
}

// Banner returns the current one-shot error banner, if any.
func (s *Store) Banner() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.banner, s.banner != ""
}

// DismissBanner clears the error banner.
func (s *Store) DismissBanner() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.banner = ""
}

// Generation returns the roster list generation. Bumped on each
// successful refresh; useful as a memoization key.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// LastFetched returns the time of the last successful refresh.
func (s *Store) LastFetched() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}
