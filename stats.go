package commsig

import "go.uber.org/atomic"

// ──────────────────────────────────────────────
// Engine Stats — observational counters
// ──────────────────────────────────────────────

// EngineStats counts responder activity. Counters are observational only
// and never influence a response.
type EngineStats struct {
	total      atomic.Int64
	noProfile  atomic.Int64
	byCategory map[Category]*atomic.Int64
}

// NewEngineStats creates zeroed counters for every category.
func NewEngineStats() *EngineStats {
	s := &EngineStats{
		byCategory: make(map[Category]*atomic.Int64, len(allCategories)),
	}
	for _, c := range allCategories {
		s.byCategory[c] = atomic.NewInt64(0)
	}
	return s
}

// record counts one classified message. The category map is fully
// populated at construction and never written again, so concurrent reads
// need no lock.
func (s *EngineStats) record(category Category, hasProfile bool) {
	s.total.Inc()
	if !hasProfile {
		s.noProfile.Inc()
	}
	if c, ok := s.byCategory[category]; ok {
		c.Inc()
	}
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	Total      int64              `json:"total"`
	NoProfile  int64              `json:"no_profile"`
	ByCategory map[Category]int64 `json:"by_category"`
}

// Snapshot copies the current counter values.
func (s *EngineStats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Total:      s.total.Load(),
		NoProfile:  s.noProfile.Load(),
		ByCategory: make(map[Category]int64, len(s.byCategory)),
	}
	for c, v := range s.byCategory {
		snap.ByCategory[c] = v.Load()
	}
	return snap
}
