package medication

import (
	"sync"

	"github.com/medtrack/medtrack/internal/platform/fhir"
)

// TakenTracker holds the per-day taken state for one account's session: a
// medication-key to boolean mapping plus the date it belongs to. When the
// date moves past the stored marker the whole mapping is discarded and
// re-seeded from persisted administrations; there is no carry-forward.
type TakenTracker struct {
	mu    sync.Mutex
	date  string
	taken map[string]bool
}

func NewTakenTracker() *TakenTracker {
	return &TakenTracker{taken: make(map[string]bool)}
}

// rollover discards the mapping when today differs from the stored date.
// Callers must hold t.mu.
func (t *TakenTracker) rollover(today string) {
	if t.date != today {
		t.date = today
		t.taken = make(map[string]bool)
	}
}

// Seed resolves the taken state of every key not yet present in the mapping
// against the persisted administrations. Keys already present keep their
// in-session value, so an unmark is not overwritten by the persisted record
// it intentionally left behind.
func (t *TakenTracker) Seed(today string, keys []string, admins []fhir.MedicationAdministration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover(today)
	for _, key := range keys {
		if _, ok := t.taken[key]; !ok {
			t.taken[key] = TakenOn(key, today, admins)
		}
	}
}

// Mark records the key as taken for today.
func (t *TakenTracker) Mark(today, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover(today)
	t.taken[key] = true
}

// Unmark clears the in-session taken flag. The persisted administration, if
// one was appended, stays in the store.
func (t *TakenTracker) Unmark(today, key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover(today)
	t.taken[key] = false
}

// Taken reports the in-session taken state for the key.
func (t *TakenTracker) Taken(today, key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover(today)
	return t.taken[key]
}

// Len returns the number of keys currently tracked. Mostly useful to tests
// asserting the date-rollover reset.
func (t *TakenTracker) Len(today string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover(today)
	return len(t.taken)
}

// TrackerSet hands out one TakenTracker per account and drops it when the
// session ends.
type TrackerSet struct {
	mu       sync.Mutex
	trackers map[string]*TakenTracker
}

func NewTrackerSet() *TrackerSet {
	return &TrackerSet{trackers: make(map[string]*TakenTracker)}
}

// Get returns the account's tracker, creating it on first use.
func (s *TrackerSet) Get(account string) *TakenTracker {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trackers[account]
	if !ok {
		t = NewTakenTracker()
		s.trackers[account] = t
	}
	return t
}

// Drop discards the account's tracker at logout.
func (s *TrackerSet) Drop(account string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.trackers, account)
}
