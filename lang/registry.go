package lang

import (
	"github.com/sasha-s/go-deadlock"
)

// IncludesSet accumulates include-directive spellings seen while parsing
// a translation unit, deduplicated by set membership and preserving
// first-seen order (spec.md §5: "Includes are recorded in first-seen
// order (deduplicated by set membership)").
//
// The driver is single-threaded per spec.md §5, but this is guarded with
// a deadlock-detecting mutex rather than left unsynchronized or wrapped
// in a plain sync.Mutex: it costs nothing on the single-threaded path and
// catches accidental re-entrant locking during development for free.
type IncludesSet struct {
	mu      deadlock.Mutex
	seen    map[string]bool
	ordered []string
}

// NewIncludesSet creates an empty IncludesSet.
func NewIncludesSet() *IncludesSet {
	return &IncludesSet{seen: make(map[string]bool)}
}

// Add records path, returning true if it had not been seen before.
func (s *IncludesSet) Add(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[path] {
		return false
	}
	s.seen[path] = true
	s.ordered = append(s.ordered, path)
	return true
}

// Paths returns the recorded includes in first-seen order.
func (s *IncludesSet) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ordered))
	copy(out, s.ordered)
	return out
}

// MetaClassRegistry is the set of identifiers known to name meta-class
// functions, populated once at startup by querying the evaluator
// subprocess (spec.md §4.5 "Startup handshake").
type MetaClassRegistry struct {
	mu    deadlock.Mutex
	names map[string]bool
}

// NewMetaClassRegistry creates an empty MetaClassRegistry.
func NewMetaClassRegistry() *MetaClassRegistry {
	return &MetaClassRegistry{names: make(map[string]bool)}
}

// Register records name as a known meta-class function.
func (r *MetaClassRegistry) Register(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[name] = true
}

// Has reports whether name is a known meta-class function.
func (r *MetaClassRegistry) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.names[name]
}

// Names returns all registered meta-class function names, in no
// particular order.
func (r *MetaClassRegistry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}
	return out
}
