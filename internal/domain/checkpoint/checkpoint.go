package checkpoint

// Store holds the "from" timestamp that scopes the next poll request.
// The poll loop is the only writer and reader, one cycle at a time, so a
// plain field is enough (no locking discipline required).
type Store struct {
	current int64
}

// NewStore creates a store starting at initial (unix seconds).
func NewStore(initial int64) *Store {
	return &Store{current: initial}
}

// Current returns the timestamp the next poll request should start from.
func (s *Store) Current() int64 {
	return s.current
}

// Advance applies candidate only if it does not regress the store. Returns
// whether the candidate was applied.
func (s *Store) Advance(candidate int64) bool {
	if candidate < s.current {
		return false
	}
	s.current = candidate
	return true
}
