package conversation

import (
	"sync"
)

// DefaultMaxTurns bounds per-user history to keep prompt sizes reasonable.
const DefaultMaxTurns = 20

// Store is an in-memory, process-lifetime mapping from user ID to that
// user's ordered turn history. Histories are created lazily on first
// append and never persisted: a restart starts every conversation fresh.
//
// Every operation serializes on the owning user's lock, so concurrent
// webhooks for the same user cannot interleave mid-mutation. Different
// users never contend with each other beyond the map lookup.
type Store struct {
	mu       sync.Mutex
	maxTurns int
	users    map[string]*history
}

type history struct {
	mu    sync.Mutex
	turns []Turn
}

// NewStore creates a Store retaining at most maxTurns turns per user.
// Non-positive values fall back to DefaultMaxTurns.
func NewStore(maxTurns int) *Store {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Store{
		maxTurns: maxTurns,
		users:    make(map[string]*history),
	}
}

func (s *Store) user(userID string) *history {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.users[userID]
	if !ok {
		h = &history{}
		s.users[userID] = h
	}
	return h
}

// Append adds a turn to the end of the user's history. When the history
// grows past the retention limit the oldest turns are dropped, keeping
// the most recent maxTurns in their original relative order.
func (s *Store) Append(userID string, turn Turn) {
	h := s.user(userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, turn)
	if len(h.turns) > s.maxTurns {
		h.turns = h.turns[len(h.turns)-s.maxTurns:]
	}
}

// PopLast removes the most recently appended turn for the user, if any.
// It exists to roll back a user turn whose submission failed.
func (s *Store) PopLast(userID string) {
	h := s.user(userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.turns) == 0 {
		return
	}
	h.turns = h.turns[:len(h.turns)-1]
}

// HistoryExcludingLast returns a copy of every turn except the most
// recent one. Seeding a model session with this slice lets the newest
// user turn be sent as the live message instead of duplicated context.
func (s *Store) HistoryExcludingLast(userID string) []Turn {
	h := s.user(userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.turns) <= 1 {
		return nil
	}
	out := make([]Turn, len(h.turns)-1)
	copy(out, h.turns[:len(h.turns)-1])
	return out
}

// History returns a copy of the user's full turn history.
func (s *Store) History(userID string) []Turn {
	h := s.user(userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len reports the number of turns currently retained for the user.
func (s *Store) Len(userID string) int {
	h := s.user(userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}
