package memory

import (
	"sync"

	"github.com/varsha-bot/varsha/internal/model/chat"
)

// Service keeps a bounded rolling conversation history per user. Memory is
// scoped to the person, not the chat they message from.
type Service struct {
	mu        sync.RWMutex
	histories map[int64][]chat.Turn
	limit     int
}

// NewService bootstraps the in-memory history store. The limit counts
// conversational round-trips, so each user retains at most 2*limit turns.
func NewService(limit int) *Service {
	if limit < 1 {
		limit = 1
	}
	return &Service{
		histories: make(map[int64][]chat.Turn),
		limit:     limit,
	}
}

// History returns a copy of the user's turns, oldest first. A user with no
// history gets an empty slice, never an error.
func (s *Service) History(userID int64) []chat.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.histories[userID]
	copied := make([]chat.Turn, len(turns))
	copy(copied, turns)
	return copied
}

// AppendExchange adds one user/assistant pair to the tail and evicts the
// oldest pairs until the history fits the cap again. Append and truncation
// happen under one lock so concurrent exchanges for the same user never
// interleave half-written pairs.
func (s *Service) AppendExchange(userID int64, userTurn, assistantTurn chat.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := append(s.histories[userID], userTurn, assistantTurn)
	if max := 2 * s.limit; len(turns) > max {
		turns = append([]chat.Turn(nil), turns[len(turns)-max:]...)
	}
	s.histories[userID] = turns
}
