package chat

import (
	"errors"
	"sync"

	"github.com/varsha-bot/varsha/internal/model/persona"
)

// ErrUnknownPersona signals a Set attempt with a key missing from the registry.
var ErrUnknownPersona = errors.New("unknown persona")

// Service tracks which persona each chat has selected. Chats that never
// issued a persona command resolve to the configured default.
type Service struct {
	mu         sync.RWMutex
	selections map[int64]string
	registry   persona.Registry
	defaultKey string
}

// NewService bootstraps the in-memory persona selection store.
func NewService(registry persona.Registry, defaultKey string) *Service {
	return &Service{
		selections: make(map[int64]string),
		registry:   registry,
		defaultKey: defaultKey,
	}
}

// Get returns the persona key selected for the chat, or the default when unset.
func (s *Service) Get(chatID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if key, ok := s.selections[chatID]; ok {
		return key
	}
	return s.defaultKey
}

// Set records a persona selection for the chat. The store validates the key
// against the registry itself rather than trusting the caller.
func (s *Service) Set(chatID int64, key string) error {
	if _, ok := s.registry.Find(key); !ok {
		return ErrUnknownPersona
	}

	s.mu.Lock()
	s.selections[chatID] = key
	s.mu.Unlock()
	return nil
}
