package storage

import (
	"sync"

	"github.com/varlabz/ask-telegram-bot/internal/models"
)

// MemoryStorage holds the activation record in memory only. Useful for
// tests and local runs where persistence across restarts is not needed.
type MemoryStorage struct {
	mu     sync.RWMutex
	record models.ActivationRecord
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Current() models.ActivationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record
}

func (s *MemoryStorage) Activate(chatID int64, topicID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = models.ActivationRecord{ChatID: &chatID, TopicID: topicID}
	return nil
}

func (s *MemoryStorage) Deactivate() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = models.ActivationRecord{}
	return nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
