package storage

import "github.com/varlabz/ask-telegram-bot/internal/models"

// Storage holds the single activation record. Implementations must make
// Activate and Deactivate durable before returning, and Current must
// return a consistent snapshot safe for concurrent readers.
type Storage interface {
	Current() models.ActivationRecord
	Activate(chatID int64, topicID *int64) error
	Deactivate() error
	Close() error
}
