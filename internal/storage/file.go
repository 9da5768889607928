package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/varlabz/ask-telegram-bot/internal/models"
	"go.uber.org/zap"
)

// DefaultStateFile is the conventional activation state file name.
const DefaultStateFile = ".bot-config.json"

// FileStorage keeps the activation record in a flat JSON file. Writes go
// through a temp file and rename so a crash never leaves a half-written
// state file behind.
type FileStorage struct {
	mu     sync.RWMutex
	path   string
	record models.ActivationRecord
	logger *zap.Logger
}

// NewFileStorage loads any previously persisted record from path. An
// absent or unparseable file is treated as an empty record, never an
// error.
func NewFileStorage(path string, logger *zap.Logger) *FileStorage {
	s := &FileStorage{
		path:   path,
		logger: logger,
	}
	s.record = s.load()
	return s
}

func (s *FileStorage) load() models.ActivationRecord {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read state file, starting deactivated",
				zap.Error(err),
				zap.String("path", s.path))
		}
		return models.ActivationRecord{}
	}

	var record models.ActivationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		s.logger.Warn("State file is not valid JSON, starting deactivated",
			zap.Error(err),
			zap.String("path", s.path))
		return models.ActivationRecord{}
	}

	return record.Normalize()
}

func (s *FileStorage) Current() models.ActivationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record
}

func (s *FileStorage) Activate(chatID int64, topicID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := models.ActivationRecord{ChatID: &chatID, TopicID: topicID}
	if err := s.save(record); err != nil {
		return err
	}
	s.record = record
	return nil
}

func (s *FileStorage) Deactivate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := models.ActivationRecord{}
	if err := s.save(record); err != nil {
		return err
	}
	s.record = record
	return nil
}

func (s *FileStorage) save(record models.ActivationRecord) error {
	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	return nil
}

func (s *FileStorage) Close() error {
	// Nothing to close for file storage
	return nil
}
