package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
	"github.com/varlabz/ask-telegram-bot/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// PostgresStorage keeps the activation record in a single-row table, for
// deployments where a shared database is preferred over a local file.
type PostgresStorage struct {
	mu     sync.RWMutex
	db     *sql.DB
	record models.ActivationRecord
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	storage := &PostgresStorage{db: db}

	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	record, err := storage.loadRecord()
	if err != nil {
		return nil, fmt.Errorf("error loading activation record: %w", err)
	}
	storage.record = record.Normalize()

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	return nil
}

func (s *PostgresStorage) loadRecord() (models.ActivationRecord, error) {
	query := `SELECT chat_id, topic_id FROM activation WHERE id = 1`

	var record models.ActivationRecord
	err := s.db.QueryRow(query).Scan(&record.ChatID, &record.TopicID)
	if err == sql.ErrNoRows {
		return models.ActivationRecord{}, nil
	}
	if err != nil {
		return models.ActivationRecord{}, err
	}

	return record, nil
}

func (s *PostgresStorage) Current() models.ActivationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record
}

func (s *PostgresStorage) Activate(chatID int64, topicID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := models.ActivationRecord{ChatID: &chatID, TopicID: topicID}
	if err := s.saveRecord(record); err != nil {
		return err
	}
	s.record = record
	return nil
}

func (s *PostgresStorage) Deactivate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := models.ActivationRecord{}
	if err := s.saveRecord(record); err != nil {
		return err
	}
	s.record = record
	return nil
}

func (s *PostgresStorage) saveRecord(record models.ActivationRecord) error {
	query := `
		INSERT INTO activation (id, chat_id, topic_id, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id) DO UPDATE
		SET chat_id = $1, topic_id = $2, updated_at = NOW()`

	if _, err := s.db.Exec(query, record.ChatID, record.TopicID); err != nil {
		return fmt.Errorf("error saving activation record: %w", err)
	}

	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
