package store

import (
	"time"

	"gorm.io/gorm"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 300
)

// HistoryStore is the append-only send log. Records are written once
// per send attempt and never mutated.
type HistoryStore struct {
	DB *gorm.DB
}

func NewHistoryStore(db *gorm.DB) *HistoryStore {
	return &HistoryStore{DB: db}
}

// Append records one send attempt. SentAt is stamped here, UTC at
// second precision.
func (s *HistoryStore) Append(to, subject, body, status, errMsg string) error {
	rec := models.SendRecord{
		SentAt:  time.Now().UTC().Truncate(time.Second),
		To:      to,
		Subject: subject,
		Body:    body,
		Status:  status,
		Error:   errMsg,
	}
	if err := s.DB.Create(&rec).Error; err != nil {
		return &models.StorageError{Op: "history append", Err: err}
	}
	return nil
}

// Read returns up to limit records, newest first. The limit is clamped
// to [1, 300]; zero or negative falls back to the default of 50.
func (s *HistoryStore) Read(limit int) ([]models.SendRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	var items []models.SendRecord
	if err := s.DB.Order("id DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, &models.StorageError{Op: "history read", Err: err}
	}
	return items, nil
}
