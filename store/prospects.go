package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

// ProspectStore persists the raw pasted prospect text. The list is
// replaced wholesale on every save; parsing happens elsewhere.
type ProspectStore struct {
	DB *gorm.DB
}

func NewProspectStore(db *gorm.DB) *ProspectStore {
	return &ProspectStore{DB: db}
}

// LoadRaw returns the stored prospect text, or "" when none was saved yet.
func (s *ProspectStore) LoadRaw() (string, error) {
	var setting models.Setting
	err := s.DB.Where("key = ?", models.SettingProspectList).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", &models.StorageError{Op: "prospect load", Err: err}
	}
	return setting.Value, nil
}

// SaveRaw replaces the stored prospect text.
func (s *ProspectStore) SaveRaw(text string) error {
	setting := models.Setting{Key: models.SettingProspectList, Value: text}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return &models.StorageError{Op: "prospect save", Err: err}
	}
	return nil
}
