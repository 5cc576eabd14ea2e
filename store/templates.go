package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

// TemplateStore keeps reusable campaign prompts keyed by
// case-insensitive name.
type TemplateStore struct {
	DB *gorm.DB
}

func NewTemplateStore(db *gorm.DB) *TemplateStore {
	return &TemplateStore{DB: db}
}

// List returns all templates, newest-saved names first. Overwriting an
// existing name keeps its position.
func (s *TemplateStore) List() ([]models.Template, error) {
	var items []models.Template
	if err := s.DB.Order("id DESC").Find(&items).Error; err != nil {
		return nil, &models.StorageError{Op: "template list", Err: err}
	}
	return items, nil
}

// Upsert saves a campaign prompt under name, overwriting in place when
// the name already exists. Returns the refreshed list.
func (s *TemplateStore) Upsert(name, prompt string) ([]models.Template, error) {
	name = strings.TrimSpace(name)
	prompt = strings.TrimSpace(prompt)
	if name == "" {
		return nil, models.NewValidationError("Template name is required")
	}
	if prompt == "" {
		return nil, models.NewValidationError("Campaign prompt is required")
	}

	key := strings.ToLower(name)
	var existing models.Template
	err := s.DB.Where("name_key = ?", key).First(&existing).Error
	switch {
	case err == nil:
		existing.Name = name
		existing.Prompt = prompt
		if err := s.DB.Save(&existing).Error; err != nil {
			return nil, &models.StorageError{Op: "template update", Err: err}
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := models.Template{Name: name, NameKey: key, Prompt: prompt}
		if err := s.DB.Create(&item).Error; err != nil {
			return nil, &models.StorageError{Op: "template create", Err: err}
		}
	default:
		return nil, &models.StorageError{Op: "template lookup", Err: err}
	}

	return s.List()
}

// Delete removes the template with the given name, if present, and
// returns the refreshed list. Deleting an unknown name is not an error.
func (s *TemplateStore) Delete(name string) ([]models.Template, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if err := s.DB.Where("name_key = ?", key).Delete(&models.Template{}).Error; err != nil {
		return nil, &models.StorageError{Op: "template delete", Err: err}
	}
	return s.List()
}
