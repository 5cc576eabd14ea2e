package models

import "time"

// Template is a saved campaign prompt, keyed by case-insensitive name.
// Saving an existing name overwrites in place and keeps its list
// position; a new name lists first.
type Template struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	NameKey   string    `gorm:"uniqueIndex;not null" json:"-"` // lower-cased Name
	Prompt    string    `gorm:"not null" json:"prompt"`
}
