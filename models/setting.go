package models

import "time"

// Well-known setting keys.
const (
	SettingProspectList = "prospect_list"
)

// Setting is a key/value row for small operator-owned blobs, such as
// the raw pasted prospect list text.
type Setting struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
