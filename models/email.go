package models

import "time"

// Send outcomes recorded in history.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Draft is a generated email ready for review. To is either the exact
// recipient the prompt asked for or empty when the generation service
// refused to fabricate one. Subject and Body are never absent, only empty.
type Draft struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// IsComplete reports whether all fields required for a send are present.
func (d Draft) IsComplete() bool {
	return d.To != "" && d.Subject != "" && d.Body != ""
}

// SendRecord is one append-only history entry. Every send attempt gets
// exactly one record, failed attempts included. Records are never
// mutated or deleted.
type SendRecord struct {
	ID      uint      `gorm:"primarykey" json:"-"`
	SentAt  time.Time `gorm:"index;not null" json:"-"`
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Status  string    `gorm:"index;not null" json:"status"`
	Error   string    `json:"error"`
}

// Timestamp renders SentAt the way history consumers expect:
// UTC, second precision, trailing Z.
func (r SendRecord) Timestamp() string {
	return r.SentAt.UTC().Format("2006-01-02T15:04:05Z")
}
