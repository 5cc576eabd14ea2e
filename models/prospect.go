package models

// Prospect is a single outreach target parsed from the pasted list.
// Identity is the lower-cased email; Name may be empty.
type Prospect struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
