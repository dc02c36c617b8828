package core

import "time"

// Note is the central entity of the domain.
// It represents a single user note identified by an opaque ID.
// It is agnostic to storage format (JSON file, SQL).
type Note struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Category  Category `json:"category"`
	UpdatedAt int64    `json:"updatedAt"` // Unix milliseconds, stamped on every committed save
	Favorite  bool     `json:"isFavorite"`
}

// Suggestion is a transient set of AI-proposed metadata for a draft.
// It is never persisted; fields are consumed once and discarded.
type Suggestion struct {
	Title    string   `json:"title"`
	Summary  string   `json:"summary"`
	Category Category `json:"category"` // empty when nothing was suggested
}

// Empty reports whether the suggestion carries no usable fields.
func (s Suggestion) Empty() bool {
	return s.Title == "" && s.Summary == "" && s.Category == ""
}

// Document is the payload handed to an Exporter. It carries exactly the
// fields a rendered export needs and nothing else.
type Document struct {
	Title     string
	Content   string
	Category  Category
	UpdatedAt int64 // Unix milliseconds
}

// Clock supplies the current time. Injected so tests can control
// UpdatedAt stamping deterministically.
type Clock func() time.Time
