package core

import "errors"

// Common errors.
var (
	ErrNotFound        = errors.New("note not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrSessionOpen     = errors.New("a draft is already open")
	ErrNoSession       = errors.New("no draft is open")
	ErrEmptyDraft      = errors.New("draft content is empty")
	ErrAssistBusy      = errors.New("an assistant request is already in flight")
	ErrNoAssistant     = errors.New("no assistant configured")
	ErrNoExporter      = errors.New("no exporter configured")
)
