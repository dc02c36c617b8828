package core

import (
	"fmt"
	"strings"
)

// Category is the fixed classification tag on a note.
type Category string

const (
	CategoryGeneral  Category = "General"
	CategoryPersonal Category = "Personal"
	CategoryWork     Category = "Work"
	CategoryIdeas    Category = "Ideas"
	CategoryUrgent   Category = "Urgent"
)

// Categories returns the fixed set in display order.
func Categories() []Category {
	return []Category{
		CategoryGeneral,
		CategoryPersonal,
		CategoryWork,
		CategoryIdeas,
		CategoryUrgent,
	}
}

// Valid reports whether c is a member of the fixed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryPersonal, CategoryWork, CategoryIdeas, CategoryUrgent:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory resolves a user-supplied name (case-insensitive) to a
// member of the fixed set.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}
