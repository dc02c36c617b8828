package core_test

import (
	"encoding/json"
	"testing"

	"github.com/jotvault/jot/pkg/core"
)

func TestParseCategory(t *testing.T) {
	t.Run("Resolves Case-Insensitively", func(t *testing.T) {
		c, err := core.ParseCategory("work")
		if err != nil {
			t.Fatalf("ParseCategory failed: %v", err)
		}
		if c != core.CategoryWork {
			t.Errorf("expected Work, got %s", c)
		}
	})

	t.Run("Rejects Unknown Names", func(t *testing.T) {
		if _, err := core.ParseCategory("Archive"); err == nil {
			t.Error("expected error for unknown category")
		}
	})
}

func TestCategoryValid(t *testing.T) {
	for _, c := range core.Categories() {
		if !c.Valid() {
			t.Errorf("%s should be valid", c)
		}
	}
	if core.Category("").Valid() {
		t.Error("empty category should not be valid")
	}
	if core.Category("general").Valid() {
		t.Error("validity check is case-sensitive by design")
	}
}

func TestNoteRoundTrip(t *testing.T) {
	n := core.Note{
		ID:        "abc",
		Title:     "Groceries",
		Content:   "buy milk",
		Category:  core.CategoryPersonal,
		UpdatedAt: 100,
		Favorite:  true,
	}

	data, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var out core.Note
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if out != n {
		t.Errorf("round trip mismatch: %+v != %+v", out, n)
	}
}
