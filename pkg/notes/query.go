package notes

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jotvault/jot/pkg/core"
)

// Query describes a derived view of the collection. The zero value
// matches everything.
type Query struct {
	// Search matches as a case-insensitive substring of title or
	// content. Empty matches all.
	Search string

	// Category narrows to a single category. Empty means all.
	Category core.Category

	// FavoritesOnly narrows to favorited notes.
	FavoritesOnly bool

	// TitleGlob matches the title against a glob pattern
	// (doublestar syntax). Empty means all.
	TitleGlob string
}

// Stats are the aggregate counts derived from a collection.
type Stats struct {
	Total      int
	Favorites  int
	ByCategory map[core.Category]int
}

// Filter derives the ordered view of the collection for a query:
// matching notes sorted by UpdatedAt descending, ties broken by ID
// ascending for deterministic output. The input slice is not
// modified. Recomputation is cheap; callers re-run it on every
// keystroke rather than caching.
func Filter(collection []core.Note, q Query) []core.Note {
	term := strings.ToLower(q.Search)

	var out []core.Note
	for _, n := range collection {
		if q.Category != "" && n.Category != q.Category {
			continue
		}
		if q.FavoritesOnly && !n.Favorite {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(n.Title), term) &&
			!strings.Contains(strings.ToLower(n.Content), term) {
			continue
		}
		if q.TitleGlob != "" {
			ok, err := doublestar.Match(q.TitleGlob, n.Title)
			if err != nil || !ok {
				continue
			}
		}
		out = append(out, n)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt != out[j].UpdatedAt {
			return out[i].UpdatedAt > out[j].UpdatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Counts recomputes the aggregate stats for a collection.
func Counts(collection []core.Note) Stats {
	s := Stats{ByCategory: make(map[core.Category]int)}
	for _, n := range collection {
		s.Total++
		if n.Favorite {
			s.Favorites++
		}
		s.ByCategory[n.Category]++
	}
	return s
}
