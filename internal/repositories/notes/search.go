package notes

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/models"
)

// Search keeps the notes whose title and content together contain every
// whitespace-separated word of query, ignoring case. A blank query keeps
// everything.
func Search(notes []models.Note, query string) []models.Note {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return notes
	}

	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		text := strings.ToLower(n.Title + " " + n.Content)
		match := true
		for _, w := range words {
			if !strings.Contains(text, w) {
				match = false
				break
			}
		}
		if match {
			out = append(out, n)
		}
	}
	return out
}

// SortByDateAdded returns a copy of notes ordered by DateAdded. Notes added
// at the same instant keep their relative order. Any order other than
// SortAsc sorts newest first.
func SortByDateAdded(notes []models.Note, order models.SortOrder) []models.Note {
	out := slices.Clone(notes)
	slices.SortStableFunc(out, func(a, b models.Note) int {
		if order == models.SortAsc {
			return a.DateAdded.Compare(b.DateAdded)
		}
		return b.DateAdded.Compare(a.DateAdded)
	})
	return out
}
