package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
)

// Category classifies a note.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryStudy    Category = "study"
	CategoryPersonal Category = "personal"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryWork, CategoryStudy, CategoryPersonal}

func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryStudy, CategoryPersonal:
		return true
	}
	return false
}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%q: %w", s, common.ErrInvalidCategory)
	}
	return c, nil
}

// Note is a single text note owned by one user.
type Note struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Category    Category   `json:"category"`
	DateAdded   time.Time  `json:"dateAdded"`
	DateUpdated *time.Time `json:"dateUpdated"`
}

func (n Note) GetID() string { return n.ID }

// NoteData is the input of a note creation. Content must be non-empty;
// that is checked by the caller.
type NoteData struct {
	Title    string
	Content  string
	Category Category
}

// NotePatch lists the fields an update replaces; nil fields stay as they are.
type NotePatch struct {
	Title    *string
	Content  *string
	Category *Category
}

// Apply merges p over n and returns the result.
func (p NotePatch) Apply(n Note) Note {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
	return n
}

// SortOrder orders notes by DateAdded.
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// Toggle flips the order.
func (o SortOrder) Toggle() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}
