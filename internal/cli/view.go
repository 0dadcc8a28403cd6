package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/models"
)

const (
	dateLayout    = "2006-01-02 15:04"
	previewLength = 60
)

// noteLine is the one-line list form of n: id, category, date, title and
// the start of the content.
func noteLine(n models.Note) string {
	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	return fmt.Sprintf("%s  [%s]  %s  %s: %s",
		n.ID, n.Category, n.DateAdded.Local().Format(dateLayout), title, preview(n.Content))
}

func preview(content string) string {
	first, _, more := strings.Cut(content, "\n")
	r := []rune(first)
	if len(r) > previewLength {
		return string(r[:previewLength]) + "..."
	}
	if more {
		return first + " ..."
	}
	return first
}

func noteDetails(n models.Note) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:       %s\n", n.ID)
	fmt.Fprintf(&b, "Title:    %s\n", n.Title)
	fmt.Fprintf(&b, "Category: %s\n", n.Category)
	fmt.Fprintf(&b, "Added:    %s\n", n.DateAdded.Local().Format(dateLayout))
	if n.DateUpdated != nil {
		fmt.Fprintf(&b, "Updated:  %s\n", n.DateUpdated.Local().Format(dateLayout))
	}
	b.WriteString("\n")
	b.WriteString(n.Content)
	b.WriteString("\n")
	return b.String()
}
