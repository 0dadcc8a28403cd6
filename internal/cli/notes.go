package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/services"
)

func usage(s string) error {
	return &formError{msg: "Usage: " + s}
}

// ListNotes switches the view to category (nil for every category), drops
// any search and prints the notes.
func (a *App) ListNotes(ctx context.Context, category *models.Category) error {
	a.category = category
	a.query = ""
	return a.printList(ctx)
}

// Search filters the current view. An empty query shows the whole view again.
func (a *App) Search(ctx context.Context, query string) error {
	a.query = query
	return a.printList(ctx)
}

// ToggleSort flips between newest-first and oldest-first.
func (a *App) ToggleSort(ctx context.Context) error {
	a.order = a.order.Toggle()
	if a.order == models.SortAsc {
		fmt.Fprintln(a.out, "Sorted oldest first")
	} else {
		fmt.Fprintln(a.out, "Sorted newest first")
	}
	return a.printList(ctx)
}

func (a *App) printList(ctx context.Context) error {
	list := a.noteService.List(ctx, a.userID(), services.NoteQuery{
		Category: a.category,
		Search:   a.query,
		Order:    a.order,
	})

	if len(list) == 0 {
		switch {
		case a.query != "":
			fmt.Fprintln(a.out, "No notes match your search")
		case a.category != nil:
			fmt.Fprintf(a.out, "No %s notes yet. Add one with: add %s\n", *a.category, *a.category)
		default:
			fmt.Fprintln(a.out, "No notes yet")
		}
		return nil
	}

	for _, n := range list {
		fmt.Fprintln(a.out, noteLine(n))
	}
	return nil
}

// AddNote creates a note. The category comes from the argument, then from
// the current view, then from a prompt.
func (a *App) AddNote(ctx context.Context, args []string) error {
	var f noteForm
	var err error

	switch {
	case len(args) > 0:
		f.Category = args[0]
	case a.category != nil:
		f.Category = string(*a.category)
	default:
		if f.Category, err = getSimpleText(a.reader, "Category (work, study, personal)", a.out); err != nil {
			return err
		}
	}
	if cat, err := models.ParseCategory(f.Category); err == nil {
		f.Category = string(cat)
	}

	if f.Title, err = getSimpleText(a.reader, "Title (optional)", a.out); err != nil {
		return err
	}
	if f.Content, err = getMultiline(a.reader, "Content", a.out); err != nil {
		return err
	}
	if err := checkForm(f); err != nil {
		return err
	}

	n, err := a.noteService.Add(ctx, a.userID(), models.NoteData{
		Title:    f.Title,
		Content:  f.Content,
		Category: models.Category(f.Category),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Note %s saved\n", n.ID)
	return nil
}

func (a *App) ShowNote(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("show <id>")
	}
	n, err := a.noteService.Get(ctx, a.userID(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, noteDetails(n))
	return nil
}

// EditNote shows the note and asks for each field; blank answers keep the
// current value.
func (a *App) EditNote(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("edit <id>")
	}
	n, err := a.noteService.Get(ctx, a.userID(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, noteDetails(n))

	f := noteForm{Title: n.Title, Content: n.Content, Category: string(n.Category)}
	var patch models.NotePatch

	title, err := getSimpleText(a.reader, "New title (blank to keep)", a.out)
	if err != nil {
		return err
	}
	if title != "" {
		f.Title = title
		patch.Title = &f.Title
	}

	content, err := getMultiline(a.reader, "New content (blank to keep)", a.out)
	if err != nil {
		return err
	}
	if content != "" {
		f.Content = content
		patch.Content = &f.Content
	}

	category, err := getSimpleText(a.reader, "New category (blank to keep)", a.out)
	if err != nil {
		return err
	}
	if category != "" {
		if cat, err := models.ParseCategory(category); err == nil {
			category = string(cat)
		}
		f.Category = category
	}

	if err := checkForm(f); err != nil {
		return err
	}
	if f.Category != string(n.Category) {
		cat := models.Category(f.Category)
		patch.Category = &cat
	}

	if _, err := a.noteService.Update(ctx, a.userID(), n.ID, patch); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Note updated")
	return nil
}

// DeleteNote asks for confirmation before deleting.
func (a *App) DeleteNote(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delete <id>")
	}
	if !confirm(a.reader, "Are you sure you want to delete this note?", a.out) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.noteService.Delete(ctx, a.userID(), args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Note deleted")
	return nil
}
