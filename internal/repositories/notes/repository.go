// Package notes is the Note Store: every user's notes kept as one
// serialized array under the "notes" key.
//
// Operations address notes by id across the whole collection. Ownership is
// not checked here; that is left to the caller.
package notes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/collection"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/kv"
	"github.com/dmitrijs2005/notekeeper/internal/timex"
)

// Key is the substrate key of the notes collection.
const Key = "notes"

type Repository struct {
	store kv.Store
	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

type Option func(*Repository)

func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(r *Repository) { r.newID = newID }
}

func NewRepository(store kv.Store, opts ...Option) *Repository {
	r := &Repository{
		store: store,
		now:   time.Now,
		newID: models.NewID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) load(ctx context.Context) (*collection.Collection[models.Note], error) {
	c, err := collection.Load[models.Note](ctx, r.store, Key)
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	return c, nil
}

func (r *Repository) save(ctx context.Context, c *collection.Collection[models.Note]) error {
	if err := c.Save(ctx, r.store, Key); err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	return nil
}

// ListForUser returns the notes of userID in storage order.
func (r *Repository) ListForUser(ctx context.Context, userID string) ([]models.Note, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Filter(func(n models.Note) bool { return n.UserID == userID }), nil
}

// ListForUserAndCategory narrows ListForUser to one category.
func (r *Repository) ListForUserAndCategory(ctx context.Context, userID string, category models.Category) ([]models.Note, error) {
	c, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return c.Filter(func(n models.Note) bool {
		return n.UserID == userID && n.Category == category
	}), nil
}

func (r *Repository) Get(ctx context.Context, noteID string) (models.Note, error) {
	c, err := r.load(ctx)
	if err != nil {
		return models.Note{}, err
	}
	n, ok := c.Get(noteID)
	if !ok {
		return models.Note{}, fmt.Errorf("get %s: %w", noteID, common.ErrNoteNotFound)
	}
	return n, nil
}

// Add appends a new note for userID. Content is not validated here.
func (r *Repository) Add(ctx context.Context, userID string, data models.NoteData) (models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.load(ctx)
	if err != nil {
		return models.Note{}, err
	}

	n := models.Note{
		ID:        r.newID(),
		UserID:    userID,
		Title:     data.Title,
		Content:   data.Content,
		Category:  data.Category,
		DateAdded: r.now().UTC(),
	}
	c.Append(n)

	if err := r.save(ctx, c); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

// Update merges patch over the note with noteID and stamps DateUpdated,
// even when the patch is empty.
func (r *Repository) Update(ctx context.Context, noteID string, patch models.NotePatch) (models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.load(ctx)
	if err != nil {
		return models.Note{}, err
	}

	n, ok := c.Get(noteID)
	if !ok {
		return models.Note{}, fmt.Errorf("update %s: %w", noteID, common.ErrNoteNotFound)
	}

	n = patch.Apply(n)
	stamp := timex.Max(r.now().UTC(), n.DateAdded)
	if n.DateUpdated != nil {
		stamp = timex.Max(stamp, *n.DateUpdated)
	}
	n.DateUpdated = &stamp
	c.Replace(noteID, n)

	if err := r.save(ctx, c); err != nil {
		return models.Note{}, err
	}
	return n, nil
}

// Delete removes the note with noteID. A missing id is not an error; the
// collection is written back either way.
func (r *Repository) Delete(ctx context.Context, noteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.load(ctx)
	if err != nil {
		return err
	}
	c.Remove(noteID)

	return r.save(ctx, c)
}
