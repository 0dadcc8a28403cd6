package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/notes"
)

// NoteStore is the part of the Note Store the note service depends on.
type NoteStore interface {
	ListForUser(ctx context.Context, userID string) ([]models.Note, error)
	ListForUserAndCategory(ctx context.Context, userID string, category models.Category) ([]models.Note, error)
	Get(ctx context.Context, noteID string) (models.Note, error)
	Add(ctx context.Context, userID string, data models.NoteData) (models.Note, error)
	Update(ctx context.Context, noteID string, patch models.NotePatch) (models.Note, error)
	Delete(ctx context.Context, noteID string) error
}

// NoteQuery selects and orders the notes of a list screen. A nil Category
// lists every category.
type NoteQuery struct {
	Category *models.Category
	Search   string
	Order    models.SortOrder
}

// NoteService is what the presentation layer uses to work with notes.
// List never fails: a storage fault is logged and yields no notes. Every
// write reports its failure.
type NoteService interface {
	List(ctx context.Context, userID string, q NoteQuery) []models.Note
	Get(ctx context.Context, userID, noteID string) (models.Note, error)
	Add(ctx context.Context, userID string, data models.NoteData) (models.Note, error)
	Update(ctx context.Context, userID, noteID string, patch models.NotePatch) (models.Note, error)
	Delete(ctx context.Context, userID, noteID string) error
}

type noteService struct {
	notes            NoteStore
	log              logging.Logger
	enforceOwnership bool
}

// NewNoteService builds a NoteService. With enforceOwnership set, notes of
// other users are reported as not found by Get, Update and Delete.
func NewNoteService(notes NoteStore, log logging.Logger, enforceOwnership bool) NoteService {
	return &noteService{notes: notes, log: log, enforceOwnership: enforceOwnership}
}

func (s *noteService) List(ctx context.Context, userID string, q NoteQuery) []models.Note {
	var (
		list []models.Note
		err  error
	)
	if q.Category != nil {
		list, err = s.notes.ListForUserAndCategory(ctx, userID, *q.Category)
	} else {
		list, err = s.notes.ListForUser(ctx, userID)
	}
	if err != nil {
		s.log.Error(ctx, "list notes failed", "user_id", userID, "error", err)
		return []models.Note{}
	}

	list = notes.Search(list, q.Search)
	return notes.SortByDateAdded(list, q.Order)
}

// owned loads noteID and, when ownership is enforced, hides notes of other
// users behind ErrNoteNotFound.
func (s *noteService) owned(ctx context.Context, userID, noteID string) (models.Note, error) {
	n, err := s.notes.Get(ctx, noteID)
	if err != nil {
		return models.Note{}, err
	}
	if s.enforceOwnership && n.UserID != userID {
		s.log.Warn(ctx, "note owned by another user", "user_id", userID, "note_id", noteID)
		return models.Note{}, fmt.Errorf("note %s: %w", noteID, common.ErrNoteNotFound)
	}
	return n, nil
}

func (s *noteService) Get(ctx context.Context, userID, noteID string) (models.Note, error) {
	return s.owned(ctx, userID, noteID)
}

func (s *noteService) Add(ctx context.Context, userID string, data models.NoteData) (models.Note, error) {
	n, err := s.notes.Add(ctx, userID, data)
	if err != nil {
		s.log.Error(ctx, "add note failed", "user_id", userID, "error", err)
		return models.Note{}, err
	}
	s.log.Debug(ctx, "note added", "user_id", userID, "note_id", n.ID)
	return n, nil
}

func (s *noteService) Update(ctx context.Context, userID, noteID string, patch models.NotePatch) (models.Note, error) {
	if s.enforceOwnership {
		if _, err := s.owned(ctx, userID, noteID); err != nil {
			return models.Note{}, err
		}
	}

	n, err := s.notes.Update(ctx, noteID, patch)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			s.log.Error(ctx, "update note failed", "note_id", noteID, "error", err)
		}
		return models.Note{}, err
	}
	s.log.Debug(ctx, "note updated", "note_id", noteID)
	return n, nil
}

// Delete of an unknown id succeeds.
func (s *noteService) Delete(ctx context.Context, userID, noteID string) error {
	if s.enforceOwnership {
		n, err := s.notes.Get(ctx, noteID)
		switch {
		case errors.Is(err, common.ErrNotFound):
			// unknown id: the delete below is a no-op
		case err != nil:
			return err
		case n.UserID != userID:
			s.log.Warn(ctx, "note owned by another user", "user_id", userID, "note_id", noteID)
			return fmt.Errorf("note %s: %w", noteID, common.ErrNoteNotFound)
		}
	}

	if err := s.notes.Delete(ctx, noteID); err != nil {
		s.log.Error(ctx, "delete note failed", "note_id", noteID, "error", err)
		return err
	}
	s.log.Debug(ctx, "note deleted", "note_id", noteID)
	return nil
}
