package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/notasapp/notas/internal/apperror"
	"github.com/notasapp/notas/internal/model"
	"github.com/notasapp/notas/internal/repository"
)

// NoteService handles business logic for notes: ownership checks and CRUD.
//
// It does not validate status membership — it cannot, having no view of the
// owner's vocabulary. Handlers must reach Create and UpdateStatus through
// Guard, which validates membership first. Title and content are accepted
// as-is; blank rejection is a transport concern.
type NoteService struct {
	repo   repository.NoteRepository
	logger *slog.Logger
}

// NewNoteService creates a new NoteService.
func NewNoteService(repo repository.NoteRepository, logger *slog.Logger) *NoteService {
	return &NoteService{
		repo:   repo,
		logger: logger,
	}
}

// Create persists a new note for ownerID. The status must already have been
// validated against the owner's vocabulary by the caller (Guard).
func (s *NoteService) Create(ctx context.Context, ownerID, title, content, status string) (*model.Note, error) {
	note := &model.Note{
		OwnerID: ownerID,
		Title:   title,
		Content: content,
		Status:  status,
	}

	if err := s.repo.Create(ctx, note); err != nil {
		s.logger.Error("failed to create note",
			slog.String("owner", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating note: %w", err)
	}

	s.logger.Info("note created",
		slog.String("id", note.ID),
		slog.String("owner", ownerID),
		slog.String("status", status),
	)

	return note, nil
}

// GetByID retrieves a note, verifying it belongs to ownerID.
// Returns ErrNotFound for a missing note and ErrForbidden for a note owned
// by someone else.
func (s *NoteService) GetByID(ctx context.Context, noteID, ownerID string) (*model.Note, error) {
	note, err := s.repo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.OwnerID != ownerID {
		return nil, apperror.OwnershipMismatch("note", noteID)
	}
	return note, nil
}

// ListByOwner returns all of the owner's notes, newest first.
func (s *NoteService) ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error) {
	notes, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list notes", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	return notes, nil
}

// ListByOwnerAndStatus returns the owner's notes filtered by exact status
// match. Filtering by a status absent from the vocabulary is allowed and
// simply yields an empty list.
func (s *NoteService) ListByOwnerAndStatus(ctx context.Context, ownerID, status string) ([]model.Note, error) {
	notes, err := s.repo.ListByOwnerAndStatus(ctx, ownerID, status)
	if err != nil {
		s.logger.Error("failed to list notes by status", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing notes by status: %w", err)
	}
	return notes, nil
}

// CountByOwnerAndStatus reports how many of the owner's notes carry status.
func (s *NoteService) CountByOwnerAndStatus(ctx context.Context, ownerID, status string) (int, error) {
	count, err := s.repo.CountByOwnerAndStatus(ctx, ownerID, status)
	if err != nil {
		return 0, fmt.Errorf("counting notes by status: %w", err)
	}
	return count, nil
}

// UpdateFields persists new title and content for an ownership-checked
// note, refreshing UpdatedAt. The status is left untouched — retagging goes
// through Guard.RetagNote.
func (s *NoteService) UpdateFields(ctx context.Context, noteID, ownerID, title, content string) (*model.Note, error) {
	note, err := s.GetByID(ctx, noteID, ownerID)
	if err != nil {
		return nil, err
	}

	note.Title = title
	note.Content = content

	if err := s.repo.Update(ctx, note); err != nil {
		s.logger.Error("failed to update note",
			slog.String("id", noteID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating note: %w", err)
	}

	s.logger.Info("note updated", slog.String("id", noteID))

	return note, nil
}

// UpdateStatus persists a new status for an ownership-checked note. The
// membership check against the owner's current vocabulary is the caller's
// (Guard's) responsibility.
func (s *NoteService) UpdateStatus(ctx context.Context, noteID, ownerID, status string) (*model.Note, error) {
	note, err := s.GetByID(ctx, noteID, ownerID)
	if err != nil {
		return nil, err
	}

	note.Status = status

	if err := s.repo.Update(ctx, note); err != nil {
		s.logger.Error("failed to retag note",
			slog.String("id", noteID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("retagging note: %w", err)
	}

	s.logger.Info("note retagged",
		slog.String("id", noteID),
		slog.String("status", status),
	)

	return note, nil
}

// Delete removes an ownership-checked note.
func (s *NoteService) Delete(ctx context.Context, noteID, ownerID string) error {
	if _, err := s.GetByID(ctx, noteID, ownerID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, noteID); err != nil {
		return err
	}

	s.logger.Info("note deleted", slog.String("id", noteID))
	return nil
}
