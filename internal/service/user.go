// Package service contains the business logic layer.
//
// Three services live here. UserService owns users and their status
// vocabularies; NoteService owns notes and their ownership checks; Guard
// owns nothing — it is the protocol between the other two, enforcing the
// invariant that every stored note's status is a current member of its
// owner's vocabulary. Mutations that read one aggregate and write the other
// must go through the Guard; everything else talks to the owning service
// directly.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/notasapp/notas/internal/apperror"
	"github.com/notasapp/notas/internal/model"
	"github.com/notasapp/notas/internal/repository"
)

// UserService handles business logic for users and their status
// vocabularies. It has no visibility into notes — the cross-aggregate rule
// (don't remove a status that notes still reference) is enforced by Guard,
// which callers must go through for removals.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// GetOrCreate looks a user up by username, creating them with the default
// status vocabulary on first sight. Usernames are case-sensitive and used
// exactly as given. Exactly one creation happens per never-before-seen
// username; subsequent calls return the stored user.
func (s *UserService) GetOrCreate(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("looking up user %q: %w", username, err)
	}

	user = model.NewUser(username)
	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user %q: %w", username, err)
	}

	s.logger.Info("user created",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// AddStatus adds a status name to the user's vocabulary, creating the user
// if needed. It returns false when the name is already present (exact
// match) — a no-op, not an error. The vocabulary snapshot is persisted only
// when it actually changed.
//
// The name is stored exactly as given: no trimming, no case folding.
func (s *UserService) AddStatus(ctx context.Context, username, name string) (bool, error) {
	user, err := s.GetOrCreate(ctx, username)
	if err != nil {
		return false, err
	}

	if !user.Statuses.Add(name) {
		return false, nil
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return false, fmt.Errorf("persisting statuses for %q: %w", username, err)
	}

	s.logger.Info("status added",
		slog.String("username", username),
		slog.String("status", name),
	)

	return true, nil
}

// RemoveStatus removes a status name from the user's vocabulary. It returns
// false when the name is absent or when it is the sole remaining entry.
//
// This is the vocabulary-level operation only. It cannot see whether notes
// still reference the name — callers must run Guard.RemoveStatus, which
// performs the reference check before delegating here.
func (s *UserService) RemoveStatus(ctx context.Context, username, name string) (bool, error) {
	user, err := s.GetOrCreate(ctx, username)
	if err != nil {
		return false, err
	}

	if !user.Statuses.Remove(name) {
		return false, nil
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return false, fmt.Errorf("persisting statuses for %q: %w", username, err)
	}

	s.logger.Info("status removed",
		slog.String("username", username),
		slog.String("status", name),
	)

	return true, nil
}

// ListStatuses returns the user's vocabulary in insertion order, creating
// the user with the defaults if they don't exist yet.
func (s *UserService) ListStatuses(ctx context.Context, username string) ([]string, error) {
	user, err := s.GetOrCreate(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.Statuses.List(), nil
}
