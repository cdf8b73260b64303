// Package repository declares the persistence contracts the service layer
// programs against. The sqlite subpackage provides the real implementation;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/notasapp/notas/internal/model"
)

// UserRepository persists users together with their status vocabulary.
// Save operations store the whole vocabulary snapshot — there is no
// per-entry mutation at this level.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

// NoteRepository persists notes. The status column is a plain string copy —
// referential integrity against the owner's vocabulary is the service
// layer's job, not the store's.
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	GetByID(ctx context.Context, id string) (*model.Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error)
	ListByOwnerAndStatus(ctx context.Context, ownerID, status string) ([]model.Note, error)
	CountByOwnerAndStatus(ctx context.Context, ownerID, status string) (int, error)
	Update(ctx context.Context, note *model.Note) error
	Delete(ctx context.Context, id string) error
}
