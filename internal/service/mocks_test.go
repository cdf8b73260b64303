package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/notasapp/notas/internal/apperror"
	"github.com/notasapp/notas/internal/model"
	"github.com/notasapp/notas/internal/repository"
)

// Hand-written in-memory mocks. They implement the repository interfaces so
// the services under test never touch SQLite; the sqlite package has its own
// tests against a real in-memory database.

type mockUserRepo struct {
	users   map[string]*model.User // keyed by username
	nextID  int
	creates int // how many Create calls happened
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.Username]; ok {
		return fmt.Errorf("mock: duplicate username %q", user.Username)
	}
	m.nextID++
	m.creates++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	stored.Statuses = append(model.StatusVocabulary(nil), user.Statuses...)
	m.users[user.Username] = &stored
	return nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, apperror.NotFound("user", username)
	}
	result := *user
	result.Statuses = append(model.StatusVocabulary(nil), user.Statuses...)
	return &result, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			result := *user
			result.Statuses = append(model.StatusVocabulary(nil), user.Statuses...)
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", id)
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	stored, ok := m.users[user.Username]
	if !ok {
		return apperror.NotFound("user", user.ID)
	}
	stored.Statuses = append(model.StatusVocabulary(nil), user.Statuses...)
	return nil
}

type mockNoteRepo struct {
	notes  map[string]*model.Note
	nextID int
}

func newMockNoteRepo() *mockNoteRepo {
	return &mockNoteRepo{notes: make(map[string]*model.Note)}
}

func (m *mockNoteRepo) Create(_ context.Context, note *model.Note) error {
	m.nextID++
	note.ID = fmt.Sprintf("note-%d", m.nextID)
	stored := *note
	m.notes[note.ID] = &stored
	return nil
}

func (m *mockNoteRepo) GetByID(_ context.Context, id string) (*model.Note, error) {
	note, ok := m.notes[id]
	if !ok {
		return nil, apperror.NotFound("note", id)
	}
	result := *note
	return &result, nil
}

func (m *mockNoteRepo) ListByOwner(_ context.Context, ownerID string) ([]model.Note, error) {
	result := []model.Note{}
	for _, n := range m.notes {
		if n.OwnerID == ownerID {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (m *mockNoteRepo) ListByOwnerAndStatus(_ context.Context, ownerID, status string) ([]model.Note, error) {
	result := []model.Note{}
	for _, n := range m.notes {
		if n.OwnerID == ownerID && n.Status == status {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (m *mockNoteRepo) CountByOwnerAndStatus(_ context.Context, ownerID, status string) (int, error) {
	count := 0
	for _, n := range m.notes {
		if n.OwnerID == ownerID && n.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockNoteRepo) Update(_ context.Context, note *model.Note) error {
	if _, ok := m.notes[note.ID]; !ok {
		return apperror.NotFound("note", note.ID)
	}
	stored := *note
	m.notes[note.ID] = &stored
	return nil
}

func (m *mockNoteRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.notes[id]; !ok {
		return apperror.NotFound("note", id)
	}
	delete(m.notes, id)
	return nil
}

var (
	_ repository.UserRepository = (*mockUserRepo)(nil)
	_ repository.NoteRepository = (*mockNoteRepo)(nil)
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestGuard wires the full service stack over mock repositories.
func newTestGuard(t *testing.T) (*Guard, *mockUserRepo, *mockNoteRepo) {
	t.Helper()
	userRepo := newMockUserRepo()
	noteRepo := newMockNoteRepo()
	logger := testLogger()
	users := NewUserService(userRepo, logger)
	notes := NewNoteService(noteRepo, logger)
	return NewGuard(users, notes, logger), userRepo, noteRepo
}
