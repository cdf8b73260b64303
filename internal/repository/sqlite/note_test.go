package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/notasapp/notas/internal/apperror"
	"github.com/notasapp/notas/internal/model"
)

// newTestRepos wires both repositories over one in-memory database so notes
// can reference a real user row (owner_id carries a foreign key).
func newTestRepos(t *testing.T) (*UserRepo, *NoteRepo) {
	t.Helper()
	db := newTestDB(t)
	return NewUserRepo(db), NewNoteRepo(db)
}

func createTestNote(t *testing.T, notes *NoteRepo, ownerID, title, status string) *model.Note {
	t.Helper()
	note := &model.Note{OwnerID: ownerID, Title: title, Content: "content", Status: status}
	if err := notes.Create(context.Background(), note); err != nil {
		t.Fatalf("failed to create test note: %v", err)
	}
	return note
}

func TestNoteCreate(t *testing.T) {
	users, notes := newTestRepos(t)
	owner := createTestUser(t, users, "ana")

	note := &model.Note{
		OwnerID: owner.ID,
		Title:   "Buy milk",
		Content: "two liters",
		Status:  "Hecho",
	}
	if err := notes.Create(context.Background(), note); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if note.ID == "" {
		t.Error("Create() did not set note.ID")
	}
	if note.CreatedAt.IsZero() || note.UpdatedAt.IsZero() {
		t.Error("Create() did not set timestamps")
	}

	got, err := notes.GetByID(context.Background(), note.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Buy milk" || got.Status != "Hecho" || got.OwnerID != owner.ID {
		t.Errorf("stored note = %+v, want title/status/owner round-tripped", got)
	}
}

func TestNoteGetByID_NotFound(t *testing.T) {
	_, notes := newTestRepos(t)

	_, err := notes.GetByID(context.Background(), "missing")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestNoteListByOwner(t *testing.T) {
	users, notes := newTestRepos(t)
	ana := createTestUser(t, users, "ana")
	bob := createTestUser(t, users, "bob")

	createTestNote(t, notes, ana.ID, "first", "Hecho")
	createTestNote(t, notes, ana.ID, "second", "No hecho")
	createTestNote(t, notes, bob.ID, "other", "Hecho")

	got, err := notes.ListByOwner(context.Background(), ana.ID)
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ListByOwner() returned %d notes, want 2", len(got))
	}
	for _, n := range got {
		if n.OwnerID != ana.ID {
			t.Errorf("note %s owned by %s, want %s", n.ID, n.OwnerID, ana.ID)
		}
	}
}

func TestNoteListByOwner_Empty(t *testing.T) {
	users, notes := newTestRepos(t)
	owner := createTestUser(t, users, "ana")

	got, err := notes.ListByOwner(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("ListByOwner() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListByOwner() on empty store returned %d notes", len(got))
	}
}

func TestNoteListByOwnerAndStatus_ExactMatch(t *testing.T) {
	users, notes := newTestRepos(t)
	owner := createTestUser(t, users, "ana")

	createTestNote(t, notes, owner.ID, "done", "Hecho")
	createTestNote(t, notes, owner.ID, "pending", "No hecho")

	got, err := notes.ListByOwnerAndStatus(context.Background(), owner.ID, "Hecho")
	if err != nil {
		t.Fatalf("ListByOwnerAndStatus() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "done" {
		t.Fatalf("ListByOwnerAndStatus(Hecho) = %v, want the single done note", got)
	}

	// Exact comparison: a lowercase query must not match "Hecho".
	got, err = notes.ListByOwnerAndStatus(context.Background(), owner.ID, "hecho")
	if err != nil {
		t.Fatalf("ListByOwnerAndStatus() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListByOwnerAndStatus(\"hecho\") = %d notes, want 0 (exact match)", len(got))
	}
}

func TestNoteCountByOwnerAndStatus(t *testing.T) {
	users, notes := newTestRepos(t)
	owner := createTestUser(t, users, "ana")

	createTestNote(t, notes, owner.ID, "a", "Hecho")
	createTestNote(t, notes, owner.ID, "b", "Hecho")
	createTestNote(t, notes, owner.ID, "c", "No hecho")

	count, err := notes.CountByOwnerAndStatus(context.Background(), owner.ID, "Hecho")
	if err != nil {
		t.Fatalf("CountByOwnerAndStatus() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestNoteUpdate(t *testing.T) {
	users, notes := newTestRepos(t)
	owner := createTestUser(t, users, "ana")
	note := createTestNote(t, notes, owner.ID, "draft", "En proceso")

	before := note.UpdatedAt

	note.Title = "final"
	note.Status = "Hecho"
	if err := notes.Update(context.Background(), note); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := notes.GetByID(context.Background(), note.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "final" || got.Status != "Hecho" {
		t.Errorf("updated note = %+v", got)
	}
	if got.UpdatedAt.Before(before) {
		t.Error("Update() did not refresh UpdatedAt")
	}
	if !got.CreatedAt.Equal(note.CreatedAt) {
		t.Error("Update() changed CreatedAt")
	}
}

func TestNoteUpdate_NotFound(t *testing.T) {
	_, notes := newTestRepos(t)

	ghost := &model.Note{ID: "missing", Title: "x", Status: "Hecho"}
	err := notes.Update(context.Background(), ghost)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestNoteDelete(t *testing.T) {
	users, notes := newTestRepos(t)
	owner := createTestUser(t, users, "ana")
	note := createTestNote(t, notes, owner.ID, "bye", "Hecho")

	if err := notes.Delete(context.Background(), note.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := notes.GetByID(context.Background(), note.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}

	if err := notes.Delete(context.Background(), note.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
