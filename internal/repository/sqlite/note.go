package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/notasapp/notas/internal/apperror"
	"github.com/notasapp/notas/internal/model"
	"github.com/notasapp/notas/internal/repository"
)

// compile-time check that *NoteRepo implements repository.NoteRepository
var _ repository.NoteRepository = (*NoteRepo)(nil)

// NoteRepo persists notes in the notes table.
type NoteRepo struct {
	conn *sql.DB
}

// NewNoteRepo returns a note repository backed by db's connection pool.
func NewNoteRepo(db *DB) *NoteRepo {
	return &NoteRepo{conn: db.conn}
}

// Create inserts a new note. ID and timestamps are assigned here, modifying
// the caller's struct in place. The status string is stored exactly as
// given — membership in the owner's vocabulary is checked upstream.
func (r *NoteRepo) Create(ctx context.Context, note *model.Note) error {
	note.ID = xid.New().String()

	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO notes (id, owner_id, title, content, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		note.ID,
		note.OwnerID,
		note.Title,
		note.Content,
		note.Status,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting note: %w", err)
	}

	return nil
}

// GetByID retrieves a single note by its ID.
// Returns apperror.ErrNotFound if the note doesn't exist.
func (r *NoteRepo) GetByID(ctx context.Context, id string) (*model.Note, error) {
	var n model.Note

	err := r.conn.QueryRowContext(ctx,
		`SELECT id, owner_id, title, content, status, created_at, updated_at
		 FROM notes WHERE id = ?`,
		id,
	).Scan(
		&n.ID,
		&n.OwnerID,
		&n.Title,
		&n.Content,
		&n.Status,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("note", id)
		}
		return nil, fmt.Errorf("sqlite: getting note %s: %w", id, err)
	}

	return &n, nil
}

// ListByOwner returns all of an owner's notes, newest first.
func (r *NoteRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Note, error) {
	return r.list(ctx,
		`SELECT id, owner_id, title, content, status, created_at, updated_at
		 FROM notes WHERE owner_id = ?
		 ORDER BY created_at DESC`,
		ownerID)
}

// ListByOwnerAndStatus returns the owner's notes carrying exactly the given
// status, newest first. The comparison is exact TEXT equality — the same
// semantics as the vocabulary membership check.
func (r *NoteRepo) ListByOwnerAndStatus(ctx context.Context, ownerID, status string) ([]model.Note, error) {
	return r.list(ctx,
		`SELECT id, owner_id, title, content, status, created_at, updated_at
		 FROM notes WHERE owner_id = ? AND status = ?
		 ORDER BY created_at DESC`,
		ownerID, status)
}

func (r *NoteRepo) list(ctx context.Context, query string, args ...any) ([]model.Note, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing notes: %w", err)
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(
			&n.ID, &n.OwnerID, &n.Title, &n.Content, &n.Status,
			&n.CreatedAt, &n.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning note row: %w", err)
		}
		notes = append(notes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating notes: %w", err)
	}

	return notes, nil
}

// CountByOwnerAndStatus reports how many of the owner's notes reference the
// given status. The removal guard uses this to veto deleting a status that
// is still in use.
func (r *NoteRepo) CountByOwnerAndStatus(ctx context.Context, ownerID, status string) (int, error) {
	var count int
	err := r.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notes WHERE owner_id = ? AND status = ?`,
		ownerID, status,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting notes for status %q: %w", status, err)
	}
	return count, nil
}

// Update persists the note's title, content and status, refreshing
// updated_at. owner_id and created_at are immutable and never written.
// Returns apperror.ErrNotFound if the note doesn't exist.
func (r *NoteRepo) Update(ctx context.Context, note *model.Note) error {
	note.UpdatedAt = time.Now()

	result, err := r.conn.ExecContext(ctx,
		`UPDATE notes
		 SET title = ?, content = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		note.Title,
		note.Content,
		note.Status,
		note.UpdatedAt,
		note.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating note %s: %w", note.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("note", note.ID)
	}

	return nil
}

// Delete removes a note by its ID.
// Returns apperror.ErrNotFound if the note doesn't exist.
func (r *NoteRepo) Delete(ctx context.Context, id string) error {
	result, err := r.conn.ExecContext(ctx,
		`DELETE FROM notes WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting note %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("note", id)
	}

	return nil
}
