package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/notasapp/notas/internal/apperror"
	"github.com/notasapp/notas/internal/model"
	"github.com/notasapp/notas/internal/repository"
)

// compile-time check that *UserRepo implements repository.UserRepository
var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo persists users in the users table. The status vocabulary is
// stored as a JSON array in a single TEXT column and written as a whole
// snapshot on every change.
type UserRepo struct {
	conn *sql.DB
}

// NewUserRepo returns a user repository backed by db's connection pool.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{conn: db.conn}
}

// Create inserts a new user. The caller's struct is modified in place:
// ID and timestamps are assigned here.
//
// The username column is UNIQUE, so a duplicate insert fails at the database
// level. The service layer looks up before creating and serializes per
// username, so in practice this only fires on misuse.
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	statuses, err := json.Marshal(user.Statuses)
	if err != nil {
		return fmt.Errorf("sqlite: encoding statuses for user %q: %w", user.Username, err)
	}

	_, err = r.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, statuses, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		user.ID,
		user.Username,
		string(statuses),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting user %q: %w", user.Username, err)
	}

	return nil
}

// GetByUsername retrieves a user by their case-sensitive username.
// Returns apperror.ErrNotFound if no such user exists.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getUser(ctx, `username = ?`, username)
}

// GetByID retrieves a user by their internal ID.
// Returns apperror.ErrNotFound if no such user exists.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getUser(ctx, `id = ?`, id)
}

func (r *UserRepo) getUser(ctx context.Context, where string, arg string) (*model.User, error) {
	var (
		u        model.User
		statuses string
	)

	err := r.conn.QueryRowContext(ctx,
		`SELECT id, username, statuses, created_at, updated_at
		 FROM users WHERE `+where,
		arg,
	).Scan(
		&u.ID,
		&u.Username,
		&statuses,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", arg)
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", arg, err)
	}

	if err := json.Unmarshal([]byte(statuses), &u.Statuses); err != nil {
		return nil, fmt.Errorf("sqlite: decoding statuses for user %q: %w", u.Username, err)
	}

	return &u, nil
}

// Update persists the user's current state, including the full vocabulary
// snapshot, and refreshes updated_at. Returns apperror.ErrNotFound if the
// user row no longer exists.
func (r *UserRepo) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now()

	statuses, err := json.Marshal(user.Statuses)
	if err != nil {
		return fmt.Errorf("sqlite: encoding statuses for user %q: %w", user.Username, err)
	}

	result, err := r.conn.ExecContext(ctx,
		`UPDATE users SET statuses = ?, updated_at = ? WHERE id = ?`,
		string(statuses),
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("user", user.ID)
	}

	return nil
}
