package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/notasapp/notas/internal/apperror"
	"github.com/notasapp/notas/internal/model"
)

// Guard coordinates the two aggregates a note's status binds together: the
// owner's status vocabulary and the notes referencing vocabulary entries by
// value. It owns no storage of its own.
//
// The protocol it enforces:
//
//   - A note may only be created or retagged with a status currently in its
//     owner's vocabulary. The membership check happens before any write;
//     failure is InvalidStatus and nothing is persisted.
//   - A status may only be removed when no note of that owner references it.
//     The reference count is taken before the removal; failure is
//     StatusInUse and the vocabulary is untouched. Notes are never silently
//     migrated to another status — the user resolves the conflict.
//   - Removing the sole remaining status fails with LastStatus.
//
// Each of these is a read on one collection followed by a write on the
// other. A per-owner mutex is held across the whole sequence so a removal
// and a create racing on the same status name cannot both succeed and leave
// a note referencing a vocabulary entry that no longer exists. Invariants
// never span two owners, so there is no global lock.
type Guard struct {
	users  *UserService
	notes  *NoteService
	locks  keyedMutex
	logger *slog.Logger
}

// NewGuard creates a Guard over the two services.
func NewGuard(users *UserService, notes *NoteService, logger *slog.Logger) *Guard {
	return &Guard{
		users:  users,
		notes:  notes,
		logger: logger,
	}
}

// CreateNote validates status against the owner's current vocabulary and,
// only on membership, persists the note. The owner is created on first
// sight, per get-or-create semantics.
func (g *Guard) CreateNote(ctx context.Context, username, title, content, status string) (*model.Note, error) {
	unlock := g.locks.lock(username)
	defer unlock()

	user, err := g.users.GetOrCreate(ctx, username)
	if err != nil {
		return nil, err
	}

	if !user.Statuses.Contains(status) {
		return nil, apperror.InvalidStatus(status)
	}

	return g.notes.Create(ctx, user.ID, title, content, status)
}

// RetagNote moves an existing note to a new status. Membership is checked
// against the owner's vocabulary as it is now, not as it was when the note
// was created.
func (g *Guard) RetagNote(ctx context.Context, username, noteID, status string) (*model.Note, error) {
	unlock := g.locks.lock(username)
	defer unlock()

	user, err := g.users.GetOrCreate(ctx, username)
	if err != nil {
		return nil, err
	}

	if !user.Statuses.Contains(status) {
		return nil, apperror.InvalidStatus(status)
	}

	return g.notes.UpdateStatus(ctx, noteID, user.ID, status)
}

// AddStatus adds a status name to the owner's vocabulary. The returned bool
// is false for an exact-match duplicate (a no-op, not an error).
//
// Adding touches only the vocabulary, but it shares the per-owner lock so a
// concurrent removal cannot lose the snapshot write.
func (g *Guard) AddStatus(ctx context.Context, username, name string) (bool, error) {
	unlock := g.locks.lock(username)
	defer unlock()

	return g.users.AddStatus(ctx, username, name)
}

// RemoveStatus removes a status name from the owner's vocabulary, vetoing
// the removal while any of the owner's notes still reference the name.
func (g *Guard) RemoveStatus(ctx context.Context, username, name string) error {
	unlock := g.locks.lock(username)
	defer unlock()

	user, err := g.users.GetOrCreate(ctx, username)
	if err != nil {
		return err
	}

	if !user.Statuses.Contains(name) {
		return apperror.NotFound("status", name)
	}
	if len(user.Statuses) == 1 {
		return apperror.LastStatus(name)
	}

	count, err := g.notes.CountByOwnerAndStatus(ctx, user.ID, name)
	if err != nil {
		return err
	}
	if count > 0 {
		g.logger.Info("status removal vetoed",
			slog.String("username", username),
			slog.String("status", name),
			slog.Int("references", count),
		)
		return apperror.StatusInUse(name, count)
	}

	// Contains and the length check both passed under the lock, so the
	// vocabulary-level removal cannot return false here.
	_, err = g.users.RemoveStatus(ctx, username, name)
	return err
}

// DeleteNote removes a note. Deletion shares the per-owner lock: it changes
// the reference count a concurrent RemoveStatus may be reading.
func (g *Guard) DeleteNote(ctx context.Context, username, noteID string) error {
	unlock := g.locks.lock(username)
	defer unlock()

	user, err := g.users.GetOrCreate(ctx, username)
	if err != nil {
		return err
	}

	return g.notes.Delete(ctx, noteID, user.ID)
}

// keyedMutex hands out one mutex per key. Entries are kept for the process
// lifetime; the population is bounded by the number of distinct usernames
// seen, which is fine at this scale.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// lock acquires the mutex for key and returns its unlock function.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
