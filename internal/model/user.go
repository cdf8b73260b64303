// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents an account in the system. Users are created lazily the
// first time a username is seen ("get-or-create") and are never deleted.
//
// Username is the external lookup key and is case-sensitive: "Ana" and "ana"
// are two different users. We still generate our own internal string ID (xid)
// so notes reference a stable identity rather than a display name.
//
// Statuses is the user's status vocabulary. Every mutation (add/remove)
// persists the whole snapshot, so the stored vocabulary always matches what
// the user last saw. Invariant: at least one entry at all times after
// creation.
type User struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	Statuses  StatusVocabulary `json:"statuses"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewUser builds a user with the default status vocabulary. The repository
// assigns ID and timestamps on save.
func NewUser(username string) *User {
	return &User{
		Username: username,
		Statuses: DefaultStatuses(),
	}
}
