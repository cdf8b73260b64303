package model

import "time"

// Note is a personal note tagged with one of its owner's status names.
//
// Status is stored by value — a plain string copy, not a foreign key. The
// integrity rule (a note's status is always a current member of the owner's
// vocabulary) is enforced by the service layer, not by this struct or the
// database schema.
//
// OwnerID never changes after creation. CreatedAt is set once; UpdatedAt is
// refreshed on every successful mutation of title, content, or status.
type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
