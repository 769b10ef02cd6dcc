/*
Package user contains the identity record shared by rooms and messages.

A User is created once by the chat Store and never mutated afterwards, so the same
pointer can be referenced from any number of rooms and messages.
*/
package user

import (
	"github.com/google/uuid"

	"roomchat/internal/pkg/randx"
)

// User represents a registered chat participant.
// Fields use JSON tags for serialization in REST responses and feed messages.
type User struct {
	// ID is the unique, server-generated identifier of the user.
	ID uuid.UUID `json:"id"`

	// Username is the process-wide unique name chosen at registration.
	Username string `json:"username"`
}

// New creates a User with a freshly generated ID.
func New(username string) *User {
	return &User{
		ID:       randx.UserID(),
		Username: username,
	}
}

// Equal reports whether u and other are the same identity.
// Identity is the ID; two users with the same username but different IDs are not equal.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return u.ID == other.ID
}
