/*
Package randx provides identifier generation for users, rooms and messages.

All identifiers are random UUID v4 values.
*/
package randx

import (
	"github.com/google/uuid"
)

// UserID generates the identifier of a newly registered user.
func UserID() uuid.UUID {
	return uuid.New()
}

// RoomID generates the identifier of a newly created room.
func RoomID() uuid.UUID {
	return uuid.New()
}

// MessageID generates a standard UUID v4 to serve as a unique identifier for a message.
func MessageID() uuid.UUID {
	return uuid.New()
}
