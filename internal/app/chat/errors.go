package chat

import (
	"errors"
	"fmt"
)

// Store and Room failures. They are ordinary outcomes, compared with errors.Is
// by the adapters and translated to wire errors there.
var (
	ErrAlreadyRegistered    = errors.New("username already registered")
	ErrUserNotFound         = errors.New("username not registered")
	ErrRoomNameTaken        = errors.New("room name already registered")
	ErrCreatorNotRegistered = errors.New("creator user not registered")
	ErrRoomNotFound         = errors.New("room name not registered")
	ErrAlreadyMember        = errors.New("user is already in the room")
	ErrNotAMember           = errors.New("user is not in the room")

	// ErrAuthorNotMember is returned by Room.AppendMessage. It wraps ErrNotAMember
	// so callers of Store.PostMessage only need to check the latter.
	ErrAuthorNotMember = fmt.Errorf("message author rejected: %w", ErrNotAMember)
)
