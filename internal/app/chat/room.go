/*
Package chat contains the authoritative in-memory state of the chat system.

This file defines the Room struct, a named collection of members and posted messages.
A Room guards its own members and messages with its own lock, so work on one room
never waits on another. Membership is the gate for posting: the authorship check in
AppendMessage is the last line of defense and holds even when a Room is used directly.
*/
package chat

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"roomchat/internal/app/user"
	"roomchat/internal/pkg/randx"
)

// Room represents a single named chat room.
type Room struct {
	// ID is the unique identifier generated at creation.
	ID uuid.UUID

	// Name is unique among rooms of the Store and never changes.
	Name string

	// members in join order, without duplicates.
	members []*user.User

	// messages in arrival order. Append-only.
	messages []*Message

	// mu protects members and messages.
	mu sync.RWMutex
}

// NewRoom creates an empty Room. initialMembers are added in order, skipping duplicates;
// the Store uses it to publish a room that already contains its creator.
func NewRoom(name string, initialMembers ...*user.User) *Room {
	r := &Room{
		ID:   randx.RoomID(),
		Name: name,
	}

	for _, u := range initialMembers {
		if u != nil && !r.isMemberLocked(u) {
			r.members = append(r.members, u)
		}
	}

	return r
}

// IsMember reports whether u belongs to the room. Membership is compared by user ID.
func (r *Room) IsMember(u *user.User) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.isMemberLocked(u)
}

// isMemberLocked must be called with mu held (read or write).
func (r *Room) isMemberLocked(u *user.User) bool {
	return slices.ContainsFunc(r.members, u.Equal)
}

// AddMember appends u to the member list. Adding an existing member is an error.
func (r *Room) AddMember(u *user.User) error {
	if u == nil {
		return ErrUserNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isMemberLocked(u) {
		return ErrAlreadyMember
	}

	r.members = append(r.members, u)
	return nil
}

// RemoveMember drops u from the member list. Messages u already posted stay in the room.
func (r *Room) RemoveMember(u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isMemberLocked(u) {
		return ErrNotAMember
	}

	r.members = slices.DeleteFunc(r.members, u.Equal)
	return nil
}

// AppendMessage appends msg if its author is currently a member.
func (r *Room) AppendMessage(msg *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.appendMessageLocked(msg)
}

// Post builds a message from author and content and appends it.
// The message is stamped while the room lock is held.
func (r *Room) Post(author *user.User, content string) (*Message, error) {
	return r.post(author, content, nil)
}

// post appends a new message and, on success, hands it to notify before the room
// lock is released, so notify sees the messages of a room in arrival order.
func (r *Room) post(author *user.User, content string, notify func(*Message)) (*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg := NewMessage(author, content)
	if err := r.appendMessageLocked(msg); err != nil {
		return nil, err
	}

	if notify != nil {
		notify(msg)
	}

	return msg, nil
}

// appendMessageLocked never lets a timestamp go below the previous message's, even
// when the wall clock steps backwards.
func (r *Room) appendMessageLocked(msg *Message) error {
	if msg == nil || !r.isMemberLocked(msg.Author) {
		return ErrAuthorNotMember
	}

	if n := len(r.messages); n > 0 {
		if last := r.messages[n-1].Timestamp; msg.Timestamp.Before(last) {
			msg.Timestamp = last
		}
	}

	r.messages = append(r.messages, msg)
	return nil
}

// Members returns a snapshot of the member list in join order.
func (r *Room) Members() []*user.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.members) == 0 {
		return []*user.User{}
	}
	return slices.Clone(r.members)
}

// Messages returns a snapshot of the messages in arrival order.
// Later posts never appear in, or modify, a returned snapshot.
func (r *Room) Messages() []*Message {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.messages) == 0 {
		return []*Message{}
	}
	return slices.Clone(r.messages)
}

// MemberCount returns the current number of members.
func (r *Room) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.members)
}

// Summary is the read-only view of a room returned to adapters.
type Summary struct {
	ID    uuid.UUID    `json:"id"`
	Name  string       `json:"name"`
	Users []*user.User `json:"users"`
}

// Summary takes a consistent snapshot of the room's identity and members.
func (r *Room) Summary() Summary {
	return Summary{
		ID:    r.ID,
		Name:  r.Name,
		Users: r.Members(),
	}
}
