/*
Package chat contains the authoritative in-memory state of the chat system.

This file defines the Store struct, the single process-wide registry of users and rooms.
It is the only component that validates across entities (uniqueness, existence,
membership) and the only one that adds users and rooms.

Locking is two-level. Store.mu guards the user and room maps; every Room guards its
own members and messages. Registration and room creation hold Store.mu for the whole
check-then-act span. Everything else holds Store.mu only long enough to resolve the
room and user handles, releases it, and continues under the room lock. Users and
rooms are never removed, so a resolved handle stays valid. No path waits on a room
lock while holding Store.mu.

A PostListener registered with OnPost runs under the room lock, right after the
append, so it observes each room's messages in the same order GetMessages returns them.
It must not block and must not call back into the Store.
*/
package chat

import (
	"sync"

	"roomchat/internal/app/user"
)

// Store holds every registered user and every room of the process.
type Store struct {
	// users is keyed by username.
	users map[string]*user.User

	// rooms is keyed by room name.
	rooms map[string]*Room

	// onPost is called for every accepted message. May be nil.
	onPost PostListener

	// mu protects concurrent access to the users and rooms maps and to onPost.
	mu sync.RWMutex
}

// PostListener receives every message accepted by PostMessage, together with the
// name of its room.
type PostListener func(roomName string, msg *Message)

// Stats is a point-in-time count of registered users and rooms.
type Stats struct {
	Users int `json:"users"`
	Rooms int `json:"rooms"`
}

// NewStore constructs an empty Store.
func NewStore() *Store {
	return &Store{
		users: make(map[string]*user.User),
		rooms: make(map[string]*Room),
	}
}

// RegisterUser creates a user named username.
// The user is visible to every lookup as soon as RegisterUser returns.
func (s *Store) RegisterUser(username string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return nil, ErrAlreadyRegistered
	}

	u := user.New(username)
	s.users[username] = u

	return u, nil
}

// OnPost sets the listener notified of accepted messages, replacing any previous one.
func (s *Store) OnPost(listener PostListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onPost = listener
}

// LookupUser retrieves a registered user by username.
func (s *Store) LookupUser(username string) (*user.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	return u, ok
}

// LookupRoom retrieves a room by name.
func (s *Store) LookupRoom(name string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[name]
	return r, ok
}

// CreateRoom creates a room named name with creatorUsername as its first member.
// The room is built with its creator before it is inserted, so no caller can ever
// observe it without members. On failure nothing is inserted and the name stays free.
func (s *Store) CreateRoom(name, creatorUsername string) (*Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[name]; ok {
		return nil, ErrRoomNameTaken
	}

	creator, ok := s.users[creatorUsername]
	if !ok {
		return nil, ErrCreatorNotRegistered
	}

	room := NewRoom(name, creator)
	s.rooms[name] = room

	return room, nil
}

// AddUserToRoom adds the user named username to the room named roomName.
func (s *Store) AddUserToRoom(roomName, username string) error {
	room, u, err := s.resolve(roomName, username)
	if err != nil {
		return err
	}

	return room.AddMember(u)
}

// PostMessage appends a message from username to the room named roomName and returns it
// with its generated ID and timestamp. The room re-checks membership itself.
func (s *Store) PostMessage(roomName, username, content string) (*Message, error) {
	room, author, err := s.resolve(roomName, username)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	listener := s.onPost
	s.mu.RUnlock()

	if listener == nil {
		return room.Post(author, content)
	}

	return room.post(author, content, func(msg *Message) {
		listener(roomName, msg)
	})
}

// GetMessages returns a snapshot of the room's messages in arrival order.
func (s *Store) GetMessages(roomName string) ([]*Message, error) {
	room, ok := s.LookupRoom(roomName)
	if !ok {
		return nil, ErrRoomNotFound
	}

	return room.Messages(), nil
}

// RoomMember returns the user named username if it is a member of the room named roomName.
func (s *Store) RoomMember(roomName, username string) (*user.User, error) {
	room, u, err := s.resolve(roomName, username)
	if err != nil {
		return nil, err
	}

	if !room.IsMember(u) {
		return nil, ErrNotAMember
	}

	return u, nil
}

// Stats returns the current number of users and rooms.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		Users: len(s.users),
		Rooms: len(s.rooms),
	}
}

// resolve looks up a room and a user under the read lock and releases it before
// returning. The room is checked first.
func (s *Store) resolve(roomName, username string) (*Room, *user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[roomName]
	if !ok {
		return nil, nil, ErrRoomNotFound
	}

	u, ok := s.users[username]
	if !ok {
		return nil, nil, ErrUserNotFound
	}

	return room, u, nil
}
