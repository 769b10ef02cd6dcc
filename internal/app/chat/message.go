package chat

import (
	"time"

	"github.com/google/uuid"

	"roomchat/internal/app/user"
	"roomchat/internal/pkg/randx"
)

// Message is an immutable post inside a Room.
type Message struct {
	// ID is the unique identifier generated at creation.
	ID uuid.UUID `json:"id"`

	// Author is a shared handle to the User owned by the Store.
	Author *user.User `json:"author"`

	// Content is the message text. Emptiness is checked by the adapters.
	Content string `json:"content"`

	// Timestamp is the capture time of the message. A room raises it to its previous
	// message's timestamp when the wall clock has stepped back.
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage builds a message authored by author and stamped with the current time.
func NewMessage(author *user.User, content string) *Message {
	return &Message{
		ID:        randx.MessageID(),
		Author:    author,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
}

// Equal reports whether m and other are the same message.
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.ID == other.ID
}
