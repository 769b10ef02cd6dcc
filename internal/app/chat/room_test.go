package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"roomchat/internal/app/user"
)

func TestNewRoom_SkipsDuplicateInitialMembers(t *testing.T) {
	req := require.New(t)
	alice := user.New("alice")

	room := NewRoom("lobby", alice, alice, nil)

	req.Equal("lobby", room.Name)
	req.Len(room.Members(), 1)
	req.Empty(room.Messages())
}

func TestRoom_AddMember(t *testing.T) {
	req := require.New(t)
	alice := user.New("alice")
	bob := user.New("bob")
	room := NewRoom("lobby", alice)

	req.NoError(room.AddMember(bob))
	req.ErrorIs(room.AddMember(bob), ErrAlreadyMember)
	req.ErrorIs(room.AddMember(nil), ErrUserNotFound)

	members := room.Members()
	req.Len(members, 2)
	req.Equal(alice, members[0])
	req.Equal(bob, members[1])
}

func TestRoom_IsMember_UsesIdentity(t *testing.T) {
	req := require.New(t)
	alice := user.New("alice")
	room := NewRoom("lobby", alice)

	impostor := user.New("alice")
	sameIdentity := &user.User{ID: alice.ID, Username: alice.Username}

	req.True(room.IsMember(alice))
	req.True(room.IsMember(sameIdentity))
	req.False(room.IsMember(impostor))
}

func TestRoom_RemoveMember_KeepsPastMessages(t *testing.T) {
	req := require.New(t)
	alice := user.New("alice")
	bob := user.New("bob")
	room := NewRoom("lobby", alice, bob)

	_, err := room.Post(bob, "before leaving")
	req.NoError(err)

	req.NoError(room.RemoveMember(bob))
	req.ErrorIs(room.RemoveMember(bob), ErrNotAMember)
	req.False(room.IsMember(bob))

	_, err = room.Post(bob, "after leaving")
	req.ErrorIs(err, ErrAuthorNotMember)

	messages := room.Messages()
	req.Len(messages, 1)
	req.Equal("before leaving", messages[0].Content)
	req.Equal(bob, messages[0].Author)
}

func TestRoom_AppendMessage_RejectsNonMember(t *testing.T) {
	req := require.New(t)
	alice := user.New("alice")
	stranger := user.New("stranger")
	room := NewRoom("lobby", alice)

	err := room.AppendMessage(NewMessage(stranger, "hello"))
	req.ErrorIs(err, ErrAuthorNotMember)
	req.ErrorIs(err, ErrNotAMember)
	req.ErrorIs(room.AppendMessage(nil), ErrAuthorNotMember)

	req.NoError(room.AppendMessage(NewMessage(alice, "hello")))
	req.Len(room.Messages(), 1)
}

func TestRoom_Post_KeepsArrivalOrderAndTimestamps(t *testing.T) {
	req := require.New(t)
	alice := user.New("alice")
	room := NewRoom("lobby", alice)

	for _, content := range []string{"one", "two", "three"} {
		_, err := room.Post(alice, content)
		req.NoError(err)
	}

	messages := room.Messages()
	req.Len(messages, 3)
	req.Equal("one", messages[0].Content)
	req.Equal("two", messages[1].Content)
	req.Equal("three", messages[2].Content)

	for i := 1; i < len(messages); i++ {
		req.False(messages[i].Timestamp.Before(messages[i-1].Timestamp))
	}
}

func TestRoom_TimestampsNeverGoBackwards(t *testing.T) {
	req := require.New(t)
	alice := user.New("alice")
	room := NewRoom("lobby", alice)

	// a message stamped before the wall clock stepped back
	ahead := NewMessage(alice, "from the future")
	ahead.Timestamp = time.Now().UTC().Add(time.Hour)
	req.NoError(room.AppendMessage(ahead))

	posted, err := room.Post(alice, "now")
	req.NoError(err)
	req.Equal(ahead.Timestamp, posted.Timestamp)

	stale := NewMessage(alice, "late")
	stale.Timestamp = time.Now().UTC().Add(-time.Hour)
	req.NoError(room.AppendMessage(stale))
	req.Equal(ahead.Timestamp, stale.Timestamp)

	messages := room.Messages()
	for i := 1; i < len(messages); i++ {
		req.False(messages[i].Timestamp.Before(messages[i-1].Timestamp))
	}
}

func TestRoom_Snapshots_AreStable(t *testing.T) {
	req := require.New(t)
	alice := user.New("alice")
	room := NewRoom("lobby", alice)

	_, err := room.Post(alice, "first")
	req.NoError(err)

	messages := room.Messages()
	members := room.Members()

	_, err = room.Post(alice, "second")
	req.NoError(err)
	req.NoError(room.AddMember(user.New("bob")))

	req.Len(messages, 1)
	req.Len(members, 1)
	req.Len(room.Messages(), 2)
	req.Equal(2, room.MemberCount())
}

func TestRoom_Summary(t *testing.T) {
	req := require.New(t)
	alice := user.New("alice")
	room := NewRoom("lobby", alice)

	summary := room.Summary()

	req.Equal(room.ID, summary.ID)
	req.Equal("lobby", summary.Name)
	req.Equal([]*user.User{alice}, summary.Users)
}

func TestMessage_Equal(t *testing.T) {
	req := require.New(t)
	alice := user.New("alice")

	first := NewMessage(alice, "test")
	second := NewMessage(alice, "test")

	req.Equal(alice, first.Author)
	req.Equal("test", first.Content)
	req.WithinDuration(time.Now(), first.Timestamp, time.Second)
	req.True(first.Equal(first))
	req.False(first.Equal(second))
	req.False(first.Equal(nil))
}
