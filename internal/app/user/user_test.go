package user

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNew_GeneratesDistinctIDs(t *testing.T) {
	req := require.New(t)

	a := New("alice")
	b := New("alice")

	req.Equal("alice", a.Username)
	req.NotEqual(uuid.Nil, a.ID)
	req.NotEqual(a.ID, b.ID)
}

func TestEqual_ComparesByID(t *testing.T) {
	req := require.New(t)

	a := New("alice")
	sameID := &User{ID: a.ID, Username: "renamed"}
	sameName := New("alice")

	req.True(a.Equal(a))
	req.True(a.Equal(sameID))
	req.False(a.Equal(sameName))
	req.False(a.Equal(nil))

	var nilUser *User
	req.True(nilUser.Equal(nil))
}
