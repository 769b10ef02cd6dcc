package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewError_FillsTemplate(t *testing.T) {
	req := require.New(t)

	err := NewError(ErrRoomNotFound, "lobby")

	req.Equal(ErrRoomNotFound, err.ID)
	req.Equal("Room with name lobby not found in server", err.Message)
	req.Equal(http.StatusNotFound, err.Status)
}

func TestNewError_WrapsCause(t *testing.T) {
	err := NewError(ErrUserAddToRoomConflict, "bob", "lobby", errors.New("already a member"))

	require.Equal(t, "Cannot add user bob to room lobby: already a member", err.Message)
	require.Equal(t, http.StatusConflict, err.Status)
}

func TestNewError_UnknownIDFallsBack(t *testing.T) {
	err := NewError("ERR__NOT_A_REAL_ID")

	require.Equal(t, ErrUnknown, err.ID)
	require.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestNewError_DoesNotMutateTemplate(t *testing.T) {
	req := require.New(t)

	first := NewError(ErrUserNotFound, "alice")
	second := NewError(ErrUserNotFound, "bob")

	req.Contains(first.Message, "alice")
	req.Contains(second.Message, "bob")
	req.Equal("User with username %s not found in server", errorMap[ErrUserNotFound].Message)
}

func TestCustomError_JSONShape(t *testing.T) {
	req := require.New(t)

	body, err := json.Marshal(NewError(ErrUserAlreadyExists, "alice"))
	req.NoError(err)

	req.JSONEq(`{"error_id":"ERR__USER_ALREADY_EXISTS","error_message":"User with username alice already exists in server"}`, string(body))
}

func TestIs(t *testing.T) {
	req := require.New(t)

	wrapped := fmt.Errorf("calling server: %w", NewError(ErrUserNotFound, "ghost"))

	req.True(Is(wrapped, ErrUserNotFound))
	req.False(Is(wrapped, ErrRoomNotFound))
	req.False(Is(errors.New("plain"), ErrUserNotFound))
}
