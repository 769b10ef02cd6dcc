package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"roomchat/internal/app/chat"
	"roomchat/internal/app/feed"
	"roomchat/internal/app/user"
	"roomchat/internal/configs"
	"roomchat/internal/pkg/errs"
	"roomchat/internal/pkg/limiter"
)

type testServer struct {
	*httptest.Server
	deps *AppDeps
}

func newTestServer(t *testing.T, lim *limiter.IPRateLimiter) *testServer {
	t.Helper()

	if lim == nil {
		lim = limiter.NewIPRateLimiter(rate.Inf, 1, time.Hour)
	}
	t.Cleanup(lim.Close)

	deps := &AppDeps{
		Store:   chat.NewStore(),
		Feed:    feed.NewHub(),
		Limiter: lim,
		Config:  &configs.AppConfig{Environment: "development", Host: "127.0.0.1", Port: 3030},
	}
	deps.Store.OnPost(deps.Feed.Publish)
	t.Cleanup(deps.Feed.Shutdown)

	srv := httptest.NewServer(Router(deps))
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, deps: deps}
}

// call sends a request and decodes the JSON answer into out when out is not nil.
func (s *testServer) call(t *testing.T, method, path string, body any, out any) int {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	request, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := s.Client().Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	require.Equal(t, "application/json", response.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(response.Body).Decode(out))
	}

	return response.StatusCode
}

// expectError asserts the status code and error id of a failed call.
func (s *testServer) expectError(t *testing.T, method, path string, body any, status int, id string) errs.CustomError {
	t.Helper()

	var apiErr errs.CustomError
	require.Equal(t, status, s.call(t, method, path, body, &apiErr))
	require.Equal(t, id, apiErr.ID)
	require.NotEmpty(t, apiErr.Message)

	return apiErr
}

func (s *testServer) register(t *testing.T, usernames ...string) {
	t.Helper()
	for _, username := range usernames {
		require.Equal(t, http.StatusCreated, s.call(t, http.MethodPost, "/users/"+username, nil, nil))
	}
}

func TestStatus(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, nil)
	srv.register(t, "alice")

	var status StatusResponse
	req.Equal(http.StatusOK, srv.call(t, http.MethodGet, "/status", nil, &status))
	req.Equal(StatusResponse{Status: "ok", Users: 1, Rooms: 0}, status)
}

func TestStatus_WithoutStore(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleStatus(&AppDeps{})(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), errs.ErrServiceUnavailable)
}

func TestUsers(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, nil)

	apiErr := srv.expectError(t, http.MethodGet, "/users/alice", nil, http.StatusNotFound, errs.ErrUserNotFound)
	req.Equal("User with username alice not found in server", apiErr.Message)

	var created user.User
	req.Equal(http.StatusCreated, srv.call(t, http.MethodPost, "/users/alice", nil, &created))
	req.Equal("alice", created.Username)

	var found user.User
	req.Equal(http.StatusOK, srv.call(t, http.MethodGet, "/users/alice", nil, &found))
	req.Equal(created, found)

	srv.expectError(t, http.MethodPost, "/users/alice", nil, http.StatusConflict, errs.ErrUserAlreadyExists)
}

func TestUsers_RegistrationIsRateLimited(t *testing.T) {
	srv := newTestServer(t, limiter.NewIPRateLimiter(rate.Every(time.Hour), 1, time.Hour))

	srv.register(t, "alice")

	srv.expectError(t, http.MethodPost, "/users/bob", nil, http.StatusTooManyRequests, errs.ErrRateLimitExceeded)
}

func TestRooms_Create(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, nil)
	srv.register(t, "alice")

	srv.expectError(t, http.MethodPost, "/rooms/lobby", nil, http.StatusBadRequest, errs.ErrRoomCreateBadRequest)

	apiErr := srv.expectError(t, http.MethodPost, "/rooms/lobby?creator_username=ghost", nil, http.StatusConflict, errs.ErrRoomCreateConflict)
	req.Contains(apiErr.Message, chat.ErrCreatorNotRegistered.Error())
	srv.expectError(t, http.MethodGet, "/rooms/lobby", nil, http.StatusNotFound, errs.ErrRoomNotFound)

	var summary chat.Summary
	req.Equal(http.StatusCreated, srv.call(t, http.MethodPost, "/rooms/lobby?creator_username=alice", nil, &summary))
	req.Equal("lobby", summary.Name)
	req.Len(summary.Users, 1)
	req.Equal("alice", summary.Users[0].Username)

	var fetched chat.Summary
	req.Equal(http.StatusOK, srv.call(t, http.MethodGet, "/rooms/lobby", nil, &fetched))
	req.Equal(summary.ID, fetched.ID)

	apiErr = srv.expectError(t, http.MethodPost, "/rooms/lobby?creator_username=alice", nil, http.StatusConflict, errs.ErrRoomCreateConflict)
	req.Contains(apiErr.Message, chat.ErrRoomNameTaken.Error())
}

func TestNames_PaddedWithSpacesAreRejected(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, nil)
	srv.register(t, "alice")

	srv.expectError(t, http.MethodPost, "/users/%20bob", nil, http.StatusBadRequest, errs.ErrInvalidParams)
	srv.expectError(t, http.MethodPost, "/users/bob%20", nil, http.StatusBadRequest, errs.ErrInvalidParams)
	srv.expectError(t, http.MethodPost, "/users/%20%20", nil, http.StatusBadRequest, errs.ErrInvalidParams)
	srv.expectError(t, http.MethodGet, "/users/%20bob", nil, http.StatusNotFound, errs.ErrUserNotFound)

	srv.expectError(t, http.MethodPost, "/rooms/%20lobby%20?creator_username=alice", nil, http.StatusBadRequest, errs.ErrInvalidParams)
	srv.expectError(t, http.MethodPost, "/rooms/lobby?creator_username=%20alice", nil, http.StatusBadRequest, errs.ErrInvalidParams)
	srv.expectError(t, http.MethodGet, "/rooms/%20lobby%20", nil, http.StatusNotFound, errs.ErrRoomNotFound)
	srv.expectError(t, http.MethodGet, "/rooms/lobby", nil, http.StatusNotFound, errs.ErrRoomNotFound)

	var status StatusResponse
	req.Equal(http.StatusOK, srv.call(t, http.MethodGet, "/status", nil, &status))
	req.Equal(StatusResponse{Status: "ok", Users: 1, Rooms: 0}, status)

	req.Equal(http.StatusCreated, srv.call(t, http.MethodPost, "/rooms/lobby?creator_username=alice", nil, nil))
	srv.expectError(t, http.MethodPost, "/rooms/lobby/messages",
		PostMessageInput{Username: " alice", Message: "hi"}, http.StatusBadRequest, errs.ErrMessagePostBadRequest)
}

func TestRooms_Membership(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, nil)
	srv.register(t, "alice", "bob")
	req.Equal(http.StatusCreated, srv.call(t, http.MethodPost, "/rooms/lobby?creator_username=alice", nil, nil))

	var member user.User
	req.Equal(http.StatusOK, srv.call(t, http.MethodGet, "/rooms/lobby/users/alice", nil, &member))
	req.Equal("alice", member.Username)

	srv.expectError(t, http.MethodGet, "/rooms/lobby/users/bob", nil, http.StatusNotFound, errs.ErrUserNotInRoom)
	srv.expectError(t, http.MethodGet, "/rooms/lobby/users/ghost", nil, http.StatusNotFound, errs.ErrUserNotFound)
	srv.expectError(t, http.MethodGet, "/rooms/nowhere/users/alice", nil, http.StatusNotFound, errs.ErrRoomNotFound)

	var summary chat.Summary
	req.Equal(http.StatusCreated, srv.call(t, http.MethodPost, "/rooms/lobby/users/bob", nil, &summary))
	req.Len(summary.Users, 2)
	req.Equal("bob", summary.Users[1].Username)

	apiErr := srv.expectError(t, http.MethodPost, "/rooms/lobby/users/bob", nil, http.StatusConflict, errs.ErrUserAddToRoomConflict)
	req.Equal("Cannot add user bob to room lobby: user is already in the room", apiErr.Message)
	srv.expectError(t, http.MethodPost, "/rooms/nowhere/users/bob", nil, http.StatusConflict, errs.ErrUserAddToRoomConflict)
	srv.expectError(t, http.MethodPost, "/rooms/lobby/users/ghost", nil, http.StatusConflict, errs.ErrUserAddToRoomConflict)
}

func TestMessages(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, nil)
	srv.register(t, "alice", "bob", "clara")
	req.Equal(http.StatusCreated, srv.call(t, http.MethodPost, "/rooms/lobby?creator_username=alice", nil, nil))
	req.Equal(http.StatusCreated, srv.call(t, http.MethodPost, "/rooms/lobby/users/bob", nil, nil))

	var messages []chat.Message
	req.Equal(http.StatusOK, srv.call(t, http.MethodGet, "/rooms/lobby/messages", nil, &messages))
	req.NotNil(messages)
	req.Empty(messages)

	var hi chat.Message
	req.Equal(http.StatusCreated, srv.call(t, http.MethodPost, "/rooms/lobby/messages",
		PostMessageInput{Username: "alice", Message: "hi"}, &hi))
	req.Equal("hi", hi.Content)
	req.Equal("alice", hi.Author.Username)

	req.Equal(http.StatusCreated, srv.call(t, http.MethodPost, "/rooms/lobby/messages",
		PostMessageInput{Username: "bob", Message: "yo"}, nil))

	srv.expectError(t, http.MethodPost, "/rooms/lobby/messages",
		PostMessageInput{Username: "clara", Message: "let me in"}, http.StatusConflict, errs.ErrMessagePostConflict)
	srv.expectError(t, http.MethodPost, "/rooms/lobby/messages",
		PostMessageInput{Username: "dave", Message: "who am I"}, http.StatusConflict, errs.ErrMessagePostConflict)
	srv.expectError(t, http.MethodPost, "/rooms/nowhere/messages",
		PostMessageInput{Username: "alice", Message: "hi"}, http.StatusConflict, errs.ErrMessagePostConflict)

	req.Equal(http.StatusOK, srv.call(t, http.MethodGet, "/rooms/lobby/messages", nil, &messages))
	req.Len(messages, 2)
	req.Equal("hi", messages[0].Content)
	req.Equal("yo", messages[1].Content)
	req.Equal("bob", messages[1].Author.Username)
	req.False(messages[1].Timestamp.Before(messages[0].Timestamp))

	srv.expectError(t, http.MethodGet, "/rooms/nowhere/messages", nil, http.StatusConflict, errs.ErrRoomMessagesConflict)
}

func TestMessages_MalformedInput(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.register(t, "alice")
	require.Equal(t, http.StatusCreated, srv.call(t, http.MethodPost, "/rooms/lobby?creator_username=alice", nil, nil))

	srv.expectError(t, http.MethodPost, "/rooms/lobby/messages",
		map[string]string{"username": "alice"}, http.StatusBadRequest, errs.ErrMessagePostBadRequest)
	srv.expectError(t, http.MethodPost, "/rooms/lobby/messages",
		map[string]string{"message": "hi"}, http.StatusBadRequest, errs.ErrMessagePostBadRequest)
	srv.expectError(t, http.MethodPost, "/rooms/lobby/messages",
		map[string]string{"username": "alice", "message": "hi", "extra": "x"}, http.StatusBadRequest, errs.ErrMessagePostBadRequest)
	srv.expectError(t, http.MethodPost, "/rooms/lobby/messages",
		PostMessageInput{Username: "alice", Message: "<script>alert(1)</script>"}, http.StatusBadRequest, errs.ErrMessagePostBadRequest)

	response, err := srv.Client().Post(srv.URL+"/rooms/lobby/messages", "text/plain", strings.NewReader("hi"))
	require.NoError(t, err)
	defer response.Body.Close()
	require.Equal(t, http.StatusUnsupportedMediaType, response.StatusCode)

	var messages []chat.Message
	require.Equal(t, http.StatusOK, srv.call(t, http.MethodGet, "/rooms/lobby/messages", nil, &messages))
	require.Empty(t, messages)
}

func TestMessages_ContentIsSanitized(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.register(t, "alice")
	require.Equal(t, http.StatusCreated, srv.call(t, http.MethodPost, "/rooms/lobby?creator_username=alice", nil, nil))

	var msg chat.Message
	require.Equal(t, http.StatusCreated, srv.call(t, http.MethodPost, "/rooms/lobby/messages",
		PostMessageInput{Username: "alice", Message: "  <b>hi</b> it's me & you "}, &msg))

	require.Equal(t, "hi it's me & you", msg.Content)
}

func TestStream(t *testing.T) {
	req := require.New(t)
	srv := newTestServer(t, nil)
	srv.register(t, "alice", "bob")
	req.Equal(http.StatusCreated, srv.call(t, http.MethodPost, "/rooms/lobby?creator_username=alice", nil, nil))

	srv.expectError(t, http.MethodGet, "/rooms/lobby/stream", nil, http.StatusBadRequest, errs.ErrInvalidParams)
	srv.expectError(t, http.MethodGet, "/rooms/lobby/stream?username=bob", nil, http.StatusNotFound, errs.ErrUserNotInRoom)
	srv.expectError(t, http.MethodGet, "/rooms/nowhere/stream?username=alice", nil, http.StatusNotFound, errs.ErrRoomNotFound)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/rooms/lobby/stream?username=alice"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	req.NoError(err)
	defer conn.Close()

	req.Eventually(func() bool { return srv.deps.Feed.Subscribers("lobby") == 1 }, 2*time.Second, 10*time.Millisecond)

	var posted chat.Message
	req.Equal(http.StatusCreated, srv.call(t, http.MethodPost, "/rooms/lobby/messages",
		PostMessageInput{Username: "alice", Message: "live"}, &posted))

	req.NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var event feed.Event
	req.NoError(conn.ReadJSON(&event))
	req.Equal(feed.EventTypeMessage, event.Type)
	req.Equal("lobby", event.Room)
	req.Equal(posted.ID, event.Message.ID)
	req.Equal("live", event.Message.Content)
}
