/*
Package errs provides custom error types and application-level error id constants.

These error ids are part of the REST contract: clients, including the bundled CLI,
branch on them, so existing ids must never be renamed.
*/
package errs

// General request handling errors.
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = "ERR__INVALID_PARAMS"

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = "ERR__UNSUPPORTED_MEDIA_TYPE"

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect.
	ErrInvalidJSONFormat = "ERR__INVALID_JSON_FORMAT"

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = "ERR__EXTRA_CONTENT_IN_BODY"

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = "ERR__RATE_LIMIT_EXCEEDED"
)

// User errors.
const (
	// ErrUserNotFound indicates that no user is registered under the requested username.
	ErrUserNotFound = "ERR__USER_NOT_FOUND"

	// ErrUserAlreadyExists indicates that the username is already registered.
	ErrUserAlreadyExists = "ERR__USER_ALREADY_EXISTS"

	// ErrUserNotInRoom indicates that a registered user is not a member of the room.
	ErrUserNotInRoom = "ERR__USER_NOT_IN_ROOM"
)

// Room and message errors.
const (
	// ErrRoomNotFound indicates that no room exists under the requested name.
	ErrRoomNotFound = "ERR__ROOM_NOT_FOUND"

	// ErrRoomCreateBadRequest indicates that the creator_username query parameter is missing.
	ErrRoomCreateBadRequest = "ERR__ROOM_CREATE_BAD_REQUEST"

	// ErrRoomCreateConflict indicates that the room could not be created.
	ErrRoomCreateConflict = "ERR__ROOM_CREATE_CONFLICT"

	// ErrUserAddToRoomConflict indicates that the user could not be added to the room.
	ErrUserAddToRoomConflict = "ERR__USER_ADD_TO_ROOM_CONFLICT"

	// ErrRoomMessagesConflict indicates that the room messages could not be read.
	ErrRoomMessagesConflict = "ERR__ROOM_MESSAGES_CONFLICT"

	// ErrMessagePostBadRequest indicates that username or message is missing from the body.
	ErrMessagePostBadRequest = "ERR__MESSAGE_POST_TO_ROOM_BAD_REQUEST"

	// ErrMessagePostConflict indicates that the message could not be posted.
	ErrMessagePostConflict = "ERR__MESSAGE_POST_TO_ROOM_CONFLICT"
)

// Client-side errors produced by the CLI, never by the server.
const (
	// ErrClientFetchAPI indicates that the server could not be reached or answered garbage.
	ErrClientFetchAPI = "ERR__CLIENT_FETCH_API"

	// ErrUserNotAddedToRoom indicates that the user declined to join an existing room.
	ErrUserNotAddedToRoom = "ERR__USER_NOT_ADDED_TO_ROOM"

	// ErrInputClosed indicates that the interactive input reached end of file.
	ErrInputClosed = "ERR__INPUT_CLOSED"
)

// Internal system errors.
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = "ERR__UNKNOWN"

	// ErrServiceUnavailable indicates that the store is not wired into the server.
	ErrServiceUnavailable = "ERR__SERVICE_UNAVAILABLE"
)
