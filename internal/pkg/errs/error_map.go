/*
Package errs provides custom error types and application-level error id constants.

This file defines the map from error ids to the CustomError template, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the CustomError template corresponding to every application error id.
// Messages may carry printf verbs that NewError fills from its details.
var errorMap = map[string]CustomError{
	// General request handling errors
	ErrInvalidParams:        {ID: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {ID: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {ID: ErrInvalidJSONFormat, Message: "Request body is not valid JSON.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {ID: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {ID: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// User errors
	ErrUserNotFound:      {ID: ErrUserNotFound, Message: "User with username %s not found in server", Status: http.StatusNotFound},
	ErrUserAlreadyExists: {ID: ErrUserAlreadyExists, Message: "User with username %s already exists in server", Status: http.StatusConflict},
	ErrUserNotInRoom:     {ID: ErrUserNotInRoom, Message: "User with username %s is not in room with name %s", Status: http.StatusNotFound},

	// Room and message errors
	ErrRoomNotFound:          {ID: ErrRoomNotFound, Message: "Room with name %s not found in server", Status: http.StatusNotFound},
	ErrRoomCreateBadRequest:  {ID: ErrRoomCreateBadRequest, Message: "Missing creator_username query parameter", Status: http.StatusBadRequest},
	ErrRoomCreateConflict:    {ID: ErrRoomCreateConflict, Message: "Cannot create room %s: %v", Status: http.StatusConflict},
	ErrUserAddToRoomConflict: {ID: ErrUserAddToRoomConflict, Message: "Cannot add user %s to room %s: %v", Status: http.StatusConflict},
	ErrRoomMessagesConflict:  {ID: ErrRoomMessagesConflict, Message: "Cannot get messages for room %s: %v", Status: http.StatusConflict},
	ErrMessagePostBadRequest: {ID: ErrMessagePostBadRequest, Message: "Missing username or message in request body", Status: http.StatusBadRequest},
	ErrMessagePostConflict:   {ID: ErrMessagePostConflict, Message: "Cannot post message to room %s: %v", Status: http.StatusConflict},

	// Client-side errors
	ErrClientFetchAPI:     {ID: ErrClientFetchAPI, Message: "Failed to fetch API: %v"},
	ErrUserNotAddedToRoom: {ID: ErrUserNotAddedToRoom, Message: "User chose not to be added to the room."},
	ErrInputClosed:        {ID: ErrInputClosed, Message: "Input closed."},

	// Internal system errors
	ErrUnknown:            {ID: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrServiceUnavailable: {ID: ErrServiceUnavailable, Message: "Chat store is unavailable.", Status: http.StatusInternalServerError},
}
