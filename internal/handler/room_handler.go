/*
Package handler provides HTTP handler functions for room lookup, creation and membership.
*/
package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"roomchat/internal/app/chat"
	"roomchat/internal/pkg/errs"
	"roomchat/internal/pkg/logx"
	"roomchat/internal/pkg/req"
	"roomchat/internal/pkg/resp"
)

// roomNameParam validates a room name taken from the path.
type roomNameParam struct {
	Name string `validate:"required,trimmed,max=64,excludesall=/?#"`
}

// memberLookupError maps a failed Store.RoomMember call to its 404 response.
func memberLookupError(err error, roomName, username string) *errs.CustomError {
	switch {
	case errors.Is(err, chat.ErrRoomNotFound):
		return errs.NewError(errs.ErrRoomNotFound, roomName)
	case errors.Is(err, chat.ErrUserNotFound):
		return errs.NewError(errs.ErrUserNotFound, username)
	case errors.Is(err, chat.ErrNotAMember):
		return errs.NewError(errs.ErrUserNotInRoom, username, roomName)
	default:
		return errs.NewError(errs.ErrUnknown, err)
	}
}

// HandleGetRoom returns the summary of the room named by the path.
func HandleGetRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		room, ok := deps.Store.LookupRoom(name)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound, name))
			return
		}

		resp.RespondOK(w, r, room.Summary())
	}
}

// HandleGetRoomUser returns the user if they are a member of the room.
func HandleGetRoomUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		username := chi.URLParam(r, "username")

		u, err := deps.Store.RoomMember(name, username)
		if err != nil {
			resp.RespondError(w, r, memberLookupError(err, name, username))
			return
		}

		resp.RespondOK(w, r, u)
	}
}

// HandleCreateRoom creates the room named by the path, with the creator_username
// query parameter as its first member.
func HandleCreateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		creator := r.URL.Query().Get("creator_username")
		if creator == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomCreateBadRequest))
			return
		}

		if _, err := req.Validate(roomNameParam{Name: name}); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}
		if _, err := req.Validate(usernameParam{Username: creator}); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		room, err := deps.Store.CreateRoom(name, creator)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomCreateConflict, name, err))
			return
		}

		logx.Info("Room created", "room_id", room.ID.String())
		resp.RespondCreated(w, r, room.Summary())
	}
}

// HandleAddUserToRoom adds the user to the room and returns the updated summary.
func HandleAddUserToRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		username := chi.URLParam(r, "username")

		if err := deps.Store.AddUserToRoom(name, username); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserAddToRoomConflict, username, name, err))
			return
		}

		// rooms are never removed, so the lookup after a successful add cannot miss
		room, _ := deps.Store.LookupRoom(name)
		resp.RespondCreated(w, r, room.Summary())
	}
}
