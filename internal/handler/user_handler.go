/*
Package handler provides HTTP handler functions for user lookup, registration and the status check.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"roomchat/internal/pkg/errs"
	"roomchat/internal/pkg/logx"
	"roomchat/internal/pkg/req"
	"roomchat/internal/pkg/resp"
)

// usernameParam validates a username taken from the path.
type usernameParam struct {
	Username string `validate:"required,trimmed,max=64,excludesall=/?#"`
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Status string `json:"status"`
	Users  int    `json:"users"`
	Rooms  int    `json:"rooms"`
}

// HandleStatus answers the liveness check the client runs before anything else.
func HandleStatus(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Store == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrServiceUnavailable))
			return
		}

		stats := deps.Store.Stats()
		resp.RespondOK(w, r, StatusResponse{
			Status: "ok",
			Users:  stats.Users,
			Rooms:  stats.Rooms,
		})
	}
}

// HandleGetUser returns the user registered under the username path parameter.
func HandleGetUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		u, ok := deps.Store.LookupUser(username)
		if !ok {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserNotFound, username))
			return
		}

		resp.RespondOK(w, r, u)
	}
}

// HandleRegisterUser registers the username path parameter as a new user.
func HandleRegisterUser(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		if _, err := req.Validate(usernameParam{Username: username}); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		u, err := deps.Store.RegisterUser(username)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUserAlreadyExists, username))
			return
		}

		logx.Info("User registered", "user_id", u.ID.String())
		resp.RespondCreated(w, r, u)
	}
}
