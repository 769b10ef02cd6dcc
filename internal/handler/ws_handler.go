/*
Package handler provides the HTTP handler for live room feed subscriptions.

HandleStream validates the room and the member, upgrades the connection to websocket
and runs the subscriber until it disconnects or the hub shuts down.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"roomchat/internal/app/feed"
	"roomchat/internal/pkg/errs"
	"roomchat/internal/pkg/logx"
	"roomchat/internal/pkg/resp"
)

// HandleStream creates an HTTP HandlerFunc serving GET /rooms/{name}/stream?username=X.
func HandleStream(deps *AppDeps, upgrader websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		username := r.URL.Query().Get("username")
		if username == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		if deps.Feed == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrServiceUnavailable))
			return
		}

		if _, err := deps.Store.RoomMember(name, username); err != nil {
			resp.RespondError(w, r, memberLookupError(err, name, username))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// the upgrader has already written the HTTP error
			logx.Warn("Failed to upgrade feed connection", "error", err.Error())
			return
		}

		client := feed.NewClient(deps.Feed, conn, name, username)
		if !deps.Feed.Register(client) {
			_ = conn.Close()
			return
		}

		go client.WritePump()

		client.ReadPump()
	}
}
