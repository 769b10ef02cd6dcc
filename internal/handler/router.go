/*
Package handler provides the HTTP handlers and routing setup for the chat server.

This file defines the main Router, applying the shared middleware (CORS, request id,
real IP, logging, panic recovery) and the per-route rate limiting before delegating
requests to the user, room, message and feed handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"

	"roomchat/internal/pkg/logx"
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// Registration and room creation are rate limited per client IP when deps.Limiter is set.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	allowedOrigins := make(map[string]struct{})
	for _, origin := range deps.Config.Origins() {
		allowedOrigins[origin] = struct{}{}
	}

	wsUpgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || deps.Config.IsDevelopment() {
				return true
			}

			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			logx.Warn("Feed connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(allowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.Origins()
	}

	c := cors.New(cors.Options{
		AllowedOrigins: corsAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	limited := func(h http.HandlerFunc) http.Handler {
		if deps.Limiter == nil {
			return h
		}
		return deps.Limiter.Middleware(h)
	}

	r.Get("/status", HandleStatus(deps))

	r.Route("/users/{username}", func(users chi.Router) {
		users.Get("/", HandleGetUser(deps))
		users.Method(http.MethodPost, "/", limited(HandleRegisterUser(deps)))
	})

	r.Route("/rooms/{name}", func(rooms chi.Router) {
		rooms.Get("/", HandleGetRoom(deps))
		rooms.Method(http.MethodPost, "/", limited(HandleCreateRoom(deps)))

		rooms.Get("/users/{username}", HandleGetRoomUser(deps))
		rooms.Post("/users/{username}", HandleAddUserToRoom(deps))

		rooms.Get("/messages", HandleGetMessages(deps))
		rooms.Post("/messages", HandlePostMessage(deps))

		rooms.Get("/stream", HandleStream(deps, wsUpgrader))
	})

	return r
}
