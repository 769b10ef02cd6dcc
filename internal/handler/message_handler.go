/*
Package handler provides HTTP handler functions for reading and posting room messages.
*/
package handler

import (
	"html"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"

	"roomchat/internal/pkg/errs"
	"roomchat/internal/pkg/req"
	"roomchat/internal/pkg/resp"
)

// PostMessageInput is the body of POST /rooms/{name}/messages.
type PostMessageInput struct {
	Username string `json:"username" validate:"required,trimmed"`
	Message  string `json:"message" validate:"required,max=4000"`
}

var contentPolicy = bluemonday.StrictPolicy()

// sanitizeContent strips every HTML element from the content and decodes the
// entities the policy escaped, leaving plain text.
func sanitizeContent(content string) string {
	return strings.TrimSpace(html.UnescapeString(contentPolicy.Sanitize(content)))
}

// HandleGetMessages returns the messages of the room in arrival order.
func HandleGetMessages(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		messages, err := deps.Store.GetMessages(name)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomMessagesConflict, name, err))
			return
		}

		resp.RespondOK(w, r, messages)
	}
}

// HandlePostMessage posts a message to the room. Live subscribers receive it through
// the store's post listener.
func HandlePostMessage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")

		var input PostMessageInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			if customErr.ID != errs.ErrUnsupportedMediaType {
				customErr = errs.NewError(errs.ErrMessagePostBadRequest)
			}
			resp.RespondError(w, r, customErr)
			return
		}

		input.Message = sanitizeContent(input.Message)

		if _, err := req.Validate(input); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrMessagePostBadRequest))
			return
		}

		msg, err := deps.Store.PostMessage(name, input.Username, input.Message)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrMessagePostConflict, name, err))
			return
		}

		resp.RespondCreated(w, r, msg)
	}
}
