/*
Package cli implements the interactive command-line chat client.

This file defines the API client, a thin resty wrapper over the REST surface of the
server. Every failure is returned as an *errs.CustomError: server errors keep the
error id from the response body, transport and decoding failures become
ERR__CLIENT_FETCH_API.
*/
package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"roomchat/internal/app/chat"
	"roomchat/internal/app/user"
	"roomchat/internal/pkg/errs"
)

// ServerStatus is the body of GET /status.
type ServerStatus struct {
	Status string `json:"status"`
	Users  int    `json:"users"`
	Rooms  int    `json:"rooms"`
}

type postMessageBody struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// API talks to one chat server.
type API struct {
	http *resty.Client
}

// NewAPI builds an API client for the server at baseURL ("http://127.0.0.1:3030").
func NewAPI(baseURL string, timeout time.Duration) *API {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &API{http: client}
}

// do sends the request and decodes a successful body into result.
func (a *API) do(ctx context.Context, method, path string, pathParams map[string]string, prepare func(*resty.Request), result any) *errs.CustomError {
	apiErr := &errs.CustomError{}

	r := a.http.R().
		SetContext(ctx).
		SetPathParams(pathParams).
		SetError(apiErr)
	if result != nil {
		r.SetResult(result)
	}
	if prepare != nil {
		prepare(r)
	}

	res, err := r.Execute(method, path)
	if err != nil {
		return errs.NewError(errs.ErrClientFetchAPI, err)
	}

	if res.IsError() {
		if apiErr.ID == "" {
			return errs.NewError(errs.ErrClientFetchAPI, fmt.Errorf("unexpected response %s", res.Status()))
		}
		apiErr.Status = res.StatusCode()
		return apiErr
	}

	return nil
}

// Status checks that the server is up.
func (a *API) Status(ctx context.Context) (*ServerStatus, *errs.CustomError) {
	var out ServerStatus
	if err := a.do(ctx, http.MethodGet, "/status", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUser fetches a registered user.
func (a *API) GetUser(ctx context.Context, username string) (*user.User, *errs.CustomError) {
	var out user.User
	params := map[string]string{"username": username}
	if err := a.do(ctx, http.MethodGet, "/users/{username}", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterUser registers a new user.
func (a *API) RegisterUser(ctx context.Context, username string) (*user.User, *errs.CustomError) {
	var out user.User
	params := map[string]string{"username": username}
	if err := a.do(ctx, http.MethodPost, "/users/{username}", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRoom fetches a room summary.
func (a *API) GetRoom(ctx context.Context, name string) (*chat.Summary, *errs.CustomError) {
	var out chat.Summary
	params := map[string]string{"name": name}
	if err := a.do(ctx, http.MethodGet, "/rooms/{name}", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRoomUser succeeds only if username is a member of the room.
func (a *API) GetRoomUser(ctx context.Context, name, username string) (*user.User, *errs.CustomError) {
	var out user.User
	params := map[string]string{"name": name, "username": username}
	if err := a.do(ctx, http.MethodGet, "/rooms/{name}/users/{username}", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRoom creates a room with creator as its first member.
func (a *API) CreateRoom(ctx context.Context, name, creator string) (*chat.Summary, *errs.CustomError) {
	var out chat.Summary
	params := map[string]string{"name": name}
	withCreator := func(r *resty.Request) {
		r.SetQueryParam("creator_username", creator)
	}
	if err := a.do(ctx, http.MethodPost, "/rooms/{name}", params, withCreator, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AddUserToRoom joins username to the room.
func (a *API) AddUserToRoom(ctx context.Context, name, username string) (*chat.Summary, *errs.CustomError) {
	var out chat.Summary
	params := map[string]string{"name": name, "username": username}
	if err := a.do(ctx, http.MethodPost, "/rooms/{name}/users/{username}", params, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMessages fetches the messages of a room in arrival order.
func (a *API) GetMessages(ctx context.Context, name string) ([]chat.Message, *errs.CustomError) {
	var out []chat.Message
	params := map[string]string{"name": name}
	if err := a.do(ctx, http.MethodGet, "/rooms/{name}/messages", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PostMessage posts content to a room as username.
func (a *API) PostMessage(ctx context.Context, name, username, content string) (*chat.Message, *errs.CustomError) {
	var out chat.Message
	params := map[string]string{"name": name}
	withBody := func(r *resty.Request) {
		r.SetHeader("Content-Type", "application/json").
			SetBody(postMessageBody{Username: username, Message: content})
	}
	if err := a.do(ctx, http.MethodPost, "/rooms/{name}/messages", params, withBody, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
