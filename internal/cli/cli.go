/*
Package cli implements the interactive command-line chat client.

The client checks that the server is reachable, authenticates or registers the user,
lets them choose, create or join a room, and then loops between viewing and sending
messages. Recoverable failures re-prompt; only an unreachable server at startup ends
the client with an error. End of input ends it cleanly.
*/
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gookit/color"

	"roomchat/internal/pkg/errs"
	"roomchat/internal/pkg/logx"
)

// ErrServerUnreachable is returned by Run when the startup status check fails.
var ErrServerUnreachable = errors.New("chat server is unreachable")

// Options configures a Client.
type Options struct {
	// BaseURL of the server, e.g. "http://127.0.0.1:3030".
	BaseURL string

	// Timeout of every API call.
	Timeout time.Duration

	In  io.Reader
	Out io.Writer

	// NoColor disables colored output.
	NoColor bool

	// Location used to display message times. Defaults to time.Local.
	Location *time.Location
}

// Client is one interactive session.
type Client struct {
	api      *API
	prompt   *Prompter
	location *time.Location
}

// New builds a Client from opts.
func New(opts Options) *Client {
	if opts.NoColor {
		color.Disable()
	}

	location := opts.Location
	if location == nil {
		location = time.Local
	}

	return &Client{
		api:      NewAPI(opts.BaseURL, opts.Timeout),
		prompt:   NewPrompter(opts.In, opts.Out),
		location: location,
	}
}

// Run drives the session until the input ends or ctx is canceled.
func (c *Client) Run(ctx context.Context) error {
	status, apiErr := c.api.Status(ctx)
	if apiErr != nil {
		logx.Error(apiErr, "Status check failed")
		return fmt.Errorf("%w: %s", ErrServerUnreachable, apiErr.Message)
	}
	c.prompt.Success("Connected to chat server (%d users, %d rooms).", status.Users, status.Rooms)

	err := c.session(ctx)
	if errs.Is(err, errs.ErrInputClosed) || errors.Is(err, context.Canceled) {
		c.prompt.Info("Bye!")
		return nil
	}
	return err
}

func (c *Client) session(ctx context.Context) error {
	u, err := c.authenticate(ctx)
	if err != nil {
		return err
	}

	room, err := c.chooseRoom(ctx, u)
	if err != nil {
		return err
	}

	return c.chatLoop(ctx, u, room)
}
