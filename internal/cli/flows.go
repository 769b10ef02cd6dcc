package cli

import (
	"context"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"roomchat/internal/app/chat"
	"roomchat/internal/app/user"
	"roomchat/internal/pkg/errs"
)

// timestampLayout is how message times are shown in the history table.
const timestampLayout = "2006-01-02 15:04:05"

// authenticate asks for a username until the user is authenticated or registered.
func (c *Client) authenticate(ctx context.Context) (*user.User, error) {
	for {
		username, err := c.prompt.AskNonEmpty(ctx, "Enter your username: ")
		if err != nil {
			return nil, err
		}

		u, err := c.authenticateAs(ctx, username)
		if err != nil {
			return nil, err
		}
		if u != nil {
			c.prompt.Success("Welcome, %s!", u.Username)
			return u, nil
		}
	}
}

// authenticateAs returns a nil user without error when the flow has to start over.
func (c *Client) authenticateAs(ctx context.Context, username string) (*user.User, error) {
	u, apiErr := c.api.GetUser(ctx, username)
	if apiErr == nil {
		return u, nil
	}

	if !errs.Is(apiErr, errs.ErrUserNotFound) {
		c.retry("authenticate", apiErr)
		return nil, nil
	}

	register, err := c.prompt.Confirm(ctx, "User "+username+" does not exist. Do you want to register it?")
	if err != nil || !register {
		return nil, err
	}

	u, apiErr = c.api.RegisterUser(ctx, username)
	if apiErr == nil {
		return u, nil
	}

	if !errs.Is(apiErr, errs.ErrUserAlreadyExists) {
		c.retry("register", apiErr)
		return nil, nil
	}

	// registered by someone else in the meantime
	authenticate, err := c.prompt.Confirm(ctx, "User "+username+" already exists. Do you want to authenticate as this user?")
	if err != nil || !authenticate {
		return nil, err
	}

	u, apiErr = c.api.GetUser(ctx, username)
	if apiErr != nil {
		c.retry("authenticate", apiErr)
		return nil, nil
	}
	return u, nil
}

// chooseRoom asks for a room name until the user is a member of that room.
func (c *Client) chooseRoom(ctx context.Context, u *user.User) (*chat.Summary, error) {
	for {
		name, err := c.prompt.AskNonEmpty(ctx, "Enter the room name: ")
		if err != nil {
			return nil, err
		}

		room, err := c.enterRoom(ctx, name, u)
		if err != nil {
			return nil, err
		}
		if room != nil {
			c.prompt.Success("You are in room %s. Members: %s.", room.Name, memberList(room))
			return room, nil
		}
	}
}

// enterRoom returns a nil room without error when the flow has to start over.
func (c *Client) enterRoom(ctx context.Context, name string, u *user.User) (*chat.Summary, error) {
	room, apiErr := c.api.GetRoom(ctx, name)
	if apiErr != nil {
		if !errs.Is(apiErr, errs.ErrRoomNotFound) {
			c.retry("enter room", apiErr)
			return nil, nil
		}
		return c.offerCreate(ctx, name, u)
	}

	_, apiErr = c.api.GetRoomUser(ctx, name, u.Username)
	if apiErr == nil {
		return room, nil
	}
	if !errs.Is(apiErr, errs.ErrUserNotInRoom) {
		c.retry("enter room", apiErr)
		return nil, nil
	}

	join, err := c.prompt.Confirm(ctx, "You are not in room "+name+". Do you want to join it?")
	if err != nil {
		return nil, err
	}
	if !join {
		c.retry("enter room", errs.NewError(errs.ErrUserNotAddedToRoom))
		return nil, nil
	}

	room, apiErr = c.api.AddUserToRoom(ctx, name, u.Username)
	if apiErr != nil {
		c.retry("join room", apiErr)
		return nil, nil
	}
	return room, nil
}

func (c *Client) offerCreate(ctx context.Context, name string, u *user.User) (*chat.Summary, error) {
	create, err := c.prompt.Confirm(ctx, "Room "+name+" does not exist. Do you want to create it?")
	if err != nil || !create {
		return nil, err
	}

	room, apiErr := c.api.CreateRoom(ctx, name, u.Username)
	if apiErr != nil {
		c.retry("create room", apiErr)
		return nil, nil
	}
	return room, nil
}

// chatLoop runs the view/send menu until the input ends.
func (c *Client) chatLoop(ctx context.Context, u *user.User, room *chat.Summary) error {
	for {
		c.prompt.Info("")
		c.prompt.Info("1. View messages")
		c.prompt.Info("2. Send a new message")

		choice, err := c.prompt.Ask(ctx, "Choose an option: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			c.showMessages(ctx, room.Name)
		case "2":
			if err := c.sendMessage(ctx, u, room.Name); err != nil {
				return err
			}
		default:
			c.prompt.Warn("Unknown option %q.", choice)
		}
	}
}

func (c *Client) showMessages(ctx context.Context, roomName string) {
	messages, apiErr := c.api.GetMessages(ctx, roomName)
	if apiErr != nil {
		c.retry("get messages", apiErr)
		return
	}

	if len(messages) == 0 {
		c.prompt.Info("No messages in room %s yet.", roomName)
		return
	}

	rows := lo.Map(messages, func(msg chat.Message, _ int) []string {
		author := ""
		if msg.Author != nil {
			author = msg.Author.Username
		}
		return []string{msg.Timestamp.In(c.location).Format(timestampLayout), author, msg.Content}
	})

	table := tablewriter.NewWriter(c.prompt.Writer())
	table.SetHeader([]string{"Time", "Author", "Message"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}

func (c *Client) sendMessage(ctx context.Context, u *user.User, roomName string) error {
	content, err := c.prompt.AskNonEmpty(ctx, "Message: ")
	if err != nil {
		return err
	}

	if _, apiErr := c.api.PostMessage(ctx, roomName, u.Username, content); apiErr != nil {
		c.retry("send message", apiErr)
		return nil
	}

	c.prompt.Success("Message sent.")
	return nil
}

// retry reports a recoverable failure; the calling flow asks again.
func (c *Client) retry(action string, apiErr *errs.CustomError) {
	c.prompt.Failure("Could not %s - Please try again. Error was: %s", action, apiErr.Message)
}

func memberList(room *chat.Summary) string {
	names := lo.Map(room.Users, func(u *user.User, _ int) string {
		return u.Username
	})
	return strings.Join(names, ", ")
}
