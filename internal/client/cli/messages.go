package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// conversationPageSize is how many messages chat shows.
const conversationPageSize = 50

func parseID(args []string, i int, what string) (int64, error) {
	if len(args) <= i {
		return 0, fmt.Errorf("missing %s", what)
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", what, args[i])
	}
	return id, nil
}

// Users lists everyone the caller can message.
func (a *App) Users(ctx context.Context) error {
	users, err := a.chatService.Contacts(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No other users yet")
		return nil
	}
	for _, u := range users {
		fmt.Fprintf(a.out, "%4d  %-20s %s\n", u.ID, u.Username, u.FullName)
	}
	return nil
}

func (a *App) Unread(ctx context.Context) error {
	n, err := a.chatService.UnreadCount(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d unread message(s)\n", n)
	return nil
}

// Chat prints the conversation with another user. Opening it marks their
// messages to the caller as read; unread ones are flagged with '*'.
func (a *App) Chat(ctx context.Context, args []string) error {
	other, err := parseID(args, 0, "user id")
	if err != nil {
		return err
	}

	msgs, err := a.chatService.Conversation(ctx, other, conversationPageSize)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		fmt.Fprintf(a.out, "No messages with %s yet\n", a.chatService.ContactName(ctx, other))
		return nil
	}

	me := a.currentUser()
	for _, m := range msgs {
		who := "me"
		if m.SenderID != me.ID {
			who = a.chatService.ContactName(ctx, m.SenderID)
		}
		mark := " "
		if !m.Read && m.ReceiverID == me.ID {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s [%d] %s %s: %s\n", mark, m.ID, m.CreatedAt.Local().Format("2006-01-02 15:04"), who, m.Content)
	}
	return nil
}

// Send delivers a message. Without inline text it prompts for a multi-line
// body.
func (a *App) Send(ctx context.Context, args []string) error {
	receiver, err := parseID(args, 0, "user id")
	if err != nil {
		return err
	}

	content := strings.Join(args[1:], " ")
	if content == "" {
		content, err = GetMultiline(a.reader, "Message", a.out)
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(content) == "" {
		return errors.New("message is empty")
	}

	m, err := a.chatService.Send(ctx, receiver, content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sent message %d to %s\n", m.ID, a.chatService.ContactName(ctx, receiver))
	return nil
}

func (a *App) Read(ctx context.Context, args []string) error {
	id, err := parseID(args, 0, "message id")
	if err != nil {
		return err
	}
	if _, err := a.chatService.MarkRead(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Message %d marked as read\n", id)
	return nil
}

// ReadAll marks every unread message to the caller as read, optionally only
// those from one sender.
func (a *App) ReadAll(ctx context.Context, args []string) error {
	var sender *int64
	if len(args) > 0 {
		id, err := parseID(args, 0, "sender id")
		if err != nil {
			return err
		}
		sender = &id
	}

	n, err := a.chatService.MarkAllRead(ctx, sender)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d message(s) marked as read\n", n)
	return nil
}
