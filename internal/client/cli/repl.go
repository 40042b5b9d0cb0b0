package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bharat3214/Genei/internal/client/client"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Users(ctx context.Context) error
	Unread(ctx context.Context) error
	Chat(ctx context.Context, args []string) error
	Send(ctx context.Context, args []string) error
	Read(ctx context.Context, args []string) error
	ReadAll(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	Download(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: whoami, users, unread, chat <userId>, send <userId> <text>, " +
		"read <messageId>, readall [senderId], upload <paperId> <file>, download <paperId>, logout, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a
// until EOF, "exit" or "quit". Command errors are printed and the loop goes
// on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("genei %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if cmd == "help" {
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		}

		report(dispatch(ctx, a, cmd, args))
	}
}

var errLoginRequired = errors.New("please login first")

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	if !a.isLoggedIn() {
		switch cmd {
		case "logout", "whoami", "users", "unread", "chat", "send", "read", "readall", "upload", "download":
			return errLoginRequired
		}
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)
	case "users":
		return a.Users(ctx)
	case "unread":
		return a.Unread(ctx)
	case "chat":
		return a.Chat(ctx, args)
	case "send":
		return a.Send(ctx, args)
	case "read":
		return a.Read(ctx, args)
	case "readall":
		return a.ReadAll(ctx, args)
	case "upload":
		return a.Upload(ctx, args)
	case "download":
		return a.Download(ctx, args)
	}
	return fmt.Errorf("unknown command: %s", cmd)
}

func report(err error) {
	if err == nil {
		return
	}

	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		printlnFn("Error:", apiErr.Message)
		for _, f := range apiErr.Fields {
			printlnFn("  -", f.Message)
		}
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("Error: server unavailable, try again later")
	default:
		printlnFn("Error:", err)
	}
}
