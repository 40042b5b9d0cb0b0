package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bharat3214/Genei/internal/client/client"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
	err      error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) Whoami(ctx context.Context) error { return f.record("whoami", nil) }
func (f *fakeExec) Users(ctx context.Context) error  { return f.record("users", nil) }
func (f *fakeExec) Unread(ctx context.Context) error { return f.record("unread", nil) }
func (f *fakeExec) Chat(ctx context.Context, args []string) error {
	return f.record("chat", args)
}
func (f *fakeExec) Send(ctx context.Context, args []string) error {
	return f.record("send", args)
}
func (f *fakeExec) Read(ctx context.Context, args []string) error {
	return f.record("read", args)
}
func (f *fakeExec) ReadAll(ctx context.Context, args []string) error {
	return f.record("readall", args)
}
func (f *fakeExec) Upload(ctx context.Context, args []string) error {
	return f.record("upload", args)
}
func (f *fakeExec) Download(ctx context.Context, args []string) error {
	return f.record("download", args)
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Dispatch(t *testing.T) {
	lines := capturePrints(t)

	input := strings.Join([]string{
		"chat 2",
		"help",
		"login",
		"help",
		"",
		"users",
		"chat 2",
		"send 2 hello there",
		"readall",
		"upload 1 paper.pdf",
		"foobar",
		"logout",
		"exit",
		"users",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{"login", "users", "chat 2", "send 2 hello there", "readall", "upload 1 paper.pdf", "logout"}, exec.calls)
	assert.Contains(t, *lines, "Error: please login first")
	assert.Contains(t, *lines, helpLoggedOut)
	assert.Contains(t, *lines, helpLoggedIn)
	assert.Contains(t, *lines, "Error: unknown command: foobar")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("unread")))

	assert.Equal(t, []string{"unread"}, exec.calls)
}

func TestReport(t *testing.T) {
	lines := capturePrints(t)

	report(nil)
	report(&client.APIError{Status: 400, Message: "Validation failed", Fields: []client.FieldError{{Message: "content is required"}}})
	report(fmt.Errorf("wrapped: %w", client.ErrUnavailable))

	assert.Equal(t, []string{
		"Error: Validation failed",
		"  - content is required",
		"Error: server unavailable, try again later",
	}, *lines)
}
