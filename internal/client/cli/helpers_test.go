package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/bharat3214/Genei/internal/client/models"
	"github.com/bharat3214/Genei/internal/client/services"
	"github.com/bharat3214/Genei/internal/logging"
)

func stubInputs(t *testing.T, texts []string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		s := texts[i]
		i++
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeAuth struct {
	regUser, regName string
	regPass          []byte

	loginUser string
	loginPass []byte
	loginErr  error

	resumeUser *models.Account
	resumeErr  error
	savedName  string

	pingErr     error
	logoutCalls int
	logoutErr   error
}

var _ services.AuthService = (*fakeAuth)(nil)

func (f *fakeAuth) Register(_ context.Context, user, fullName string, pass []byte) (*models.Account, error) {
	f.regUser, f.regName, f.regPass = user, fullName, append([]byte(nil), pass...)
	return &models.Account{ID: 1, Username: user, FullName: fullName}, nil
}

func (f *fakeAuth) Login(_ context.Context, user string, pass []byte) (*models.Account, error) {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.Account{ID: 1, Username: user}, nil
}

func (f *fakeAuth) Resume(context.Context) (*models.Account, error) {
	return f.resumeUser, f.resumeErr
}

func (f *fakeAuth) SavedUsername(context.Context) (string, error) { return f.savedName, nil }

func (f *fakeAuth) Logout(context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeAuth) Ping(context.Context) error  { return f.pingErr }
func (f *fakeAuth) Close(context.Context) error { return nil }

type fakeChat struct {
	users        []models.Account
	unread       int
	conversation []models.Message
	sent         []string
	sentTo       int64
	markedRead   []int64
	markAllFor   *int64
	err          error
}

var _ services.ChatService = (*fakeChat)(nil)

func (f *fakeChat) Contacts(context.Context) ([]models.Account, error) { return f.users, f.err }

func (f *fakeChat) ContactName(_ context.Context, id int64) string {
	for _, u := range f.users {
		if u.ID == id {
			return u.Username
		}
	}
	return "?"
}

func (f *fakeChat) UnreadCount(context.Context) (int, error) { return f.unread, f.err }

func (f *fakeChat) Conversation(context.Context, int64, int) ([]models.Message, error) {
	return f.conversation, f.err
}

func (f *fakeChat) Send(_ context.Context, to int64, content string) (*models.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sentTo = to
	f.sent = append(f.sent, content)
	return &models.Message{ID: int64(len(f.sent)), ReceiverID: to, Content: content}, nil
}

func (f *fakeChat) MarkRead(_ context.Context, id int64) (*models.Message, error) {
	f.markedRead = append(f.markedRead, id)
	return &models.Message{ID: id, Read: true}, f.err
}

func (f *fakeChat) MarkAllRead(_ context.Context, sender *int64) (int, error) {
	f.markAllFor = sender
	return 3, f.err
}

type fakeDocs struct {
	uploaded map[int64]string
	err      error
}

var _ services.DocumentService = (*fakeDocs)(nil)

func (f *fakeDocs) Upload(_ context.Context, id int64, path string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.uploaded == nil {
		f.uploaded = map[int64]string{}
	}
	f.uploaded[id] = path
	return "papers/1/k", nil
}

func (f *fakeDocs) Download(_ context.Context, id int64) (string, error) {
	return "/tmp/paper-1-k.pdf", f.err
}

func newTestApp(input string) (*App, *fakeAuth, *fakeChat, *fakeDocs, *bytes.Buffer) {
	fa, fc, fd := &fakeAuth{}, &fakeChat{}, &fakeDocs{}
	out := &bytes.Buffer{}
	a := &App{
		logger:          logging.Nop(),
		authService:     fa,
		chatService:     fc,
		documentService: fd,
		reader:          bufio.NewReader(strings.NewReader(input)),
		out:             out,
	}
	return a, fa, fc, fd, out
}
