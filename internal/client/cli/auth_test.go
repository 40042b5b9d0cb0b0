package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharat3214/Genei/internal/client/client"
	"github.com/bharat3214/Genei/internal/client/models"
)

func TestRegister_Success(t *testing.T) {
	a, f, _, _, out := newTestApp("")
	stubInputs(t, []string{"alice", "Alice Liddell"}, []byte("secret"))

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, "alice", f.regUser)
	assert.Equal(t, "Alice Liddell", f.regName)
	assert.Equal(t, "secret", string(f.regPass))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, ModeOnline, a.Mode)
	assert.Contains(t, out.String(), "Registered and logged in as alice")
}

func TestLogin(t *testing.T) {
	a, f, _, _, _ := newTestApp("")
	stubInputs(t, []string{"bob"}, []byte("pw"))

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, "bob", f.loginUser)
	assert.Equal(t, "(bob online)", a.getStatus())
}

func TestLogin_Failure(t *testing.T) {
	a, f, _, _, _ := newTestApp("")
	f.loginErr = client.ErrUnauthorized
	stubInputs(t, []string{"bob"}, []byte("bad"))

	err := a.Login(context.Background())
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "", a.getStatus())
}

func TestLogout(t *testing.T) {
	a, f, _, _, _ := newTestApp("")
	a.setUser(&models.Account{ID: 1, Username: "alice"})

	require.NoError(t, a.Logout(context.Background()))
	assert.Equal(t, 1, f.logoutCalls)
	assert.False(t, a.isLoggedIn())

	f.logoutErr = errors.New("disk full")
	a.setUser(&models.Account{ID: 1})
	assert.Error(t, a.Logout(context.Background()))
	assert.True(t, a.isLoggedIn(), "still logged in when the session could not be dropped")
}

func TestResume(t *testing.T) {
	ctx := context.Background()

	a, f, _, _, out := newTestApp("")
	f.resumeUser = &models.Account{ID: 3, Username: "carol"}
	a.resume(ctx)
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome back, carol")

	a, f, _, _, _ = newTestApp("")
	f.resumeErr = client.ErrNoSavedSession
	a.resume(ctx)
	assert.False(t, a.isLoggedIn())

	a, f, _, _, out = newTestApp("")
	f.resumeErr = client.ErrUnavailable
	f.savedName = "carol"
	a.resume(ctx)
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, ModeOffline, a.Mode)
	assert.Contains(t, out.String(), "session for carol")
}

func TestCheckOnline(t *testing.T) {
	ctx := context.Background()
	a, f, chat, _, out := newTestApp("")

	f.pingErr = client.ErrUnavailable
	a.checkOnline(ctx)
	assert.Equal(t, ModeOffline, a.Mode)

	f.pingErr = nil
	a.checkOnline(ctx)
	assert.Equal(t, ModeOnline, a.Mode)
	assert.Empty(t, out.String(), "no unread poll while logged out")

	a.setUser(&models.Account{ID: 1, Username: "alice"})
	chat.unread = 2
	a.checkOnline(ctx)
	assert.Contains(t, out.String(), "You have 2 unread message(s)")

	out.Reset()
	a.checkOnline(ctx)
	assert.Empty(t, out.String(), "announced only when the count grows")
}
