package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bharat3214/Genei/internal/client/client"
	"github.com/bharat3214/Genei/internal/client/models"
	"github.com/bharat3214/Genei/internal/client/repositories/metadata"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, client.RunMigrations(context.Background(), db))
	return db
}

func getMeta(t *testing.T, db *sql.DB, k string) string {
	t.Helper()
	v, err := metadata.NewStore(db).Get(context.Background(), k)
	require.NoError(t, err)
	return v
}

// fakeClient implements client.Client with canned replies.
type fakeClient struct {
	access, refresh string

	session     *models.Session
	loginErr    error
	registerErr error
	gotPassword string

	refreshErr   error
	refreshPair  *models.TokenPair
	gotRefreshed string

	me    *models.Account
	users []models.Account

	usersCalls int
	unread     int

	conversation []models.Message
	sent         []string
	markAllFor   *int64

	document *models.DocumentURL
	docErr   error

	pingErr error
	closed  bool
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error                   { f.closed = true; return nil }
func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeClient) SetTokens(access, refresh string) {
	f.access, f.refresh = access, refresh
}
func (f *fakeClient) RefreshToken() string { return f.refresh }

func (f *fakeClient) Register(ctx context.Context, username, password, fullName string) (*models.Session, error) {
	f.gotPassword = password
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	f.SetTokens(f.session.AccessToken, f.session.RefreshToken)
	return f.session, nil
}

func (f *fakeClient) Login(ctx context.Context, username, password string) (*models.Session, error) {
	f.gotPassword = password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.SetTokens(f.session.AccessToken, f.session.RefreshToken)
	return f.session, nil
}

func (f *fakeClient) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	f.gotRefreshed = refreshToken
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	f.SetTokens(f.refreshPair.AccessToken, f.refreshPair.RefreshToken)
	return f.refreshPair, nil
}

func (f *fakeClient) Me(ctx context.Context) (*models.Account, error) { return f.me, nil }

func (f *fakeClient) Users(ctx context.Context) ([]models.Account, error) {
	f.usersCalls++
	return f.users, nil
}

func (f *fakeClient) UnreadCount(ctx context.Context) (int, error) { return f.unread, nil }

func (f *fakeClient) Conversation(ctx context.Context, otherID int64, limit, offset int) ([]models.Message, error) {
	return f.conversation, nil
}

func (f *fakeClient) SendMessage(ctx context.Context, receiverID int64, content string) (*models.Message, error) {
	f.sent = append(f.sent, content)
	return &models.Message{ID: int64(len(f.sent)), ReceiverID: receiverID, Content: content}, nil
}

func (f *fakeClient) MarkRead(ctx context.Context, messageID int64) (*models.Message, error) {
	return &models.Message{ID: messageID, Read: true}, nil
}

func (f *fakeClient) MarkAllRead(ctx context.Context, senderID *int64) (int, error) {
	f.markAllFor = senderID
	return 2, nil
}

func (f *fakeClient) RequestDocumentUpload(ctx context.Context, paperID int64) (*models.DocumentURL, error) {
	return f.document, f.docErr
}

func (f *fakeClient) DocumentURL(ctx context.Context, paperID int64) (*models.DocumentURL, error) {
	return f.document, f.docErr
}
