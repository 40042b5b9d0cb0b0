package messages

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/memstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo() *MemoryRepository {
	repo := NewMemoryRepository(memstore.NewStore().Messages)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	tick := 0
	repo.now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return repo
}

func send(t *testing.T, repo *MemoryRepository, from, to int64, content string) *models.Message {
	t.Helper()
	m, err := repo.Create(context.Background(), &models.Message{SenderID: from, ReceiverID: to, Content: content})
	require.NoError(t, err)
	return m
}

func TestMemory_CreateIsUnread(t *testing.T) {
	repo := newRepo()
	m, err := repo.Create(context.Background(), &models.Message{SenderID: 1, ReceiverID: 2, Content: "hi", Read: true})
	require.NoError(t, err)
	assert.False(t, m.Read)
	assert.Equal(t, int64(1), m.ID)
}

func TestMemory_ConversationBothDirections(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	send(t, repo, 1, 2, "a")
	send(t, repo, 2, 1, "b")
	send(t, repo, 1, 3, "other")
	send(t, repo, 1, 2, "c")

	conv, err := repo.Conversation(ctx, 2, 1, models.Page{Limit: 100})
	require.NoError(t, err)
	require.Len(t, conv, 3)
	assert.Equal(t, "a", conv[0].Content)
	assert.Equal(t, "b", conv[1].Content)
	assert.Equal(t, "c", conv[2].Content)

	page, err := repo.Conversation(ctx, 1, 2, models.Page{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "c", page[0].Content)
}

func TestMemory_ConversationTieBrokenByID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(memstore.NewStore().Messages)
	fixed := time.Now()
	repo.now = func() time.Time { return fixed }

	send(t, repo, 1, 2, "first")
	send(t, repo, 2, 1, "second")

	conv, err := repo.Conversation(ctx, 1, 2, models.Page{})
	require.NoError(t, err)
	require.Len(t, conv, 2)
	assert.Equal(t, "first", conv[0].Content)
}

func TestMemory_MarkRead(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	m := send(t, repo, 1, 2, "x")

	require.NoError(t, repo.MarkRead(ctx, m.ID))
	require.NoError(t, repo.MarkRead(ctx, m.ID))
	got, _ := repo.GetByID(ctx, m.ID)
	assert.True(t, got.Read)

	assert.ErrorIs(t, repo.MarkRead(ctx, 404), common.ErrorNotFound)
}

func TestMemory_MarkAllReadCountsOnlyFlipped(t *testing.T) {
	ctx := context.Background()
	repo := newRepo()
	send(t, repo, 1, 2, "from 1")
	m := send(t, repo, 1, 2, "from 1 again")
	send(t, repo, 3, 2, "from 3")
	send(t, repo, 2, 1, "outgoing")
	require.NoError(t, repo.MarkRead(ctx, m.ID))

	unread, _ := repo.CountUnread(ctx, 2)
	assert.Equal(t, 2, unread)

	sender := int64(1)
	n, err := repo.MarkAllRead(ctx, 2, &sender)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	unread, _ = repo.CountUnread(ctx, 2)
	assert.Equal(t, 1, unread)

	n, err = repo.MarkAllRead(ctx, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, _ = repo.MarkAllRead(ctx, 2, nil)
	assert.Zero(t, n)

	// messages sent by 2 are untouched
	unread, _ = repo.CountUnread(ctx, 1)
	assert.Equal(t, 1, unread)
}
