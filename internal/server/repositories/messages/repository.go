// Package messages stores direct messages between accounts.
package messages

import (
	"context"

	"github.com/bharat3214/Genei/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Message) (*models.Message, error)
	GetByID(ctx context.Context, id int64) (*models.Message, error)
	// Conversation returns the messages exchanged between a and b in either
	// direction, oldest first with ties broken by id.
	Conversation(ctx context.Context, a, b int64, page models.Page) ([]*models.Message, error)
	CountUnread(ctx context.Context, receiver int64) (int, error)
	// MarkRead flags a single message as read. It is a no-op for a message
	// that is already read and returns common.ErrorNotFound for unknown ids.
	MarkRead(ctx context.Context, id int64) error
	// MarkAllRead flags every unread message addressed to receiver, from
	// sender only when sender is non-nil, and returns how many changed.
	MarkAllRead(ctx context.Context, receiver int64, sender *int64) (int, error)
}
