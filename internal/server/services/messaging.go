package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/logging"
	"github.com/bharat3214/Genei/internal/server/metrics"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/repomanager"
)

// MessagingService handles direct messages between accounts and their
// read state. Sending a message does not touch the activity feed.
type MessagingService struct {
	repomanager repomanager.RepositoryManager
	metrics     *metrics.Collector
	logger      logging.Logger
}

func NewMessagingService(m repomanager.RepositoryManager, collector *metrics.Collector, logger logging.Logger) *MessagingService {
	return &MessagingService{
		repomanager: m,
		metrics:     collector,
		logger:      logger.With("module", "messaging"),
	}
}

// Send stores a new unread message. The receiver must be a known account,
// otherwise common.ErrorInvalidReceiver is returned and nothing is stored.
func (s *MessagingService) Send(ctx context.Context, sender, receiver int64, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, common.ErrorInvalidInput
	}

	db := s.repomanager.DB()
	if _, err := s.repomanager.Accounts(db).GetByID(ctx, receiver); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorInvalidReceiver
		}
		return nil, fmt.Errorf("error looking up receiver: %w", err)
	}

	msg, err := s.repomanager.Messages(db).Create(ctx, &models.Message{
		Content:    content,
		SenderID:   sender,
		ReceiverID: receiver,
	})
	if err != nil {
		return nil, fmt.Errorf("error storing message: %w", err)
	}

	s.metrics.MessagesSent.Inc()
	s.logger.Debug(ctx, "message sent", "message_id", msg.ID, "sender_id", sender, "receiver_id", receiver)
	return msg, nil
}

// Conversation returns one page of the messages between a and b in either
// direction, oldest first.
func (s *MessagingService) Conversation(ctx context.Context, a, b int64, page models.Page) ([]*models.Message, error) {
	return s.repomanager.Messages(s.repomanager.DB()).Conversation(ctx, a, b, page)
}

// OpenConversation is what the caller sees when opening a chat with other:
// the requested page, followed by marking everything other sent to the
// caller as read. The returned messages reflect their state before the
// mark, so newly read messages still show read=false.
func (s *MessagingService) OpenConversation(ctx context.Context, caller, other int64, page models.Page) ([]*models.Message, error) {
	conv, err := s.Conversation(ctx, caller, other, page)
	if err != nil {
		return nil, err
	}

	if _, err := s.MarkAllAsRead(ctx, caller, &other); err != nil {
		return nil, err
	}
	return conv, nil
}

func (s *MessagingService) UnreadCount(ctx context.Context, account int64) (int, error) {
	return s.repomanager.Messages(s.repomanager.DB()).CountUnread(ctx, account)
}

// MarkAsRead flags a message as read on behalf of requester, who must be
// its receiver. Repeating the call is harmless.
func (s *MessagingService) MarkAsRead(ctx context.Context, messageID, requester int64) (*models.Message, error) {
	repo := s.repomanager.Messages(s.repomanager.DB())

	msg, err := repo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.ReceiverID != requester {
		return nil, common.ErrorForbidden
	}
	if msg.Read {
		return msg, nil
	}

	if err := repo.MarkRead(ctx, messageID); err != nil {
		return nil, err
	}
	msg.Read = true
	s.metrics.MessagesMarkedRead.Inc()
	return msg, nil
}

// MarkAllAsRead flags every unread message addressed to receiver, limited
// to one sender when sender is non-nil. It returns how many messages
// changed state.
func (s *MessagingService) MarkAllAsRead(ctx context.Context, receiver int64, sender *int64) (int, error) {
	n, err := s.repomanager.Messages(s.repomanager.DB()).MarkAllRead(ctx, receiver, sender)
	if err != nil {
		return 0, fmt.Errorf("error marking messages read: %w", err)
	}
	if n > 0 {
		s.metrics.MessagesMarkedRead.Add(float64(n))
	}
	return n, nil
}
