package services

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/bharat3214/Genei/internal/client/client"
	"github.com/bharat3214/Genei/internal/client/models"
)

// ChatService wraps the messaging endpoints and keeps a contact directory so
// the REPL can print names instead of ids.
type ChatService interface {
	Contacts(ctx context.Context) ([]models.Account, error)
	ContactName(ctx context.Context, id int64) string
	UnreadCount(ctx context.Context) (int, error)
	Conversation(ctx context.Context, otherID int64, limit int) ([]models.Message, error)
	Send(ctx context.Context, receiverID int64, content string) (*models.Message, error)
	MarkRead(ctx context.Context, messageID int64) (*models.Message, error)
	MarkAllRead(ctx context.Context, senderID *int64) (int, error)
}

type chatService struct {
	client client.Client

	mu       sync.Mutex
	contacts map[int64]models.Account
}

func NewChatService(c client.Client) ChatService {
	return &chatService{client: c}
}

// Contacts fetches the directory and refreshes the name cache.
func (s *chatService) Contacts(ctx context.Context) ([]models.Account, error) {
	users, err := s.client.Users(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.contacts = make(map[int64]models.Account, len(users))
	for _, u := range users {
		s.contacts[u.ID] = u
	}
	s.mu.Unlock()

	return users, nil
}

// ContactName returns the display name for id, falling back to "#<id>"
// when the contact is unknown or the directory cannot be fetched.
func (s *chatService) ContactName(ctx context.Context, id int64) string {
	s.mu.Lock()
	u, ok := s.contacts[id]
	loaded := s.contacts != nil
	s.mu.Unlock()

	if !ok && !loaded {
		if _, err := s.Contacts(ctx); err == nil {
			s.mu.Lock()
			u, ok = s.contacts[id]
			s.mu.Unlock()
		}
	}
	if !ok {
		return "#" + strconv.FormatInt(id, 10)
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func (s *chatService) UnreadCount(ctx context.Context) (int, error) {
	return s.client.UnreadCount(ctx)
}

// Conversation returns the first limit messages of the thread, oldest
// first. Opening it marks the messages sent to the caller as read.
func (s *chatService) Conversation(ctx context.Context, otherID int64, limit int) ([]models.Message, error) {
	return s.client.Conversation(ctx, otherID, limit, 0)
}

func (s *chatService) Send(ctx context.Context, receiverID int64, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, client.ErrBadRequest
	}
	return s.client.SendMessage(ctx, receiverID, content)
}

func (s *chatService) MarkRead(ctx context.Context, messageID int64) (*models.Message, error) {
	return s.client.MarkRead(ctx, messageID)
}

func (s *chatService) MarkAllRead(ctx context.Context, senderID *int64) (int, error) {
	return s.client.MarkAllRead(ctx, senderID)
}
