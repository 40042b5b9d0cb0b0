package httpapi

import (
	"net/http"

	"github.com/bharat3214/Genei/internal/logging"
	"github.com/bharat3214/Genei/internal/server/services"
)

// MessageHandler serves direct messages. The sender and reader are always
// the signed-in account.
type MessageHandler struct {
	messaging *services.MessagingService
	logger    logging.Logger
}

func NewMessageHandler(messaging *services.MessagingService, logger logging.Logger) *MessageHandler {
	return &MessageHandler{messaging: messaging, logger: logger}
}

type SendMessageRequest struct {
	ReceiverID int64  `json:"receiverId" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required,max=10000"`
}

type MarkAllReadRequest struct {
	SenderID *int64 `json:"senderId,omitempty" validate:"omitempty,gt=0"`
}

type CountResponse struct {
	Count int `json:"count"`
}

// UnreadCount handles GET /api/messages/unread-count
func (h *MessageHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	n, err := h.messaging.UnreadCount(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, CountResponse{Count: n})
}

// Conversation handles GET /api/messages/conversation/{otherId}. Opening a
// conversation marks the other party's messages to the caller as read.
func (h *MessageHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	otherID, err := pathID(r, "otherId")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := conversationPage(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	msgs, err := h.messaging.OpenConversation(r.Context(), userID, otherID, page)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, nonNil(msgs))
}

// Send handles POST /api/messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req SendMessageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	msg, err := h.messaging.Send(r.Context(), userID, req.ReceiverID, req.Content)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

// MarkRead handles PATCH /api/messages/{id}/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.messaging.MarkAsRead(r.Context(), id, userID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, msg)
}

// MarkAllRead handles PATCH /api/messages/read-all. The body is optional.
func (h *MessageHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req MarkAllReadRequest
	if !decodeOptionalAndValidate(w, r, &req) {
		return
	}

	n, err := h.messaging.MarkAllAsRead(r.Context(), userID, req.SenderID)
	if err != nil {
		respondServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, CountResponse{Count: n})
}
