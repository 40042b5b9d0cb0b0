package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func newServer(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewHTTPClient(ts.URL+"/", 2*time.Second)
}

func TestLogin_StoresTokens(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "alice", body["username"])

		writeJSON(w, http.StatusOK, map[string]any{
			"user":         map[string]any{"id": 7, "username": "alice"},
			"accessToken":  "acc",
			"refreshToken": "ref",
		})
	})

	s, err := c.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.User.ID)
	assert.Equal(t, "acc", s.AccessToken)
	assert.Equal(t, "ref", c.RefreshToken())
}

func TestAuthedCall_SendsBearer(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]int{"count": 3})
	})
	c.SetTokens("acc", "ref")

	n, err := c.UnreadCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestAuthedCall_WithoutToken(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", time.Second)
	_, err := c.Users(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestExpiredToken_RefreshesAndRetries(t *testing.T) {
	var calls atomic.Int32
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/refresh":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "old-ref", body["refreshToken"])
			writeJSON(w, http.StatusOK, map[string]string{"accessToken": "new-acc", "refreshToken": "new-ref"})
		case "/api/users":
			calls.Add(1)
			if r.Header.Get("Authorization") != "Bearer new-acc" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token has expired"})
				return
			}
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 2, "username": "bob"}})
		}
	})
	c.SetTokens("old-acc", "old-ref")

	users, err := c.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "bob", users[0].Username)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, "new-ref", c.RefreshToken())
}

func TestInvalidToken_DoesNotRefresh(t *testing.T) {
	var refreshed atomic.Bool
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/refresh" {
			refreshed.Store(true)
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
	})
	c.SetTokens("acc", "ref")

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, refreshed.Load())
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrAlreadyExists},
		{http.StatusServiceUnavailable, ErrUnavailable},
		{http.StatusInternalServerError, ErrUnexpectedReply},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]any{
					"message": "nope",
					"errors":  []map[string]string{{"field": "content", "rule": "required", "message": "content is required"}},
				})
			})
			c.SetTokens("acc", "ref")

			_, err := c.SendMessage(context.Background(), 2, "")
			require.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Contains(t, apiErr.Error(), "content is required")
		})
	}
}

func TestServerDown_IsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := NewHTTPClient(url, time.Second)
	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestConversation_QueryAndMarkAllRead(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/messages/conversation/5":
			assert.Equal(t, "20", r.URL.Query().Get("limit"))
			assert.Empty(t, r.URL.Query().Get("offset"))
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 1, "content": "hi", "senderId": 5, "receiverId": 1}})
		case "/api/messages/read-all":
			assert.Equal(t, http.MethodPatch, r.Method)
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"senderId":5}`, string(body))
			writeJSON(w, http.StatusOK, map[string]int{"count": 1})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	c.SetTokens("acc", "ref")

	msgs, err := c.Conversation(context.Background(), 5, 20, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Content)

	sender := int64(5)
	n, err := c.MarkAllRead(context.Background(), &sender)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
