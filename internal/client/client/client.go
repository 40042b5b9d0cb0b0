package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bharat3214/Genei/internal/client/models"
	"github.com/bharat3214/Genei/internal/common"
)

// Client is the API surface the CLI services depend on.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	SetTokens(access, refresh string)
	RefreshToken() string

	Register(ctx context.Context, username, password, fullName string) (*models.Session, error)
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Me(ctx context.Context) (*models.Account, error)
	Users(ctx context.Context) ([]models.Account, error)

	UnreadCount(ctx context.Context) (int, error)
	Conversation(ctx context.Context, otherID int64, limit, offset int) ([]models.Message, error)
	SendMessage(ctx context.Context, receiverID int64, content string) (*models.Message, error)
	MarkRead(ctx context.Context, messageID int64) (*models.Message, error)
	MarkAllRead(ctx context.Context, senderID *int64) (int, error)

	RequestDocumentUpload(ctx context.Context, paperID int64) (*models.DocumentURL, error)
	DocumentURL(ctx context.Context, paperID int64) (*models.DocumentURL, error)
}

// HTTPClient talks to the REST API. It attaches the access token to every
// authenticated call and, when the server reports it expired, refreshes the
// pair once and retries.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) SetTokens(access, refresh string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken, c.refreshToken = access, refresh
}

func (c *HTTPClient) RefreshToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshToken
}

func (c *HTTPClient) tokens() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.refreshToken
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil, false)
}

func (c *HTTPClient) Register(ctx context.Context, username, password, fullName string) (*models.Session, error) {
	req := map[string]string{"username": username, "password": password, "fullName": fullName}
	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &s, false); err != nil {
		return nil, err
	}
	c.SetTokens(s.AccessToken, s.RefreshToken)
	return &s, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.Session, error) {
	req := map[string]string{"username": username, "password": password}
	var s models.Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &s, false); err != nil {
		return nil, err
	}
	c.SetTokens(s.AccessToken, s.RefreshToken)
	return &s, nil
}

func (c *HTTPClient) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	var pair models.TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", map[string]string{"refreshToken": refreshToken}, &pair, false); err != nil {
		return nil, err
	}
	c.SetTokens(pair.AccessToken, pair.RefreshToken)
	return &pair, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Account, error) {
	var a models.Account
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &a, true); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *HTTPClient) Users(ctx context.Context) ([]models.Account, error) {
	var out []models.Account
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/messages/unread-count", nil, &resp, true); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *HTTPClient) Conversation(ctx context.Context, otherID int64, limit, offset int) ([]models.Message, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	path := fmt.Sprintf("/api/messages/conversation/%d", otherID)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out []models.Message
	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SendMessage(ctx context.Context, receiverID int64, content string) (*models.Message, error) {
	req := map[string]any{"receiverId": receiverID, "content": content}
	var m models.Message
	if err := c.do(ctx, http.MethodPost, "/api/messages", req, &m, true); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) MarkRead(ctx context.Context, messageID int64) (*models.Message, error) {
	var m models.Message
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/messages/%d/read", messageID), nil, &m, true); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *HTTPClient) MarkAllRead(ctx context.Context, senderID *int64) (int, error) {
	var body any
	if senderID != nil {
		body = map[string]int64{"senderId": *senderID}
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/messages/read-all", body, &resp, true); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *HTTPClient) RequestDocumentUpload(ctx context.Context, paperID int64) (*models.DocumentURL, error) {
	var d models.DocumentURL
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/research-papers/%d/document", paperID), nil, &d, true); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) DocumentURL(ctx context.Context, paperID int64) (*models.DocumentURL, error) {
	var d models.DocumentURL
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/research-papers/%d/document", paperID), nil, &d, true); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	err := c.send(ctx, method, path, body, out, authed)
	if !authed || !isTokenExpired(err) {
		return err
	}

	_, refresh := c.tokens()
	if refresh == "" {
		return err
	}
	if _, rerr := c.Refresh(ctx, refresh); rerr != nil {
		return rerr
	}
	return c.send(ctx, method, path, body, out, authed)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, body, out any, authed bool) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		access, _ := c.tokens()
		if access == "" {
			return ErrUnauthorized
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return mapError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpectedReply, err)
	}
	return nil
}

func mapError(resp *http.Response) error {
	var body struct {
		Message string       `json:"message"`
		Errors  []FieldError `json:"errors"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Message == "" {
		body.Message = http.StatusText(resp.StatusCode)
	}

	e := &APIError{Status: resp.StatusCode, Message: body.Message, Fields: body.Errors}
	switch resp.StatusCode {
	case http.StatusBadRequest:
		e.kind = ErrBadRequest
	case http.StatusUnauthorized:
		e.kind = ErrUnauthorized
	case http.StatusForbidden:
		e.kind = ErrForbidden
	case http.StatusNotFound:
		e.kind = ErrNotFound
	case http.StatusConflict:
		e.kind = ErrAlreadyExists
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		e.kind = ErrUnavailable
	default:
		e.kind = ErrUnexpectedReply
	}
	return e
}

// isTokenExpired reports whether err is the server rejecting an expired access token.
func isTokenExpired(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized && apiErr.Message == "Token has expired"
}
