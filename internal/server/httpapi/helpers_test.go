package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bharat3214/Genei/internal/logging"
	"github.com/bharat3214/Genei/internal/server/auth"
	"github.com/bharat3214/Genei/internal/server/config"
	"github.com/bharat3214/Genei/internal/server/events"
	"github.com/bharat3214/Genei/internal/server/metrics"
	"github.com/bharat3214/Genei/internal/server/repositories/memstore"
	"github.com/bharat3214/Genei/internal/server/repositories/repomanager"
	"github.com/bharat3214/Genei/internal/server/services"
)

const testSecret = "test-secret"

type fakePresigner struct {
	err error
}

func (f *fakePresigner) PresignPut(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://storage.test/put/" + key, nil
}

func (f *fakePresigner) PresignGet(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://storage.test/get/" + key, nil
}

type testServer struct {
	t         *testing.T
	handler   http.Handler
	rm        *repomanager.MemoryRepositoryManager
	collector *metrics.Collector
}

func newTestServerWith(t *testing.T, presigner services.Presigner) *testServer {
	t.Helper()

	rm := repomanager.NewMemoryRepositoryManager(memstore.NewStore())
	cfg := &config.Config{
		SecretKey:                    testSecret,
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 24 * time.Hour,
	}
	jwtAuth := auth.NewJWTAuthenticator(cfg.SecretKey, cfg.AccessTokenValidityDuration)
	collector := metrics.NewCollector("test")
	logger := logging.Nop()

	bus := events.NewBus()
	services.NewActivityRecorder(rm, collector, logger).Subscribe(bus)

	deps := Deps{
		Users:         services.NewUserService(rm, jwtAuth, cfg, logger),
		Catalog:       services.NewCatalogService(rm, bus, logger),
		Documents:     services.NewDocumentService(rm, presigner, services.DefaultBreakerSettings(), collector, logger),
		Messaging:     services.NewMessagingService(rm, collector, logger),
		Authenticator: jwtAuth,
		Store:         rm,
		Metrics:       collector,
		Logger:        logger,
	}
	return &testServer{t: t, handler: NewRouter(deps).Setup(), rm: rm, collector: collector}
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWith(t, &fakePresigner{})
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var rdr io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rdr = bytes.NewBufferString(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(s.t, err)
			rdr = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// register creates an account over the API and returns its id and access token.
func (s *testServer) register(username string) (int64, string) {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"password": "password123",
		"fullName": username + " Researcher",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
		AccessToken string `json:"accessToken"`
	}
	decode(s.t, rec, &resp)
	return resp.User.ID, resp.AccessToken
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}
