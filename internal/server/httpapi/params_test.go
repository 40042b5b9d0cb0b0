package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/server/models"
)

func TestPathID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"9000000000", 9000000000, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"1.5", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", tt.raw)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

		got, err := pathID(r, "id")
		if tt.wantErr {
			assert.Error(t, err, tt.raw)
			continue
		}
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestPageParams(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	p, err := listPage(r)
	require.NoError(t, err)
	assert.Equal(t, models.Page{Limit: 10}, p)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	p, err = conversationPage(r)
	require.NoError(t, err)
	assert.Equal(t, models.Page{Limit: 100}, p)

	r = httptest.NewRequest(http.MethodGet, "/?limit=25&offset=50", nil)
	p, err = listPage(r)
	require.NoError(t, err)
	assert.Equal(t, models.Page{Limit: 25, Offset: 50}, p)

	r = httptest.NewRequest(http.MethodGet, "/?limit=200", nil)
	_, err = listPage(r)
	assert.Error(t, err)
	_, err = conversationPage(r)
	assert.NoError(t, err)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{common.ErrorNotFound, http.StatusNotFound},
		{common.ErrorForbidden, http.StatusForbidden},
		{common.ErrorUnauthorized, http.StatusUnauthorized},
		{common.ErrInvalidToken, http.StatusUnauthorized},
		{common.ErrRefreshTokenExpired, http.StatusUnauthorized},
		{common.ErrorAlreadyExists, http.StatusConflict},
		{common.ErrorInvalidReceiver, http.StatusBadRequest},
		{common.ErrorInvalidInput, http.StatusBadRequest},
		{common.ErrorUnavailable, http.StatusServiceUnavailable},
		{common.ErrorInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		got, _ := statusFor(tt.err)
		assert.Equal(t, tt.want, got, tt.err.Error())
	}
}
