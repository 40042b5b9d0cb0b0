package services

import (
	"context"
	"testing"
	"time"

	"github.com/bharat3214/Genei/internal/logging"
	"github.com/bharat3214/Genei/internal/server/auth"
	"github.com/bharat3214/Genei/internal/server/config"
	"github.com/bharat3214/Genei/internal/server/metrics"
	"github.com/bharat3214/Genei/internal/server/models"
	"github.com/bharat3214/Genei/internal/server/repositories/memstore"
	"github.com/bharat3214/Genei/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

func newMemoryManager() *repomanager.MemoryRepositoryManager {
	return repomanager.NewMemoryRepositoryManager(memstore.NewStore())
}

func newUserService(t *testing.T, rm repomanager.RepositoryManager) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return NewUserService(rm, auth.NewJWTAuthenticator(cfg.SecretKey, cfg.AccessTokenValidityDuration), cfg, logging.Nop())
}

func mustAccount(t *testing.T, rm repomanager.RepositoryManager, username string) *models.Account {
	t.Helper()
	a, err := rm.Accounts(nil).Create(context.Background(), &models.Account{Username: username, FullName: username})
	require.NoError(t, err)
	return a
}

func newCollector() *metrics.Collector {
	return metrics.NewCollector("test")
}
