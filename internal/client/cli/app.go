package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/bharat3214/Genei/internal/client/client"
	"github.com/bharat3214/Genei/internal/client/config"
	"github.com/bharat3214/Genei/internal/client/models"
	"github.com/bharat3214/Genei/internal/client/services"
	"github.com/bharat3214/Genei/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config          *config.Config
	db              *sql.DB
	logger          logging.Logger
	authService     services.AuthService
	chatService     services.ChatService
	documentService services.DocumentService

	mu         sync.Mutex
	user       *models.Account
	Mode       Mode
	lastUnread int

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger, err := logging.New("slog", c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)

	return &App{
		config:          c,
		db:              db,
		logger:          logger,
		authService:     services.NewAuthService(apiClient, db, c.ServerURL),
		chatService:     services.NewChatService(apiClient),
		documentService: services.NewDocumentService(apiClient, c.DownloadDir),
		reader:          bufio.NewReader(os.Stdin),
		out:             os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close(context.Background())
	a.Root(ctx)
}

// Close saves the session and releases the API client and the local database.
func (a *App) Close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.logger.Warn(ctx, "failed to close session", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(ctx, "failed to close database", "error", err)
		}
	}
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) setUser(u *models.Account) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u
	a.lastUnread = 0
}

func (a *App) currentUser() *models.Account {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *App) isLoggedIn() bool {
	return a.currentUser() != nil
}

// StartOnlineStatusWatcher pings the server every interval and tracks the
// connectivity mode. While logged in it also announces newly arrived unread
// messages.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.authService.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)

	if !a.isLoggedIn() {
		return
	}
	n, err := a.chatService.UnreadCount(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			a.logger.Debug(ctx, "unread poll failed", "error", err)
		}
		return
	}

	a.mu.Lock()
	grew := n > a.lastUnread
	a.lastUnread = n
	a.mu.Unlock()

	if grew {
		fmt.Fprintf(a.out, "\nYou have %d unread message(s)\n", n)
	}
}
