package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/cockpdf/internal/client/config"
	"github.com/dmitrijs2005/cockpdf/internal/client/models"
	"github.com/dmitrijs2005/cockpdf/internal/client/session"
	"github.com/dmitrijs2005/cockpdf/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// AuthState is the prompt's view of the session.
type AuthState string

const (
	AuthUnknown AuthState = "unknown"
	AuthAuthed  AuthState = "authed"
	AuthGuest   AuthState = "guest"
)

// Backend is the part of services.API the CLI uses.
type Backend interface {
	HealthServer(ctx context.Context) (models.Status, error)
	HealthDB(ctx context.Context) (models.Status, error)
	HealthMinio(ctx context.Context) (models.Status, error)
	CreateUser(ctx context.Context, body models.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, body models.LoginRequest) (models.Status, error)
	Logout(ctx context.Context) (models.Status, error)
	Me(ctx context.Context) (models.Status, error)
	IsAuthenticated(ctx context.Context) (bool, error)
	UploadImage(ctx context.Context, img *models.ImageFile) (*models.Image, error)
	GetAllUserImages(ctx context.Context) ([]models.Image, error)
	DeleteImage(ctx context.Context, url string) (models.Status, error)
	DownloadImage(ctx context.Context, url string) ([]byte, error)
	OCRToPDF(ctx context.Context, img *models.ImageFile) ([]byte, error)
}

// SessionStore is the persisted session, see session.Session.
type SessionStore interface {
	Remember(ctx context.Context, username, baseURL string) error
	Info(ctx context.Context, baseURL string) (session.Info, error)
	Clear(ctx context.Context) error
}

type App struct {
	config  *config.Config
	api     Backend
	session SessionStore
	logger  logging.Logger
	reader  *bufio.Reader

	mu       sync.RWMutex
	mode     Mode
	auth     AuthState
	userName string
}

func NewApp(c *config.Config, api Backend, s SessionStore, logger logging.Logger) *App {
	return &App{
		config:  c,
		api:     api,
		session: s,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		auth:    AuthUnknown,
	}
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) setAuth(state AuthState, userName string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.auth = state
	a.userName = userName
}

func (a *App) getStatus() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := string(a.auth)
	if a.userName != "" {
		s = a.userName + " " + s
	}
	if a.mode != ModeUnknown {
		s = s + " " + string(a.mode)
	}
	return fmt.Sprintf("(%s)", s)
}

// Run restores the authentication state, starts the online watcher and
// blocks in the REPL until the user quits or stdin closes.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	printlnFn("Welcome to cockpdf CLI (type 'help' for commands)")

	a.restoreAuth(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader), a.config.RequestTimeout)
}

// restoreAuth asks the backend whether the stored session is still valid.
// Failures leave the state unknown.
func (a *App) restoreAuth(ctx context.Context) {
	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	ok, err := a.api.IsAuthenticated(ctx)
	if err != nil {
		a.logger.Debug(ctx, "initial auth check failed", "error", err)
		return
	}
	if !ok {
		a.setAuth(AuthGuest, "")
		return
	}

	name := ""
	if info, err := a.session.Info(ctx, a.config.BaseURL); err == nil {
		name = info.Username
	}
	a.setAuth(AuthAuthed, name)
}

func (a *App) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// StartOnlineStatusWatcher probes the server health endpoint every interval
// until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx, interval)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := a.api.HealthServer(ctx); err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}
