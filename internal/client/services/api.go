package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/cockpdf/internal/client/client"
	"github.com/dmitrijs2005/cockpdf/internal/client/models"
	"github.com/dmitrijs2005/cockpdf/internal/common"
	"github.com/dmitrijs2005/cockpdf/internal/logging"
)

// Backend endpoints, relative to the API base URL.
const (
	PathHealthServer = "/health/server"
	PathHealthDB     = "/health/db"
	PathHealthMinio  = "/health/minio"
	PathCreateUser   = "/users/create"
	PathLogin        = "/auth/login"
	PathLogout       = "/auth/logout"
	PathMe           = "/me"
	PathUploadImage  = "/users/upload_image"
	PathListImages   = "/users/get_all_user_images"
	PathDeleteImage  = "/users/delete_image"
	PathOCRToPDF     = "/users/ocr/pdf"
)

// API exposes one method per backend capability. It is built once at start
// and passed to whoever needs it.
type API struct {
	http   *client.HTTPClient
	auth   *AuthManager
	logger logging.Logger
}

type apiOptions struct {
	ttl    time.Duration
	now    func() time.Time
	logger logging.Logger
}

// Option configures an API.
type Option func(*apiOptions)

// WithTTL sets the authentication cache lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(o *apiOptions) { o.ttl = ttl }
}

// WithClock replaces time.Now for the authentication cache.
func WithClock(now func() time.Time) Option {
	return func(o *apiOptions) { o.now = now }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(o *apiOptions) { o.logger = l }
}

// NewAPI builds the facade and its AuthManager over h.
func NewAPI(h *client.HTTPClient, opts ...Option) *API {
	o := apiOptions{ttl: DefaultAuthTTL, now: time.Now, logger: logging.Nop()}
	for _, fn := range opts {
		fn(&o)
	}

	a := &API{http: h, logger: o.logger}
	a.auth = NewAuthManager(
		func(ctx context.Context) error {
			_, err := a.Me(ctx)
			return err
		},
		WithAuthTTL(o.ttl),
		WithAuthClock(o.now),
		WithAuthLogger(o.logger),
	)
	return a
}

// Auth returns the authentication manager bound to this API.
func (a *API) Auth() *AuthManager {
	return a.auth
}

// IsAuthenticated reports whether the session is authenticated, using the
// cached answer while it is fresh.
func (a *API) IsAuthenticated(ctx context.Context) (bool, error) {
	return a.auth.IsAuthenticated(ctx)
}

func requestJSON[T any](ctx context.Context, h *client.HTTPClient, path string, opts *client.RequestOptions) (T, error) {
	var out T
	p, err := h.Request(ctx, path, opts)
	if err != nil {
		return out, err
	}
	if err := p.Decode(&out); err != nil {
		return out, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// requestOpaque accepts any 2xx reply. Only a JSON body is kept; text and
// binary replies yield an empty Status.
func requestOpaque(ctx context.Context, h *client.HTTPClient, path string, opts *client.RequestOptions) (models.Status, error) {
	p, err := h.Request(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	if p.Kind != client.ContentJSON {
		return nil, nil
	}
	return models.Status(p.Bytes()), nil
}

func (a *API) HealthServer(ctx context.Context) (models.Status, error) {
	return requestJSON[models.Status](ctx, a.http, PathHealthServer, nil)
}

func (a *API) HealthDB(ctx context.Context) (models.Status, error) {
	return requestJSON[models.Status](ctx, a.http, PathHealthDB, nil)
}

func (a *API) HealthMinio(ctx context.Context) (models.Status, error) {
	return requestJSON[models.Status](ctx, a.http, PathHealthMinio, nil)
}

// CreateUser registers a new account.
func (a *API) CreateUser(ctx context.Context, body models.CreateUserRequest) (*models.User, error) {
	return requestJSON[*models.User](ctx, a.http, PathCreateUser, &client.RequestOptions{
		Method: http.MethodPost,
		Body:   body,
	})
}

// Login starts a session. The authentication cache is invalidated whether
// or not the call succeeds.
func (a *API) Login(ctx context.Context, body models.LoginRequest) (models.Status, error) {
	defer a.invalidate(ctx, "login")
	return requestOpaque(ctx, a.http, PathLogin, &client.RequestOptions{
		Method: http.MethodPost,
		Body:   body,
	})
}

// Logout ends the session. The authentication cache is invalidated whether
// or not the call succeeds.
func (a *API) Logout(ctx context.Context) (models.Status, error) {
	defer a.invalidate(ctx, "logout")
	return requestOpaque(ctx, a.http, PathLogout, &client.RequestOptions{
		Method: http.MethodPost,
	})
}

func (a *API) invalidate(ctx context.Context, reason string) {
	a.auth.Invalidate()
	a.logger.Debug(ctx, "auth cache invalidated", "reason", reason)
}

// Me returns the current user. It does not consult the authentication cache.
func (a *API) Me(ctx context.Context) (models.Status, error) {
	return requestJSON[models.Status](ctx, a.http, PathMe, nil)
}

func (a *API) UploadImage(ctx context.Context, img *models.ImageFile) (*models.Image, error) {
	return requestJSON[*models.Image](ctx, a.http, PathUploadImage, &client.RequestOptions{
		Method: http.MethodPost,
		Body:   client.NewFileForm(common.UploadFieldName, img.Name, img.ContentType, img.Reader()),
	})
}

func (a *API) GetAllUserImages(ctx context.Context) ([]models.Image, error) {
	return requestJSON[[]models.Image](ctx, a.http, PathListImages, nil)
}

func (a *API) DeleteImage(ctx context.Context, url string) (models.Status, error) {
	return requestJSON[models.Status](ctx, a.http, PathDeleteImage, &client.RequestOptions{
		Method: http.MethodDelete,
		Query:  map[string]any{"url": url},
	})
}

// DownloadImage fetches the bytes behind an image record's URL. Absolute
// URLs (object storage) are requested as-is.
func (a *API) DownloadImage(ctx context.Context, url string) ([]byte, error) {
	p, err := a.http.Request(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return p.Bytes(), nil
}

// OCRToPDF converts img to a PDF on the backend. It fails fast with
// client.ErrAuthRequired, without uploading, when the session is known to
// be unauthenticated.
func (a *API) OCRToPDF(ctx context.Context, img *models.ImageFile) ([]byte, error) {
	if err := a.auth.RequireAuth(ctx); err != nil {
		return nil, err
	}

	p, err := a.http.Request(ctx, PathOCRToPDF, &client.RequestOptions{
		Method: http.MethodPost,
		Body:   client.NewFileForm(common.UploadFieldName, img.Name, img.ContentType, img.Reader()),
	})
	if err != nil {
		return nil, err
	}
	if p.Kind != client.ContentBinary {
		return nil, fmt.Errorf("%s: expected a binary pdf, got %s (%q)", PathOCRToPDF, p.Kind, p.ContentType)
	}
	return p.Bytes(), nil
}
