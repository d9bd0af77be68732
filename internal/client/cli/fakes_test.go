package cli

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/cockpdf/internal/client/config"
	"github.com/dmitrijs2005/cockpdf/internal/client/models"
	"github.com/dmitrijs2005/cockpdf/internal/client/session"
	"github.com/dmitrijs2005/cockpdf/internal/logging"
)

type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	healthServer, healthDB, healthMinio models.Status
	healthServerErr, healthDBErr        error
	healthMinioErr                      error

	createdUser *models.User
	createReq   models.CreateUserRequest
	createErr   error

	loginReq  models.LoginRequest
	loginErr  error
	logoutErr error

	me    models.Status
	meErr error

	authed  bool
	authErr error

	uploaded  *models.ImageFile
	uploadRec *models.Image
	uploadErr error

	images    []models.Image
	imagesErr error

	deletedURL string
	deleteErr  error

	download    []byte
	downloadErr error

	ocrImage *models.ImageFile
	pdf      []byte
	ocrErr   error
}

func (f *fakeBackend) note(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeBackend) HealthServer(context.Context) (models.Status, error) {
	f.note("health/server")
	return f.healthServer, f.healthServerErr
}
func (f *fakeBackend) HealthDB(context.Context) (models.Status, error) {
	f.note("health/db")
	return f.healthDB, f.healthDBErr
}
func (f *fakeBackend) HealthMinio(context.Context) (models.Status, error) {
	f.note("health/minio")
	return f.healthMinio, f.healthMinioErr
}
func (f *fakeBackend) CreateUser(_ context.Context, body models.CreateUserRequest) (*models.User, error) {
	f.note("create")
	f.createReq = body
	return f.createdUser, f.createErr
}
func (f *fakeBackend) Login(_ context.Context, body models.LoginRequest) (models.Status, error) {
	f.note("login")
	f.loginReq = body
	return models.Status(`{"success":true}`), f.loginErr
}
func (f *fakeBackend) Logout(context.Context) (models.Status, error) {
	f.note("logout")
	return nil, f.logoutErr
}
func (f *fakeBackend) Me(context.Context) (models.Status, error) {
	f.note("me")
	return f.me, f.meErr
}
func (f *fakeBackend) IsAuthenticated(context.Context) (bool, error) {
	f.note("is-authenticated")
	return f.authed, f.authErr
}
func (f *fakeBackend) UploadImage(_ context.Context, img *models.ImageFile) (*models.Image, error) {
	f.note("upload")
	f.uploaded = img
	return f.uploadRec, f.uploadErr
}
func (f *fakeBackend) GetAllUserImages(context.Context) ([]models.Image, error) {
	f.note("images")
	return f.images, f.imagesErr
}
func (f *fakeBackend) DeleteImage(_ context.Context, url string) (models.Status, error) {
	f.note("delete")
	f.deletedURL = url
	return nil, f.deleteErr
}
func (f *fakeBackend) DownloadImage(context.Context, string) ([]byte, error) {
	f.note("download")
	return f.download, f.downloadErr
}
func (f *fakeBackend) OCRToPDF(_ context.Context, img *models.ImageFile) ([]byte, error) {
	f.note("ocr")
	f.ocrImage = img
	return f.pdf, f.ocrErr
}

type fakeSession struct {
	info     session.Info
	infoErr  error
	username string
	baseURL  string
	cleared  bool
	clearErr error
}

func (f *fakeSession) Remember(_ context.Context, username, baseURL string) error {
	f.username, f.baseURL = username, baseURL
	return nil
}
func (f *fakeSession) Info(context.Context, string) (session.Info, error) {
	return f.info, f.infoErr
}
func (f *fakeSession) Clear(context.Context) error {
	f.cleared = true
	return f.clearErr
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.OutputDir = t.TempDir()
	c.RequestTimeout = time.Minute
	return c
}

func newTestApp(t *testing.T, be *fakeBackend, st *fakeSession) *App {
	t.Helper()
	return &App{
		config:  testConfig(t),
		api:     be,
		session: st,
		logger:  logging.Nop(),
		reader:  bufio.NewReader(strings.NewReader("")),
		auth:    AuthUnknown,
	}
}

// stubInputs answers text prompts and password prompts from the given
// queues, in order.
func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		v := texts[0]
		texts = texts[1:]
		return v, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		v := passwords[0]
		passwords = passwords[1:]
		return []byte(v), nil
	}
}
