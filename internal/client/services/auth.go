// Package services contains the client-side application services: the
// authentication manager and the API facade built on top of client.HTTPClient.
package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/cockpdf/internal/client/client"
	"github.com/dmitrijs2005/cockpdf/internal/logging"
	"golang.org/x/sync/singleflight"
)

// DefaultAuthTTL is how long a confirmed authentication result is trusted.
const DefaultAuthTTL = 30 * time.Second

// IdentityFunc performs a live "who am I" call. A nil error means the
// session is authenticated.
type IdentityFunc func(ctx context.Context) error

type authCache struct {
	ok bool
	at time.Time
}

// AuthManager answers whether the current session is authenticated, caching
// confirmed answers for a TTL.
//
// Only two outcomes are cached: success (true) and an *client.APIError with
// status 401 or 403 (false). Any other failure is returned to the caller and
// leaves the cache empty, so a network blip is never remembered as
// "logged out".
//
// Concurrent callers that miss the cache share a single in-flight identity
// check. The shared check runs on its own context: a caller that gives up
// only stops waiting, and the check is cancelled once no caller is left.
// Invalidate discards the cache and detaches any check already in flight,
// so its result is not stored.
type AuthManager struct {
	check  IdentityFunc
	ttl    time.Duration
	now    func() time.Time
	logger logging.Logger

	mu     sync.Mutex
	cached *authCache
	gen    uint64
	seq    uint64
	calls  map[uint64]*authCall
	flight singleflight.Group
}

// authCall is one shared identity check and the callers waiting on it.
type authCall struct {
	key     string
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// AuthOption configures an AuthManager.
type AuthOption func(*AuthManager)

// WithAuthTTL sets the cache lifetime. A non-positive TTL disables caching.
func WithAuthTTL(ttl time.Duration) AuthOption {
	return func(m *AuthManager) { m.ttl = ttl }
}

// WithAuthClock replaces time.Now.
func WithAuthClock(now func() time.Time) AuthOption {
	return func(m *AuthManager) { m.now = now }
}

// WithAuthLogger sets the logger for cache hits and misses.
func WithAuthLogger(l logging.Logger) AuthOption {
	return func(m *AuthManager) { m.logger = l }
}

// NewAuthManager creates a manager that verifies sessions with check.
func NewAuthManager(check IdentityFunc, opts ...AuthOption) *AuthManager {
	m := &AuthManager{
		check:  check,
		ttl:    DefaultAuthTTL,
		now:    time.Now,
		logger: logging.Nop(),
		calls:  make(map[uint64]*authCall),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// fresh must be called with mu held.
func (m *AuthManager) fresh() bool {
	return m.cached != nil && m.now().Sub(m.cached.at) < m.ttl
}

// IsAuthenticated returns the cached answer while it is fresh, otherwise
// performs a live identity check. Cancelling ctx returns ctx.Err() at once.
func (m *AuthManager) IsAuthenticated(ctx context.Context) (bool, error) {
	m.mu.Lock()
	if m.fresh() {
		ok := m.cached.ok
		m.mu.Unlock()
		m.logger.Debug(ctx, "auth cache hit", "authenticated", ok)
		return ok, nil
	}
	c, ch := m.join(ctx)
	m.mu.Unlock()

	m.logger.Debug(ctx, "auth cache miss")

	select {
	case res := <-ch:
		if res.Err != nil {
			return false, res.Err
		}
		return res.Val.(bool), nil
	case <-ctx.Done():
		m.leave(c)
		return false, ctx.Err()
	}
}

// join attaches the caller to the check in flight for the current
// generation, starting one if there is none. mu must be held.
func (m *AuthManager) join(ctx context.Context) (*authCall, <-chan singleflight.Result) {
	gen := m.gen
	c := m.calls[gen]
	if c == nil {
		m.seq++
		sctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		c = &authCall{
			key:    strconv.FormatUint(gen, 10) + "/" + strconv.FormatUint(m.seq, 10),
			ctx:    sctx,
			cancel: cancel,
		}
		m.calls[gen] = c
	}
	c.waiters++

	// DoChan starts fn on its own goroutine, so holding mu here is safe.
	ch := m.flight.DoChan(c.key, func() (any, error) {
		defer m.finish(gen, c)
		return m.verify(c.ctx, gen)
	})
	return c, ch
}

// leave detaches a caller that stopped waiting. The last one out cancels
// the shared check.
func (m *AuthManager) leave(c *authCall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.waiters--
	if c.waiters > 0 {
		return
	}
	c.cancel()
	for gen, cur := range m.calls {
		if cur == c {
			delete(m.calls, gen)
		}
	}
}

func (m *AuthManager) finish(gen uint64, c *authCall) {
	m.mu.Lock()
	if m.calls[gen] == c {
		delete(m.calls, gen)
	}
	m.mu.Unlock()
	c.cancel()
}

func (m *AuthManager) verify(ctx context.Context, gen uint64) (bool, error) {
	ok := true
	if err := m.check(ctx); err != nil {
		apiErr, isAPI := client.AsAPIError(err)
		if !isAPI || !apiErr.IsAuthFailure() {
			return false, err
		}
		ok = false
	}

	m.mu.Lock()
	if m.gen == gen {
		m.cached = &authCache{ok: ok, at: m.now()}
	}
	m.mu.Unlock()

	return ok, nil
}

// RequireAuth returns client.ErrAuthRequired when the session is confirmed
// unauthenticated. A failed check is returned unchanged.
func (m *AuthManager) RequireAuth(ctx context.Context) error {
	ok, err := m.IsAuthenticated(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return client.ErrAuthRequired
	}
	return nil
}

// Invalidate clears the cache. The next IsAuthenticated performs a live check.
func (m *AuthManager) Invalidate() {
	m.mu.Lock()
	m.cached = nil
	m.gen++
	m.mu.Unlock()
}
