package session

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/cockpdf/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/cockpdf/internal/logging"
	"golang.org/x/net/publicsuffix"
)

// Jar is an http.CookieJar backed by a cookies.Repository.
//
// http.CookieJar has no error return, so persistence failures are logged
// and the in-memory jar stays authoritative for the running process.
type Jar struct {
	mu     sync.RWMutex
	mem    *cookiejar.Jar
	repo   cookies.Repository
	logger logging.Logger
	now    func() time.Time
}

var _ http.CookieJar = (*Jar)(nil)

func newMemJar() *cookiejar.Jar {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return jar
}

func NewJar(repo cookies.Repository, logger logging.Logger) *Jar {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Jar{
		mem:    newMemJar(),
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.mem.Cookies(u)
}

func (j *Jar) SetCookies(u *url.URL, cs []*http.Cookie) {
	j.mu.RLock()
	j.mem.SetCookies(u, cs)
	j.mu.RUnlock()

	ctx := context.Background()
	origin := originOf(u)
	now := j.now()

	for _, c := range cs {
		path := c.Path
		if path == "" || path[0] != '/' {
			path = defaultPath(u.Path)
		}

		if expired(c, now) {
			if err := j.repo.Delete(ctx, origin, c.Name, path); err != nil {
				j.logger.Warn(ctx, "failed to drop stored cookie", "name", c.Name, "error", err)
			}
			continue
		}

		rec := &cookies.Record{
			Origin:   origin,
			Name:     c.Name,
			Path:     path,
			Value:    c.Value,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
			SameSite: int(c.SameSite),
		}
		if c.MaxAge > 0 {
			rec.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}

		if err := j.repo.Upsert(ctx, rec); err != nil {
			j.logger.Warn(ctx, "failed to persist cookie", "name", c.Name, "error", err)
		}
	}
}

// Load replays the cookies stored for u's origin into the in-memory jar.
// Expired records are deleted instead.
func (j *Jar) Load(ctx context.Context, u *url.URL) error {
	recs, err := j.repo.ListByOrigin(ctx, originOf(u))
	if err != nil {
		return err
	}

	now := j.now()
	j.mu.RLock()
	defer j.mu.RUnlock()

	for _, r := range recs {
		c := recordCookie(r)
		// a session cookie still expires with the token it carries
		if exp, ok := Expiry(c); ok && !exp.After(now) {
			if err := j.repo.Delete(ctx, r.Origin, r.Name, r.Path); err != nil {
				return err
			}
			continue
		}

		target := &url.URL{Scheme: u.Scheme, Host: u.Host, Path: r.Path}
		j.mem.SetCookies(target, []*http.Cookie{c})
	}
	return nil
}

// Stored returns the persisted cookies for u's origin with their attributes,
// which the in-memory jar does not expose.
func (j *Jar) Stored(ctx context.Context, u *url.URL) ([]*http.Cookie, error) {
	recs, err := j.repo.ListByOrigin(ctx, originOf(u))
	if err != nil {
		return nil, err
	}
	out := make([]*http.Cookie, 0, len(recs))
	for _, r := range recs {
		out = append(out, recordCookie(r))
	}
	return out, nil
}

// Reset drops every in-memory cookie. Stored records are untouched.
func (j *Jar) Reset() {
	j.mu.Lock()
	j.mem = newMemJar()
	j.mu.Unlock()
}

func recordCookie(r *cookies.Record) *http.Cookie {
	return &http.Cookie{
		Name:     r.Name,
		Value:    r.Value,
		Path:     r.Path,
		Domain:   r.Domain,
		Expires:  r.Expires,
		Secure:   r.Secure,
		HttpOnly: r.HTTPOnly,
		SameSite: http.SameSite(r.SameSite),
	}
}

func originOf(u *url.URL) string {
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host)
}

func expired(c *http.Cookie, now time.Time) bool {
	if c.MaxAge < 0 {
		return true
	}
	return c.MaxAge == 0 && !c.Expires.IsZero() && !c.Expires.After(now)
}

// defaultPath follows RFC 6265 section 5.1.4.
func defaultPath(path string) string {
	if path == "" || path[0] != '/' {
		return "/"
	}
	i := strings.LastIndex(path, "/")
	if i == 0 {
		return "/"
	}
	return path[:i]
}
