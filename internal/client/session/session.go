package session

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/cockpdf/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/cockpdf/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/cockpdf/internal/dbx"
	"github.com/dmitrijs2005/cockpdf/internal/logging"
)

// Info describes the stored session for display.
type Info struct {
	Username string
	LoginAt  time.Time
	// Expires is zero when no stored cookie advertises an expiry.
	Expires time.Time
}

// Session ties the local database, the persistent jar and the session
// metadata together.
type Session struct {
	db     *sql.DB
	jar    *Jar
	meta   metadata.Repository
	logger logging.Logger
	now    func() time.Time
}

// Open opens (creating if needed) the session database at dsn.
func Open(ctx context.Context, dsn string, logger logging.Logger) (*Session, error) {
	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return New(db, logger), nil
}

// New builds a Session on an already migrated database.
func New(db *sql.DB, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Session{
		db:     db,
		jar:    NewJar(cookies.NewSQLiteRepository(db), logger),
		meta:   metadata.NewSQLiteRepository(db),
		logger: logger,
		now:    time.Now,
	}
}

func (s *Session) Jar() *Jar {
	return s.jar
}

// Restore loads the cookies stored for baseURL into the jar. A session that
// was recorded against a different backend is discarded.
func (s *Session) Restore(ctx context.Context, baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}

	stored, err := s.meta.Get(ctx, metadata.KeyBaseURL)
	if err != nil {
		return err
	}
	if stored != "" && stored != baseURL {
		s.logger.Info(ctx, "stored session belongs to another backend, discarding", "stored", stored, "current", baseURL)
		return s.Clear(ctx)
	}

	return s.jar.Load(ctx, u)
}

// Remember records who logged in against which backend.
func (s *Session) Remember(ctx context.Context, username, baseURL string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		meta := metadata.NewSQLiteRepository(tx)
		if err := meta.Set(ctx, metadata.KeyUsername, username); err != nil {
			return err
		}
		if err := meta.Set(ctx, metadata.KeyBaseURL, baseURL); err != nil {
			return err
		}
		return meta.Set(ctx, metadata.KeyLoginAt, s.now().UTC().Format(time.RFC3339))
	})
}

// Info reports the stored session for baseURL.
func (s *Session) Info(ctx context.Context, baseURL string) (Info, error) {
	var info Info

	m, err := s.meta.List(ctx)
	if err != nil {
		return info, err
	}
	info.Username = m[metadata.KeyUsername]
	if at, err := time.Parse(time.RFC3339, m[metadata.KeyLoginAt]); err == nil {
		info.LoginAt = at
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return info, fmt.Errorf("parse base url: %w", err)
	}
	stored, err := s.jar.Stored(ctx, u)
	if err != nil {
		return info, err
	}
	for _, c := range stored {
		if exp, ok := Expiry(c); ok && exp.After(info.Expires) {
			info.Expires = exp
		}
	}
	return info, nil
}

// Clear forgets the session: stored cookies, metadata and the in-memory jar.
func (s *Session) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := cookies.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return metadata.NewSQLiteRepository(tx).Clear(ctx)
	})
	s.jar.Reset()
	return err
}

func (s *Session) Close() error {
	return s.db.Close()
}
