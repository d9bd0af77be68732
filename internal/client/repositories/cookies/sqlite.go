package cookies

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cockpdf/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(v, 0).UTC()
}

func (r *SQLiteRepository) Upsert(ctx context.Context, c *Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cookies (origin, name, path, value, domain, expires, secure, http_only, same_site)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(origin, name, path) DO UPDATE SET
			value = excluded.value,
			domain = excluded.domain,
			expires = excluded.expires,
			secure = excluded.secure,
			http_only = excluded.http_only,
			same_site = excluded.same_site
	`, c.Origin, c.Name, c.Path, c.Value, c.Domain, toUnix(c.Expires), c.Secure, c.HTTPOnly, c.SameSite)
	if err != nil {
		return fmt.Errorf("failed to upsert cookie[%s]: %w", c.Name, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, origin, name, path string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies WHERE origin = ? AND name = ? AND path = ?`, origin, name, path)
	if err != nil {
		return fmt.Errorf("failed to delete cookie[%s]: %w", name, err)
	}
	return nil
}

func (r *SQLiteRepository) ListByOrigin(ctx context.Context, origin string) ([]*Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT origin, name, path, value, domain, expires, secure, http_only, same_site
		FROM cookies WHERE origin = ? ORDER BY name, path
	`, origin)
	if err != nil {
		return nil, fmt.Errorf("failed to list cookies: %w", err)
	}
	defer rows.Close()

	result := make([]*Record, 0)
	for rows.Next() {
		var (
			c       Record
			expires int64
		)
		if err := rows.Scan(&c.Origin, &c.Name, &c.Path, &c.Value, &c.Domain, &expires, &c.Secure, &c.HTTPOnly, &c.SameSite); err != nil {
			return nil, fmt.Errorf("failed to scan cookie row: %w", err)
		}
		c.Expires = fromUnix(expires)
		result = append(result, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cookie rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cookies`)
	if err != nil {
		return fmt.Errorf("failed to clear cookies: %w", err)
	}
	return nil
}
