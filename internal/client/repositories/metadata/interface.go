// Package metadata keeps small facts about the stored session next to its
// cookies: who logged in and against which backend.
package metadata

import (
	"context"
)

const (
	KeyUsername = "username"
	KeyBaseURL  = "base_url"
	KeyLoginAt  = "login_at"
)

type Repository interface {
	// Get returns "" when the key is not set.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
