package session

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return s
}

func TestExpiry(t *testing.T) {
	exp := time.Date(2031, 5, 6, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   time.Time
		ok     bool
	}{
		{name: "nil cookie", cookie: nil},
		{name: "expires attribute wins", cookie: &http.Cookie{Value: "x", Expires: exp}, want: exp, ok: true},
		{
			name:   "jwt exp claim",
			cookie: &http.Cookie{Value: signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})},
			want:   exp,
			ok:     true,
		},
		{
			name:   "jwt without exp",
			cookie: &http.Cookie{Value: signed(t, jwt.RegisteredClaims{Subject: "alice"})},
		},
		{name: "opaque value", cookie: &http.Cookie{Value: "not-a-token"}},
		{name: "empty value", cookie: &http.Cookie{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Expiry(tt.cookie)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v want %v", got, tt.want)
			}
		})
	}
}
