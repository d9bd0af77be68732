package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validCreateUser() CreateUserRequest {
	return CreateUserRequest{
		Username:       "alice",
		Email:          "alice@example.org",
		Password:       "passw0rd!",
		RepeatPassword: "passw0rd!",
	}
}

func TestCreateUserRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CreateUserRequest)
		want   error
	}{
		{name: "valid", mutate: func(r *CreateUserRequest) {}, want: nil},
		{name: "short username", mutate: func(r *CreateUserRequest) { r.Username = "al" }, want: ErrUsernameTooShort},
		{name: "blank username", mutate: func(r *CreateUserRequest) { r.Username = "   " }, want: ErrUsernameTooShort},
		{name: "cyrillic username counts runes", mutate: func(r *CreateUserRequest) { r.Username = "Ива" }, want: nil},
		{name: "bad email", mutate: func(r *CreateUserRequest) { r.Email = "alice" }, want: ErrInvalidEmail},
		{name: "display name email", mutate: func(r *CreateUserRequest) { r.Email = "Alice <alice@example.org>" }, want: ErrInvalidEmail},
		{name: "no tld", mutate: func(r *CreateUserRequest) { r.Email = "alice@localhost" }, want: ErrInvalidEmail},
		{name: "short password", mutate: func(r *CreateUserRequest) { r.Password, r.RepeatPassword = "a1", "a1" }, want: ErrWeakPassword},
		{name: "no digit", mutate: func(r *CreateUserRequest) { r.Password, r.RepeatPassword = "password", "password" }, want: ErrWeakPassword},
		{name: "no letter", mutate: func(r *CreateUserRequest) { r.Password, r.RepeatPassword = "12345678", "12345678" }, want: ErrWeakPassword},
		{name: "mismatch", mutate: func(r *CreateUserRequest) { r.RepeatPassword = "passw0rd?" }, want: ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validCreateUser()
			tt.mutate(&r)
			err := r.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateUserRequest_Normalize(t *testing.T) {
	r := CreateUserRequest{Username: "  bob ", Email: " bob@example.org\n", Password: " p "}
	r.Normalize()
	require.Equal(t, "bob", r.Username)
	require.Equal(t, "bob@example.org", r.Email)
	require.Equal(t, " p ", r.Password)
}

func TestLoginRequest_Validate(t *testing.T) {
	require.NoError(t, (&LoginRequest{Identifier: "bob", Password: "x"}).Validate())
	require.ErrorIs(t, (&LoginRequest{Identifier: " ", Password: "x"}).Validate(), ErrEmptyIdentifier)
	require.ErrorIs(t, (&LoginRequest{Identifier: "bob"}).Validate(), ErrEmptyPassword)
}
