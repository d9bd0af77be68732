package models

import (
	"errors"
	"net/mail"
	"strings"
	"unicode"
)

var (
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrWeakPassword     = errors.New("password must be at least 8 characters and contain a letter and a digit")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrEmptyIdentifier  = errors.New("identifier is required")
	ErrEmptyPassword    = errors.New("password is required")
)

const (
	minUsernameLen = 3
	minPasswordLen = 8
)

// CreateUserRequest is the body of POST /users/create.
type CreateUserRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	RepeatPassword string `json:"repeat_password"`
}

// Normalize trims the username and email. Passwords are left as typed.
func (r *CreateUserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
}

// Validate reports the first rule the request breaks.
func (r *CreateUserRequest) Validate() error {
	if len([]rune(strings.TrimSpace(r.Username))) < minUsernameLen {
		return ErrUsernameTooShort
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	if err := ValidatePassword(r.Password); err != nil {
		return err
	}
	if r.Password != r.RepeatPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// ValidateEmail accepts a bare address such as bob@example.com.
func ValidateEmail(s string) error {
	s = strings.TrimSpace(s)
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndex(s, "@")+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the password policy.
func ValidatePassword(s string) error {
	if len([]rune(s)) < minPasswordLen {
		return ErrWeakPassword
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter || !digit {
		return ErrWeakPassword
	}
	return nil
}

// LoginRequest is the body of POST /auth/login. Identifier is a username or
// an email.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Identifier) == "" {
		return ErrEmptyIdentifier
	}
	if r.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}

// User is the record returned by POST /users/create.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
