package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/cockpdf/internal/client/client"
	"github.com/dmitrijs2005/cockpdf/internal/client/models"
	"github.com/dmitrijs2005/cockpdf/internal/common"
)

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.auth == AuthAuthed
}

// Register prompts for the account fields, validates them locally and
// creates the account. Nothing is sent when validation fails.
func (a *App) Register(ctx context.Context) error {
	var req models.CreateUserRequest
	var err error

	if req.Username, err = getSimpleText(a.reader, "Enter username", os.Stdout); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Enter email", os.Stdout); err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	repeat, err := getPassword("Repeat password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(repeat)

	req.Password, req.RepeatPassword = string(password), string(repeat)
	req.Normalize()
	if err := req.Validate(); err != nil {
		return inputError{err}
	}

	user, err := a.api.CreateUser(ctx, req)
	if err != nil {
		return err
	}

	name := req.Username
	if user != nil && user.Username != "" {
		name = user.Username
	}
	printlnFn(fmt.Sprintf("Account %s created, you can log in now.", name))
	return nil
}

// Login prompts for an identifier (username or email) and a password and
// starts a session. On success the session is recorded locally.
func (a *App) Login(ctx context.Context) error {
	identifier, err := getSimpleText(a.reader, "Enter username or email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	req := models.LoginRequest{Identifier: identifier, Password: string(password)}
	if err := req.Validate(); err != nil {
		return inputError{err}
	}

	if _, err := a.api.Login(ctx, req); err != nil {
		if apiErr, ok := client.AsAPIError(err); ok && apiErr.IsAuthFailure() {
			a.setAuth(AuthGuest, "")
		}
		return err
	}

	name := identifier
	if me, err := a.api.Me(ctx); err == nil {
		if u := me.Get("username").String(); u != "" {
			name = u
		}
	} else {
		a.logger.Debug(ctx, "me after login failed", "error", err)
	}

	if err := a.session.Remember(ctx, name, a.config.BaseURL); err != nil {
		a.logger.Warn(ctx, "failed to store session", "error", err)
	}

	a.setAuth(AuthAuthed, name)
	printlnFn("Logged in as", name)
	return nil
}

// Logout ends the session on the backend and forgets it locally. Local
// state is cleared even when the backend call fails.
func (a *App) Logout(ctx context.Context) error {
	_, err := a.api.Logout(ctx)

	if cErr := a.session.Clear(ctx); cErr != nil {
		a.logger.Warn(ctx, "failed to clear stored session", "error", cErr)
	}
	a.setAuth(AuthGuest, "")

	if err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

// WhoAmI prints the backend's view of the current user.
func (a *App) WhoAmI(ctx context.Context) error {
	me, err := a.api.Me(ctx)
	if err != nil {
		if apiErr, ok := client.AsAPIError(err); ok && apiErr.IsAuthFailure() {
			a.setAuth(AuthGuest, "")
			return client.ErrAuthRequired
		}
		return err
	}

	if u := me.Get("username").String(); u != "" {
		printlnFn("Username:", u)
	}
	if e := me.Get("email").String(); e != "" {
		printlnFn("Email:", e)
	}
	printlnFn(me.String())
	return nil
}

// Status re-checks authentication (through the cache) and prints what is
// known about the stored session.
func (a *App) Status(ctx context.Context) error {
	ok, err := a.api.IsAuthenticated(ctx)
	if err != nil {
		a.setAuth(AuthUnknown, "")
		return err
	}

	info, err := a.session.Info(ctx, a.config.BaseURL)
	if err != nil {
		a.logger.Warn(ctx, "failed to read stored session", "error", err)
	}

	if !ok {
		a.setAuth(AuthGuest, "")
		printlnFn("Not authenticated")
		return nil
	}

	a.setAuth(AuthAuthed, info.Username)
	if info.Username != "" {
		printlnFn("Authenticated as", info.Username)
	} else {
		printlnFn("Authenticated")
	}
	if !info.LoginAt.IsZero() {
		printlnFn("Logged in at:", info.LoginAt.Local().Format(time.DateTime))
	}
	if !info.Expires.IsZero() {
		printlnFn("Session expires:", info.Expires.Local().Format(time.DateTime))
	}
	return nil
}
