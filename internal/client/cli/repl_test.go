package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/cockpdf/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	err      error

	calls     []string
	deadlines []bool
}

func (f *fakeExec) record(ctx context.Context, call string) error {
	f.calls = append(f.calls, call)
	_, ok := ctx.Deadline()
	f.deadlines = append(f.deadlines, ok)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool                   { return f.loggedIn }
func (f *fakeExec) Health(ctx context.Context) error   { return f.record(ctx, "health") }
func (f *fakeExec) Register(ctx context.Context) error { return f.record(ctx, "register") }
func (f *fakeExec) Images(ctx context.Context) error   { return f.record(ctx, "images") }
func (f *fakeExec) WhoAmI(ctx context.Context) error   { return f.record(ctx, "whoami") }
func (f *fakeExec) Status(ctx context.Context) error   { return f.record(ctx, "status") }
func (f *fakeExec) Upload(ctx context.Context, p string) error {
	return f.record(ctx, "upload "+p)
}
func (f *fakeExec) Delete(ctx context.Context, u string) error {
	return f.record(ctx, "delete "+u)
}
func (f *fakeExec) OCR(ctx context.Context, p string) error {
	return f.record(ctx, "ocr "+p)
}
func (f *fakeExec) Get(ctx context.Context, u, dest string) error {
	return f.record(ctx, strings.TrimSpace("get "+u+" "+dest))
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record(ctx, "login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record(ctx, "logout")
}

// capturePrintln collects everything printed through printlnFn.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func runLines(exec execIface, timeout time.Duration, lines ...string) {
	sc := bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "(status)" }, sc, timeout)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := capturePrintln(t)
	exec := &fakeExec{}

	runLines(exec, time.Minute,
		"help",
		"login",
		"help",
		"",
		"health",
		"upload cat.png",
		"images",
		"ocr cat.png",
		"delete http://s3/img.png",
		"get http://s3/img.png",
		"get http://s3/img.png copy.png",
		"whoami",
		"status",
		"register",
		"logout",
		"exit",
		"login",
	)

	assert.Equal(t, []string{
		"login", "health", "upload cat.png", "images", "ocr cat.png",
		"delete http://s3/img.png", "get http://s3/img.png", "get http://s3/img.png copy.png",
		"whoami", "status", "register", "logout",
	}, exec.calls)
	assert.Contains(t, *out, helpGuest)
	assert.Contains(t, *out, helpAuthed)
	assert.Contains(t, *out, "Bye!")
	assert.Contains(t, *out, "cockpdf (status)> ")
}

func TestRunREPL_UsageAndUnknown(t *testing.T) {
	out := capturePrintln(t)
	exec := &fakeExec{loggedIn: true}

	runLines(exec, 0, "upload", "delete", "ocr", "get", "frobnicate", "quit")

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: upload <image>")
	assert.Contains(t, *out, "Usage: delete <url>")
	assert.Contains(t, *out, "Usage: ocr <image>")
	assert.Contains(t, *out, "Usage: get <url> [path]")
	assert.Contains(t, *out, "Unknown command: frobnicate")
}

func TestRunREPL_PerCommandTimeout(t *testing.T) {
	capturePrintln(t)

	withTimeout := &fakeExec{}
	runLines(withTimeout, time.Minute, "health", "status")
	require.Equal(t, []bool{true, true}, withTimeout.deadlines)

	unbounded := &fakeExec{}
	runLines(unbounded, 0, "health")
	require.Equal(t, []bool{false}, unbounded.deadlines)
}

func TestRunREPL_PrintsClassifiedErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "auth required", err: client.ErrAuthRequired, want: "Error: authentication required, please log in"},
		{name: "unknown", err: errors.New("dial tcp: refused"), want: "Error: network/server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := capturePrintln(t)
			exec := &fakeExec{err: tt.err}

			runLines(exec, 0, "images", "images")

			assert.Len(t, exec.calls, 2, "an error must not end the loop")
			assert.Contains(t, *out, tt.want)
		})
	}
}
