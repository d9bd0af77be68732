package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. *App satisfies it;
// tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Health(ctx context.Context) error
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
	Upload(ctx context.Context, path string) error
	Images(ctx context.Context) error
	Delete(ctx context.Context, url string) error
	OCR(ctx context.Context, path string) error
	Get(ctx context.Context, url, dest string) error
}

const (
	helpGuest  = "Available commands: help, health, register, login, status, exit"
	helpAuthed = "Available commands: help, health, whoami, status, upload <image>, images, delete <url>, ocr <image>, get <url> [path], logout, exit"
)

// runREPL reads commands from scanner until EOF, "exit" or "quit". Each
// command gets its own context bounded by timeout (no bound when timeout
// is not positive). Command errors are printed and never end the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, timeout time.Duration) {
	for {
		printlnFn(fmt.Sprintf("cockpdf %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if cmd == "help" {
			if a.isLoggedIn() {
				printlnFn(helpAuthed)
			} else {
				printlnFn(helpGuest)
			}
			continue
		}

		run, usage := dispatch(a, cmd, args)
		if run == nil {
			if usage != "" {
				printlnFn("Usage:", usage)
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		cmdCtx, cancel := context.WithCancel(ctx)
		if timeout > 0 {
			cmdCtx, cancel = context.WithTimeout(ctx, timeout)
		}
		err := run(cmdCtx)
		cancel()

		if err != nil {
			printlnFn("Error:", describeError(err))
		}
	}
}

// dispatch maps a command line onto a call. It returns a nil func and the
// usage string when arguments are missing, and nil and "" for an unknown
// command.
func dispatch(a execIface, cmd string, args []string) (func(context.Context) error, string) {
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}

	switch cmd {
	case "health":
		return a.Health, ""
	case "register":
		return a.Register, ""
	case "login":
		return a.Login, ""
	case "logout":
		return a.Logout, ""
	case "whoami":
		return a.WhoAmI, ""
	case "status":
		return a.Status, ""
	case "images":
		return a.Images, ""
	case "upload":
		if len(args) < 1 {
			return nil, "upload <image>"
		}
		return func(ctx context.Context) error { return a.Upload(ctx, arg(0)) }, ""
	case "delete":
		if len(args) < 1 {
			return nil, "delete <url>"
		}
		return func(ctx context.Context) error { return a.Delete(ctx, arg(0)) }, ""
	case "ocr":
		if len(args) < 1 {
			return nil, "ocr <image>"
		}
		return func(ctx context.Context) error { return a.OCR(ctx, arg(0)) }, ""
	case "get":
		if len(args) < 1 {
			return nil, "get <url> [path]"
		}
		return func(ctx context.Context) error { return a.Get(ctx, arg(0), arg(1)) }, ""
	default:
		return nil, ""
	}
}
