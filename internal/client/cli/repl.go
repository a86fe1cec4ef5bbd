package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	Whoami(ctx context.Context) error
	Latest(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Category(ctx context.Context, args []string) error
	Movie(ctx context.Context, args []string) error
	Trending(ctx context.Context) error
	Library(ctx context.Context) error
	Buy(ctx context.Context, args []string) error
	Watch(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the kinotv CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help                 — show available commands
//	  - latest               — newest titles
//	  - search <term>        — title search
//	  - category <name>      — titles in a category
//	  - movie <id>           — details of one title
//	  - trending             — most searched titles
//	  - exit | quit          — leave the program
//
//	Not logged in:
//	  - register             — create an account
//	  - login                — authenticate
//	  - resetpw              — reset a forgotten password
//
//	Logged in:
//	  - whoami               — show the signed-in account
//	  - library              — purchased titles
//	  - buy <id> | buy bundle — purchase a title or a subscription bundle
//	  - watch <id>           — play a title you have access to
//	  - logout               — log out
//
// Errors returned by command handlers are printed and the loop continues;
// a failed command never terminates the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("kinotv %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn("Available commands: latest, search, category, movie, trending, exit")
			if a.isLoggedIn() {
				printlnFn("Account: whoami, library, buy, watch, logout")
			} else {
				printlnFn("Account: register, login, resetpw")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "resetpw":
			err = a.ResetPassword(ctx)

		case "whoami":
			err = a.Whoami(ctx)

		case "latest":
			err = a.Latest(ctx)

		case "search":
			err = a.Search(ctx, args)

		case "category":
			err = a.Category(ctx, args)

		case "movie":
			err = a.Movie(ctx, args)

		case "trending":
			err = a.Trending(ctx)

		case "library":
			err = a.Library(ctx)

		case "buy":
			err = a.Buy(ctx, args)

		case "watch":
			err = a.Watch(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
