package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	output() io.Writer
	serverURL() string
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Select(ctx context.Context, args []string) error
	Submit(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	History(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Status(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: home, scans, scan <type>, about, faq, contact, register, login, status, exit"
	helpLoggedIn  = "Available commands: home, scans, scan <type>, about, faq, contact, whoami, select <path>, submit <type>, upload <type> <path>, history, show <id>, status, logout, exit"
)

// runREPL reads one command per line and dispatches it. Handlers report
// their own errors, so failures never end the loop. It returns on EOF or
// "exit"/"quit". Command handlers prompt from the same reader.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("radiologix %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "home":
			printHome(a.output())
		case "scans":
			printScanOverview(a.output())
		case "scan":
			_ = printScanPage(a.output(), args)
		case "about":
			printAbout(a.output())
		case "faq":
			printFAQ(a.output())
		case "contact":
			printContact(a.output(), a.serverURL())

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "whoami":
			_ = a.WhoAmI(ctx)

		case "select":
			_ = a.Select(ctx, args)
		case "submit":
			_ = a.Submit(ctx, args)
		case "upload":
			_ = a.Upload(ctx, args)
		case "history":
			_ = a.History(ctx)
		case "show":
			_ = a.Show(ctx, args)
		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if ctx.Err() != nil {
			return
		}
	}
}

func (a *App) output() io.Writer { return a.out }

func (a *App) serverURL() string { return a.config.ServerBaseURL }

func (a *App) getStatus() string {
	parts := make([]string, 0, 2)
	if u := a.session.Snapshot().User; u != nil {
		parts = append(parts, u.Name)
	}
	if m := a.getMode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ") "
}

// Root prints the banner and runs the REPL on the app's input.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to Radiologix CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
