package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/loginsystem/internal/logging"
)

// execIface defines the command surface the REPL dispatches to.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Exists(ctx context.Context, username string) error
	Strength(ctx context.Context) error
	List(ctx context.Context) error
	Backup(ctx context.Context) error
}

const helpText = "Available commands: register, login, exists <user>, strength, (l)ist, backup, exit"

// runREPL reads commands from reader and dispatches them to a until the user
// types "exit" or "quit", input ends, or ctx is cancelled. The prompt and
// REPL messages go to out.
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors to the user.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprint(out, "loginsystem> ")
		line, err := readLine(reader)
		if err != nil {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		ctx := logging.ContextWith(ctx, "command", cmd)

		switch cmd {
		case "help":
			fmt.Fprintln(out, helpText)

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "exists":
			username := ""
			if len(args) > 0 {
				username = args[0]
			}
			_ = a.Exists(ctx, username)

		case "strength":
			_ = a.Strength(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "backup":
			_ = a.Backup(ctx)

		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}
	}
}
