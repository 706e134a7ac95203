package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isUnlocked() bool
	Unlock(ctx context.Context) error
	Register(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Claim(ctx context.Context, args []string) error
	Reveal(ctx context.Context, args []string) error
	Confirm(ctx context.Context, args []string) error
	Approve(ctx context.Context, args []string) error
	Reject(ctx context.Context, args []string) error
	Claims(ctx context.Context) error
	Events(ctx context.Context) error
	History(ctx context.Context) error
	Lock(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Nostos CLI.
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
//	Locked:
//	  - help                       — show available commands
//	  - unlock                     — open the wallet keystore
//	  - claim <found-url>          — finder flow, needs no wallet history
//	  - exit | quit                — leave the program
//
//	Unlocked:
//	  - help                       — show available commands
//	  - register                   — register a new item, print its QR URL
//	  - list                       — list own items, decrypted
//	  - show <itemId>              — item detail with claims
//	  - claim <found-url>          — submit a claim on a scanned label
//	  - reveal <itemId> <claim#>   — pay to reveal a finder's contact
//	  - confirm <itemId> <claim#>  — confirm the item came back
//	  - approve <itemId> <claim#>  — accept a pending claim
//	  - reject <itemId> <claim#>   — dismiss a pending claim
//	  - claims                     — list own submitted claims
//	  - events                     — recent contract events
//	  - history                    — recent local activity
//	  - lock                       — forget the key and clear caches
//	  - exit | quit                — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("nostos> %s > ", statusFn()))
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

		switch cmd {
		case "help":
			if a.isUnlocked() {
				printlnFn("Available commands: register, (l)ist, show, claim, reveal, confirm, approve, reject, claims, events, history, lock, exit")
			} else {
				printlnFn("Available commands: unlock, claim, exit")
			}

		case "unlock":
			_ = a.Unlock(ctx)

		case "register":
			_ = a.Register(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			_ = a.Show(ctx, args)

		case "claim":
			_ = a.Claim(ctx, args)

		case "reveal":
			_ = a.Reveal(ctx, args)

		case "confirm":
			_ = a.Confirm(ctx, args)

		case "approve":
			_ = a.Approve(ctx, args)

		case "reject":
			_ = a.Reject(ctx, args)

		case "claims":
			_ = a.Claims(ctx)

		case "events":
			_ = a.Events(ctx)

		case "history":
			_ = a.History(ctx)

		case "lock":
			_ = a.Lock(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) getStatus() string {
	if a.signer == nil {
		return "(locked)"
	}
	return fmt.Sprintf("(%s)", a.signer.Address().Hex())
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the Nostos CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
