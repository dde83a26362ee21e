package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
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
	DeleteAccount(ctx context.Context) error
	List(ctx context.Context, filter string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, ref string) error
	Toggle(ctx context.Context, ref string) error
	Delete(ctx context.Context, ref string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: list|l [all|pending|completed], add, edit <n>, toggle <n>, delete <n>, logout, deleteaccount, exit"
)

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop ends on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - help              show available commands
//	  - register          create an account
//	  - login             authenticate
//	  - exit | quit       leave the program
//
//	Logged in:
//	  - list, l [filter]  list tasks; filter is all, pending or completed
//	  - add               create a task
//	  - edit <n>          change text and deadline of task n
//	  - toggle <n>        mark task n done or not done
//	  - delete <n>        remove task n
//	  - logout            forget the login
//	  - deleteaccount     remove the account and all its tasks
//	  - exit | quit       leave the program
//
// Handler errors are reported to the user and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tamamla%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, arg := parts[0], ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		report(dispatch(ctx, a, cmd, arg))
	}
}

func dispatch(ctx context.Context, a execIface, cmd, arg string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	switch cmd {
	case "l", "list", "add", "edit", "toggle", "delete", "logout", "deleteaccount":
		if !a.isLoggedIn() {
			return errNotLoggedIn
		}
	default:
		printlnFn("Unknown command:", cmd)
		return nil
	}

	switch cmd {
	case "l", "list":
		return a.List(ctx, arg)
	case "add":
		return a.Add(ctx)
	case "edit":
		return a.Edit(ctx, arg)
	case "toggle":
		return a.Toggle(ctx, arg)
	case "delete":
		return a.Delete(ctx, arg)
	case "logout":
		return a.Logout(ctx)
	case "deleteaccount":
		return a.DeleteAccount(ctx)
	}
	return nil
}
