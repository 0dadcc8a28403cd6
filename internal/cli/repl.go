package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/models"
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
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	ListNotes(ctx context.Context, category *models.Category) error
	Search(ctx context.Context, query string) error
	ToggleSort(ctx context.Context) error
	AddNote(ctx context.Context, args []string) error
	ShowNote(ctx context.Context, args []string) error
	EditNote(ctx context.Context, args []string) error
	DeleteNote(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: work, study, personal, list, search <words>, sort, " +
		"add [category], show <id>, edit <id>, delete <id>, whoami, profile, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the notekeeper CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
//	Not logged in:
//	  - help            show available commands
//	  - register        create an account (logs in on success)
//	  - login           authenticate
//	  - exit | quit     leave the program
//
//	Logged in:
//	  - work | study | personal
//	                    list the notes of one category
//	  - list            list every note
//	  - search <words>  filter the current list; no words clears the search
//	  - sort            toggle newest/oldest first
//	  - add [category]  add a note
//	  - show <id>       print a note
//	  - edit <id>       edit a note
//	  - delete <id>     delete a note
//	  - whoami          show the account
//	  - profile         show and edit the account
//	  - logout          log out
//	  - exit | quit     leave the program
//
// A command error is shown as a short message and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("nk %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}
		if cmd == "help" {
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue
		}

		report(dispatch(ctx, a, cmd, args))
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	known := true
	switch cmd {
	case "logout", "whoami", "profile", "list", "l", "search", "sort", "add", "show", "edit", "delete", "rm":
	default:
		if _, err := models.ParseCategory(cmd); err != nil {
			known = false
		}
	}
	if !known {
		printlnFn("Unknown command:", cmd)
		return nil
	}
	if !a.isLoggedIn() {
		return common.ErrNotLoggedIn
	}

	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "profile":
		return a.Profile(ctx)
	case "list", "l":
		return a.ListNotes(ctx, nil)
	case "search":
		return a.Search(ctx, strings.Join(args, " "))
	case "sort":
		return a.ToggleSort(ctx)
	case "add":
		return a.AddNote(ctx, args)
	case "show":
		return a.ShowNote(ctx, args)
	case "edit":
		return a.EditNote(ctx, args)
	case "delete", "rm":
		return a.DeleteNote(ctx, args)
	default:
		cat, _ := models.ParseCategory(cmd)
		return a.ListNotes(ctx, &cat)
	}
}

// report prints err for the user: form problems verbatim, everything else
// through common.Message.
func report(err error) {
	if err == nil {
		return
	}
	var fe *formError
	if errors.As(err, &fe) {
		printlnFn("Error:", fe.msg)
		return
	}
	if errors.Is(err, io.EOF) {
		printlnFn("Error: input closed")
		return
	}
	printlnFn("Error:", common.Message(err))
}
