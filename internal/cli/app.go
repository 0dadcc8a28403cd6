package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/notekeeper/internal/config"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/kv"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/notes"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/users"
	"github.com/dmitrijs2005/notekeeper/internal/secret"
	"github.com/dmitrijs2005/notekeeper/internal/services"
)

type App struct {
	authService services.AuthService
	noteService services.NoteService
	log         logging.Logger
	closer      io.Closer
	reader      *bufio.Reader
	out         io.Writer

	// current list view
	category *models.Category
	query    string
	order    models.SortOrder
}

// NewApp opens the configured storage backend and builds the services on
// top of it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel)

	store, err := kv.Open(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening storage", "storage", c.Storage, "error", err)
		return nil, err
	}

	userRepo := users.NewRepository(store, users.WithHasher(secret.ForName(c.PasswordHashing)))
	noteRepo := notes.NewRepository(store)

	as := services.NewAuthService(userRepo, store, log)
	ns := services.NewNoteService(noteRepo, log, c.EnforceOwnership)

	a := newApp(as, ns, log, bufio.NewReader(os.Stdin), os.Stdout)
	a.closer = store
	return a, nil
}

func newApp(as services.AuthService, ns services.NoteService, log logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	return &App{
		authService: as,
		noteService: ns,
		log:         log,
		reader:      reader,
		out:         out,
		order:       models.SortDesc,
	}
}

// Run restores the last session and serves the REPL until the user exits
// or input ends. The storage backend is closed on return.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	if u, ok := a.authService.RestoreSession(ctx); ok {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", u.Username)
	}
	fmt.Fprintln(a.out, "Welcome to notekeeper (type 'help' for commands)")

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) close(ctx context.Context) {
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil {
		a.log.Error(ctx, "error closing storage", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.authService.CurrentUser()
	return ok
}

func (a *App) userID() string {
	u, _ := a.authService.CurrentUser()
	return u.ID
}

// status is shown in the prompt: "alice", "alice:work", or "" when logged out.
func (a *App) status() string {
	u, ok := a.authService.CurrentUser()
	if !ok {
		return ""
	}
	if a.category != nil {
		return u.Username + ":" + string(*a.category)
	}
	return u.Username
}

func (a *App) resetView() {
	a.category = nil
	a.query = ""
	a.order = models.SortDesc
}
