package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bizdesk/internal/client/client"
	"github.com/dmitrijs2005/bizdesk/internal/client/config"
	"github.com/dmitrijs2005/bizdesk/internal/client/metrics"
	"github.com/dmitrijs2005/bizdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bizdesk/internal/client/services"
	"github.com/dmitrijs2005/bizdesk/internal/client/session"
	"github.com/dmitrijs2005/bizdesk/internal/filex"
	"github.com/dmitrijs2005/bizdesk/internal/logging"
)

type App struct {
	config  *config.Config
	core    *services.Core
	metrics *metrics.Collector
	db      *sql.DB
	log     logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

// NewApp builds the whole client from cfg. With a storage path the session
// survives restarts in an SQLite file; without one it lives in memory.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	var (
		db        *sql.DB
		persister session.Persister = session.NewMemoryPersister()
	)
	if cfg.StoragePath != "" {
		if err := filex.EnsureParentDir(cfg.StoragePath); err != nil {
			return nil, err
		}
		var err error
		db, err = client.InitDatabase(ctx, cfg.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
		persister = metadata.NewTokenPersister(db)
	}

	store := session.NewStore(persister, log)
	collector := metrics.NewCollector()

	hc, err := client.NewHTTPClient(client.Config{
		BaseURL:           cfg.BackendURL,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Metrics:           collector,
		Logger:            log,
	}, store)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}

	a := newApp(services.NewCore(store, hc, log), collector, os.Stdin, os.Stdout, log)
	a.config = cfg
	a.db = db
	return a, nil
}

func newApp(core *services.Core, m *metrics.Collector, in io.Reader, out io.Writer, log logging.Logger) *App {
	return &App{
		core:    core,
		metrics: m,
		log:     log,
		reader:  bufio.NewReader(in),
		out:     out,
	}
}

// Run restores the previous session, if any, and runs the REPL until the
// user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.core.Auth.Restore(ctx); err != nil {
		a.log.Warn(ctx, "previous session could not be restored", "err", err)
	}

	fmt.Fprintln(a.out, "Welcome to bizdesk (type 'help' for commands)")
	if a.isLoggedIn() {
		a.printWelcome()
	}
	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

func (a *App) isLoggedIn() bool {
	return a.core.Session.Authenticated()
}

func (a *App) status() string {
	snap := a.core.Session.Snapshot()
	switch {
	case snap.Profile != nil:
		return "(" + snap.Profile.Email + ")"
	case snap.Token != "":
		return "(user " + snap.UserID + ")"
	default:
		return ""
	}
}

func (a *App) printWelcome() {
	if p, ok := a.core.Session.Profile(); ok {
		fmt.Fprintf(a.out, "Signed in as %s (%s)\n", p.Name, p.Company)
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
