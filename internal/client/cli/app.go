package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/solidarias/internal/client/config"
	"github.com/dmitrijs2005/solidarias/internal/dbx"
	"github.com/dmitrijs2005/solidarias/internal/logging"
	"github.com/dmitrijs2005/solidarias/internal/repositories/repomanager"
	"github.com/dmitrijs2005/solidarias/internal/services"
	"golang.org/x/term"
)

// isTerminal is a test seam for terminal detection on stdin.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	products *services.ProductService
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogFormat, "info", os.Stderr)

	db, dialect, err := dbx.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	m := repomanager.NewSQLRepositoryManager(dialect)
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return &App{
		config:   c,
		logger:   logger.With("module", "inventory"),
		db:       db,
		products: services.NewProductService(db, m),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run shows the menu until the user exits, then closes the store.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	runREPL(ctx, a, a.reader, a.out, isTerminal())
}

func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error(context.Background(), "db close error", "error", err.Error())
	}
}
