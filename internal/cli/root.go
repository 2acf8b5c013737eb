// Package cli implements the uuidview command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rebelice/uuidview/internal/config"
	"github.com/rebelice/uuidview/internal/db/connection"
	"github.com/rebelice/uuidview/internal/db/metadata"
	"github.com/rebelice/uuidview/internal/db/sqlite"
	"github.com/rebelice/uuidview/internal/filter"
	"github.com/rebelice/uuidview/internal/host"
	"github.com/rebelice/uuidview/internal/models"
	"github.com/rebelice/uuidview/internal/theme"
)

const (
	exitSuccess   = 0
	exitUserError = 1
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configFile string
	dsn        string
	verbose    bool
}

// app carries what subcommands share once the root has loaded configuration
type app struct {
	flags  rootFlags
	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCmd creates the top-level "uuidview" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "uuidview",
		Short: "Browse tables with binary UUID columns shown as text",
		Long: "uuidview displays 16-byte binary UUID columns as hyphenated text and\n" +
			"accepts hyphenated UUIDs in search conditions.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configFile, "config", "", "config file (default: search config.yaml)")
	root.PersistentFlags().StringVar(&a.flags.dsn, "db", "", "sqlite database path (overrides database.dsn)")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newEncodeCmd(a))
	root.AddCommand(newDecodeCmd(a))
	root.AddCommand(newTablesCmd(a))
	root.AddCommand(newFieldsCmd(a))
	root.AddCommand(newBrowseCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}

func (a *app) load() error {
	level := slog.LevelInfo
	if a.flags.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(a.flags.configFile)
	if err != nil {
		return err
	}
	if a.flags.dsn != "" {
		cfg.Database.Driver = models.DriverSQLite
		cfg.Database.DSN = a.flags.dsn
	}
	a.cfg = cfg
	return nil
}

// catalog is a host.Catalog that can also list tables and be closed
type catalog interface {
	host.Catalog
	Tables(ctx context.Context) ([]string, error)
	Close() error
}

func (a *app) openCatalog(ctx context.Context) (catalog, filter.Dialect, error) {
	db := a.cfg.Database
	switch db.Driver {
	case models.DriverSQLite, "":
		if db.DSN == "" {
			return nil, filter.Dialect{}, fmt.Errorf("no sqlite database configured (use --db or database.dsn)")
		}
		c, err := sqlite.Open(db.DSN)
		if err != nil {
			return nil, filter.Dialect{}, err
		}
		return c, filter.SQLite, nil
	case models.DriverPostgres:
		pool, err := connection.NewPool(ctx, db)
		if err != nil {
			return nil, filter.Dialect{}, err
		}
		return metadata.NewCatalog(pool, db.Schema), filter.Postgres, nil
	default:
		return nil, filter.Dialect{}, fmt.Errorf("unsupported database driver: %s", db.Driver)
	}
}

func (a *app) newAdmin(c catalog, dialect filter.Dialect) *host.Admin {
	limit := a.cfg.Display.DefaultLimit
	if limit < 0 {
		limit = 0
	}
	return host.NewAdmin(c, filter.NewBuilder(dialect, uint64(limit)),
		host.WithTheme(theme.GetTheme(a.cfg.Display.Theme)),
		host.WithNullText(a.cfg.Display.NullText),
		host.WithMaxCellLength(a.cfg.Display.MaxCellDisplayLength),
	)
}
