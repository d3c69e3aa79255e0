package main

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/erp/ledger/internal/infrastructure/config"
	"github.com/erp/ledger/internal/infrastructure/logger"
	"github.com/erp/ledger/internal/infrastructure/migration"
	"github.com/erp/ledger/internal/infrastructure/persistence"
	"github.com/erp/ledger/migrations"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

// cli carries what every subcommand shares. The logger and config are built
// in PersistentPreRunE so `create` and `list` work without a database.
type cli struct {
	logLevel string
	dir      string
	cfg      *config.Config
	log      *zap.Logger
}

func newRootCommand() *cobra.Command {
	app := &cli{}
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the purchase ledger schema and master data",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New(&logger.Config{Level: app.logLevel, Format: "console", Output: "stdout"})
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			app.log = log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if app.log != nil {
				_ = app.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&app.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&app.dir, "dir", defaultMigrationsDir, "migrations directory used by create")

	root.AddCommand(
		app.upCommand(),
		app.downCommand(),
		app.stepsCommand(),
		app.versionCommand(),
		app.forceCommand(),
		app.createCommand(),
		app.listCommand(),
		app.seedCommand(),
	)
	return root
}

func (a *cli) loadConfig() error {
	if a.cfg != nil {
		return nil
	}
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	a.cfg = cfg
	return nil
}

// withMigrator opens PostgreSQL and runs fn against the embedded migrations.
func (a *cli) withMigrator(fn func(m *migration.Migrator) error) error {
	if err := a.loadConfig(); err != nil {
		return err
	}
	if a.cfg.Database.Driver != persistence.DriverPostgres {
		return fmt.Errorf("versioned migrations need the postgres driver, got %q", a.cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", a.cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, a.log)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(m)
}

func (a *cli) upCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.withMigrator(func(m *migration.Migrator) error { return m.Up() })
		},
	}
}

func (a *cli) downCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back every applied migration",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return a.withMigrator(func(m *migration.Migrator) error { return m.Down() })
		},
	}
}

func (a *cli) stepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "steps <n>",
		Short: "Apply n migrations, or roll back when n is negative",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid step count %q", args[0])
			}
			return a.withMigrator(func(m *migration.Migrator) error { return m.Steps(n) })
		},
	}
}

func (a *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withMigrator(func(m *migration.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			})
		},
	}
}

func (a *cli) forceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "force <version>",
		Short: "Set the schema version without running migrations",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q", args[0])
			}
			return a.withMigrator(func(m *migration.Migrator) error { return m.Force(version) })
		},
	}
}

func (a *cli) createCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Write the next numbered up/down migration pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mf, err := migration.CreateMigration(a.dir, args[0])
			if err != nil {
				return err
			}
			a.log.Info("Migration created",
				zap.Uint("version", mf.Version),
				zap.String("up_file", mf.UpPath),
				zap.String("down_file", mf.DownPath),
			)
			fmt.Fprintln(cmd.OutOrStdout(), mf.UpPath)
			fmt.Fprintln(cmd.OutOrStdout(), mf.DownPath)
			return nil
		},
	}
}

func (a *cli) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the migrations compiled into this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := migration.ListMigrations(migrations.FS)
			if err != nil {
				return err
			}
			for _, m := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%06d %s\n", m.Version, m.Name)
			}
			return nil
		},
	}
}

// seedCommand installs the chart of accounts, VAT code, cash book and demo
// supplier, then prints the control account ids for posting.* config.
func (a *cli) seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Install the master data the ledger needs to post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadConfig(); err != nil {
				return err
			}
			db, err := persistence.NewDatabase(a.cfg, a.log)
			if err != nil {
				return err
			}
			defer db.Close()
			if db.Driver == persistence.DriverSQLite {
				if err := db.AutoMigrate(); err != nil {
					return fmt.Errorf("migrate sqlite schema: %w", err)
				}
			}

			result, err := persistence.NewSeeder(db.DB, a.log).Seed(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "LEDGER_POSTING_PURCHASE_CONTROL_NOMINAL=%s\n", result.PurchaseControlNominal)
			fmt.Fprintf(out, "LEDGER_POSTING_VAT_NOMINAL=%s\n", result.VatNominal)
			fmt.Fprintf(out, "# purchases nominal  %s\n", result.PurchasesNominal)
			fmt.Fprintf(out, "# standard vat code  %s\n", result.StandardVatCode)
			fmt.Fprintf(out, "# bank cash book     %s\n", result.BankCashBook)
			fmt.Fprintf(out, "# demo supplier      %s\n", result.DemoSupplier)
			return nil
		},
	}
}
