package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rezkam/todo/internal/config"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	driver  string
	dsn     string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "todoctl",
		Short: "Manage the todo service database",
		Long: `todoctl applies schema migrations and loads fixture data for the todo service.

The database is selected by TODO_DB_DRIVER and TODO_DB_DSN, the same variables
the server reads. --driver and --dsn override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelInfo
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.driver, "driver", "", "database driver: postgres or sqlite (overrides TODO_DB_DRIVER)")
	cmd.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "database connection string (overrides TODO_DB_DSN)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")

	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))

	return cmd
}

// databaseConfig resolves the database settings from the environment, then applies flag overrides.
func (o *rootOptions) databaseConfig() (config.DatabaseConfig, error) {
	cfg, err := config.LoadDatabaseConfig()
	if err != nil {
		return config.DatabaseConfig{}, err
	}

	if o.driver != "" {
		cfg.Driver = o.driver
	}
	if o.dsn != "" {
		cfg.DSN = o.dsn
	}
	return *cfg, cfg.Validate()
}
