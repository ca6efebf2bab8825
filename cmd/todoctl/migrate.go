package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezkam/todo/internal/infrastructure/persistence"
	"github.com/rezkam/todo/internal/infrastructure/persistence/migrate"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), opts, func(ctx context.Context, m *migrate.Migrator) error {
				if err := m.Up(ctx); err != nil {
					return err
				}
				return printVersion(ctx, cmd.OutOrStdout(), m)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), opts, func(ctx context.Context, m *migrate.Migrator) error {
				if err := m.Down(ctx); err != nil {
					return err
				}
				return printVersion(ctx, cmd.OutOrStdout(), m)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "List migrations and whether they are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), opts, func(ctx context.Context, m *migrate.Migrator) error {
				return printStatus(ctx, cmd.OutOrStdout(), m)
			})
		},
	})

	return cmd
}

// withMigrator opens the configured database, runs fn and releases the connection.
func withMigrator(ctx context.Context, opts *rootOptions, fn func(context.Context, *migrate.Migrator) error) error {
	cfg, err := opts.databaseConfig()
	if err != nil {
		return err
	}

	m, closer, err := persistence.OpenMigrator(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close database", "error", err)
		}
	}()

	return fn(ctx, m)
}

func printVersion(ctx context.Context, w io.Writer, m *migrate.Migrator) error {
	version, err := m.Version(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "schema version: %d\n", version)
	return err
}

func printStatus(ctx context.Context, w io.Writer, m *migrate.Migrator) error {
	statuses, err := m.Status(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED AT\tSOURCE")
	for _, s := range statuses {
		appliedAt := "-"
		if !s.AppliedAt.IsZero() {
			appliedAt = s.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, appliedAt, s.Source.Path)
	}
	return tw.Flush()
}
