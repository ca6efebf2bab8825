package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rezkam/todo/internal/application/todo"
	"github.com/rezkam/todo/internal/fixtures"
	"github.com/rezkam/todo/internal/infrastructure/persistence"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed --file todos.yaml",
		Short: "Insert todos from a YAML fixture file",
		Long: `Insert todos from a YAML fixture file.

The file lists todos under a top-level "todos" key:

  todos:
    - title: Buy milk
    - title: Walk the dog
      completed: true

Every entry needs a non-empty title. Pending migrations are applied first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			todos, err := fixtures.LoadFile(file)
			if err != nil {
				return err
			}

			cfg, err := opts.databaseConfig()
			if err != nil {
				return err
			}
			cfg.AutoMigrate = true

			store, err := persistence.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					slog.WarnContext(ctx, "failed to close store", "error", err)
				}
			}()

			created, err := fixtures.Seed(ctx, todo.NewService(store), todos)
			for _, t := range created {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", t.ID, t.Title)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the YAML fixture file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
