package main

import (
	"github.com/spf13/cobra"

	"github.com/Excaliburns/Placebo/internal/db"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for persisted modifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return db.RunMigrations(cmd.Context(), a.cfg.Database.DSN())
		},
	}
}
