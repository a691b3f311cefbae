package main

import (
	"fmt"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/sql"
	"github.com/spf13/cobra"
)

func (a *application) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "migrate",
		Short:         "Migrate the database schema to the latest version",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Database == "" {
				return &internal.MissingParameterError{Parameter: "database"}
			}
			if err := a.setupLogger(); err != nil {
				return err
			}
			if err := sql.Migrate(cmd.Context(), a.logger, a.cfg.Database); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Successfully migrated database")
			return nil
		},
	}
}
