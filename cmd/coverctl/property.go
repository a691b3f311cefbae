package main

import (
	"fmt"

	"github.com/covercore/covercore/internal/additionalproperty"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func (a *application) propertyCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "property [view|modify] [entity-type] [id]",
		Short:         "Check access to the additional properties of an entity",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			entityType := additionalproperty.EntityType(args[1])
			id, err := uuid.Parse(args[2])
			if err != nil {
				return fmt.Errorf("invalid id: %w", err)
			}
			app, ctx, err := a.authorize(cmd.Context())
			if err != nil {
				return err
			}
			switch args[0] {
			case "view":
				err = app.AdditionalProperties.AuthorizeView(ctx, entityType, id)
			case "modify":
				err = app.AdditionalProperties.AuthorizeModify(ctx, entityType, id)
			default:
				return fmt.Errorf("unknown verb: %q", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Allowed to %s additional properties of %s %s\n", args[0], entityType, id)
			return nil
		},
	}
}
