package main

import (
	"context"
	"fmt"

	"github.com/covercore/covercore/internal/authz"
	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// entityVerbs maps each verb to its check. Create takes the organisation ID
// in place of the entity ID.
var entityVerbs = map[string]func(authz.EntityAuthorizer, context.Context, uuid.UUID) error{
	"view":   authz.EntityAuthorizer.AuthorizeView,
	"create": authz.EntityAuthorizer.AuthorizeCreate,
	"modify": authz.EntityAuthorizer.AuthorizeModify,
	"delete": authz.EntityAuthorizer.AuthorizeDelete,
}

func (a *application) entityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "entity [organisation|role|user] [view|view-any|create|modify|delete] [id]",
		Short: "Check administration of organisations, roles and users",
		Long: `Check administration of organisations, roles and users.

The id is that of the entity, except for create, where it is the ID of the
organisation in which the entity is to be created.`,
		Args:          cobra.RangeArgs(2, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := resource.ParseKind(args[0])
			if err != nil {
				return err
			}
			verb := args[1]
			app, ctx, err := a.authorize(cmd.Context())
			if err != nil {
				return err
			}
			entities, err := app.EntityAuthorizer(kind)
			if err != nil {
				return err
			}
			if verb == "view-any" {
				if err := entities.AuthorizeViewAny(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Allowed to view %s entities\n", kind)
				return nil
			}
			check, ok := entityVerbs[verb]
			if !ok {
				return fmt.Errorf("unknown verb: %q", verb)
			}
			if len(args) != 3 {
				return fmt.Errorf("%s requires an id", verb)
			}
			id, err := uuid.Parse(args[2])
			if err != nil {
				return fmt.Errorf("invalid id: %w", err)
			}
			if err := check(entities, ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Allowed to %s %s %s\n", verb, kind, id)
			return nil
		},
	}
}
