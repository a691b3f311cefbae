package main

import (
	"fmt"

	"github.com/covercore/covercore/internal/resource"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func (a *application) checkCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check access to records",
	}

	cmd.AddCommand(a.checkViewCommand())
	cmd.AddCommand(a.checkModifyCommand())
	cmd.AddCommand(a.checkViewAnyCommand())

	return cmd
}

func (a *application) checkViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "view [kind] [id]",
		Short:         "Check whether the principal may view a record",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseRecord(args)
			if err != nil {
				return err
			}
			app, ctx, err := a.authorize(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.AuthorizeView(ctx, kind, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Allowed to view %s %s\n", kind, id)
			return nil
		},
	}
}

func (a *application) checkModifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "modify [kind] [id]",
		Short:         "Check whether the principal may modify a record",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, err := parseRecord(args)
			if err != nil {
				return err
			}
			app, ctx, err := a.authorize(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.AuthorizeModify(ctx, kind, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Allowed to modify %s %s\n", kind, id)
			return nil
		},
	}
}

func (a *application) checkViewAnyCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "view-any [kind]",
		Short:         "Check whether the principal may list records of a kind",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := resource.ParseKind(args[0])
			if err != nil {
				return err
			}
			app, ctx, err := a.authorize(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.AuthorizeViewAny(ctx, kind); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Allowed to view %s records\n", kind)
			return nil
		},
	}
}

func parseRecord(args []string) (resource.Kind, uuid.UUID, error) {
	kind, err := resource.ParseKind(args[0])
	if err != nil {
		return "", uuid.Nil, err
	}
	id, err := uuid.Parse(args[1])
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("invalid id: %w", err)
	}
	return kind, id, nil
}
