package main

import (
	"fmt"

	"github.com/covercore/covercore/internal/authz"
	"github.com/covercore/covercore/internal/resource"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func (a *application) filtersCommand() *cobra.Command {
	var (
		organisations []string
		products      []string
		environments  []string
		owner         string
		customer      string
		f             authz.Filters
	)

	cmd := &cobra.Command{
		Use:           "filters [kind]",
		Short:         "Narrow list filters to the records the principal may view",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := resource.ParseKind(args[0])
			if err != nil {
				return err
			}
			if f.OrganisationIDs, err = parseIDs(organisations); err != nil {
				return err
			}
			if f.ProductIDs, err = parseIDs(products); err != nil {
				return err
			}
			for _, s := range environments {
				env, err := resource.ParseEnvironment(s)
				if err != nil {
					return err
				}
				f.Environments = append(f.Environments, env)
			}
			if f.OwnerUserID, err = resource.ParseOptionalID(owner); err != nil {
				return fmt.Errorf("invalid owner: %w", err)
			}
			if f.CustomerID, err = resource.ParseOptionalID(customer); err != nil {
				return fmt.Errorf("invalid customer: %w", err)
			}

			app, ctx, err := a.authorize(cmd.Context())
			if err != nil {
				return err
			}
			restricted, err := app.RestrictFilters(ctx, kind, f)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(restricted)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringSliceVar(&organisations, "filter-organisation", nil, "Restrict to organisation ID. May be repeated.")
	cmd.Flags().StringSliceVar(&products, "filter-product", nil, "Restrict to product ID. May be repeated.")
	cmd.Flags().StringSliceVar(&environments, "filter-environment", nil, "Restrict to environment. May be repeated.")
	cmd.Flags().StringVar(&owner, "filter-owner", "", "Restrict to records owned by user ID")
	cmd.Flags().StringVar(&customer, "filter-customer", "", "Restrict to records of customer ID")
	cmd.Flags().BoolVar(&f.IncludeTestData, "include-test-data", false, "Include test data")

	return cmd
}

func parseIDs(ss []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, s := range ss {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
