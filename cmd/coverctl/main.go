package main

import (
	"context"
	"io"
	"os"

	cmdutil "github.com/covercore/covercore/cmd"
	"github.com/covercore/covercore/internal/logr"
	"github.com/spf13/cobra"
)

func main() {
	// Configure ^C to terminate program
	ctx, cancel := context.WithCancel(context.Background())
	cmdutil.CatchCtrlC(cancel)

	if err := Run(ctx, os.Args[1:], os.Stdout); err != nil {
		cmdutil.PrintError(err)
		os.Exit(1)
	}
}

func Run(ctx context.Context, args []string, out io.Writer) error {
	a := &application{}

	cmd := &cobra.Command{
		Use:           "coverctl",
		Short:         "Insurance authorization engine",
		Long:          "coverctl decides whether a principal may access insurance records, and narrows list queries to what it may see.",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Define run func in order to enable cobra's default help functionality
		Run: func(cmd *cobra.Command, args []string) {},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	cmd.SetOut(out)
	cmd.SetArgs(args)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.cfg.Database, "database", "", "Postgres connection string")
	flags.StringVar(&a.cfg.Fixtures, "fixtures", "", "YAML file of records to load into memory instead of using a database")
	flags.BoolVar(&a.cfg.DatabasePermissions, "database-permissions", false, "Resolve permissions from roles assigned in the database")
	flags.StringVar(&a.cfg.CarveOutFile, "carve-outs", "", "YAML file of tenant visibility carve-outs")
	logr.LoadConfigFromFlags(flags, &a.cfg.LogConfig)
	a.principal.addFlags(flags)

	cmd.AddCommand(a.checkCommand())
	cmd.AddCommand(a.filtersCommand())
	cmd.AddCommand(a.entityCommand())
	cmd.AddCommand(a.propertyCommand())
	cmd.AddCommand(a.migrateCommand())

	if err := cmdutil.SetFlagsFromEnvVariables(flags); err != nil {
		return err
	}

	if err := cmd.ExecuteContext(ctx); err != nil {
		return err
	}
	return nil
}
