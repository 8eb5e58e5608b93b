package cli

import (
	"fmt"

	intconfig "advocates/internal/config"
	"advocates/internal/services"

	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	var createTable bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the fixed advocate set into DATABASE_URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.env.DatabaseURL == "" {
				return intconfig.ErrNoDatabaseURL
			}
			intconfig.SetDatabaseURL(a.env.DatabaseURL)
			defer intconfig.CloseDB()

			n, err := services.SeedService{CreateTable: createTable}.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d advocates\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&createTable, "create-table", false, "create the advocates table first if it does not exist")
	return cmd
}
