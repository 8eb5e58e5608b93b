// Package cli wires the advocates commands.
package cli

import (
	"context"
	"fmt"
	"os"

	intconfig "advocates/internal/config"
	"advocates/internal/utils"

	"github.com/spf13/cobra"
)

// app holds what PersistentPreRunE resolved for the running command.
type app struct {
	configPath string
	verbose    bool
	env        intconfig.Env
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "advocates",
		Short: "Advocates directory: query service, seeding and search clients",
		Long: `advocates serves the paginated advocate search API and ships the
tools around it.

  advocates serve              start the HTTP API
  advocates seed               load the fixed advocate set into DATABASE_URL
  advocates search oncology    run one query against a running API
  advocates browse             interactive search with debounce and paging`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = os.Getenv("ADVOCATES_CONFIG")
			}
			env, err := intconfig.LoadEnv(path)
			if err != nil {
				return err
			}
			a.env = env

			logger, err := utils.NewLogger(env.LogLevel, a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			utils.SetLogger(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = utils.L().Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a TOML config file (default $ADVOCATES_CONFIG)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newServeCmd(a),
		newSeedCmd(a),
		newSearchCmd(a),
		newBrowseCmd(a),
	)
	return root
}

func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}
