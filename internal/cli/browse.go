package cli

import (
	"os"
	"os/signal"
	"syscall"

	"advocates/internal/client"
	"advocates/internal/search"
	"advocates/internal/tui"

	"github.com/spf13/cobra"
)

func newBrowseCmd(a *app) *cobra.Command {
	var (
		apiURL   string
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Search advocates interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				apiURL = a.env.APIURL
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return tui.Run(ctx, client.New(apiURL), search.Options{
				PageSize:      pageSize,
				DebounceDelay: a.env.DebounceDelay.Duration,
			})
		},
	}
	cmd.Flags().StringVar(&apiURL, "api", "", "API base URL (default $ADVOCATES_API_URL or http://localhost:8080)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "rows per page (default 10)")
	return cmd
}
