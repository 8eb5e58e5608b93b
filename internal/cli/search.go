package cli

import (
	"fmt"
	"strings"

	"advocates/internal/client"
	"advocates/internal/domain"
	"advocates/internal/tui"
	"advocates/internal/utils"

	"github.com/spf13/cobra"
)

func newSearchCmd(a *app) *cobra.Command {
	var (
		apiURL   string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run one advocate query against the API and print the page",
		Example: `  advocates search
  advocates search "san diego" --page 2 --page-size 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				apiURL = a.env.APIURL
			}
			req := domain.NewQueryRequest(utils.NormalizeSpace(strings.Join(args, " ")), page, pageSize)

			res, err := client.New(apiURL).SearchAdvocates(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			query := res.Query
			if query == "" {
				query = "(all)"
			}
			fmt.Fprintf(out, "Searching for: %s\n", query)
			if len(res.Data) == 0 {
				fmt.Fprintln(out, "No results")
			} else {
				fmt.Fprintln(out, tui.RenderTable(tui.DefaultStyles(), res.Data, 0))
			}
			fmt.Fprintf(out, "Page %d of %d • %d total\n", res.Page, res.TotalPages, res.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&apiURL, "api", "", "API base URL (default $ADVOCATES_API_URL or http://localhost:8080)")
	cmd.Flags().IntVar(&page, "page", domain.MinPage, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", domain.DefaultUIPageSize, "rows per page")
	return cmd
}
