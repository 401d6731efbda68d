package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"filmdex/internal/store"
)

func newStatusCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "List enrichment runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context())
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					run.CatalogPath,
					string(run.Status),
					fmt.Sprintf("%d/%d", run.NextStartIndex, run.CatalogSize),
					strconv.Itoa(run.MatchesFound),
					strconv.Itoa(run.LookupErrors),
					run.UpdatedAt.Local().Format("2006-01-02 15:04"),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Catalog", "Status", "Cursor", "Matched", "Errors", "Updated"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
}
