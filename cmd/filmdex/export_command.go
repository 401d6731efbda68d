package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"filmdex/internal/config"
	"filmdex/internal/enrich"
	"filmdex/internal/export"
	"filmdex/internal/store"
)

func newExportCommand(cctx *commandContext) *cobra.Command {
	var format string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Write a run's enriched records as CSV or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}

			var write func(io.Writer, []enrich.EnrichedRecord) error
			switch strings.ToLower(strings.TrimSpace(format)) {
			case "csv":
				write = export.WriteCSV
			case "json":
				write = export.WriteJSON
			default:
				return fmt.Errorf("format must be csv or json, got %q", format)
			}

			st, err := store.Open(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := resolveRun(cmd, st, args[0])
			if err != nil {
				return err
			}

			records, err := st.ResultsForRun(cmd.Context(), run.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				target, err := config.ExpandPath(outputPath)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				file, err := os.Create(target)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer file.Close()
				out = file
			}

			if err := write(out, records); err != nil {
				return err
			}
			if outputPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", len(records), outputPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv or json")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination file (default stdout)")
	return cmd
}

// resolveRun accepts either a full run id or the shortened prefix shown by
// run and status output.
func resolveRun(cmd *cobra.Command, st *store.Store, id string) (*store.Run, error) {
	run, err := st.GetRun(cmd.Context(), id)
	if err == nil {
		return run, nil
	}

	runs, listErr := st.ListRuns(cmd.Context())
	if listErr != nil {
		return nil, listErr
	}
	var matched *store.Run
	for i := range runs {
		if strings.HasPrefix(runs[i].ID, id) {
			if matched != nil {
				return nil, fmt.Errorf("run id %q is ambiguous", id)
			}
			matched = &runs[i]
		}
	}
	if matched == nil {
		return nil, err
	}
	return matched, nil
}
