package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"filmdex/internal/catalog"
	"filmdex/internal/config"
	"filmdex/internal/enrich"
	"filmdex/internal/lookup"
	"filmdex/internal/store"
)

func newRunCommand(cctx *commandContext) *cobra.Command {
	var batchSize int
	var maxBatches int
	var workers int

	cmd := &cobra.Command{
		Use:   "run <catalog-file>",
		Short: "Enrich a catalog, resuming any unfinished run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cctx.newLogger()
			if err != nil {
				return err
			}

			// Flag overrides feed the same validation path as config
			// values, via enrich.NewScheduler.
			if batchSize > 0 {
				cfg.Enrichment.BatchSize = batchSize
			}
			if maxBatches >= 0 {
				cfg.Enrichment.MaxBatches = maxBatches
			}
			if workers > 0 {
				cfg.Enrichment.Workers = workers
			}

			catalogPath, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve catalog path: %w", err)
			}
			cat, err := catalog.ParseFile(catalogPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runEnrichment(ctx, cmd, cfg, logger, catalogPath, cat)
		},
	}

	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Records per batch (overrides config)")
	cmd.Flags().IntVar(&maxBatches, "max-batches", -1, "Batch cap for this invocation, 0 for unbounded (overrides config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent lookup cap (overrides config)")
	return cmd
}

func runEnrichment(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, catalogPath string, cat *catalog.Catalog) error {
	st, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	lock, err := store.AcquireLock(cfg.Paths.DataDir)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	client, err := lookup.New(cfg.Lookup.APIKey, cfg.Lookup.BaseURL, cfg.Lookup.Language,
		lookup.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Lookup.TimeoutSeconds) * time.Second}))
	if err != nil {
		return err
	}
	worker, err := enrich.NewWorker(client)
	if err != nil {
		return err
	}

	run, err := st.FindResumable(ctx, catalogPath, cfg.Enrichment.BatchSize)
	resumed := err == nil
	if errors.Is(err, store.ErrNotFound) {
		run, err = st.CreateRun(ctx, catalogPath, cat.Len(), cfg.Enrichment.BatchSize)
	}
	if err != nil {
		return err
	}
	if resumed {
		fmt.Fprintf(cmd.OutOrStdout(), "Resuming run %s from record %d\n", shortID(run.ID), run.NextStartIndex)
	}

	out := cmd.OutOrStdout()
	interactive := isatty.IsTerminal(os.Stdout.Fd())
	progress := func(found, total int) {
		if interactive {
			fmt.Fprintf(out, "\rmatched %d of %d records", found, total)
		}
	}

	scheduler, err := enrich.NewScheduler(worker, logger, enrich.Params{
		BatchSize:  cfg.Enrichment.BatchSize,
		MaxBatches: cfg.Enrichment.MaxBatches,
		Workers:    cfg.Enrichment.Workers,
		StartIndex: run.NextStartIndex,
		OnProgress: progress,
		OnBatchDone: func(ctx context.Context, summary enrich.BatchSummary) error {
			return st.SaveBatch(ctx, run.ID, summary)
		},
	})
	if err != nil {
		return err
	}

	outcome, runErr := scheduler.Run(ctx, cat)
	if interactive && outcome.MatchesFound > 0 {
		fmt.Fprintln(out)
	}
	if runErr != nil {
		// Per-batch persistence already saved everything that finished;
		// the run stays resumable.
		return fmt.Errorf("run %s stopped: %w", shortID(run.ID), runErr)
	}

	// The run context may be canceled by now; finishing the run is a local
	// write that should still land.
	if err := st.FinishRun(context.Background(), run.ID, outcome.State); err != nil {
		return err
	}

	fmt.Fprintln(out, renderTable(
		[]string{"Run", "State", "Batches", "Dispatched", "Matched", "Lookup errors", "Next index"},
		[][]string{{
			shortID(run.ID),
			string(outcome.State),
			strconv.Itoa(outcome.BatchesCompleted),
			strconv.Itoa(outcome.RecordsDispatched),
			strconv.Itoa(outcome.MatchesFound),
			strconv.Itoa(outcome.LookupErrors),
			strconv.Itoa(outcome.NextStartIndex),
		}},
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
