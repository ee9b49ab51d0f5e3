package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/okian/cambios/internal/adapters/export"
	"github.com/okian/cambios/internal/adapters/mq/queue"
	"github.com/okian/cambios/internal/adapters/mq/worker"
	"github.com/okian/cambios/internal/domain/model"
	"github.com/okian/cambios/pkg/logger"
	"github.com/spf13/cobra"
)

const enqueueRetryDelay = 10 * time.Millisecond

type batchFlags struct {
	workers   int
	outputDir string
	page      int
	timeout   time.Duration
}

func (a *app) newBatchCommand() *cobra.Command {
	f := &batchFlags{}
	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Scan every report in a directory in parallel",
		Long: `Batch scans every .pdf and .txt file directly inside a directory with a pool of
workers, prints one line per report and, with --output-dir, writes one workbook each.
Reports are independent; a failing file does not stop the others.`,
		Example: `  cambios batch ./jornada-9
  cambios batch ./jornada-9 --workers 8 --output-dir ./out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBatch(cmd, f, args[0])
		},
	}
	cmd.Flags().IntVar(&f.workers, "workers", 0, "number of concurrent workers (default: batch_workers)")
	cmd.Flags().StringVar(&f.outputDir, "output-dir", "", "write <name>.xlsx for every report here")
	cmd.Flags().IntVar(&f.page, "page", 0, "1-based page to scan in every report")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 10*time.Minute, "total timeout for the batch")
	return cmd
}

// reportFiles lists the .pdf and .txt files directly under dir, sorted by name.
func reportFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".pdf", ".txt":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (a *app) runBatch(cmd *cobra.Command, f *batchFlags, dir string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
	defer cancel()

	files, err := reportFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no .pdf or .txt files in %s", ErrUsage, dir)
	}
	if f.outputDir != "" {
		if err := os.MkdirAll(f.outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	workers := f.workers
	if workers <= 0 {
		workers = a.cfg.BatchWorkers
	}

	svc := a.newService()
	q := queue.NewInMemoryQueue(queue.WithCapacity(a.cfg.BatchQueueSize))
	pool := worker.NewPool(workers, q, svc)
	pool.Start(ctx)

	a.log.Info(ctx, "batch started",
		logger.String("dir", dir), logger.Int("files", len(files)), logger.Int("workers", pool.Size()))

	var results []worker.Result
	go func() {
		defer func() { _ = q.Close() }()
		for _, path := range files {
			pages, rerr := readDocument(path)
			if rerr != nil {
				// Still queued so the file gets a result line; the service rejects it as empty.
				a.log.Warn(ctx, "cannot read report", logger.String("path", path), logger.Error(rerr))
			}
			doc := model.Document{ID: uuid.NewString(), Source: filepath.Base(path), Pages: pages, Page: f.page}
			for !q.Enqueue(ctx, doc) {
				if ctx.Err() != nil {
					return
				}
				time.Sleep(enqueueRetryDelay)
			}
		}
	}()
	for res := range pool.Results() {
		results = append(results, res)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Document.Source < results[j].Document.Source })

	failed := 0
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REPORT\tSTATUS\tTEAMS\tGOALS\tCARDS\tSUBS")
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(tw, "%s\terror: %v\t\t\t\t\n", res.Document.Source, res.Err)
			continue
		}
		an := res.Analysis
		fmt.Fprintf(tw, "%s\tok\t%s vs %s\t%d\t%d\t%d\n", res.Document.Source,
			an.FocusTeam, an.OpponentTeam, len(an.Scan.Goals), len(an.Scan.Cards), len(an.Scan.Substitutions))
		if f.outputDir != "" {
			out := filepath.Join(f.outputDir, strings.TrimSuffix(res.Document.Source, filepath.Ext(res.Document.Source))+".xlsx")
			if err := writeFile(out, func(w *os.File) error { return export.WriteXLSX(w, an) }); err != nil {
				return err
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	a.log.Info(ctx, "batch finished",
		logger.Int("total", len(results)), logger.Int("failed", failed))
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("batch interrupted after %d of %d reports: %w", len(results), len(files), err)
	}
	return nil
}
