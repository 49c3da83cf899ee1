package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/scantable/format"
)

func (a *app) batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <dir|file>...",
		Short: "Extract tables from many page images in parallel",
		Long: `Batch extracts every page image given on the command line or found in
the given directories. Documents are processed in parallel; the recognizer
is created once and shared by every document. Each table is written next
to its input, or into --output when set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			inputs, err := collectInputs(args)
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return fmt.Errorf("no page images found")
			}
			if a.flags.output != "" {
				if err := os.MkdirAll(a.flags.output, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			rec, closeRec, err := a.recognizer()
			if err != nil {
				return err
			}
			defer closeRec()

			a.logger.Info("starting batch", "documents", len(inputs), "concurrency", a.config.Concurrency)
			g, gctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(a.config.Concurrency)

			var failed atomic.Int32
			for _, input := range inputs {
				input := input
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return err
					}
					logger := a.logger.With("file", input)

					res, err := a.extractor(input, rec).Result()
					if err != nil {
						logger.Error("extraction failed", "error", err)
						failed.Add(1)
						return nil
					}
					data, err := renderTable(res.Table, a.config.Format)
					if err != nil {
						return err
					}
					out := outputPath(input, a.flags.output, a.config.Format)
					if err := writeOutput(nil, out, data); err != nil {
						return err
					}
					logger.Info("table extracted",
						"rows", res.Table.RowCount(),
						"rows_dropped", res.Report.RowsDropped,
						"column_fallback", res.Report.UsedColumnFallback,
						"output", out)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if n := failed.Load(); n > 0 {
				return fmt.Errorf("%d of %d documents failed", n, len(inputs))
			}
			a.logger.Info("batch complete", "documents", len(inputs))
			return nil
		},
	}

	a.addPipelineFlags(cmd)
	cmd.Flags().StringVar(&a.flags.format, "format", "", "output format: csv, json or markdown (default csv)")
	cmd.Flags().StringVarP(&a.flags.output, "output", "o", "", "output directory (default next to each input)")
	cmd.Flags().IntVarP(&a.flags.concurrency, "jobs", "j", 0, "documents processed at once (default 4)")
	return cmd
}

// collectInputs expands directories into the page images they contain.
// Files named explicitly are kept whatever their extension.
func collectInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", arg, err)
		}
		var found []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if f := format.Detect(e.Name()); f.IsImage() || f == format.PDF {
				found = append(found, filepath.Join(arg, e.Name()))
			}
		}
		sort.Strings(found)
		inputs = append(inputs, found...)
	}
	return inputs, nil
}
