package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract the statement table from one page image",
		Long: `Extract reads one page image (PNG, JPEG, TIFF, BMP, WEBP, or a scanned
PDF) and writes the recovered table. Degradations such as the column
fallback or dropped rows are logged as warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			rec, closeRec, err := a.recognizer()
			if err != nil {
				return err
			}
			defer closeRec()

			path := args[0]
			logger := a.logger.With("file", path)
			res, err := a.extractor(path, rec).Result()
			if err != nil {
				logger.Error("extraction failed", "error", err)
				return err
			}

			data, err := renderTable(res.Table, a.config.Format)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), a.flags.output, data); err != nil {
				return err
			}
			logger.Info("table extracted",
				"rows", res.Table.RowCount(),
				"rows_dropped", res.Report.RowsDropped,
				"column_fallback", res.Report.UsedColumnFallback,
				"row_strategy", res.Report.RowStrategy,
				"no_image", res.Report.NoImage)
			return nil
		},
	}

	a.addPipelineFlags(cmd)
	cmd.Flags().StringVar(&a.flags.format, "format", "", "output format: csv, json or markdown (default csv)")
	cmd.Flags().StringVarP(&a.flags.output, "output", "o", "", "output file (default stdout)")
	return cmd
}
