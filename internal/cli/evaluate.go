package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/scantable"
	"github.com/tsawler/scantable/evaluate"
)

// evaluation is the JSON report of the evaluate command.
type evaluation struct {
	File         string           `json:"file"`
	Rows         int              `json:"rows"`
	TruthRows    int              `json:"truth_rows"`
	TextMeasured bool             `json:"text_measured"`
	Summary      evaluate.Summary `json:"summary"`
	Report       scantable.Report `json:"report"`
}

func (a *app) evaluateCmd() *cobra.Command {
	var (
		truthPath string
		truthText string
		tolerance float64
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "evaluate <image> --truth rows.csv",
		Short: "Score an extraction against ground truth",
		Long: `Evaluate extracts the table from a page image and compares it with a
ground-truth table (CSV, JSON, HTML or whitespace-separated text). Field,
numeric and row accuracy are always reported; character and word accuracy
need --truth-text, the page transcript to compare full-page recognition
against.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}
			if tolerance < 0 {
				return fmt.Errorf("tolerance must not be negative, got %v", tolerance)
			}
			truth, err := evaluate.LoadRecords(truthPath)
			if err != nil {
				return err
			}

			rec, closeRec, err := a.recognizer()
			if err != nil {
				return err
			}
			defer closeRec()

			path := args[0]
			ext := a.extractor(path, rec)
			res, err := ext.Result()
			if err != nil {
				return err
			}

			var predText, gtText string
			if truthText != "" {
				if gtText, err = evaluate.LoadText(truthText); err != nil {
					return err
				}
				tr, _, err := ext.Transcript()
				if err != nil {
					return err
				}
				predText = tr.Text()
			}

			pred := evaluate.RecordsFromRows(res.Table.Rows)
			summary := evaluate.Evaluate(predText, gtText, pred, truth)
			summary.Numeric = evaluate.NumericAccuracy(pred, truth, tolerance)

			out := evaluation{
				File:         path,
				Rows:         len(pred),
				TruthRows:    len(truth),
				TextMeasured: truthText != "",
				Summary:      summary,
				Report:       res.Report,
			}
			a.logger.Info("evaluation complete", "file", path, "row_accuracy", summary.Row)

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Fprintf(w, "rows:      %d extracted, %d expected\n", out.Rows, out.TruthRows)
			fmt.Fprintf(w, "field:     %.2f%%\n", summary.Field)
			fmt.Fprintf(w, "numeric:   %.2f%% (tolerance %.2f)\n", summary.Numeric, tolerance)
			fmt.Fprintf(w, "row:       %.2f%%\n", summary.Row)
			if out.TextMeasured {
				fmt.Fprintf(w, "character: %.2f%%\n", summary.Character)
				fmt.Fprintf(w, "word:      %.2f%%\n", summary.Word)
			}
			if res.Report.UsedColumnFallback {
				fmt.Fprintln(w, "note: columns were split evenly")
			}
			return nil
		},
	}

	a.addPipelineFlags(cmd)
	cmd.Flags().StringVar(&truthPath, "truth", "", "ground-truth table (.csv, .json, .html, .txt)")
	cmd.Flags().StringVar(&truthText, "truth-text", "", "ground-truth page transcript")
	cmd.Flags().Float64Var(&tolerance, "tolerance", evaluate.DefaultTolerance, "relative tolerance for numeric accuracy")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the evaluation as JSON")
	_ = cmd.MarkFlagRequired("truth")
	return cmd
}
