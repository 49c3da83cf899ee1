package cli

import (
	"bytes"
	"fmt"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/scantable/synth"
)

func (a *app) synthCmd() *cobra.Command {
	var (
		output    string
		truthPath string
		textPath  string
		rows      int
		seed      int64
		noise     float64
		blur      float64
		rules     bool
	)

	cmd := &cobra.Command{
		Use:   "synth -o page.png",
		Short: "Render a synthetic statement page with ground truth",
		Long: `Synth renders a statement page with seeded prices and writes the page
image (PNG), the ground-truth table (CSV) and the page transcript (text).
The outputs feed "scantable evaluate" for accuracy testing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setup(cmd); err != nil {
				return err
			}

			config := synth.DefaultConfig()
			config.Rows = rows
			config.Seed = seed
			config.Noise = noise
			config.Blur = blur
			config.Rules = rules
			page, err := synth.Render(config)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := png.Encode(&buf, page.Image); err != nil {
				return fmt.Errorf("failed to encode page: %w", err)
			}
			base := strings.TrimSuffix(output, filepath.Ext(output))
			if truthPath == "" {
				truthPath = base + ".csv"
			}
			if textPath == "" {
				textPath = base + ".txt"
			}

			if err := writeOutput(nil, output, buf.Bytes()); err != nil {
				return err
			}
			if err := writeOutput(nil, truthPath, []byte(page.Table().ToCSV())); err != nil {
				return err
			}
			if err := writeOutput(nil, textPath, []byte(page.Text()+"\n")); err != nil {
				return err
			}

			a.logger.Info("synthetic page written",
				"image", output, "truth", truthPath, "text", textPath,
				"rows", len(page.Rows), "seed", seed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "page image to write (PNG)")
	cmd.Flags().StringVar(&truthPath, "truth", "", "ground-truth CSV (default <output>.csv)")
	cmd.Flags().StringVar(&textPath, "text", "", "ground-truth transcript (default <output>.txt)")
	cmd.Flags().IntVar(&rows, "rows", 10, "number of data rows")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().Float64Var(&noise, "noise", 0, "salt-and-pepper noise probability per pixel")
	cmd.Flags().Float64Var(&blur, "blur", 0, "gaussian blur sigma")
	cmd.Flags().BoolVar(&rules, "rules", false, "draw a rule under the header row")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
