// Package cli implements the scantable command line interface.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tsawler/scantable"
	"github.com/tsawler/scantable/ocr"
)

// RecognizerFactory builds the process-wide recognizer. The returned
// function releases it.
type RecognizerFactory func(config *Config) (ocr.Recognizer, func() error, error)

// TesseractRecognizer creates a Tesseract client for the configured
// language. Without the "ocr" build tag it returns ocr.ErrOCRNotEnabled.
func TesseractRecognizer(config *Config) (ocr.Recognizer, func() error, error) {
	opts := ocr.DefaultOptions()
	opts.Language = config.Language
	client, err := ocr.New(opts)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}

// flagValues receives flag values before they are applied over the
// environment-derived config.
type flagValues struct {
	columns     int
	lang        string
	logLevel    string
	concurrency int
	upscale     float64
	strict      bool
	rowBands    bool
	format      string
	output      string
}

// app encapsulates the state shared by every command.
type app struct {
	config        *Config
	flags         flagValues
	logger        *slog.Logger
	newRecognizer RecognizerFactory
}

// NewRootCmd creates and returns the root command using Tesseract for
// recognition.
func NewRootCmd() *cobra.Command {
	return newApp(TesseractRecognizer).rootCmd()
}

func newApp(factory RecognizerFactory) *app {
	return &app{newRecognizer: factory}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scantable",
		Short: "Recover statement tables from scanned page images",
		Long: `scantable reads a scanned or photographed financial statement page and
recovers its table of daily prices (date, open, high, low, close, volume).

Configuration comes from defaults, then SCANTABLE_* environment variables,
then command line flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.flags.lang, "lang", "", "recognition language(s), e.g. eng")
	root.PersistentFlags().StringVar(&a.flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.extractCmd(),
		a.batchCmd(),
		a.evaluateCmd(),
		a.synthCmd(),
		versionCmd(),
	)
	return root
}

// addPipelineFlags registers the flags that shape extraction.
func (a *app) addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&a.flags.columns, "columns", "c", 0, "number of table columns (default 6)")
	cmd.Flags().BoolVar(&a.flags.strict, "strict", false, "fail when columns yield different row counts")
	cmd.Flags().BoolVar(&a.flags.rowBands, "row-bands", false, "read each cell of the detected row bands separately")
	cmd.Flags().Float64Var(&a.flags.upscale, "upscale", 0, "enlarge the page by this factor before processing")
}

// setup loads the configuration, applies the flags that were set, and
// creates the logger.
func (a *app) setup(cmd *cobra.Command) error {
	a.config = LoadConfigWithEnvOverrides()
	a.applyFlagOverrides(cmd)
	if err := a.config.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	a.logger = NewLogger(cmd.ErrOrStderr(), a.config.LogLevel)
	return nil
}

func (a *app) applyFlagOverrides(cmd *cobra.Command) {
	f := cmd.Flags()
	if f.Changed("columns") {
		a.config.Columns = a.flags.columns
	}
	if f.Changed("lang") {
		a.config.Language = a.flags.lang
	}
	if f.Changed("log-level") {
		a.config.LogLevel = a.flags.logLevel
	}
	if f.Changed("jobs") {
		a.config.Concurrency = a.flags.concurrency
	}
	if f.Changed("upscale") {
		a.config.Upscale = a.flags.upscale
	}
	if f.Changed("strict") {
		a.config.Strict = a.flags.strict
	}
	if f.Changed("row-bands") {
		a.config.RowBands = a.flags.rowBands
	}
	if f.Changed("format") {
		a.config.Format = a.flags.format
	}
}

// recognizer constructs the shared recognizer once per command run.
func (a *app) recognizer() (ocr.Recognizer, func() error, error) {
	rec, closeFn, err := a.newRecognizer(a.config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create recognizer: %w", err)
	}
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return rec, closeFn, nil
}

// extractor configures an extraction of path from the current config.
func (a *app) extractor(path string, rec ocr.Recognizer) *scantable.Extractor {
	ext := scantable.Open(path).
		WithRecognizer(rec).
		Columns(a.config.Columns).
		UseRowBands(a.config.RowBands).
		WithLogger(a.logger)
	if a.config.Strict {
		ext = ext.Strict()
	}
	if a.config.Upscale > 0 {
		ext = ext.Upscale(a.config.Upscale)
	}
	return ext
}
