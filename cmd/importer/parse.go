package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/dictionary-importer/internal/app"
	"github.com/heartmarshall/dictionary-importer/internal/config"
	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse one source file and print records as JSON lines",
	Long: `Parse runs the extraction pipeline over a single file without writing
anything and prints one JSON object per record to stdout, in input order.
Without --file the input configured for --source is used.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		src, _ := cmd.Flags().GetString("source")
		file, _ := cmd.Flags().GetString("file")
		format, _ := cmd.Flags().GetString("format")

		code, ok := domain.ParseSourceCode(src)
		if !ok {
			return fmt.Errorf("--source: %w: %q", domain.ErrUnknownSource, src)
		}

		cfg, logger, err := setup(cmd, func(c *config.Config) {
			c.Sink.Kind = config.SinkNone
		})
		if err != nil {
			return err
		}

		in, ok := cfg.Import.Input(code)
		if file != "" {
			in, ok = config.SourceInput{Path: file, Format: format}, true
		}
		if !ok {
			return fmt.Errorf("no input for %s: pass --file or configure import.sources", code)
		}

		res, err := app.New(cfg, logger).Dump(cmd.Context(), code, in, os.Stdout)
		if err != nil {
			return err
		}
		logger.Info("parse completed",
			slog.String("source", code.String()),
			slog.Int("fragments", res.Fragments),
			slog.Int("definitions", res.Definitions),
			slog.Int("fallbacks", res.Fallbacks),
			slog.Int("malformed", res.Malformed),
		)
		return nil
	},
}

func init() {
	parseCmd.Flags().String("source", "", "source code, e.g. OXFORD or gut_webster")
	parseCmd.Flags().String("file", "", "input file (default: the configured input)")
	parseCmd.Flags().String("format", "", "input format: jsonl or dump (default: by extension)")
	_ = parseCmd.MarkFlagRequired("source")

	rootCmd.AddCommand(parseCmd)
}
