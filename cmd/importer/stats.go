package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/dictionary-importer/internal/app"
	"github.com/heartmarshall/dictionary-importer/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print stored record counts per source",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		counts, err := app.New(cfg, logger).Counts(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		total := 0
		for _, code := range domain.SourceCodes() {
			fmt.Fprintf(out, "%-12s %d\n", code, counts[code])
			total += counts[code]
		}
		fmt.Fprintf(out, "%-12s %d\n", "total", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
