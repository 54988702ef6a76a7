package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/dictionary-importer/internal/app"
	"github.com/heartmarshall/dictionary-importer/internal/config"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Import the configured sources",
	Long: `Run imports every source that has an input configured, in canonical
order (GUT_WEBSTER, CENTURY21, COLLINS, OXFORD, ENG_CHN). With --phase only the
listed sources run, and each of them must have an input.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		phase, _ := cmd.Flags().GetString("phase")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		workers, _ := cmd.Flags().GetInt("workers")

		cfg, logger, err := setup(cmd, func(c *config.Config) {
			if phase != "" {
				c.Import.PhasesRaw = phase
			}
			if dryRun {
				c.Import.DryRun = true
				c.Sink.Kind = config.SinkNone
			}
			if workers > 0 {
				c.Import.Workers = workers
			}
		})
		if err != nil {
			return err
		}

		if err := app.New(cfg, logger).Import(cmd.Context(), nil); err != nil {
			logger.Error("import failed", slog.String("error", err.Error()))
			return err
		}
		logger.Info("import completed successfully")
		return nil
	},
}

func init() {
	runCmd.Flags().String("phase", "", "comma-separated sources to import (default: all configured)")
	runCmd.Flags().Bool("dry-run", false, "parse sources without writing")
	runCmd.Flags().Int("workers", 0, "parser workers per phase (default: from config)")

	rootCmd.AddCommand(runCmd)
}
