package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/dictionary-importer/internal/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the schema to the configured sink",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		return app.New(cfg, logger).Migrate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
