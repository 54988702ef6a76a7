// Command importer extracts structured definitions from raw dictionary
// sources and stores them per source.
//
// Subcommands:
//
//	run      import the configured sources
//	parse    parse one file and print records as JSON lines
//	migrate  apply the schema to the configured sink
//	stats    print stored record counts per source
//	version  print build information
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/dictionary-importer/internal/app"
	"github.com/heartmarshall/dictionary-importer/internal/config"
)

// rootCmd is the base command for the importer CLI.
var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "Extract structured definitions from raw dictionary sources",
	Long: `importer reads raw dictionary text (staging JSONL rows or plain-text dumps)
for Webster 1913, Century 21, Collins, Oxford and the English-Chinese
dictionary, parses every fragment into definition records and writes them
to PostgreSQL or SQLite.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: $CONFIG_PATH or ./config.yaml)")
}

// setup loads configuration, applying opts before validation, and
// initializes the default logger.
func setup(cmd *cobra.Command, opts ...config.Option) (*config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, opts...)
	if err != nil {
		return nil, nil, err
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
