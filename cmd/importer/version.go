package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/dictionary-importer/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of importer",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "importer %s\n", app.BuildVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
