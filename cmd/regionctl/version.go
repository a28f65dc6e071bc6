package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "regionctl %s\n", version)
		fmt.Fprintf(w, "  commit: %s\n", commit)
		fmt.Fprintf(w, "  built: %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
