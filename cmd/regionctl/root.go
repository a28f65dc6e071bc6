package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "regionctl",
	Short: "Replay allocation traces against region allocators",
	Long: `regionctl drives the allockit region allocators from a plain-text
trace of allocate, free, grow and shrink operations. It reports the capacity
left after every step and can dump the live memory of the region at the end.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger(cmd.ErrOrStderr(), verbose && !quiet)
	},
	SilenceUsage: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
