// Command lgcdemo walks through the usage patterns of package lgc: building a managed value,
// sharing it between handles, mutating it through one handle and reading it through another,
// and returning a handle from a function.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

var rootCmd = &cobra.Command{
	Use:   "lgcdemo",
	Short: "Demonstrates reference-counted handles from package lgc.",
	Long: `Demonstrates reference-counted handles from package lgc. ` +
		`Use --stats to print the heap report after the demo and --limit ` +
		`to watch the factory fail once the heap is exhausted.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		stats, _ := cmd.Flags().GetBool("stats")
		limit, _ := cmd.Flags().GetInt("limit")

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		return runDemo(cmd.OutOrStdout(), logger, demoOptions{
			HeapSizeLimit: limit,
			PrintStats:    stats,
		})
	},
}

func init() {
	rootCmd.Flags().Bool("debug", false, "log every heap operation")
	rootCmd.Flags().Bool("stats", false, "print the heap report as JSON when the demo ends")
	rootCmd.Flags().Int("limit", 0, "heap size limit in bytes, 0 for none")
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
