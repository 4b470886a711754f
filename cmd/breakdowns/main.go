// breakdowns detects conversational breakdowns in agent/user dialogues.
//
// Usage:
//
//	breakdowns detect <dialogues> <dialogue_flow> [--output-file f] [--breakdown-components k ...] [-n 3]
//	breakdowns serve [dialogue_flow]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	debug bool
}

var rootCmd = &cobra.Command{
	Use:   "breakdowns",
	Short: "Detect breakdowns in agent/user conversations",
	Long: "breakdowns analyzes finished conversations for system failures, flow\n" +
		"discontinuations and dialogues of the deaf, and mines the conversational\n" +
		"patterns that lead to them.",
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootFlags.debug, "debug", false, "Log every per-dialogue detection result")
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
