package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"instrumentor/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "instrument",
		Short:         "Record instrumented workloads as Chrome trace files",
		Long:          `instrument runs a synthetic workload under the instrumentation profiler and writes a trace-event JSON file for chrome://tracing or Perfetto.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().String("log-level", "info", "log level (debug|info|warn|error)")
	root.PersistentFlags().Bool("log-dev", false, "human-readable console logs")

	root.AddCommand(newRunCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// main builds the command tree and executes it.
// If command execution returns an error, the process exits with status code 1.
func main() {
	color.NoColor = color.NoColor || !isTerminal(os.Stdout)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
