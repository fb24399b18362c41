package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦═╗┌─┐┬┌─┐┬ ┬
  ╠╦╝├┤ │├┤ └┬┘
  ╩╚═└─┘┴└   ┴
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "reify",
		Short: "Declarative scene reconciliation for Go",
		Long: `Reify keeps a stateful scene graph in sync with a declarative
element tree that is regenerated every tick.

The CLI drives the engine against a synthetic renderer:

  • sim     run a churning workload and report reconciliation stats
  • version print build information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		simCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
