package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/cflow/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cflow",
	Short: "A control flow graph builder for structured source code",
	Long: `cflow parses structured source code and builds control flow graphs:
basic blocks connected by labeled edges for branches, loops, and jumps.

Features:
  • Per-function graphs with labeled edges (true/false, loop_back, break, ...)
  • Unreachable code detection
  • Cyclomatic complexity with risk assessment
  • Text, JSON, YAML, and Graphviz DOT output`,
	Version: version.Short(),
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewBuildCmd())
	rootCmd.AddCommand(NewCheckCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewVersionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
