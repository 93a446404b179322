package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/cflow/internal/config"
	"github.com/ludo-technologies/cflow/service"
)

// CheckCommand represents a quick validation command for CI pipelines
type CheckCommand struct {
	configFile      string
	quiet           bool
	maxComplexity   int
	failUnreachable bool
}

// NewCheckCommand creates a new check command
func NewCheckCommand() *CheckCommand {
	return &CheckCommand{
		maxComplexity: 10,
	}
}

// CreateCobraCommand creates the cobra command for quick checking
func (c *CheckCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Validate source files and their control flow",
		Long: `Validate that source files parse and produce well-formed graphs.

Each file is parsed and its graphs are built. A file fails the check
when it has a syntax error, invalid control flow (break or continue
outside a loop), or a graph over the complexity limit. With
--fail-unreachable, unreachable code also fails the check.

Exit codes:
  0: all files pass
  1: one or more files fail

Examples:
  # Validate the current directory (typical CI usage)
  cflow check .

  # Fail builds that contain unreachable code
  cflow check --fail-unreachable src/

  # Raise the complexity limit
  cflow check --max-complexity 15 src/`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runCheck,
	}

	cmd.Flags().StringVarP(&c.configFile, "config", "", "", "Configuration file path")
	cmd.Flags().BoolVarP(&c.quiet, "quiet", "q", false, "Only report failures")
	cmd.Flags().IntVar(&c.maxComplexity, "max-complexity", 10, "Fail when a graph exceeds this complexity")
	cmd.Flags().BoolVar(&c.failUnreachable, "fail-unreachable", false, "Fail when unreachable code is found")

	return cmd
}

// runCheck executes the check command
func (c *CheckCommand) runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	reader := service.NewFileReader()
	files, err := reader.CollectSourceFiles(args, cfg.Input.IncludePatterns, cfg.Input.ExcludePatterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no source files found in the specified paths")
	}

	svc := service.NewCFGService(cfg)
	out := cmd.OutOrStdout()
	failed := 0

	for _, file := range files {
		result, err := svc.BuildFile(cmd.Context(), file)
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL %s: %v\n", file, err)
			continue
		}

		var problems []string
		for _, graph := range result.Graphs {
			if graph.Complexity > c.maxComplexity {
				problems = append(problems,
					fmt.Sprintf("graph %s: complexity %d exceeds limit %d", graph.Name, graph.Complexity, c.maxComplexity))
			}
			if c.failUnreachable && graph.UnreachableCount > 0 {
				problems = append(problems,
					fmt.Sprintf("graph %s: %d unreachable block(s)", graph.Name, graph.UnreachableCount))
			}
		}

		if len(problems) > 0 {
			failed++
			fmt.Fprintf(out, "FAIL %s\n", file)
			for _, problem := range problems {
				fmt.Fprintf(out, "  %s\n", problem)
			}
		} else if !c.quiet {
			fmt.Fprintf(out, "OK   %s (%d graphs)\n", file, len(result.Graphs))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed the check", failed, len(files))
	}
	if !c.quiet {
		fmt.Fprintf(out, "All %d file(s) passed\n", len(files))
	}
	return nil
}

func (c *CheckCommand) loadConfig() (*config.Config, error) {
	if c.configFile != "" {
		return config.LoadConfig(c.configFile)
	}
	return config.LoadProjectConfig(".")
}

// NewCheckCmd creates and returns the check cobra command
func NewCheckCmd() *cobra.Command {
	return NewCheckCommand().CreateCobraCommand()
}
