package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ludo-technologies/cflow/app"
	"github.com/ludo-technologies/cflow/domain"
	"github.com/ludo-technologies/cflow/internal/config"
	"github.com/ludo-technologies/cflow/service"
)

// BuildCommand represents the build command
type BuildCommand struct {
	format          string
	output          string
	configFile      string
	includePatterns []string
	excludePatterns []string
	showUnreachable bool
}

// NewBuildCommand creates a new build command
func NewBuildCommand() *BuildCommand {
	return &BuildCommand{
		format: config.DefaultOutputFormat,
	}
}

// CreateCobraCommand creates the cobra command for graph construction
func (b *BuildCommand) CreateCobraCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [paths...]",
		Short: "Build control flow graphs from source files",
		Long: `Build control flow graphs for the given files or directories.

Each source file yields one graph for its top-level statements plus one
graph per function definition. Directories are walked recursively with
include/exclude glob patterns applied.

Examples:
  # Build graphs for one file
  cflow build main.src

  # Build graphs for a directory, as Graphviz DOT
  cflow build --format dot src/

  # Write a JSON report to a file
  cflow build --format json --output report.json src/

  # Mark unreachable blocks in the report
  cflow build --show-unreachable main.src`,
		Args: cobra.MinimumNArgs(1),
		RunE: b.runBuild,
	}

	cmd.Flags().StringVarP(&b.format, "format", "f", config.DefaultOutputFormat, "Output format: text, json, yaml, dot")
	cmd.Flags().StringVarP(&b.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVarP(&b.configFile, "config", "c", "", "Configuration file path")
	cmd.Flags().StringSliceVar(&b.includePatterns, "include", nil, "Glob patterns for files to include")
	cmd.Flags().StringSliceVar(&b.excludePatterns, "exclude", nil, "Glob patterns for files to exclude")
	cmd.Flags().BoolVar(&b.showUnreachable, "show-unreachable", false, "Mark unreachable blocks in the report")

	return cmd
}

// runBuild executes the build command
func (b *BuildCommand) runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := b.loadConfig()
	if err != nil {
		return err
	}

	req := b.buildRequest(cmd.Flags(), cfg, args)

	useCase := app.NewBuildUseCase(
		service.NewCFGService(cfg),
		service.NewFileReader(),
		service.NewReportWriter(),
		service.NewProgressManager(),
	)

	resp, err := useCase.Execute(cmd.Context(), req)
	if err != nil {
		return err
	}
	if resp.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed to build", resp.FailedFiles, len(resp.Files))
	}
	return nil
}

// loadConfig loads either the explicit config file or the nearest
// project .cflow.toml
func (b *BuildCommand) loadConfig() (*config.Config, error) {
	if b.configFile != "" {
		return config.LoadConfig(b.configFile)
	}
	return config.LoadProjectConfig(".")
}

// buildRequest merges config defaults with command line flags; flags
// win when explicitly set.
func (b *BuildCommand) buildRequest(flags *pflag.FlagSet, cfg *config.Config, paths []string) domain.BuildRequest {
	req := domain.BuildRequest{
		Paths:           paths,
		IncludePatterns: cfg.Input.IncludePatterns,
		ExcludePatterns: cfg.Input.ExcludePatterns,
		OutputFormat:    domain.OutputFormat(cfg.Output.Format),
		OutputWriter:    os.Stdout,
		ShowUnreachable: cfg.Output.ShowUnreachable,
	}

	if flags.Changed("format") {
		req.OutputFormat = domain.OutputFormat(b.format)
	}
	if flags.Changed("include") {
		req.IncludePatterns = b.includePatterns
	}
	if flags.Changed("exclude") {
		req.ExcludePatterns = b.excludePatterns
	}
	if flags.Changed("show-unreachable") {
		req.ShowUnreachable = b.showUnreachable
	}

	switch {
	case b.output != "":
		req.OutputPath = b.output
	case cfg.Output.Directory != "":
		req.OutputPath = filepath.Join(cfg.Output.Directory, "cfg_report."+reportExtension(req.OutputFormat))
	}
	return req
}

func reportExtension(format domain.OutputFormat) string {
	switch format {
	case domain.OutputFormatJSON:
		return "json"
	case domain.OutputFormatYAML:
		return "yaml"
	case domain.OutputFormatDOT:
		return "dot"
	default:
		return "txt"
	}
}

// NewBuildCmd creates and returns the build cobra command
func NewBuildCmd() *cobra.Command {
	return NewBuildCommand().CreateCobraCommand()
}
