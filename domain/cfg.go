package domain

import (
	"context"
	"io"
)

// OutputFormat identifies a report rendering
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatDOT  OutputFormat = "dot"
)

// IsValid reports whether the format is one of the supported renderings
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML, OutputFormatDOT:
		return true
	}
	return false
}

// BuildRequest describes one graph construction run
type BuildRequest struct {
	// Paths are the files or directories to analyze
	Paths []string

	// IncludePatterns and ExcludePatterns filter discovered files
	// (doublestar globs, matched against slash-separated relative paths)
	IncludePatterns []string
	ExcludePatterns []string

	// OutputFormat selects the report rendering
	OutputFormat OutputFormat

	// OutputWriter receives the report when OutputPath is empty
	OutputWriter io.Writer

	// OutputPath, when non-empty, is the file the report is written to
	OutputPath string

	// ShowUnreachable includes unreachable-block findings in the report
	ShowUnreachable bool
}

// BlockInfo is the read-only view of one basic block
type BlockInfo struct {
	ID         string   `json:"id" yaml:"id"`
	Label      string   `json:"label" yaml:"label"`
	Statements []string `json:"statements" yaml:"statements"`
	IsEntry    bool     `json:"is_entry" yaml:"is_entry"`
	IsExit     bool     `json:"is_exit" yaml:"is_exit"`
	Reachable  bool     `json:"reachable" yaml:"reachable"`
}

// EdgeInfo is the read-only view of one labeled edge
type EdgeInfo struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Label string `json:"label" yaml:"label"`
}

// GraphInfo is the read-only view of one control flow graph. This is
// the sole contract between the core and rendering collaborators.
type GraphInfo struct {
	Name             string      `json:"name" yaml:"name"`
	Blocks           []BlockInfo `json:"blocks" yaml:"blocks"`
	Edges            []EdgeInfo  `json:"edges" yaml:"edges"`
	EntryID          string      `json:"entry_id" yaml:"entry_id"`
	ExitID           string      `json:"exit_id" yaml:"exit_id"`
	Complexity       int         `json:"complexity" yaml:"complexity"`
	RiskLevel        string      `json:"risk_level" yaml:"risk_level"`
	UnreachableCount int         `json:"unreachable_count" yaml:"unreachable_count"`
}

// FileResult holds the graphs built from one source file
type FileResult struct {
	FilePath string      `json:"file_path" yaml:"file_path"`
	Graphs   []GraphInfo `json:"graphs" yaml:"graphs"`

	// Error is the failure message for this file, empty on success
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// BuildResponse aggregates the results of a build run
type BuildResponse struct {
	Files []FileResult `json:"files" yaml:"files"`

	// TotalGraphs counts graphs across all files
	TotalGraphs int `json:"total_graphs" yaml:"total_graphs"`

	// FailedFiles counts files that could not be analyzed
	FailedFiles int `json:"failed_files" yaml:"failed_files"`
}

// CFGService builds control flow graphs from source files. The
// pipeline is synchronous; implementations must honor caller deadlines
// by aborting before parsing starts, never mid-traversal.
type CFGService interface {
	// BuildFile parses one file and builds its graphs
	BuildFile(ctx context.Context, path string) (*FileResult, error)

	// BuildSource parses raw source text and builds its graphs; name is
	// used for reporting only
	BuildSource(ctx context.Context, name string, source []byte) (*FileResult, error)
}

// FileReader discovers and reads source files
type FileReader interface {
	// CollectSourceFiles expands paths into the list of source files to
	// analyze, applying include/exclude patterns to directory walks
	CollectSourceFiles(paths []string, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads one source file
	ReadFile(path string) ([]byte, error)
}

// ReportWriter abstracts writing reports to a destination
type ReportWriter interface {
	// Write writes formatted content using writeFunc. When outputPath is
	// non-empty the file at that path is created or truncated and passed
	// to writeFunc; otherwise writer is used.
	Write(writer io.Writer, outputPath string, writeFunc func(io.Writer) error) error
}

// ProgressManager manages progress tracking for multi-file runs
type ProgressManager interface {
	// Initialize sets up progress tracking with the maximum value
	Initialize(maxValue int)

	// Start starts the progress bar
	Start()

	// Update updates the progress
	Update(processed, total int)

	// Complete marks the progress as completed
	Complete(success bool)

	// SetWriter sets the output writer for progress bars
	SetWriter(writer io.Writer)

	// IsInteractive returns true if progress bars should be shown
	IsInteractive() bool

	// Close cleans up any resources
	Close()
}
