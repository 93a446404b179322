package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/cflow/domain"
)

// CFGReporter renders build responses in the configured output format.
// It consumes the read-only graph view only; graphs are never modified
// during rendering.
type CFGReporter struct {
	format          domain.OutputFormat
	showUnreachable bool
}

// NewCFGReporter creates a reporter for the given format
func NewCFGReporter(format domain.OutputFormat, showUnreachable bool) *CFGReporter {
	return &CFGReporter{
		format:          format,
		showUnreachable: showUnreachable,
	}
}

// Write renders the response to the writer
func (r *CFGReporter) Write(w io.Writer, resp *domain.BuildResponse) error {
	switch r.format {
	case domain.OutputFormatText:
		return r.writeText(w, resp)
	case domain.OutputFormatJSON:
		return r.writeJSON(w, resp)
	case domain.OutputFormatYAML:
		return r.writeYAML(w, resp)
	case domain.OutputFormatDOT:
		return r.writeDOT(w, resp)
	default:
		return domain.NewUnsupportedFormatError(string(r.format))
	}
}

func (r *CFGReporter) writeText(w io.Writer, resp *domain.BuildResponse) error {
	for _, file := range resp.Files {
		if _, err := fmt.Fprintf(w, "%s\n%s\n", file.FilePath, strings.Repeat("=", len(file.FilePath))); err != nil {
			return err
		}
		if file.Error != "" {
			if _, err := fmt.Fprintf(w, "error: %s\n\n", file.Error); err != nil {
				return err
			}
			continue
		}

		for _, graph := range file.Graphs {
			if err := r.writeTextGraph(w, graph); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "Graphs: %d  Failed files: %d\n", resp.TotalGraphs, resp.FailedFiles)
	return err
}

func (r *CFGReporter) writeTextGraph(w io.Writer, graph domain.GraphInfo) error {
	header := fmt.Sprintf("graph %s: %d blocks, %d edges", graph.Name, len(graph.Blocks), len(graph.Edges))
	if graph.RiskLevel != "" {
		header += fmt.Sprintf(", complexity %d (%s)", graph.Complexity, graph.RiskLevel)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for _, block := range graph.Blocks {
		marks := ""
		if block.IsEntry {
			marks += " (entry)"
		}
		if block.IsExit {
			marks += " (exit)"
		}
		if r.showUnreachable && !block.Reachable {
			marks += " (unreachable)"
		}
		if _, err := fmt.Fprintf(w, "  %s [%s]%s: %s\n",
			block.ID, block.Label, marks, strings.Join(block.Statements, "; ")); err != nil {
			return err
		}
	}

	for _, edge := range graph.Edges {
		if _, err := fmt.Fprintf(w, "  %s -> %s [%s]\n", edge.From, edge.To, edge.Label); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

func (r *CFGReporter) writeJSON(w io.Writer, resp *domain.BuildResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func (r *CFGReporter) writeYAML(w io.Writer, resp *domain.BuildResponse) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(resp)
}

// writeDOT renders every graph as a Graphviz digraph
func (r *CFGReporter) writeDOT(w io.Writer, resp *domain.BuildResponse) error {
	for _, file := range resp.Files {
		if file.Error != "" {
			continue
		}
		for _, graph := range file.Graphs {
			if err := r.writeDOTGraph(w, graph); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *CFGReporter) writeDOTGraph(w io.Writer, graph domain.GraphInfo) error {
	if _, err := fmt.Fprintf(w, "digraph %q {\n  rankdir=TB;\n  node [shape=box];\n", graph.Name); err != nil {
		return err
	}

	for _, block := range graph.Blocks {
		label := block.ID
		if len(block.Statements) > 0 {
			label = strings.Join(block.Statements, "\\n")
		}
		attrs := fmt.Sprintf("label=\"%s\"", dotEscape(label))
		if block.IsEntry || block.IsExit {
			attrs += " penwidth=2"
		}
		if r.showUnreachable && !block.Reachable {
			attrs += " style=dashed"
		}
		if _, err := fmt.Fprintf(w, "  %q [%s];\n", block.ID, attrs); err != nil {
			return err
		}
	}

	for _, edge := range graph.Edges {
		if _, err := fmt.Fprintf(w, "  %q -> %q [label=%q];\n", edge.From, edge.To, edge.Label); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

// dotEscape escapes double quotes for use inside a quoted DOT label.
// Backslash sequences like \n are left intact so multi-line labels
// render as line breaks.
func dotEscape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
