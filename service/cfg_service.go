package service

import (
	"context"
	"errors"
	"os"
	"sort"

	"github.com/ludo-technologies/cflow/domain"
	"github.com/ludo-technologies/cflow/internal/analyzer"
	"github.com/ludo-technologies/cflow/internal/config"
	"github.com/ludo-technologies/cflow/internal/parser"
)

// CFGServiceImpl implements domain.CFGService: it runs the
// parse -> build -> assemble pipeline and converts the graphs into the
// read-only view consumed by rendering collaborators.
type CFGServiceImpl struct {
	complexityEnabled bool
	lowThreshold      int
	mediumThreshold   int
}

// NewCFGService creates a CFG service with the given configuration
func NewCFGService(cfg *config.Config) domain.CFGService {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &CFGServiceImpl{
		complexityEnabled: cfg.Complexity.Enabled,
		lowThreshold:      cfg.Complexity.LowThreshold,
		mediumThreshold:   cfg.Complexity.MediumThreshold,
	}
}

// BuildFile parses one file and builds its graphs
func (s *CFGServiceImpl) BuildFile(ctx context.Context, path string) (*domain.FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return s.BuildSource(ctx, path, data)
}

// BuildSource parses raw source text and builds its graphs. A
// caller-side deadline aborts before the pipeline starts; the pipeline
// itself has no suspension points.
func (s *CFGServiceImpl) BuildSource(ctx context.Context, name string, source []byte) (*domain.FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := parser.New().Parse(source)
	if err != nil {
		var synErr *parser.SyntaxError
		if errors.As(err, &synErr) {
			return nil, domain.NewSyntaxError(name, err)
		}
		return nil, domain.NewInvalidInputError(name, err)
	}

	cfgs, err := analyzer.NewCFGBuilder().BuildAll(root)
	if err != nil {
		var structErr *analyzer.StructuralError
		if errors.As(err, &structErr) {
			return nil, domain.NewStructuralError(name, err)
		}
		return nil, domain.NewInvalidInputError(name, err)
	}

	result := &domain.FileResult{FilePath: name}
	for _, graphName := range sortedGraphNames(cfgs) {
		result.Graphs = append(result.Graphs, s.convertGraph(graphName, cfgs[graphName]))
	}
	return result, nil
}

// sortedGraphNames orders graphs deterministically: the top-level
// graph first, functions alphabetically after it.
func sortedGraphNames(cfgs map[string]*analyzer.CFG) []string {
	names := make([]string, 0, len(cfgs))
	for name := range cfgs {
		if name != "__main__" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	ordered := make([]string, 0, len(cfgs))
	if _, ok := cfgs["__main__"]; ok {
		ordered = append(ordered, "__main__")
	}
	return append(ordered, names...)
}

// convertGraph flattens one CFG into the read-only domain view
func (s *CFGServiceImpl) convertGraph(name string, cfg *analyzer.CFG) domain.GraphInfo {
	reach := analyzer.NewReachabilityAnalyzer(cfg).AnalyzeReachability()

	// name is the qualified map key; cfg.Name is unqualified
	info := domain.GraphInfo{
		Name:             name,
		UnreachableCount: reach.UnreachableCount,
	}
	if cfg.Entry != nil {
		info.EntryID = cfg.Entry.ID
	}
	if cfg.Exit != nil {
		info.ExitID = cfg.Exit.ID
	}

	for _, block := range cfg.BlocksInOrder() {
		statements := make([]string, 0, len(block.Statements))
		for _, stmt := range block.Statements {
			statements = append(statements, stmt.Text())
		}
		_, reachable := reach.ReachableBlocks[block.ID]
		info.Blocks = append(info.Blocks, domain.BlockInfo{
			ID:         block.ID,
			Label:      block.Label,
			Statements: statements,
			IsEntry:    block.IsEntry,
			IsExit:     block.IsExit,
			Reachable:  reachable,
		})
		for _, edge := range block.Successors {
			info.Edges = append(info.Edges, domain.EdgeInfo{
				From:  edge.From.ID,
				To:    edge.To.ID,
				Label: edge.Type.String(),
			})
		}
	}

	if s.complexityEnabled {
		complexity := analyzer.CalculateComplexity(cfg)
		complexity.AssessRisk(s.lowThreshold, s.mediumThreshold)
		info.Complexity = complexity.Complexity
		info.RiskLevel = complexity.RiskLevel
	}
	return info
}
