package analyzer

import "fmt"

// Risk level names used in complexity reports
const (
	RiskLevelLow    = "low"
	RiskLevelMedium = "medium"
	RiskLevelHigh   = "high"
)

// ComplexityResult holds cyclomatic complexity metrics for one graph
type ComplexityResult struct {
	// McCabe cyclomatic complexity: E - N + 2 over the reachable graph
	Complexity int

	// Raw CFG metrics
	Nodes int
	Edges int

	// Decision point breakdown
	IfBranches  int
	LoopHeaders int

	// FunctionName is the graph's name ("main" for the top level)
	FunctionName string

	// RiskLevel is "low", "medium" or "high" per the configured thresholds
	RiskLevel string
}

// String returns a human-readable representation of the complexity result
func (cr *ComplexityResult) String() string {
	return fmt.Sprintf("Function: %s, Complexity: %d, Risk: %s",
		cr.FunctionName, cr.Complexity, cr.RiskLevel)
}

// CalculateComplexity computes McCabe cyclomatic complexity over the
// subgraph reachable from entry. A straight-line graph scores 1; each
// if header and each loop header adds one.
func CalculateComplexity(cfg *CFG) *ComplexityResult {
	result := &ComplexityResult{}
	if cfg == nil {
		return result
	}
	result.FunctionName = cfg.Name

	cfg.Walk(&funcVisitor{
		onBlock: func(block *BasicBlock) bool {
			result.Nodes++
			return true
		},
		onEdge: func(edge *Edge) bool {
			result.Edges++
			switch edge.Type {
			case EdgeCondFalse:
				result.IfBranches++
			case EdgeLoopExit:
				result.LoopHeaders++
			}
			return true
		},
	})

	if result.Nodes > 0 {
		result.Complexity = result.Edges - result.Nodes + 2
	}
	return result
}

// AssessRisk buckets the complexity into low/medium/high using the
// given inclusive thresholds and records the level on the result.
func (cr *ComplexityResult) AssessRisk(lowThreshold, mediumThreshold int) string {
	switch {
	case cr.Complexity <= lowThreshold:
		cr.RiskLevel = RiskLevelLow
	case cr.Complexity <= mediumThreshold:
		cr.RiskLevel = RiskLevelMedium
	default:
		cr.RiskLevel = RiskLevelHigh
	}
	return cr.RiskLevel
}
