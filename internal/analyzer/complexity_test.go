package analyzer

import (
	"testing"
)

func TestCalculateComplexity(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		complexity int
	}{
		{"StraightLine", "a();\nb();\nc();", 1},
		{"Empty", "", 1},
		{"SingleIf", "if (x) { a(); }\nb();", 2},
		{"IfElse", "if (x) { a(); } else { b(); }\nc();", 2},
		{"While", "while (x) { a(); }\nb();", 2},
		{"For", "for (i = 0; i < 3; i = i + 1) { a(); }\nb();", 2},
		{"NestedLoopsAndBranch", "while (x) {\n  if (y) { a(); }\n  b();\n}\nc();", 3},
		{"ElseIfChain", "if (a) { x(); } else if (b) { y(); } else { z(); }\nw();", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := buildCFG(t, tt.source)
			result := CalculateComplexity(cfg)
			if result.Complexity != tt.complexity {
				t.Errorf("Expected complexity %d, got %d (nodes=%d edges=%d)",
					tt.complexity, result.Complexity, result.Nodes, result.Edges)
			}
		})
	}
}

func TestComplexityCountsReachableSubgraphOnly(t *testing.T) {
	// the unreachable tail after return must not affect the metric
	cfg := buildCFG(t, "a();\nreturn 1;\nif (x) { b(); }\nc();")

	result := CalculateComplexity(cfg)
	if result.Complexity != 1 {
		t.Errorf("Expected complexity 1 over the reachable subgraph, got %d", result.Complexity)
	}
}

func TestComplexityDecisionBreakdown(t *testing.T) {
	cfg := buildCFG(t, "if (x) { a(); }\nwhile (y) { b(); }\nc();")

	result := CalculateComplexity(cfg)
	if result.IfBranches != 1 {
		t.Errorf("Expected 1 if branch, got %d", result.IfBranches)
	}
	if result.LoopHeaders != 1 {
		t.Errorf("Expected 1 loop header, got %d", result.LoopHeaders)
	}
	if result.FunctionName != "main" {
		t.Errorf("Expected function name 'main', got %q", result.FunctionName)
	}
}

func TestComplexityNilCFG(t *testing.T) {
	result := CalculateComplexity(nil)
	if result.Complexity != 0 {
		t.Errorf("Expected 0 for nil CFG, got %d", result.Complexity)
	}
}

func TestAssessRisk(t *testing.T) {
	tests := []struct {
		complexity int
		want       string
	}{
		{1, RiskLevelLow},
		{9, RiskLevelLow},
		{10, RiskLevelMedium},
		{19, RiskLevelMedium},
		{20, RiskLevelHigh},
	}

	for _, tt := range tests {
		cr := &ComplexityResult{Complexity: tt.complexity}
		if got := cr.AssessRisk(9, 19); got != tt.want {
			t.Errorf("AssessRisk(%d) = %s, want %s", tt.complexity, got, tt.want)
		}
		if cr.RiskLevel != tt.want {
			t.Errorf("RiskLevel not recorded for complexity %d", tt.complexity)
		}
	}
}
