package analyzer

import (
	"testing"
)

func TestAnalyzeReachability(t *testing.T) {
	t.Run("AllReachable", func(t *testing.T) {
		cfg := buildCFG(t, "if (x) { a(); } else { b(); }\nc();")

		result := NewReachabilityAnalyzer(cfg).AnalyzeReachability()

		if result.TotalBlocks != 4 {
			t.Errorf("Expected 4 total blocks, got %d", result.TotalBlocks)
		}
		if result.UnreachableCount != 0 {
			t.Errorf("Expected no unreachable blocks, got %d", result.UnreachableCount)
		}
		if result.HasUnreachableCode() {
			t.Error("Expected no unreachable code")
		}
		if ratio := result.GetReachabilityRatio(); ratio != 1.0 {
			t.Errorf("Expected ratio 1.0, got %f", ratio)
		}
	})

	t.Run("CodeAfterReturn", func(t *testing.T) {
		cfg := buildCFG(t, "a();\nreturn 1;\nb();\nc();")

		result := NewReachabilityAnalyzer(cfg).AnalyzeReachability()

		if result.UnreachableCount != 1 {
			t.Fatalf("Expected 1 unreachable block, got %d", result.UnreachableCount)
		}
		if !result.HasUnreachableCode() {
			t.Error("Expected unreachable code to be reported")
		}

		withStatements := result.GetUnreachableBlocksWithStatements()
		if len(withStatements) != 1 {
			t.Fatalf("Expected 1 unreachable block with statements, got %d", len(withStatements))
		}
		for _, block := range withStatements {
			if len(block.Statements) != 2 {
				t.Errorf("Expected b() and c() in the unreachable block, got %d statements", len(block.Statements))
			}
		}
	})

	t.Run("CodeAfterBreak", func(t *testing.T) {
		cfg := buildCFG(t, "while (x) {\n  break;\n  a();\n}")

		result := NewReachabilityAnalyzer(cfg).AnalyzeReachability()
		if result.UnreachableCount != 1 {
			t.Errorf("Expected 1 unreachable block after break, got %d", result.UnreachableCount)
		}
	})

	t.Run("EmptyGraph", func(t *testing.T) {
		result := NewReachabilityAnalyzer(NewCFG("main")).AnalyzeReachability()
		if result.TotalBlocks != 0 || result.UnreachableCount != 0 {
			t.Errorf("Expected empty result, got %+v", result)
		}
		if result.GetReachabilityRatio() != 1.0 {
			t.Error("Empty graph reachability ratio must be 1.0")
		}
	})

	t.Run("NilCFG", func(t *testing.T) {
		result := NewReachabilityAnalyzer(nil).AnalyzeReachability()
		if result.TotalBlocks != 0 {
			t.Errorf("Expected zero blocks for nil CFG, got %d", result.TotalBlocks)
		}
	})
}
