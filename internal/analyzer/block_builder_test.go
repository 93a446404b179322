package analyzer

import (
	"testing"

	"github.com/ludo-technologies/cflow/internal/parser"
)

func parseTree(t *testing.T, source string) *parser.Node {
	t.Helper()
	root, err := parser.New().Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return root
}

func TestBlockBuilder(t *testing.T) {
	t.Run("SequentialStatementsShareBlock", func(t *testing.T) {
		root := parseTree(t, "a();\nb();\nc();")
		builder := NewBlockBuilder(NewCFG("main"))

		blocks, err := builder.Build(root)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if len(blocks) != 1 {
			t.Fatalf("Expected 1 block, got %d", len(blocks))
		}
		if len(blocks[0].Statements) != 3 {
			t.Errorf("Expected 3 statements in the block, got %d", len(blocks[0].Statements))
		}
	})

	t.Run("ConditionGetsDedicatedHeaderBlock", func(t *testing.T) {
		root := parseTree(t, "a();\nif (x) { b(); }\nc();")
		builder := NewBlockBuilder(NewCFG("main"))

		blocks, err := builder.Build(root)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		// a() | if header | then | merge
		if len(blocks) != 4 {
			t.Fatalf("Expected 4 blocks, got %d", len(blocks))
		}

		header := blocks[1]
		if header.Label != LabelIfHeader {
			t.Errorf("Expected if_header label, got %s", header.Label)
		}
		if len(header.Statements) != 1 || header.Statements[0].Type != parser.NodeIf {
			t.Error("Header block must hold only the condition test")
		}
	})

	t.Run("BlocksAreUnlinked", func(t *testing.T) {
		root := parseTree(t, "if (x) { a(); } else { b(); }\nc();")
		builder := NewBlockBuilder(NewCFG("main"))

		blocks, err := builder.Build(root)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		for _, block := range blocks {
			if len(block.Successors) != 0 || len(block.Predecessors) != 0 {
				t.Errorf("Block %s must be unlinked after partitioning", block.ID)
			}
		}
	})

	t.Run("JumpClosesBlock", func(t *testing.T) {
		root := parseTree(t, "a();\nreturn 1;\nb();")
		builder := NewBlockBuilder(NewCFG("main"))

		blocks, err := builder.Build(root)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if len(blocks) != 2 {
			t.Fatalf("Expected 2 blocks, got %d", len(blocks))
		}
		if len(blocks[0].Statements) != 2 {
			t.Errorf("Return must stay in the preceding block, got %d statements", len(blocks[0].Statements))
		}
		if blocks[1].Label != LabelUnreachable {
			t.Errorf("Statements after a jump open an unreachable block, got label %s", blocks[1].Label)
		}
	})

	t.Run("DoWhileHeaderFollowsBody", func(t *testing.T) {
		root := parseTree(t, "do { a(); } while (x);")
		builder := NewBlockBuilder(NewCFG("main"))

		blocks, err := builder.Build(root)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if len(blocks) != 2 {
			t.Fatalf("Expected 2 blocks, got %d", len(blocks))
		}
		if blocks[0].Label != LabelDoBody {
			t.Errorf("Expected do_body first, got %s", blocks[0].Label)
		}
		if blocks[1].Label != LabelLoopHeader {
			t.Errorf("Expected loop_header after the body, got %s", blocks[1].Label)
		}
	})

	t.Run("BindingMapsStatementsToBlocks", func(t *testing.T) {
		root := parseTree(t, "a();\nwhile (x) { b(); }")
		builder := NewBlockBuilder(NewCFG("main"))

		blocks, err := builder.Build(root)
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		binding := builder.Binding()

		if binding[root.Body[0]] != blocks[0] {
			t.Error("a() must bind to the first block")
		}
		loop := root.Body[1]
		if binding[loop] != blocks[1] {
			t.Error("The loop must bind to its header block")
		}
		if binding[loop.Body[0]] != blocks[2] {
			t.Error("b() must bind to the loop body block")
		}
	})

	t.Run("RejectsNonRootNode", func(t *testing.T) {
		builder := NewBlockBuilder(NewCFG("main"))
		if _, err := builder.Build(&parser.Node{Type: parser.NodeStatement}); err == nil {
			t.Error("Expected error for non-root node")
		}
		if _, err := builder.Build(nil); err == nil {
			t.Error("Expected error for nil node")
		}
	})
}
