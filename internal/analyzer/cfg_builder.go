package analyzer

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/cflow/internal/parser"
)

// CFGBuilder builds control flow graphs from statement trees. It runs
// the BlockBuilder's partition pass and the GraphAssembler's connect
// pass, and builds separate graphs for function definitions.
type CFGBuilder struct {
	// functionCFGs stores graphs for nested functions by qualified name
	functionCFGs map[string]*CFG

	// scopeStack tracks nested function scopes for name qualification
	scopeStack []string
}

// NewCFGBuilder creates a new CFG builder
func NewCFGBuilder() *CFGBuilder {
	return &CFGBuilder{
		functionCFGs: make(map[string]*CFG),
	}
}

// Build constructs a CFG from a Module or FunctionDef node. Function
// definitions encountered in the body get their own graphs, retrievable
// via BuildAll; the definition itself also appears as a statement in
// the enclosing graph.
func (b *CFGBuilder) Build(node *parser.Node) (*CFG, error) {
	if node == nil {
		return nil, fmt.Errorf("cannot build CFG from nil node")
	}

	name := LabelMainModule
	if node.Type == parser.NodeFunctionDef {
		name = node.Name
	}

	cfg := NewCFG(name)
	builder := NewBlockBuilder(cfg)
	blocks, err := builder.Build(node)
	if err != nil {
		return nil, err
	}

	assembler := NewGraphAssembler(cfg, builder.Binding())
	if _, err := assembler.Assemble(blocks, node); err != nil {
		return nil, err
	}

	if err := b.collectFunctions(node.Body); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BuildAll builds the top-level graph plus one graph per function
// definition. The top-level graph is keyed "__main__"; functions are
// keyed by qualified name (outer.inner for nested definitions).
func (b *CFGBuilder) BuildAll(node *parser.Node) (map[string]*CFG, error) {
	if node == nil {
		return nil, fmt.Errorf("cannot build CFGs from nil node")
	}

	mainCFG, err := b.Build(node)
	if err != nil {
		return nil, err
	}

	allCFGs := make(map[string]*CFG, len(b.functionCFGs)+1)
	allCFGs["__main__"] = mainCFG
	for name, cfg := range b.functionCFGs {
		allCFGs[name] = cfg
	}
	return allCFGs, nil
}

// collectFunctions walks a statement sequence and builds graphs for
// every function definition found, recursing into construct bodies.
func (b *CFGBuilder) collectFunctions(stmts []*parser.Node) error {
	for _, stmt := range stmts {
		switch stmt.Type {
		case parser.NodeFunctionDef:
			if err := b.buildNestedFunction(stmt); err != nil {
				return err
			}
		case parser.NodeIf:
			if err := b.collectFunctions(stmt.Body); err != nil {
				return err
			}
			if err := b.collectFunctions(stmt.Orelse); err != nil {
				return err
			}
		case parser.NodeWhile, parser.NodeFor, parser.NodeDoWhile:
			if err := b.collectFunctions(stmt.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildNestedFunction builds a separate CFG for a function definition
func (b *CFGBuilder) buildNestedFunction(node *parser.Node) error {
	nested := NewCFGBuilder()
	nested.scopeStack = make([]string, len(b.scopeStack)+1)
	copy(nested.scopeStack, b.scopeStack)
	nested.scopeStack[len(b.scopeStack)] = node.Name

	funcCFG, err := nested.Build(node)
	if err != nil {
		return fmt.Errorf("failed to build CFG for function %s: %w", node.Name, err)
	}

	b.functionCFGs[b.qualifiedName(node.Name)] = funcCFG
	for name, cfg := range nested.functionCFGs {
		b.functionCFGs[name] = cfg
	}
	return nil
}

// qualifiedName returns the function name prefixed with the enclosing
// scope path.
func (b *CFGBuilder) qualifiedName(name string) string {
	if len(b.scopeStack) == 0 {
		return name
	}
	return strings.Join(b.scopeStack, ".") + "." + name
}
