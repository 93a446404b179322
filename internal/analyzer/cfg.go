package analyzer

import (
	"fmt"

	"github.com/ludo-technologies/cflow/internal/parser"
)

// EdgeType represents the type of edge between basic blocks
type EdgeType int

const (
	// EdgeFallthrough represents sequential flow to the next block
	EdgeFallthrough EdgeType = iota
	// EdgeCondTrue represents a conditional true branch
	EdgeCondTrue
	// EdgeCondFalse represents a conditional false branch
	EdgeCondFalse
	// EdgeLoopBack represents a loop back edge to the loop header
	EdgeLoopBack
	// EdgeLoopExit represents the loop header's exit branch
	EdgeLoopExit
	// EdgeBreak represents break statement flow
	EdgeBreak
	// EdgeContinue represents continue statement flow
	EdgeContinue
	// EdgeReturn represents return statement flow
	EdgeReturn
)

// String returns the edge label for an EdgeType
func (e EdgeType) String() string {
	switch e {
	case EdgeFallthrough:
		return "fallthrough"
	case EdgeCondTrue:
		return "true"
	case EdgeCondFalse:
		return "false"
	case EdgeLoopBack:
		return "loop_back"
	case EdgeLoopExit:
		return "loop_exit"
	case EdgeBreak:
		return "break"
	case EdgeContinue:
		return "continue"
	case EdgeReturn:
		return "return"
	default:
		return "unknown"
	}
}

// Edge represents a directed edge between two basic blocks
type Edge struct {
	From *BasicBlock
	To   *BasicBlock
	Type EdgeType
}

// BasicBlock represents a basic block in the control flow graph
type BasicBlock struct {
	// ID is the unique identifier for this block, assigned in creation order
	ID string

	// Statements contains the statement nodes in this block
	Statements []*parser.Node

	// Predecessors are edges from blocks that can flow into this block
	Predecessors []*Edge

	// Successors are edges to blocks this block can flow to
	Successors []*Edge

	// Label is an optional human-readable label
	Label string

	// IsEntry indicates if this is the entry block
	IsEntry bool

	// IsExit indicates if this is the exit block
	IsExit bool
}

// NewBasicBlock creates a new basic block with the given ID
func NewBasicBlock(id string) *BasicBlock {
	return &BasicBlock{
		ID:           id,
		Statements:   []*parser.Node{},
		Predecessors: []*Edge{},
		Successors:   []*Edge{},
	}
}

// AddStatement adds a statement node to this block
func (bb *BasicBlock) AddStatement(stmt *parser.Node) {
	if stmt != nil {
		bb.Statements = append(bb.Statements, stmt)
	}
}

// AddSuccessor adds an outgoing edge to another block
func (bb *BasicBlock) AddSuccessor(to *BasicBlock, edgeType EdgeType) *Edge {
	edge := &Edge{
		From: bb,
		To:   to,
		Type: edgeType,
	}
	bb.Successors = append(bb.Successors, edge)
	to.Predecessors = append(to.Predecessors, edge)
	return edge
}

// IsEmpty returns true if the block has no statements
func (bb *BasicBlock) IsEmpty() bool {
	return len(bb.Statements) == 0
}

// String returns a string representation of the basic block
func (bb *BasicBlock) String() string {
	label := bb.Label
	if label == "" {
		label = bb.ID
	}
	if bb.IsEntry {
		return fmt.Sprintf("[ENTRY: %s]", label)
	}
	if bb.IsExit {
		return fmt.Sprintf("[EXIT: %s]", label)
	}
	return fmt.Sprintf("[%s: %d stmts]", label, len(bb.Statements))
}

// CFG represents a control flow graph. A CFG is built once by the
// CFGBuilder and treated as immutable afterwards: the query operations
// never modify it.
type CFG struct {
	// Entry is the entry point of the graph
	Entry *BasicBlock

	// Exit is the exit point of the graph
	Exit *BasicBlock

	// Blocks contains all blocks in the graph, indexed by ID
	Blocks map[string]*BasicBlock

	// Name is the name of the CFG (function name, or "main")
	Name string

	order       []string
	nextBlockID int
}

// NewCFG creates a new, empty control flow graph
func NewCFG(name string) *CFG {
	return &CFG{
		Name:   name,
		Blocks: make(map[string]*BasicBlock),
	}
}

// CreateBlock creates a new basic block and adds it to the graph. IDs
// are assigned in creation order and are deterministic for a given
// input.
func (cfg *CFG) CreateBlock(label string) *BasicBlock {
	id := fmt.Sprintf("bb%d", cfg.nextBlockID)
	cfg.nextBlockID++

	block := NewBasicBlock(id)
	block.Label = label
	cfg.Blocks[id] = block
	cfg.order = append(cfg.order, id)
	return block
}

// ConnectBlocks creates an edge between two blocks
func (cfg *CFG) ConnectBlocks(from, to *BasicBlock, edgeType EdgeType) *Edge {
	if from == nil || to == nil {
		return nil
	}
	return from.AddSuccessor(to, edgeType)
}

// GetBlock retrieves a block by its ID. Unknown IDs fail with a
// *NotFoundError: querying for a block that does not exist is a bug in
// the caller, not an input problem.
func (cfg *CFG) GetBlock(id string) (*BasicBlock, error) {
	block, ok := cfg.Blocks[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return block, nil
}

// Successors returns the outgoing edges of the block with the given ID
func (cfg *CFG) Successors(id string) ([]*Edge, error) {
	block, err := cfg.GetBlock(id)
	if err != nil {
		return nil, err
	}
	return block.Successors, nil
}

// Predecessors returns the incoming edges of the block with the given ID
func (cfg *CFG) Predecessors(id string) ([]*Edge, error) {
	block, err := cfg.GetBlock(id)
	if err != nil {
		return nil, err
	}
	return block.Predecessors, nil
}

// IsReachable reports whether the block with the given ID can be
// reached by forward traversal from the entry block
func (cfg *CFG) IsReachable(id string) (bool, error) {
	if _, err := cfg.GetBlock(id); err != nil {
		return false, err
	}

	reachable := false
	cfg.Walk(&funcVisitor{
		onBlock: func(b *BasicBlock) bool {
			if b.ID == id {
				reachable = true
				return false
			}
			return true
		},
	})
	return reachable, nil
}

// BlocksInOrder returns all blocks in creation order
func (cfg *CFG) BlocksInOrder() []*BasicBlock {
	blocks := make([]*BasicBlock, 0, len(cfg.order))
	for _, id := range cfg.order {
		blocks = append(blocks, cfg.Blocks[id])
	}
	return blocks
}

// Size returns the number of blocks in the graph
func (cfg *CFG) Size() int {
	return len(cfg.Blocks)
}

// EdgeCount returns the number of edges in the graph
func (cfg *CFG) EdgeCount() int {
	count := 0
	for _, block := range cfg.Blocks {
		count += len(block.Successors)
	}
	return count
}

// CFGVisitor defines the interface for visiting CFG nodes
type CFGVisitor interface {
	// VisitBlock is called for each basic block.
	// Returns false to stop traversal.
	VisitBlock(block *BasicBlock) bool

	// VisitEdge is called for each edge.
	// Returns false to stop traversal.
	VisitEdge(edge *Edge) bool
}

// funcVisitor adapts plain functions to the CFGVisitor interface
type funcVisitor struct {
	onBlock func(*BasicBlock) bool
	onEdge  func(*Edge) bool
}

func (v *funcVisitor) VisitBlock(block *BasicBlock) bool {
	if v.onBlock == nil {
		return true
	}
	return v.onBlock(block)
}

func (v *funcVisitor) VisitEdge(edge *Edge) bool {
	if v.onEdge == nil {
		return true
	}
	return v.onEdge(edge)
}

// Walk performs a depth-first traversal of the CFG from the entry block
func (cfg *CFG) Walk(visitor CFGVisitor) {
	if cfg.Entry == nil {
		return
	}
	visited := make(map[string]bool)
	cfg.walkBlock(cfg.Entry, visitor, visited)
}

func (cfg *CFG) walkBlock(block *BasicBlock, visitor CFGVisitor, visited map[string]bool) {
	if block == nil || visited[block.ID] {
		return
	}
	visited[block.ID] = true

	if !visitor.VisitBlock(block) {
		return
	}
	for _, edge := range block.Successors {
		if !visitor.VisitEdge(edge) {
			return
		}
		cfg.walkBlock(edge.To, visitor, visited)
	}
}

// BreadthFirstWalk performs a breadth-first traversal of the CFG
func (cfg *CFG) BreadthFirstWalk(visitor CFGVisitor) {
	if cfg.Entry == nil {
		return
	}

	visited := make(map[string]bool)
	queue := []*BasicBlock{cfg.Entry}

	for len(queue) > 0 {
		block := queue[0]
		queue = queue[1:]

		if visited[block.ID] {
			continue
		}
		visited[block.ID] = true

		if !visitor.VisitBlock(block) {
			return
		}
		for _, edge := range block.Successors {
			if !visitor.VisitEdge(edge) {
				return
			}
			if !visited[edge.To.ID] {
				queue = append(queue, edge.To)
			}
		}
	}
}

// String returns a string representation of the CFG
func (cfg *CFG) String() string {
	return fmt.Sprintf("CFG(%s): %d blocks", cfg.Name, cfg.Size())
}
