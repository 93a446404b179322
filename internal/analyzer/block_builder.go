package analyzer

import (
	"fmt"

	"github.com/ludo-technologies/cflow/internal/parser"
)

// Block label constants to avoid magic strings
const (
	LabelBlock       = "block"
	LabelIfHeader    = "if_header"
	LabelIfThen      = "if_then"
	LabelIfElse      = "if_else"
	LabelIfMerge     = "if_merge"
	LabelLoopHeader  = "loop_header"
	LabelLoopBody    = "loop_body"
	LabelLoopExit    = "loop_exit"
	LabelDoBody      = "do_body"
	LabelUnreachable = "unreachable"
	LabelExit        = "exit"
	LabelMainModule  = "main"
)

// BlockBuilder partitions a statement tree into unlinked basic blocks.
//
// A new block begins at the start of traversal, immediately after any
// branching or looping construct, and at every branch/loop header,
// which becomes a dedicated single-statement block holding only the
// condition test. Sequential statements are appended to the current
// open block; statements following a jump open a fresh block that may
// end up unreachable, which is not an error.
type BlockBuilder struct {
	cfg     *CFG
	binding map[*parser.Node]*BasicBlock
	current *BasicBlock
}

// NewBlockBuilder creates a block builder allocating blocks in the
// given graph.
func NewBlockBuilder(cfg *CFG) *BlockBuilder {
	return &BlockBuilder{
		cfg:     cfg,
		binding: make(map[*parser.Node]*BasicBlock),
	}
}

// Build partitions the body of a Module or FunctionDef node and
// returns the blocks in creation order, unlinked. Block ids follow
// creation order, so identical input yields identical ids.
func (b *BlockBuilder) Build(root *parser.Node) ([]*BasicBlock, error) {
	if root == nil {
		return nil, fmt.Errorf("cannot build blocks from nil node")
	}
	if root.Type != parser.NodeModule && root.Type != parser.NodeFunctionDef {
		return nil, fmt.Errorf("cannot build blocks from %s node", root.Type)
	}

	b.partition(root.Body, LabelBlock)
	return b.cfg.BlocksInOrder(), nil
}

// Binding returns the mapping from statement nodes to the blocks that
// hold them. Construct nodes map to their header blocks.
func (b *BlockBuilder) Binding() map[*parser.Node]*BasicBlock {
	return b.binding
}

// ensure returns the current open block, creating one when the
// previous block was closed.
func (b *BlockBuilder) ensure(label string) *BasicBlock {
	if b.current == nil {
		b.current = b.cfg.CreateBlock(label)
	}
	return b.current
}

// header closes the current block and creates a dedicated header block
// holding only the construct's condition test.
func (b *BlockBuilder) header(stmt *parser.Node, label string) *BasicBlock {
	b.current = nil
	blk := b.cfg.CreateBlock(label)
	blk.AddStatement(stmt)
	b.binding[stmt] = blk
	return blk
}

func (b *BlockBuilder) partition(stmts []*parser.Node, label string) {
	next := label
	for _, stmt := range stmts {
		switch stmt.Type {
		case parser.NodeStatement, parser.NodeFunctionDef:
			blk := b.ensure(next)
			blk.AddStatement(stmt)
			b.binding[stmt] = blk

		case parser.NodeBreak, parser.NodeContinue, parser.NodeReturn:
			blk := b.ensure(next)
			blk.AddStatement(stmt)
			b.binding[stmt] = blk
			b.current = nil
			next = LabelUnreachable

		case parser.NodeIf:
			b.header(stmt, LabelIfHeader)
			b.partition(stmt.Body, LabelIfThen)
			b.current = nil
			b.partition(stmt.Orelse, LabelIfElse)
			b.current = nil
			next = LabelIfMerge

		case parser.NodeWhile, parser.NodeFor:
			b.header(stmt, LabelLoopHeader)
			b.partition(stmt.Body, LabelLoopBody)
			b.current = nil
			next = LabelLoopExit

		case parser.NodeDoWhile:
			// body blocks come first; the condition header follows them
			// in creation order, matching source order
			b.current = nil
			b.partition(stmt.Body, LabelDoBody)
			b.header(stmt, LabelLoopHeader)
			next = LabelLoopExit
		}
	}
}
