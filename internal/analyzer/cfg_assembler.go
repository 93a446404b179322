package analyzer

import (
	"fmt"

	"github.com/ludo-technologies/cflow/internal/parser"
)

// exitPoint is a dangling control transfer out of an assembled region,
// waiting to be wired to the region's post-construct block.
type exitPoint struct {
	block *BasicBlock
	kind  EdgeType
}

// loopFrame tracks the innermost enclosing loop for break/continue
// wiring. breaks collects blocks whose break edge targets the loop's
// post-construct block.
type loopFrame struct {
	header *BasicBlock
	breaks []*BasicBlock
}

// GraphAssembler connects the blocks produced by the BlockBuilder with
// directed edges according to the control flow semantics of each
// construct. The block sequence passed to Assemble is not mutated
// beyond edge attachment and the statement tree is never mutated.
type GraphAssembler struct {
	cfg       *CFG
	binding   map[*parser.Node]*BasicBlock
	loopStack []*loopFrame
	returns   []*BasicBlock
}

// NewGraphAssembler creates an assembler wiring edges into cfg using
// the statement-to-block binding produced by the BlockBuilder.
func NewGraphAssembler(cfg *CFG, binding map[*parser.Node]*BasicBlock) *GraphAssembler {
	return &GraphAssembler{
		cfg:     cfg,
		binding: binding,
	}
}

// Assemble wires the given blocks according to the statement tree and
// designates the graph's entry and exit blocks. It fails with a
// *StructuralError when break or continue appears outside any loop.
func (a *GraphAssembler) Assemble(blocks []*BasicBlock, root *parser.Node) (*CFG, error) {
	if root == nil {
		return nil, fmt.Errorf("cannot assemble graph from nil node")
	}
	if root.Type != parser.NodeModule && root.Type != parser.NodeFunctionDef {
		return nil, fmt.Errorf("cannot assemble graph from %s node", root.Type)
	}
	for _, blk := range blocks {
		if _, ok := a.cfg.Blocks[blk.ID]; !ok {
			return nil, fmt.Errorf("block %s does not belong to this graph", blk.ID)
		}
	}

	entry, exits, err := a.assembleStmts(root.Body)
	if err != nil {
		return nil, err
	}

	if entry == nil {
		// empty program: a single block doubling as entry and exit,
		// with no edges
		blk := a.cfg.CreateBlock(LabelBlock)
		blk.IsEntry = true
		blk.IsExit = true
		a.cfg.Entry = blk
		a.cfg.Exit = blk
		return a.cfg, nil
	}

	entry.IsEntry = true
	a.cfg.Entry = entry

	// When the program ends in a single plain dangling block and has no
	// returns, that block is the exit. Otherwise a synthetic exit block
	// converges all dangling exits and return edges.
	if len(a.returns) == 0 && len(exits) == 1 && exits[0].kind == EdgeFallthrough {
		last := exits[0].block
		last.IsExit = true
		a.cfg.Exit = last
		return a.cfg, nil
	}

	exit := a.cfg.CreateBlock(LabelExit)
	exit.IsExit = true
	a.cfg.Exit = exit
	for _, e := range exits {
		a.cfg.ConnectBlocks(e.block, exit, e.kind)
	}
	for _, blk := range a.returns {
		a.cfg.ConnectBlocks(blk, exit, EdgeReturn)
	}
	return a.cfg, nil
}

// assembleStmts wires one statement sequence and returns its entry
// block (nil for an empty sequence) along with the dangling exits that
// the caller must connect to the post-construct block.
func (a *GraphAssembler) assembleStmts(stmts []*parser.Node) (*BasicBlock, []exitPoint, error) {
	var entry *BasicBlock
	var pending []exitPoint
	var cur *BasicBlock

	// link wires all pending exits into target, preserving their labels
	link := func(target *BasicBlock) {
		for _, e := range pending {
			a.cfg.ConnectBlocks(e.block, target, e.kind)
		}
		pending = nil
	}

	// enter starts a new region at blk unless it continues the current
	// sequential run
	enter := func(blk *BasicBlock) {
		link(blk)
		if entry == nil {
			entry = blk
		}
	}

	for _, stmt := range stmts {
		blk := a.binding[stmt]

		switch stmt.Type {
		case parser.NodeStatement, parser.NodeFunctionDef:
			if blk == cur {
				continue
			}
			enter(blk)
			cur = blk
			pending = []exitPoint{{blk, EdgeFallthrough}}

		case parser.NodeReturn:
			if blk != cur {
				enter(blk)
			}
			// edge to the designated exit block is wired in Assemble;
			// the implicit fallthrough is suppressed
			a.returns = append(a.returns, blk)
			cur = nil
			pending = nil

		case parser.NodeBreak:
			if blk != cur {
				enter(blk)
			}
			if len(a.loopStack) == 0 {
				return nil, nil, &StructuralError{
					Line:    stmt.Location.StartLine,
					Message: "'break' outside of a loop",
				}
			}
			frame := a.loopStack[len(a.loopStack)-1]
			frame.breaks = append(frame.breaks, blk)
			cur = nil
			pending = nil

		case parser.NodeContinue:
			if blk != cur {
				enter(blk)
			}
			if len(a.loopStack) == 0 {
				return nil, nil, &StructuralError{
					Line:    stmt.Location.StartLine,
					Message: "'continue' outside of a loop",
				}
			}
			frame := a.loopStack[len(a.loopStack)-1]
			a.cfg.ConnectBlocks(blk, frame.header, EdgeContinue)
			cur = nil
			pending = nil

		case parser.NodeIf:
			enter(blk)
			cur = nil

			thenEntry, thenExits, err := a.assembleStmts(stmt.Body)
			if err != nil {
				return nil, nil, err
			}
			if thenEntry != nil {
				a.cfg.ConnectBlocks(blk, thenEntry, EdgeCondTrue)
			} else {
				// empty then-branch: the true edge goes straight to the
				// post-construct block
				thenExits = []exitPoint{{blk, EdgeCondTrue}}
			}

			elseEntry, elseExits, err := a.assembleStmts(stmt.Orelse)
			if err != nil {
				return nil, nil, err
			}
			if elseEntry != nil {
				a.cfg.ConnectBlocks(blk, elseEntry, EdgeCondFalse)
			} else {
				elseExits = []exitPoint{{blk, EdgeCondFalse}}
			}

			pending = append(thenExits, elseExits...)

		case parser.NodeWhile, parser.NodeFor:
			enter(blk)
			cur = nil

			a.loopStack = append(a.loopStack, &loopFrame{header: blk})
			bodyEntry, bodyExits, err := a.assembleStmts(stmt.Body)
			frame := a.loopStack[len(a.loopStack)-1]
			a.loopStack = a.loopStack[:len(a.loopStack)-1]
			if err != nil {
				return nil, nil, err
			}

			if bodyEntry != nil {
				a.cfg.ConnectBlocks(blk, bodyEntry, EdgeCondTrue)
			} else {
				// empty loop body: the header loops back to itself
				a.cfg.ConnectBlocks(blk, blk, EdgeLoopBack)
			}
			for _, e := range bodyExits {
				a.cfg.ConnectBlocks(e.block, blk, EdgeLoopBack)
			}

			pending = []exitPoint{{blk, EdgeLoopExit}}
			for _, br := range frame.breaks {
				pending = append(pending, exitPoint{br, EdgeBreak})
			}

		case parser.NodeDoWhile:
			// the condition header sits after the body; control enters
			// at the body's first block
			header := blk
			cur = nil

			a.loopStack = append(a.loopStack, &loopFrame{header: header})
			bodyEntry, bodyExits, err := a.assembleStmts(stmt.Body)
			frame := a.loopStack[len(a.loopStack)-1]
			a.loopStack = a.loopStack[:len(a.loopStack)-1]
			if err != nil {
				return nil, nil, err
			}

			if bodyEntry == nil {
				bodyEntry = header
			}
			enter(bodyEntry)
			for _, e := range bodyExits {
				a.cfg.ConnectBlocks(e.block, header, e.kind)
			}
			a.cfg.ConnectBlocks(header, bodyEntry, EdgeLoopBack)

			pending = []exitPoint{{header, EdgeLoopExit}}
			for _, br := range frame.breaks {
				pending = append(pending, exitPoint{br, EdgeBreak})
			}

		default:
			return nil, nil, fmt.Errorf("unexpected %s node in statement position", stmt.Type)
		}
	}

	return entry, pending, nil
}
