package analyzer

import (
	"time"
)

// ReachabilityResult contains the results of reachability analysis
type ReachabilityResult struct {
	// ReachableBlocks contains blocks that can be reached from entry
	ReachableBlocks map[string]*BasicBlock

	// UnreachableBlocks contains blocks that cannot be reached from entry
	UnreachableBlocks map[string]*BasicBlock

	// TotalBlocks is the total number of blocks analyzed
	TotalBlocks int

	// ReachableCount is the number of reachable blocks
	ReachableCount int

	// UnreachableCount is the number of unreachable blocks
	UnreachableCount int

	// AnalysisTime is the time taken to perform the analysis
	AnalysisTime time.Duration
}

// ReachabilityAnalyzer performs reachability analysis on a CFG.
// Unreachable blocks are legitimate graph nodes with zero in-degree
// from entry, never an error; this analyzer surfaces them for
// reporting.
type ReachabilityAnalyzer struct {
	cfg *CFG
}

// NewReachabilityAnalyzer creates a new reachability analyzer for the given CFG
func NewReachabilityAnalyzer(cfg *CFG) *ReachabilityAnalyzer {
	return &ReachabilityAnalyzer{cfg: cfg}
}

// AnalyzeReachability performs reachability analysis starting from the
// entry block
func (ra *ReachabilityAnalyzer) AnalyzeReachability() *ReachabilityResult {
	startTime := time.Now()

	result := &ReachabilityResult{
		ReachableBlocks:   make(map[string]*BasicBlock),
		UnreachableBlocks: make(map[string]*BasicBlock),
	}

	if ra.cfg == nil || ra.cfg.Entry == nil || ra.cfg.Blocks == nil {
		result.AnalysisTime = time.Since(startTime)
		return result
	}

	result.TotalBlocks = len(ra.cfg.Blocks)

	ra.cfg.Walk(&funcVisitor{
		onBlock: func(block *BasicBlock) bool {
			result.ReachableBlocks[block.ID] = block
			return true
		},
	})

	for id, block := range ra.cfg.Blocks {
		if _, reachable := result.ReachableBlocks[id]; !reachable {
			result.UnreachableBlocks[id] = block
		}
	}

	result.ReachableCount = len(result.ReachableBlocks)
	result.UnreachableCount = len(result.UnreachableBlocks)
	result.AnalysisTime = time.Since(startTime)
	return result
}

// GetUnreachableBlocksWithStatements returns unreachable blocks that
// contain statements
func (result *ReachabilityResult) GetUnreachableBlocksWithStatements() map[string]*BasicBlock {
	blocksWithStatements := make(map[string]*BasicBlock)
	for id, block := range result.UnreachableBlocks {
		if !block.IsEmpty() {
			blocksWithStatements[id] = block
		}
	}
	return blocksWithStatements
}

// GetReachabilityRatio returns the ratio of reachable blocks to total blocks
func (result *ReachabilityResult) GetReachabilityRatio() float64 {
	if result.TotalBlocks == 0 {
		return 1.0
	}
	return float64(result.ReachableCount) / float64(result.TotalBlocks)
}

// HasUnreachableCode returns true if there are unreachable blocks with
// statements
func (result *ReachabilityResult) HasUnreachableCode() bool {
	for _, block := range result.UnreachableBlocks {
		if !block.IsEmpty() {
			return true
		}
	}
	return false
}
