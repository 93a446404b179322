package analyzer

import "fmt"

// StructuralError reports syntactically valid input whose control flow
// is invalid, such as a break or continue outside any loop. It aborts
// graph assembly; a partial graph is never returned.
type StructuralError struct {
	Line    int
	Message string
}

func (e *StructuralError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("structural error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("structural error: %s", e.Message)
}

// NotFoundError reports a graph query for a block ID that does not
// exist in the graph.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("block not found: %s", e.ID)
}
