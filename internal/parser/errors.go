package parser

import "fmt"

// SyntaxError reports source text that does not conform to the statement
// grammar. Line is 1-based; zero means the location is unknown.
type SyntaxError struct {
	Line    int
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("syntax error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("syntax error: %s", e.Message)
}
