package parser

import "fmt"

// TokenType classifies a lexeme produced by the Tokenizer.
type TokenType int

const (
	// TokenSemicolon is a statement terminator
	TokenSemicolon TokenType = iota
	// TokenIf is the "if" keyword
	TokenIf
	// TokenElse is the "else" keyword
	TokenElse
	// TokenWhile is the "while" keyword
	TokenWhile
	// TokenDo is the "do" keyword
	TokenDo
	// TokenFor is the "for" keyword
	TokenFor
	// TokenBreak is the "break" keyword
	TokenBreak
	// TokenContinue is the "continue" keyword
	TokenContinue
	// TokenReturn is the "return" keyword
	TokenReturn
	// TokenFunction is a call-shaped lexeme: name(args)
	TokenFunction
	// TokenParenOpen is "("
	TokenParenOpen
	// TokenParenClose is ")"
	TokenParenClose
	// TokenBraceOpen is "{"
	TokenBraceOpen
	// TokenBraceClose is "}"
	TokenBraceClose
	// TokenStatement is free statement text
	TokenStatement
)

// String returns the string representation of a TokenType
func (t TokenType) String() string {
	switch t {
	case TokenSemicolon:
		return "semicolon"
	case TokenIf:
		return "if"
	case TokenElse:
		return "else"
	case TokenWhile:
		return "while"
	case TokenDo:
		return "do"
	case TokenFor:
		return "for"
	case TokenBreak:
		return "break"
	case TokenContinue:
		return "continue"
	case TokenReturn:
		return "return"
	case TokenFunction:
		return "function"
	case TokenParenOpen:
		return "paren_open"
	case TokenParenClose:
		return "paren_close"
	case TokenBraceOpen:
		return "brace_open"
	case TokenBraceClose:
		return "brace_close"
	case TokenStatement:
		return "statement"
	default:
		return "unknown"
	}
}

// Token holds one lexeme and the line it was read from.
type Token struct {
	Line     int
	Type     TokenType
	Sequence string
}

// String returns a string representation of the token
func (t Token) String() string {
	return fmt.Sprintf("l: %d t: %s s: %s", t.Line, t.Type, t.Sequence)
}
