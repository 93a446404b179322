package parser

import (
	"fmt"
	"strings"
)

// Parser parses source text in the minimal statement grammar into a
// statement tree rooted at a Module node.
//
// The grammar is C-like: statements end with ';', bodies are '{ }'
// delimited (single-statement bodies may omit the braces), and the
// recognized constructs are if/else, while, do-while, for, break,
// continue, return, function calls and function definitions.
type Parser struct {
	tokenizer *Tokenizer
	tokens    []Token
	pos       int
	lastLine  int
}

// New creates a Parser with the grammar's tokenizer rules installed.
// Rule order is match priority: keywords before call-shaped lexemes,
// which in turn come before free statement text.
func New() *Parser {
	t := NewTokenizer()
	t.AddRule(`;`, TokenSemicolon)
	t.AddRule(`if\b`, TokenIf)
	t.AddRule(`else\b`, TokenElse)
	t.AddRule(`while\b`, TokenWhile)
	t.AddRule(`do\b`, TokenDo)
	t.AddRule(`for\b`, TokenFor)
	t.AddRule(`break\b`, TokenBreak)
	t.AddRule(`continue\b`, TokenContinue)
	t.AddRule(`return\b`, TokenReturn)
	t.AddRule(`[^\(\)\;\{\}]*[\s]*[^\(\)\;\{\}]+\([^\(\)\;\{\}]*\)`, TokenFunction)
	t.AddRule(`\(`, TokenParenOpen)
	t.AddRule(`\)`, TokenParenClose)
	t.AddRule(`\{`, TokenBraceOpen)
	t.AddRule(`\}`, TokenBraceClose)
	t.AddRule(`[^\(\)\{\}\;]+`, TokenStatement)
	return &Parser{tokenizer: t}
}

// Parse parses source text and returns the Module root node. Blank
// lines and '//' comments are skipped and have no representation in
// the tree. Malformed input fails with a *SyntaxError.
func (p *Parser) Parse(source []byte) (*Node, error) {
	p.tokens = p.tokens[:0]
	p.pos = 0
	p.lastLine = 0

	for i, line := range strings.Split(string(source), "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		toks, err := p.tokenizer.Tokenize(line, i+1)
		if err != nil {
			return nil, err
		}
		p.tokens = append(p.tokens, toks...)
	}

	body, err := p.parseStatements(false)
	if err != nil {
		return nil, err
	}

	root := NewNode(NodeModule)
	root.Body = body
	if len(body) > 0 {
		root.Location = Location{
			StartLine: body[0].Location.StartLine,
			EndLine:   body[len(body)-1].Location.EndLine,
		}
	}
	return root, nil
}

// Token stream helpers

func (p *Parser) eof() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

// peekType returns the type of the token at offset from the current
// position, or -1 past the end of the stream.
func (p *Parser) peekType(offset int) TokenType {
	if p.pos+offset >= len(p.tokens) {
		return TokenType(-1)
	}
	return p.tokens[p.pos+offset].Type
}

func (p *Parser) next() Token {
	tok := p.tokens[p.pos]
	p.pos++
	p.lastLine = tok.Line
	return tok
}

func (p *Parser) expect(typ TokenType, context string) (Token, error) {
	if p.eof() {
		return Token{}, p.errorf(p.lastLine, "unexpected end of input, expected %s %s", typ, context)
	}
	tok := p.peek()
	if tok.Type != typ {
		return Token{}, p.errorf(tok.Line, "expected %s %s, got %q", typ, context, tok.Sequence)
	}
	return p.next(), nil
}

func (p *Parser) errorf(line int, format string, args ...interface{}) error {
	return &SyntaxError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// parseStatements parses statements until the end of the stream, or
// until the matching '}' when inBlock is set.
func (p *Parser) parseStatements(inBlock bool) ([]*Node, error) {
	var stmts []*Node
	for {
		if p.eof() {
			if inBlock {
				return nil, p.errorf(p.lastLine, "missing '}'")
			}
			return stmts, nil
		}
		if inBlock && p.peek().Type == TokenBraceClose {
			p.next()
			return stmts, nil
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
}

// parseStatement parses a single statement. A bare ';' is an empty
// statement and yields no node.
func (p *Parser) parseStatement() (*Node, error) {
	tok := p.peek()

	switch tok.Type {
	case TokenSemicolon:
		p.next()
		return nil, nil

	case TokenFunction:
		if p.peekType(1) == TokenBraceOpen {
			return p.parseFunctionDef()
		}
		return p.parseSimpleStatement()

	case TokenStatement:
		return p.parseSimpleStatement()

	case TokenReturn:
		return p.parseReturn()

	case TokenBreak, TokenContinue:
		p.next()
		if _, err := p.expect(TokenSemicolon, fmt.Sprintf("after %q", tok.Sequence)); err != nil {
			return nil, err
		}
		node := NewNode(NodeBreak)
		if tok.Type == TokenContinue {
			node.Type = NodeContinue
		}
		node.Location = Location{StartLine: tok.Line, EndLine: tok.Line}
		return node, nil

	case TokenIf:
		return p.parseIf()

	case TokenWhile:
		return p.parseWhile()

	case TokenDo:
		return p.parseDoWhile()

	case TokenFor:
		return p.parseFor()

	case TokenElse:
		return nil, p.errorf(tok.Line, "'else' without matching 'if'")

	default:
		return nil, p.errorf(tok.Line, "unexpected %q", tok.Sequence)
	}
}

// parseSimpleStatement collects statement text up to the terminating ';'.
func (p *Parser) parseSimpleStatement() (*Node, error) {
	start := p.peek()
	var parts []string

	for {
		if p.eof() {
			return nil, p.errorf(p.lastLine, "missing ';' after %q", strings.Join(parts, " "))
		}
		tok := p.peek()
		switch tok.Type {
		case TokenStatement, TokenFunction:
			parts = append(parts, p.next().Sequence)
		case TokenSemicolon:
			p.next()
			node := NewNode(NodeStatement)
			node.Value = strings.Join(parts, " ")
			node.Location = Location{StartLine: start.Line, EndLine: p.lastLine}
			return node, nil
		default:
			return nil, p.errorf(tok.Line, "expected ';' after %q, got %q", strings.Join(parts, " "), tok.Sequence)
		}
	}
}

func (p *Parser) parseReturn() (*Node, error) {
	kw := p.next()
	var parts []string

	for {
		if p.eof() {
			return nil, p.errorf(p.lastLine, "missing ';' after return")
		}
		tok := p.peek()
		switch tok.Type {
		case TokenStatement, TokenFunction:
			parts = append(parts, p.next().Sequence)
		case TokenSemicolon:
			p.next()
			node := NewNode(NodeReturn)
			node.Value = strings.Join(parts, " ")
			node.Location = Location{StartLine: kw.Line, EndLine: p.lastLine}
			return node, nil
		default:
			return nil, p.errorf(tok.Line, "expected ';' after return, got %q", tok.Sequence)
		}
	}
}

// parseCondition consumes a parenthesized condition and returns its
// text. Nested parentheses are allowed; the condition must be non-empty.
func (p *Parser) parseCondition(construct string) (string, error) {
	open, err := p.expect(TokenParenOpen, "after '"+construct+"'")
	if err != nil {
		return "", err
	}

	depth := 1
	var parts []string
	for depth > 0 {
		if p.eof() {
			return "", p.errorf(p.lastLine, "missing ')' in %s condition", construct)
		}
		tok := p.next()
		switch tok.Type {
		case TokenParenOpen:
			depth++
			parts = append(parts, tok.Sequence)
		case TokenParenClose:
			depth--
			if depth > 0 {
				parts = append(parts, tok.Sequence)
			}
		case TokenSemicolon:
			return "", p.errorf(tok.Line, "unexpected ';' in %s condition", construct)
		case TokenBraceOpen, TokenBraceClose:
			return "", p.errorf(tok.Line, "unexpected %q in %s condition", tok.Sequence, construct)
		default:
			parts = append(parts, tok.Sequence)
		}
	}

	cond := strings.Join(parts, " ")
	if cond == "" {
		return "", p.errorf(open.Line, "empty %s condition", construct)
	}
	return cond, nil
}

// parseBody parses either a braced block or a single statement.
func (p *Parser) parseBody(construct string) ([]*Node, error) {
	if p.eof() {
		return nil, p.errorf(p.lastLine, "missing body for '%s'", construct)
	}
	if p.peek().Type == TokenBraceOpen {
		p.next()
		return p.parseStatements(true)
	}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if stmt == nil {
		return nil, nil
	}
	return []*Node{stmt}, nil
}

func (p *Parser) parseIf() (*Node, error) {
	kw := p.next()
	node := NewNode(NodeIf)
	node.Location.StartLine = kw.Line

	cond, err := p.parseCondition("if")
	if err != nil {
		return nil, err
	}
	node.Cond = cond

	if node.Body, err = p.parseBody("if"); err != nil {
		return nil, err
	}

	// else binds to the nearest unmatched if at this nesting level
	if !p.eof() && p.peek().Type == TokenElse {
		p.next()
		if !p.eof() && p.peek().Type == TokenIf {
			elif, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			node.Orelse = []*Node{elif}
		} else {
			if node.Orelse, err = p.parseBody("else"); err != nil {
				return nil, err
			}
		}
	}

	node.Location.EndLine = p.lastLine
	return node, nil
}

func (p *Parser) parseWhile() (*Node, error) {
	kw := p.next()
	node := NewNode(NodeWhile)
	node.Location.StartLine = kw.Line

	cond, err := p.parseCondition("while")
	if err != nil {
		return nil, err
	}
	node.Cond = cond

	if node.Body, err = p.parseBody("while"); err != nil {
		return nil, err
	}
	node.Location.EndLine = p.lastLine
	return node, nil
}

func (p *Parser) parseDoWhile() (*Node, error) {
	kw := p.next()
	node := NewNode(NodeDoWhile)
	node.Location.StartLine = kw.Line

	body, err := p.parseBody("do")
	if err != nil {
		return nil, err
	}
	node.Body = body

	if _, err := p.expect(TokenWhile, "after do-while body"); err != nil {
		return nil, err
	}
	if node.Cond, err = p.parseCondition("do-while"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon, "after do-while condition"); err != nil {
		return nil, err
	}
	node.Location.EndLine = p.lastLine
	return node, nil
}

// parseFor parses 'for (init; cond; update) body'. The header must have
// exactly three clauses; init and update may be empty, the condition
// may not.
func (p *Parser) parseFor() (*Node, error) {
	kw := p.next()
	node := NewNode(NodeFor)
	node.Location.StartLine = kw.Line

	if _, err := p.expect(TokenParenOpen, "after 'for'"); err != nil {
		return nil, err
	}

	depth := 1
	clauses := [][]string{nil}
	for depth > 0 {
		if p.eof() {
			return nil, p.errorf(p.lastLine, "missing ')' in for header")
		}
		tok := p.next()
		switch tok.Type {
		case TokenParenOpen:
			depth++
			clauses[len(clauses)-1] = append(clauses[len(clauses)-1], tok.Sequence)
		case TokenParenClose:
			depth--
			if depth > 0 {
				clauses[len(clauses)-1] = append(clauses[len(clauses)-1], tok.Sequence)
			}
		case TokenSemicolon:
			if depth == 1 {
				clauses = append(clauses, nil)
			} else {
				return nil, p.errorf(tok.Line, "unexpected ';' in for header")
			}
		case TokenBraceOpen, TokenBraceClose:
			return nil, p.errorf(tok.Line, "unexpected %q in for header", tok.Sequence)
		default:
			clauses[len(clauses)-1] = append(clauses[len(clauses)-1], tok.Sequence)
		}
	}

	if len(clauses) != 3 {
		return nil, p.errorf(kw.Line, "for header requires 'init; condition; update', got %d clause(s)", len(clauses))
	}

	node.Init = strings.Join(clauses[0], " ")
	node.Cond = strings.Join(clauses[1], " ")
	node.Update = strings.Join(clauses[2], " ")
	if node.Cond == "" {
		return nil, p.errorf(kw.Line, "empty for condition")
	}

	var err error
	if node.Body, err = p.parseBody("for"); err != nil {
		return nil, err
	}
	node.Location.EndLine = p.lastLine
	return node, nil
}

// parseFunctionDef parses 'name(args) { body }'.
func (p *Parser) parseFunctionDef() (*Node, error) {
	sig := p.next()
	node := NewNode(NodeFunctionDef)
	node.Value = sig.Sequence
	node.Location.StartLine = sig.Line

	name := sig.Sequence
	if idx := strings.Index(name, "("); idx >= 0 {
		name = name[:idx]
	}
	node.Name = strings.TrimSpace(name)

	if _, err := p.expect(TokenBraceOpen, "after function signature"); err != nil {
		return nil, err
	}
	body, err := p.parseStatements(true)
	if err != nil {
		return nil, err
	}
	node.Body = body
	node.Location.EndLine = p.lastLine
	return node, nil
}
