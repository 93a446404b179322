package parser

import (
	"regexp"
	"strings"
)

// tokenInfo pairs a head-anchored pattern with the token type it produces.
type tokenInfo struct {
	matcher *regexp.Regexp
	typ     TokenType
}

// Tokenizer splits source lines into Tokens using an ordered list of
// regular expression rules. Rules are tried in registration order and
// match only at the head of the remaining input; the first match wins
// and the matched text is consumed.
type Tokenizer struct {
	infos []tokenInfo
}

// NewTokenizer creates a Tokenizer with no rules registered.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// AddRule registers a pattern for the given token type. The pattern is
// anchored to the head of the input and matched case-insensitively.
func (t *Tokenizer) AddRule(pattern string, typ TokenType) {
	t.infos = append(t.infos, tokenInfo{
		matcher: regexp.MustCompile(`(?i)^(` + pattern + `)`),
		typ:     typ,
	})
}

// Tokenize splits one source line into tokens. line is the 1-based line
// number recorded on every produced token. Unmatched input is a
// *SyntaxError naming the offending text.
func (t *Tokenizer) Tokenize(text string, line int) ([]Token, error) {
	s := strings.TrimSpace(text)
	var tokens []Token

	for s != "" {
		matched := false

		for _, info := range t.infos {
			tok := info.matcher.FindString(s)
			if tok == "" {
				continue
			}
			s = strings.TrimSpace(s[len(tok):])
			tokens = append(tokens, Token{
				Line:     line,
				Type:     info.typ,
				Sequence: strings.TrimSpace(tok),
			})
			matched = true
			break
		}

		if !matched {
			return nil, &SyntaxError{Line: line, Message: "no match found for: " + s}
		}
	}

	return tokens, nil
}
