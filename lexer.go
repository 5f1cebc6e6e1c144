package dtm

import (
	"fmt"
	"strings"
)

// tokenKind represents the type of a format token.
type tokenKind int

const (
	tokenLiteral tokenKind = iota
	tokenSpace
	tokenDirective
)

// token is one lexed element of a strptime-style format.
type token struct {
	kind      tokenKind
	literal   string
	directive byte
}

// Directives that expand to a sequence of other directives.
var compositeDirectives = map[byte]string{
	'F': "%Y-%m-%d",
	'T': "%H:%M:%S",
	'D': "%m/%d/%y",
	'R': "%H:%M",
}

// Directives the matcher understands.
var knownDirectives = map[byte]bool{
	'Y': true, 'y': true, 'm': true, 'd': true, 'H': true, 'I': true,
	'M': true, 'S': true, 'j': true, 'b': true, 'B': true, 'h': true,
	'a': true, 'A': true, 'p': true, 's': true, '%': true,
}

// lexer is the internal format lexer state.
type lexer struct {
	input string
	pos   int
}

// tokenizeFormat splits a strptime-style format into tokens.
func tokenizeFormat(format string) ([]token, error) {
	l := &lexer{input: format}
	return l.tokenize()
}

func (l *lexer) tokenize() ([]token, error) {
	var tokens []token
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case isSpace(c):
			l.skipWhitespace()
			tokens = append(tokens, token{kind: tokenSpace})
		case c == '%':
			toks, err := l.lexDirective()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, toks...)
		default:
			tokens = appendLiteral(tokens, l.lexLiteral())
		}
	}
	return tokens, nil
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *lexer) lexLiteral() string {
	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '%' && !isSpace(l.input[l.pos]) {
		l.pos++
	}
	return l.input[start:l.pos]
}

func (l *lexer) lexDirective() ([]token, error) {
	if l.pos+1 >= len(l.input) {
		return nil, fmt.Errorf("stray %% at end of format %q", l.input)
	}
	d := l.input[l.pos+1]
	l.pos += 2

	if expansion, ok := compositeDirectives[d]; ok {
		return tokenizeFormat(expansion)
	}
	if !knownDirectives[d] {
		return nil, fmt.Errorf("bad directive %%%c in format %q", d, l.input)
	}
	if d == '%' {
		return []token{{kind: tokenLiteral, literal: "%"}}, nil
	}
	return []token{{kind: tokenDirective, directive: d}}, nil
}

// appendLiteral merges adjacent literals so the matcher compares them in one
// step.
func appendLiteral(tokens []token, lit string) []token {
	if n := len(tokens); n > 0 && tokens[n-1].kind == tokenLiteral {
		tokens[n-1].literal += lit
		return tokens
	}
	return append(tokens, token{kind: tokenLiteral, literal: lit})
}

func isSpace(c byte) bool {
	return strings.IndexByte(" \t\n\r\v\f", c) >= 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
