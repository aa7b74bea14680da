// File: lexer.go
// Title: ghll Lexical Analyzer
// Description: Splits a line of arithmetic text into tokens on demand using
//              a forward-only cursor. The lexer never fails: unknown input
//              becomes Bad tokens and end of input is reported forever.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial lexer implementation

package parser

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/ghll/foundation/ghll/ast"
)

// Lexer performs lexical analysis of one line
type Lexer struct {
	input    string       // Input string
	position int          // Byte offset of the next unread rune
	diags    []Diagnostic // Invalid numbers seen so far
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// NextToken returns the next token from the input. Once the input is
// exhausted every call returns an EOF token positioned at len(input).
func (l *Lexer) NextToken() ast.Token {
	if l.position >= len(l.input) {
		return ast.NewToken(ast.KindEOF, len(l.input), ast.EOFText)
	}

	start := l.position
	ch := l.current()

	if unicode.IsDigit(ch) {
		l.readWhile(unicode.IsDigit)
		text := l.input[start:l.position]
		value, err := strconv.Atoi(text)
		if err != nil {
			value = 0
			l.diags = append(l.diags, Diagnostic{
				Kind:     DiagnosticInvalidNumber,
				Position: start,
				Message:  fmt.Sprintf("number %q cannot be represented, using 0", text),
			})
		}
		return ast.NewNumberToken(start, text, value)
	}

	if unicode.IsSpace(ch) {
		l.readWhile(unicode.IsSpace)
		return ast.NewToken(ast.KindWhitespace, start, l.input[start:l.position])
	}

	kind := ast.KindBad
	switch ch {
	case '+':
		kind = ast.KindPlus
	case '-':
		kind = ast.KindMinus
	case '*':
		kind = ast.KindTimes
	case '/':
		kind = ast.KindDivided
	case '%':
		kind = ast.KindModulo
	case '(':
		kind = ast.KindLParen
	case ')':
		kind = ast.KindRParen
	}

	l.readChar()
	return ast.NewToken(kind, start, l.input[start:l.position])
}

// Tokens drains the lexer and returns every token up to and including the
// first EOF
func (l *Lexer) Tokens() []ast.Token {
	var tokens []ast.Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == ast.KindEOF {
			return tokens
		}
	}
}

// Diagnostics returns the invalid numbers met so far
func (l *Lexer) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), l.diags...)
}

// current decodes the rune at the cursor. Invalid UTF-8 yields
// utf8.RuneError, which is neither a digit nor a space.
func (l *Lexer) current() rune {
	r, _ := utf8.DecodeRuneInString(l.input[l.position:])
	return r
}

// readChar advances the cursor past the current rune
func (l *Lexer) readChar() {
	_, size := utf8.DecodeRuneInString(l.input[l.position:])
	l.position += size
}

// readWhile advances the cursor over the maximal run of matching runes
func (l *Lexer) readWhile(match func(rune) bool) {
	for l.position < len(l.input) && match(l.current()) {
		l.readChar()
	}
}
