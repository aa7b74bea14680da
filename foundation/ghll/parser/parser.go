// File: parser.go
// Title: ghll Recursive Descent Parser
// Description: Buffers the tokens of one line and parses additive
//              expressions into an AST using recursive descent with
//              saturating lookahead. Parsing never fails; anomalies are
//              absorbed into the tree and reported as diagnostics.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial parser implementation

package parser

import (
	"fmt"
	"sort"

	"github.com/samber/lo"

	mdwlog "github.com/msto63/ghll/foundation/core/log"
	"github.com/msto63/ghll/foundation/ghll/ast"
)

// Parser implements recursive descent parsing for one line
type Parser struct {
	tokens   []ast.Token // Buffered tokens, EOF always last
	position int         // Index of the current token

	scanDiags []Diagnostic // Bad characters and invalid numbers
	diags     []Diagnostic // Diagnostics of the last Parse
	logger    *mdwlog.Logger
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets the logger used for parse tracing
func WithLogger(logger *mdwlog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates a parser for text. The whole input is lexed here; whitespace
// and Bad tokens are dropped from the buffer.
func New(text string, opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = mdwlog.GetDefault()
	}
	p.logger = p.logger.WithField("component", "ghll-parser")

	lexer := NewLexer(text)
	all := lexer.Tokens()

	for _, tok := range all {
		if tok.Type == ast.KindBad {
			p.scanDiags = append(p.scanDiags, Diagnostic{
				Kind:     DiagnosticBadCharacter,
				Position: tok.Position,
				Message:  fmt.Sprintf("unexpected character %q", tok.TextOr("")),
			})
		}
	}
	p.scanDiags = append(p.scanDiags, lexer.Diagnostics()...)

	p.tokens = lo.Filter(all, func(tok ast.Token, _ int) bool {
		return tok.Type != ast.KindWhitespace && tok.Type != ast.KindBad
	})

	if p.logger.IsLevelEnabled(mdwlog.LevelTrace) {
		p.logger.Trace("Tokens buffered", mdwlog.Fields{
			"input":    text,
			"lexed":    len(all),
			"buffered": len(p.tokens),
		})
	}
	return p
}

// Parse parses an expression starting at the current token. It always
// returns a tree, even for empty or malformed input.
func (p *Parser) Parse() ast.Node {
	p.diags = append([]Diagnostic(nil), p.scanDiags...)

	root := p.parseExpression()

	for _, tok := range p.Remaining() {
		if tok.Type == ast.KindEOF {
			continue
		}
		p.diags = append(p.diags, Diagnostic{
			Kind:     DiagnosticUnconsumedToken,
			Position: tok.Position,
			Message:  fmt.Sprintf("unconsumed %s %q", tok.Type, tok.TextOr("")),
		})
	}
	sort.SliceStable(p.diags, func(i, j int) bool {
		return p.diags[i].Position < p.diags[j].Position
	})

	p.logger.Debug("Parse completed", mdwlog.Fields{
		"tokens":      len(p.tokens),
		"consumed":    p.position,
		"diagnostics": len(p.diags),
	})
	return root
}

// Peek returns the token offset positions after the current one. Indices
// past the end of the buffer saturate to the final EOF token; negative
// indices clamp to the first token.
func (p *Parser) Peek(offset int) ast.Token {
	index := p.position + offset
	if index >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	if index < 0 {
		return p.tokens[0]
	}
	return p.tokens[index]
}

// Current returns the current token
func (p *Parser) Current() ast.Token {
	return p.Peek(0)
}

// Tokens returns a copy of the buffered tokens
func (p *Parser) Tokens() []ast.Token {
	return append([]ast.Token(nil), p.tokens...)
}

// Remaining returns the tokens not consumed so far, ending with EOF
func (p *Parser) Remaining() []ast.Token {
	start := min(p.position, len(p.tokens)-1)
	return append([]ast.Token(nil), p.tokens[start:]...)
}

// Diagnostics returns the diagnostics of the last Parse in input order.
// Before the first Parse only scan diagnostics are reported.
func (p *Parser) Diagnostics() []Diagnostic {
	if p.diags == nil {
		return append([]Diagnostic(nil), p.scanDiags...)
	}
	return append([]Diagnostic(nil), p.diags...)
}

// advance returns the current token and moves to the next one. There is no
// bounds check; Peek saturation keeps reads past the end on EOF.
func (p *Parser) advance() ast.Token {
	current := p.Current()
	p.position++

	if p.logger.IsLevelEnabled(mdwlog.LevelTrace) {
		p.logger.Trace("Token consumed", mdwlog.Fields{
			"kind":     current.Type.String(),
			"position": current.Position,
		})
	}
	return current
}

// match consumes the current token if it has the expected kind. Otherwise
// it fabricates a token of that kind at the current position, without text
// or value, and leaves the cursor where it is.
func (p *Parser) match(kind ast.TokenKind) ast.Token {
	if p.Current().Type == kind {
		return p.advance()
	}

	current := p.Current()
	p.diags = append(p.diags, Diagnostic{
		Kind:     DiagnosticMissingToken,
		Position: current.Position,
		Message:  fmt.Sprintf("expected %s, found %s", kind, current.Type),
	})
	return ast.Token{Type: kind, Position: current.Position}
}

// parseExpression parses primary (('+' | '-') primary)* folding to the left
func (p *Parser) parseExpression() ast.Node {
	left := p.parsePrimary()

	for p.Current().Type == ast.KindPlus || p.Current().Type == ast.KindMinus {
		operator := p.advance()
		right := p.parsePrimary()
		left = &ast.BinaryExpression{
			Left:     left,
			Operator: operator,
			Right:    right,
		}
	}
	return left
}

// parsePrimary parses a number
func (p *Parser) parsePrimary() ast.Node {
	number := p.match(ast.KindNumber)
	return &ast.NumberExpression{Number: number}
}
