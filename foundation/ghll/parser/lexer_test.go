// File: lexer_test.go
// Title: ghll Lexer Unit Tests
// Description: Tests for token classification, positions, the terminal EOF
//              state and number decoding.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial test suite

package parser

import (
	"strings"
	"testing"

	"github.com/msto63/ghll/foundation/ghll/ast"
)

// tok describes an expected token; value -1 means absent
type tok struct {
	kind  ast.TokenKind
	pos   int
	text  string
	value int
}

func checkTokens(t *testing.T, got []ast.Token, want []tok) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(want))
	}
	for i, w := range want {
		g := got[i]
		if g.Type != w.kind {
			t.Errorf("token %d kind = %v, want %v", i, g.Type, w.kind)
		}
		if g.Position != w.pos {
			t.Errorf("token %d position = %d, want %d", i, g.Position, w.pos)
		}
		if g.Text == nil || *g.Text != w.text {
			t.Errorf("token %d text = %v, want %q", i, g.Text, w.text)
		}
		switch {
		case w.value < 0 && g.Value != nil:
			t.Errorf("token %d value = %d, want absent", i, *g.Value)
		case w.value >= 0 && (g.Value == nil || *g.Value != w.value):
			t.Errorf("token %d value = %v, want %d", i, g.Value, w.value)
		}
	}
}

func TestLexer_NextToken(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tok
	}{
		{
			name:  "Additive chain with whitespace",
			input: "1 + 2 - 3",
			expected: []tok{
				{ast.KindNumber, 0, "1", 1},
				{ast.KindWhitespace, 1, " ", -1},
				{ast.KindPlus, 2, "+", -1},
				{ast.KindWhitespace, 3, " ", -1},
				{ast.KindNumber, 4, "2", 2},
				{ast.KindWhitespace, 5, " ", -1},
				{ast.KindMinus, 6, "-", -1},
				{ast.KindWhitespace, 7, " ", -1},
				{ast.KindNumber, 8, "3", 3},
				{ast.KindEOF, 9, ast.EOFText, -1},
			},
		},
		{
			name:  "Multiplicative operators are tokenized",
			input: "12*3",
			expected: []tok{
				{ast.KindNumber, 0, "12", 12},
				{ast.KindTimes, 2, "*", -1},
				{ast.KindNumber, 3, "3", 3},
				{ast.KindEOF, 4, ast.EOFText, -1},
			},
		},
		{
			name:  "Bad character",
			input: "1#2",
			expected: []tok{
				{ast.KindNumber, 0, "1", 1},
				{ast.KindBad, 1, "#", -1},
				{ast.KindNumber, 2, "2", 2},
				{ast.KindEOF, 3, ast.EOFText, -1},
			},
		},
		{
			name:  "All single character tokens",
			input: "+-*/%()",
			expected: []tok{
				{ast.KindPlus, 0, "+", -1},
				{ast.KindMinus, 1, "-", -1},
				{ast.KindTimes, 2, "*", -1},
				{ast.KindDivided, 3, "/", -1},
				{ast.KindModulo, 4, "%", -1},
				{ast.KindLParen, 5, "(", -1},
				{ast.KindRParen, 6, ")", -1},
				{ast.KindEOF, 7, ast.EOFText, -1},
			},
		},
		{
			name:  "Maximal whitespace run with tabs and newlines",
			input: " \t\n 7",
			expected: []tok{
				{ast.KindWhitespace, 0, " \t\n ", -1},
				{ast.KindNumber, 4, "7", 7},
				{ast.KindEOF, 5, ast.EOFText, -1},
			},
		},
		{
			name:  "Unicode whitespace",
			input: "1\u20032",
			expected: []tok{
				{ast.KindNumber, 0, "1", 1},
				{ast.KindWhitespace, 1, "\u2003", -1},
				{ast.KindNumber, 4, "2", 2},
				{ast.KindEOF, 5, ast.EOFText, -1},
			},
		},
		{
			name:  "Multibyte bad character is one token",
			input: "€1",
			expected: []tok{
				{ast.KindBad, 0, "€", -1},
				{ast.KindNumber, 3, "1", 1},
				{ast.KindEOF, 4, ast.EOFText, -1},
			},
		},
		{
			name:  "Letters are bad one by one",
			input: "ab",
			expected: []tok{
				{ast.KindBad, 0, "a", -1},
				{ast.KindBad, 1, "b", -1},
				{ast.KindEOF, 2, ast.EOFText, -1},
			},
		},
		{
			name:  "Leading zeros",
			input: "007",
			expected: []tok{
				{ast.KindNumber, 0, "007", 7},
				{ast.KindEOF, 3, ast.EOFText, -1},
			},
		},
		{
			name:  "Empty input",
			input: "",
			expected: []tok{
				{ast.KindEOF, 0, ast.EOFText, -1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkTokens(t, NewLexer(tt.input).Tokens(), tt.expected)
		})
	}
}

func TestLexer_EOFIsIdempotent(t *testing.T) {
	inputs := []string{"", "1", "1 + 2", "#"}

	for _, input := range inputs {
		lexer := NewLexer(input)
		lexer.Tokens()

		for i := 0; i < 5; i++ {
			eof := lexer.NextToken()
			if eof.Type != ast.KindEOF {
				t.Fatalf("NextToken() after EOF on %q = %v, want EOF", input, eof)
			}
			if eof.Position < len(input) {
				t.Errorf("EOF position = %d, want >= %d", eof.Position, len(input))
			}
			if eof.Value != nil {
				t.Errorf("EOF value = %d, want absent", *eof.Value)
			}
			if eof.TextOr("") != ast.EOFText {
				t.Errorf("EOF text = %q, want sentinel", eof.TextOr(""))
			}
		}
	}
}

func TestLexer_PositionsIncrease(t *testing.T) {
	tokens := NewLexer("10 + 200-3 # (4)").Tokens()
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Position <= tokens[i-1].Position {
			t.Errorf("position %d (%v) not after %d (%v)",
				i, tokens[i], i-1, tokens[i-1])
		}
	}
}

func TestLexer_NumberOverflow(t *testing.T) {
	huge := strings.Repeat("9", 40)
	lexer := NewLexer(huge + "+1")
	tokens := lexer.Tokens()

	checkTokens(t, tokens, []tok{
		{ast.KindNumber, 0, huge, 0},
		{ast.KindPlus, 40, "+", -1},
		{ast.KindNumber, 41, "1", 1},
		{ast.KindEOF, 42, ast.EOFText, -1},
	})

	diags := lexer.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Kind != DiagnosticInvalidNumber || diags[0].Position != 0 {
		t.Errorf("diagnostic = %v, want invalid-number at 0", diags[0])
	}
}

func TestLexer_NonASCIIDigits(t *testing.T) {
	// Arabic-Indic digits are digits but do not decode as an int
	input := "١٢"
	tokens := NewLexer(input).Tokens()

	checkTokens(t, tokens, []tok{
		{ast.KindNumber, 0, input, 0},
		{ast.KindEOF, len(input), ast.EOFText, -1},
	})
}

func TestLexer_InvalidUTF8(t *testing.T) {
	tokens := NewLexer("1\xff2").Tokens()

	checkTokens(t, tokens, []tok{
		{ast.KindNumber, 0, "1", 1},
		{ast.KindBad, 1, "\xff", -1},
		{ast.KindNumber, 2, "2", 2},
		{ast.KindEOF, 3, ast.EOFText, -1},
	})
}

func BenchmarkLexer(b *testing.B) {
	input := strings.Repeat("12 + 34 - 5 ", 50)
	for i := 0; i < b.N; i++ {
		NewLexer(input).Tokens()
	}
}
