// File: ast_test.go
// Title: ghll AST Unit Tests
// Description: Tests for kind names, child ordering and traversal.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial test suite

package ast

import (
	"testing"
)

func TestTokenKind_String(t *testing.T) {
	tests := []struct {
		kind     TokenKind
		expected string
	}{
		{KindNumber, "NumberToken"},
		{KindWhitespace, "WhitespaceToken"},
		{KindPlus, "PlusToken"},
		{KindMinus, "MinusToken"},
		{KindTimes, "TimesToken"},
		{KindDivided, "DividedToken"},
		{KindModulo, "ModuloToken"},
		{KindLParen, "LParenToken"},
		{KindRParen, "RParenToken"},
		{KindBad, "BadToken"},
		{KindEOF, "EOFToken"},
		{KindBinaryExpression, "BinaryExpression"},
		{KindNumberExpression, "NumberExpression"},
		{TokenKind(42), "Kind(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTokenKind_IsToken(t *testing.T) {
	if !KindEOF.IsToken() || !KindNumber.IsToken() {
		t.Error("lexer kinds should report IsToken")
	}
	if KindBinaryExpression.IsToken() || KindNumberExpression.IsToken() {
		t.Error("node kinds should not report IsToken")
	}
}

func TestToken(t *testing.T) {
	num := NewNumberToken(4, "12", 12)
	if num.Kind() != KindNumber {
		t.Errorf("Kind() = %v, want %v", num.Kind(), KindNumber)
	}
	if len(num.Children()) != 0 {
		t.Errorf("Children() = %v, want none", num.Children())
	}
	if num.IsMissing() {
		t.Error("lexed token should not be missing")
	}
	if got := num.String(); got != `NumberToken("12" 12)@4` {
		t.Errorf("String() = %v", got)
	}

	plus := NewToken(KindPlus, 2, "+")
	if plus.Value != nil {
		t.Error("operator token should have no value")
	}
	if got := plus.String(); got != `PlusToken("+")@2` {
		t.Errorf("String() = %v", got)
	}

	missing := Token{Type: KindNumber, Position: 3}
	if !missing.IsMissing() {
		t.Error("fabricated token should be missing")
	}
	if got := missing.TextOr("?"); got != "?" {
		t.Errorf("TextOr() = %v, want ?", got)
	}
}

func sampleTree() Node {
	// (1 + 2) - 1
	return &BinaryExpression{
		Left: &BinaryExpression{
			Left:     &NumberExpression{Number: NewNumberToken(0, "1", 1)},
			Operator: NewToken(KindPlus, 2, "+"),
			Right:    &NumberExpression{Number: NewNumberToken(4, "2", 2)},
		},
		Operator: NewToken(KindMinus, 6, "-"),
		Right:    &NumberExpression{Number: NewNumberToken(8, "1", 1)},
	}
}

func TestChildren_Order(t *testing.T) {
	root := sampleTree().(*BinaryExpression)
	children := root.Children()

	if len(children) != 3 {
		t.Fatalf("len(Children()) = %d, want 3", len(children))
	}
	want := []TokenKind{KindBinaryExpression, KindMinus, KindNumberExpression}
	for i, kind := range want {
		if children[i].Kind() != kind {
			t.Errorf("child %d kind = %v, want %v", i, children[i].Kind(), kind)
		}
	}

	number := root.Right.(*NumberExpression)
	if c := number.Children(); len(c) != 1 || c[0].Kind() != KindNumber {
		t.Errorf("NumberExpression children = %v", c)
	}
}

func TestChildren_Stable(t *testing.T) {
	root := sampleTree()
	first := root.Children()
	second := root.Children()

	first[0] = nil
	if second[0] == nil {
		t.Error("Children() should return a fresh slice on every call")
	}
	if root.Children()[0] == nil {
		t.Error("mutating a returned slice changed the node")
	}
}

func TestFormat(t *testing.T) {
	if got := Format(sampleTree()); got != "((1 + 2) - 1)" {
		t.Errorf("Format() = %v, want ((1 + 2) - 1)", got)
	}
	empty := &NumberExpression{Number: Token{Type: KindNumber}}
	if got := Format(empty); got != "?" {
		t.Errorf("Format(empty) = %v, want ?", got)
	}
	if got := Format(nil); got != "<nil>" {
		t.Errorf("Format(nil) = %v, want <nil>", got)
	}
}

func TestWalk(t *testing.T) {
	type visit struct {
		kind   TokenKind
		depth  int
		isLast bool
	}
	var got []visit
	Walk(sampleTree(), func(n Node, depth int, isLast bool) bool {
		got = append(got, visit{n.Kind(), depth, isLast})
		return true
	})

	want := []visit{
		{KindBinaryExpression, 0, true},
		{KindBinaryExpression, 1, false},
		{KindNumberExpression, 2, false},
		{KindNumber, 3, true},
		{KindPlus, 2, false},
		{KindNumberExpression, 2, true},
		{KindNumber, 3, true},
		{KindMinus, 1, false},
		{KindNumberExpression, 1, true},
		{KindNumber, 2, true},
	}
	if len(got) != len(want) {
		t.Fatalf("visited %d nodes, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visit %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestWalk_SkipChildren(t *testing.T) {
	count := 0
	Walk(sampleTree(), func(n Node, depth int, isLast bool) bool {
		count++
		return n.Kind() != KindBinaryExpression
	})
	if count != 1 {
		t.Errorf("visited %d nodes, want 1", count)
	}

	Walk(nil, func(Node, int, bool) bool {
		t.Error("Walk(nil) should not call fn")
		return true
	})
}

func TestTokensAndMissing(t *testing.T) {
	tokens := Tokens(sampleTree())
	texts := make([]string, len(tokens))
	for i, tok := range tokens {
		texts[i] = tok.TextOr("?")
	}
	want := []string{"1", "+", "2", "-", "1"}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, texts[i], want[i])
		}
	}

	root := &BinaryExpression{
		Left:     &NumberExpression{Number: NewNumberToken(0, "1", 1)},
		Operator: NewToken(KindPlus, 1, "+"),
		Right:    &NumberExpression{Number: Token{Type: KindNumber, Position: 2}},
	}
	missing := MissingTokens(root)
	if len(missing) != 1 || missing[0].Position != 2 {
		t.Errorf("MissingTokens() = %v, want one token at 2", missing)
	}
	if len(MissingTokens(sampleTree())) != 0 {
		t.Error("complete tree should have no missing tokens")
	}
}
