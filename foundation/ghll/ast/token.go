// File: token.go
// Title: ghll Token Definitions
// Description: Defines the token kinds and the Token value produced by the
//              lexer. Tokens are leaves of the syntax tree.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial token definitions

package ast

import (
	"fmt"
	"strconv"
)

// TokenKind identifies a token or, for the last two values, a tree node
type TokenKind int

const (
	KindNumber TokenKind = iota
	KindWhitespace
	KindPlus
	KindMinus
	KindTimes
	KindDivided
	KindModulo
	KindLParen
	KindRParen
	KindBad
	KindEOF

	// Node-only kinds
	KindBinaryExpression
	KindNumberExpression
)

// EOFText is the text carried by the end-of-input token
const EOFText = "\x00"

// String returns the display name of the kind as shown in rendered trees
func (k TokenKind) String() string {
	switch k {
	case KindNumber:
		return "NumberToken"
	case KindWhitespace:
		return "WhitespaceToken"
	case KindPlus:
		return "PlusToken"
	case KindMinus:
		return "MinusToken"
	case KindTimes:
		return "TimesToken"
	case KindDivided:
		return "DividedToken"
	case KindModulo:
		return "ModuloToken"
	case KindLParen:
		return "LParenToken"
	case KindRParen:
		return "RParenToken"
	case KindBad:
		return "BadToken"
	case KindEOF:
		return "EOFToken"
	case KindBinaryExpression:
		return "BinaryExpression"
	case KindNumberExpression:
		return "NumberExpression"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// IsToken reports whether the kind is produced by the lexer
func (k TokenKind) IsToken() bool {
	return k >= KindNumber && k <= KindEOF
}

// Token is one lexical unit. Text and Value are nil when absent: Value is
// only set on number tokens, and tokens fabricated by the parser for a
// missing number carry neither.
type Token struct {
	Type     TokenKind // Token kind
	Position int       // Byte offset of the token start in the source
	Text     *string   // Raw source text, nil when fabricated
	Value    *int      // Decoded number, nil when absent
}

// NewToken creates a token with the given text and no value
func NewToken(kind TokenKind, position int, text string) Token {
	return Token{Type: kind, Position: position, Text: &text}
}

// NewNumberToken creates a number token carrying its decoded value
func NewNumberToken(position int, text string, value int) Token {
	return Token{Type: KindNumber, Position: position, Text: &text, Value: &value}
}

// Kind implements Node
func (t Token) Kind() TokenKind {
	return t.Type
}

// Children implements Node. Tokens are leaves.
func (t Token) Children() []Node {
	return nil
}

func (Token) node() {}

// IsMissing reports whether the token was fabricated in place of an
// expected one
func (t Token) IsMissing() bool {
	return t.Text == nil && t.Value == nil
}

// TextOr returns the token text or def when absent
func (t Token) TextOr(def string) string {
	if t.Text == nil {
		return def
	}
	return *t.Text
}

// String returns a debug representation such as NumberToken('12' 12)@4
func (t Token) String() string {
	text := "<nil>"
	if t.Text != nil {
		text = strconv.Quote(*t.Text)
	}
	if t.Value != nil {
		return fmt.Sprintf("%s(%s %d)@%d", t.Type, text, *t.Value, t.Position)
	}
	return fmt.Sprintf("%s(%s)@%d", t.Type, text, t.Position)
}
