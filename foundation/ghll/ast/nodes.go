// File: nodes.go
// Title: ghll AST Node Definitions
// Description: Defines the Node interface and the two expression nodes the
//              parser builds on top of tokens.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial AST node definitions

package ast

import (
	"strconv"
)

// Node is implemented by Token, *NumberExpression and *BinaryExpression only
type Node interface {
	// Kind returns the token or node kind
	Kind() TokenKind

	// Children returns the child nodes in source order. Each call returns
	// a fresh slice with the same elements.
	Children() []Node

	node() // marker method
}

// NumberExpression wraps a single number token
type NumberExpression struct {
	Number Token
}

// Kind implements Node
func (e *NumberExpression) Kind() TokenKind {
	return KindNumberExpression
}

// Children implements Node
func (e *NumberExpression) Children() []Node {
	return []Node{e.Number}
}

func (*NumberExpression) node() {}

// String returns the number or "?" when the token was fabricated
func (e *NumberExpression) String() string {
	if e.Number.Value == nil {
		return "?"
	}
	return strconv.Itoa(*e.Number.Value)
}

// BinaryExpression combines two operands with an operator token. The
// operator is a child in its own right, between Left and Right.
type BinaryExpression struct {
	Left     Node
	Operator Token
	Right    Node
}

// Kind implements Node
func (e *BinaryExpression) Kind() TokenKind {
	return KindBinaryExpression
}

// Children implements Node
func (e *BinaryExpression) Children() []Node {
	return []Node{e.Left, e.Operator, e.Right}
}

func (*BinaryExpression) node() {}

// String returns a fully parenthesized form, e.g. ((1 + 2) - 3)
func (e *BinaryExpression) String() string {
	return "(" + Format(e.Left) + " " + e.Operator.TextOr("?") + " " + Format(e.Right) + ")"
}

// Format returns the compact textual form of any node
func Format(n Node) string {
	switch n := n.(type) {
	case *NumberExpression:
		return n.String()
	case *BinaryExpression:
		return n.String()
	case Token:
		return n.TextOr("?")
	default:
		return "<nil>"
	}
}
