// File: walk.go
// Title: ghll AST Traversal
// Description: Depth-first pre-order traversal that reports, for every
//              node, its depth and whether it is the last child of its
//              parent.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Replaces the TCOL visitor for the expression tree

package ast

import (
	"github.com/samber/lo"
)

// WalkFunc is called once per node. Returning false skips the children of
// the node.
type WalkFunc func(n Node, depth int, isLast bool) bool

// Walk visits root and its descendants in depth-first pre-order. The root
// is reported at depth 0 as a last child. The last-child flag is decided by
// index, so structurally equal siblings are told apart correctly.
func Walk(root Node, fn WalkFunc) {
	if root == nil {
		return
	}
	walk(root, 0, true, fn)
}

func walk(n Node, depth int, isLast bool, fn WalkFunc) {
	if !fn(n, depth, isLast) {
		return
	}
	children := n.Children()
	for i, child := range children {
		walk(child, depth+1, i == len(children)-1, fn)
	}
}

// Tokens returns the token leaves of the tree in source order
func Tokens(root Node) []Token {
	var tokens []Token
	Walk(root, func(n Node, _ int, _ bool) bool {
		if t, ok := n.(Token); ok {
			tokens = append(tokens, t)
		}
		return true
	})
	return tokens
}

// MissingTokens returns the fabricated tokens in the tree, the only in-tree
// trace of input that did not match the grammar
func MissingTokens(root Node) []Token {
	return lo.Filter(Tokens(root), func(t Token, _ int) bool {
		return t.IsMissing()
	})
}
