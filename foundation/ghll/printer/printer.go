// File: printer.go
// Title: ghll Tree Printer
// Description: Renders a syntax tree as box-drawn text lines and token
//              sequences as one line per token, for interactive inspection.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial tree and token rendering

// Package printer renders ghll syntax trees and token sequences as text.
package printer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/msto63/ghll/foundation/ghll/ast"
)

const (
	markerLast   = "└── "
	markerMiddle = "├── "
	indentLast   = "    "
	indentMiddle = "│   "
)

// RenderTree renders root depth-first in pre-order, one line per node:
// indentation, branch marker, kind and, for tokens with a value, the value.
// The root and every last child get └──, all other children ├──.
func RenderTree(root ast.Node) []string {
	var lines []string
	indents := []string{""}

	ast.Walk(root, func(n ast.Node, depth int, isLast bool) bool {
		indent := indents[depth]
		marker, next := markerMiddle, indentMiddle
		if isLast {
			marker, next = markerLast, indentLast
		}
		lines = append(lines, indent+marker+label(n))
		indents = append(indents[:depth+1], indent+next)
		return true
	})
	return lines
}

// Fprint writes the rendered tree to w, one newline-terminated line per node
func Fprint(w io.Writer, root ast.Node) error {
	bw := bufio.NewWriter(w)
	for _, line := range RenderTree(root) {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// String returns the rendered tree as a single newline-separated string
func String(root ast.Node) string {
	return strings.Join(RenderTree(root), "\n")
}

// RenderTokens renders tokens as "Kind: 'text'" lines, followed by the
// value for numbers. Rendering stops at the first EOF token.
func RenderTokens(tokens []ast.Token) []string {
	var lines []string
	for _, tok := range tokens {
		if tok.Type == ast.KindEOF {
			break
		}
		line := fmt.Sprintf("%s: '%s'", tok.Type, tok.TextOr(""))
		if tok.Value != nil {
			line += " " + strconv.Itoa(*tok.Value)
		}
		lines = append(lines, line)
	}
	return lines
}

// label returns the text shown for a node after its branch marker
func label(n ast.Node) string {
	switch n := n.(type) {
	case ast.Token:
		if n.Value != nil {
			return n.Type.String() + " " + strconv.Itoa(*n.Value)
		}
		return n.Type.String()
	case *ast.NumberExpression:
		return n.Kind().String()
	case *ast.BinaryExpression:
		return n.Kind().String()
	default:
		panic(fmt.Sprintf("printer: unexpected node type %T", n))
	}
}
