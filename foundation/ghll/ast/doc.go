// File: doc.go
// Title: ghll Abstract Syntax Tree Package Documentation
// Description: Token and node model shared by the lexer, the parser and
//              the tree printer.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial AST implementation

/*
Package ast defines the tokens and syntax tree nodes of ghll.

A Node is one of exactly three shapes:
  • Token, a lexical unit and the only leaf
  • *NumberExpression, wrapping a single number token
  • *BinaryExpression, with children left, operator token and right

The set is closed: Node carries an unexported marker method, so code that
switches over the node type can treat the three cases as exhaustive.
Nodes are immutable once built and every child is owned by exactly one
parent.
*/
package ast
