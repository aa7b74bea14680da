// File: doc.go
// Title: ghll Parser Package Documentation
// Description: Lexer and recursive descent parser turning one line of
//              arithmetic text into an AST.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial lexer and parser

/*
Package parser turns a line of arithmetic text into an AST.

The grammar is deliberately small:

	expression := primary ( ('+' | '-') primary )*
	primary    := NUMBER

Additive chains fold to the left, so "1 + 2 - 3" becomes ((1 + 2) - 3).
The lexer also recognizes * / % ( ), but the grammar never consumes them;
they stay in the token buffer and can be inspected with Remaining.

Neither the lexer nor the parser fails. Unknown characters become Bad
tokens that the parser drops, digit runs that do not fit an int decode to
0, and a missing number is replaced by a fabricated number token without
text or value. Parse always returns a tree. Diagnostics reports what was
absorbed this way without changing the tree.

Usage:

	p := parser.New("1 + 2 - 3")
	root := p.Parse()
	for _, d := range p.Diagnostics() {
		fmt.Println(d)
	}
*/
package parser
