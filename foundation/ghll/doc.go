// File: doc.go
// Title: ghll Package Documentation
// Description: Entry point of the ghll language core. Combines lexer,
//              parser and tree printer behind a single engine used by the
//              REPL, the TUI, the servers and the CLI.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial engine

/*
Package ghll parses lines of arithmetic text into syntax trees.

Package: ghll
Title: ghll Language Core
Description: The core pipeline is text → lexer → tokens → parser → AST →
             printer. It lives in the subpackages ast, parser and printer;
             this package wraps them in an Engine that adds input limits,
             cancellation, timing and logging for the presentation layers.

Usage:

	engine, err := ghll.New(ghll.Options{})
	if err != nil {
		return err
	}
	result, err := engine.Process(ctx, "1 + 2 - 3")
	if err != nil {
		return err
	}
	for _, line := range result.Tree {
		fmt.Println(line)
	}

The subpackages can be used directly when no engine is needed:

	root := parser.New("1 + 2").Parse()
	printer.Fprint(os.Stdout, root)
*/
package ghll
