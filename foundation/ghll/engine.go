// File: engine.go
// Title: ghll Engine
// Description: Runs one line through lexer, parser and printer and returns
//              everything a presentation layer shows: raw tokens, tree,
//              rendered lines, unconsumed tokens and diagnostics.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02
//
// Change History:
// - 2025-03-02 v0.1.0: Initial engine implementation

package ghll

import (
	"context"
	"time"

	"github.com/samber/lo"

	mdwerror "github.com/msto63/ghll/foundation/core/error"
	mdwlog "github.com/msto63/ghll/foundation/core/log"
	"github.com/msto63/ghll/foundation/ghll/ast"
	"github.com/msto63/ghll/foundation/ghll/parser"
	"github.com/msto63/ghll/foundation/ghll/printer"
)

// DefaultMaxInputLength is used when Options.MaxInputLength is zero
const DefaultMaxInputLength = 4096

// Options configures the engine
type Options struct {
	Logger         *mdwlog.Logger
	MaxInputLength int
}

// Engine processes lines. It holds no per-line state and is safe for
// concurrent use; every line gets its own lexer and parser.
type Engine struct {
	logger  *mdwlog.Logger
	options Options
}

// Result is the outcome of processing one line
type Result struct {
	Line        string
	Tokens      []ast.Token // Raw lexer output including whitespace and bad tokens
	Root        ast.Node
	Tree        []string    // Rendered tree lines
	Remaining   []ast.Token // Unconsumed parser tokens, EOF last
	Diagnostics []parser.Diagnostic
	Duration    time.Duration
}

// New creates a new engine
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.MaxInputLength < 0 {
		return nil, mdwerror.Newf("invalid maximum input length %d", opts.MaxInputLength).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("ghll.new")
	}

	logger := opts.Logger.WithField("component", "ghll-engine")
	logger.Debug("ghll engine initialized", mdwlog.Fields{
		"maxInputLength": opts.MaxInputLength,
	})

	return &Engine{
		logger:  logger,
		options: opts,
	}, nil
}

// Process parses one line. The parse itself never fails; errors are only
// returned for a cancelled context or a line longer than the configured
// maximum.
func (e *Engine) Process(ctx context.Context, line string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, mdwerror.Wrap(err, "processing cancelled").
			WithCode(mdwerror.CodeTimeout).
			WithOperation("ghll.process")
	}
	if len(line) > e.options.MaxInputLength {
		return nil, mdwerror.Newf("input exceeds maximum length: %d > %d", len(line), e.options.MaxInputLength).
			WithCode(mdwerror.CodeInvalidLength).
			WithOperation("ghll.process").
			WithDetail("length", len(line)).
			WithDetail("max_length", e.options.MaxInputLength)
	}

	timer := e.logger.StartTimer("ghll.process").WithField("length", len(line))

	tokens := parser.NewLexer(line).Tokens()
	p := parser.New(line, parser.WithLogger(e.logger))
	root := p.Parse()

	result := &Result{
		Line:        line,
		Tokens:      tokens,
		Root:        root,
		Tree:        printer.RenderTree(root),
		Remaining:   p.Remaining(),
		Diagnostics: p.Diagnostics(),
	}
	result.Duration = timer.Stop()
	return result, nil
}

// MaxInputLength returns the effective input limit
func (e *Engine) MaxInputLength() int {
	return e.options.MaxInputLength
}

// Expression returns the parenthesized form of the tree, e.g. ((1 + 2) - 3)
func (r *Result) Expression() string {
	return ast.Format(r.Root)
}

// Complete reports whether the whole line was consumed without placeholders
func (r *Result) Complete() bool {
	return len(r.Remaining) == 1 && len(ast.MissingTokens(r.Root)) == 0
}

// View is a serializable summary of a Result, shared by the JSON output of
// the CLI, the WebSocket handler and the history journal.
type View struct {
	Line        string   `json:"line"`
	Expression  string   `json:"expression"`
	Tree        []string `json:"tree"`
	Tokens      []string `json:"tokens"`
	Remaining   []string `json:"remaining"`
	Diagnostics []string `json:"diagnostics"`
	Complete    bool     `json:"complete"`
	DurationMs  float64  `json:"duration_ms"`
}

// View returns the serializable summary of r
func (r *Result) View() View {
	return View{
		Line:       r.Line,
		Expression: r.Expression(),
		Tree:       append([]string{}, r.Tree...),
		Tokens:     append([]string{}, printer.RenderTokens(r.Tokens)...),
		Remaining: lo.FilterMap(r.Remaining, func(t ast.Token, _ int) (string, bool) {
			return t.String(), t.Type != ast.KindEOF
		}),
		Diagnostics: lo.Map(r.Diagnostics, func(d parser.Diagnostic, _ int) string {
			return d.String()
		}),
		Complete:   r.Complete(),
		DurationMs: float64(r.Duration.Microseconds()) / 1000,
	}
}
