package repl

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

const defaultHistoryLimit = 10

type command struct {
	usage string
	help  string
	run   func(r *REPL, ctx context.Context, args []string)
}

var commands map[string]command

func init() {
	commands = map[string]command{
		":tokens":  {":tokens", "toggle the token dump", (*REPL).toggleTokens},
		":diag":    {":diag", "toggle diagnostics", (*REPL).toggleDiagnostics},
		":history": {":history [n]", "show the last n journaled lines", (*REPL).showHistory},
		":help":    {":help", "show this help", (*REPL).showHelp},
		":quit":    {":quit", "leave the REPL", (*REPL).quit},
	}
}

var commandOrder = []string{":tokens", ":diag", ":history", ":help", ":quit"}

func (r *REPL) runCommand(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, ok := commands[fields[0]]
	if !ok {
		fmt.Fprintf(r.stdout, "unknown command %s, try :help\n\n", fields[0])
		return
	}
	cmd.run(r, ctx, fields[1:])
}

func (r *REPL) toggleTokens(_ context.Context, _ []string) {
	r.mu.Lock()
	r.formatter.ShowTokens = !r.formatter.ShowTokens
	on := r.formatter.ShowTokens
	r.mu.Unlock()
	fmt.Fprintf(r.stdout, "tokens %s\n\n", onOff(on))
}

func (r *REPL) toggleDiagnostics(_ context.Context, _ []string) {
	r.mu.Lock()
	r.formatter.ShowDiagnostics = !r.formatter.ShowDiagnostics
	on := r.formatter.ShowDiagnostics
	r.mu.Unlock()
	fmt.Fprintf(r.stdout, "diagnostics %s\n\n", onOff(on))
}

func (r *REPL) showHistory(ctx context.Context, args []string) {
	if r.history == nil {
		fmt.Fprint(r.stdout, "history is disabled\n\n")
		return
	}

	limit := defaultHistoryLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintf(r.stdout, "invalid count %q\n\n", args[0])
			return
		}
		limit = n
	}

	entries, err := r.history.List(ctx, limit)
	if err != nil {
		r.logger.LogError(err)
		r.mu.Lock()
		f := r.formatter
		r.mu.Unlock()
		f.WriteError(r.stdout, err)
		return
	}

	var b strings.Builder
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Fprintf(&b, "%s  %-20s %s\n", e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Line, e.Expression)
	}
	b.WriteByte('\n')
	fmt.Fprint(r.stdout, b.String())
}

func (r *REPL) showHelp(_ context.Context, _ []string) {
	var b strings.Builder
	b.WriteString("Type an arithmetic line such as 1 + 2 - 3 to see its tree.\n")
	for _, name := range commandOrder {
		cmd := commands[name]
		fmt.Fprintf(&b, "  %-14s %s\n", cmd.usage, cmd.help)
	}
	b.WriteByte('\n')
	fmt.Fprint(r.stdout, b.String())
}

func (r *REPL) quit(_ context.Context, _ []string) {
	r.mu.Lock()
	r.done = true
	r.mu.Unlock()
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
