// Package repl implements the interactive line loop: every line typed is
// parsed on its own and its tree is printed. Lines never share state; the
// optional history journal only records them.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	mdwlog "github.com/msto63/ghll/foundation/core/log"
	"github.com/msto63/ghll/foundation/ghll"
	"github.com/msto63/ghll/internal/history"
	"github.com/msto63/ghll/pkg/core/config"
)

// Banner is printed once when the loop starts
const Banner = "GHLL Compiler"

// Options configures a REPL
type Options struct {
	Engine *ghll.Engine
	Config config.REPLConfig

	// ConfigPath enables live reload of prompt and colours when set
	ConfigPath string

	// History is optional; nil disables :history and journaling
	History *history.Store

	Logger *mdwlog.Logger

	// Stdin and Stdout default to the process streams
	Stdin  io.Reader
	Stdout io.Writer
}

// REPL is the interactive parse loop
type REPL struct {
	engine     *ghll.Engine
	history    *history.Store
	logger     *mdwlog.Logger
	configPath string
	stdin      io.Reader
	stdout     io.Writer

	mu        sync.Mutex
	prompt    string
	formatter *Formatter
	rl        *readline.Instance
	done      bool
}

// New creates a REPL
func New(opts Options) (*REPL, error) {
	if opts.Engine == nil {
		engine, err := ghll.New(ghll.Options{
			Logger:         opts.Logger,
			MaxInputLength: opts.Config.MaxInputLength,
		})
		if err != nil {
			return nil, err
		}
		opts.Engine = engine
	}
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	r := &REPL{
		engine:     opts.Engine,
		history:    opts.History,
		logger:     opts.Logger.WithField("component", "repl"),
		configPath: opts.ConfigPath,
		stdin:      opts.Stdin,
		stdout:     opts.Stdout,
	}
	r.applyConfig(opts.Config)
	return r, nil
}

func (r *REPL) applyConfig(cfg config.REPLConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.prompt = promptString(cfg.Prompt)
	f := NewFormatter(r.stdout, cfg.TreeColor)
	f.ShowTokens = cfg.ShowTokens
	f.ShowDiagnostics = cfg.ShowDiagnostics
	if r.formatter != nil {
		// toggles made with :tokens and :diag survive a reload
		f.ShowTokens = r.formatter.ShowTokens
		f.ShowDiagnostics = r.formatter.ShowDiagnostics
	}
	r.formatter = f
	if r.rl != nil {
		r.rl.SetPrompt(r.prompt)
	}
}

func promptString(prompt string) string {
	if prompt == "" {
		prompt = ">"
	}
	if !strings.HasSuffix(prompt, " ") {
		prompt += " "
	}
	return prompt
}

// Run reads lines until EOF, interrupt, :quit or ctx cancellation
func (r *REPL) Run(ctx context.Context, historyFile string) error {
	rlConfig := &readline.Config{
		Prompt:          r.currentPrompt(),
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
		Stdout:          r.stdout,
	}
	if r.stdin != nil {
		rlConfig.Stdin = io.NopCloser(r.stdin)
		rlConfig.FuncIsTerminal = func() bool { return false }
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return fmt.Errorf("failed to start line editor: %w", err)
	}
	defer rl.Close()

	r.mu.Lock()
	r.rl = rl
	r.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		rl.Close()
	}()
	if r.configPath != "" {
		go r.watchConfig(ctx)
	}

	fmt.Fprintln(r.stdout, Banner)
	r.logger.Debug("REPL started", mdwlog.Fields{"history": r.history != nil})

	for !r.isDone() {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				break
			}
			if ctx.Err() != nil {
				break
			}
			return err
		}
		r.handleLine(ctx, line)
	}

	r.logger.Debug("REPL stopped")
	return nil
}

func (r *REPL) currentPrompt() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prompt
}

func (r *REPL) isDone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

func (r *REPL) handleLine(ctx context.Context, line string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return
	}
	if strings.HasPrefix(trimmed, ":") {
		r.runCommand(ctx, trimmed)
		return
	}

	r.mu.Lock()
	f := r.formatter
	r.mu.Unlock()

	res, err := r.engine.Process(ctx, line)
	if err != nil {
		r.logger.LogError(err)
		f.WriteError(r.stdout, err)
		return
	}
	f.WriteResult(r.stdout, res)

	if r.history != nil {
		if _, err := r.history.Record(ctx, res); err != nil {
			r.logger.WarnWithErr("Failed to record history entry", err)
		}
	}
}

func (r *REPL) watchConfig(ctx context.Context) {
	err := config.Watch(ctx, r.configPath, nil,
		func(_, next *config.Config) {
			r.applyConfig(next.REPL)
			r.logger.Info("Configuration reloaded", mdwlog.Fields{"path": r.configPath})
		},
		func(err error) {
			r.logger.WarnWithErr("Configuration reload failed", err)
		},
	)
	if err != nil {
		r.logger.WarnWithErr("Configuration watch stopped", err)
	}
}
