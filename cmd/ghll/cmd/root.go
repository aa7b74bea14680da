package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/ghll/foundation/core/log"
	"github.com/msto63/ghll/pkg/core/config"
	"github.com/msto63/ghll/pkg/core/logging"
)

var (
	cfgFile string
	verbose bool

	// set by PersistentPreRunE
	appConfig     *config.Config
	appConfigPath string
	logCloser     io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "ghll",
	Short: "GHLL - arithmetic line parser",
	Long: `ghll parses lines of integer arithmetic into a syntax tree and prints it.

Without a subcommand an interactive REPL is started. Every line is parsed
on its own; nothing carries over between lines.

Grammar:
  expression := primary ( ('+' | '-') primary )*
  primary    := NUMBER`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	Args: cobra.NoArgs,
	RunE: runREPL,
}

// Execute runs the root command; SIGINT and SIGTERM cancel its context
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $GHLL_CONFIG or ./configs/ghll.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// setup loads the configuration and installs the default logger
func setup(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.Resolve(cfgFile)
	if err != nil {
		printError("failed to load config", err)
		return err
	}
	appConfig = cfg
	appConfigPath = path

	logCfg := logging.LoggerConfig{
		ServiceName: cfg.General.Name,
		Level:       cfg.General.LogLevel,
		Format:      cfg.General.LogFormat,
		File:        cfg.General.LogFile,
		Console:     cmd.ErrOrStderr(),
	}
	if verbose {
		logCfg.Level = "debug"
	}

	logger, closer, err := logging.NewLogger(logCfg)
	if err != nil {
		printError("failed to set up logging", err)
		return err
	}
	logCloser = closer
	mdwlog.SetDefault(logger)

	logger.Debug("Configuration loaded", mdwlog.Fields{"path": path})
	return nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
}
