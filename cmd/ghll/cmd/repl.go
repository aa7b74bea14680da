package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/ghll/internal/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive parser",
	Long: `Reads lines, parses each one and prints its tree.

Commands:
  :tokens       toggle the token dump
  :diag         toggle diagnostics
  :history [n]  show the last n journaled lines
  :help         show help
  :quit         leave (Ctrl+D and Ctrl+C work too)

Prompt and tree colour are reloaded when the config file changes.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		printError("failed to create engine", err)
		return err
	}

	store, err := openHistory()
	if err != nil {
		printError("failed to open history", err)
		return err
	}
	if store != nil {
		defer store.Close()
	}

	r, err := repl.New(repl.Options{
		Engine:     engine,
		Config:     appConfig.REPL,
		ConfigPath: appConfigPath,
		History:    store,
		Stdout:     cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	return r.Run(cmd.Context(), appConfig.REPL.HistoryFile)
}
