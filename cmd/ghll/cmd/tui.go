package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/ghll/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the terminal inspector",
	Long: `Starts a full-screen inspector: type a line, see its tree.

Keys:
  Enter     parse the line
  Tab       toggle the token stream
  Ctrl+L    clear
  Esc       quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		printError("failed to create engine", err)
		return err
	}
	if err := tui.Run(engine); err != nil {
		printError("TUI failed", err)
		return err
	}
	return nil
}
