package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the journal of parsed lines",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journaled lines, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			printError("failed to open history", err)
			return err
		}
		if store == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "history is disabled")
			return nil
		}
		defer store.Close()

		entries, err := store.List(cmd.Context(), historyLimit)
		if err != nil {
			printError("failed to list history", err)
			return err
		}

		out := cmd.OutOrStdout()
		if historyJSON {
			return writeJSON(out, entries)
		}
		for _, e := range entries {
			mark := " "
			if !e.Complete {
				mark = "!"
			}
			fmt.Fprintf(out, "%s %s  %-20s %s\n", mark, e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Line, e.Expression)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all journaled lines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			printError("failed to open history", err)
			return err
		}
		if store == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "history is disabled")
			return nil
		}
		defer store.Close()

		removed, err := store.Clear(cmd.Context())
		if err != nil {
			printError("failed to clear history", err)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyClearCmd)
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries (0 for all)")
	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "print as JSON")
}
