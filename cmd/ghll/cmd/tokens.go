package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/ghll/foundation/ghll/parser"
	"github.com/msto63/ghll/foundation/ghll/printer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <line>",
	Short: "Print the token stream of a line",
	Long: `Prints every token the lexer produces for a line, whitespace and bad
characters included, up to the end of input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		line := strings.Join(args, " ")
		out := cmd.OutOrStdout()
		for _, l := range printer.RenderTokens(parser.NewLexer(line).Tokens()) {
			fmt.Fprintln(out, l)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}
