package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/ghll/foundation/ghll"
	"github.com/msto63/ghll/internal/repl"
	"github.com/msto63/ghll/internal/server"
	coregrpc "github.com/msto63/ghll/pkg/core/grpc"
)

var (
	parseTokens bool
	parseDiag   bool
	parseJSON   bool
	parseRemote string
	parseRecord bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <line>",
	Short: "Parse one line and print its tree",
	Long: `Parses one line and prints its tree. Multiple arguments are joined
with spaces, so quoting is optional.

Examples:
  ghll parse "1 + 2 - 3"
  ghll parse 12 '*' 3 --tokens
  ghll parse 1 + --diag --json
  ghll parse "4 - 2" --remote 127.0.0.1:9470`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseTokens, "tokens", false, "also print the token stream")
	parseCmd.Flags().BoolVar(&parseDiag, "diag", false, "also print diagnostics")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print the result as JSON")
	parseCmd.Flags().StringVar(&parseRemote, "remote", "", "parse on a ghll server at this gRPC address")
	parseCmd.Flags().BoolVar(&parseRecord, "record", false, "record the line in the history journal")
}

func runParse(cmd *cobra.Command, args []string) error {
	line := strings.Join(args, " ")
	out := cmd.OutOrStdout()

	if parseRemote != "" {
		view, err := parseRemoteLine(cmd.Context(), parseRemote, line)
		if err != nil {
			printError("remote parse failed", err)
			return err
		}
		return writeView(out, view)
	}

	engine, err := newEngine()
	if err != nil {
		printError("failed to create engine", err)
		return err
	}
	res, err := engine.Process(cmd.Context(), line)
	if err != nil {
		printError("parse failed", err)
		return err
	}

	if parseRecord {
		if err := recordResult(cmd.Context(), res); err != nil {
			printError("failed to record history", err)
			return err
		}
	}

	if parseJSON {
		return writeJSON(out, res.View())
	}
	f := repl.NewFormatter(out, appConfig.REPL.TreeColor)
	f.ShowTokens = parseTokens
	f.ShowDiagnostics = parseDiag
	return f.WriteResult(out, res)
}

func recordResult(ctx context.Context, res *ghll.Result) error {
	store, err := openHistory()
	if err != nil || store == nil {
		return err
	}
	defer store.Close()
	_, err = store.Record(ctx, res)
	return err
}

func parseRemoteLine(ctx context.Context, addr, line string) (ghll.View, error) {
	cfg := coregrpc.DefaultClientConfig(addr)
	conn, err := coregrpc.Dial(cfg)
	if err != nil {
		return ghll.View{}, err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	resp, err := server.NewParseClient(conn).Parse(ctx, line)
	if err != nil {
		return ghll.View{}, err
	}
	return server.StructToView(resp), nil
}

// writeView prints a remote result; without the raw tokens the text
// output uses the rendered lines of the view
func writeView(w io.Writer, view ghll.View) error {
	if parseJSON {
		return writeJSON(w, view)
	}

	var b strings.Builder
	for _, line := range view.Tree {
		fmt.Fprintln(&b, line)
	}
	if parseTokens {
		for _, line := range view.Tokens {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	if parseDiag {
		for _, d := range view.Diagnostics {
			fmt.Fprintf(&b, "! %s\n", d)
		}
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
