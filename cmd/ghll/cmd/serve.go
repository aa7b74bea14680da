package cmd

import (
	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/ghll/foundation/core/log"
	"github.com/msto63/ghll/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parser over gRPC and WebSocket",
	Long: `Starts the gRPC service ghll.v1.ParseService (with grpc.health.v1) and an
HTTP server with /ws (WebSocket) and /healthz.

Addresses come from the [server] section of the config file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		printError("failed to create engine", err)
		return err
	}

	store, err := openHistory()
	if err != nil {
		// serving works without the journal
		mdwlog.GetDefault().WarnWithErr("History disabled", err)
	}
	if store != nil {
		defer store.Close()
	}

	mdwlog.GetDefault().Info("Starting ghll server", mdwlog.Fields{
		"grpc": appConfig.GRPCAddress(),
		"http": appConfig.HTTPAddress(),
	})
	srv := server.New(server.ConfigFrom(appConfig), engine, store)
	if err := srv.Run(cmd.Context()); err != nil {
		printError("server failed", err)
		return err
	}
	return nil
}
