package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	mcp "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport"
	mcphttp "github.com/metoro-io/mcp-golang/transport/http"
	"github.com/metoro-io/mcp-golang/transport/stdio"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	transportStdio = "stdio"
	transportHTTP  = "http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tools over MCP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("transport", "t", transportStdio, "MCP transport: stdio or http")
	serveCmd.Flags().String("addr", ":8080", "listen address for the http transport")
	serveCmd.Flags().String("endpoint", "/mcp", "MCP endpoint path for the http transport")

	viper.BindPFlag("server.transport", serveCmd.Flags().Lookup("transport"))
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("server.endpoint", serveCmd.Flags().Lookup("endpoint"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, config := setup()

	registry, err := newRegistry(config, logger)
	if err != nil {
		logger.Fatal("building tools", zap.Error(err))
	}

	var t transport.Transport
	switch config.Server.Transport {
	case transportHTTP:
		httpTransport := mcphttp.NewHTTPTransport(config.Server.Endpoint)
		httpTransport.WithAddr(config.Server.Addr)
		t = httpTransport
	case transportStdio:
		t = stdio.NewStdioServerTransport()
	default:
		logger.Fatal("unknown transport", zap.String("transport", config.Server.Transport))
	}

	server := mcp.NewServer(t, mcp.WithName(app), mcp.WithVersion(version))
	if err := registry.RegisterMCP(server); err != nil {
		logger.Fatal("registering tools", zap.Error(err))
	}

	logger.Info("starting the work24-mcp server",
		zap.String("version", version),
		zap.String("transport", config.Server.Transport),
		zap.String("addr", config.Server.Addr),
		zap.String("endpoint", config.Server.Endpoint),
		zap.Int("tools", len(registry.List())),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			logger.Fatal("serving", zap.Error(err))
		}
		// stdio returns right away and keeps serving in the background.
		<-ctx.Done()
	}

	logger.Info("shutting down")
}
