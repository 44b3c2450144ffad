// Command server runs the Excel MCP server over stdio, SSE, or streamable
// HTTP. Network transports also expose the auxiliary file endpoints.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sheetbridge/excel-mcp-server/config"
	"github.com/sheetbridge/excel-mcp-server/internal/httpapi"
	"github.com/sheetbridge/excel-mcp-server/internal/logging"
	"github.com/sheetbridge/excel-mcp-server/internal/paths"
	"github.com/sheetbridge/excel-mcp-server/internal/registry"
	"github.com/sheetbridge/excel-mcp-server/internal/runtime"
	"github.com/sheetbridge/excel-mcp-server/internal/telemetry"
	"github.com/sheetbridge/excel-mcp-server/pkg/version"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "excel-mcp-server",
		Short:   "MCP server for creating, reading, and editing Excel workbooks",
		Version: version.Version(),
	}
	root.AddCommand(stdioCmd(), sseCmd(), streamableHTTPCmd())
	return root
}

// bootstrap opens the log file and assembles the MCP server with all tools,
// hooks, and middleware wired. filesRoot is empty in stdio mode, which makes
// relative workbook paths an error.
func bootstrap(cfg config.Config, filesRoot string) (*server.MCPServer, zerolog.Logger, func(), error) {
	logger, closeLog, err := logging.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("open log: %w", err)
	}

	limits := runtime.NewLimits(cfg.MaxConcurrentRequests, cfg.OperationTimeout)
	controller := runtime.NewController(limits)
	middleware := runtime.NewMiddleware(controller)
	writeFilter := registry.NewWriteToolFilterFromEnv()

	srv := server.NewMCPServer(
		"excel-mcp-server",
		version.Version(),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithHooks(telemetry.BuildHooks(logger)),
		server.WithToolHandlerMiddleware(middleware.ToolMiddleware),
		server.WithToolFilter(writeFilter.FilterTools),
	)

	deps := &registry.Deps{
		Resolver: paths.NewResolver(filesRoot),
		Logger:   logger,
	}
	registry.RegisterAll(srv, registry.New(), deps)

	logger.Info().
		Str("version", version.Version()).
		Str("files_root", filesRoot).
		Int("max_concurrent_requests", limits.MaxConcurrentRequests).
		Dur("operation_timeout", limits.OperationTimeout).
		Msg("server bootstrap configured")

	return srv, logger, closeLog, nil
}

func stdioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve MCP over stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			srv, logger, closeLog, err := bootstrap(cfg, "")
			if err != nil {
				return err
			}
			defer closeLog()

			logger.Info().Msg("serving over stdio")
			return server.ServeStdio(srv)
		},
	}
}

func sseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sse",
		Short: "Serve MCP over SSE with the file upload endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNetwork(func(srv *server.MCPServer) http.Handler {
				return server.NewSSEServer(srv, server.WithStaticBasePath("/mcp"))
			})
		},
	}
}

func streamableHTTPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streamable-http",
		Short: "Serve MCP over streamable HTTP with the file upload endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNetwork(func(srv *server.MCPServer) http.Handler {
				return server.NewStreamableHTTPServer(srv, server.WithEndpointPath("/mcp"))
			})
		},
	}
}

// runNetwork starts an HTTP listener serving both the MCP transport at /mcp
// and the auxiliary file endpoints, then shuts down on SIGINT/SIGTERM.
func runNetwork(transport func(*server.MCPServer) http.Handler) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := os.MkdirAll(cfg.ExcelFilesPath, 0o755); err != nil {
		return fmt.Errorf("create files root: %w", err)
	}

	srv, logger, closeLog, err := bootstrap(cfg, cfg.ExcelFilesPath)
	if err != nil {
		return err
	}
	defer closeLog()

	api := httpapi.New(paths.NewResolver(cfg.ExcelFilesPath), logger)
	router := api.Router(transport(srv), "/mcp")

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Int("port", cfg.Port).Str("files_root", cfg.ExcelFilesPath).Msg("http listener started")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
