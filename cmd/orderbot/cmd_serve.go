package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/orderbot/internal/mcp"
	"github.com/dshills/orderbot/internal/storage"
)

var serveHTTPAddr string

// serveCmd runs the MCP server until interrupted
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the bot over MCP",
	Long: `Serve the bot as an MCP server on stdio.

With --http (or http_addr in the config) the streamable HTTP transport is
used instead; clients must then send "Authorization: Bearer <BOT_TOKEN>".`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "", "listen address for the HTTP transport (overrides http_addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveHTTPAddr != "" {
		cfg.HTTPAddr = serveHTTPAddr
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger.Info("orderbot starting",
		zap.String("version", version),
		zap.String("build_mode", storage.BuildMode),
		zap.String("driver", storage.DriverName),
	)

	server, err := mcp.NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	if err := server.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
