package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcpcore/sdk/mcpserver"
	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/transport"
	"github.com/spf13/cobra"
)

var serveLogLevel string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an MCP server over stdio, exposing a single echo tool",
	Long: `Run mcpdemo as an MCP server, intended to be spawned by an MCP client over
its stdin/stdout:

  {
    "mcpdemo": {
      "command": "mcpdemo",
      "args": ["serve"]
    }
  }`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveLogLevel, "log-level", "l", "info", "Log level (debug, info, error)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger(serveLogLevel)
	logger.Printf("mcpdemo serve starting (version=%s)", version)

	srv := mcpserver.New(transport.NewStdio(os.Stdout, os.Stdin), mcpserver.Options{
		Logger:           logger,
		ServerInfo:       schema.Implementation{Name: "mcpdemo", Version: version},
		ToolsListChanged: true,
	})
	srv.RegisterTool(
		schema.Tool{Name: "echo", Description: "returns its arguments as text"},
		func(ctx context.Context, arguments json.RawMessage) (*schema.CallToolResult, error) {
			return schema.TextToolResult(string(arguments)), nil
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("received signal %v, shutting down", sig)
		cancel()
	}()

	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Println("mcpdemo serve exiting")
	return nil
}

func newLogger(level string) *log.Logger {
	switch level {
	case "debug", "info":
		return log.New(os.Stderr, "", log.LstdFlags)
	case "error":
		return log.New(os.Stderr, "", log.LstdFlags)
	default:
		return log.New(os.Stderr, "", 0)
	}
}
