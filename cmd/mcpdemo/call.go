package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/mcpcore/sdk/mcpclient"
	"github.com/mcpcore/sdk/schema"
	"github.com/mcpcore/sdk/transport"
	"github.com/spf13/cobra"
)

var callServerPath string

var callCmd = &cobra.Command{
	Use:   "call <tool> <json-arguments>",
	Short: "Spawn an MCP server and call one tool on it",
	Args:  cobra.ExactArgs(2),
	RunE:  runCall,
}

func init() {
	callCmd.Flags().StringVar(&callServerPath, "server", "", "Path to the server binary to spawn (default: this binary, 'serve')")
	rootCmd.AddCommand(callCmd)
}

// runCall spawns a child server process and wires its stdin/stdout into
// a stdio transport — the one sliver of process-spawning this demo
// needs, deliberately without the supervisor machinery (retry/backoff,
// health checks, credential refresh) a production process manager would
// carry.
func runCall(cmd *cobra.Command, args []string) error {
	toolName, rawArgs := args[0], args[1]
	if !json.Valid([]byte(rawArgs)) {
		return fmt.Errorf("arguments must be valid JSON: %q", rawArgs)
	}

	path := callServerPath
	childArgs := []string{"serve"}
	if path == "" {
		selfPath, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locate mcpdemo binary: %w (pass --server explicitly)", err)
		}
		path = selfPath
	}

	child := exec.Command(path, childArgs...)
	stdin, err := child.StdinPipe()
	if err != nil {
		return fmt.Errorf("child stdin pipe: %w", err)
	}
	stdout, err := child.StdoutPipe()
	if err != nil {
		return fmt.Errorf("child stdout pipe: %w", err)
	}
	if err := child.Start(); err != nil {
		return fmt.Errorf("start child server: %w", err)
	}
	defer func() {
		_ = stdin.Close()
		_ = child.Wait()
	}()

	t := transport.NewStdio(stdin, stdout)
	client := mcpclient.New(t, mcpclient.Options{ClientInfo: schema.Implementation{Name: "mcpdemo-call", Version: version}})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	go client.Run(ctx)

	if _, err := client.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	result, err := client.CallTool(ctx, toolName, json.RawMessage(rawArgs))
	if err != nil {
		return fmt.Errorf("call tool: %w", err)
	}
	for _, block := range result.Content {
		fmt.Println(block.Text())
	}
	if result.IsError {
		return fmt.Errorf("tool %q returned an error result", toolName)
	}
	return nil
}
