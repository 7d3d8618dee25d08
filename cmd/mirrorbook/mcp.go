package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mirrorbook/internal/orchestrator"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve a booking session over MCP",
	Long: `Serve a booking session over the Model Context Protocol.

An agent can list the catalog, pick options, fill in the contact form, search
locations and send the request with the same rules the wizard enforces. The
server listens on 127.0.0.1 and runs until interrupted.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	orch, err := orchestrator.New(orchestrator.Config{App: cfg})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	if err := orch.Start(); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer func() {
		if err := orch.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "Error during shutdown: %v\n", err)
		}
	}()

	if _, err := orch.ServeMCP(cmd.Context(), cfg.MCP.Port); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening at %s\n", orch.MCPURL())

	<-cmd.Context().Done()
	fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down gracefully...")
	return nil
}
