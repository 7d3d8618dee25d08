package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mirrorbook/internal/orchestrator"
	"github.com/spf13/cobra"
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Run the interactive booking wizard",
	Long: `Run the interactive booking wizard.

Choose your options step by step, fill in the event details and send the
request. After sending you can start a new reservation without leaving.

Configuration is loaded from multiple sources with the following precedence:
  CLI flags > Environment variables > Project config > Global config > Defaults

Project config: ./mirrorbook.yml
Global config: ~/.config/mirrorbook/mirrorbook.yml`,
	RunE: runBook,
}

func runBook(cmd *cobra.Command, args []string) error {
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

	url, err := orch.RunTUI(cmd.Context())
	if err != nil {
		return err
	}
	if url != "" {
		fmt.Fprintln(cmd.OutOrStdout(), url)
	}
	return nil
}
