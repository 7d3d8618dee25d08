package main

import (
	"context"
	"os"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/mirrorbook/internal/logger"
	"github.com/mark3labs/mirrorbook/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▀▄▀█ █ █▀█ █▀█ █▀█ █▀█ █▄▄ █▀█ █▀█ █▄▀"
	logoText2 = "█ ▀ █ █ █▀▄ █▀▄ █▄█ █▀▄ █▄█ █▄█ █▄█ █ █"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mirrorbook",
	Short: "Book a photo mirror for your event from the terminal",
	RunE:  runBook,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewChampagne()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Accent)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Accent)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

mirrorbook walks you through booking a photo mirror: pick a frame, the red
carpet setup and a photo mount, fill in your event details, and the finished
request is handed to WhatsApp as a pre-filled message.

Running mirrorbook with no command starts the booking wizard.`

	addConfigFlags(rootCmd)

	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(mcpCmd)
}
