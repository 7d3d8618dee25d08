package main

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/compose"
	"github.com/mark3labs/mirrorbook/internal/orchestrator"
	"github.com/mark3labs/mirrorbook/internal/session"
	"github.com/mark3labs/mirrorbook/internal/wizard"
	"github.com/spf13/cobra"
)

var composeFlags struct {
	options   map[catalog.Category]*string
	fields    map[session.Field]*string
	open      bool
	highlight bool
	markdown  bool
}

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Compose a booking request without the wizard",
	Long: `Compose a booking request from flags and print the message and its
handoff URL.

Options accept an id or a (possibly misspelled) name in the active language:
  mirrorbook compose --frame "royal gold" --rope r1 --carpet c2 --mount m1 \
    --name Dana --email dana@example.com --date 2025-03-05

With --open the request is handed off exactly like the wizard's send button,
which requires every step to be complete.`,
	RunE: runCompose,
}

func init() {
	f := composeCmd.Flags()
	composeFlags.options = make(map[catalog.Category]*string, len(catalog.Categories))
	for _, c := range catalog.Categories {
		composeFlags.options[c] = f.String(string(c), "", fmt.Sprintf("%s option id or name", c))
	}
	composeFlags.fields = make(map[session.Field]*string, len(session.Fields))
	for _, field := range session.Fields {
		name := strings.ReplaceAll(string(field), "_", "-")
		composeFlags.fields[field] = f.String(name, "", fmt.Sprintf("Contact %s", strings.ReplaceAll(string(field), "_", " ")))
	}
	f.BoolVar(&composeFlags.open, "open", false, "Hand the request off with the open command")
	f.BoolVar(&composeFlags.highlight, "highlight", false, "Colour the message for the terminal")
	f.BoolVar(&composeFlags.markdown, "markdown", false, "Print the message as Markdown")
}

// applyComposeFlags fills ctrl from flag values. Options are resolved by id
// or fuzzy name.
func applyComposeFlags(ctrl *wizard.Controller, options map[catalog.Category]string, fields map[session.Field]string) error {
	for _, c := range catalog.Categories {
		query := options[c]
		if query == "" {
			continue
		}
		opt, ok := ctrl.Catalog().Match(c, query, ctrl.Lang())
		if !ok {
			return fmt.Errorf("no %s matches %q", c, query)
		}
		if err := ctrl.SelectOption(c, opt.ID); err != nil {
			return err
		}
	}
	for _, field := range session.Fields {
		value, ok := fields[field]
		if !ok || value == "" {
			continue
		}
		if field == session.FieldDate {
			if _, err := session.ParseDate(value); err != nil {
				return fmt.Errorf("--date: %w", err)
			}
		}
		if err := ctrl.SetField(field, value); err != nil {
			return fmt.Errorf("--%s: %w", strings.ReplaceAll(string(field), "_", "-"), err)
		}
	}
	return nil
}

// missingSteps lists what blocks a submission, step by step.
func missingSteps(ctrl *wizard.Controller) []string {
	var missing []string
	for step := 0; step < wizard.StepCount(); step++ {
		missing = append(missing, ctrl.Missing(step)...)
	}
	return missing
}

func runCompose(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Journal = false

	orch, err := orchestrator.New(orchestrator.Config{App: cfg})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	if err := orch.Start(); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer func() { _ = orch.Stop() }()

	options := make(map[catalog.Category]string, len(composeFlags.options))
	for c, v := range composeFlags.options {
		options[c] = *v
	}
	fields := make(map[session.Field]string, len(composeFlags.fields))
	for f, v := range composeFlags.fields {
		fields[f] = *v
	}

	ctrl := orch.NewController()
	if err := applyComposeFlags(ctrl, options, fields); err != nil {
		return err
	}

	message := compose.ComposeSession(ctrl.Session(), ctrl.Catalog())
	out := cmd.OutOrStdout()
	switch {
	case composeFlags.highlight:
		colored, err := compose.Highlight(message)
		if err != nil {
			return fmt.Errorf("highlighting message: %w", err)
		}
		fmt.Fprintln(out, colored)
	case composeFlags.markdown:
		fmt.Fprintln(out, compose.Markdown(message))
	default:
		fmt.Fprintln(out, message)
	}
	fmt.Fprintln(out)

	if !composeFlags.open {
		fmt.Fprintln(out, orch.Dispatcher().BuildURL(message))
		return nil
	}

	if missing := missingSteps(ctrl); len(missing) > 0 {
		return fmt.Errorf("cannot send yet, missing: %s", strings.Join(missing, ", "))
	}
	fmt.Fprintln(out, orch.Dispatcher().Submit(cmd.Context(), ctrl, message))
	return nil
}
