package handoff

import (
	"context"
	"fmt"

	"github.com/mark3labs/mirrorbook/internal/hooks"
	"github.com/mark3labs/mirrorbook/internal/logger"
)

// HookOpener opens URLs with a shell command and then runs the post-submit
// hooks. A hooks file "open" entry takes precedence over Command.
type HookOpener struct {
	Command string
	WorkDir string
	Hooks   *hooks.Config
}

// NewHookOpener returns an opener for command, or the platform default when
// command is empty.
func NewHookOpener(command, workDir string, cfg *hooks.Config) *HookOpener {
	if command == "" {
		command = hooks.DefaultOpenCommand()
	}
	return &HookOpener{Command: command, WorkDir: workDir, Hooks: cfg}
}

func (o *HookOpener) Open(ctx context.Context, url string) error {
	vars := hooks.Variables{URL: url, Session: SessionFrom(ctx)}

	open := &hooks.HookConfig{Command: o.Command}
	if o.Hooks != nil && o.Hooks.Hooks.Open != nil && o.Hooks.Hooks.Open.Command != "" {
		open = o.Hooks.Hooks.Open
	}
	if _, err := hooks.Run(ctx, open, o.WorkDir, vars); err != nil {
		return fmt.Errorf("open command: %w", err)
	}

	if o.Hooks == nil || len(o.Hooks.Hooks.PostSubmit) == 0 {
		return nil
	}
	out, err := hooks.ExecuteAll(ctx, o.Hooks.Hooks.PostSubmit, o.WorkDir, vars)
	if err != nil {
		return fmt.Errorf("post_submit hooks: %w", err)
	}
	if out != "" {
		logger.Debug("post_submit output: %s", out)
	}
	return nil
}
