// Package hooks runs user-configured shell commands around the booking
// handoff: the command that opens the messaging URL and any post-submit hooks.
package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mark3labs/mirrorbook/internal/logger"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the hooks configuration file.
const ConfigFileName = ".mirrorbook.hooks.yml"

// LoadConfig loads the hooks configuration from workDir.
// A missing file is not an error: hooks are optional and nil is returned.
func LoadConfig(workDir string) (*Config, error) {
	configPath := filepath.Join(workDir, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no hooks config at %s", configPath)
			return nil, nil
		}
		return nil, fmt.Errorf("reading hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing hooks config: %w", err)
	}

	logger.Debug("loaded hooks config from %s (version %d)", configPath, cfg.Version)
	return &cfg, nil
}

// DefaultOpenCommand returns the platform command that opens {{url}} in the
// default handler.
func DefaultOpenCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open {{url}}"
	case "windows":
		return `start "" {{url}}`
	default:
		return "xdg-open {{url}}"
	}
}

// Variables holds the values substituted into hook commands.
type Variables struct {
	URL     string
	Session string
}

// ErrTimeout is returned by Run when a hook exceeds its timeout.
var ErrTimeout = errors.New("hook timed out")

// Run executes a hook and reports any failure as an error, including a
// non-zero exit. Output is returned either way.
func Run(ctx context.Context, hook *HookConfig, workDir string, vars Variables) (string, error) {
	if hook == nil || hook.Command == "" {
		return "", nil
	}

	command := expandVariables(hook.Command, vars)
	logger.Debug("executing hook command: %s", command)

	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	cmd := shellCommand(execCtx, command)
	cmd.Dir = workDir
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := stdout.String()
	if stderr.Len() > 0 {
		output += "\n[stderr]\n" + stderr.String()
	}

	if ctx.Err() != nil {
		return output, ctx.Err()
	}
	if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
		return output, fmt.Errorf("%w after %ds: %s", ErrTimeout, timeout, command)
	}
	if err != nil {
		return output, fmt.Errorf("hook %q: %w", command, err)
	}
	return output, nil
}

// Execute runs a hook and degrades gracefully: failures and timeouts are
// logged and folded into the returned output. Only context cancellation is
// returned as an error.
func Execute(ctx context.Context, hook *HookConfig, workDir string, vars Variables) (string, error) {
	output, err := Run(ctx, hook, workDir, vars)
	if err == nil {
		return output, nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	logger.Warn("%v", err)
	if errors.Is(err, ErrTimeout) {
		return fmt.Sprintf("[%v]\npartial output:\n%s", err, output), nil
	}
	return fmt.Sprintf("[%v]\n%s", err, output), nil
}

// ExecuteAll runs hooks in order with Execute and concatenates their output.
func ExecuteAll(ctx context.Context, hooks []*HookConfig, workDir string, vars Variables) (string, error) {
	var outputs []string
	for _, h := range hooks {
		out, err := Execute(ctx, h, workDir, vars)
		if err != nil {
			return strings.Join(outputs, "\n"), err
		}
		if out != "" {
			outputs = append(outputs, out)
		}
	}
	return strings.Join(outputs, "\n"), nil
}

func shellCommand(ctx context.Context, command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", command)
	}
	return exec.CommandContext(ctx, "sh", "-c", command)
}

// expandVariables replaces {{variable}} placeholders with shell-quoted values.
func expandVariables(command string, vars Variables) string {
	return strings.NewReplacer(
		"{{url}}", quote(vars.URL),
		"{{session}}", quote(vars.Session),
	).Replace(command)
}

func quote(s string) string {
	if runtime.GOOS == "windows" {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
