package hooks

// Config is the top-level configuration loaded from .mirrorbook.hooks.yml.
type Config struct {
	Version int         `yaml:"version"`
	Hooks   HooksConfig `yaml:"hooks"`
}

// HooksConfig contains all hook configurations.
type HooksConfig struct {
	// Open replaces the configured open command for the handoff URL.
	Open *HookConfig `yaml:"open"`
	// PostSubmit runs in order after the handoff URL was opened.
	PostSubmit []*HookConfig `yaml:"post_submit"`
}

// HookConfig defines a single hook.
type HookConfig struct {
	Command string `yaml:"command"`
	Timeout int    `yaml:"timeout"` // seconds, default 30
}

// DefaultTimeout is the default timeout for hook execution in seconds.
const DefaultTimeout = 30
