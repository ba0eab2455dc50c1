package agent

import (
	"github.com/hairizuan-noorazman/attendance-agent/configstore"
)

// Mode selects the agent implementation.
type Mode string

const (
	// ModeScript drives a browser through the runner subprocess.
	ModeScript Mode = "script"
	// ModePlan asks the model for a browsing plan without opening a browser.
	ModePlan Mode = "plan"
)

// Runner defaults.
const (
	DefaultCommand    = "python3"
	DefaultRunnerPath = "runner/browser_agent.py"
)

// Config holds the agent launch configuration.
type Config struct {
	Mode     Mode
	Command  string
	Args     []string
	WorkDir  string
	Headless bool
}

// ConfigFromSettings derives the agent configuration from browser settings,
// filling defaults for anything unset.
func ConfigFromSettings(b *configstore.BrowserSettings) Config {
	cfg := Config{
		Mode:     ModeScript,
		Command:  DefaultCommand,
		Args:     []string{DefaultRunnerPath},
		Headless: b.Headless(),
	}
	if b == nil {
		return cfg
	}
	if b.Agent.Mode != "" {
		cfg.Mode = Mode(b.Agent.Mode)
	}
	if b.Agent.Command != "" {
		cfg.Command = b.Agent.Command
		cfg.Args = b.Agent.Args
	} else if len(b.Agent.Args) > 0 {
		cfg.Args = b.Agent.Args
	}
	cfg.WorkDir = b.Agent.WorkDir
	return cfg
}
