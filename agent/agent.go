// Package agent is the boundary to the browsing agent. An Agent is built
// once per run from the composed task and the selected LLM client, and run
// exactly once.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/hairizuan-noorazman/attendance-agent/llm"
	"github.com/hairizuan-noorazman/attendance-agent/logger"
)

var (
	// ErrUnknownMode is returned for an unsupported agent mode.
	ErrUnknownMode = errors.New("unknown agent mode")
	// ErrRunnerFailed is returned when the runner exits non-zero or reports
	// failure.
	ErrRunnerFailed = errors.New("browser runner failed")
	// ErrNoRunnerOutput is returned when the runner prints no result document.
	ErrNoRunnerOutput = errors.New("browser runner produced no result")
)

// Agent performs one task.
type Agent interface {
	Run(ctx context.Context) (*Result, error)
}

// Factory builds an Agent for a task and client.
type Factory interface {
	New(task string, client llm.Client) (Agent, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(task string, client llm.Client) (Agent, error)

// New implements Factory.
func (f FactoryFunc) New(task string, client llm.Client) (Agent, error) {
	return f(task, client)
}

// NewFactory returns the factory for cfg.Mode.
func NewFactory(cfg Config, log logger.Logger) (Factory, error) {
	switch cfg.Mode {
	case ModeScript, "":
		return FactoryFunc(func(task string, client llm.Client) (Agent, error) {
			return NewScriptAgent(cfg, task, client, log), nil
		}), nil
	case ModePlan:
		return FactoryFunc(func(task string, client llm.Client) (Agent, error) {
			return NewPlanAgent(task, client, log), nil
		}), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, cfg.Mode)
	}
}
