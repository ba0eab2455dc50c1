package orchestrator

import (
	"time"

	"github.com/hairizuan-noorazman/attendance-agent/agent"
)

// State is a step of the run state machine.
type State string

const (
	StateIdle                 State = "idle"
	StateConfigLoaded         State = "config_loaded"
	StateProviderReady        State = "provider_ready"
	StatePreconditionsChecked State = "preconditions_checked"
	StateRunning              State = "running"
	StateCompleted            State = "completed"
	StateFailed               State = "failed"
)

// Outcome describes a finished run.
type Outcome struct {
	RunID    string
	State    State
	Provider string
	Result   *agent.Result
	// Elapsed is the agent run duration; zero when the agent never started.
	Elapsed time.Duration
	// Total is the duration of the whole run.
	Total time.Duration
	Err   *Error
}

// Failed reports whether the run ended in StateFailed.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Kind returns the failure kind, or "" on success.
func (o Outcome) Kind() ErrorKind {
	if o.Err == nil {
		return ""
	}
	return o.Err.Kind
}

// ExitCode maps the outcome to a process exit code. Without strict every
// outcome exits 0.
func (o Outcome) ExitCode(strict bool) int {
	if strict && o.Failed() {
		return 1
	}
	return 0
}
