package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind tags why a run failed.
type ErrorKind string

const (
	KindConfigMissing      ErrorKind = "config_missing"
	KindNoEligibleProvider ErrorKind = "no_eligible_provider"
	KindMissingEnvironment ErrorKind = "missing_environment"
	KindAgentExecution     ErrorKind = "agent_execution_failure"
)

var (
	// ErrConfigMissing matches runs that failed to load a config document.
	ErrConfigMissing = errors.New("required config document missing")
	// ErrNoEligibleProvider matches runs where no provider could be used.
	ErrNoEligibleProvider = errors.New("no eligible provider")
	// ErrMissingEnvironment matches runs missing required variables.
	ErrMissingEnvironment = errors.New("required environment variables missing")
	// ErrAgentExecution matches runs whose agent call failed.
	ErrAgentExecution = errors.New("agent execution failed")
)

var sentinels = map[ErrorKind]error{
	KindConfigMissing:      ErrConfigMissing,
	KindNoEligibleProvider: ErrNoEligibleProvider,
	KindMissingEnvironment: ErrMissingEnvironment,
	KindAgentExecution:     ErrAgentExecution,
}

// Error is the failure of a run. Missing holds the config files, credential
// variables or environment variables involved, depending on Kind.
type Error struct {
	Kind    ErrorKind
	Missing []string
	Err     error
}

func (e *Error) Error() string {
	msg := sentinels[e.Kind].Error()
	if len(e.Missing) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	return sentinels[e.Kind] == target
}
