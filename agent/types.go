package agent

import (
	"fmt"
	"strings"
)

// RunnerInput is the JSON document sent to the browser runner via stdin.
// CredentialEnv names the inherited environment variable holding the
// provider's API key.
type RunnerInput struct {
	Task          string  `json:"task"`
	Provider      string  `json:"provider"`
	Model         string  `json:"model"`
	Temperature   float64 `json:"temperature"`
	CredentialEnv string  `json:"credential_env"`
	Headless      bool    `json:"headless"`
}

// RunnerOutput is the JSON document the browser runner prints as its last
// stdout line.
type RunnerOutput struct {
	FinalResult string   `json:"final_result"`
	Success     bool     `json:"success"`
	Steps       int      `json:"steps"`
	Errors      []string `json:"errors,omitempty"`
}

// Result is what an agent run produced.
type Result struct {
	FinalResult string
	Success     bool
	Steps       int
	Errors      []string
}

// String renders the result for the run log.
func (r *Result) String() string {
	if r == nil {
		return "<no result>"
	}
	var b strings.Builder
	b.WriteString(r.FinalResult)
	if r.Steps > 0 {
		fmt.Fprintf(&b, " (steps: %d)", r.Steps)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, " (errors: %s)", strings.Join(r.Errors, "; "))
	}
	return b.String()
}
