package agent

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/hairizuan-noorazman/attendance-agent/llm"
	"github.com/hairizuan-noorazman/attendance-agent/logger"
)

// maxStderrTail bounds how much runner stderr is carried into errors.
const maxStderrTail = 2048

// ScriptAgent runs the browser runner as a subprocess. The runner receives a
// RunnerInput on stdin, reads the provider credential from the inherited
// variable named by credential_env and prints a RunnerOutput as its last JSON
// line on stdout.
type ScriptAgent struct {
	config Config
	task   string
	client llm.Client
	logger logger.Logger
}

// NewScriptAgent creates a ScriptAgent.
func NewScriptAgent(cfg Config, task string, client llm.Client, log logger.Logger) *ScriptAgent {
	return &ScriptAgent{
		config: cfg,
		task:   task,
		client: client,
		logger: log,
	}
}

// Input returns the document sent to the runner.
func (a *ScriptAgent) Input() RunnerInput {
	in := RunnerInput{
		Task:     a.task,
		Headless: a.config.Headless,
	}
	if a.client != nil {
		in.Provider = a.client.Provider()
		in.Model = a.client.Model()
		in.Temperature = a.client.Temperature()
		in.CredentialEnv = a.client.CredentialEnv()
	}
	return in
}

// Run starts the runner and waits for it to exit.
func (a *ScriptAgent) Run(ctx context.Context) (*Result, error) {
	payload, err := json.Marshal(a.Input())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal runner input: %w", err)
	}

	cmd := exec.CommandContext(ctx, a.config.Command, a.config.Args...)
	cmd.Dir = a.config.WorkDir
	cmd.Stdin = bytes.NewReader(payload)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	a.logger.Debug(ctx, "starting browser runner", map[string]interface{}{
		"command":  a.config.Command,
		"args":     strings.Join(a.config.Args, " "),
		"headless": a.config.Headless,
	})

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrRunnerFailed, err, tail(stderr.String(), maxStderrTail))
	}

	out, err := parseRunnerOutput(stdout.Bytes())
	if err != nil {
		return nil, err
	}
	result := &Result{
		FinalResult: SanitizeResult(out.FinalResult),
		Success:     out.Success,
		Steps:       out.Steps,
		Errors:      out.Errors,
	}
	if !out.Success {
		return result, fmt.Errorf("%w: %s", ErrRunnerFailed, result.String())
	}
	return result, nil
}

// parseRunnerOutput decodes the last JSON object line of stdout. Earlier
// lines are runner logs.
func parseRunnerOutput(stdout []byte) (*RunnerOutput, error) {
	var last string
	scanner := bufio.NewScanner(bytes.NewReader(stdout))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "{") {
			last = line
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runner output: %w", err)
	}
	if last == "" {
		return nil, ErrNoRunnerOutput
	}

	var out RunnerOutput
	if err := json.Unmarshal([]byte(last), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoRunnerOutput, err)
	}
	return &out, nil
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
