package agent

import (
	"context"
	"os/exec"
	"testing"

	"github.com/hairizuan-noorazman/attendance-agent/llm"
	"github.com/hairizuan-noorazman/attendance-agent/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func shellAgent(script string) *ScriptAgent {
	cfg := Config{Mode: ModeScript, Command: "sh", Args: []string{"-c", script}, Headless: true}
	client := llm.NewFakeClient(llm.Spec{
		Provider:      "openai",
		Model:         "gpt-4o",
		Temperature:   0.5,
		APIKey:        "sk-test",
		CredentialEnv: "MY_OPENAI_KEY",
	}, "")
	return NewScriptAgent(cfg, "check attendance", client, logger.NewTestLogger())
}

func TestScriptAgent_Input(t *testing.T) {
	a := shellAgent("true")

	assert.Equal(t, RunnerInput{
		Task:          "check attendance",
		Provider:      "openai",
		Model:         "gpt-4o",
		Temperature:   0.5,
		CredentialEnv: "MY_OPENAI_KEY",
		Headless:      true,
	}, a.Input())
}

func TestScriptAgent_Run_ReceivesCredentialEnv(t *testing.T) {
	requireShell(t)
	a := shellAgent(`if grep -q '"credential_env":"MY_OPENAI_KEY"'; then echo '{"final_result":"credential named","success":true}'; else echo '{"final_result":"credential missing","success":false}'; fi`)

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "credential named", res.FinalResult)
}

func TestScriptAgent_Run_Success(t *testing.T) {
	requireShell(t)
	a := shellAgent(`cat >/dev/null; echo "INFO starting browser"; echo '{"final_result":"clocked in 09:00","success":true,"steps":7}'`)

	res, err := a.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "clocked in 09:00", res.FinalResult)
	assert.Equal(t, 7, res.Steps)
}

func TestScriptAgent_Run_Failures(t *testing.T) {
	requireShell(t)

	tests := []struct {
		name    string
		script  string
		wantErr error
	}{
		{name: "non-zero exit", script: `echo "chromium not found" >&2; exit 3`, wantErr: ErrRunnerFailed},
		{name: "reported failure", script: `echo '{"final_result":"login rejected","success":false,"errors":["bad password"]}'`, wantErr: ErrRunnerFailed},
		{name: "no output", script: `echo "nothing useful"`, wantErr: ErrNoRunnerOutput},
		{name: "broken json", script: `echo '{"final_result":'`, wantErr: ErrNoRunnerOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shellAgent(tt.script).Run(context.Background())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestScriptAgent_Run_StderrInError(t *testing.T) {
	requireShell(t)

	_, err := shellAgent(`echo "chromium not found" >&2; exit 1`).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chromium not found")
}

func TestScriptAgent_Run_MissingCommand(t *testing.T) {
	cfg := Config{Command: "definitely-not-a-real-runner-binary"}
	_, err := NewScriptAgent(cfg, "task", nil, logger.NewTestLogger()).Run(context.Background())
	assert.ErrorIs(t, err, ErrRunnerFailed)
}

func TestParseRunnerOutput(t *testing.T) {
	out, err := parseRunnerOutput([]byte("log line\n{\"final_result\":\"first\",\"success\":true}\nmore logs\n{\"final_result\":\"last\",\"success\":true}\n"))
	require.NoError(t, err)
	assert.Equal(t, "last", out.FinalResult)

	_, err = parseRunnerOutput(nil)
	assert.ErrorIs(t, err, ErrNoRunnerOutput)
}

func TestTail(t *testing.T) {
	assert.Equal(t, "abc", tail("  abc \n", 10))
	assert.Equal(t, "...cde", tail("abcde", 3))
}
