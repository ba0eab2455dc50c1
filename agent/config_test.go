package agent

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hairizuan-noorazman/attendance-agent/configstore"
	"github.com/hairizuan-noorazman/attendance-agent/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The repository root holds config/ and runner/.
const repoRoot = ".."

func TestShippedBrowserSettings_RunnerExists(t *testing.T) {
	store := configstore.NewStore(filepath.Join(repoRoot, "config"), logger.NewTestLogger())
	settings, ok := store.LoadBrowser(context.Background())
	require.True(t, ok)

	cfg := ConfigFromSettings(settings)
	require.Equal(t, ModeScript, cfg.Mode)
	require.NotEmpty(t, cfg.Args)

	script := filepath.Join(repoRoot, cfg.WorkDir, cfg.Args[0])
	data, err := os.ReadFile(script)
	require.NoError(t, err, "runner %s must ship with the module", cfg.Args[0])

	src := string(data)
	for _, field := range []string{"credential_env", "final_result", "success", "steps", "errors"} {
		assert.True(t, strings.Contains(src, `"`+field+`"`), "runner does not handle %q", field)
	}
}

func TestDefaultRunnerPathExists(t *testing.T) {
	_, err := os.Stat(filepath.Join(repoRoot, DefaultRunnerPath))
	assert.NoError(t, err)
}
