package main

import (
	"fmt"

	"github.com/hairizuan-noorazman/attendance-agent/agent"
	"github.com/hairizuan-noorazman/attendance-agent/clock"
	"github.com/hairizuan-noorazman/attendance-agent/configstore"
	"github.com/hairizuan-noorazman/attendance-agent/environ"
	"github.com/hairizuan-noorazman/attendance-agent/llm"
	"github.com/hairizuan-noorazman/attendance-agent/logger"
	"github.com/hairizuan-noorazman/attendance-agent/orchestrator"
	"github.com/hairizuan-noorazman/attendance-agent/provider"
	"github.com/spf13/cobra"
)

// exitError carries a non-zero exit code for a failed check.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return fmt.Sprintf("check failed (exit %d): %v", e.code, e.err)
}

func (e *exitError) Unwrap() error {
	return e.err
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the attendance check once",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(flagConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return err
	}

	log := logger.NewLogrusLogger(cfg.Log.Level, cfg.Log.Format, cmd.OutOrStdout())
	log.Debug(cmd.Context(), "starting attendance check", map[string]interface{}{
		"version":    Version,
		"commit":     Commit,
		"config_dir": cfg.ConfigDir,
	})

	orch := orchestrator.New(
		configstore.NewStore(cfg.ConfigDir, log),
		provider.NewSelector(llm.DefaultRegistry(), log),
		agent.NewFactory,
		environ.OS{},
		clock.Real{},
		log,
	)

	outcome := orch.Run(cmd.Context())
	if code := outcome.ExitCode(cfg.Strict); code != 0 {
		return &exitError{code: code, err: outcome.Err}
	}
	return nil
}
