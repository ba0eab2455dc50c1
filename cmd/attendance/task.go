package main

import (
	"fmt"

	"github.com/hairizuan-noorazman/attendance-agent/configstore"
	"github.com/hairizuan-noorazman/attendance-agent/environ"
	"github.com/hairizuan-noorazman/attendance-agent/logger"
	"github.com/hairizuan-noorazman/attendance-agent/task"
	"github.com/spf13/cobra"
)

func newTaskCmd() *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "task",
		Short: "Print the task the agent would receive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(flagConfigFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := loadEnvFile(cfg.EnvFile); err != nil {
				return err
			}

			log := logger.NewLogrusLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
			store := configstore.NewStore(cfg.ConfigDir, log)
			prompts, ok := store.LoadPrompts(cmd.Context())
			if !ok {
				return fmt.Errorf("failed to load %s from %s", configstore.PromptsFile, cfg.ConfigDir)
			}
			browser, _ := store.LoadBrowser(cmd.Context())

			env := environ.OS{}
			spec := task.Compose(prompts, browser, env)
			if !showSecrets {
				spec = task.Redact(spec, env)
			}
			fmt.Fprintln(cmd.OutOrStdout(), spec)

			if missing := task.MissingVariables(task.RequiredVariables(prompts, browser), env); len(missing) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "missing variables: %v\n", missing)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "do not mask the login password")
	return cmd
}
