package main

import (
	"fmt"
	"strconv"

	"github.com/hairizuan-noorazman/attendance-agent/configstore"
	"github.com/hairizuan-noorazman/attendance-agent/environ"
	"github.com/hairizuan-noorazman/attendance-agent/logger"
	"github.com/hairizuan-noorazman/attendance-agent/provider"
	"github.com/spf13/cobra"
)

func newProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List providers in selection order and whether each is usable",
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
			doc, ok := store.LoadModels(cmd.Context())
			if !ok {
				return fmt.Errorf("failed to load %s from %s", configstore.ModelsFile, cfg.ConfigDir)
			}
			reg := doc.Registry()

			status := make(map[string]provider.Status)
			for _, a := range provider.Check(reg, environ.OS{}) {
				status[a.Provider] = a.Status
			}

			rows := make([][]string, 0, reg.Len())
			for _, name := range provider.CandidateOrder(reg) {
				d, _ := reg.Get(name)
				def := ""
				if name == reg.DefaultProvider() {
					def = "*"
				}
				rows = append(rows, []string{
					name + def,
					string(d.Kind),
					d.Model,
					strconv.FormatFloat(d.Temperature, 'f', -1, 64),
					d.CredentialEnv,
					string(status[name]),
				})
			}
			printTable(cmd.OutOrStdout(), []string{"PROVIDER", "KIND", "MODEL", "TEMP", "CREDENTIAL", "STATUS"}, rows)
			return nil
		},
	}
}
