package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is the application version (set during build).
	Version = "dev"

	// Commit is the git commit hash (set during build).
	Commit = "unknown"

	// BuildDate is the build date (set during build).
	BuildDate = "unknown"
)

var (
	flagConfigFile string
	flagConfigDir  string
	flagEnvFile    string
	flagLogLevel   string
	flagLogFormat  string
	flagStrict     bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "attendance",
		Short: "Check an attendance portal with an LLM-driven browser agent",
		Long: `Loads the model registry, prompt catalog, message catalog and browser settings,
selects the first usable LLM provider and runs the browsing agent once against the
attendance portal configured through TARGET_URL, LOGIN_EMAIL, LOGIN_PASSWORD and EXPECTED_NAME.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCheck,
	}

	rootCmd.PersistentFlags().StringVarP(&flagConfigFile, "config", "c", "", "application config file (env: ATTENDANCE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "directory holding the YAML documents (env: ATTENDANCE_CONFIG_DIR)")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "dotenv file to load before running (env: ATTENDANCE_ENV_FILE)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: console or json")
	rootCmd.PersistentFlags().BoolVar(&flagStrict, "strict", false, "exit non-zero when the check fails")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "attendance %s (commit: %s, built: %s)\n", Version, Commit, BuildDate)
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newProvidersCmd())
	rootCmd.AddCommand(newTaskCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
