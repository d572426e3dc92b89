package main

import (
	"github.com/spf13/cobra"
	"github.com/tejashwikalptaru/coverflow/internal/app"
)

// commandContext carries the persistent flags to the subcommands.
type commandContext struct {
	configPath string
	logLevel   string
}

// loadConfig reads the configuration and applies the --log-level override.
func (c *commandContext) loadConfig() (app.Config, error) {
	cfg, err := app.LoadConfig(c.configPath)
	if err != nil {
		return app.Config{}, err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
		if err := cfg.Validate(); err != nil {
			return app.Config{}, err
		}
	}
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "coverflow",
		Short:         "A circular cover-flow carousel",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configPath, "config", "c", "", "Configuration file path (default ./coverflow.yaml)")
	rootCmd.PersistentFlags().StringVarP(&ctx.logLevel, "log-level", "l", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newSimulateCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
