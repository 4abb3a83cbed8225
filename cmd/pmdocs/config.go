package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gorewood/pmdocs/internal/config"
	"github.com/gorewood/pmdocs/internal/output"
)

// newConfigCmd creates the config command.
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration pmdocs would run with, after merging defaults,
the config file, .env files, PMDOCS_* variables and flags. Credentials are
masked.

Config file lookup: --config, then ./.pmdocs.yaml, then ` + "`<config dir>/config.yaml`" + `
(PMDOCS_CONFIG_HOME or the user config directory).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			cfg := a.cfg.Redacted()
			if a.printer.IsJSON() {
				return a.printer.WriteJSON(cfg)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return a.fail(output.NewSystemErrorWithCause("encoding config", err))
			}
			if err := enc.Close(); err != nil {
				return a.fail(output.NewSystemErrorWithCause("encoding config", err))
			}
			if dir := config.Dir(); dir != "" {
				a.printer.Println("# config dir:", dir)
			}
			return nil
		},
	}
}
