// Command mediconect runs the Mediconect site backend and its maintenance tasks.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/janmalik2800/Antigravity-web/internal/config"
	"github.com/janmalik2800/Antigravity-web/internal/lib/utils"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "mediconect",
		Short:         "Mediconect site backend: contact form leads and newsletter signups",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "optional YAML config file; environment variables take precedence")

	loadConfig := func() (*config.Config, error) {
		return config.Load(configPath)
	}

	root.AddCommand(
		newServeCmd(loadConfig),
		newMigrateCmd(loadConfig),
		newPreviewEmailCmd(loadConfig),
		newConfigCmd(loadConfig),
	)
	return root
}

type configLoader func() (*config.Config, error)

func newConfigCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration with secrets masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := utils.PrintJSON(out, cfg.Redacted()); err != nil {
				return err
			}

			if missing := cfg.MissingLeadSecrets(); len(missing) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "contact form not configured, missing: %v\n", missing)
			}
			if missing := cfg.MissingNewsletterSecrets(); len(missing) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "newsletter not configured, missing: %v\n", missing)
			}
			return nil
		},
	}
}
