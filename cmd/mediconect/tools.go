package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/janmalik2800/Antigravity-web/internal/config"
	"github.com/janmalik2800/Antigravity-web/internal/database"
	"github.com/janmalik2800/Antigravity-web/internal/lib/email"
	"github.com/janmalik2800/Antigravity-web/internal/logger"
)

const migrateTimeout = time.Minute

func newMigrateCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the leads table (postgres driver)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cfg.LeadStore.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate needs lead_store.driver=%s, got %q", config.DriverPostgres, cfg.LeadStore.Driver)
			}

			log := logger.NewLogger(cfg.Observability)

			ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
			defer cancel()

			return database.Migrate(ctx, &log, cfg)
		},
	}
}

func newPreviewEmailCmd(load configLoader) *cobra.Command {
	var (
		name string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "preview-email",
		Short: "Render an email template with sample data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}

			tmpl := email.Template(name)
			data, ok := email.PreviewData[tmpl]
			if !ok {
				return fmt.Errorf("unknown template %q", name)
			}

			log := logger.NewLogger(cfg.Observability)
			client, err := email.NewClient(cfg, nil, &log)
			if err != nil {
				return err
			}

			html, err := client.RenderTemplate(tmpl, data)
			if err != nil {
				return err
			}

			if out == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), html)
				return err
			}
			return os.WriteFile(out, []byte(html), 0o644)
		},
	}

	cmd.Flags().StringVarP(&name, "template", "t", string(email.TemplateNewLead), "template to render")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the HTML to this file instead of stdout")
	return cmd
}
