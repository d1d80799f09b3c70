package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/hamed0406/sitecheck/internal/config"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a config file and its targets without probing",
		Long: `Validate a sitecheck configuration without sending any request.

The YAML is parsed with unknown keys rejected, the environment is applied
on top and every field is validated. Targets that do not look like http(s)
URLs are reported as warnings; they would be checked and reported down.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  sitecheck validate -c sitecheck.yaml`,
		SilenceUsage: true,
		RunE:         runValidate,
	}
	cmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := config.FromEnv(&cfg); err != nil {
		return fmt.Errorf("invalid config: environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	ts, err := resolveTargets(cfg, nil)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, t := range ts {
		if u, err := url.Parse(t.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			fmt.Fprintf(out, "⚠ %s is not an http(s) URL and will be reported down\n", t.URL)
		}
	}

	workers := fmt.Sprint(cfg.Workers)
	if cfg.Workers == 0 {
		workers = "unbounded"
	}
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Workers: %s\n", workers)
	fmt.Fprintf(out, "  Timeout: %s\n", cfg.Timeout())
	fmt.Fprintf(out, "  Retries: %d\n", cfg.Retries)
	fmt.Fprintf(out, "  Targets: %d\n", len(ts))
	return nil
}
