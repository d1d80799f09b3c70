package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/sitecheck/internal/config"
	"github.com/hamed0406/sitecheck/internal/dispatch"
	"github.com/hamed0406/sitecheck/internal/domain"
	"github.com/hamed0406/sitecheck/internal/logging"
	"github.com/hamed0406/sitecheck/internal/metrics"
	"github.com/hamed0406/sitecheck/internal/notify"
	"github.com/hamed0406/sitecheck/internal/probe"
	"github.com/hamed0406/sitecheck/internal/report"
	"github.com/hamed0406/sitecheck/internal/targets"
)

const notifyTimeout = 15 * time.Second

var errNoTargets = errors.New("no targets: pass URLs as arguments, use --targets or set targets in the config")

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [url...]",
		Short: "Check every target once and print the results",
		Long: `Check every target once and print one result per target.

Targets come from the arguments, the --targets file and the config file's
targets/targets_file, in that order of listing: file, config, arguments.
Duplicates are checked once per occurrence.

Settings resolve as defaults < config file < environment < flags <
interactive answers. Down targets do not change the exit code; only
configuration errors exit 1.

Environment:
  SITECHECK_WORKERS, SITECHECK_TIMEOUT_SECONDS, SITECHECK_RETRIES,
  SITECHECK_TARGETS_FILE, SITECHECK_OUTPUT, LOG_DIR, LOG_LEVEL,
  METRICS_FILE, SLACK_WEBHOOK_URL`,
		SilenceUsage: true,
		RunE:         runCheck,
	}

	f := cmd.Flags()
	f.StringP("config", "c", "", "path to a YAML config file")
	f.StringP("targets", "f", "", "file with one URL per line")
	f.IntP("workers", "w", config.DefaultWorkers, "maximum probes in flight (0 = one per target)")
	f.IntP("timeout", "t", config.DefaultTimeoutSeconds, "per-attempt timeout in seconds")
	f.IntP("retries", "r", config.DefaultRetries, "re-attempts after a failed probe")
	f.BoolP("interactive", "i", false, "prompt for workers, timeout and retries")
	f.StringP("output", "o", "text", "output format: text or json")
	f.String("log-dir", "logs", "directory for the rotating JSON log")
	f.String("log-level", "info", "log level: debug, info, warn, error")
	f.String("metrics-file", "", "write Prometheus metrics to this textfile after the run")
	f.String("slack-webhook", "", "post a summary here when any target is down")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ts, err := resolveTargets(cfg, args)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prober := probe.NewHTTPProber(cfg.Timeout())
	defer prober.Close()

	rec := metrics.New()
	d := dispatch.New(logger, prober, dispatch.Options{
		Retries:     cfg.Retries,
		Concurrency: cfg.Workers,
	}, rec)

	results := d.Run(ctx, ts)

	if err := report.Write(cmd.OutOrStdout(), cfg.Output, results); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if cfg.MetricsFile != "" {
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Warn("metrics_write_failed", zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
	}

	alert(ctx, logger, notify.Multi{slackOrNil(cfg.SlackWebhook)}, results)
	return nil
}

// resolveConfig layers defaults, the config file, the environment, explicit
// flags and finally the interactive prompts, then validates the result.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	f := cmd.Flags()

	cfg := config.Default()
	if path, _ := f.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if err := config.FromEnv(&cfg); err != nil {
		return config.Config{}, fmt.Errorf("environment: %w", err)
	}

	ints := map[string]*int{
		"workers": &cfg.Workers,
		"timeout": &cfg.TimeoutSeconds,
		"retries": &cfg.Retries,
	}
	for name, dst := range ints {
		if f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}
	strs := map[string]*string{
		"targets":       &cfg.TargetsFile,
		"output":        &cfg.Output,
		"log-dir":       &cfg.LogDir,
		"log-level":     &cfg.LogLevel,
		"metrics-file":  &cfg.MetricsFile,
		"slack-webhook": &cfg.SlackWebhook,
	}
	for name, dst := range strs {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}

	if interactive, _ := f.GetBool("interactive"); interactive {
		if err := config.Prompt(cmd.InOrStdin(), cmd.OutOrStdout(), &cfg); err != nil {
			return config.Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func resolveTargets(cfg config.Config, args []string) ([]domain.Target, error) {
	var out []domain.Target
	if cfg.TargetsFile != "" {
		fromFile, err := targets.Load(cfg.TargetsFile)
		if err != nil {
			return nil, err
		}
		out = append(out, fromFile...)
	}
	out = append(out, targets.FromStrings(cfg.Targets)...)
	out = append(out, targets.FromStrings(args)...)
	if len(out) == 0 {
		return nil, errNoTargets
	}
	return out, nil
}

// slackOrNil avoids storing a typed nil *Slack in the Notifier interface.
func slackOrNil(webhook string) notify.Notifier {
	if s := notify.NewSlack(webhook); s != nil {
		return s
	}
	return nil
}

// alert posts one summary when at least one target is down. Delivery
// problems are logged and never change the outcome of the run.
func alert(ctx context.Context, logger *zap.Logger, n notify.Multi, results []domain.ProbeResult) {
	if !n.Enabled() {
		return
	}
	title, text, down := report.DownSummary(results)
	if !down {
		return
	}
	// The run may have been interrupted; the summary still goes out.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := n.Send(sendCtx, title, text); err != nil {
		logger.Warn("notify_failed", zap.Error(err))
		return
	}
	logger.Info("notify_sent", zap.String("title", title))
}
