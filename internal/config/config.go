package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
)

const (
	DefaultWorkers        = 4
	DefaultTimeoutSeconds = 5
	DefaultRetries        = 3
)

// Config is built once at startup and passed by value; nothing reads it
// through globals while probes run.
type Config struct {
	Workers        int      `yaml:"workers" validate:"min=0"`         // in-flight probe cap, 0 = one goroutine per target
	TimeoutSeconds int      `yaml:"timeout_seconds" validate:"min=1"` // per attempt
	Retries        int      `yaml:"retries" validate:"min=0"`         // re-attempts after the first failure
	TargetsFile    string   `yaml:"targets_file"`                     // one URL per line
	Targets        []string `yaml:"targets" validate:"dive,required"`
	Output         string   `yaml:"output" validate:"oneof=text json"`
	LogDir         string   `yaml:"log_dir" validate:"required"`
	LogLevel       string   `yaml:"log_level" validate:"oneof=debug info warn error"`
	MetricsFile    string   `yaml:"metrics_file"` // Prometheus textfile, empty disables
	SlackWebhook   string   `yaml:"slack_webhook" validate:"omitempty,url"`
}

func Default() Config {
	return Config{
		Workers:        DefaultWorkers,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Retries:        DefaultRetries,
		Output:         "text",
		LogDir:         "logs",
		LogLevel:       "info",
	}
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// FromEnv overlays environment variables onto c. Unset variables keep the
// current value; malformed numbers are all reported together.
func FromEnv(c *Config) error {
	var errs error

	counts := []struct {
		env string
		dst *int
	}{
		{"SITECHECK_WORKERS", &c.Workers},
		{"SITECHECK_TIMEOUT_SECONDS", &c.TimeoutSeconds},
		{"SITECHECK_RETRIES", &c.Retries},
	}
	for _, f := range counts {
		n, err := ParseCount(f.env, os.Getenv(f.env), *f.dst)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		*f.dst = n
	}

	strs := []struct {
		env string
		dst *string
	}{
		{"SITECHECK_TARGETS_FILE", &c.TargetsFile},
		{"SITECHECK_OUTPUT", &c.Output},
		{"LOG_DIR", &c.LogDir},
		{"LOG_LEVEL", &c.LogLevel},
		{"METRICS_FILE", &c.MetricsFile},
		{"SLACK_WEBHOOK_URL", &c.SlackWebhook},
	}
	for _, f := range strs {
		if v := strings.TrimSpace(os.Getenv(f.env)); v != "" {
			*f.dst = v
		}
	}

	return errs
}

// ParseCount parses a non-negative integer setting. Blank input keeps def.
func ParseCount(name, raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a valid integer", name, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s: must not be negative, got %d", name, n)
	}
	return n, nil
}
