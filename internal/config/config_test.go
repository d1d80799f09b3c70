package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFromEnv_ParsesAndDefaults(t *testing.T) {
	t.Setenv("SITECHECK_WORKERS", "7")
	t.Setenv("SITECHECK_TIMEOUT_SECONDS", "2")
	t.Setenv("SITECHECK_RETRIES", "0")
	t.Setenv("SITECHECK_TARGETS_FILE", "./sites.txt")
	t.Setenv("SITECHECK_OUTPUT", "json")
	t.Setenv("LOG_DIR", "./_testlogs")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("METRICS_FILE", "/tmp/sitecheck.prom")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.test/x")

	cfg := Default()
	if err := FromEnv(&cfg); err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Workers != 7 || cfg.TimeoutSeconds != 2 || cfg.Retries != 0 {
		t.Fatalf("numbers wrong: %+v", cfg)
	}
	if cfg.Timeout() != 2*time.Second {
		t.Fatalf("timeout wrong: %v", cfg.Timeout())
	}
	if cfg.TargetsFile != "./sites.txt" || cfg.Output != "json" || cfg.LogDir != "./_testlogs" || cfg.LogLevel != "debug" {
		t.Fatalf("strings wrong: %+v", cfg)
	}
	if cfg.MetricsFile == "" || cfg.SlackWebhook == "" {
		t.Fatalf("expected metrics file and webhook set: %+v", cfg)
	}
}

func TestFromEnv_UnsetKeepsDefaults(t *testing.T) {
	for _, k := range []string{"SITECHECK_WORKERS", "SITECHECK_TIMEOUT_SECONDS", "SITECHECK_RETRIES", "LOG_DIR"} {
		t.Setenv(k, "")
	}
	cfg := Default()
	if err := FromEnv(&cfg); err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Workers != DefaultWorkers || cfg.TimeoutSeconds != DefaultTimeoutSeconds || cfg.Retries != DefaultRetries {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if cfg.LogDir != "logs" {
		t.Fatalf("log dir default lost: %q", cfg.LogDir)
	}
}

func TestFromEnv_ReportsEveryMalformedNumber(t *testing.T) {
	t.Setenv("SITECHECK_WORKERS", "four")
	t.Setenv("SITECHECK_TIMEOUT_SECONDS", "5")
	t.Setenv("SITECHECK_RETRIES", "-1")

	cfg := Default()
	err := FromEnv(&cfg)
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "SITECHECK_WORKERS") || !strings.Contains(msg, "SITECHECK_RETRIES") {
		t.Fatalf("want both bad variables reported, got %q", msg)
	}
	if cfg.Workers != DefaultWorkers {
		t.Fatalf("bad input must not overwrite value, got %d", cfg.Workers)
	}
}

func TestParseCount(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"", 9, false},
		{"   ", 9, false},
		{"0", 0, false},
		{" 12 ", 12, false},
		{"1.5", 0, true},
		{"abc", 0, true},
		{"-2", 0, true},
	}
	for _, c := range cases {
		got, err := ParseCount("x", c.in, 9)
		if (err != nil) != c.wantErr {
			t.Fatalf("ParseCount(%q) err=%v wantErr=%v", c.in, err, c.wantErr)
		}
		if !c.wantErr && got != c.want {
			t.Fatalf("ParseCount(%q)=%d want %d", c.in, got, c.want)
		}
	}
}

func TestLoad_YAMLOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitecheck.yaml")
	content := `
workers: 10
retries: 1
targets:
  - https://example.com
  - https://example.org
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Workers != 10 || cfg.Retries != 1 {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds || cfg.Output != "text" {
		t.Fatalf("defaults not kept: %+v", cfg)
	}
	if len(cfg.Targets) != 2 || cfg.Targets[1] != "https://example.org" {
		t.Fatalf("targets wrong: %v", cfg.Targets)
	}
}

func TestParse_EmptyDocumentGivesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Workers != DefaultWorkers {
		t.Fatalf("want defaults, got %+v", cfg)
	}
}

func TestParse_RejectsUnknownKeysAndBadNumbers(t *testing.T) {
	if _, err := Parse(strings.NewReader("wokers: 3\n")); err == nil {
		t.Fatalf("expected unknown key error")
	}
	if _, err := Parse(strings.NewReader("workers: many\n")); err == nil {
		t.Fatalf("expected type error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}

	unbounded := Default()
	unbounded.Workers = 0
	unbounded.Retries = 0
	if err := unbounded.Validate(); err != nil {
		t.Fatalf("zero workers and retries are allowed: %v", err)
	}

	bad := Default()
	bad.TimeoutSeconds = 0
	bad.Output = "xml"
	bad.SlackWebhook = "not a url"
	bad.Targets = []string{"https://ok", ""}
	err := bad.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"TimeoutSeconds", "Output", "SlackWebhook", "Targets[1]"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("want %s in error, got:\n%v", want, err)
		}
	}
}

func TestPrompt_DefaultsAndValues(t *testing.T) {
	cfg := Default()
	var out bytes.Buffer
	in := strings.NewReader("\n10\n0\n")
	if err := Prompt(in, &out, &cfg); err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if cfg.Workers != DefaultWorkers || cfg.TimeoutSeconds != 10 || cfg.Retries != 0 {
		t.Fatalf("unexpected config after prompt: %+v", cfg)
	}
	if strings.Count(out.String(), "Please enter") != 3 {
		t.Fatalf("want three prompts, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "default 4 workers") {
		t.Fatalf("prompt should show the default, got:\n%s", out.String())
	}
}

func TestPrompt_EOFKeepsDefaults(t *testing.T) {
	cfg := Default()
	if err := Prompt(strings.NewReader(""), &bytes.Buffer{}, &cfg); err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if cfg.Workers != DefaultWorkers || cfg.TimeoutSeconds != DefaultTimeoutSeconds || cfg.Retries != DefaultRetries {
		t.Fatalf("defaults changed: %+v", cfg)
	}
}

func TestPrompt_InvalidNumberIsFatal(t *testing.T) {
	cfg := Default()
	err := Prompt(strings.NewReader("8\nfive\n2\n"), &bytes.Buffer{}, &cfg)
	if err == nil {
		t.Fatalf("expected error for non-integer timeout")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Fatalf("error should name the setting: %v", err)
	}
}
