// Package main is the entry point for the sitecheck CLI.
//
// sitecheck probes a list of HTTP(S) targets concurrently, retries failures
// and prints one line per target once every probe has finished.
//
// Usage:
//
//	sitecheck check https://example.com https://example.org
//	sitecheck check -f websites.txt -w 8 -t 3 -r 2
//	sitecheck validate -c sitecheck.yaml
//	sitecheck version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set at build time via ldflags, e.g. go build -ldflags "-X main.version=1.0.0".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// newRootCmd builds a fresh command tree so tests never share parsed flags.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sitecheck",
		Short: "Concurrent website availability checker",
		Long: `sitecheck checks whether websites are up.

Each target gets one HTTP GET per attempt with a per-attempt timeout.
Failed attempts are retried immediately up to the retry budget, and the
number of probes in flight never exceeds the worker count.

Quick start:
  sitecheck check https://example.com
  sitecheck check -f websites.txt --workers 8 --timeout 3 --retries 2

Example config (sitecheck.yaml):
  workers: 8
  timeout_seconds: 3
  retries: 2
  targets_file: websites.txt`,
	}
	root.AddCommand(newCheckCmd(), newValidateCmd(), newVersionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "sitecheck %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}
