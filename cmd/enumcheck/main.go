// Package main provides the enumcheck binary, which validates enumeration
// project documents and prints one line per diagnostic.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dball/enumcheck/pkg/enumcheck"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "enumcheck"
)

// errFailed is returned when a document has errors, or warnings with
// --fail-on-warning. The diagnostics have already been printed.
var errFailed = errors.New("validation failed")

func main() {
	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Enumeration validator",
		Long:          `Enumcheck validates the enum types and enum contents of project documents.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	var failOnWarning bool
	validateCmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate project documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			if failOnWarning {
				cfg.FailOnWarning = true
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			level, err := cfg.Level()
			if err != nil {
				return err
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return run(cmd.OutOrStdout(), cfg, args)
		},
	}
	validateCmd.Flags().BoolVar(&failOnWarning, "fail-on-warning", false, "Exit with an error status on warnings")
	cmd.AddCommand(validateCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func loadConfig(path string) (*enumcheck.Config, error) {
	if path == "" {
		return enumcheck.DefaultConfig(), nil
	}
	return enumcheck.LoadConfig(path)
}

// run validates every file, prefixing diagnostics with the file name when
// there is more than one.
func run(out io.Writer, cfg *enumcheck.Config, files []string) error {
	failed := false
	for _, file := range files {
		session, err := enumcheck.Open(file, cfg)
		if err != nil {
			return fmt.Errorf("open %s: %w", file, err)
		}
		report := session.Validate()
		session.Close()
		for _, d := range report.Diagnostics {
			if len(files) > 1 {
				fmt.Fprintf(out, "%s: %s\n", file, d)
			} else {
				fmt.Fprintln(out, d)
			}
		}
		slog.Info("Validated project document",
			"file", file,
			"errors", report.Count(enumcheck.Error),
			"warnings", report.Count(enumcheck.Warning))
		if report.Failed() {
			failed = true
		}
	}
	if failed {
		return errFailed
	}
	return nil
}
