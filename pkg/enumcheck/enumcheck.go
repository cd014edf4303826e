// Package enumcheck contains the public types and functions for validating
// enumeration projects.
package enumcheck

import (
	"fmt"
	"log/slog"

	"github.com/dball/enumcheck/internal/config"
	"github.com/dball/enumcheck/internal/diag"
	"github.com/dball/enumcheck/internal/loader"
	"github.com/dball/enumcheck/internal/model"
	"github.com/dball/enumcheck/internal/validate"
)

// Config configures sessions.
type Config = config.Config

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// LoadConfig reads a YAML configuration file over the defaults.
func LoadConfig(path string) (*Config, error) {
	return config.LoadFromFile(path)
}

// Project is the enumeration model of a project document.
type Project = model.Project

type (
	Diagnostic = diag.Diagnostic
	Severity   = diag.Severity
)

const (
	Info    = diag.Info
	Warning = diag.Warning
	Error   = diag.Error
)

// Session is an open project document with the validator and caches kept
// across validations.
type Session struct {
	config    Config
	project   *model.Project
	validator *validate.Validator
}

// Open loads the project document at path. A nil config uses the defaults.
func Open(path string, cfg *Config) (session *Session, err error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err = cfg.Validate(); err != nil {
		err = fmt.Errorf("invalid config: %w", err)
		return
	}
	locale, err := cfg.Locale()
	if err != nil {
		return
	}
	logger := slog.Default()
	project, err := loader.NewLoader(logger).LoadFile(path, locale)
	if err != nil {
		return
	}
	session = &Session{
		config:    *cfg,
		project:   project,
		validator: validate.New(project, logger, cfg.BTreeDegree),
	}
	return
}

// Project returns the session's project. Changes to the project are seen by
// the next validation.
func (session *Session) Project() *Project {
	return session.project
}

// Validate reports the problems of every part of the project.
func (session *Session) Validate() (report Report) {
	list := session.validator.ValidateProject()
	report.Diagnostics = list.Entries()
	report.failOnWarning = session.config.FailOnWarning
	return
}

// Close releases the session's caches.
func (session *Session) Close() {
	session.validator.Close()
}

// Report is the outcome of validating a project.
type Report struct {
	// Diagnostics are ordered by enum type, then enum content, in document order.
	Diagnostics   []Diagnostic
	failOnWarning bool
}

// Count returns the number of diagnostics with the severity.
func (report Report) Count(severity Severity) (count int) {
	for _, d := range report.Diagnostics {
		if d.Severity == severity {
			count++
		}
	}
	return
}

func (report Report) HasErrors() bool   { return report.Count(Error) > 0 }
func (report Report) HasWarnings() bool { return report.Count(Warning) > 0 }

// Failed is true if the report has errors, or warnings when the session was
// configured to fail on them.
func (report Report) Failed() bool {
	return report.HasErrors() || report.failOnWarning && report.HasWarnings()
}
