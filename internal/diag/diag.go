// Package diag provides the diagnostics that validations report.
package diag

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Severity ranks a diagnostic.
type Severity int8

const (
	Info    Severity = 1
	Warning Severity = 2
	Error   Severity = 3
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "INFO"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	}
	return fmt.Sprintf("SEVERITY(%d)", int8(s))
}

// Named is implemented by model parts that diagnostics refer to.
type Named interface {
	QualifiedName() string
}

// Diagnostic is one finding about one part of the model.
type Diagnostic struct {
	Severity Severity
	// Code is stable across releases, see package sys.
	Code    string
	Message string
	// Object is the model part the diagnostic refers to.
	Object Named
	// Property names the offending property of the object, if any.
	Property string
}

func (d Diagnostic) String() string {
	ref := ""
	if d.Object != nil {
		ref = d.Object.QualifiedName()
		if d.Property != "" {
			ref += "." + d.Property
		}
		ref = " [" + ref + "]"
	}
	return fmt.Sprintf("%s %s: %s%s", d.Severity, d.Code, d.Message, ref)
}

// List is an ordered sink of diagnostics. The zero value is ready to use.
type List struct {
	entries []Diagnostic
}

// Add appends a diagnostic.
func (l *List) Add(d Diagnostic) {
	l.entries = append(l.entries, d)
}

// Errorf appends an error diagnostic.
func (l *List) Errorf(code string, object Named, property string, format string, args ...any) {
	l.Add(Diagnostic{Severity: Error, Code: code, Message: fmt.Sprintf(format, args...), Object: object, Property: property})
}

// Warnf appends a warning diagnostic.
func (l *List) Warnf(code string, object Named, property string, format string, args ...any) {
	l.Add(Diagnostic{Severity: Warning, Code: code, Message: fmt.Sprintf(format, args...), Object: object, Property: property})
}

// Merge appends all of the other list's diagnostics.
func (l *List) Merge(other List) {
	l.entries = append(l.entries, other.entries...)
}

// Entries returns the diagnostics in the order they were added.
func (l List) Entries() []Diagnostic {
	return slices.Clone(l.entries)
}

// Len returns the number of diagnostics.
func (l List) Len() int {
	return len(l.entries)
}

// IsEmpty is true for lists without diagnostics.
func (l List) IsEmpty() bool {
	return len(l.entries) == 0
}

// MaxSeverity returns the highest severity in the list, or zero if empty.
func (l List) MaxSeverity() (max Severity) {
	for _, d := range l.entries {
		if d.Severity > max {
			max = d.Severity
		}
	}
	return
}

// HasErrors is true if any diagnostic has error severity.
func (l List) HasErrors() bool {
	return l.MaxSeverity() >= Error
}

// ContainsCode is true if any diagnostic has the code.
func (l List) ContainsCode(code string) bool {
	return l.ByCode(code).Len() > 0
}

// ByCode returns the diagnostics with the code.
func (l List) ByCode(code string) (matches List) {
	for _, d := range l.entries {
		if d.Code == code {
			matches.Add(d)
		}
	}
	return
}

// For returns the diagnostics referring to the object.
func (l List) For(object Named) (matches List) {
	for _, d := range l.entries {
		if d.Object == object {
			matches.Add(d)
		}
	}
	return
}
