package diagnostic

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"reflex/internal/common"
)

// Diagnostic codes reported while explaining a member copy.
const (
	CodeAssign          = "assign"           // value is assigned as is
	CodeConvert         = "convert"          // value goes through the converter
	CodeLossy           = "lossy"            // conversion may lose precision or fail at run time
	CodeMissing         = "missing"          // target has no member of that name
	CodeIncompatible    = "incompatible"     // member types cannot be bridged
	CodeNotWritable     = "not_writable"     // target member cannot be written
	CodeInvalidArgument = "invalid_argument" // source or target is not usable
	CodeUnmatchedTarget = "unmatched_target" // target member receives no value
)

// Diagnostics holds all diagnostic information from an explanation.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// TypePair identifies the source and target types, "src -> dst".
	TypePair string
	// FieldPath identifies which member this relates to (if any).
	FieldPath string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add files diag under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

func (d *Diagnostics) AddError(code, message, typePair, fieldPath string) {
	d.Add(Diagnostic{Severity: DiagnosticError, Code: code, Message: message, TypePair: typePair, FieldPath: fieldPath})
}

func (d *Diagnostics) AddWarning(code, message, typePair, fieldPath string, suggestions ...string) {
	d.Add(Diagnostic{
		Severity:    DiagnosticWarning,
		Code:        code,
		Message:     message,
		TypePair:    typePair,
		FieldPath:   fieldPath,
		Suggestions: suggestions,
	})
}

func (d *Diagnostics) AddInfo(code, message, typePair, fieldPath string) {
	d.Add(Diagnostic{Severity: DiagnosticInfo, Code: code, Message: message, TypePair: typePair, FieldPath: fieldPath})
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// ByCode returns every diagnostic with the given code, most severe first.
func (d *Diagnostics) ByCode(code string) []Diagnostic {
	var res []Diagnostic
	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range group {
			if diag.Code == code {
				res = append(res, diag)
			}
		}
	}

	return res
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// WriteTo renders one line per diagnostic, most severe first.
func (d *Diagnostics) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, group := range [][]Diagnostic{d.Errors, d.Warnings, d.Infos} {
		for _, diag := range group {
			n, err := fmt.Fprintf(w, "%-7s %s\n", diag.Severity, diag)
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}

	return total, nil
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.TypePair != "" {
		prefix = append(prefix, "["+d.TypePair+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
