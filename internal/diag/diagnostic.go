// Package diag turns source intake failures into diagnostics that can be
// printed for a terminal or emitted as JSON for tooling.
package diag

import (
	"errors"
	"fmt"

	"github.com/corsac-lang/corsac/internal/source"
)

// Diagnostic codes
// S001-S099: source intake
const (
	CodeUnreadableDir   = "S001"
	CodeUnreadableFile  = "S002"
	CodeInvalidEncoding = "S003"
	CodeNoSourceFiles   = "S004"
	CodeInternal        = "S099"
)

// Location identifies where a diagnostic applies
type Location struct {
	File string `json:"file"`
}

// Diagnostic is a single problem found while gathering sources
type Diagnostic struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Location Location `json:"location"`
}

// Error implements the error interface
func (d Diagnostic) Error() string {
	if d.Location.File == "" {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Location.File, d.Code, d.Message)
}

// IsError returns true if the diagnostic is at Error or Fatal severity
func (d Diagnostic) IsError() bool {
	return d.Severity == Error || d.Severity == Fatal
}

// IsWarning returns true if the diagnostic is at Warning severity
func (d Diagnostic) IsWarning() bool {
	return d.Severity == Warning
}

// FromError classifies err. Traversal and read failures get their own codes;
// anything else is reported as an internal error.
func FromError(err error) Diagnostic {
	var te *source.TraversalError
	var re *source.ReadError

	switch {
	case errors.As(err, &re) && errors.Is(re.Err, source.ErrInvalidEncoding):
		return Diagnostic{
			Code:     CodeInvalidEncoding,
			Message:  "file is not valid UTF-8 text",
			Severity: Error,
			Location: Location{File: re.Path},
		}
	case errors.As(err, &re):
		return Diagnostic{
			Code:     CodeUnreadableFile,
			Message:  fmt.Sprintf("cannot read file: %v", re.Err),
			Severity: Error,
			Location: Location{File: re.Path},
		}
	case errors.As(err, &te):
		return Diagnostic{
			Code:     CodeUnreadableDir,
			Message:  fmt.Sprintf("cannot read directory: %v", te.Err),
			Severity: Error,
			Location: Location{File: te.Path},
		}
	default:
		return Diagnostic{
			Code:     CodeInternal,
			Message:  err.Error(),
			Severity: Error,
		}
	}
}

// FromErrors expands joined errors and classifies each one. A nil error
// yields no diagnostics.
func FromErrors(err error) []Diagnostic {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var diags []Diagnostic
		for _, e := range joined.Unwrap() {
			diags = append(diags, FromErrors(e)...)
		}
		return diags
	}

	return []Diagnostic{FromError(err)}
}

// NoSourceFiles warns that a scan of dir found nothing to compile
func NoSourceFiles(dir, suffix string) Diagnostic {
	return Diagnostic{
		Code:     CodeNoSourceFiles,
		Message:  fmt.Sprintf("no %s files found", suffix),
		Severity: Warning,
		Location: Location{File: dir},
	}
}
