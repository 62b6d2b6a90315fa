package diag

import (
	"encoding/json"
)

// Report is the JSON structure emitted for a set of diagnostics
type Report struct {
	Status   string       `json:"status"`
	Files    int          `json:"files"`
	Errors   []Diagnostic `json:"errors"`
	Warnings []Diagnostic `json:"warnings"`
	Summary  Summary      `json:"summary"`
}

// Summary contains error and warning counts
type Summary struct {
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
	TotalCount   int `json:"total_count"`
}

// NewReport builds a report for diags gathered while checking the given number of files
func NewReport(files int, diags []Diagnostic) Report {
	errorList := []Diagnostic{}
	warningList := []Diagnostic{}

	for _, d := range diags {
		if d.IsError() {
			errorList = append(errorList, d)
		} else if d.IsWarning() {
			warningList = append(warningList, d)
		}
	}

	status := "success"
	if len(errorList) > 0 {
		status = "error"
	} else if len(warningList) > 0 {
		status = "warning"
	}

	return Report{
		Status:   status,
		Files:    files,
		Errors:   errorList,
		Warnings: warningList,
		Summary: Summary{
			ErrorCount:   len(errorList),
			WarningCount: len(warningList),
			TotalCount:   len(diags),
		},
	}
}

// HasErrors reports whether any diagnostic in the report is an error
func (r Report) HasErrors() bool {
	return r.Summary.ErrorCount > 0
}

// JSON formats the report as indented JSON
func (r Report) JSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
