package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// FormatForTerminal formats a diagnostic for terminal output
func (d Diagnostic) FormatForTerminal(noColor bool) string {
	var sb strings.Builder

	sevColor := severityColor(d.Severity)
	locationColor := color.New(color.FgCyan)
	if noColor {
		sevColor.DisableColor()
		locationColor.DisableColor()
	}

	sevColor.Fprintf(&sb, "%s[%s]", d.Severity.String(), d.Code)
	fmt.Fprintf(&sb, ": %s\n", d.Message)

	if d.Location.File != "" {
		locationColor.Fprint(&sb, "  -->")
		fmt.Fprintf(&sb, " %s\n", d.Location.File)
	}

	return sb.String()
}

// WriteTerminal writes every diagnostic followed by a one line summary
func WriteTerminal(w io.Writer, r Report, noColor bool) {
	for _, d := range r.Errors {
		fmt.Fprint(w, d.FormatForTerminal(noColor))
	}
	for _, d := range r.Warnings {
		fmt.Fprint(w, d.FormatForTerminal(noColor))
	}

	if r.Summary.TotalCount > 0 {
		fmt.Fprintf(w, "\n%d error(s), %d warning(s)\n", r.Summary.ErrorCount, r.Summary.WarningCount)
	}
}

func severityColor(s Severity) *color.Color {
	switch s {
	case Warning:
		return color.New(color.FgYellow, color.Bold)
	case Info:
		return color.New(color.FgBlue, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}
