package errors

import (
	"fmt"
	"strings"
)

// FormatError returns a human-readable error message for terminal
// output.
func FormatError(e *QueryError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s at position %d\n", severityIcon(e.Severity), categoryDisplayName(e.Category), e.Pos)

	if e.Query != "" {
		fmt.Fprintf(&b, "  %s\n", e.Query)
		fmt.Fprintf(&b, "  %s^\n", strings.Repeat(" ", e.Pos))
	}

	fmt.Fprintf(&b, "  %s\n", e.Message)

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n%s\n", e.Suggestion)
	}

	if len(e.Examples) > 0 {
		b.WriteString("\nExamples:\n")
		for i, example := range e.Examples {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, example)
		}
	}

	fmt.Fprintf(&b, "\n[%s]\n", e.Code)

	return b.String()
}

// FormatErrorList returns a formatted string of every error in the
// list.
func FormatErrorList(errors ErrorList) string {
	if len(errors) == 0 {
		return "no errors"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d diagnostic(s)\n\n", len(errors))

	for i, err := range errors {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(err.Format())
	}

	return b.String()
}

// FormatCompact returns a compact one-line error format suitable for
// log lines.
func FormatCompact(e *QueryError) string {
	return fmt.Sprintf("pos %d: %s: %s [%s]", e.Pos, e.Severity, e.Message, e.Code)
}

func severityIcon(severity ErrorSeverity) string {
	switch severity {
	case SeverityError:
		return "error:"
	case SeverityWarning:
		return "warning:"
	default:
		return "note:"
	}
}

func categoryDisplayName(category ErrorCategory) string {
	switch category {
	case CategoryLex:
		return "lexical error"
	case CategorySyntax:
		return "syntax error"
	case CategoryRepair:
		return "repaired defect"
	default:
		return "query error"
	}
}
