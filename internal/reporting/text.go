// Package reporting renders a ValidationResult as human-readable text,
// JSON, or SARIF. Renderers only serialize the result; none of them reshape
// it.
package reporting

import (
	"fmt"
	"io"

	"github.com/triage-ai/mcplint/internal/engine"
	"github.com/triage-ai/mcplint/internal/rules"
)

// severityMarks are the glyphs used in text output, ordered most severe
// first for the summary line.
var severityOrder = []rules.Severity{
	rules.SeverityError,
	rules.SeverityWarning,
	rules.SeveritySuggestion,
}

var severityMark = map[rules.Severity]string{
	rules.SeverityError:      "✗",
	rules.SeverityWarning:    "!",
	rules.SeveritySuggestion: "·",
}

// WriteText renders the result for terminal consumption.
func WriteText(w io.Writer, result *engine.ValidationResult) error {
	for _, tr := range result.Tools {
		if len(tr.Issues) == 0 {
			fmt.Fprintf(w, "✓ %s\n", tr.Name)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", statusMark(tr.Valid), tr.Name)
		for _, issue := range tr.Issues {
			fmt.Fprintf(w, "  %s [%s] %s", severityMark[issue.Severity], issue.RuleID, issue.Message)
			if issue.Path != "" {
				fmt.Fprintf(w, " (%s)", issue.Path)
			}
			fmt.Fprintln(w)
			if issue.Suggestion != "" {
				fmt.Fprintf(w, "      ↳ %s\n", issue.Suggestion)
			}
		}
	}

	s := result.Summary
	fmt.Fprintf(w, "\n%d tools, %d valid", s.TotalTools, s.ValidTools)
	for _, sev := range severityOrder {
		if n := s.IssuesBySeverity[sev]; n > 0 {
			fmt.Fprintf(w, ", %d %ss", n, sev)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "maturity: %d/100 (%s) — %s\n",
		s.MaturityScore, s.MaturityLevel, engine.DescribeLevel(s.MaturityLevel))

	for _, d := range result.Metadata.Diagnostics {
		fmt.Fprintf(w, "note: rule %s failed on tool %s: %s\n", d.RuleID, d.ToolName, d.Message)
	}
	return nil
}

func statusMark(valid bool) string {
	if valid {
		return "✓"
	}
	return "✗"
}
