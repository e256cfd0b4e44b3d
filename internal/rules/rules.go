// Package rules defines the validation rule contract and the fixed set of
// rules the engine runs against MCP tool definitions.
package rules

import (
	"github.com/triage-ai/mcplint/internal/tooldef"
)

// Severity classifies how blocking an issue is.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Valid reports whether s is one of the known severity values.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeverityWarning, SeveritySuggestion:
		return true
	}
	return false
}

// Category groups rules by concern. Each category owns an ID prefix.
type Category string

const (
	CategorySchema       Category = "schema"
	CategoryNaming       Category = "naming"
	CategorySecurity     Category = "security"
	CategoryLLM          Category = "llm-compatibility"
	CategoryBestPractice Category = "best-practice"
)

// Issue is one finding reported by a rule for a tool.
type Issue struct {
	RuleID        string   `json:"ruleId"`
	Category      Category `json:"category"`
	Severity      Severity `json:"severity"`
	Message       string   `json:"message"`
	ToolName      string   `json:"toolName"`
	Path          string   `json:"path,omitempty"`
	Suggestion    string   `json:"suggestion,omitempty"`
	Documentation string   `json:"documentation,omitempty"`
}

// Setting is the resolved configuration entry for one rule.
type Setting struct {
	Enabled    bool
	Severity   Severity
	Overridden bool // Severity differs from the rule default
}

// Context is the read-only, run-scoped data every rule check receives.
// It is shared by reference across all rule invocations in a run and must
// never be mutated by a check.
type Context struct {
	// AllTools is the full tool set being validated, in input order.
	AllTools []tooldef.ToolDefinition

	// Index is the cross-tool schema fragment index, built once per run
	// before any rule executes. Nil when advanced analysis is off.
	Index *SchemaIndex

	// Setting is the resolved configuration entry for the rule currently
	// executing.
	Setting Setting
}

// CheckFunc inspects one tool and returns zero or more issues. It must be a
// pure function of its arguments: no mutation of the tool, no I/O, no
// dependence on sibling rule order. The rule itself is passed explicitly so
// checks can reach their own ID, severity, and documentation link.
type CheckFunc func(r *Rule, tool *tooldef.ToolDefinition, rctx *Context) []Issue

// Rule is one named, independent check. Immutable once registered.
type Rule struct {
	ID            string
	Category      Category
	Severity      Severity // default severity, before config overrides
	Description   string
	Documentation string
	Check         CheckFunc
}

// newIssue builds an Issue carrying the rule's constant fields. Severity is
// the rule default; the executor rewrites it when config overrides apply.
func (r *Rule) newIssue(toolName, path, message, suggestion string) Issue {
	return Issue{
		RuleID:        r.ID,
		Category:      r.Category,
		Severity:      r.Severity,
		Message:       message,
		ToolName:      toolName,
		Path:          path,
		Suggestion:    suggestion,
		Documentation: r.Documentation,
	}
}

const docBase = "https://github.com/triage-ai/mcplint/blob/main/docs/rules.md#"

// docURL returns the documentation anchor for a rule ID.
func docURL(id string) string {
	lower := make([]byte, len(id))
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		lower[i] = c
	}
	return docBase + string(lower)
}
