// Package engine runs the rule set against a tool set and produces the
// aggregated validation result. The compute path is synchronous and
// deterministic: identical input and configuration always produce identical
// issues and summary.
package engine

import (
	"time"

	"github.com/triage-ai/mcplint/internal/rules"
	"github.com/triage-ai/mcplint/internal/tooldef"
)

// Summary is the aggregate view of one validation run.
type Summary struct {
	TotalTools       int                    `json:"totalTools"`
	ValidTools       int                    `json:"validTools"`
	IssuesBySeverity map[rules.Severity]int `json:"issuesBySeverity"`
	IssuesByCategory map[rules.Category]int `json:"issuesByCategory"`
	MaturityScore    int                    `json:"maturityScore"`
	MaturityLevel    MaturityLevel          `json:"maturityLevel"`
}

// ToolResult is the per-tool slice of the run result.
type ToolResult struct {
	Name   string                 `json:"name"`
	Valid  bool                   `json:"valid"`
	Tool   tooldef.ToolDefinition `json:"tool"`
	Issues []rules.Issue          `json:"issues"`
}

// Diagnostic records a rule invocation that failed unexpectedly. It is not a
// validation issue: it describes the run, not the tool.
type Diagnostic struct {
	RuleID   string `json:"ruleId"`
	ToolName string `json:"toolName"`
	Message  string `json:"message"`
}

// Metadata describes the run itself.
type Metadata struct {
	RunID            string       `json:"runId"`
	EngineVersion    string       `json:"engineVersion"`
	SpecVersion      string       `json:"specVersion"`
	Timestamp        time.Time    `json:"timestamp"`
	DurationMs       float64      `json:"durationMs"`
	ConfigHash       string       `json:"configHash"`
	AdvancedAnalysis bool         `json:"advancedAnalysis"`
	Diagnostics      []Diagnostic `json:"diagnostics,omitempty"`
}

// ValidationResult is the single hand-off shape consumed by every reporter
// and transport wrapper. Renderers serialize it; none of them reshape it.
type ValidationResult struct {
	Valid    bool          `json:"valid"`
	Summary  Summary       `json:"summary"`
	Issues   []rules.Issue `json:"issues"`
	Tools    []ToolResult  `json:"tools"`
	Metadata Metadata      `json:"metadata"`
}
