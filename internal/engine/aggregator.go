package engine

import (
	"github.com/triage-ai/mcplint/internal/rules"
	"github.com/triage-ai/mcplint/internal/tooldef"
)

// aggregate tallies issues by severity and category and computes per-tool
// and overall validity. Every issue belongs to exactly one tool, one
// severity bucket, and one category bucket, so
// sum(bySeverity) == sum(byCategory) == len(flat issue list).
func aggregate(tools []tooldef.ToolDefinition, perTool [][]rules.Issue) (Summary, []ToolResult, []rules.Issue) {
	summary := Summary{
		TotalTools:       len(tools),
		IssuesBySeverity: make(map[rules.Severity]int),
		IssuesByCategory: make(map[rules.Category]int),
	}

	toolResults := make([]ToolResult, len(tools))
	flat := []rules.Issue{}

	for i := range tools {
		issues := perTool[i]
		valid := true
		for _, issue := range issues {
			summary.IssuesBySeverity[issue.Severity]++
			summary.IssuesByCategory[issue.Category]++
			if issue.Severity == rules.SeverityError {
				valid = false
			}
		}
		if valid {
			summary.ValidTools++
		}
		if issues == nil {
			issues = []rules.Issue{}
		}
		toolResults[i] = ToolResult{
			Name:   tools[i].Name,
			Valid:  valid,
			Tool:   tools[i],
			Issues: issues,
		}
		flat = append(flat, issues...)
	}

	return summary, toolResults, flat
}
