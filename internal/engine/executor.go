package engine

import (
	"fmt"

	"github.com/triage-ai/mcplint/internal/rules"
	"github.com/triage-ai/mcplint/internal/tooldef"
)

// execute runs every enabled rule against every tool. Tools are visited in
// input order and rules in registration order, so the produced issue lists
// are byte-for-byte reproducible. A rule that panics for one tool is
// isolated: it yields a diagnostic, never aborts the run, and never affects
// other (rule, tool) pairs.
func execute(
	reg *rules.Registry,
	tools []tooldef.ToolDefinition,
	effective map[string]rules.Setting,
	base *rules.Context,
) (perTool [][]rules.Issue, diags []Diagnostic) {
	var enabled []rules.Rule
	for _, r := range reg.All() {
		if effective[r.ID].Enabled {
			enabled = append(enabled, r)
		}
	}

	perTool = make([][]rules.Issue, len(tools))
	for i := range tools {
		tool := &tools[i]
		var issues []rules.Issue
		for j := range enabled {
			r := &enabled[j]
			setting := effective[r.ID]

			// Shallow copy so the rule can read its own resolved setting
			// without the shared context ever being written.
			rctx := *base
			rctx.Setting = setting

			found, diag := checkSafely(r, tool, &rctx)
			if diag != nil {
				diags = append(diags, *diag)
				continue
			}
			for _, issue := range found {
				if issue.ToolName == "" {
					issue.ToolName = tool.Name
				}
				if setting.Overridden {
					issue.Severity = setting.Severity
				}
				issues = append(issues, issue)
			}
		}
		perTool[i] = issues
	}
	return perTool, diags
}

// checkSafely invokes one rule for one tool, converting a panic into a
// diagnostic at (rule, tool) granularity.
func checkSafely(r *rules.Rule, tool *tooldef.ToolDefinition, rctx *rules.Context) (issues []rules.Issue, diag *Diagnostic) {
	defer func() {
		if rec := recover(); rec != nil {
			issues = nil
			diag = &Diagnostic{
				RuleID:   r.ID,
				ToolName: tool.Name,
				Message:  fmt.Sprintf("rule panicked: %v", rec),
			}
		}
	}()
	return r.Check(r, tool, rctx), nil
}
