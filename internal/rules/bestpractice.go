package rules

import (
	"fmt"
	"strings"

	"github.com/triage-ai/mcplint/internal/tooldef"
)

// readVerbs name tools that only observe state.
var readVerbs = map[string]bool{
	"get": true, "list": true, "read": true, "fetch": true,
	"search": true, "find": true, "query": true, "describe": true,
	"lookup": true, "view": true, "check": true,
}

func bestPracticeRules() []Rule {
	rules := []Rule{
		{
			ID:          "BPR001",
			Category:    CategoryBestPractice,
			Severity:    SeveritySuggestion,
			Description: "Tools should carry usage annotations",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				if tool.Annotations != nil {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/annotations",
					"tool has no annotations",
					"add annotations (title, readOnlyHint, destructiveHint) so hosts can present the tool properly")}
			},
		},
		{
			ID:          "BPR002",
			Category:    CategoryBestPractice,
			Severity:    SeveritySuggestion,
			Description: "Annotations should include a human-readable title",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				if tool.Annotations == nil || strings.TrimSpace(tool.Annotations.Title) != "" {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/annotations/title",
					"annotations are present but have no title",
					"set a display title, e.g. \"Get User\"")}
			},
		},
		{
			ID:          "BPR003",
			Category:    CategoryBestPractice,
			Severity:    SeveritySuggestion,
			Description: "Read-only tools should set readOnlyHint",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				if !readVerbs[leadingWord(tool.Name)] {
					return nil
				}
				if tool.Annotations != nil && tool.Annotations.ReadOnlyHint != nil {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/annotations/readOnlyHint",
					fmt.Sprintf("tool %q looks read-only but does not set readOnlyHint", tool.Name),
					"set \"readOnlyHint\": true so hosts can skip confirmation")}
			},
		},
		{
			ID:          "BPR004",
			Category:    CategoryBestPractice,
			Severity:    SeveritySuggestion,
			Description: "Parameter schemas should not be duplicated across tools",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, rctx *Context) []Issue {
				if rctx.Index == nil {
					return nil
				}
				var issues []Issue
				VisitOwnFragments(tool, func(path string, node map[string]any) {
					var elsewhere []string
					for _, loc := range rctx.Index.Lookup(node) {
						if loc.ToolName == tool.Name {
							continue
						}
						elsewhere = append(elsewhere, loc.ToolName+loc.Path)
					}
					if len(elsewhere) == 0 {
						return
					}
					issues = append(issues, r.newIssue(tool.Name, path,
						fmt.Sprintf("parameter schema duplicated in %s", strings.Join(elsewhere, ", ")),
						"extract the shared shape into one tool or a $defs reference"))
				})
				return issues
			},
		},
		{
			ID:          "BPR005",
			Category:    CategoryBestPractice,
			Severity:    SeveritySuggestion,
			Description: "Schemas with properties should state which are required",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				if len(properties(tool.InputSchema)) == 0 {
					return nil
				}
				if _, set := tool.InputSchema["required"]; set {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/inputSchema/required",
					"schema declares properties but no required list",
					"list required parameters explicitly, even if the list is empty")}
			},
		},
		{
			ID:          "BPR006",
			Category:    CategoryBestPractice,
			Severity:    SeverityWarning,
			Description: "Parameter defaults must be members of their enum",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				var issues []Issue
				props := properties(tool.InputSchema)
				for _, name := range sortedKeys(props) {
					sub, ok := asMap(props[name])
					if !ok {
						continue
					}
					def, hasDefault := sub["default"]
					enum, isEnum := sub["enum"].([]any)
					if !hasDefault || !isEnum {
						continue
					}
					member := false
					for _, v := range enum {
						if canonicalize(v) == canonicalize(def) {
							member = true
							break
						}
					}
					if !member {
						issues = append(issues, r.newIssue(tool.Name,
							"/inputSchema/properties/"+name+"/default",
							fmt.Sprintf("default %v for parameter %q is not in its enum", def, name),
							"pick a default from the enum values"))
					}
				}
				return issues
			},
		},
	}
	for i := range rules {
		rules[i].Documentation = docURL(rules[i].ID)
	}
	return rules
}
