package rules

import (
	"fmt"
	"strings"

	"github.com/triage-ai/mcplint/internal/tooldef"
)

const (
	minDescriptionLength = 20
	maxDescriptionLength = 1024
	maxParameterCount    = 10
	maxToolSetSize       = 40
)

// usageCuePhrases mark a description that tells the model when to pick the
// tool, not just what it does.
var usageCuePhrases = []string{
	"use this", "use when", "when the user", "when you need",
	"use it when", "call this when", "for example",
}

func llmCompatRules() []Rule {
	rules := []Rule{
		{
			ID:          "LLM001",
			Category:    CategoryLLM,
			Severity:    SeverityError,
			Description: "Tool must have a description",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				if strings.TrimSpace(tool.Description) != "" {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/description",
					"tool has no description",
					"describe what the tool does and when to use it")}
			},
		},
		{
			ID:          "LLM002",
			Category:    CategoryLLM,
			Severity:    SeverityWarning,
			Description: "Description should be at least 20 characters",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				n := len(strings.TrimSpace(tool.Description))
				if n == 0 || n >= minDescriptionLength {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/description",
					fmt.Sprintf("description is %d characters, minimum is %d", n, minDescriptionLength),
					"a sentence or two is the floor for reliable tool selection")}
			},
		},
		{
			ID:          "LLM003",
			Category:    CategoryLLM,
			Severity:    SeveritySuggestion,
			Description: "Description should stay under 1024 characters",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				n := len(tool.Description)
				if n <= maxDescriptionLength {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/description",
					fmt.Sprintf("description is %d characters, which crowds the model's context", n),
					"trim to the essentials; move reference material into documentation")}
			},
		},
		{
			ID:          "LLM004",
			Category:    CategoryLLM,
			Severity:    SeverityWarning,
			Description: "Every parameter should have a description",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				var issues []Issue
				props := properties(tool.InputSchema)
				for _, name := range sortedKeys(props) {
					sub, ok := asMap(props[name])
					if !ok {
						issues = append(issues, r.newIssue(tool.Name,
							"/inputSchema/properties/"+name,
							fmt.Sprintf("parameter %q has no description", name),
							"describe what the parameter controls and its expected values"))
						continue
					}
					if desc, _ := asString(sub["description"]); strings.TrimSpace(desc) == "" {
						issues = append(issues, r.newIssue(tool.Name,
							"/inputSchema/properties/"+name,
							fmt.Sprintf("parameter %q has no description", name),
							"describe what the parameter controls and its expected values"))
					}
				}
				return issues
			},
		},
		{
			ID:          "LLM005",
			Category:    CategoryLLM,
			Severity:    SeverityWarning,
			Description: "Tools should take at most 10 parameters",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				n := len(properties(tool.InputSchema))
				if n <= maxParameterCount {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/inputSchema/properties",
					fmt.Sprintf("tool takes %d parameters (limit %d)", n, maxParameterCount),
					"split the tool or group related parameters into an object")}
			},
		},
		{
			ID:          "LLM006",
			Category:    CategoryLLM,
			Severity:    SeveritySuggestion,
			Description: "String parameters should carry a constraint",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				var issues []Issue
				props := properties(tool.InputSchema)
				for _, name := range sortedKeys(props) {
					sub, ok := asMap(props[name])
					if !ok || schemaType(sub) != "string" {
						continue
					}
					if sub["enum"] != nil || sub["pattern"] != nil || sub["format"] != nil ||
						sub["maxLength"] != nil || sub["minLength"] != nil {
						continue
					}
					issues = append(issues, r.newIssue(tool.Name,
						"/inputSchema/properties/"+name,
						fmt.Sprintf("string parameter %q is unconstrained", name),
						"add an enum, pattern, format, or length bound"))
				}
				return issues
			},
		},
		{
			ID:          "LLM007",
			Category:    CategoryLLM,
			Severity:    SeveritySuggestion,
			Description: "Description should say when to use the tool",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				desc := strings.ToLower(tool.Description)
				if strings.TrimSpace(desc) == "" {
					return nil
				}
				for _, cue := range usageCuePhrases {
					if strings.Contains(desc, cue) {
						return nil
					}
				}
				return []Issue{r.newIssue(tool.Name, "/description",
					"description does not say when the tool should be used",
					"add a usage cue, e.g. \"Use this when ...\"")}
			},
		},
		{
			ID:          "LLM008",
			Category:    CategoryLLM,
			Severity:    SeveritySuggestion,
			Description: "Tool sets larger than 40 tools degrade selection accuracy",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, rctx *Context) []Issue {
				n := len(rctx.AllTools)
				if n <= maxToolSetSize {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "",
					fmt.Sprintf("tool set contains %d tools (recommended maximum %d)", n, maxToolSetSize),
					"split the server or gate tools behind feature flags")}
			},
		},
	}
	for i := range rules {
		rules[i].Documentation = docURL(rules[i].ID)
	}
	return rules
}
