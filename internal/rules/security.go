package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/triage-ai/mcplint/internal/tooldef"
)

// sensitiveParamPattern matches parameter names that typically carry
// credentials or other secrets.
var sensitiveParamPattern = regexp.MustCompile(
	`(?i)^(password|passwd|secret|token|api[_-]?key|apikey|credential|credentials|private[_-]?key|auth|access[_-]?key|session[_-]?id)$`)

// injectionProneParams name free-form inputs that end up in interpreters.
var injectionProneParams = map[string]bool{
	"sql": true, "query": true, "command": true, "cmd": true,
	"shell": true, "script": true, "code": true, "eval": true,
}

// promptInjectionMarkers are phrases in a description that attempt to steer
// the model rather than describe the tool.
var promptInjectionMarkers = []string{
	"ignore previous instructions",
	"ignore all previous",
	"disregard the above",
	"disregard previous",
	"you are now",
	"system prompt",
	"do not tell the user",
	"<important>",
}

// destructiveVerbs flag tools that delete or irreversibly change data.
var destructiveVerbs = map[string]bool{
	"delete": true, "remove": true, "drop": true, "destroy": true,
	"purge": true, "erase": true, "wipe": true, "truncate": true,
}

func securityRules() []Rule {
	rules := []Rule{
		{
			ID:          "SEC001",
			Category:    CategorySecurity,
			Severity:    SeverityWarning,
			Description: "Parameters should not ask for raw credentials",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				var issues []Issue
				props := properties(tool.InputSchema)
				for _, name := range sortedKeys(props) {
					if !sensitiveParamPattern.MatchString(name) {
						continue
					}
					issues = append(issues, r.newIssue(tool.Name,
						"/inputSchema/properties/"+name,
						fmt.Sprintf("parameter %q appears to accept a credential or secret", name),
						"pass secrets out of band (server configuration), not through model-visible arguments"))
				}
				return issues
			},
		},
		{
			ID:          "SEC002",
			Category:    CategorySecurity,
			Severity:    SeverityWarning,
			Description: "Interpreter-bound parameters should be constrained",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				var issues []Issue
				props := properties(tool.InputSchema)
				for _, name := range sortedKeys(props) {
					if !injectionProneParams[strings.ToLower(name)] {
						continue
					}
					sub, ok := asMap(props[name])
					if !ok || schemaType(sub) != "string" {
						continue
					}
					if sub["enum"] != nil || sub["pattern"] != nil {
						continue
					}
					issues = append(issues, r.newIssue(tool.Name,
						"/inputSchema/properties/"+name,
						fmt.Sprintf("free-form string parameter %q is likely passed to an interpreter", name),
						"constrain it with an enum or pattern, or restructure the tool around specific operations"))
				}
				return issues
			},
		},
		{
			ID:          "SEC003",
			Category:    CategorySecurity,
			Severity:    SeverityError,
			Description: "Description must not contain prompt-injection phrasing",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				desc := strings.ToLower(tool.Description)
				for _, marker := range promptInjectionMarkers {
					if strings.Contains(desc, marker) {
						return []Issue{r.newIssue(tool.Name, "/description",
							fmt.Sprintf("description contains prompt-injection phrasing: %q", marker),
							"describe what the tool does; never instruct the model")}
					}
				}
				return nil
			},
		},
		{
			ID:          "SEC004",
			Category:    CategorySecurity,
			Severity:    SeverityWarning,
			Description: "Destructive tools should carry destructiveHint",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				if !destructiveVerbs[leadingWord(tool.Name)] {
					return nil
				}
				if tool.Annotations != nil && tool.Annotations.DestructiveHint != nil && *tool.Annotations.DestructiveHint {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/annotations/destructiveHint",
					fmt.Sprintf("tool %q looks destructive but does not set destructiveHint", tool.Name),
					"set \"destructiveHint\": true so hosts can require confirmation")}
			},
		},
		{
			ID:          "SEC005",
			Category:    CategorySecurity,
			Severity:    SeveritySuggestion,
			Description: "readOnlyHint and destructiveHint must not both be true",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				a := tool.Annotations
				if a == nil || a.ReadOnlyHint == nil || a.DestructiveHint == nil {
					return nil
				}
				if *a.ReadOnlyHint && *a.DestructiveHint {
					return []Issue{r.newIssue(tool.Name, "/annotations",
						"annotations claim the tool is both read-only and destructive",
						"drop whichever hint is wrong")}
				}
				return nil
			},
		},
		{
			ID:          "SEC006",
			Category:    CategorySecurity,
			Severity:    SeveritySuggestion,
			Description: "URL parameters should declare a format or pattern",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				var issues []Issue
				props := properties(tool.InputSchema)
				for _, name := range sortedKeys(props) {
					lower := strings.ToLower(name)
					if !strings.HasSuffix(lower, "url") && !strings.HasSuffix(lower, "uri") {
						continue
					}
					sub, ok := asMap(props[name])
					if !ok || schemaType(sub) != "string" {
						continue
					}
					if sub["format"] != nil || sub["pattern"] != nil {
						continue
					}
					issues = append(issues, r.newIssue(tool.Name,
						"/inputSchema/properties/"+name,
						fmt.Sprintf("URL parameter %q has no format or pattern constraint", name),
						"add \"format\": \"uri\" to reject malformed or unexpected targets"))
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
