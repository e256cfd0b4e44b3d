package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/triage-ai/mcplint/internal/tooldef"
)

const (
	minToolNameLength = 3
	maxToolNameLength = 64
)

var validToolName = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// actionVerbs are the leading verbs a well-named tool starts with.
var actionVerbs = map[string]bool{
	"add": true, "analyze": true, "apply": true, "build": true, "cancel": true,
	"check": true, "close": true, "compare": true, "convert": true, "copy": true,
	"create": true, "delete": true, "deploy": true, "describe": true, "download": true,
	"edit": true, "execute": true, "export": true, "fetch": true, "find": true,
	"generate": true, "get": true, "import": true, "insert": true, "list": true,
	"load": true, "lookup": true, "move": true, "open": true, "parse": true,
	"publish": true, "query": true, "read": true, "remove": true, "rename": true,
	"render": true, "report": true, "resolve": true, "run": true, "save": true,
	"search": true, "send": true, "set": true, "start": true, "stop": true,
	"submit": true, "sync": true, "translate": true, "update": true, "upload": true,
	"validate": true, "verify": true, "write": true,
}

// genericNames say nothing about what the tool does.
var genericNames = map[string]bool{
	"do": true, "execute": true, "handle": true, "process": true,
	"run": true, "tool": true, "action": true, "main": true,
}

func namingRules() []Rule {
	rules := []Rule{
		{
			ID:          "NAM001",
			Category:    CategoryNaming,
			Severity:    SeverityError,
			Description: "Tool name must not be empty",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				if strings.TrimSpace(tool.Name) != "" {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/name", "tool name is empty", "")}
			},
		},
		{
			ID:          "NAM002",
			Category:    CategoryNaming,
			Severity:    SeverityWarning,
			Description: "Tool name should be between 3 and 64 characters",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				n := len(tool.Name)
				if n == 0 || (n >= minToolNameLength && n <= maxToolNameLength) {
					return nil
				}
				if n < minToolNameLength {
					return []Issue{r.newIssue(tool.Name, "/name",
						fmt.Sprintf("tool name %q is %d characters, minimum is %d", tool.Name, n, minToolNameLength),
						"use a descriptive verb-noun name such as \"get-user\"")}
				}
				return []Issue{r.newIssue(tool.Name, "/name",
					fmt.Sprintf("tool name is %d characters, maximum is %d", n, maxToolNameLength),
					"shorten the name; details belong in the description")}
			},
		},
		{
			ID:          "NAM003",
			Category:    CategoryNaming,
			Severity:    SeverityError,
			Description: "Tool name must use only letters, digits, underscores, and hyphens",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				if tool.Name == "" || validToolName.MatchString(tool.Name) {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/name",
					fmt.Sprintf("tool name %q contains characters outside [a-zA-Z0-9_-]", tool.Name),
					"rename using letters, digits, underscores, and hyphens only")}
			},
		},
		{
			ID:          "NAM004",
			Category:    CategoryNaming,
			Severity:    SeveritySuggestion,
			Description: "Tool name should start with an action verb",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				if tool.Name == "" || actionVerbs[leadingWord(tool.Name)] {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/name",
					fmt.Sprintf("tool name %q does not start with an action verb", tool.Name),
					"lead with a verb, e.g. \"search-orders\" rather than \"orders\"")}
			},
		},
		{
			ID:          "NAM005",
			Category:    CategoryNaming,
			Severity:    SeverityWarning,
			Description: "Tool name should not be a generic placeholder",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				if !genericNames[strings.ToLower(tool.Name)] {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/name",
					fmt.Sprintf("tool name %q is too generic to distinguish it from other tools", tool.Name),
					"name the tool after the action it performs")}
			},
		},
		{
			ID:          "NAM006",
			Category:    CategoryNaming,
			Severity:    SeverityError,
			Description: "Tool names must be unique within the tool set, ignoring case",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, rctx *Context) []Issue {
				if tool.Name == "" {
					return nil
				}
				// The executor passes a pointer into rctx.AllTools, so
				// pointer identity distinguishes the tool from its siblings.
				for i := range rctx.AllTools {
					other := &rctx.AllTools[i]
					if other == tool {
						continue
					}
					if strings.EqualFold(other.Name, tool.Name) {
						return []Issue{r.newIssue(tool.Name, "/name",
							fmt.Sprintf("tool name %q collides with %q (names are matched case-insensitively)", tool.Name, other.Name),
							"rename one of the tools")}
					}
				}
				return nil
			},
		},
		{
			ID:          "NAM007",
			Category:    CategoryNaming,
			Severity:    SeveritySuggestion,
			Description: "Tool set should use one naming convention",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, rctx *Context) []Issue {
				own := nameConvention(tool.Name)
				if own == "" {
					return nil
				}
				for i := range rctx.AllTools {
					other := nameConvention(rctx.AllTools[i].Name)
					if other != "" && other != own {
						return []Issue{r.newIssue(tool.Name, "/name",
							fmt.Sprintf("tool set mixes naming conventions (%s and %s)", own, other),
							"pick snake_case, kebab-case, or camelCase and use it everywhere")}
					}
				}
				return nil
			},
		},
	}
	for i := range rules {
		rules[i].Documentation = docURL(rules[i].ID)
	}
	return rules
}

// leadingWord extracts the first word of a snake_case, kebab-case, or
// camelCase name, lowercased.
func leadingWord(name string) string {
	for i, c := range name {
		switch {
		case c == '_' || c == '-':
			return strings.ToLower(name[:i])
		case c >= 'A' && c <= 'Z' && i > 0:
			return strings.ToLower(name[:i])
		}
	}
	return strings.ToLower(name)
}

// nameConvention classifies a name as snake_case, kebab-case, or camelCase.
// Returns "" for single-word names, which fit any convention.
func nameConvention(name string) string {
	switch {
	case strings.Contains(name, "_"):
		return "snake_case"
	case strings.Contains(name, "-"):
		return "kebab-case"
	case strings.ToLower(name) != name:
		return "camelCase"
	}
	return ""
}
