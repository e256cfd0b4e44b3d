package rules

import (
	"strings"
	"testing"

	"github.com/triage-ai/mcplint/internal/tooldef"
)

// runRule executes one rule against a single-tool set. The tool passed to the
// check is a pointer into the set, matching how the engine invokes rules.
func runRule(t *testing.T, id string, tool tooldef.ToolDefinition) []Issue {
	t.Helper()
	tools := []tooldef.ToolDefinition{tool}
	return runRuleOn(t, id, tools, 0, nil)
}

// runRuleOn executes one rule against tools[idx] with the full set visible
// through the context.
func runRuleOn(t *testing.T, id string, tools []tooldef.ToolDefinition, idx int, index *SchemaIndex) []Issue {
	t.Helper()
	r, ok := testRegistry(t).Get(id)
	if !ok {
		t.Fatalf("rule %s not registered", id)
	}
	rctx := &Context{AllTools: tools, Index: index}
	return r.Check(&r, &tools[idx], rctx)
}

// wellFormedTool returns a tool definition no rule should flag at error
// severity.
func wellFormedTool() tooldef.ToolDefinition {
	return tooldef.ToolDefinition{
		Name:        "get-user",
		Description: "Get a user profile by ID. Use this when the user asks for account details.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"user_id": map[string]any{
					"type":        "string",
					"description": "The unique identifier of the user to look up.",
					"maxLength":   float64(64),
				},
			},
			"required":             []any{"user_id"},
			"additionalProperties": false,
		},
	}
}

func assertFires(t *testing.T, id string, issues []Issue) Issue {
	t.Helper()
	for _, iss := range issues {
		if iss.RuleID == id {
			return iss
		}
	}
	t.Fatalf("rule %s did not fire, got %v", id, issues)
	return Issue{}
}

func assertSilent(t *testing.T, id string, issues []Issue) {
	t.Helper()
	if len(issues) != 0 {
		t.Fatalf("rule %s fired unexpectedly: %v", id, issues)
	}
}

func TestIssueCarriesRuleConstants(t *testing.T) {
	tool := tooldef.ToolDefinition{Name: "mystery"}
	issues := runRule(t, "SCH001", tool)
	iss := assertFires(t, "SCH001", issues)

	if iss.Category != CategorySchema {
		t.Fatalf("category = %q", iss.Category)
	}
	if iss.Severity != SeverityError {
		t.Fatalf("severity = %q", iss.Severity)
	}
	if iss.ToolName != "mystery" {
		t.Fatalf("toolName = %q", iss.ToolName)
	}
	if !strings.HasSuffix(iss.Documentation, "#sch001") {
		t.Fatalf("documentation = %q", iss.Documentation)
	}
}

func TestDocURL(t *testing.T) {
	got := docURL("NAM003")
	if !strings.HasSuffix(got, "/docs/rules.md#nam003") {
		t.Fatalf("docURL(NAM003) = %q", got)
	}
}

func TestSeverityValid(t *testing.T) {
	for _, s := range []Severity{SeverityError, SeverityWarning, SeveritySuggestion} {
		if !s.Valid() {
			t.Fatalf("%q should be valid", s)
		}
	}
	if Severity("critical").Valid() {
		t.Fatal("unknown severity should be invalid")
	}
	if Severity("").Valid() {
		t.Fatal("empty severity should be invalid")
	}
}

func TestWellFormedToolHasNoErrors(t *testing.T) {
	tools := []tooldef.ToolDefinition{wellFormedTool()}
	reg := testRegistry(t)
	rctx := &Context{AllTools: tools, Index: BuildSchemaIndex(tools)}

	for _, r := range reg.All() {
		r := r
		for _, iss := range r.Check(&r, &tools[0], rctx) {
			if iss.Severity == SeverityError {
				t.Errorf("rule %s reported an error on a well-formed tool: %s", r.ID, iss.Message)
			}
		}
	}
}
