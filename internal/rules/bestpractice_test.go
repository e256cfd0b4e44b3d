package rules

import (
	"strings"
	"testing"

	"github.com/triage-ai/mcplint/internal/tooldef"
)

func TestBPR001_MissingAnnotations(t *testing.T) {
	assertFires(t, "BPR001", runRule(t, "BPR001", namedTool("get-user")))

	tool := namedTool("get-user")
	tool.Annotations = &tooldef.Annotations{Title: "Get User"}
	assertSilent(t, "BPR001", runRule(t, "BPR001", tool))
}

func TestBPR002_MissingTitle(t *testing.T) {
	tool := namedTool("get-user")
	tool.Annotations = &tooldef.Annotations{ReadOnlyHint: boolPtr(true)}
	assertFires(t, "BPR002", runRule(t, "BPR002", tool))

	tool.Annotations.Title = "Get User"
	assertSilent(t, "BPR002", runRule(t, "BPR002", tool))

	// No annotations at all is BPR001 territory.
	assertSilent(t, "BPR002", runRule(t, "BPR002", namedTool("get-user")))
}

func TestBPR003_ReadOnlyHint(t *testing.T) {
	assertFires(t, "BPR003", runRule(t, "BPR003", namedTool("list-users")))

	hinted := namedTool("list-users")
	hinted.Annotations = &tooldef.Annotations{ReadOnlyHint: boolPtr(true)}
	assertSilent(t, "BPR003", runRule(t, "BPR003", hinted))

	// An explicit false is still a deliberate statement.
	declared := namedTool("list-users")
	declared.Annotations = &tooldef.Annotations{ReadOnlyHint: boolPtr(false)}
	assertSilent(t, "BPR003", runRule(t, "BPR003", declared))

	assertSilent(t, "BPR003", runRule(t, "BPR003", namedTool("update-user")))
}

func sharedFragment(order int) map[string]any {
	// Same shape, two key orders. Map literals do not preserve order, but the
	// nested structure differing between calls exercises canonicalization at
	// the index level anyway.
	if order == 0 {
		return map[string]any{
			"type": "object",
			"properties": map[string]any{
				"page":     map[string]any{"type": "integer"},
				"pageSize": map[string]any{"type": "integer"},
			},
		}
	}
	return map[string]any{
		"properties": map[string]any{
			"pageSize": map[string]any{"type": "integer"},
			"page":     map[string]any{"type": "integer"},
		},
		"type": "object",
	}
}

func TestBPR004_DuplicatedFragments(t *testing.T) {
	tools := []tooldef.ToolDefinition{
		toolWithSchema(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"paging": sharedFragment(0),
			},
		}),
		toolWithSchema(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pagination": sharedFragment(1),
			},
		}),
	}
	tools[0].Name = "list-users"
	tools[1].Name = "list-orders"

	idx := BuildSchemaIndex(tools)

	iss := assertFires(t, "BPR004", runRuleOn(t, "BPR004", tools, 0, idx))
	if iss.Path != "/inputSchema/properties/paging" {
		t.Fatalf("path = %q", iss.Path)
	}
	if !strings.Contains(iss.Message, "list-orders/inputSchema/properties/pagination") {
		t.Fatalf("message = %q", iss.Message)
	}

	assertFires(t, "BPR004", runRuleOn(t, "BPR004", tools, 1, idx))
}

func TestBPR004_SameToolRepetitionIgnored(t *testing.T) {
	tools := []tooldef.ToolDefinition{
		toolWithSchema(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"a": sharedFragment(0),
				"b": sharedFragment(1),
			},
		}),
	}
	idx := BuildSchemaIndex(tools)
	assertSilent(t, "BPR004", runRuleOn(t, "BPR004", tools, 0, idx))
}

func TestBPR004_NilIndexDisablesRule(t *testing.T) {
	tools := []tooldef.ToolDefinition{
		toolWithSchema(map[string]any{
			"type":       "object",
			"properties": map[string]any{"paging": sharedFragment(0)},
		}),
	}
	assertSilent(t, "BPR004", runRuleOn(t, "BPR004", tools, 0, nil))
}

func TestBPR005_RequiredList(t *testing.T) {
	missing := map[string]any{
		"type":       "object",
		"properties": map[string]any{"a": map[string]any{"type": "string"}},
	}
	assertFires(t, "BPR005", runRule(t, "BPR005", toolWithSchema(missing)))

	declared := map[string]any{
		"type":       "object",
		"properties": map[string]any{"a": map[string]any{"type": "string"}},
		"required":   []any{},
	}
	assertSilent(t, "BPR005", runRule(t, "BPR005", toolWithSchema(declared)))

	assertSilent(t, "BPR005", runRule(t, "BPR005", toolWithSchema(map[string]any{"type": "object"})))
}

func TestBPR006_DefaultInEnum(t *testing.T) {
	bad := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mode": map[string]any{
				"type":    "string",
				"enum":    []any{"fast", "thorough"},
				"default": "balanced",
			},
		},
	}
	iss := assertFires(t, "BPR006", runRule(t, "BPR006", toolWithSchema(bad)))
	if iss.Path != "/inputSchema/properties/mode/default" {
		t.Fatalf("path = %q", iss.Path)
	}

	good := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mode": map[string]any{
				"type":    "string",
				"enum":    []any{"fast", "thorough"},
				"default": "fast",
			},
		},
	}
	assertSilent(t, "BPR006", runRule(t, "BPR006", toolWithSchema(good)))

	// No enum means nothing to check against.
	free := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mode": map[string]any{"type": "string", "default": "anything"},
		},
	}
	assertSilent(t, "BPR006", runRule(t, "BPR006", toolWithSchema(free)))
}
