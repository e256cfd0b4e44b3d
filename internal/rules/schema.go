package rules

import (
	"fmt"

	"github.com/triage-ai/mcplint/internal/tooldef"
)

// maxSchemaDepth is the deepest nesting level a parameter schema may reach
// before LLMs reliably start mis-filling arguments.
const maxSchemaDepth = 5

// schemaRules returns the schema-structure rules. The checker is shared by
// every run; only SCH003 uses it.
func schemaRules(checker *SchemaChecker) []Rule {
	rules := []Rule{
		{
			ID:          "SCH001",
			Category:    CategorySchema,
			Severity:    SeverityError,
			Description: "Tool must declare an input schema",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				if len(tool.InputSchema) > 0 {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/inputSchema",
					"tool does not declare an input schema",
					"declare an object schema, even if it has no properties")}
			},
		},
		{
			ID:          "SCH002",
			Category:    CategorySchema,
			Severity:    SeverityError,
			Description: "Input schema root must be of type object",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				if len(tool.InputSchema) == 0 {
					return nil // SCH001 covers the missing case
				}
				if t := schemaType(tool.InputSchema); t != "object" {
					return []Issue{r.newIssue(tool.Name, "/inputSchema/type",
						fmt.Sprintf("input schema root type is %q, must be \"object\"", t),
						"set \"type\": \"object\" on the schema root")}
				}
				return nil
			},
		},
		{
			ID:          "SCH003",
			Category:    CategorySchema,
			Severity:    SeverityError,
			Description: "Input schema must compile as JSON Schema",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				if len(tool.InputSchema) == 0 {
					return nil
				}
				if err := checker.Check(tool.InputSchema); err != nil {
					return []Issue{r.newIssue(tool.Name, "/inputSchema",
						fmt.Sprintf("input schema does not compile: %v", err), "")}
				}
				return nil
			},
		},
		{
			ID:          "SCH004",
			Category:    CategorySchema,
			Severity:    SeverityWarning,
			Description: "Every parameter should declare a type",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				var issues []Issue
				props := properties(tool.InputSchema)
				for _, name := range sortedKeys(props) {
					sub, ok := asMap(props[name])
					if !ok {
						continue
					}
					if _, typed := sub["type"]; typed {
						continue
					}
					if hasCombinator(sub) || sub["$ref"] != nil || sub["enum"] != nil {
						continue
					}
					issues = append(issues, r.newIssue(tool.Name,
						"/inputSchema/properties/"+name,
						fmt.Sprintf("parameter %q has no type constraint", name),
						"add a \"type\" keyword so callers know what to send"))
				}
				return issues
			},
		},
		{
			ID:          "SCH005",
			Category:    CategorySchema,
			Severity:    SeverityWarning,
			Description: "Parameter schemas should not nest deeper than 5 levels",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				depth, path := schemaDepth(tool.InputSchema, "/inputSchema")
				if depth <= maxSchemaDepth {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, path,
					fmt.Sprintf("schema nests %d levels deep (limit %d)", depth, maxSchemaDepth),
					"flatten deeply nested parameters into top-level fields")}
			},
		},
		{
			ID:          "SCH006",
			Category:    CategorySchema,
			Severity:    SeverityWarning,
			Description: "Array parameters should declare an items schema",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				var issues []Issue
				walkPropertySchemas(tool.InputSchema, "/inputSchema", func(path, name string, sub map[string]any) {
					if schemaType(sub) != "array" {
						return
					}
					if _, ok := asMap(sub["items"]); ok {
						return
					}
					issues = append(issues, r.newIssue(tool.Name, path,
						fmt.Sprintf("array parameter %q has no items schema", name),
						"declare \"items\" so element types are constrained"))
				})
				return issues
			},
		},
		{
			ID:          "SCH007",
			Category:    CategorySchema,
			Severity:    SeverityError,
			Description: "Required parameters must be declared in properties",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				props := properties(tool.InputSchema)
				var issues []Issue
				for _, name := range requiredNames(tool.InputSchema) {
					if _, declared := props[name]; declared {
						continue
					}
					issues = append(issues, r.newIssue(tool.Name, "/inputSchema/required",
						fmt.Sprintf("required parameter %q is not declared in properties", name),
						"declare the property or drop it from required"))
				}
				return issues
			},
		},
		{
			ID:          "SCH008",
			Category:    CategorySchema,
			Severity:    SeveritySuggestion,
			Description: "Object schemas should constrain additionalProperties",
			Check: func(r *Rule, tool *tooldef.ToolDefinition, _ *Context) []Issue {
				if schemaType(tool.InputSchema) != "object" || len(properties(tool.InputSchema)) == 0 {
					return nil
				}
				if _, set := tool.InputSchema["additionalProperties"]; set {
					return nil
				}
				return []Issue{r.newIssue(tool.Name, "/inputSchema",
					"object schema does not constrain additionalProperties",
					"set \"additionalProperties\": false to reject unknown parameters")}
			},
		},
	}
	for i := range rules {
		rules[i].Documentation = docURL(rules[i].ID)
	}
	return rules
}

func hasCombinator(schema map[string]any) bool {
	for _, key := range combinatorKeys {
		if _, ok := schema[key]; ok {
			return true
		}
	}
	return false
}

// walkPropertySchemas visits every named property subschema, recursively,
// in deterministic order.
func walkPropertySchemas(schema map[string]any, base string, visit func(path, name string, sub map[string]any)) {
	props := properties(schema)
	for _, name := range sortedKeys(props) {
		sub, ok := asMap(props[name])
		if !ok {
			continue
		}
		path := base + "/properties/" + name
		visit(path, name, sub)
		walkPropertySchemas(sub, path, visit)
		if items, ok := asMap(sub["items"]); ok {
			walkPropertySchemas(items, path+"/items", visit)
		}
	}
}
