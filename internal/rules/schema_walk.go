package rules

import (
	"sort"
	"strconv"
)

// Helpers for walking JSON-Schema-shaped map[string]any values. Tool schemas
// arrive re-decoded from arbitrary JSON/YAML, so every access is type-checked.

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// schemaType returns the "type" keyword of a schema node, or "".
func schemaType(schema map[string]any) string {
	t, _ := asString(schema["type"])
	return t
}

// properties returns the "properties" map of a schema node, or nil.
func properties(schema map[string]any) map[string]any {
	p, _ := asMap(schema["properties"])
	return p
}

// requiredNames returns the "required" array of a schema node as strings.
func requiredNames(schema map[string]any) []string {
	arr, ok := schema["required"].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := asString(v); ok {
			out = append(out, s)
		}
	}
	return out
}

// sortedKeys returns map keys in lexical order for deterministic iteration.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// combinator keywords whose branches are alternative schemas.
var combinatorKeys = []string{"allOf", "anyOf", "oneOf"}

// branch is one combinator subschema with its pointer segment.
type branch struct {
	Path   string
	Schema map[string]any
}

// combinatorBranches returns the subschemas of any allOf/anyOf/oneOf
// keywords on the node.
func combinatorBranches(schema map[string]any) []branch {
	var out []branch
	for _, key := range combinatorKeys {
		arr, ok := schema[key].([]any)
		if !ok {
			continue
		}
		for i, b := range arr {
			if m, ok := asMap(b); ok {
				out = append(out, branch{Path: "/" + key + "/" + strconv.Itoa(i), Schema: m})
			}
		}
	}
	return out
}
