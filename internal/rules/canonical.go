package rules

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/triage-ai/mcplint/internal/tooldef"
)

// canonicalize reduces a JSON-shaped value to a stable string form that is
// insensitive to object key order and to the order of array members. Two
// structurally identical schema fragments written in different key orders
// canonicalize to the same string.
func canonicalize(v any) string {
	switch val := v.(type) {
	case map[string]any:
		keys := sortedKeys(val)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, strconv.Quote(k)+":"+canonicalize(val[k]))
		}
		return "{" + strings.Join(parts, ",") + "}"
	case []any:
		parts := make([]string, 0, len(val))
		for _, elem := range val {
			parts = append(parts, canonicalize(elem))
		}
		sort.Strings(parts)
		return "[" + strings.Join(parts, ",") + "]"
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// FragmentLocation is one occurrence of a schema fragment.
type FragmentLocation struct {
	ToolName string
	Path     string // JSON pointer into the tool definition
}

// SchemaIndex maps canonicalized schema fragments to every location in the
// tool set where an equivalent fragment occurs. It is built once per run,
// before any rule executes, and is read-only thereafter.
type SchemaIndex struct {
	occurrences map[string][]FragmentLocation
}

// minFragmentProperties is the size below which an object schema is too
// trivial to be worth reporting as duplicated.
const minFragmentProperties = 2

// BuildSchemaIndex indexes the duplication-eligible schema fragments of
// every tool in the set.
func BuildSchemaIndex(tools []tooldef.ToolDefinition) *SchemaIndex {
	idx := &SchemaIndex{occurrences: make(map[string][]FragmentLocation)}
	for i := range tools {
		tool := &tools[i]
		collectFragments(tool.InputSchema, "/inputSchema", func(path string, node map[string]any) {
			key := canonicalize(node)
			idx.occurrences[key] = append(idx.occurrences[key], FragmentLocation{
				ToolName: tool.Name,
				Path:     path,
			})
		})
	}
	return idx
}

// Lookup returns every location where a fragment equivalent to node occurs.
func (idx *SchemaIndex) Lookup(node map[string]any) []FragmentLocation {
	return idx.occurrences[canonicalize(node)]
}

// eligibleFragment reports whether a schema node is complex enough to index:
// an object schema with at least minFragmentProperties declared properties.
func eligibleFragment(node map[string]any) bool {
	if schemaType(node) != "object" {
		return false
	}
	return len(properties(node)) >= minFragmentProperties
}

// collectFragments walks the named properties of a schema, visiting each
// eligible property subschema. Only property subschemas are indexed; the
// root schema itself is not, since whole-tool duplication is a different
// problem than repeated parameter shapes.
func collectFragments(schema map[string]any, base string, visit func(path string, node map[string]any)) {
	if schema == nil {
		return
	}
	props := properties(schema)
	for _, name := range sortedKeys(props) {
		sub, ok := asMap(props[name])
		if !ok {
			continue
		}
		path := base + "/properties/" + name
		if eligibleFragment(sub) {
			visit(path, sub)
		}
		collectFragments(sub, path, visit)
	}
	if items, ok := asMap(schema["items"]); ok {
		path := base + "/items"
		if eligibleFragment(items) {
			visit(path, items)
		}
		collectFragments(items, path, visit)
	}
}

// VisitOwnFragments walks one tool's eligible fragments in deterministic
// order, for rules that compare a tool against the index.
func VisitOwnFragments(tool *tooldef.ToolDefinition, visit func(path string, node map[string]any)) {
	collectFragments(tool.InputSchema, "/inputSchema", visit)
}
