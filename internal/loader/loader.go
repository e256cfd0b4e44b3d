// Package loader acquires tool definitions from JSON and YAML files. It
// finds the tool array regardless of whether the file is a bare array, a
// definitions document, or a captured MCP tools/list response, and preserves
// each tool's original raw payload for provenance.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/triage-ai/mcplint/internal/tooldef"
)

// toolArrayPaths are probed in order against a JSON document to find the
// tool list.
var toolArrayPaths = []string{"tools", "result.tools"}

// LoadFile reads tool definitions from a JSON or YAML file.
func LoadFile(path string) ([]tooldef.ToolDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	jsonData, err := toJSON(data, path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	items, err := locateTools(jsonData)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	tools := make([]tooldef.ToolDefinition, 0, len(items))
	for i, item := range items {
		tool, err := DecodeTool([]byte(item.Raw))
		if err != nil {
			return nil, fmt.Errorf("%s: tool %d: %w", path, i, err)
		}
		tool.Source = tooldef.Source{
			Kind:     tooldef.SourceFile,
			Location: fmt.Sprintf("%s#/tools/%d", path, i),
			Raw:      json.RawMessage(item.Raw),
		}
		tools = append(tools, tool)
	}
	return tools, nil
}

// toJSON normalizes the file to JSON. YAML (by extension, or by content when
// the payload is not valid JSON) is decoded and re-encoded.
func toJSON(data []byte, path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlToJSON(data)
	}
	if json.Valid(data) {
		return data, nil
	}
	return yamlToJSON(data)
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// locateTools finds the tool array in a JSON document.
func locateTools(jsonData []byte) ([]gjson.Result, error) {
	root := gjson.ParseBytes(jsonData)
	if root.IsArray() {
		return root.Array(), nil
	}
	for _, path := range toolArrayPaths {
		if arr := root.Get(path); arr.IsArray() {
			return arr.Array(), nil
		}
	}
	return nil, fmt.Errorf("no tool array found (expected a top-level array, a %q key, or a tools/list response)", "tools")
}

// rawTool mirrors the MCP wire shape, accepting the snake_case spelling of
// the schema field some servers emit.
type rawTool struct {
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	InputSchema  map[string]any       `json:"inputSchema"`
	InputSchema2 map[string]any       `json:"input_schema"`
	Annotations  *tooldef.Annotations `json:"annotations"`
}

// DecodeTool decodes one tool payload. The caller fills in Source.
func DecodeTool(raw []byte) (tooldef.ToolDefinition, error) {
	var rt rawTool
	if err := json.Unmarshal(raw, &rt); err != nil {
		return tooldef.ToolDefinition{}, err
	}
	schema := rt.InputSchema
	if schema == nil {
		schema = rt.InputSchema2
	}
	return tooldef.ToolDefinition{
		Name:        rt.Name,
		Description: rt.Description,
		InputSchema: schema,
		Annotations: rt.Annotations,
	}, nil
}
