// Package tooldef holds the tool definition types shared across the
// validator. It sits at the bottom of the dependency graph and must not
// import any other internal package.
package tooldef

import "encoding/json"

// SourceKind identifies where a tool definition came from.
type SourceKind string

const (
	SourceFile   SourceKind = "file"
	SourceServer SourceKind = "server"
)

// Source records the provenance of a tool definition, including the
// original unmodified payload it was decoded from.
type Source struct {
	Kind     SourceKind      `json:"kind"`
	Location string          `json:"location"`
	Raw      json.RawMessage `json:"-"`
}

// Annotations are the optional MCP usage hints attached to a tool.
// Pointer fields distinguish "absent" from an explicit false.
type Annotations struct {
	Title           string `json:"title,omitempty"`
	ReadOnlyHint    *bool  `json:"readOnlyHint,omitempty"`
	DestructiveHint *bool  `json:"destructiveHint,omitempty"`
	IdempotentHint  *bool  `json:"idempotentHint,omitempty"`
	OpenWorldHint   *bool  `json:"openWorldHint,omitempty"`
}

// ToolDefinition is one tool as declared by an MCP server or a definition
// file. The validator treats it as read-only and never mutates it.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	Annotations *Annotations   `json:"annotations,omitempty"`
	Source      Source         `json:"source"`
}
