package rules

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaChecker wraps a JSON Schema compiler. It is constructed once at
// engine initialization and injected into the single rule that compiles
// schemas; its identity never appears in issue content.
//
// Safe for concurrent use across validation runs.
type SchemaChecker struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	seq      int
}

// NewSchemaChecker creates a checker with a fresh compiler.
func NewSchemaChecker() *SchemaChecker {
	return &SchemaChecker{compiler: jsonschema.NewCompiler()}
}

// Check compiles the schema and returns a descriptive error when the schema
// is not a valid JSON Schema. A nil error means the schema compiled.
func (c *SchemaChecker) Check(schema map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// The compiler caches resources by URL, so each compilation gets a
	// unique synthetic URL.
	c.seq++
	url := fmt.Sprintf("mem://tool-schema/%d.json", c.seq)

	if err := c.compiler.AddResource(url, schema); err != nil {
		return err
	}
	if _, err := c.compiler.Compile(url); err != nil {
		return err
	}
	return nil
}
