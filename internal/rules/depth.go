package rules

// schemaDepth computes the maximum nesting level of a schema and the JSON
// pointer to the deepest branch. The root schema counts as level 1; each
// step through a named property, an array item schema, or an
// additionalProperties subschema adds a level. Combinator keywords
// (allOf/anyOf/oneOf) do not add a level themselves; only their branches'
// own nested structure counts.
func schemaDepth(schema map[string]any, base string) (int, string) {
	if schema == nil {
		return 0, base
	}

	depth, path := 1, base

	consider := func(d int, p string) {
		if d > depth {
			depth, path = d, p
		}
	}

	props := properties(schema)
	for _, name := range sortedKeys(props) {
		sub, ok := asMap(props[name])
		if !ok {
			continue
		}
		d, p := schemaDepth(sub, base+"/properties/"+name)
		consider(d+1, p)
	}

	if items, ok := asMap(schema["items"]); ok {
		d, p := schemaDepth(items, base+"/items")
		consider(d+1, p)
	}

	// additionalProperties only nests when it is itself a schema, not a bool.
	if ap, ok := asMap(schema["additionalProperties"]); ok {
		d, p := schemaDepth(ap, base+"/additionalProperties")
		consider(d+1, p)
	}

	for _, b := range combinatorBranches(schema) {
		d, p := schemaDepth(b.Schema, base+b.Path)
		consider(d, p)
	}

	return depth, path
}
