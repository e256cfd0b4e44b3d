package rules

import "fmt"

// Registry is the fixed table of all known rules. It is built once at
// startup; registration order is the canonical execution order, so issue
// lists are reproducible across runs on identical input.
type Registry struct {
	ordered []Rule
	byID    map[string]int
}

// NewRegistry builds the registry from all category rule sets. The schema
// checker is constructed by the caller and injected here so the one rule
// that compiles schemas reuses a single compiler.
//
// Panics on a malformed rule. That is a startup-time programmer error and
// must never surface at validation time.
func NewRegistry(checker *SchemaChecker) *Registry {
	reg := &Registry{byID: make(map[string]int)}
	for _, set := range [][]Rule{
		schemaRules(checker),
		namingRules(),
		securityRules(),
		llmCompatRules(),
		bestPracticeRules(),
	} {
		for _, r := range set {
			reg.register(r)
		}
	}
	return reg
}

func (reg *Registry) register(r Rule) {
	if r.ID == "" || r.Description == "" || r.Check == nil {
		panic(fmt.Sprintf("rules: malformed rule %q", r.ID))
	}
	if !r.Severity.Valid() {
		panic(fmt.Sprintf("rules: rule %s has invalid severity %q", r.ID, r.Severity))
	}
	if _, dup := reg.byID[r.ID]; dup {
		panic(fmt.Sprintf("rules: duplicate rule ID %s", r.ID))
	}
	reg.byID[r.ID] = len(reg.ordered)
	reg.ordered = append(reg.ordered, r)
}

// All returns every rule in registration order. Callers must not modify the
// returned slice.
func (reg *Registry) All() []Rule {
	return reg.ordered
}

// IDs returns all rule identifiers in registration order.
func (reg *Registry) IDs() []string {
	ids := make([]string, len(reg.ordered))
	for i, r := range reg.ordered {
		ids[i] = r.ID
	}
	return ids
}

// Get returns the rule with the given ID.
func (reg *Registry) Get(id string) (Rule, bool) {
	idx, ok := reg.byID[id]
	if !ok {
		return Rule{}, false
	}
	return reg.ordered[idx], true
}

// IsRegistered reports whether the ID names a known rule.
func (reg *Registry) IsRegistered(id string) bool {
	_, ok := reg.byID[id]
	return ok
}

// ByCategory returns the rules in one category, in registration order.
func (reg *Registry) ByCategory(c Category) []Rule {
	var out []Rule
	for _, r := range reg.ordered {
		if r.Category == c {
			out = append(out, r)
		}
	}
	return out
}
