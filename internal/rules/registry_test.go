package rules

import (
	"strings"
	"testing"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(NewSchemaChecker())
}

func TestRegistry_IDsAreUniqueAndOrdered(t *testing.T) {
	reg := testRegistry(t)

	ids := reg.IDs()
	if len(ids) == 0 {
		t.Fatal("registry is empty")
	}

	seen := make(map[string]bool)
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate rule ID %s", id)
		}
		seen[id] = true
	}

	// Registration order is the canonical execution order and must be stable.
	again := reg.IDs()
	for i := range ids {
		if ids[i] != again[i] {
			t.Fatalf("ID order not stable at index %d: %s vs %s", i, ids[i], again[i])
		}
	}
}

func TestRegistry_IDPrefixMatchesCategory(t *testing.T) {
	prefixes := map[Category]string{
		CategorySchema:       "SCH",
		CategoryNaming:       "NAM",
		CategorySecurity:     "SEC",
		CategoryLLM:          "LLM",
		CategoryBestPractice: "BPR",
	}

	for _, r := range testRegistry(t).All() {
		want, ok := prefixes[r.Category]
		if !ok {
			t.Fatalf("rule %s has unknown category %q", r.ID, r.Category)
		}
		if !strings.HasPrefix(r.ID, want) {
			t.Fatalf("rule %s: category %s expects prefix %s", r.ID, r.Category, want)
		}
		if len(r.ID) != 6 {
			t.Fatalf("rule %s: IDs are three letters plus three digits", r.ID)
		}
	}
}

func TestRegistry_EveryRuleIsComplete(t *testing.T) {
	for _, r := range testRegistry(t).All() {
		if r.Description == "" {
			t.Fatalf("rule %s has no description", r.ID)
		}
		if !r.Severity.Valid() {
			t.Fatalf("rule %s has invalid severity %q", r.ID, r.Severity)
		}
		if r.Check == nil {
			t.Fatalf("rule %s has no check function", r.ID)
		}
		if r.Documentation == "" {
			t.Fatalf("rule %s has no documentation link", r.ID)
		}
	}
}

func TestRegistry_GetAndIsRegistered(t *testing.T) {
	reg := testRegistry(t)

	r, ok := reg.Get("SCH001")
	if !ok || r.ID != "SCH001" {
		t.Fatalf("Get(SCH001) = %v, %v", r.ID, ok)
	}
	if !reg.IsRegistered("NAM001") {
		t.Fatal("NAM001 should be registered")
	}
	if reg.IsRegistered("XYZ999") {
		t.Fatal("XYZ999 should not be registered")
	}
	if _, ok := reg.Get("XYZ999"); ok {
		t.Fatal("Get(XYZ999) should report absent")
	}
}

func TestRegistry_ByCategory(t *testing.T) {
	reg := testRegistry(t)
	for _, c := range []Category{CategorySchema, CategoryNaming, CategorySecurity, CategoryLLM, CategoryBestPractice} {
		if len(reg.ByCategory(c)) == 0 {
			t.Fatalf("category %s has no rules", c)
		}
	}
}
