package auth

import (
	"testing"
	"time"
)

func TestKeyCache_MissThenHit(t *testing.T) {
	c := NewKeyCache(time.Minute)

	if res := c.Get("mlk_missing1"); res.Hit {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Set("mlk_present1", &ProjectContext{ProjectID: "p1"})
	res := c.Get("mlk_present1")
	if !res.Hit || res.NeedsRefresh {
		t.Fatalf("result = %+v, want fresh hit", res)
	}
	if res.Project.ProjectID != "p1" {
		t.Fatalf("project = %+v", res.Project)
	}
}

func TestKeyCache_StaleEntryTriggersOneRefresh(t *testing.T) {
	c := NewKeyCache(time.Millisecond)
	c.Set("mlk_stale123", &ProjectContext{ProjectID: "p1"})
	time.Sleep(5 * time.Millisecond)

	// The stale entry is still served, but only the first caller is told to
	// refresh it.
	first := c.Get("mlk_stale123")
	if !first.Hit || !first.NeedsRefresh {
		t.Fatalf("first = %+v, want stale hit with refresh", first)
	}
	second := c.Get("mlk_stale123")
	if !second.Hit || second.NeedsRefresh {
		t.Fatalf("second = %+v, want stale hit without refresh", second)
	}

	// A fresh Set resets both the TTL and the refresh latch.
	c.Set("mlk_stale123", &ProjectContext{ProjectID: "p2"})
	res := c.Get("mlk_stale123")
	if !res.Hit || res.NeedsRefresh || res.Project.ProjectID != "p2" {
		t.Fatalf("after reset = %+v", res)
	}
}

func TestKeyCache_Delete(t *testing.T) {
	c := NewKeyCache(time.Minute)
	c.Set("mlk_gone1234", &ProjectContext{ProjectID: "p1"})
	c.Delete("mlk_gone1234")
	if res := c.Get("mlk_gone1234"); res.Hit {
		t.Fatal("deleted entry still served")
	}
}
