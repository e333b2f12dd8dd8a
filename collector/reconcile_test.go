package collector

import (
	"testing"
)

func TestReconcileDiff(t *testing.T) {
	store := newFakeStore()
	c := newTestCollector(t, store, newFakeDB(), nil)
	store.values[keyPilots] = "A|B|C"

	removed := c.reconcile(keyPilots, "PILOT", []string{"B", "C", "D"})

	if len(removed) != 1 || removed[0] != "A" {
		t.Errorf("removed = %v, want [A]", removed)
	}
	if n := store.countOps("PUB PILOT:DELETE"); n != 1 {
		t.Errorf("delete publishes = %d, want 1", n)
	}
	// Every current member is republished, not only new arrivals.
	if n := store.countOps("PUB PILOT:UPDATE"); n != 3 {
		t.Errorf("update publishes = %d, want 3", n)
	}
	if got := store.values[keyPilots]; got != "B|C|D" {
		t.Errorf("membership = %q, want B|C|D", got)
	}
}

func TestReconcileRemovalsPrecedeReplace(t *testing.T) {
	store := newFakeStore()
	c := newTestCollector(t, store, newFakeDB(), nil)
	store.values[keyPilots] = "A|B"

	c.reconcile(keyPilots, "PILOT", []string{"B"})

	del := store.opIndex("PUB PILOT:DELETE A")
	set := store.opIndex("SET " + keyPilots)
	if del == -1 || set == -1 {
		t.Fatalf("missing expected ops, got %v", store.ops)
	}
	if del > set {
		t.Errorf("removal published after membership replace: %v", store.ops)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	store := newFakeStore()
	c := newTestCollector(t, store, newFakeDB(), nil)

	current := []string{"A", "B"}
	c.reconcile(keyPilots, "PILOT", current)

	store.ops = nil
	c.reconcile(keyPilots, "PILOT", current)

	if n := store.countOps("PUB PILOT:DELETE"); n != 0 {
		t.Errorf("unchanged snapshot produced %d delete publishes, want 0", n)
	}
	if got := store.values[keyPilots]; got != "A|B" {
		t.Errorf("membership = %q, want A|B", got)
	}
}

func TestReconcileMissingPrevious(t *testing.T) {
	store := newFakeStore()
	c := newTestCollector(t, store, newFakeDB(), nil)

	// No previous membership (e.g. after restart or TTL lapse):
	// everything is newly added, nothing is removed.
	removed := c.reconcile(keyPilots, "PILOT", []string{"A", "B"})

	if len(removed) != 0 {
		t.Errorf("removed = %v, want none", removed)
	}
	if n := store.countOps("PUB PILOT:UPDATE"); n != 2 {
		t.Errorf("update publishes = %d, want 2", n)
	}
}
