package repository

import (
	"fmt"
	"math/rand"
	"testing"
)

type rankedItem struct {
	id       string
	priority int
}

func (r rankedItem) ID() string    { return r.id }
func (r rankedItem) Priority() int { return r.priority }

// verifyHeap checks the max-heap ordering at every node and that the side
// index points at the slot actually holding each ID.
func verifyHeap(t *testing.T, h *IndexedMaxHeap[rankedItem]) {
	t.Helper()

	for slot := 2; slot <= h.size; slot++ {
		parent := h.slots[slot/2]
		child := h.slots[slot]
		if ranksBelow(parent, child) {
			t.Fatalf("heap order violated: parent %s(%d) below child %s(%d)",
				parent.id, parent.priority, child.id, child.priority)
		}
	}

	if h.positions.Size() != h.size {
		t.Fatalf("side index size %d does not match heap size %d", h.positions.Size(), h.size)
	}
	for slot := 1; slot <= h.size; slot++ {
		indexed, ok := h.positions.Get(h.slots[slot].id)
		if !ok {
			t.Fatalf("side index missing entry for %s", h.slots[slot].id)
		}
		if indexed != slot {
			t.Fatalf("side index for %s points at %d, actual slot %d", h.slots[slot].id, indexed, slot)
		}
	}
}

func TestIndexedMaxHeap_EmptyOperations(t *testing.T) {
	h := NewIndexedMaxHeap[rankedItem]()

	if _, ok := h.Max(); ok {
		t.Error("Max on empty heap should report false")
	}
	if _, ok := h.ExtractMax(); ok {
		t.Error("ExtractMax on empty heap should report false")
	}
	if _, ok := h.RemoveByKey("ghost"); ok {
		t.Error("RemoveByKey on empty heap should report false")
	}
	if h.Size() != 0 {
		t.Errorf("expected size 0, got %d", h.Size())
	}
}

func TestIndexedMaxHeap_InsertAndExtractOrder(t *testing.T) {
	h := NewIndexedMaxHeap[rankedItem](WithHeapCapacity(4), WithIndexCapacity(31))

	items := []rankedItem{
		{"w1", 500},
		{"w2", 900},
		{"w3", 100},
		{"w4", 900},
		{"w5", 700},
	}
	for _, item := range items {
		h.Insert(item)
		verifyHeap(t, h)
	}

	if max, ok := h.Max(); !ok || max.id != "w2" {
		t.Fatalf("expected max w2, got %v", max)
	}

	// Equal scores extract in ascending ID order: w2 before w4.
	wantOrder := []string{"w2", "w4", "w5", "w1", "w3"}
	for _, want := range wantOrder {
		got, ok := h.ExtractMax()
		if !ok {
			t.Fatalf("heap emptied before extracting %s", want)
		}
		if got.id != want {
			t.Errorf("expected %s, got %s", want, got.id)
		}
		verifyHeap(t, h)
	}
	if h.Size() != 0 {
		t.Errorf("expected empty heap, got size %d", h.Size())
	}
}

func TestIndexedMaxHeap_RemoveByKey(t *testing.T) {
	h := NewIndexedMaxHeap[rankedItem](WithHeapCapacity(8))

	for i := 1; i <= 7; i++ {
		h.Insert(rankedItem{id: fmt.Sprintf("w%d", i), priority: i * 100})
	}

	// Remove an interior element.
	removed, ok := h.RemoveByKey("w4")
	if !ok || removed.id != "w4" {
		t.Fatalf("expected to remove w4, got (%v, %v)", removed, ok)
	}
	verifyHeap(t, h)
	if h.Contains("w4") {
		t.Error("w4 still present after removal")
	}
	if h.Size() != 6 {
		t.Errorf("expected size 6, got %d", h.Size())
	}

	// Remove the root.
	removed, ok = h.RemoveByKey("w7")
	if !ok || removed.id != "w7" {
		t.Fatalf("expected to remove w7, got (%v, %v)", removed, ok)
	}
	verifyHeap(t, h)

	// Removing a missing key is a no-op.
	if _, ok := h.RemoveByKey("w4"); ok {
		t.Error("expected removal of missing key to report false")
	}
	if h.Size() != 5 {
		t.Errorf("expected size 5, got %d", h.Size())
	}
}

func TestIndexedMaxHeap_RemoveSoleElement(t *testing.T) {
	h := NewIndexedMaxHeap[rankedItem]()

	h.Insert(rankedItem{id: "only", priority: 42})
	removed, ok := h.RemoveByKey("only")
	if !ok || removed.id != "only" {
		t.Fatalf("expected to remove the sole element, got (%v, %v)", removed, ok)
	}
	if h.Size() != 0 {
		t.Errorf("expected size 0, got %d", h.Size())
	}
	verifyHeap(t, h)
}

func TestIndexedMaxHeap_RemoveLastSlot(t *testing.T) {
	h := NewIndexedMaxHeap[rankedItem](WithHeapCapacity(8))

	for i := 1; i <= 5; i++ {
		h.Insert(rankedItem{id: fmt.Sprintf("w%d", i), priority: i * 10})
	}
	// w1 ended up in the last slot; removing it must not sift anything.
	lastID := h.slots[h.size].id
	if _, ok := h.RemoveByKey(lastID); !ok {
		t.Fatalf("expected to remove %s", lastID)
	}
	verifyHeap(t, h)
	if h.Size() != 4 {
		t.Errorf("expected size 4, got %d", h.Size())
	}
}

func TestIndexedMaxHeap_SiftUpOnRemoval(t *testing.T) {
	// Build a shape where the relocated last element must move up, not down:
	// a large element sitting in a deep right subtree replaces a small hole
	// in the left subtree.
	h := NewIndexedMaxHeap[rankedItem](WithHeapCapacity(16))

	for _, item := range []rankedItem{
		{"r", 1000},
		{"a", 200}, {"b", 900},
		{"c", 100}, {"d", 150}, {"e", 800}, {"f", 850},
	} {
		h.Insert(item)
	}
	verifyHeap(t, h)

	// Removing a leaf under "a" relocates the last element into that deep
	// left position, which outranks its parent.
	if _, ok := h.RemoveByKey("c"); !ok {
		t.Fatal("expected to remove c")
	}
	verifyHeap(t, h)
}

func TestIndexedMaxHeap_GrowthPreservesState(t *testing.T) {
	h := NewIndexedMaxHeap[rankedItem](WithHeapCapacity(2), WithIndexCapacity(13))

	for i := 0; i < 50; i++ {
		h.Insert(rankedItem{id: fmt.Sprintf("w%02d", i), priority: i})
		verifyHeap(t, h)
	}
	if h.Size() != 50 {
		t.Fatalf("expected size 50, got %d", h.Size())
	}

	for i := 49; i >= 0; i-- {
		got, ok := h.ExtractMax()
		if !ok || got.priority != i {
			t.Fatalf("expected priority %d, got (%v, %v)", i, got, ok)
		}
	}
}

func TestIndexedMaxHeap_RandomizedConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	h := NewIndexedMaxHeap[rankedItem](WithHeapCapacity(4), WithIndexCapacity(31))
	live := make(map[string]bool)

	for i := 0; i < 500; i++ {
		switch op := rng.Intn(3); {
		case op == 0 || len(live) == 0:
			id := fmt.Sprintf("w%03d", i)
			h.Insert(rankedItem{id: id, priority: rng.Intn(100) - 50})
			live[id] = true
		case op == 1:
			// Remove an arbitrary live key.
			for id := range live {
				if _, ok := h.RemoveByKey(id); !ok {
					t.Fatalf("RemoveByKey(%s) failed for live key", id)
				}
				delete(live, id)
				break
			}
		default:
			got, ok := h.ExtractMax()
			if !ok {
				t.Fatal("ExtractMax failed on non-empty heap")
			}
			delete(live, got.id)
		}
		verifyHeap(t, h)
		if h.Size() != len(live) {
			t.Fatalf("heap size %d, expected %d", h.Size(), len(live))
		}
	}
}
