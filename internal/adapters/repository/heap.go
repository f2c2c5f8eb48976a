package repository

// Ranked is implemented by entities stored in an IndexedMaxHeap.
type Ranked interface {
	// ID returns the entity's unique key.
	ID() string
	// Priority returns the entity's current composite score.
	Priority() int
}

// IndexedMaxHeap is a binary max-heap over a 1-indexed backing array (slot 0
// unused), augmented with a KeyedStore side index mapping entity ID to slot
// so an arbitrary entity can be removed in O(log n).
//
// Ordering: Priority descending, then ID ascending (the lexicographically
// smaller ID wins ties). The side index is updated in the same step as every
// relocation, so index and array are consistent whenever a public operation
// returns.
type IndexedMaxHeap[T Ranked] struct {
	size      int
	slots     []T
	positions *KeyedStore[int]
}

// NewIndexedMaxHeap constructs a heap with configuration options.
func NewIndexedMaxHeap[T Ranked](opts ...HeapOption) *IndexedMaxHeap[T] {
	cfg := heapConfig{
		capacity:      defaultHeapCapacity,
		indexCapacity: defaultStoreCapacity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &IndexedMaxHeap[T]{
		slots:     make([]T, cfg.capacity+1),
		positions: NewKeyedStore[int](WithCapacity(cfg.indexCapacity)),
	}
}

// ranksBelow reports whether a ranks below b under the heap ordering.
func ranksBelow[T Ranked](a, b T) bool {
	if a.Priority() != b.Priority() {
		return a.Priority() < b.Priority()
	}
	return a.ID() > b.ID()
}

// Size returns the number of entities in the heap.
func (h *IndexedMaxHeap[T]) Size() int {
	return h.size
}

// Contains reports whether an entity with the given ID is in the heap.
func (h *IndexedMaxHeap[T]) Contains(id string) bool {
	return h.positions.Contains(id)
}

// Insert adds an entity, growing the backing array when full.
func (h *IndexedMaxHeap[T]) Insert(item T) {
	if h.size == len(h.slots)-1 {
		h.grow(len(h.slots)*2 + 1)
	}
	h.size++
	h.slots[h.size] = item
	h.positions.Put(item.ID(), h.size)
	h.siftUp(h.size)
}

// Max returns the highest-priority entity without removing it.
func (h *IndexedMaxHeap[T]) Max() (T, bool) {
	var zero T
	if h.size == 0 {
		return zero, false
	}
	return h.slots[1], true
}

// ExtractMax removes and returns the highest-priority entity.
func (h *IndexedMaxHeap[T]) ExtractMax() (T, bool) {
	var zero T
	if h.size == 0 {
		return zero, false
	}

	top := h.slots[1]
	h.positions.Remove(top.ID())

	last := h.slots[h.size]
	h.slots[h.size] = zero
	h.size--

	if h.size > 0 {
		h.slots[1] = last
		h.positions.Put(last.ID(), 1)
		h.siftDown(1)
	}
	return top, true
}

// RemoveByKey removes the entity with the given ID, located via the side
// index. The vacated slot is filled with the last entity, which is then
// sifted up or down (exactly one of the two) to restore ordering.
func (h *IndexedMaxHeap[T]) RemoveByKey(id string) (T, bool) {
	var zero T
	slot, ok := h.positions.Get(id)
	if !ok {
		return zero, false
	}

	removed := h.slots[slot]
	h.positions.Remove(id)

	last := h.slots[h.size]
	h.slots[h.size] = zero
	h.size--

	// Removing the last slot needs no relocation.
	if slot == h.size+1 || h.size == 0 {
		return removed, true
	}

	h.slots[slot] = last
	h.positions.Put(last.ID(), slot)

	if slot > 1 && ranksBelow(h.slots[slot/2], last) {
		h.siftUp(slot)
	} else {
		h.siftDown(slot)
	}
	return removed, true
}

func (h *IndexedMaxHeap[T]) siftUp(slot int) {
	item := h.slots[slot]
	for slot > 1 && ranksBelow(h.slots[slot/2], item) {
		parent := h.slots[slot/2]
		h.slots[slot] = parent
		h.positions.Put(parent.ID(), slot)
		slot /= 2
	}
	h.slots[slot] = item
	h.positions.Put(item.ID(), slot)
}

func (h *IndexedMaxHeap[T]) siftDown(slot int) {
	item := h.slots[slot]
	for slot*2 <= h.size {
		child := slot * 2
		// Pick the larger child.
		if child != h.size && ranksBelow(h.slots[child], h.slots[child+1]) {
			child++
		}
		if !ranksBelow(item, h.slots[child]) {
			break
		}
		moved := h.slots[child]
		h.slots[slot] = moved
		h.positions.Put(moved.ID(), slot)
		slot = child
	}
	h.slots[slot] = item
	h.positions.Put(item.ID(), slot)
}

// grow resizes the backing array, preserving all slots and the side index.
func (h *IndexedMaxHeap[T]) grow(newCapacity int) {
	slots := make([]T, newCapacity)
	copy(slots, h.slots)
	h.slots = slots
}
