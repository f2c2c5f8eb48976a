package repository

// Default capacities sized for the position index and service queues.
const (
	defaultStoreCapacity = 50077
	defaultHeapCapacity  = 10000
)

// StoreOption applies a configuration option to a KeyedStore.
type StoreOption func(*storeConfig)

type storeConfig struct {
	capacity int
}

// WithCapacity sets the fixed bucket count of the store.
func WithCapacity(capacity int) StoreOption {
	return func(c *storeConfig) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

// HeapOption applies a configuration option to an IndexedMaxHeap.
type HeapOption func(*heapConfig)

type heapConfig struct {
	capacity      int
	indexCapacity int
}

// WithHeapCapacity sets the initial slot count of the backing array.
func WithHeapCapacity(capacity int) HeapOption {
	return func(c *heapConfig) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

// WithIndexCapacity sets the bucket count of the side index.
func WithIndexCapacity(capacity int) HeapOption {
	return func(c *heapConfig) {
		if capacity > 0 {
			c.indexCapacity = capacity
		}
	}
}
