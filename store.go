package swapchain

// ReadOnlyKVStore is the read side of the ledger state. Account, escrow
// and signer buckets all read through it.
type ReadOnlyKVStore interface {
	// Get returns nil for a missing key.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	// Iterator walks [start, end) in ascending key order. A nil bound is
	// open. The range must not be written while the iterator is open.
	Iterator(start, end []byte) (Iterator, error)
	// ReverseIterator walks [start, end) in descending key order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side shared by KVStore and Batch. Keys and
// values passed in must not be modified afterwards.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the state a handler receives. A failed transaction leaves
// no trace in it because the host hands out a cache wrap per delivery.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them together on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator is a cursor over a key range:
//
//	it, err := db.Iterator(start, end)
//	...
//	defer it.Close()
//	for ; it.Valid(); it.Next() {
//		key, value := it.Key(), it.Value()
//	}
//
// Next, Key and Value panic once Valid reports false. The returned
// slices must not be modified.
type Iterator interface {
	Valid() bool
	Next() error
	Key() (key []byte)
	Value() (value []byte)
	Close()
}

// CacheableKVStore can open a scratch layer on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap buffers writes over a parent store. Write flushes them to
// the parent, Discard drops them. A cache wrap can be wrapped again,
// which is how nested savepoints are built.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}
