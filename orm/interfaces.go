package orm

import (
	swapchain "github.com/iov-one/swapchain"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	swapchain.Persistent
	// Validate returns error if the model is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
}

// Index maintains and provides access to a secondary index of a bucket.
type Index interface {
	swapchain.QueryHandler

	// Name returns the name of this index.
	Name() string

	// Update updates the index. It should be called when any of the bucket
	// entities has changed in the store.
	//
	// prev == nil means insert
	// next == nil means delete
	// both == nil is error
	Update(db swapchain.KVStore, key []byte, prev, next Model) error

	// Keys returns all entity keys that were indexed under given value.
	Keys(db swapchain.ReadOnlyKVStore, value []byte) ([][]byte, error)
}

// Indexer calculates the secondary index key for a given model. A nil key
// means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// MultiKeyIndexer calculates the secondary index keys for a given model
type MultiKeyIndexer func(Model) ([][]byte, error)

func asMultiKeyIndexer(indexer Indexer) MultiKeyIndexer {
	return func(m Model) ([][]byte, error) {
		key, err := indexer(m)
		switch {
		case err != nil:
			return nil, err
		case key == nil:
			return nil, nil
		}
		return [][]byte{key}, nil
	}
}
