package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/swapchain/errors"
)

// DefaultFreeListSize is the number of btree nodes kept for reuse by a
// stack of cache wraps.
const DefaultFreeListSize = btree.DefaultFreeListSize

// BTreeCacheable turns any KVStore into a CacheableKVStore by layering
// btree caches over it.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a store kept in memory only.
func MemStore() CacheableKVStore {
	var e EmptyKVStore
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// BTreeCacheWrap records writes in a btree and serves reads from it before
// falling back to the wrapped store. Writes are forwarded to batch, which
// is flushed by Write. A transaction runs against a cache wrap so that its
// writes reach the ledger all together or not at all.
type BTreeCacheWrap struct {
	tree  *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap returns a cache over kv. Writes go through batch only,
// never to kv directly. A nil free list allocates a new one.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		tree:  btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap stacks another cache on top of this one, sharing the free list.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write flushes all recorded writes to the wrapped store and empties the
// cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard drops all recorded writes.
func (b BTreeCacheWrap) Discard() {
	b.tree.Clear(true)
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.tree.ReplaceOrInsert(&entry{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.tree.ReplaceOrInsert(&entry{key: key, deleted: true})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	e, err := b.cached(key)
	switch {
	case err != nil:
		return nil, err
	case e == nil:
		return b.back.Get(key)
	case e.deleted:
		return nil, nil
	default:
		return e.value, nil
	}
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	e, err := b.cached(key)
	switch {
	case err != nil:
		return false, err
	case e == nil:
		return b.back.Has(key)
	default:
		return !e.deleted, nil
	}
}

// cached returns the entry recorded for key or nil.
func (b BTreeCacheWrap) cached(key []byte) (*entry, error) {
	switch item := b.tree.Get(pivot(key)).(type) {
	case nil:
		return nil, nil
	case *entry:
		return item, nil
	default:
		return nil, errors.Wrapf(errors.ErrDatabase, "unexpected %T in cache", item)
	}
}

// Iterator walks [start, end) in ascending order, merging the cache with
// the wrapped store.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(collectRange(b.tree, start, end, false), parent, false)
}

// ReverseIterator walks [start, end) in descending order, merging the cache
// with the wrapped store.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(collectRange(b.tree, start, end, true), parent, true)
}

// entry is a write recorded by the cache. A deleted entry hides the key in
// the wrapped store.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = (*entry)(nil)

func (e *entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(*entry).key) < 0
}

// pivot returns an entry usable as a btree search key.
func pivot(key []byte) *entry {
	return &entry{key: key}
}
