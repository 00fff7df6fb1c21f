package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/swapchain/errors"
)

// collectRange returns a snapshot of all btree items within [start, end),
// in descending order when reverse is set. Copying the items out allows the
// cache to be modified while an iterator is open.
func collectRange(bt *btree.BTree, start, end []byte, reverse bool) []*entry {
	var items []*entry
	collect := func(i btree.Item) bool {
		items = append(items, i.(*entry))
		return true
	}

	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(pivot(end), collect)
	case end == nil:
		bt.AscendGreaterOrEqual(pivot(start), collect)
	default:
		bt.AscendRange(pivot(start), pivot(end), collect)
	}

	if reverse {
		for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
			items[i], items[j] = items[j], items[i]
		}
	}
	return items
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// mergeIterator combines the cached items with the results of the parent
// store, taking into consideration overwrites and deletes.
type mergeIterator struct {
	items   []*entry
	idx     int
	parent  Iterator
	reverse bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []*entry, parent Iterator, reverse bool) (*mergeIterator, error) {
	it := &mergeIterator{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
	if err := it.skipAllDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

// Valid implements Iterator and returns true iff it can be read
func (i *mergeIterator) Valid() bool {
	return i.ourValid() || i.parentValid()
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
func (i *mergeIterator) Next() error {
	switch i.firstKey() {
	case us:
		i.idx++
	case both:
		i.idx++
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		return errors.Wrap(errors.ErrDatabase, "iterator advanced past the end")
	}
	return i.skipAllDeleted()
}

// Key returns the key of the cursor.
func (i *mergeIterator) Key() []byte {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].key
	case parent:
		return i.parent.Key()
	default:
		panic("iterator advanced past the end")
	}
}

// Value returns the value of the cursor.
func (i *mergeIterator) Value() []byte {
	switch i.firstKey() {
	case us, both:
		return i.items[i.idx].value
	case parent:
		return i.parent.Value()
	default:
		panic("iterator advanced past the end")
	}
}

// Close releases the Iterator.
func (i *mergeIterator) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.items = nil
	i.idx = 0
}

// skipAllDeleted jumps over all deleted entries at the current position.
// A deletion also hides the parent entry with the same key.
func (i *mergeIterator) skipAllDeleted() error {
	for {
		src := i.firstKey()
		if src != us && src != both {
			return nil
		}
		if !i.items[i.idx].deleted {
			return nil
		}
		i.idx++
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// firstKey selects the iterator that holds the next key in iteration order.
func (i *mergeIterator) firstKey() source {
	ourOK, parentOK := i.ourValid(), i.parentValid()
	switch {
	case !ourOK && !parentOK:
		return none
	case !parentOK:
		return us
	case !ourOK:
		return parent
	}

	cmp := bytes.Compare(i.parent.Key(), i.items[i.idx].key)
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

func (i *mergeIterator) ourValid() bool {
	return i.idx < len(i.items)
}

// makes sure the parent is non-nil before checking if it is valid
func (i *mergeIterator) parentValid() bool {
	return i.parent != nil && i.parent.Valid()
}
