package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBTreeCacheGetSet(t *testing.T) {
	committed := BTreeCacheable{EmptyKVStore{}}.CacheWrap()

	maker, balance := []byte("cash:maker-AAA"), []byte("100")
	assertMissing(t, committed, maker)
	require.NoError(t, committed.Set(maker, balance))
	assertValue(t, committed, maker, balance)

	// a delivery reads committed state and keeps its own writes
	delivery := committed.CacheWrap()
	assertValue(t, delivery, maker, balance)
	vault, locked := []byte("cash:vault-AAA"), []byte("40")
	require.NoError(t, delivery.Set(vault, locked))
	require.NoError(t, delivery.Set(maker, []byte("60")))
	assertValue(t, delivery, vault, locked)
	assertMissing(t, committed, vault)
	assertValue(t, committed, maker, balance)

	require.NoError(t, delivery.Write())
	assertValue(t, committed, maker, []byte("60"))
	assertValue(t, committed, vault, locked)

	// a failed delivery leaves nothing behind
	failed := committed.CacheWrap()
	require.NoError(t, failed.Set([]byte("swap:escrow"), []byte("open")))
	require.NoError(t, failed.Delete(vault))
	failed.Discard()
	assertMissing(t, committed, []byte("swap:escrow"))
	assertValue(t, committed, vault, locked)

	closing := committed.CacheWrap()
	require.NoError(t, closing.Delete(vault))
	require.NoError(t, closing.Write())
	assertMissing(t, committed, vault)
	assertValue(t, committed, maker, []byte("60"))
}

func TestBTreeCacheConflicts(t *testing.T) {
	devnull := BTreeCacheable{EmptyKVStore{}}

	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{setOp(ks[1], vs[1]), setOp(ks[2], vs[2])},
			childOps:      []Op{setOp(ks[1], vs[11]), setOp(ks[3], vs[7]), delOp(ks[2])},
			parentQueries: []Model{pair(ks[1], vs[1]), pair(ks[2], vs[2]), pair(ks[3], nil)},
			childQueries:  []Model{pair(ks[1], vs[11]), pair(ks[2], nil), pair(ks[3], vs[7])},
		},
		"delete and set again": {
			parentOps:     []Op{setOp(ks[4], vs[4])},
			childOps:      []Op{delOp(ks[4]), setOp(ks[4], vs[5])},
			parentQueries: []Model{pair(ks[4], vs[4])},
			childQueries:  []Model{pair(ks[4], vs[5])},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			parent := devnull.CacheWrap()
			for _, op := range tc.parentOps {
				require.NoError(t, op.Apply(parent))
			}
			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				require.NoError(t, op.Apply(child))
			}

			for _, q := range tc.parentQueries {
				assertModel(t, parent, q)
			}
			for _, q := range tc.childQueries {
				assertModel(t, child, q)
			}

			require.NoError(t, child.Write())
			for _, q := range tc.childQueries {
				assertModel(t, parent, q)
			}
		})
	}
}

func TestBTreeCacheBasicIterator(t *testing.T) {
	const size = 50
	const deleteCount = 20

	models := make([]Model, size+deleteCount)
	for i := range models {
		models[i].Key = randBytes(8)
		models[i].Value = randBytes(40)
	}

	base := BTreeCacheable{EmptyKVStore{}}.CacheWrap()
	for _, m := range models {
		require.NoError(t, base.Set(m.Key, m.Value))
	}
	for _, m := range models[:deleteCount] {
		require.NoError(t, base.Delete(m.Key))
	}
	models = sortModels(models[deleteCount:])

	verifyIterator(t, models, mustIter(base.Iterator(nil, nil)))
	verifyIterator(t, models[10:], mustIter(base.Iterator(models[10].Key, nil)))
	verifyIterator(t, models[:size-8], mustIter(base.Iterator(nil, models[size-8].Key)))
	verifyIterator(t, models[17:28], mustIter(base.Iterator(models[17].Key, models[28].Key)))

	verifyIterator(t, reverse(models), mustIter(base.ReverseIterator(nil, nil)))
	verifyIterator(t, reverse(models[34:]), mustIter(base.ReverseIterator(models[34].Key, nil)))
	verifyIterator(t, reverse(models[:19]), mustIter(base.ReverseIterator(nil, models[19].Key)))
	verifyIterator(t, reverse(models[6:26]), mustIter(base.ReverseIterator(models[6].Key, models[26].Key)))
}

func TestBTreeCacheIterator(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, base.Set([]byte(k), []byte("parent-"+k)))
	}

	child := base.CacheWrap()
	require.NoError(t, child.Set([]byte("b"), []byte("child-b")))
	require.NoError(t, child.Set([]byte("c"), []byte("child-c")))
	require.NoError(t, child.Delete([]byte("e")))
	require.NoError(t, child.Delete([]byte("x")))

	want := []Model{
		pair([]byte("a"), []byte("parent-a")),
		pair([]byte("b"), []byte("child-b")),
		pair([]byte("c"), []byte("child-c")),
		pair([]byte("g"), []byte("parent-g")),
	}
	verifyIterator(t, want, mustIter(child.Iterator(nil, nil)))
	verifyIterator(t, reverse(want), mustIter(child.ReverseIterator(nil, nil)))
	verifyIterator(t, want[1:3], mustIter(child.Iterator([]byte("b"), []byte("d"))))
}

func TestBTreeCacheIteratorAllowsWrites(t *testing.T) {
	db := MemStore()
	require.NoError(t, db.Set([]byte("a"), []byte("A")))
	require.NoError(t, db.Set([]byte("b"), []byte("B")))

	it, err := db.Iterator(nil, nil)
	require.NoError(t, err)
	defer it.Close()

	var seen int
	for ; it.Valid(); require.NoError(t, it.Next()) {
		require.NoError(t, db.Delete(it.Key()))
		seen++
	}
	assert.Equal(t, 2, seen)
	assertMissing(t, db, []byte("a"))
	assertMissing(t, db, []byte("b"))
}

func mustIter(it Iterator, err error) Iterator {
	if err != nil {
		panic(err)
	}
	return it
}

func verifyIterator(t testing.TB, models []Model, iter Iterator) {
	t.Helper()
	defer iter.Close()
	for i := 0; i < len(models); i++ {
		require.True(t, iter.Valid(), "%d", i)
		assert.Equal(t, models[i].Key, iter.Key(), "%d", i)
		assert.Equal(t, models[i].Value, iter.Value(), "%d", i)
		require.NoError(t, iter.Next())
	}
	assert.False(t, iter.Valid())
}

func assertModel(t testing.TB, kv ReadOnlyKVStore, m Model) {
	t.Helper()
	if m.Value == nil {
		assertMissing(t, kv, m.Key)
	} else {
		assertValue(t, kv, m.Key, m.Value)
	}
}

func assertValue(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	require.NoError(t, err)
	assert.True(t, has)
}

func assertMissing(t testing.TB, kv ReadOnlyKVStore, key []byte) {
	t.Helper()
	got, err := kv.Get(key)
	require.NoError(t, err)
	assert.Nil(t, got)
	has, err := kv.Has(key)
	require.NoError(t, err)
	assert.False(t, has)
}

func setOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

func delOp(key []byte) Op {
	return Op{key: key, remove: true}
}

func pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

func sortModels(models []Model) []Model {
	sort.Slice(models, func(i, j int) bool {
		return bytes.Compare(models[i].Key, models[j].Key) < 0
	})
	return models
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	max := len(models)
	res := make([]Model, max)
	for i := 0; i < max; i++ {
		res[i] = models[max-1-i]
	}
	return res
}

// randKeys returns a slice of count keys, all of length
func randKeys(count, length int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = randBytes(length)
	}
	return res
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	rand.Read(res)
	return res
}
