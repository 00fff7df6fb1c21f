package orm

import (
	swapchain "github.com/iov-one/swapchain"
)

// queryPrefix returns all models with a key starting with given prefix.
// Bucket prefix is trimmed from the returned keys.
func queryPrefix(db swapchain.ReadOnlyKVStore, bucketPrefix, prefix []byte) ([]swapchain.Model, error) {
	it, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	res, err := ConsumeIterator(it)
	if err != nil {
		return nil, err
	}
	for i := range res {
		res[i].Key = res[i].Key[len(bucketPrefix):]
	}
	return res, nil
}

// ConsumeIterator will read all remaining data into an
// array and close the iterator
func ConsumeIterator(it swapchain.Iterator) ([]swapchain.Model, error) {
	defer it.Close()

	var res []swapchain.Model
	for it.Valid() {
		res = append(res, swapchain.Model{
			Key:   append([]byte(nil), it.Key()...),
			Value: append([]byte(nil), it.Value()...),
		})
		if err := it.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// prefixRange turns a prefix into a (start, end) range. The end is the
// smallest key greater than all keys with given prefix, or nil if there is
// no such key.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		return nil, nil
	}
	start := append([]byte(nil), prefix...)
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return start, end[:i+1]
		}
	}
	return start, nil
}
