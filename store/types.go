package store

import swapchain "github.com/iov-one/swapchain"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = swapchain.ReadOnlyKVStore
type SetDeleter = swapchain.SetDeleter
type KVStore = swapchain.KVStore
type Batch = swapchain.Batch
type Iterator = swapchain.Iterator
type CacheableKVStore = swapchain.CacheableKVStore
type KVCacheWrap = swapchain.KVCacheWrap
type Model = swapchain.Model
