package broker

import (
	"hash/fnv"
	"sync"
)

const lockShards = 64

// keyLock serializes operations that share the same key. Keys hash onto a
// fixed set of shards, so unrelated keys may occasionally contend but a
// given key always maps to the same mutex.
type keyLock struct {
	shards [lockShards]sync.Mutex
}

func newKeyLock() *keyLock {
	return &keyLock{}
}

func (l *keyLock) Lock(key string) {
	l.shards[shardFor(key)].Lock()
}

func (l *keyLock) Unlock(key string) {
	l.shards[shardFor(key)].Unlock()
}

func shardFor(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32() % lockShards
}
