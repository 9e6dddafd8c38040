package singleton

import (
	"math/rand/v2"
	"sync/atomic"
)

// stats holds registry counters.
type stats struct {
	// hits is bumped on every read of a committed value, so it is sharded
	// to keep concurrent readers off a shared cache line.
	hits shardedCounter

	constructions atomic.Int64
	failures      atomic.Int64
	discarded     atomic.Int64
	injections    atomic.Int64
	rejected      atomic.Int64
	clears        atomic.Int64
}

const counterShards = 32

// paddedCounter occupies its own cache line pair.
type paddedCounter struct {
	n atomic.Int64
	_ [120]byte
}

// shardedCounter is a counter whose increments land on a random shard.
// load sums the shards and is not a snapshot across concurrent adds.
type shardedCounter struct {
	shards [counterShards]paddedCounter
}

func (c *shardedCounter) add(n int64) {
	c.shards[rand.Uint32()%counterShards].n.Add(n)
}

func (c *shardedCounter) load() int64 {
	var sum int64
	for i := range c.shards {
		sum += c.shards[i].n.Load()
	}
	return sum
}
