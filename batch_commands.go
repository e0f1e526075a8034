package ssdb

import "time"

// Named commands queued on a batch. See Commands for their semantics.

func (b *Batch) add(cmd command) *Batch {
	return b.Do(cmd.name, cmd.args...)
}

func (b *Batch) Ping() *Batch {
	return b.add(pingCommand())
}

func (b *Batch) DBSize() *Batch {
	return b.add(dbsizeCommand())
}

func (b *Batch) Set(key string, value any) *Batch {
	return b.add(setCommand(key, value))
}

func (b *Batch) Setx(key string, value any, ttl time.Duration) *Batch {
	return b.add(setxCommand(key, value, ttl))
}

func (b *Batch) Get(key string) *Batch {
	return b.add(getCommand(key))
}

func (b *Batch) Del(key string) *Batch {
	return b.add(delCommand(key))
}

func (b *Batch) Exists(key string) *Batch {
	return b.add(existsCommand(key))
}

func (b *Batch) TTL(key string) *Batch {
	return b.add(ttlCommand(key))
}

func (b *Batch) Expire(key string, ttl time.Duration) *Batch {
	return b.add(expireCommand(key, ttl))
}

func (b *Batch) Incr(key string, delta ...int64) *Batch {
	return b.add(incrCommand(key, delta...))
}

func (b *Batch) Decr(key string, delta ...int64) *Batch {
	return b.add(decrCommand(key, delta...))
}

func (b *Batch) MultiSet(kvs ...Pair[string]) *Batch {
	return b.add(multiSetCommand(kvs...))
}

func (b *Batch) MultiGet(keys ...string) *Batch {
	return b.add(multiGetCommand(keys...))
}

func (b *Batch) MultiDel(keys ...string) *Batch {
	return b.add(multiDelCommand(keys...))
}

func (b *Batch) MultiExists(keys ...string) *Batch {
	return b.add(multiExistsCommand(keys...))
}

func (b *Batch) Scan(keyStart, keyEnd string, limit int) *Batch {
	return b.add(scanCommand(keyStart, keyEnd, limit))
}

func (b *Batch) Keys(keyStart, keyEnd string, limit int) *Batch {
	return b.add(keysCommand(keyStart, keyEnd, limit))
}

// Hashes

func (b *Batch) HSet(name, key string, value any) *Batch {
	return b.add(hSetCommand(name, key, value))
}

func (b *Batch) HGet(name, key string) *Batch {
	return b.add(hGetCommand(name, key))
}

func (b *Batch) HDel(name, key string) *Batch {
	return b.add(hDelCommand(name, key))
}

func (b *Batch) HIncr(name, key string, delta ...int64) *Batch {
	return b.add(hIncrCommand(name, key, delta...))
}

func (b *Batch) HDecr(name, key string, delta ...int64) *Batch {
	return b.add(hDecrCommand(name, key, delta...))
}

func (b *Batch) HGetAll(name string) *Batch {
	return b.add(hGetAllCommand(name))
}

func (b *Batch) MultiHSet(name string, kvs ...Pair[string]) *Batch {
	return b.add(multiHSetCommand(name, kvs...))
}

// Sorted sets

func (b *Batch) ZSet(name, key string, score int64) *Batch {
	return b.add(zSetCommand(name, key, score))
}

func (b *Batch) ZAdd(name string, score int64, member string) *Batch {
	return b.add(zAddCommand(name, score, member))
}

func (b *Batch) ZGet(name, key string) *Batch {
	return b.add(zGetCommand(name, key))
}

func (b *Batch) ZIncr(name, key string, delta ...int64) *Batch {
	return b.add(zIncrCommand(name, key, delta...))
}

func (b *Batch) ZDecr(name, key string, delta ...int64) *Batch {
	return b.add(zDecrCommand(name, key, delta...))
}

func (b *Batch) ZRank(name, key string) *Batch {
	return b.add(zRankCommand(name, key))
}

func (b *Batch) ZRevRank(name, key string) *Batch {
	return b.add(zRevRankCommand(name, key))
}

func (b *Batch) ZRange(name string, offset, limit int) *Batch {
	return b.add(zRangeCommand(name, offset, limit))
}

func (b *Batch) ZRevRange(name string, offset, limit int) *Batch {
	return b.add(zRevRangeCommand(name, offset, limit))
}

func (b *Batch) MultiZSet(name string, scores ...Pair[int64]) *Batch {
	return b.add(multiZSetCommand(name, scores...))
}

// Queues

func (b *Batch) QPush(name string, items ...string) *Batch {
	return b.add(qPushCommand(name, items...))
}

func (b *Batch) QPop(name string, count int) *Batch {
	return b.add(qPopCommand(name, count))
}

func (b *Batch) QSize(name string) *Batch {
	return b.add(qSizeCommand(name))
}
