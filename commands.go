package ssdb

import (
	"context"
	"time"
)

// Executor sends one command and returns its classified response.
// Connection implements it.
type Executor interface {
	Do(ctx context.Context, cmd string, args ...any) (*Response, error)
}

// Commands provides named methods for common commands.
// Each method is a thin wrapper over Executor.Do with the arguments in wire
// order; the response Data types are listed on Response. Batch has the same
// methods, queueing instead of sending.
//
// Commands is embedded in Connection, and can wrap any other Executor.
type Commands struct {
	executor Executor
}

// NewCommands creates a Commands instance sending through executor.
func NewCommands(executor Executor) *Commands {
	return &Commands{
		executor: executor,
	}
}

func (c *Commands) do(ctx context.Context, cmd command) (*Response, error) {
	return c.executor.Do(ctx, cmd.name, cmd.args...)
}

func (c *Commands) Ping(ctx context.Context) (*Response, error) {
	return c.do(ctx, pingCommand())
}

func (c *Commands) DBSize(ctx context.Context) (*Response, error) {
	return c.do(ctx, dbsizeCommand())
}

// Set stores value under key.
func (c *Commands) Set(ctx context.Context, key string, value any) (*Response, error) {
	return c.do(ctx, setCommand(key, value))
}

// Setx stores value under key with a time to live, in whole seconds.
func (c *Commands) Setx(ctx context.Context, key string, value any, ttl time.Duration) (*Response, error) {
	return c.do(ctx, setxCommand(key, value, ttl))
}

func (c *Commands) Get(ctx context.Context, key string) (*Response, error) {
	return c.do(ctx, getCommand(key))
}

func (c *Commands) Del(ctx context.Context, key string) (*Response, error) {
	return c.do(ctx, delCommand(key))
}

func (c *Commands) Exists(ctx context.Context, key string) (*Response, error) {
	return c.do(ctx, existsCommand(key))
}

// TTL returns the remaining time to live of key, in seconds, -1 if none.
func (c *Commands) TTL(ctx context.Context, key string) (*Response, error) {
	return c.do(ctx, ttlCommand(key))
}

// Expire sets the time to live of key, in whole seconds.
func (c *Commands) Expire(ctx context.Context, key string, ttl time.Duration) (*Response, error) {
	return c.do(ctx, expireCommand(key, ttl))
}

// Incr adds delta to the counter at key and returns the new value.
// Without delta the server increments by 1.
func (c *Commands) Incr(ctx context.Context, key string, delta ...int64) (*Response, error) {
	return c.do(ctx, incrCommand(key, delta...))
}

func (c *Commands) Decr(ctx context.Context, key string, delta ...int64) (*Response, error) {
	return c.do(ctx, decrCommand(key, delta...))
}

// MultiSet stores every pair, in order.
func (c *Commands) MultiSet(ctx context.Context, kvs ...Pair[string]) (*Response, error) {
	return c.do(ctx, multiSetCommand(kvs...))
}

func (c *Commands) MultiGet(ctx context.Context, keys ...string) (*Response, error) {
	return c.do(ctx, multiGetCommand(keys...))
}

func (c *Commands) MultiDel(ctx context.Context, keys ...string) (*Response, error) {
	return c.do(ctx, multiDelCommand(keys...))
}

func (c *Commands) MultiExists(ctx context.Context, keys ...string) (*Response, error) {
	return c.do(ctx, multiExistsCommand(keys...))
}

// Scan returns up to limit key/value pairs with keyStart < key <= keyEnd.
func (c *Commands) Scan(ctx context.Context, keyStart, keyEnd string, limit int) (*Response, error) {
	return c.do(ctx, scanCommand(keyStart, keyEnd, limit))
}

func (c *Commands) Keys(ctx context.Context, keyStart, keyEnd string, limit int) (*Response, error) {
	return c.do(ctx, keysCommand(keyStart, keyEnd, limit))
}

// Hashes

func (c *Commands) HSet(ctx context.Context, name, key string, value any) (*Response, error) {
	return c.do(ctx, hSetCommand(name, key, value))
}

func (c *Commands) HGet(ctx context.Context, name, key string) (*Response, error) {
	return c.do(ctx, hGetCommand(name, key))
}

func (c *Commands) HDel(ctx context.Context, name, key string) (*Response, error) {
	return c.do(ctx, hDelCommand(name, key))
}

func (c *Commands) HIncr(ctx context.Context, name, key string, delta ...int64) (*Response, error) {
	return c.do(ctx, hIncrCommand(name, key, delta...))
}

func (c *Commands) HDecr(ctx context.Context, name, key string, delta ...int64) (*Response, error) {
	return c.do(ctx, hDecrCommand(name, key, delta...))
}

func (c *Commands) HGetAll(ctx context.Context, name string) (*Response, error) {
	return c.do(ctx, hGetAllCommand(name))
}

// MultiHSet stores every pair in hash name, in order.
func (c *Commands) MultiHSet(ctx context.Context, name string, kvs ...Pair[string]) (*Response, error) {
	return c.do(ctx, multiHSetCommand(name, kvs...))
}

// Sorted sets

// ZSet sets the score of key in sorted set name.
func (c *Commands) ZSet(ctx context.Context, name, key string, score int64) (*Response, error) {
	return c.do(ctx, zSetCommand(name, key, score))
}

// ZAdd takes its arguments in score-before-member order and sends them as
// zset name member score.
func (c *Commands) ZAdd(ctx context.Context, name string, score int64, member string) (*Response, error) {
	return c.do(ctx, zAddCommand(name, score, member))
}

func (c *Commands) ZGet(ctx context.Context, name, key string) (*Response, error) {
	return c.do(ctx, zGetCommand(name, key))
}

func (c *Commands) ZIncr(ctx context.Context, name, key string, delta ...int64) (*Response, error) {
	return c.do(ctx, zIncrCommand(name, key, delta...))
}

func (c *Commands) ZDecr(ctx context.Context, name, key string, delta ...int64) (*Response, error) {
	return c.do(ctx, zDecrCommand(name, key, delta...))
}

func (c *Commands) ZRank(ctx context.Context, name, key string) (*Response, error) {
	return c.do(ctx, zRankCommand(name, key))
}

// ZRevRank returns the rank of key in descending score order (zrrank).
func (c *Commands) ZRevRank(ctx context.Context, name, key string) (*Response, error) {
	return c.do(ctx, zRevRankCommand(name, key))
}

func (c *Commands) ZRange(ctx context.Context, name string, offset, limit int) (*Response, error) {
	return c.do(ctx, zRangeCommand(name, offset, limit))
}

// ZRevRange returns members in descending score order (zrrange).
func (c *Commands) ZRevRange(ctx context.Context, name string, offset, limit int) (*Response, error) {
	return c.do(ctx, zRevRangeCommand(name, offset, limit))
}

// MultiZSet sets every member score of sorted set name, in order.
func (c *Commands) MultiZSet(ctx context.Context, name string, scores ...Pair[int64]) (*Response, error) {
	return c.do(ctx, multiZSetCommand(name, scores...))
}

// Queues

func (c *Commands) QPush(ctx context.Context, name string, items ...string) (*Response, error) {
	return c.do(ctx, qPushCommand(name, items...))
}

// QPop pops up to count items from the front of queue name. The Data is a
// string when count is at most 1, a list otherwise.
func (c *Commands) QPop(ctx context.Context, name string, count int) (*Response, error) {
	return c.do(ctx, qPopCommand(name, count))
}

func (c *Commands) QSize(ctx context.Context, name string) (*Response, error) {
	return c.do(ctx, qSizeCommand(name))
}

// command is a command name with its arguments in wire order.
type command struct {
	name string
	args []any
}

func newCommand(name string, args ...any) command {
	return command{name: name, args: args}
}

func pingCommand() command {
	return newCommand("ping")
}

func dbsizeCommand() command {
	return newCommand("dbsize")
}

func setCommand(key string, value any) command {
	return newCommand("set", key, value)
}

func setxCommand(key string, value any, ttl time.Duration) command {
	return newCommand("setx", key, value, int64(ttl/time.Second))
}

func getCommand(key string) command {
	return newCommand("get", key)
}

func delCommand(key string) command {
	return newCommand("del", key)
}

func existsCommand(key string) command {
	return newCommand("exists", key)
}

func ttlCommand(key string) command {
	return newCommand("ttl", key)
}

func expireCommand(key string, ttl time.Duration) command {
	return newCommand("expire", key, int64(ttl/time.Second))
}

func incrCommand(key string, delta ...int64) command {
	return newCommand("incr", key, delta)
}

func decrCommand(key string, delta ...int64) command {
	return newCommand("decr", key, delta)
}

func multiSetCommand(kvs ...Pair[string]) command {
	return newCommand("multi_set", Map[string](kvs))
}

func multiGetCommand(keys ...string) command {
	return newCommand("multi_get", keys)
}

func multiDelCommand(keys ...string) command {
	return newCommand("multi_del", keys)
}

func multiExistsCommand(keys ...string) command {
	return newCommand("multi_exists", keys)
}

func scanCommand(keyStart, keyEnd string, limit int) command {
	return newCommand("scan", keyStart, keyEnd, limit)
}

func keysCommand(keyStart, keyEnd string, limit int) command {
	return newCommand("keys", keyStart, keyEnd, limit)
}

func hSetCommand(name, key string, value any) command {
	return newCommand("hset", name, key, value)
}

func hGetCommand(name, key string) command {
	return newCommand("hget", name, key)
}

func hDelCommand(name, key string) command {
	return newCommand("hdel", name, key)
}

func hIncrCommand(name, key string, delta ...int64) command {
	return newCommand("hincr", name, key, delta)
}

func hDecrCommand(name, key string, delta ...int64) command {
	return newCommand("hdecr", name, key, delta)
}

func hGetAllCommand(name string) command {
	return newCommand("hgetall", name)
}

func multiHSetCommand(name string, kvs ...Pair[string]) command {
	return newCommand("multi_hset", name, Map[string](kvs))
}

func zSetCommand(name, key string, score int64) command {
	return newCommand("zset", name, key, score)
}

func zAddCommand(name string, score int64, member string) command {
	return newCommand("zset", name, member, score)
}

func zGetCommand(name, key string) command {
	return newCommand("zget", name, key)
}

func zIncrCommand(name, key string, delta ...int64) command {
	return newCommand("zincr", name, key, delta)
}

func zDecrCommand(name, key string, delta ...int64) command {
	return newCommand("zdecr", name, key, delta)
}

func zRankCommand(name, key string) command {
	return newCommand("zrank", name, key)
}

func zRevRankCommand(name, key string) command {
	return newCommand("zrrank", name, key)
}

func zRangeCommand(name string, offset, limit int) command {
	return newCommand("zrange", name, offset, limit)
}

func zRevRangeCommand(name string, offset, limit int) command {
	return newCommand("zrrange", name, offset, limit)
}

func multiZSetCommand(name string, scores ...Pair[int64]) command {
	return newCommand("multi_zset", name, Map[int64](scores))
}

func qPushCommand(name string, items ...string) command {
	return newCommand("qpush", name, items)
}

func qPopCommand(name string, count int) command {
	return newCommand("qpop", name, count)
}

func qSizeCommand(name string) command {
	return newCommand("qsize", name)
}
