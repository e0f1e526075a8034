package ssdb

import (
	"github.com/pior/ssdb/internal"
	"github.com/zeebo/xxh3"
)

// ServerSelector maps a key to the index of one of n servers.
// It is only called with n > 0.
type ServerSelector func(key string, n int) int

// DefaultServerSelector hashes the key with xxh3 and places it with Jump Hash,
// so growing the server list by one moves only about 1/n of the keys.
func DefaultServerSelector(key string, n int) int {
	return internal.JumpHash(xxh3.HashString(key), n)
}

// staticSelector is used in tests to always select a specific server.
func staticSelector(index int) ServerSelector {
	return func(key string, n int) int {
		return index % n
	}
}
