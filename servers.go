package ssdb

import (
	"context"
	"errors"
	"slices"
)

var ErrNoServers = errors.New("ssdb: no servers available")

// Servers is a fixed list of SSDB server addresses with key-based selection.
// SSDB has no cluster protocol: sharding keys over several servers is entirely
// up to the client, and a key must always be sent to the same server.
type Servers struct {
	addrs    []string
	selector ServerSelector
}

// NewServers creates a server list using DefaultServerSelector.
func NewServers(addrs ...string) *Servers {
	return &Servers{
		addrs:    slices.Clone(addrs),
		selector: DefaultServerSelector,
	}
}

// WithSelector returns a copy of s that selects servers with selector.
func (s *Servers) WithSelector(selector ServerSelector) *Servers {
	return &Servers{addrs: s.addrs, selector: selector}
}

// List returns a copy of the server addresses.
func (s *Servers) List() []string {
	return slices.Clone(s.addrs)
}

// Pick returns the address of the server owning key.
func (s *Servers) Pick(key string) (string, error) {
	switch len(s.addrs) {
	case 0:
		return "", ErrNoServers
	case 1:
		return s.addrs[0], nil
	}
	return s.addrs[s.selector(key, len(s.addrs))], nil
}

// DialKey connects to the server owning key.
func DialKey(ctx context.Context, servers *Servers, key string, opts ...Option) (*Connection, error) {
	addr, err := servers.Pick(key)
	if err != nil {
		return nil, err
	}
	return Dial(ctx, addr, opts...)
}
