// Package coarsetime provides a clock refreshed every 50ms by a background
// goroutine, for timestamps that do not need to be precise, like the last use
// of a connection. Reading it is a single atomic load.
package coarsetime

import (
	"sync/atomic"
	"time"
)

const Resolution = 50 * time.Millisecond

var now atomic.Pointer[time.Time]

func init() {
	store(time.Now())

	ticker := time.NewTicker(Resolution)
	go func() {
		for t := range ticker.C {
			store(t)
		}
	}()
}

func store(t time.Time) {
	now.Store(&t)
}

// Now returns the current time, at most Resolution old.
func Now() time.Time {
	return *now.Load()
}
