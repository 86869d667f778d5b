package cooldown

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// ActiveError is returned while an actor is still inside its window.
type ActiveError struct {
	Remaining time.Duration
}

func (e *ActiveError) Error() string {
	return fmt.Sprintf("cooldown active for another %s", e.Remaining.Round(time.Second))
}

// Gate decides whether an activity is allowed given the time of the previous
// one. It never records anything on its own: callers persist the new
// timestamp and may call Remember to prime the fast-reject cache.
//
// The cache only short-circuits obvious repeats. A miss, or an entry that has
// aged out, must still be checked against the persisted timestamp.
type Gate struct {
	window time.Duration
	recent *lru.Cache
}

func New(window time.Duration, cacheSize int) *Gate {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	recent, err := lru.New(cacheSize)
	if err != nil {
		panic(fmt.Sprintf("cooldown: %v", err))
	}
	return &Gate{window: window, recent: recent}
}

func (g *Gate) Window() time.Duration {
	return g.window
}

// Check reports whether an activity at now is allowed after one at last, and
// how long is left otherwise. A zero last always passes.
func (g *Gate) Check(last, now time.Time) (bool, time.Duration) {
	if last.IsZero() {
		return true, 0
	}
	elapsed := now.Sub(last)
	if elapsed >= g.window {
		return true, 0
	}
	return false, g.window - elapsed
}

// Err is Check folded into an error.
func (g *Gate) Err(last, now time.Time) error {
	if ok, remaining := g.Check(last, now); !ok {
		return &ActiveError{Remaining: remaining}
	}
	return nil
}

// FastReject reports a rejection when the cache holds a recent timestamp for
// key. It never allows anything by itself.
func (g *Gate) FastReject(key string, now time.Time) (bool, time.Duration) {
	v, ok := g.recent.Get(key)
	if !ok {
		return false, 0
	}
	allowed, remaining := g.Check(v.(time.Time), now)
	if allowed {
		g.recent.Remove(key)
		return false, 0
	}
	return true, remaining
}

func (g *Gate) Remember(key string, at time.Time) {
	g.recent.Add(key, at)
}

func (g *Gate) Forget(key string) {
	g.recent.Remove(key)
}
