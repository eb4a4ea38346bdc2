package detect

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// cache memoizes detection results by (operation identity, argument types).
// A key is evaluated at most once, concurrent requesters of the same key share a single evaluation.
// Hard errors are not stored.
type cache struct {
	mutex   sync.RWMutex
	results map[string]Result
	flight  singleflight.Group

	hits        int64
	evaluations int64
}

type Stats struct {
	// Hits is the number of lookups served from the cache.
	Hits int64
	// Evaluations is the number of times an Op was actually applied.
	Evaluations int64
}

func cacheKey(op Op, args []Type) string {
	var b strings.Builder
	b.WriteString(op.Name())
	for _, arg := range args {
		// the address of the runtime type descriptor identifies a Go type for the lifetime of the program
		fmt.Fprintf(&b, "|%p", arg.rtype)
		if arg.addressable {
			b.WriteString("&")
		}
	}
	return b.String()
}

func (c *cache) lookup(key string) (Result, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	r, ok := c.results[key]
	return r, ok
}

func (c *cache) GetOrEval(key string, eval func() (Result, error)) (Result, error) {
	if r, ok := c.lookup(key); ok {
		atomic.AddInt64(&c.hits, 1)
		return r, nil
	}
	v, err, _ := c.flight.Do(key, func() (any, error) {
		if r, ok := c.lookup(key); ok {
			atomic.AddInt64(&c.hits, 1)
			return r, nil
		}
		r, err := eval()
		if err != nil {
			return nil, err
		}
		atomic.AddInt64(&c.evaluations, 1)
		c.mutex.Lock()
		defer c.mutex.Unlock()
		if c.results == nil {
			c.results = make(map[string]Result)
		}
		c.results[key] = r
		return r, nil
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (c *cache) Stats() Stats {
	return Stats{
		Hits:        atomic.LoadInt64(&c.hits),
		Evaluations: atomic.LoadInt64(&c.evaluations),
	}
}
