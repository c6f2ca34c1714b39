package reference

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// cached decorates a Vocabulary with an expiring lookup cache. Public
// vocabularies typically sit behind a network fetch, and the same handful
// of values is looked up once per reconciliation call.
type cached struct {
	inner Vocabulary
	cache *gocache.Cache
}

type cachedEntry struct {
	entry Entry
	found bool
}

// DefaultTTL is the default lifetime of a cached lookup.
const DefaultTTL = 15 * time.Minute

// Cached wraps a vocabulary with an expiring lookup cache. Negative results
// are cached too.
func Cached(inner Vocabulary, ttl time.Duration) Vocabulary {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &cached{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Name implements Vocabulary.
func (c *cached) Name() string {
	return c.inner.Name()
}

// Lookup implements Vocabulary.
func (c *cached) Lookup(value string, ctx map[string]string) (Entry, bool) {
	key := normalize(value)
	if ctx != nil && ctx["organism"] != "" {
		key += "\x00" + ctx["organism"]
	}
	if hit, ok := c.cache.Get(key); ok {
		ce := hit.(cachedEntry)
		return ce.entry, ce.found
	}
	entry, found := c.inner.Lookup(value, ctx)
	c.cache.SetDefault(key, cachedEntry{entry: entry, found: found})
	return entry, found
}
