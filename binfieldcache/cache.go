// Package binfieldcache provides a concurrent schema registry (xsync.Map)
// and a TTL-bounded decode cache (ttlcache) for binfield. Both are useful
// when the same handful of schemas decode a high-frequency stream of
// records and repeated byte-identical frames are common (e.g. a device
// that resends its last status on every poll).
package binfieldcache

import (
	"crypto/sha256"
	"time"

	"github.com/aldas/go-binfield"
	"github.com/jellydator/ttlcache/v3"
	"github.com/puzpuzpuz/xsync/v4"
)

// Registry is a concurrent-safe lookup of schemas by name, built on
// xsync.Map so readers never block a concurrent registration.
type Registry struct {
	schemas *xsync.Map[string, *binfield.Schema]
}

// NewRegistry creates an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{schemas: xsync.NewMap[string, *binfield.Schema]()}
}

// Register adds s under its own Name, replacing any prior schema of the
// same name.
func (r *Registry) Register(s *binfield.Schema) {
	r.schemas.Store(s.Name, s)
}

// Lookup returns the registered schema for name, if any.
func (r *Registry) Lookup(name string) (*binfield.Schema, bool) {
	return r.schemas.Load(name)
}

// DecodeCache memoizes Schema.ParseBytes results for a bounded time,
// keyed on the schema name and a digest of the input bytes.
type DecodeCache struct {
	schema *binfield.Schema
	cache  *ttlcache.Cache[string, *binfield.Record]
}

// NewDecodeCache wraps schema with a decode cache holding entries for ttl.
// Callers must call Start (in a goroutine) to run background eviction, and
// Stop to release it.
func NewDecodeCache(schema *binfield.Schema, ttl time.Duration) *DecodeCache {
	c := ttlcache.New[string, *binfield.Record](
		ttlcache.WithTTL[string, *binfield.Record](ttl),
	)
	return &DecodeCache{schema: schema, cache: c}
}

// Start runs the cache's background eviction loop until Stop is called.
// Call it in its own goroutine.
func (d *DecodeCache) Start() { d.cache.Start() }

// Stop halts the background eviction loop.
func (d *DecodeCache) Stop() { d.cache.Stop() }

func (d *DecodeCache) key(data []byte) string {
	sum := sha256.Sum256(data)
	return d.schema.Name + ":" + string(sum[:])
}

// ParseBytes returns a cached record for byte-identical input seen within
// ttl, parsing and caching it otherwise.
func (d *DecodeCache) ParseBytes(data []byte) (*binfield.Record, int, error) {
	k := d.key(data)
	if item := d.cache.Get(k); item != nil {
		return item.Value(), len(data), nil
	}
	rec, n, err := d.schema.ParseBytes(data)
	if err != nil {
		return nil, n, err
	}
	d.cache.Set(k, rec, ttlcache.DefaultTTL)
	return rec, n, nil
}
