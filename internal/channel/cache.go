package channel

import (
	"context"
	"log/slog"
	"sync"

	"zigbee-channels/internal/zcl"
)

// Cache holds the last known value of one cluster's attributes. Values enter
// through attribute reports and through reads issued by the Get family;
// absence means the value was never seen, not zero. Every store runs the
// persistence hook so values survive a restart. Attributes the device has
// reported as unsupported are remembered and excluded from later cache-miss
// reads, so sleepy devices are not polled again for values they will never
// have.
type Cache struct {
	cluster Cluster
	log     *slog.Logger
	onPut   func(zcl.AttributeID, any)

	mu          sync.RWMutex
	values      map[zcl.AttributeID]any
	unsupported map[zcl.AttributeID]struct{}
}

func newCache(cluster Cluster, log *slog.Logger, onPut func(zcl.AttributeID, any)) *Cache {
	return &Cache{
		cluster:     cluster,
		log:         log,
		onPut:       onPut,
		values:      make(map[zcl.AttributeID]any),
		unsupported: make(map[zcl.AttributeID]struct{}),
	}
}

// Peek returns the cached value without any device traffic.
func (c *Cache) Peek(id zcl.AttributeID) (any, bool) {
	c.mu.RLock()
	v, ok := c.values[id]
	c.mu.RUnlock()
	return v, ok
}

// Put stores a value and runs the persistence hook. Newer values always win.
func (c *Cache) Put(id zcl.AttributeID, value any) {
	c.mu.Lock()
	c.values[id] = value
	c.mu.Unlock()
	if c.onPut != nil {
		c.onPut(id, value)
	}
}

// Seed preloads values restored from disk. The persistence hook does not run
// for seeded values.
func (c *Cache) Seed(values map[zcl.AttributeID]any) {
	c.mu.Lock()
	for id, v := range values {
		c.values[id] = v
	}
	c.mu.Unlock()
}

// Snapshot copies the cache contents.
func (c *Cache) Snapshot() map[zcl.AttributeID]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[zcl.AttributeID]any, len(c.values))
	for id, v := range c.values {
		out[id] = v
	}
	return out
}

// Get returns one attribute value. With allowCache set, a cached value is
// served without device traffic; a miss, or allowCache false, reads from the
// device. Failed reads are logged and come back as unknown.
func (c *Cache) Get(ctx context.Context, id zcl.AttributeID, allowCache bool) (any, bool) {
	got := c.GetMany(ctx, []zcl.AttributeID{id}, allowCache)
	v, ok := got[id]
	return v, ok
}

// GetMany resolves a set of attributes, reading all cache misses from the
// device in a single request. Known-unsupported attributes are not re-read
// on the cached path; a bypass read retries them. The result holds only
// attributes with a known value; callers tolerate partial results.
func (c *Cache) GetMany(ctx context.Context, ids []zcl.AttributeID, allowCache bool) map[zcl.AttributeID]any {
	out := make(map[zcl.AttributeID]any, len(ids))
	var missing []zcl.AttributeID
	for _, id := range ids {
		if allowCache {
			if v, ok := c.Peek(id); ok {
				out[id] = v
				continue
			}
			if c.isUnsupported(id) {
				continue
			}
		}
		missing = append(missing, id)
	}
	if len(missing) == 0 {
		return out
	}

	records, err := c.cluster.ReadAttributes(ctx, missing)
	if err != nil {
		c.log.Warn("attribute read failed", "attrs", len(missing), "err", err)
		return out
	}
	for _, id := range missing {
		rec, ok := records[id]
		if !ok {
			continue
		}
		if rec.Status != zcl.StatusSuccess {
			if rec.Status == zcl.StatusUnsupportedAttribute {
				c.markUnsupported(id)
			}
			c.log.Debug("attribute unavailable", "attr", id, "status", rec.Status)
			continue
		}
		c.Put(id, rec.Value)
		out[id] = rec.Value
	}
	return out
}

func (c *Cache) isUnsupported(id zcl.AttributeID) bool {
	c.mu.RLock()
	_, ok := c.unsupported[id]
	c.mu.RUnlock()
	return ok
}

func (c *Cache) markUnsupported(id zcl.AttributeID) {
	c.mu.Lock()
	c.unsupported[id] = struct{}{}
	c.mu.Unlock()
}

// GetByName is Get with the attribute resolved through the cluster
// definition.
func (c *Cache) GetByName(ctx context.Context, name string, allowCache bool) (any, bool) {
	got := c.GetManyByName(ctx, []string{name}, allowCache)
	v, ok := got[name]
	return v, ok
}

// GetManyByName is GetMany for attribute names. Names the cluster definition
// does not know are logged and left out of the result.
func (c *Cache) GetManyByName(ctx context.Context, names []string, allowCache bool) map[string]any {
	def := c.cluster.Def()
	ids := make([]zcl.AttributeID, 0, len(names))
	nameOf := make(map[zcl.AttributeID]string, len(names))
	for _, name := range names {
		var attr *zcl.AttributeDef
		if def != nil {
			attr = def.AttributeByName(name)
		}
		if attr == nil {
			c.log.Warn("unknown attribute", "attr", name)
			continue
		}
		ids = append(ids, attr.ID)
		nameOf[attr.ID] = name
	}

	got := c.GetMany(ctx, ids, allowCache)
	out := make(map[string]any, len(got))
	for id, v := range got {
		out[nameOf[id]] = v
	}
	return out
}
