package channel

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"sort"
	"testing"

	"zigbee-channels/internal/zcl"
	"zigbee-channels/internal/zcl/clusters"
)

func newTestCache(fc *fakeCluster) (*Cache, *int) {
	puts := 0
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := newCache(fc, log, func(zcl.AttributeID, any) { puts++ })
	return c, &puts
}

func TestCacheHitAvoidsRead(t *testing.T) {
	fc := newFakeCluster(&clusters.OnOff)
	c, _ := newTestCache(fc)
	c.Put(0x0000, true)

	v, ok := c.Get(context.Background(), 0x0000, true)
	if !ok || v != true {
		t.Fatalf("get = %v, %v", v, ok)
	}
	if fc.readCount() != 0 {
		t.Fatalf("reads = %d, want 0", fc.readCount())
	}
}

func TestCacheMissReadsAndStores(t *testing.T) {
	fc := newFakeCluster(&clusters.OnOff)
	fc.setAttr(0x0000, true)
	c, puts := newTestCache(fc)

	v, ok := c.Get(context.Background(), 0x0000, true)
	if !ok || v != true {
		t.Fatalf("get = %v, %v", v, ok)
	}
	if fc.readCount() != 1 {
		t.Fatalf("reads = %d, want 1", fc.readCount())
	}
	if *puts != 1 {
		t.Fatalf("persistence hook ran %d times, want 1", *puts)
	}

	// The read result is now cached.
	if _, ok := c.Peek(0x0000); !ok {
		t.Fatal("read result not cached")
	}
}

func TestCacheBypassRereads(t *testing.T) {
	fc := newFakeCluster(&clusters.OnOff)
	fc.setAttr(0x0000, false)
	c, _ := newTestCache(fc)
	c.Put(0x0000, true)

	v, ok := c.Get(context.Background(), 0x0000, false)
	if !ok || v != false {
		t.Fatalf("get = %v, %v", v, ok)
	}
	if fc.readCount() != 1 {
		t.Fatalf("reads = %d, want 1", fc.readCount())
	}
}

func TestCacheBatchesMisses(t *testing.T) {
	fc := newFakeCluster(&clusters.PowerConfiguration)
	fc.setAttr(0x0020, uint8(29))
	fc.setAttr(0x0021, uint8(180))
	c, _ := newTestCache(fc)
	c.Put(0x0031, uint8(10))

	got := c.GetMany(context.Background(), []zcl.AttributeID{0x0020, 0x0021, 0x0031}, true)

	if len(got) != 3 {
		t.Fatalf("resolved = %d attrs, want 3", len(got))
	}
	if fc.readCount() != 1 {
		t.Fatalf("reads = %d, want a single batched read", fc.readCount())
	}
	fc.mu.Lock()
	asked := append([]zcl.AttributeID(nil), fc.readIDs[0]...)
	fc.mu.Unlock()
	sort.Slice(asked, func(i, j int) bool { return asked[i] < asked[j] })
	if want := []zcl.AttributeID{0x0020, 0x0021}; !reflect.DeepEqual(asked, want) {
		t.Fatalf("read asked for %v, want only the misses %v", asked, want)
	}
}

func TestCacheUnsupportedAttributeAbsent(t *testing.T) {
	fc := newFakeCluster(&clusters.PowerConfiguration)
	fc.setAttr(0x0021, uint8(200))
	c, _ := newTestCache(fc)

	got := c.GetMany(context.Background(), []zcl.AttributeID{0x0020, 0x0021}, false)

	if _, ok := got[0x0020]; ok {
		t.Fatal("unsupported attribute must stay unknown")
	}
	if v := got[0x0021]; v != uint8(200) {
		t.Fatalf("supported attribute = %v", v)
	}
	if _, ok := c.Peek(0x0020); ok {
		t.Fatal("unsupported attribute must not enter the cache")
	}
}

func TestCacheUnsupportedAttributeNotReread(t *testing.T) {
	fc := newFakeCluster(&clusters.PowerConfiguration)
	fc.setAttr(0x0021, uint8(200))
	c, _ := newTestCache(fc)

	// First pass learns the device does not implement 0x0031.
	c.GetMany(context.Background(), []zcl.AttributeID{0x0021, 0x0031}, true)
	if fc.readCount() != 1 {
		t.Fatalf("reads = %d, want 1", fc.readCount())
	}

	// The cached pass serves 0x0021 and leaves the device alone for 0x0031.
	got := c.GetMany(context.Background(), []zcl.AttributeID{0x0021, 0x0031}, true)
	if fc.readCount() != 1 {
		t.Fatalf("reads = %d after cached pass, want still 1", fc.readCount())
	}
	if v := got[0x0021]; v != uint8(200) {
		t.Fatalf("cached value = %v", v)
	}
	if _, ok := got[0x0031]; ok {
		t.Fatal("unsupported attribute must stay unknown")
	}

	// A bypass read gives the attribute another chance.
	c.GetMany(context.Background(), []zcl.AttributeID{0x0031}, false)
	if fc.readCount() != 2 {
		t.Fatalf("reads = %d after bypass, want 2", fc.readCount())
	}
}

func TestCacheReadFailure(t *testing.T) {
	fc := newFakeCluster(&clusters.OnOff)
	fc.readErr = errors.New("radio gone")
	c, _ := newTestCache(fc)

	if _, ok := c.Get(context.Background(), 0x0000, false); ok {
		t.Fatal("failed read must come back unknown")
	}
	if _, ok := c.Peek(0x0000); ok {
		t.Fatal("failed read must not populate the cache")
	}
}

func TestCacheByName(t *testing.T) {
	fc := newFakeCluster(&clusters.PowerConfiguration)
	fc.setAttr(0x0021, uint8(150))
	c, _ := newTestCache(fc)

	got := c.GetManyByName(context.Background(), []string{"battery_percentage_remaining", "bogus"}, false)

	if v := got["battery_percentage_remaining"]; v != uint8(150) {
		t.Fatalf("by-name value = %v", v)
	}
	if _, ok := got["bogus"]; ok {
		t.Fatal("unknown names must be left out")
	}
}

func TestCacheSeedSkipsHook(t *testing.T) {
	fc := newFakeCluster(&clusters.OnOff)
	c, puts := newTestCache(fc)

	c.Seed(map[zcl.AttributeID]any{0x0000: true, 0x4001: uint16(5)})

	if *puts != 0 {
		t.Fatalf("persistence hook ran %d times on seed, want 0", *puts)
	}
	snap := c.Snapshot()
	if len(snap) != 2 || snap[0x0000] != true {
		t.Fatalf("snapshot = %+v", snap)
	}
}
