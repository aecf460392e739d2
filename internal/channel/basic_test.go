package channel

import (
	"context"
	"testing"

	"zigbee-channels/internal/zcl"
	"zigbee-channels/internal/zcl/clusters"
)

const attrPowerSource zcl.AttributeID = 0x0007

func newBasicFixture() (*Basic, *fakeCluster, *fakePool) {
	fc := newFakeCluster(&clusters.Basic)
	fp := newFakePool()
	return NewBasic(fc, fp).(*Basic), fc, fp
}

func TestBasicConfigureReadsPowerSource(t *testing.T) {
	ch, fc, _ := newBasicFixture()
	fc.setAttr(attrPowerSource, uint8(PowerSourceBattery))

	if err := ch.Configure(context.Background()); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if fc.binds != 1 {
		t.Fatalf("binds = %d, want 1", fc.binds)
	}
	if n := fc.readCount(); n != 1 {
		t.Fatalf("reads = %d, want the eager power source read", n)
	}
	src, ok := ch.PowerSource()
	if !ok || src != PowerSourceBattery {
		t.Fatalf("power source = %d, %v", src, ok)
	}
	if ch.Status() != StatusReady {
		t.Fatalf("status = %s, want ready", ch.Status())
	}
}

func TestBasicPowerSourceFromCache(t *testing.T) {
	ch, fc, _ := newBasicFixture()
	ch.Cache().Seed(map[zcl.AttributeID]any{attrPowerSource: uint8(1)})

	if err := ch.Initialize(context.Background(), true); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if n := fc.readCount(); n != 0 {
		t.Fatalf("reads = %d, want 0 with a seeded cache", n)
	}
	if name := ch.PowerSourceName(); name != "Mains (single phase)" {
		t.Fatalf("power source name = %q", name)
	}
}

func TestBasicPowerSourceUnread(t *testing.T) {
	ch, _, _ := newBasicFixture()

	if _, ok := ch.PowerSource(); ok {
		t.Fatal("power source known before any read")
	}
	if name := ch.PowerSourceName(); name != "Unknown" {
		t.Fatalf("power source name = %q, want Unknown", name)
	}
}

func TestBasicPowerSourceNameUnmappedCode(t *testing.T) {
	ch, fc, _ := newBasicFixture()
	fc.setAttr(attrPowerSource, uint8(0x81)) // mains, with battery backup bit

	if err := ch.Initialize(context.Background(), false); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if name := ch.PowerSourceName(); name != "Unknown" {
		t.Fatalf("power source name = %q, want Unknown for unmapped code", name)
	}
}
