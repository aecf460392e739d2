package channel

import (
	"context"
	"testing"

	"zigbee-channels/internal/zcl/clusters"
)

func newClientFixture() (*Client, *fakeCluster, *fakePool) {
	fc := newFakeCluster(&clusters.OnOff)
	fc.client = true
	fp := newFakePool()
	return NewClient(fc, fp).(*Client), fc, fp
}

func TestClientLifecycleNoTraffic(t *testing.T) {
	ch, fc, _ := newClientFixture()

	ctx := context.Background()
	if err := ch.Configure(ctx); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if err := ch.Initialize(ctx, false); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := ch.Update(ctx); err != nil {
		t.Fatalf("update: %v", err)
	}
	if fc.binds != 0 || len(fc.reporting) != 0 || fc.readCount() != 0 {
		t.Fatalf("client channel touched the device: binds=%d reporting=%d reads=%d",
			fc.binds, len(fc.reporting), fc.readCount())
	}
	if ch.Status() != StatusReady {
		t.Fatalf("status = %s, want ready", ch.Status())
	}
}

func TestClientCommandBecomesEvent(t *testing.T) {
	ch, _, fp := newClientFixture()

	ch.HandleCommand(4, 0x01, []any{})

	events := fp.allEvents()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Command != "on" || events[0].Cluster != clusters.OnOff.ID {
		t.Fatalf("event = %+v", events[0])
	}
}

func TestClientUnknownCommandDropped(t *testing.T) {
	ch, _, fp := newClientFixture()

	ch.HandleCommand(4, 0x7F, nil)

	if len(fp.allEvents()) != 0 {
		t.Fatalf("events = %+v, want none", fp.allEvents())
	}
}

func TestClientAttributeReportBecomesEvent(t *testing.T) {
	ch, _, fp := newClientFixture()

	ch.HandleAttributeReport(0x0000, true)

	events := fp.allEvents()
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	ev := events[0]
	if ev.Command != SignalAttrUpdated || len(ev.Args) != 1 {
		t.Fatalf("event = %+v", ev)
	}
	payload, ok := ev.Args[0].(map[string]any)
	if !ok {
		t.Fatalf("payload type = %T", ev.Args[0])
	}
	if payload["attribute_name"] != "on_off" || payload["value"] != true {
		t.Fatalf("payload = %+v", payload)
	}
	if v, ok := ch.Cache().Peek(0x0000); !ok || v != true {
		t.Fatalf("cache = %v, %v", v, ok)
	}
}
