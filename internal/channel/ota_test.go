package channel

import (
	"reflect"
	"testing"

	"zigbee-channels/internal/zcl"
	"zigbee-channels/internal/zcl/clusters"
)

const cmdQueryNextImage zcl.CommandID = 0x01

func TestOtaQueryNextImageSignalsDevice(t *testing.T) {
	fc := newFakeCluster(&clusters.Ota)
	fp := newFakePool()
	ch := NewOta(fc, fp)

	args := []any{uint8(0), uint16(0x115F), uint16(0x0001), uint32(0x11223344)}
	ch.HandleCommand(12, cmdQueryNextImage, args)

	// The signal is scoped by the device id, not the channel id.
	got := fp.signalsNamed("00:11:22:33:44:55:66:77_" + SignalUpdateDevice)
	if len(got) != 1 {
		t.Fatalf("signals = %+v, want one device-scoped update", fp.allSignals())
	}
	if !reflect.DeepEqual(got[0].Args, []any{uint32(0x11223344)}) {
		t.Fatalf("args = %+v, want the firmware version", got[0].Args)
	}
}

func TestOtaShortArgumentListIgnored(t *testing.T) {
	fc := newFakeCluster(&clusters.Ota)
	fp := newFakePool()
	ch := NewOta(fc, fp)

	ch.HandleCommand(12, cmdQueryNextImage, []any{uint8(0), uint16(0x115F)})

	if len(fp.allSignals()) != 0 {
		t.Fatalf("signals = %+v, want none for a short frame", fp.allSignals())
	}
}

func TestOtaOtherCommandsIgnored(t *testing.T) {
	fc := newFakeCluster(&clusters.Ota)
	fp := newFakePool()
	ch := NewOta(fc, fp)

	ch.HandleCommand(12, 0x03, []any{uint32(1)}) // image_block

	if len(fp.allSignals()) != 0 {
		t.Fatalf("signals = %+v, want none", fp.allSignals())
	}
}
