package transport

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"zigbee-channels/internal/zcl"
	"zigbee-channels/internal/zcl/clusters"
)

func newTestSim(t *testing.T) *Sim {
	t.Helper()
	s, err := NewSim(testLogger())
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	// Autonomous traffic is driven by hand in tests.
	s.BatteryInterval = 0
	s.RemoteInterval = 0
	s.CheckinInterval = 0
	return s
}

type simRecorder struct {
	mu       sync.Mutex
	added    []Descriptor
	left     []DeviceLeft
	reports  []AttributeReport
	commands []ClusterCommand
}

func (r *simRecorder) install(s *Sim) {
	s.OnDeviceAdded(func(d Descriptor) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.added = append(r.added, d)
	})
	s.OnDeviceLeft(func(e DeviceLeft) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.left = append(r.left, e)
	})
	s.OnAttributeReport(func(e AttributeReport) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.reports = append(r.reports, e)
	})
	s.OnClusterCommand(func(e ClusterCommand) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.commands = append(r.commands, e)
	})
}

func TestSimStartAnnouncesFleet(t *testing.T) {
	s := newTestSim(t)
	rec := &simRecorder{}
	rec.install(s)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	if len(rec.added) != 3 {
		t.Fatalf("announced %d devices, want 3", len(rec.added))
	}
	byModel := make(map[string]Descriptor)
	for _, d := range rec.added {
		byModel[d.Model] = d
	}

	light := byModel["dimmable-light"]
	if !light.MainsPowered {
		t.Error("light not mains powered")
	}
	if !hasCluster(light.Endpoints[0].InClusters, clusters.LevelControl.ID) {
		t.Errorf("light in-clusters = %v", light.Endpoints[0].InClusters)
	}

	sensor := byModel["contact-sensor"]
	if sensor.MainsPowered {
		t.Error("sensor mains powered")
	}
	if !hasCluster(sensor.Endpoints[0].InClusters, clusters.PollControl.ID) {
		t.Errorf("sensor in-clusters = %v", sensor.Endpoints[0].InClusters)
	}

	remote := byModel["dimmer-remote"]
	if !hasCluster(remote.Endpoints[0].OutClusters, clusters.OnOff.ID) {
		t.Errorf("remote out-clusters = %v", remote.Endpoints[0].OutClusters)
	}
}

func hasCluster(ids []zcl.ClusterID, want zcl.ClusterID) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

func TestSimReadAttributes(t *testing.T) {
	s := newTestSim(t)

	resps, err := s.ReadAttributes(context.Background(), ReadRequest{
		IEEE:       simSensorIEEE,
		Endpoint:   1,
		Cluster:    clusters.Basic.ID,
		Attributes: []zcl.AttributeID{0x0005, 0x0007, 0x9999},
	})
	if err != nil {
		t.Fatalf("ReadAttributes: %v", err)
	}
	if len(resps) != 3 {
		t.Fatalf("responses = %d, want 3", len(resps))
	}

	model, _, err := zcl.Decode(resps[0].DataType, resps[0].Value)
	if err != nil || model != "contact-sensor" {
		t.Errorf("model = %v (err %v)", model, err)
	}
	source, _, err := zcl.Decode(resps[1].DataType, resps[1].Value)
	if err != nil || source != uint8(0x03) {
		t.Errorf("power_source = %v (err %v)", source, err)
	}
	if resps[2].Status != zcl.StatusUnsupportedAttribute {
		t.Errorf("missing attr status = %s", resps[2].Status)
	}
}

func TestSimUnknownDeviceTimesOut(t *testing.T) {
	s := newTestSim(t)
	ghost := IEEE{0xDE, 0xAD}

	_, err := s.ReadAttributes(context.Background(), ReadRequest{IEEE: ghost})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("read err = %v, want ErrTimeout", err)
	}
	if err := s.Bind(context.Background(), BindRequest{IEEE: ghost}); !errors.Is(err, ErrTimeout) {
		t.Fatalf("bind err = %v, want ErrTimeout", err)
	}
	if err := s.SendCommand(context.Background(), CommandRequest{IEEE: ghost}); !errors.Is(err, ErrTimeout) {
		t.Fatalf("command err = %v, want ErrTimeout", err)
	}
}

func TestSimToggleReports(t *testing.T) {
	s := newTestSim(t)
	rec := &simRecorder{}
	rec.install(s)

	req := CommandRequest{IEEE: simLightIEEE, Endpoint: 1, Cluster: clusters.OnOff.ID, Command: 0x02}
	if err := s.SendCommand(context.Background(), req); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.SendCommand(context.Background(), req); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if len(rec.reports) != 2 {
		t.Fatalf("reports = %+v, want 2", rec.reports)
	}
	first, second := rec.reports[0], rec.reports[1]
	if first.Cluster != 0x0006 || first.Attr != 0x0000 || !bytes.Equal(first.Value, []byte{0x01}) {
		t.Errorf("first report = %+v", first)
	}
	if !bytes.Equal(second.Value, []byte{0x00}) {
		t.Errorf("second report value = %X, want 00", second.Value)
	}
}

func TestSimMoveToLevelWithOnOff(t *testing.T) {
	s := newTestSim(t)
	rec := &simRecorder{}
	rec.install(s)

	err := s.SendCommand(context.Background(), CommandRequest{
		IEEE:     simLightIEEE,
		Endpoint: 1,
		Cluster:  clusters.LevelControl.ID,
		Command:  0x04, // move_to_level_with_on_off
		Payload:  []byte{0x7F, 0x00, 0x00},
	})
	if err != nil {
		t.Fatalf("SendCommand: %v", err)
	}

	if len(rec.reports) != 2 {
		t.Fatalf("reports = %+v, want level then on_off", rec.reports)
	}
	if rec.reports[0].Cluster != 0x0008 || !bytes.Equal(rec.reports[0].Value, []byte{0x7F}) {
		t.Errorf("level report = %+v", rec.reports[0])
	}
	if rec.reports[1].Cluster != 0x0006 || !bytes.Equal(rec.reports[1].Value, []byte{0x01}) {
		t.Errorf("on_off report = %+v", rec.reports[1])
	}
}

func TestSimLongPollIntervalWrite(t *testing.T) {
	s := newTestSim(t)

	if err := s.SendCommand(context.Background(), CommandRequest{
		IEEE:     simSensorIEEE,
		Endpoint: 1,
		Cluster:  clusters.PollControl.ID,
		Command:  0x00, // checkin_response
		Payload:  []byte{0x01},
	}); !errors.Is(err, ErrProtocol) {
		t.Fatalf("short checkin_response err = %v, want ErrProtocol", err)
	}

	err := s.SendCommand(context.Background(), CommandRequest{
		IEEE:     simSensorIEEE,
		Endpoint: 1,
		Cluster:  clusters.PollControl.ID,
		Command:  0x02, // set_long_poll_interval
		Payload:  []byte{0x18, 0x00, 0x00, 0x00},
	})
	if err != nil {
		t.Fatalf("set_long_poll_interval: %v", err)
	}

	resps, err := s.ReadAttributes(context.Background(), ReadRequest{
		IEEE:       simSensorIEEE,
		Endpoint:   1,
		Cluster:    clusters.PollControl.ID,
		Attributes: []zcl.AttributeID{0x0001},
	})
	if err != nil {
		t.Fatalf("ReadAttributes: %v", err)
	}
	val, _, err := zcl.Decode(resps[0].DataType, resps[0].Value)
	if err != nil || val != uint32(24) {
		t.Fatalf("long_poll_interval = %v (err %v), want 24", val, err)
	}
}

func TestSimWriteUnknownAttribute(t *testing.T) {
	s := newTestSim(t)

	err := s.WriteAttributes(context.Background(), WriteRequest{
		IEEE:     simLightIEEE,
		Endpoint: 1,
		Cluster:  clusters.OnOff.ID,
		Records:  []WriteRecord{{ID: 0x9999, DataType: zcl.TypeUint8, Value: []byte{0x01}}},
	})
	if !errors.Is(err, ErrUnsupportedAttribute) {
		t.Fatalf("err = %v, want ErrUnsupportedAttribute", err)
	}
}

func TestSimBatteryReportGatedOnConfig(t *testing.T) {
	s := newTestSim(t)
	rec := &simRecorder{}
	rec.install(s)

	s.emitBatteryReports()
	if len(rec.reports) != 0 {
		t.Fatalf("unconfigured device reported: %+v", rec.reports)
	}

	err := s.ConfigureReporting(context.Background(), ReportingRequest{
		IEEE:     simSensorIEEE,
		Endpoint: 1,
		Cluster:  clusters.PowerConfiguration.ID,
		Entries:  []ReportingEntry{{Attribute: 0x0021, DataType: zcl.TypeUint8, Min: 3600, Max: 10800, Change: []byte{0x01}}},
	})
	if err != nil {
		t.Fatalf("ConfigureReporting: %v", err)
	}

	s.emitBatteryReports()
	if len(rec.reports) != 1 {
		t.Fatalf("reports = %+v, want 1", rec.reports)
	}
	rpt := rec.reports[0]
	if rpt.IEEE != simSensorIEEE || rpt.Attr != 0x0021 {
		t.Fatalf("report = %+v", rpt)
	}
	// Seeded at 200, drained once per emission pass.
	if !bytes.Equal(rpt.Value, []byte{198}) {
		t.Errorf("battery = %v, want 198", rpt.Value)
	}
}

func TestSimRemoteAlternates(t *testing.T) {
	s := newTestSim(t)
	rec := &simRecorder{}
	rec.install(s)

	s.emitRemoteActivity()
	s.emitRemoteActivity()

	if len(rec.commands) != 2 {
		t.Fatalf("commands = %+v, want 2", rec.commands)
	}
	if rec.commands[0].Cluster != 0x0006 || rec.commands[0].Command != 0x02 {
		t.Errorf("first press = %+v, want on_off toggle", rec.commands[0])
	}
	second := rec.commands[1]
	if second.Cluster != 0x0008 || second.Command != 0x06 || len(second.Args) != 3 {
		t.Errorf("second press = %+v, want level step", second)
	}
	if rec.commands[0].TSN == second.TSN {
		t.Error("presses share a tsn")
	}
}

func TestSimCheckins(t *testing.T) {
	s := newTestSim(t)
	rec := &simRecorder{}
	rec.install(s)

	s.emitCheckins()

	if len(rec.commands) != 1 {
		t.Fatalf("commands = %+v, want one checkin", rec.commands)
	}
	cc := rec.commands[0]
	if cc.IEEE != simSensorIEEE || cc.Cluster != 0x0020 || cc.Command != 0x00 {
		t.Fatalf("checkin = %+v", cc)
	}
}

func TestSimLeave(t *testing.T) {
	s := newTestSim(t)
	rec := &simRecorder{}
	rec.install(s)

	if err := s.Leave(simSensorIEEE); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if len(rec.left) != 1 || rec.left[0].IEEE != simSensorIEEE {
		t.Fatalf("left = %+v", rec.left)
	}

	_, err := s.ReadAttributes(context.Background(), ReadRequest{IEEE: simSensorIEEE})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("read after leave err = %v, want ErrTimeout", err)
	}
	if err := s.Leave(simSensorIEEE); !errors.Is(err, ErrTimeout) {
		t.Fatalf("second leave err = %v, want ErrTimeout", err)
	}
}

func TestSimDrivesClusterHandle(t *testing.T) {
	s := newTestSim(t)
	h := NewCluster(s, ClusterConfig{IEEE: simSensorIEEE, Endpoint: 1, Cluster: clusters.PowerConfiguration.ID}, testLogger())

	got, err := h.ReadAttributes(context.Background(), []zcl.AttributeID{0x0020, 0x0021})
	if err != nil {
		t.Fatalf("ReadAttributes: %v", err)
	}
	if v := got[0x0020].Value; v != uint8(30) {
		t.Errorf("battery_voltage = %v, want 30", v)
	}
	if v := got[0x0021].Value; v != uint8(200) {
		t.Errorf("battery_percentage = %v, want 200", v)
	}
}
