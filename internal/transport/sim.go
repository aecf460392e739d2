package transport

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"zigbee-channels/internal/zcl"
	"zigbee-channels/internal/zcl/clusters"
)

// Default pacing for autonomous sim traffic.
const (
	simBatteryInterval = 2 * time.Minute
	simRemoteInterval  = 45 * time.Second
	simCheckinInterval = 5 * time.Minute
)

// Sim is an in-process Transport backed by a small fleet of virtual
// devices: a mains dimmable light, a battery contact sensor, and a battery
// dimmer remote. The fleet joins on Start, answers reads and writes from
// internal attribute state, reacts to switching commands with attribute
// reports, and autonomously emits battery reports, poll-control check-ins
// and remote key presses. Unknown addresses time out, so degraded paths
// stay reachable without a radio.
type Sim struct {
	log *slog.Logger

	// Autonomous traffic pacing. Zero disables the ticker. Set before
	// Start.
	BatteryInterval time.Duration
	RemoteInterval  time.Duration
	CheckinInterval time.Duration

	mu      sync.Mutex
	devices map[IEEE]*simDevice
	order   []IEEE
	started bool
	stopped bool

	tsn        atomic.Uint32
	remoteTick atomic.Uint32

	handlerMu sync.RWMutex
	onAdded   func(Descriptor)
	onLeft    func(DeviceLeft)
	onReport  func(AttributeReport)
	onCommand func(ClusterCommand)

	done chan struct{}
	wg   sync.WaitGroup
}

type simKey struct {
	ep      uint8
	cluster zcl.ClusterID
}

type simAttribute struct {
	typ   uint8
	value []byte
}

type simDevice struct {
	desc      Descriptor
	attrs     map[simKey]map[zcl.AttributeID]*simAttribute
	bound     map[simKey]bool
	reporting map[simKey]map[zcl.AttributeID]ReportingEntry
}

var _ Transport = (*Sim)(nil)

// NewSim builds the simulator with its standard fleet.
func NewSim(log *slog.Logger) (*Sim, error) {
	s := &Sim{
		log:             log.With("transport", "sim"),
		BatteryInterval: simBatteryInterval,
		RemoteInterval:  simRemoteInterval,
		CheckinInterval: simCheckinInterval,
		devices:         make(map[IEEE]*simDevice),
		done:            make(chan struct{}),
	}
	for _, build := range []func() (*simDevice, error){newSimLight, newSimContactSensor, newSimDimmerRemote} {
		dev, err := build()
		if err != nil {
			return nil, fmt.Errorf("sim fleet: %w", err)
		}
		s.devices[dev.desc.IEEE] = dev
		s.order = append(s.order, dev.desc.IEEE)
	}
	return s, nil
}

var (
	simLightIEEE  = IEEE{0x00, 0x12, 0x4b, 0x00, 0x1c, 0xa1, 0xb2, 0x01}
	simSensorIEEE = IEEE{0x00, 0x15, 0x8d, 0x00, 0x02, 0x33, 0x71, 0x9a}
	simRemoteIEEE = IEEE{0x00, 0x17, 0x88, 0x01, 0x02, 0x44, 0x5e, 0x6f}
)

func newSimLight() (*simDevice, error) {
	dev := &simDevice{
		desc: Descriptor{
			IEEE:         simLightIEEE,
			Nwk:          0x4d10,
			MainsPowered: true,
			Manufacturer: "sim",
			Model:        "dimmable-light",
			Endpoints: []Endpoint{{
				ID:          1,
				ProfileID:   0x0104,
				DeviceID:    0x0101,
				InClusters:  []zcl.ClusterID{clusters.Basic.ID, clusters.Identify.ID, clusters.OnOff.ID, clusters.LevelControl.ID},
				OutClusters: []zcl.ClusterID{clusters.Ota.ID},
			}},
		},
		bound:     make(map[simKey]bool),
		reporting: make(map[simKey]map[zcl.AttributeID]ReportingEntry),
	}
	err := dev.seed(1, map[*zcl.ClusterDef]map[string]any{
		&clusters.Basic: {
			"zcl_version":  uint8(8),
			"manufacturer": "sim",
			"model":        "dimmable-light",
			"power_source": uint8(0x01),
		},
		&clusters.Identify: {
			"identify_time": uint16(0),
		},
		&clusters.OnOff: {
			"on_off":        false,
			"on_time":       uint16(0),
			"off_wait_time": uint16(0),
		},
		&clusters.LevelControl: {
			"current_level":  uint8(254),
			"remaining_time": uint16(0),
			"on_level":       uint8(254),
		},
	})
	return dev, err
}

func newSimContactSensor() (*simDevice, error) {
	dev := &simDevice{
		desc: Descriptor{
			IEEE:         simSensorIEEE,
			Nwk:          0x7e22,
			MainsPowered: false,
			Manufacturer: "sim",
			Model:        "contact-sensor",
			Endpoints: []Endpoint{{
				ID:          1,
				ProfileID:   0x0104,
				DeviceID:    0x0002,
				InClusters:  []zcl.ClusterID{clusters.Basic.ID, clusters.PowerConfiguration.ID, clusters.Identify.ID, clusters.OnOff.ID, clusters.PollControl.ID},
				OutClusters: []zcl.ClusterID{clusters.Ota.ID},
			}},
		},
		bound:     make(map[simKey]bool),
		reporting: make(map[simKey]map[zcl.AttributeID]ReportingEntry),
	}
	err := dev.seed(1, map[*zcl.ClusterDef]map[string]any{
		&clusters.Basic: {
			"zcl_version":  uint8(8),
			"manufacturer": "sim",
			"model":        "contact-sensor",
			"power_source": uint8(0x03),
		},
		&clusters.Identify: {
			"identify_time": uint16(0),
		},
		&clusters.PowerConfiguration: {
			"battery_voltage":              uint8(30),
			"battery_percentage_remaining": uint8(200),
			"battery_size":                 uint8(0x0A),
			"battery_quantity":             uint8(1),
		},
		&clusters.OnOff: {
			"on_off": false,
		},
		&clusters.PollControl: {
			"checkin_interval":    uint32(3600),
			"long_poll_interval":  uint32(20),
			"short_poll_interval": uint16(2),
			"fast_poll_timeout":   uint16(40),
		},
	})
	return dev, err
}

func newSimDimmerRemote() (*simDevice, error) {
	dev := &simDevice{
		desc: Descriptor{
			IEEE:         simRemoteIEEE,
			Nwk:          0xb3c4,
			MainsPowered: false,
			Manufacturer: "sim",
			Model:        "dimmer-remote",
			Endpoints: []Endpoint{{
				ID:          1,
				ProfileID:   0x0104,
				DeviceID:    0x0104,
				InClusters:  []zcl.ClusterID{clusters.Basic.ID, clusters.PowerConfiguration.ID, clusters.Identify.ID},
				OutClusters: []zcl.ClusterID{clusters.OnOff.ID, clusters.LevelControl.ID},
			}},
		},
		bound:     make(map[simKey]bool),
		reporting: make(map[simKey]map[zcl.AttributeID]ReportingEntry),
	}
	err := dev.seed(1, map[*zcl.ClusterDef]map[string]any{
		&clusters.Basic: {
			"zcl_version":  uint8(8),
			"manufacturer": "sim",
			"model":        "dimmer-remote",
			"power_source": uint8(0x03),
		},
		&clusters.Identify: {
			"identify_time": uint16(0),
		},
		&clusters.PowerConfiguration: {
			"battery_voltage":              uint8(29),
			"battery_percentage_remaining": uint8(180),
			"battery_size":                 uint8(0x0A),
			"battery_quantity":             uint8(1),
		},
	})
	return dev, err
}

// seed encodes and installs attribute values for one endpoint, resolving
// names and data types through the cluster definitions.
func (d *simDevice) seed(ep uint8, values map[*zcl.ClusterDef]map[string]any) error {
	if d.attrs == nil {
		d.attrs = make(map[simKey]map[zcl.AttributeID]*simAttribute)
	}
	for def, attrs := range values {
		m := make(map[zcl.AttributeID]*simAttribute, len(attrs))
		for name, val := range attrs {
			a := def.AttributeByName(name)
			if a == nil {
				return fmt.Errorf("%s: no attribute named %q", def.Name, name)
			}
			data, err := zcl.Encode(a.Type, val)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", def.Name, name, err)
			}
			m[a.ID] = &simAttribute{typ: a.Type, value: data}
		}
		d.attrs[simKey{ep: ep, cluster: def.ID}] = m
	}
	return nil
}

// --- Lifecycle ---

// Start announces the fleet and begins autonomous traffic. Handlers must
// already be registered.
func (s *Sim) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("sim: already started")
	}
	s.started = true
	order := append([]IEEE(nil), s.order...)
	s.mu.Unlock()

	for _, ieee := range order {
		s.mu.Lock()
		dev := s.devices[ieee]
		s.mu.Unlock()
		if dev == nil {
			continue
		}
		s.log.Info("device joined", "ieee", ieee, "nwk", fmt.Sprintf("0x%04x", dev.desc.Nwk), "model", dev.desc.Model)
		s.handlerMu.RLock()
		onAdded := s.onAdded
		s.handlerMu.RUnlock()
		if onAdded != nil {
			onAdded(dev.desc)
		}
	}

	s.wg.Add(1)
	go s.run()
	return nil
}

// Leave removes a device from the fleet and announces its departure.
// Operations against it time out afterwards.
func (s *Sim) Leave(ieee IEEE) error {
	s.mu.Lock()
	dev, ok := s.devices[ieee]
	if ok {
		delete(s.devices, ieee)
		for i, o := range s.order {
			if o == ieee {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("sim: device %s: %w", ieee, ErrTimeout)
	}

	s.log.Info("device left", "ieee", ieee, "model", dev.desc.Model)
	s.handlerMu.RLock()
	onLeft := s.onLeft
	s.handlerMu.RUnlock()
	if onLeft != nil {
		onLeft(DeviceLeft{IEEE: ieee, Nwk: dev.desc.Nwk})
	}
	return nil
}

// Stop halts autonomous traffic. Safe to call once after Start.
func (s *Sim) Stop() error {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.stopped = true
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()
	return nil
}

func (s *Sim) run() {
	defer s.wg.Done()

	var batteryC, remoteC, checkinC <-chan time.Time
	if s.BatteryInterval > 0 {
		t := time.NewTicker(s.BatteryInterval)
		defer t.Stop()
		batteryC = t.C
	}
	if s.RemoteInterval > 0 {
		t := time.NewTicker(s.RemoteInterval)
		defer t.Stop()
		remoteC = t.C
	}
	if s.CheckinInterval > 0 {
		t := time.NewTicker(s.CheckinInterval)
		defer t.Stop()
		checkinC = t.C
	}

	for {
		select {
		case <-s.done:
			return
		case <-batteryC:
			s.emitBatteryReports()
		case <-remoteC:
			s.emitRemoteActivity()
		case <-checkinC:
			s.emitCheckins()
		}
	}
}

// --- Transport operations ---

func (s *Sim) device(ieee IEEE) (*simDevice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dev, ok := s.devices[ieee]
	if !ok {
		return nil, fmt.Errorf("sim: device %s: %w", ieee, ErrTimeout)
	}
	return dev, nil
}

func (s *Sim) ReadAttributes(ctx context.Context, req ReadRequest) ([]AttributeResponse, error) {
	dev, err := s.device(req.IEEE)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	attrs := dev.attrs[simKey{ep: req.Endpoint, cluster: req.Cluster}]
	resps := make([]AttributeResponse, 0, len(req.Attributes))
	for _, id := range req.Attributes {
		a, ok := attrs[id]
		if !ok {
			resps = append(resps, AttributeResponse{ID: id, Status: zcl.StatusUnsupportedAttribute})
			continue
		}
		value := append([]byte(nil), a.value...)
		resps = append(resps, AttributeResponse{ID: id, Status: zcl.StatusSuccess, DataType: a.typ, Value: value})
	}
	s.log.Debug("read attributes", "ieee", req.IEEE, "cluster", req.Cluster, "count", len(resps))
	return resps, nil
}

func (s *Sim) WriteAttributes(ctx context.Context, req WriteRequest) error {
	dev, err := s.device(req.IEEE)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	attrs := dev.attrs[simKey{ep: req.Endpoint, cluster: req.Cluster}]
	for _, rec := range req.Records {
		a, ok := attrs[rec.ID]
		if !ok {
			return fmt.Errorf("sim: write %s attr %s: %w", req.Cluster, rec.ID, ErrUnsupportedAttribute)
		}
		a.typ = rec.DataType
		a.value = append([]byte(nil), rec.Value...)
		s.log.Debug("attribute written", "ieee", req.IEEE, "cluster", req.Cluster, "attr", rec.ID)
	}
	return nil
}

func (s *Sim) ConfigureReporting(ctx context.Context, req ReportingRequest) error {
	dev, err := s.device(req.IEEE)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := simKey{ep: req.Endpoint, cluster: req.Cluster}
	m := dev.reporting[key]
	if m == nil {
		m = make(map[zcl.AttributeID]ReportingEntry)
		dev.reporting[key] = m
	}
	for _, e := range req.Entries {
		m[e.Attribute] = e
	}
	s.log.Debug("reporting configured", "ieee", req.IEEE, "cluster", req.Cluster, "entries", len(req.Entries))
	return nil
}

func (s *Sim) Bind(ctx context.Context, req BindRequest) error {
	dev, err := s.device(req.IEEE)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dev.bound[simKey{ep: req.Endpoint, cluster: req.Cluster}] = true
	s.log.Debug("bound", "ieee", req.IEEE, "cluster", req.Cluster)
	return nil
}

func (s *Sim) SendCommand(ctx context.Context, req CommandRequest) error {
	dev, err := s.device(req.IEEE)
	if err != nil {
		return err
	}
	s.log.Debug("command", "ieee", req.IEEE, "cluster", req.Cluster, "command", req.Command, "payload", fmt.Sprintf("%X", req.Payload))

	switch req.Cluster {
	case clusters.OnOff.ID:
		return s.handleOnOffCommand(dev, req)
	case clusters.LevelControl.ID:
		return s.handleLevelCommand(dev, req)
	case clusters.PollControl.ID:
		return s.handlePollControlCommand(dev, req)
	case clusters.Identify.ID:
		return s.handleIdentifyCommand(dev, req)
	}
	// Devices silently drop commands they have no behavior for.
	return nil
}

// --- Command behaviors ---

const attrOnOffState zcl.AttributeID = 0x0000

func (s *Sim) handleOnOffCommand(dev *simDevice, req CommandRequest) error {
	current, _ := s.boolAttr(dev, req.Endpoint, req.Cluster, attrOnOffState)
	var next bool
	switch req.Command {
	case 0x00, 0x40: // off, off_with_effect
		next = false
	case 0x01, 0x41: // on, on_with_recall_global_scene
		next = true
	case 0x42: // on_with_timed_off: mode(1) + on_time(2) + off_wait_time(2)
		if len(req.Payload) < 5 {
			return fmt.Errorf("sim: on_with_timed_off payload %d bytes: %w", len(req.Payload), ErrProtocol)
		}
		next = true
	case 0x02: // toggle
		next = !current
	default:
		return nil
	}
	if next != current {
		s.setAndReport(dev, req.Endpoint, req.Cluster, attrOnOffState, next)
	}
	return nil
}

const attrCurrentLevelState zcl.AttributeID = 0x0000

func (s *Sim) handleLevelCommand(dev *simDevice, req CommandRequest) error {
	level, ok := s.uintAttr(dev, req.Endpoint, req.Cluster, attrCurrentLevelState)
	if !ok {
		return nil
	}
	withOnOff := false
	next := level
	switch req.Command {
	case 0x00, 0x04: // move_to_level(_with_on_off): level(1) + transition(2)
		if len(req.Payload) < 1 {
			return fmt.Errorf("sim: move_to_level payload empty: %w", ErrProtocol)
		}
		next = uint64(req.Payload[0])
		withOnOff = req.Command == 0x04
	case 0x01, 0x05: // move(_with_on_off): mode(1) + rate(1)
		if len(req.Payload) < 2 {
			return fmt.Errorf("sim: move payload %d bytes: %w", len(req.Payload), ErrProtocol)
		}
		// A continuous move runs until stop; the sim jumps to the bound.
		if req.Payload[0] == 0 {
			next = 254
		} else {
			next = 1
		}
		withOnOff = req.Command == 0x05
	case 0x02, 0x06: // step(_with_on_off): mode(1) + step(1) + transition(2)
		if len(req.Payload) < 2 {
			return fmt.Errorf("sim: step payload %d bytes: %w", len(req.Payload), ErrProtocol)
		}
		step := uint64(req.Payload[1])
		if req.Payload[0] == 0 {
			next = min(254, level+step)
		} else if level > step {
			next = level - step
		} else {
			next = 1
		}
		withOnOff = req.Command == 0x06
	case 0x03, 0x07: // stop
		return nil
	default:
		return nil
	}
	if next != level {
		s.setAndReport(dev, req.Endpoint, req.Cluster, attrCurrentLevelState, uint8(next))
	}
	if withOnOff {
		on, _ := s.boolAttr(dev, req.Endpoint, clusters.OnOff.ID, attrOnOffState)
		wantOn := next > 0
		if wantOn != on {
			s.setAndReport(dev, req.Endpoint, clusters.OnOff.ID, attrOnOffState, wantOn)
		}
	}
	return nil
}

func (s *Sim) handlePollControlCommand(dev *simDevice, req CommandRequest) error {
	switch req.Command {
	case 0x00: // checkin_response: start_fast_polling(1) + fast_poll_timeout(2)
		if len(req.Payload) < 3 {
			return fmt.Errorf("sim: checkin_response payload %d bytes: %w", len(req.Payload), ErrProtocol)
		}
		s.log.Debug("checkin response accepted", "ieee", req.IEEE,
			"fast_poll", req.Payload[0] != 0,
			"timeout_qs", binary.LittleEndian.Uint16(req.Payload[1:3]))
	case 0x02: // set_long_poll_interval: interval(4)
		if len(req.Payload) < 4 {
			return fmt.Errorf("sim: set_long_poll_interval payload %d bytes: %w", len(req.Payload), ErrProtocol)
		}
		interval := binary.LittleEndian.Uint32(req.Payload[:4])
		s.mu.Lock()
		if a, ok := dev.attrs[simKey{ep: req.Endpoint, cluster: req.Cluster}][0x0001]; ok {
			a.value, _ = zcl.Encode(a.typ, interval)
		}
		s.mu.Unlock()
	}
	return nil
}

func (s *Sim) handleIdentifyCommand(dev *simDevice, req CommandRequest) error {
	if req.Command != 0x00 { // identify: identify_time(2)
		return nil
	}
	if len(req.Payload) < 2 {
		return fmt.Errorf("sim: identify payload %d bytes: %w", len(req.Payload), ErrProtocol)
	}
	seconds := binary.LittleEndian.Uint16(req.Payload[:2])
	s.mu.Lock()
	if a, ok := dev.attrs[simKey{ep: req.Endpoint, cluster: req.Cluster}][0x0000]; ok {
		a.value, _ = zcl.Encode(a.typ, seconds)
	}
	s.mu.Unlock()
	return nil
}

// --- Handler registration ---

func (s *Sim) OnDeviceAdded(handler func(Descriptor)) {
	s.handlerMu.Lock()
	defer s.handlerMu.Unlock()
	s.onAdded = handler
}

func (s *Sim) OnDeviceLeft(handler func(DeviceLeft)) {
	s.handlerMu.Lock()
	defer s.handlerMu.Unlock()
	s.onLeft = handler
}

func (s *Sim) OnAttributeReport(handler func(AttributeReport)) {
	s.handlerMu.Lock()
	defer s.handlerMu.Unlock()
	s.onReport = handler
}

func (s *Sim) OnClusterCommand(handler func(ClusterCommand)) {
	s.handlerMu.Lock()
	defer s.handlerMu.Unlock()
	s.onCommand = handler
}

// --- Autonomous traffic ---

const attrBatteryPercentState zcl.AttributeID = 0x0021

// emitBatteryReports drains each battery a little and reports the level on
// devices that have reporting configured for it.
func (s *Sim) emitBatteryReports() {
	s.mu.Lock()
	ieees := append([]IEEE(nil), s.order...)
	s.mu.Unlock()

	for _, ieee := range ieees {
		dev, err := s.device(ieee)
		if err != nil || dev.desc.MainsPowered {
			continue
		}
		key := simKey{ep: 1, cluster: clusters.PowerConfiguration.ID}
		s.mu.Lock()
		_, configured := dev.reporting[key][attrBatteryPercentState]
		a := dev.attrs[key][attrBatteryPercentState]
		if a != nil && len(a.value) == 1 && a.value[0] > 20 {
			a.value[0]--
		}
		s.mu.Unlock()
		if !configured {
			continue
		}
		s.report(dev, 1, clusters.PowerConfiguration.ID, attrBatteryPercentState)
	}
}

// emitRemoteActivity alternates the dimmer remote between a toggle press
// and a dim step.
func (s *Sim) emitRemoteActivity() {
	dev, err := s.device(simRemoteIEEE)
	if err != nil {
		return
	}
	tick := s.remoteTick.Add(1)
	var cc ClusterCommand
	if tick%2 == 1 {
		cc = ClusterCommand{
			IEEE:     dev.desc.IEEE,
			Endpoint: 1,
			Cluster:  clusters.OnOff.ID,
			Command:  0x02, // toggle
			TSN:      s.nextTSN(),
			LQI:      200,
			RSSI:     -52,
		}
	} else {
		mode := uint8(0)
		if tick%4 == 0 {
			mode = 1
		}
		cc = ClusterCommand{
			IEEE:     dev.desc.IEEE,
			Endpoint: 1,
			Cluster:  clusters.LevelControl.ID,
			Command:  0x06, // step_with_on_off
			TSN:      s.nextTSN(),
			Args:     []any{mode, uint8(32), uint16(5)},
			LQI:      200,
			RSSI:     -52,
		}
	}
	s.deliverCommand(cc)
}

// emitCheckins issues a poll-control checkin from every device carrying the
// cluster.
func (s *Sim) emitCheckins() {
	s.mu.Lock()
	ieees := append([]IEEE(nil), s.order...)
	s.mu.Unlock()

	for _, ieee := range ieees {
		dev, err := s.device(ieee)
		if err != nil {
			continue
		}
		s.mu.Lock()
		_, hasPollControl := dev.attrs[simKey{ep: 1, cluster: clusters.PollControl.ID}]
		s.mu.Unlock()
		if !hasPollControl {
			continue
		}
		s.deliverCommand(ClusterCommand{
			IEEE:     dev.desc.IEEE,
			Endpoint: 1,
			Cluster:  clusters.PollControl.ID,
			Command:  0x00, // checkin
			TSN:      s.nextTSN(),
			LQI:      180,
			RSSI:     -61,
		})
	}
}

func (s *Sim) nextTSN() uint8 {
	return uint8(s.tsn.Add(1))
}

func (s *Sim) deliverCommand(cc ClusterCommand) {
	s.handlerMu.RLock()
	onCommand := s.onCommand
	s.handlerMu.RUnlock()
	if onCommand == nil {
		return
	}
	s.log.Debug("device command", "ieee", cc.IEEE, "cluster", cc.Cluster, "command", cc.Command)
	onCommand(cc)
}

// setAndReport encodes a new attribute value and emits a report for it.
func (s *Sim) setAndReport(dev *simDevice, ep uint8, cluster zcl.ClusterID, id zcl.AttributeID, value any) {
	s.mu.Lock()
	a, ok := dev.attrs[simKey{ep: ep, cluster: cluster}][id]
	if ok {
		if data, err := zcl.Encode(a.typ, value); err == nil {
			a.value = data
		}
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	s.report(dev, ep, cluster, id)
}

func (s *Sim) report(dev *simDevice, ep uint8, cluster zcl.ClusterID, id zcl.AttributeID) {
	s.mu.Lock()
	a, ok := dev.attrs[simKey{ep: ep, cluster: cluster}][id]
	var typ uint8
	var value []byte
	if ok {
		typ = a.typ
		value = append([]byte(nil), a.value...)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	s.handlerMu.RLock()
	onReport := s.onReport
	s.handlerMu.RUnlock()
	if onReport == nil {
		return
	}
	onReport(AttributeReport{
		IEEE:     dev.desc.IEEE,
		Endpoint: ep,
		Cluster:  cluster,
		Attr:     id,
		DataType: typ,
		Value:    value,
		LQI:      220,
		RSSI:     -48,
	})
}

func (s *Sim) boolAttr(dev *simDevice, ep uint8, cluster zcl.ClusterID, id zcl.AttributeID) (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := dev.attrs[simKey{ep: ep, cluster: cluster}][id]
	if !ok || len(a.value) != 1 {
		return false, false
	}
	return a.value[0] != 0, true
}

func (s *Sim) uintAttr(dev *simDevice, ep uint8, cluster zcl.ClusterID, id zcl.AttributeID) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := dev.attrs[simKey{ep: ep, cluster: cluster}][id]
	if !ok {
		return 0, false
	}
	val, _, err := zcl.Decode(a.typ, a.value)
	if err != nil {
		return 0, false
	}
	switch v := val.(type) {
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	}
	return 0, false
}
