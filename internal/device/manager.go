// Package device turns transport announcements into live devices. The
// manager is the only consumer of transport events: joins build a device and
// its channel pools, reports and commands are routed to the owning channel
// through the device's dispatch queue, and leaves tear the device down.
// Everything a channel learns is mirrored into the store so a restart can
// come back without waking the network.
package device

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"zigbee-channels/internal/bus"
	"zigbee-channels/internal/channel"
	"zigbee-channels/internal/store"
	"zigbee-channels/internal/transport"
	"zigbee-channels/internal/zcl"
)

// Manager owns every paired device.
type Manager struct {
	tr      transport.Transport
	st      store.Store
	reg     *channel.Registry
	signals *bus.Bus
	events  *bus.Bus
	policy  channel.Policy
	log     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.RWMutex
	devices map[transport.IEEE]*Device
}

// NewManager builds a manager and wires it to the transport's event
// callbacks. Call it before Transport.Start so no join announcement is
// missed. A nil policy falls back to the stock cadence table.
func NewManager(tr transport.Transport, st store.Store, reg *channel.Registry, signals, events *bus.Bus, policy channel.Policy, logger *slog.Logger) *Manager {
	if policy == nil {
		policy = channel.DefaultPolicy()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		tr:      tr,
		st:      st,
		reg:     reg,
		signals: signals,
		events:  events,
		policy:  policy,
		log:     logger.With("component", "device_manager"),
		ctx:     ctx,
		cancel:  cancel,
		devices: make(map[transport.IEEE]*Device),
	}
	tr.OnDeviceAdded(m.handleDeviceAdded)
	tr.OnDeviceLeft(m.handleDeviceLeft)
	tr.OnAttributeReport(m.handleAttributeReport)
	tr.OnClusterCommand(m.handleClusterCommand)
	return m
}

// Stop tears down every device but keeps their records: the next start
// restores them from the store.
func (m *Manager) Stop() {
	m.cancel()
	for _, d := range m.all() {
		d.shutdown()
	}
}

// UpdateAll enqueues an update pass on every device. The caller owns the
// cadence; each pass runs on the device's own dispatch queue so it never
// interleaves with frame handling.
func (m *Manager) UpdateAll() {
	for _, d := range m.all() {
		dev := d
		dev.enqueue("update", func() { dev.update() })
	}
}

func (m *Manager) all() []*Device {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Device, 0, len(m.devices))
	for _, d := range m.devices {
		out = append(out, d)
	}
	return out
}

func (m *Manager) device(ieee transport.IEEE) *Device {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.devices[ieee]
}

func (m *Manager) handleDeviceAdded(desc transport.Descriptor) {
	m.mu.Lock()
	if _, ok := m.devices[desc.IEEE]; ok {
		m.mu.Unlock()
		m.log.Debug("device re-announced", "ieee", desc.IEEE)
		return
	}
	d := newDevice(m, desc)
	m.devices[desc.IEEE] = d
	m.mu.Unlock()

	known := m.restore(d)
	m.persist(d)

	m.log.Info("device added",
		"ieee", desc.IEEE,
		"nwk", fmt.Sprintf("0x%04x", desc.Nwk),
		"model", desc.Model,
		"channels", d.channelCount(),
		"known", known,
	)

	d.enqueue("setup", func() { d.setup(known) })
	m.events.Publish(d.ID(), channel.Event{Command: "device_added"})
}

func (m *Manager) handleDeviceLeft(ev transport.DeviceLeft) {
	m.mu.Lock()
	d, ok := m.devices[ev.IEEE]
	delete(m.devices, ev.IEEE)
	m.mu.Unlock()
	if !ok {
		m.log.Debug("leave from unknown device", "ieee", ev.IEEE)
		return
	}

	d.shutdown()
	if err := m.st.DeleteDevice(d.ID()); err != nil {
		m.log.Error("delete device", "ieee", d.ID(), "err", err)
	}
	if err := m.st.DeleteAttributes(d.ID()); err != nil {
		m.log.Error("delete snapshots", "ieee", d.ID(), "err", err)
	}
	m.log.Info("device removed", "ieee", d.ID(), "model", d.desc.Model)
	m.events.Publish(d.ID(), channel.Event{Command: "device_left"})
}

func (m *Manager) handleAttributeReport(rep transport.AttributeReport) {
	d := m.device(rep.IEEE)
	if d == nil {
		m.log.Debug("report from unknown device", "ieee", rep.IEEE)
		return
	}
	value, _, err := zcl.Decode(rep.DataType, rep.Value)
	if err != nil {
		d.log.Warn("undecodable report",
			"cluster", rep.Cluster, "attr", rep.Attr,
			"type", fmt.Sprintf("0x%02x", rep.DataType), "err", err)
		return
	}
	d.touch(rep.LQI, rep.RSSI)
	d.enqueue("report", func() {
		ch := d.channelFor(rep.Endpoint, rep.Cluster)
		if ch == nil {
			d.log.Debug("report without channel", "ep", rep.Endpoint, "cluster", rep.Cluster)
			return
		}
		ch.HandleAttributeReport(rep.Attr, value)
		m.persist(d)
	})
}

func (m *Manager) handleClusterCommand(cmd transport.ClusterCommand) {
	d := m.device(cmd.IEEE)
	if d == nil {
		m.log.Debug("command from unknown device", "ieee", cmd.IEEE)
		return
	}
	d.touch(cmd.LQI, cmd.RSSI)
	d.enqueue("command", func() {
		ch := d.channelFor(cmd.Endpoint, cmd.Cluster)
		if ch == nil {
			d.log.Debug("command without channel", "ep", cmd.Endpoint, "cluster", cmd.Cluster)
			return
		}
		ch.HandleCommand(cmd.TSN, cmd.Command, cmd.Args)
		m.persist(d)
	})
}

// restore seeds the device's channel caches from stored snapshots and
// reports whether the store already knew the device. Known devices skip
// Configure and initialize from cache, so a restart does not wake every
// battery device on the network.
func (m *Manager) restore(d *Device) bool {
	rec, err := m.st.GetDevice(d.ID())
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			m.log.Error("load device", "ieee", d.ID(), "err", err)
		}
		return false
	}
	d.seenMu.Lock()
	if !rec.FirstSeen.IsZero() {
		d.firstSeen = rec.FirstSeen
	}
	d.seenMu.Unlock()

	for _, p := range d.pools {
		for _, ch := range p.Channels() {
			cl := ch.Cluster()
			attrs, err := m.st.GetAttributes(d.ID(), cl.Endpoint(), cl.ID())
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					m.log.Warn("load snapshot", "channel", ch.UniqueID(), "err", err)
				}
				continue
			}
			ch.Cache().Seed(coerceAttributes(cl.Def(), attrs))
		}
	}
	return true
}

// persist writes the device record, refreshing last-seen.
func (m *Manager) persist(d *Device) {
	if err := m.st.SaveDevice(d.record()); err != nil {
		m.log.Error("save device", "ieee", d.ID(), "err", err)
	}
}

// cluster builds the transport-side handle a channel drives.
func (m *Manager) cluster(cfg transport.ClusterConfig) channel.Cluster {
	return transport.NewCluster(m.tr, cfg, m.log)
}

// storeAttribute is the cache persistence hook shared by every pool.
func (m *Manager) storeAttribute(ieee string, ep uint8, cluster zcl.ClusterID, attr zcl.AttributeID, value any) {
	if err := m.st.SaveAttribute(ieee, ep, cluster, attr, value); err != nil {
		m.log.Warn("save attribute", "ieee", ieee, "cluster", cluster, "attr", attr, "err", err)
	}
}

// publishEvent forwards a channel event onto the device-event bus, keyed by
// the device id.
func (m *Manager) publishEvent(d *Device, ev channel.Event) {
	m.events.Publish(d.ID(), ev)
}
