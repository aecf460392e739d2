package device

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"zigbee-channels/internal/channel"
	"zigbee-channels/internal/store"
	"zigbee-channels/internal/transport"
	"zigbee-channels/internal/zcl"
)

const (
	// queueDepth bounds the per-device dispatch queue. A device flooding
	// faster than its handlers drain loses frames instead of stalling the
	// transport callback.
	queueDepth = 128

	setupTimeout  = 2 * time.Minute
	updateTimeout = time.Minute
)

// Device is one paired device: its interviewed identity, the channel pools
// of its endpoints, and the dispatch queue that serializes all work touching
// those channels. Frames for one device are handled strictly in arrival
// order; devices never share dispatch state.
type Device struct {
	mgr  *Manager
	desc transport.Descriptor
	log  *slog.Logger

	pools    []*Pool
	poolByEP map[uint8]*Pool

	ctx    context.Context
	cancel context.CancelFunc
	queue  chan func()
	wg     sync.WaitGroup

	timerMu   sync.Mutex
	timers    map[uint64]*time.Timer
	nextTimer uint64

	seenMu    sync.Mutex
	firstSeen time.Time
	lastSeen  time.Time
	lqi       uint8
	rssi      int8
}

func newDevice(mgr *Manager, desc transport.Descriptor) *Device {
	ctx, cancel := context.WithCancel(mgr.ctx)
	now := time.Now()
	d := &Device{
		mgr:       mgr,
		desc:      desc,
		log:       mgr.log.With("ieee", desc.IEEE),
		poolByEP:  make(map[uint8]*Pool, len(desc.Endpoints)),
		ctx:       ctx,
		cancel:    cancel,
		queue:     make(chan func(), queueDepth),
		timers:    make(map[uint64]*time.Timer),
		firstSeen: now,
		lastSeen:  now,
	}
	for _, ep := range desc.Endpoints {
		p := newPool(d, ep, mgr.reg)
		d.pools = append(d.pools, p)
		d.poolByEP[ep.ID] = p
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// ID returns the device's textual id, its IEEE address.
func (d *Device) ID() string { return d.desc.IEEE.String() }

// Pools lists the device's endpoint pools in endpoint order.
func (d *Device) Pools() []*Pool { return d.pools }

func (d *Device) channelCount() int {
	n := 0
	for _, p := range d.pools {
		n += len(p.Channels())
	}
	return n
}

// run drains the dispatch queue until the device context ends. Every queued
// job finishes before the next one starts.
func (d *Device) run() {
	defer d.wg.Done()
	for {
		select {
		case <-d.ctx.Done():
			return
		case fn := <-d.queue:
			fn()
		}
	}
}

// enqueue posts a job to the dispatch queue without blocking the caller.
func (d *Device) enqueue(kind string, fn func()) {
	select {
	case d.queue <- fn:
	default:
		d.log.Warn("dispatch queue full, dropping", "kind", kind)
	}
}

// callLater schedules fn to run once on the dispatch queue after the delay,
// so delayed work keeps the same ordering guarantee as frame handling. The
// returned func cancels the callback if it has not fired.
func (d *Device) callLater(delay time.Duration, fn func()) func() {
	d.timerMu.Lock()
	id := d.nextTimer
	d.nextTimer++
	t := time.AfterFunc(delay, func() {
		d.timerMu.Lock()
		delete(d.timers, id)
		d.timerMu.Unlock()
		d.enqueue("timer", fn)
	})
	d.timers[id] = t
	d.timerMu.Unlock()

	return func() {
		d.timerMu.Lock()
		if t, ok := d.timers[id]; ok {
			t.Stop()
			delete(d.timers, id)
		}
		d.timerMu.Unlock()
	}
}

// goTask runs fn as a named background task bound to the device lifetime.
func (d *Device) goTask(name string, fn func(ctx context.Context)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.log.Debug("task started", "task", name)
		fn(d.ctx)
		d.log.Debug("task finished", "task", name)
	}()
}

// touch records link quality and freshness from an incoming frame.
func (d *Device) touch(lqi uint8, rssi int8) {
	d.seenMu.Lock()
	d.lastSeen = time.Now()
	if lqi > 0 {
		d.lqi = lqi
		d.rssi = rssi
	}
	d.seenMu.Unlock()
}

// channelFor routes an incoming frame to the channel owning the cluster:
// server channels first, then client channels for frames generated by a
// device's output clusters.
func (d *Device) channelFor(ep uint8, cluster zcl.ClusterID) channel.Channel {
	p := d.poolByEP[ep]
	if p == nil {
		return nil
	}
	return p.Channel(cluster)
}

// setup runs the join-time channel lifecycle on the dispatch queue. New
// devices are configured first; devices restored from the store initialize
// straight from their seeded caches.
func (d *Device) setup(fromCache bool) {
	ctx, cancel := context.WithTimeout(d.ctx, setupTimeout)
	defer cancel()
	for _, p := range d.pools {
		for _, ch := range p.Channels() {
			if !fromCache {
				if err := ch.Configure(ctx); err != nil {
					d.log.Warn("configure failed", "channel", ch.UniqueID(), "err", err)
				}
			}
			if err := ch.Initialize(ctx, fromCache); err != nil {
				d.log.Warn("initialize failed", "channel", ch.UniqueID(), "err", err)
			}
		}
	}
	d.log.Info("channels ready", "channels", d.channelCount(), "from_cache", fromCache)
}

// update runs one update pass over every channel.
func (d *Device) update() {
	ctx, cancel := context.WithTimeout(d.ctx, updateTimeout)
	defer cancel()
	for _, p := range d.pools {
		for _, ch := range p.Channels() {
			if err := ch.Update(ctx); err != nil {
				d.log.Warn("update failed", "channel", ch.UniqueID(), "err", err)
			}
		}
	}
}

// shutdown closes every channel, stops outstanding timers and waits for the
// dispatch loop and background tasks to finish.
func (d *Device) shutdown() {
	for _, p := range d.pools {
		for _, ch := range p.Channels() {
			ch.Shutdown()
		}
	}
	d.timerMu.Lock()
	for id, t := range d.timers {
		t.Stop()
		delete(d.timers, id)
	}
	d.timerMu.Unlock()
	d.cancel()
	d.wg.Wait()
}

// record builds the persisted form of the device.
func (d *Device) record() *store.Device {
	d.seenMu.Lock()
	first, last := d.firstSeen, d.lastSeen
	d.seenMu.Unlock()

	eps := make([]store.Endpoint, 0, len(d.desc.Endpoints))
	for _, ep := range d.desc.Endpoints {
		eps = append(eps, store.Endpoint{
			ID:          ep.ID,
			ProfileID:   ep.ProfileID,
			DeviceID:    ep.DeviceID,
			InClusters:  ep.InClusters,
			OutClusters: ep.OutClusters,
		})
	}
	return &store.Device{
		IEEE:         d.ID(),
		Nwk:          d.desc.Nwk,
		MainsPowered: d.desc.MainsPowered,
		Manufacturer: d.desc.Manufacturer,
		Model:        d.desc.Model,
		Endpoints:    eps,
		FirstSeen:    first,
		LastSeen:     last,
	}
}
