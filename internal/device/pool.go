package device

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zigbee-channels/internal/channel"
	"zigbee-channels/internal/transport"
	"zigbee-channels/internal/zcl"
)

// Pool hosts the channels of one device endpoint and is the surface they run
// against. Construction consults the registry: every input cluster with a
// server factory gets a channel, every output cluster with a client factory
// gets one, and the rest are skipped. The ChannelOnly tag plays no part
// here; it only marks clusters that downstream consumers should not surface
// on their own.
type Pool struct {
	dev *Device
	ep  transport.Endpoint
	uid string
	log *slog.Logger

	server map[zcl.ClusterID]channel.Channel
	client map[zcl.ClusterID]channel.Channel
	// order keeps channels in cluster-list order for deterministic setup
	// and diagnostics output.
	order []channel.Channel
}

var _ channel.Pool = (*Pool)(nil)

func newPool(dev *Device, ep transport.Endpoint, reg *channel.Registry) *Pool {
	p := &Pool{
		dev:    dev,
		ep:     ep,
		uid:    fmt.Sprintf("%s-%d", dev.desc.IEEE, ep.ID),
		server: make(map[zcl.ClusterID]channel.Channel),
		client: make(map[zcl.ClusterID]channel.Channel),
	}
	p.log = dev.log.With("pool", p.uid)

	for _, id := range ep.InClusters {
		f := reg.Resolve(channel.KindServer, id)
		if f == nil {
			p.log.Debug("no server channel registered", "cluster", id)
			continue
		}
		ch := f(p.dev.mgr.cluster(transport.ClusterConfig{
			IEEE:     dev.desc.IEEE,
			Endpoint: ep.ID,
			Cluster:  id,
		}), p)
		p.server[id] = ch
		p.order = append(p.order, ch)
	}
	for _, id := range ep.OutClusters {
		f := reg.Resolve(channel.KindClient, id)
		if f == nil {
			p.log.Debug("no client channel registered", "cluster", id)
			continue
		}
		ch := f(p.dev.mgr.cluster(transport.ClusterConfig{
			IEEE:     dev.desc.IEEE,
			Endpoint: ep.ID,
			Cluster:  id,
			Client:   true,
		}), p)
		p.client[id] = ch
		p.order = append(p.order, ch)
	}
	return p
}

// Endpoint returns the endpoint this pool wraps.
func (p *Pool) Endpoint() transport.Endpoint { return p.ep }

// Channels lists the pool's channels, server side first.
func (p *Pool) Channels() []channel.Channel { return p.order }

// Channel returns the channel owning a cluster id: the server channel when
// the cluster sits on the device's input side, otherwise the client channel.
// Nil when neither side has one.
func (p *Pool) Channel(id zcl.ClusterID) channel.Channel {
	if ch, ok := p.server[id]; ok {
		return ch
	}
	return p.client[id]
}

func (p *Pool) UniqueID() string     { return p.uid }
func (p *Pool) IsMainsPowered() bool { return p.dev.desc.MainsPowered }

func (p *Pool) CallLater(d time.Duration, fn func()) (cancel func()) {
	return p.dev.callLater(d, fn)
}

func (p *Pool) Go(name string, fn func(ctx context.Context)) {
	p.dev.goTask(name, fn)
}

func (p *Pool) SendSignal(name string, args ...any) {
	p.dev.mgr.signals.Publish(name, args...)
}

func (p *Pool) SendEvent(ev channel.Event) {
	p.dev.mgr.publishEvent(p.dev, ev)
}

func (p *Pool) StoreAttribute(cluster zcl.ClusterID, attr zcl.AttributeID, value any) {
	p.dev.mgr.storeAttribute(p.dev.ID(), p.ep.ID, cluster, attr, value)
}

func (p *Pool) ReportingPolicy() channel.Policy { return p.dev.mgr.policy }

func (p *Pool) Logger() *slog.Logger { return p.log }
