// Package channel adapts Zigbee clusters to the rest of the system. One
// channel instance watches one cluster of one device endpoint: it owns the
// cluster's reporting configuration, keeps an attribute cache fresh, and
// translates incoming commands and attribute reports into signals on the
// shared bus and events for user-visible diagnostics.
package channel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"zigbee-channels/internal/zcl"
)

// Status tracks a channel's lifecycle. Ready is re-entered after every
// update.
type Status uint8

const (
	StatusUnbound Status = iota
	StatusConfigured
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusUnbound:
		return "unbound"
	case StatusConfigured:
		return "configured"
	case StatusReady:
		return "ready"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Event carries a device command verbatim to user-visible diagnostics,
// independent of the signal bus.
type Event struct {
	Channel string        `json:"channel"`
	Cluster zcl.ClusterID `json:"cluster_id"`
	Command string        `json:"command"`
	Args    []any         `json:"args,omitempty"`
}

// Pool is the device-endpoint surface a channel runs against. One pool backs
// all channels of one endpoint; the device layer implements it. A channel
// never outlives its pool.
type Pool interface {
	// UniqueID identifies the endpoint as "<device id>-<endpoint id>".
	UniqueID() string
	IsMainsPowered() bool
	// CallLater schedules fn to run once after d. The returned func cancels
	// the callback if it has not fired yet.
	CallLater(d time.Duration, fn func()) (cancel func())
	// Go runs fn as a named background task tied to the device lifetime.
	Go(name string, fn func(ctx context.Context))
	SendSignal(name string, args ...any)
	SendEvent(ev Event)
	// StoreAttribute persists a cached attribute value for this endpoint.
	StoreAttribute(cluster zcl.ClusterID, attr zcl.AttributeID, value any)
	ReportingPolicy() Policy
	Logger() *slog.Logger
}

// Channel is one cluster adapter. The device layer calls HandleCommand and
// HandleAttributeReport in frame arrival order; both must return without
// blocking on network I/O.
type Channel interface {
	UniqueID() string
	Name() string
	Cluster() Cluster
	Cache() *Cache
	Status() Status

	// Configure binds the cluster and sets up attribute reporting. Partial
	// failure is logged, not fatal.
	Configure(ctx context.Context) error
	// Initialize populates the attribute cache for the channel's declared
	// attributes; fromCache serves values already known instead of reading
	// the device.
	Initialize(ctx context.Context, fromCache bool) error
	// Update refreshes the channel's state periodically.
	Update(ctx context.Context) error

	HandleCommand(tsn uint8, cmd zcl.CommandID, args []any)
	HandleAttributeReport(id zcl.AttributeID, value any)

	// Shutdown cancels pending timers when the device goes away.
	Shutdown()
}

// base carries the behavior every channel shares: lifecycle state, the
// attribute cache, report subscription and the default frame handlers.
// Concrete channels embed it and override what they need.
type base struct {
	pool    Pool
	cluster Cluster
	log     *slog.Logger
	id      string
	specs   []ReportSpec
	cache   *Cache

	mu     sync.Mutex
	status Status
}

func newBase(cluster Cluster, pool Pool, specs ...ReportSpec) *base {
	b := &base{
		pool:    pool,
		cluster: cluster,
		id:      fmt.Sprintf("%s:%s", pool.UniqueID(), cluster.ID()),
		specs:   specs,
	}
	b.log = pool.Logger().With("channel", b.id, "cluster", cluster.Name())
	b.cache = newCache(cluster, b.log, func(attr zcl.AttributeID, value any) {
		pool.StoreAttribute(cluster.ID(), attr, value)
	})
	return b
}

func (b *base) UniqueID() string { return b.id }
func (b *base) Name() string     { return b.cluster.Name() }
func (b *base) Cluster() Cluster { return b.cluster }
func (b *base) Cache() *Cache    { return b.cache }

func (b *base) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *base) setStatus(s Status) {
	b.mu.Lock()
	b.status = s
	b.mu.Unlock()
}

// signal returns the channel-scoped signal name for a kind.
func (b *base) signal(kind string) string { return b.id + "_" + kind }

// reportingConfigs resolves the channel's report specs against the cluster
// definition and the pool's reporting policy.
func (b *base) reportingConfigs() []ReportingConfig {
	def := b.cluster.Def()
	if def == nil {
		if len(b.specs) > 0 {
			b.log.Warn("no cluster definition, skipping report setup")
		}
		return nil
	}
	policy := b.pool.ReportingPolicy()
	configs := make([]ReportingConfig, 0, len(b.specs))
	for _, spec := range b.specs {
		attr := def.AttributeByName(spec.Attr)
		if attr == nil {
			b.log.Warn("unknown report attribute", "attr", spec.Attr)
			continue
		}
		prof := policy.Profile(spec.Cadence)
		configs = append(configs, ReportingConfig{
			Attribute: attr.ID,
			DataType:  attr.Type,
			Min:       prof.Min,
			Max:       prof.Max,
			Change:    prof.Change,
		})
	}
	return configs
}

// Configure binds the cluster and subscribes the declared attributes in one
// batched reporting request. Both steps are best effort: sleepy devices
// often miss them during pairing, and the channel stays usable through
// on-demand reads. Calling Configure again re-sends the same request.
func (b *base) Configure(ctx context.Context) error {
	if err := b.cluster.Bind(ctx); err != nil {
		b.log.Warn("bind failed", "err", err)
	}
	if configs := b.reportingConfigs(); len(configs) > 0 {
		if err := b.cluster.ConfigureReporting(ctx, configs); err != nil {
			b.log.Warn("configure reporting failed", "err", err)
		} else {
			b.log.Debug("reporting configured", "attrs", len(configs))
		}
	}
	b.setStatus(StatusConfigured)
	return nil
}

// readDeclared primes the cache for the channel's report specs.
func (b *base) readDeclared(ctx context.Context, allowCache bool) {
	if len(b.specs) == 0 {
		return
	}
	names := make([]string, len(b.specs))
	for i, s := range b.specs {
		names[i] = s.Attr
	}
	b.cache.GetManyByName(ctx, names, allowCache)
}

// Initialize fills the attribute cache for the declared attributes and marks
// the channel ready.
func (b *base) Initialize(ctx context.Context, fromCache bool) error {
	b.readDeclared(ctx, fromCache)
	b.setStatus(StatusReady)
	return nil
}

// Update re-reads the declared attributes. Client clusters carry no server
// state, and battery devices are served from cache so the radio stays
// asleep.
func (b *base) Update(ctx context.Context) error {
	if b.cluster.IsClient() {
		return nil
	}
	b.readDeclared(ctx, !b.pool.IsMainsPowered())
	b.setStatus(StatusReady)
	return nil
}

// HandleCommand logs the frame. Channels with command behavior override it;
// unknown commands are ignored.
func (b *base) HandleCommand(tsn uint8, cmd zcl.CommandID, args []any) {
	parseAndLogCommand(b, tsn, cmd, args)
}

// HandleAttributeReport records a reported value and announces it on the
// signal bus.
func (b *base) HandleAttributeReport(id zcl.AttributeID, value any) {
	name := b.recordAttribute(id, value)
	b.pool.SendSignal(b.signal(SignalAttrUpdated), id, name, value)
}

// recordAttribute caches a reported value and resolves the attribute name.
func (b *base) recordAttribute(id zcl.AttributeID, value any) string {
	b.cache.Put(id, value)
	return b.cluster.Def().AttributeName(id)
}

// Shutdown releases channel resources. The base holds none.
func (b *base) Shutdown() {
	b.log.Debug("closing channel")
}
