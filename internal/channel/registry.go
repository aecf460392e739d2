package channel

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"zigbee-channels/internal/zcl"
)

// Kind names one of the registries channels are filed under. The server and
// client kinds map cluster ids to factories; the remaining kinds are
// capability tags the entity layer reads.
type Kind uint8

const (
	KindServer Kind = iota
	KindClient
	KindBindable
	KindLight
	KindSwitch
	KindBinarySensor
	KindDeviceTracker
	// KindChannelOnly marks clusters that get a channel but no entity of
	// their own.
	KindChannelOnly
)

func (k Kind) String() string {
	switch k {
	case KindServer:
		return "server"
	case KindClient:
		return "client"
	case KindBindable:
		return "bindable"
	case KindLight:
		return "light"
	case KindSwitch:
		return "switch"
	case KindBinarySensor:
		return "binary_sensor"
	case KindDeviceTracker:
		return "device_tracker"
	case KindChannelOnly:
		return "channel_only"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Kinds lists every registry kind.
func Kinds() []Kind {
	return []Kind{
		KindServer, KindClient, KindBindable, KindLight,
		KindSwitch, KindBinarySensor, KindDeviceTracker, KindChannelOnly,
	}
}

// ErrConflict reports a duplicate registration within one registry kind.
// Registration runs once at startup, so a conflict is a programming error
// and callers abort on it.
var ErrConflict = errors.New("duplicate registration")

// Factory builds a channel for a cluster handle on a pool.
type Factory func(cluster Cluster, pool Pool) Channel

// Registry maps cluster ids to channel factories and capability tags. A
// cluster id may appear in several kinds at once; within one kind it may
// appear only once.
type Registry struct {
	mu        sync.RWMutex
	factories map[Kind]map[zcl.ClusterID]Factory
	tags      map[Kind]map[zcl.ClusterID]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[Kind]map[zcl.ClusterID]Factory),
		tags:      make(map[Kind]map[zcl.ClusterID]struct{}),
	}
}

// Register files a factory for a cluster id under a factory kind.
func (r *Registry) Register(kind Kind, id zcl.ClusterID, f Factory) error {
	if kind != KindServer && kind != KindClient {
		return fmt.Errorf("register %s %s: kind takes tags, not factories", kind, id)
	}
	if f == nil {
		return fmt.Errorf("register %s %s: nil factory", kind, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.factories[kind]
	if m == nil {
		m = make(map[zcl.ClusterID]Factory)
		r.factories[kind] = m
	}
	if _, ok := m[id]; ok {
		return fmt.Errorf("%s %s: %w", kind, id, ErrConflict)
	}
	m[id] = f
	return nil
}

// Tag marks a cluster id with a capability kind.
func (r *Registry) Tag(kind Kind, id zcl.ClusterID) error {
	if kind == KindServer || kind == KindClient {
		return fmt.Errorf("tag %s %s: kind takes factories, not tags", kind, id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.tags[kind]
	if m == nil {
		m = make(map[zcl.ClusterID]struct{})
		r.tags[kind] = m
	}
	if _, ok := m[id]; ok {
		return fmt.Errorf("%s %s: %w", kind, id, ErrConflict)
	}
	m[id] = struct{}{}
	return nil
}

// Resolve returns the factory for the cluster id under a factory kind, or
// nil when none is registered.
func (r *Registry) Resolve(kind Kind, id zcl.ClusterID) Factory {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.factories[kind][id]
}

// HasTag reports whether the cluster id carries the capability kind.
func (r *Registry) HasTag(kind Kind, id zcl.ClusterID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tags[kind][id]
	return ok
}

// Clusters lists the ids filed under a kind, sorted.
func (r *Registry) Clusters(kind Kind) []zcl.ClusterID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []zcl.ClusterID
	for id := range r.factories[kind] {
		ids = append(ids, id)
	}
	for id := range r.tags[kind] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
