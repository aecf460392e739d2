package device

import (
	"sort"
	"time"

	"zigbee-channels/internal/zcl"
)

// DeviceView is a read-only snapshot of one device for diagnostics surfaces.
// Attribute values appear under their resolved names; unknown attributes fall
// back to hex ids.
type DeviceView struct {
	IEEE         string     `json:"ieee"`
	Nwk          uint16     `json:"nwk"`
	MainsPowered bool       `json:"mains_powered"`
	Manufacturer string     `json:"manufacturer,omitempty"`
	Model        string     `json:"model,omitempty"`
	LQI          uint8      `json:"lqi,omitempty"`
	RSSI         int8       `json:"rssi,omitempty"`
	FirstSeen    time.Time  `json:"first_seen"`
	LastSeen     time.Time  `json:"last_seen"`
	Pools        []PoolView `json:"pools"`
}

// PoolView is the snapshot of one endpoint pool.
type PoolView struct {
	UniqueID string        `json:"unique_id"`
	Endpoint uint8         `json:"endpoint"`
	Channels []ChannelView `json:"channels"`
}

// ChannelView is the snapshot of one channel with its cache contents.
type ChannelView struct {
	UniqueID string         `json:"unique_id"`
	Name     string         `json:"name"`
	Cluster  zcl.ClusterID  `json:"cluster_id"`
	Client   bool           `json:"client"`
	Status   string         `json:"status"`
	Cache    map[string]any `json:"cache,omitempty"`
}

// Devices snapshots every device, sorted by id.
func (m *Manager) Devices() []DeviceView {
	devs := m.all()
	views := make([]DeviceView, 0, len(devs))
	for _, d := range devs {
		views = append(views, d.view())
	}
	sort.Slice(views, func(i, j int) bool { return views[i].IEEE < views[j].IEEE })
	return views
}

// Device snapshots one device by id.
func (m *Manager) Device(ieee string) (DeviceView, bool) {
	for _, d := range m.all() {
		if d.ID() == ieee {
			return d.view(), true
		}
	}
	return DeviceView{}, false
}

func (d *Device) view() DeviceView {
	d.seenMu.Lock()
	first, last := d.firstSeen, d.lastSeen
	lqi, rssi := d.lqi, d.rssi
	d.seenMu.Unlock()

	v := DeviceView{
		IEEE:         d.ID(),
		Nwk:          d.desc.Nwk,
		MainsPowered: d.desc.MainsPowered,
		Manufacturer: d.desc.Manufacturer,
		Model:        d.desc.Model,
		LQI:          lqi,
		RSSI:         rssi,
		FirstSeen:    first,
		LastSeen:     last,
	}
	for _, p := range d.pools {
		pv := PoolView{UniqueID: p.UniqueID(), Endpoint: p.ep.ID}
		for _, ch := range p.Channels() {
			cl := ch.Cluster()
			var cache map[string]any
			if snap := ch.Cache().Snapshot(); len(snap) > 0 {
				cache = make(map[string]any, len(snap))
				for id, val := range snap {
					cache[cl.Def().AttributeName(id)] = val
				}
			}
			pv.Channels = append(pv.Channels, ChannelView{
				UniqueID: ch.UniqueID(),
				Name:     ch.Name(),
				Cluster:  cl.ID(),
				Client:   cl.IsClient(),
				Status:   ch.Status().String(),
				Cache:    cache,
			})
		}
		v.Pools = append(v.Pools, pv)
	}
	return v
}
