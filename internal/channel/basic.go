package channel

import (
	"context"
	"sync"
)

// Power source codes from the basic cluster.
const (
	PowerSourceUnknown uint8 = 0
	PowerSourceBattery uint8 = 3
)

// powerSources maps power_source codes to display names.
var powerSources = map[uint8]string{
	0: "Unknown",
	1: "Mains (single phase)",
	2: "Mains (3 phase)",
	3: "Battery",
	4: "DC source",
	5: "Emergency mains constantly powered",
	6: "Emergency mains and transfer switch",
}

// Basic reads device identity from the basic cluster. The power source is
// read eagerly during configuration since it decides how the rest of the
// device is polled.
type Basic struct {
	*base

	sourceMu   sync.Mutex
	source     uint8
	haveSource bool
}

var _ Channel = (*Basic)(nil)

// NewBasic builds the basic channel.
func NewBasic(cluster Cluster, pool Pool) Channel {
	return &Basic{base: newBase(cluster, pool)}
}

// Configure runs the shared configure steps and then reads the device's
// identity attributes straight away.
func (c *Basic) Configure(ctx context.Context) error {
	if err := c.base.Configure(ctx); err != nil {
		return err
	}
	return c.Initialize(ctx, false)
}

func (c *Basic) Initialize(ctx context.Context, fromCache bool) error {
	if v, ok := c.cache.GetByName(ctx, "power_source", fromCache); ok {
		if src, ok := toInt(v); ok {
			c.sourceMu.Lock()
			c.source = uint8(src)
			c.haveSource = true
			c.sourceMu.Unlock()
		}
	}
	return c.base.Initialize(ctx, fromCache)
}

// PowerSource returns the power_source code, if it has been read.
func (c *Basic) PowerSource() (uint8, bool) {
	c.sourceMu.Lock()
	defer c.sourceMu.Unlock()
	return c.source, c.haveSource
}

// PowerSourceName returns the display name of the device's power source.
func (c *Basic) PowerSourceName() string {
	src, ok := c.PowerSource()
	if !ok {
		return powerSources[PowerSourceUnknown]
	}
	if name, ok := powerSources[src]; ok {
		return name
	}
	return powerSources[PowerSourceUnknown]
}
