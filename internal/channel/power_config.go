package channel

import (
	"context"

	"zigbee-channels/internal/zcl"
)

// batteryStateAttrs are read as a group whenever battery state is refreshed.
var batteryStateAttrs = []string{
	"battery_size",
	"battery_percentage_remaining",
	"battery_voltage",
	"battery_quantity",
}

// PowerConfiguration reports battery health. The percentage attribute is the
// primary one and goes out on the generic attribute-updated signal; every
// other attribute goes out on the state-attribute signal so sensor entities
// can track supporting data separately.
type PowerConfiguration struct {
	*base

	// primary is resolved from the second report spec at construction.
	primary zcl.AttributeID
}

var _ Channel = (*PowerConfiguration)(nil)

// NewPowerConfiguration builds the power configuration channel.
func NewPowerConfiguration(cluster Cluster, pool Pool) Channel {
	c := &PowerConfiguration{
		base: newBase(cluster, pool,
			ReportSpec{Attr: "battery_voltage", Cadence: CadenceBatterySave},
			ReportSpec{Attr: "battery_percentage_remaining", Cadence: CadenceBatterySave},
		),
		primary: 0xFFFF,
	}
	if def := cluster.Def(); def != nil {
		if attr := def.AttributeByName(c.specs[1].Attr); attr != nil {
			c.primary = attr.ID
		}
	}
	return c
}

// HandleAttributeReport emits one of two signal kinds: the primary battery
// attribute raises attr_updated, everything else raises the state-attribute
// signal. Never both for a single report.
func (c *PowerConfiguration) HandleAttributeReport(id zcl.AttributeID, value any) {
	name := c.recordAttribute(id, value)
	if id == c.primary {
		c.pool.SendSignal(c.signal(SignalAttrUpdated), id, name, value)
		return
	}
	c.pool.SendSignal(c.signal(SignalStateAttr), name, value)
}

// readState pulls the battery attribute group.
func (c *PowerConfiguration) readState(ctx context.Context, allowCache bool) {
	c.cache.GetManyByName(ctx, batteryStateAttrs, allowCache)
}

func (c *PowerConfiguration) Initialize(ctx context.Context, fromCache bool) error {
	c.readState(ctx, fromCache)
	return c.base.Initialize(ctx, fromCache)
}

// Update refreshes battery state from the cache. Battery devices report on
// their own schedule; asking would wake the radio for nothing.
func (c *PowerConfiguration) Update(ctx context.Context) error {
	c.readState(ctx, true)
	c.setStatus(StatusReady)
	return nil
}
