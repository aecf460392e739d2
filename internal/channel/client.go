package channel

import (
	"context"

	"zigbee-channels/internal/zcl"
)

// Client handles clusters a device exposes on its client side: command
// traffic and attribute writes become device events for the diagnostics
// stream. No binding or reporting is set up for these clusters.
type Client struct {
	*base
}

var _ Channel = (*Client)(nil)

// NewClient builds a client-side channel.
func NewClient(cluster Cluster, pool Pool) Channel {
	return &Client{base: newBase(cluster, pool)}
}

func (c *Client) Configure(ctx context.Context) error {
	c.setStatus(StatusConfigured)
	return nil
}

func (c *Client) Initialize(ctx context.Context, fromCache bool) error {
	c.setStatus(StatusReady)
	return nil
}

func (c *Client) HandleAttributeReport(id zcl.AttributeID, value any) {
	name := c.recordAttribute(id, value)
	c.pool.SendEvent(Event{
		Channel: c.id,
		Cluster: c.cluster.ID(),
		Command: SignalAttrUpdated,
		Args: []any{map[string]any{
			"attribute_id":   id,
			"attribute_name": name,
			"value":          value,
		}},
	})
}

// HandleCommand turns known server commands into device events; unknown
// commands are dropped without logging noise.
func (c *Client) HandleCommand(tsn uint8, cmd zcl.CommandID, args []any) {
	def := c.cluster.Def()
	if def == nil {
		return
	}
	sc := def.ServerCommand(cmd)
	if sc == nil {
		return
	}
	c.pool.SendEvent(Event{
		Channel: c.id,
		Cluster: c.cluster.ID(),
		Command: sc.Name,
		Args:    args,
	})
}
