package channel

import "zigbee-channels/internal/zcl"

// Identify relays trigger_effect commands so entity layers can flash or
// breathe a light on request.
type Identify struct {
	*base
}

var _ Channel = (*Identify)(nil)

// NewIdentify builds the identify channel.
func NewIdentify(cluster Cluster, pool Pool) Channel {
	return &Identify{base: newBase(cluster, pool)}
}

func (c *Identify) HandleCommand(tsn uint8, cmd zcl.CommandID, args []any) {
	name := parseAndLogCommand(c.base, tsn, cmd, args)
	if name != "trigger_effect" {
		return
	}
	effect, ok := argAt(args, 0)
	if !ok {
		c.log.Warn("trigger_effect without effect id")
		return
	}
	c.pool.SendSignal(c.signal(name), effect)
}
