package channel

import (
	"context"
	"encoding/binary"

	"zigbee-channels/internal/zcl"
)

// Poll control timing, in quarter seconds.
const (
	checkinInterval        = 55 * 60 * 4 // 55 min
	checkinFastPollTimeout = 2 * 4       // 2 s
	longPollInterval       = 6 * 4       // 6 s
)

// Command ids on the poll control server side.
const (
	cmdCheckinResponse     zcl.CommandID = 0x00
	cmdSetLongPollInterval zcl.CommandID = 0x02
)

// PollControl keeps a sleepy device's check-in loop going. Configuration
// writes the check-in interval; every check-in is answered with a short
// fast-poll window followed by the long poll interval. The answer runs as a
// background task because the command handler itself must not block.
type PollControl struct {
	*base
}

var _ Channel = (*PollControl)(nil)

// NewPollControl builds the poll control channel.
func NewPollControl(cluster Cluster, pool Pool) Channel {
	return &PollControl{base: newBase(cluster, pool)}
}

// Configure writes the check-in interval before the shared configure steps.
// Sleepy devices often miss the write; they pick it up on a later check-in.
func (c *PollControl) Configure(ctx context.Context) error {
	if err := c.writeCheckinInterval(ctx); err != nil {
		c.log.Debug("could not set check-in interval", "err", err)
	} else {
		c.log.Debug("check-in interval set", "quarter_seconds", checkinInterval)
	}
	return c.base.Configure(ctx)
}

func (c *PollControl) writeCheckinInterval(ctx context.Context) error {
	def := c.cluster.Def()
	if def == nil {
		return nil
	}
	attr := def.AttributeByName("checkin_interval")
	if attr == nil {
		return nil
	}
	return c.cluster.WriteAttributes(ctx, map[zcl.AttributeID]any{
		attr.ID: uint32(checkinInterval),
	})
}

// HandleCommand resolves against the client command table: check-ins are
// commands the device's client side generates.
func (c *PollControl) HandleCommand(tsn uint8, cmd zcl.CommandID, args []any) {
	name := c.cluster.Def().ClientCommandName(cmd)
	c.log.Debug("received command", "tsn", tsn, "command", name, "args", args)
	c.pool.SendEvent(Event{
		Channel: c.id,
		Cluster: c.cluster.ID(),
		Command: name,
		Args:    args,
	})
	if name != "checkin" {
		return
	}
	c.pool.Go("poll_control_checkin", func(ctx context.Context) {
		if err := c.checkinResponse(ctx, tsn); err != nil {
			c.log.Warn("check-in response failed", "err", err)
		}
	})
}

// checkinResponse accepts the check-in with a short fast-poll window and
// then moves the device back onto the long poll interval.
func (c *PollControl) checkinResponse(ctx context.Context, tsn uint8) error {
	accept := []byte{0x01}
	accept = binary.LittleEndian.AppendUint16(accept, checkinFastPollTimeout)
	if err := c.cluster.Command(ctx, CommandRequest{ID: cmdCheckinResponse, Payload: accept, TSN: tsn}); err != nil {
		return err
	}
	long := binary.LittleEndian.AppendUint32(nil, longPollInterval)
	return c.cluster.Command(ctx, CommandRequest{ID: cmdSetLongPollInterval, Payload: long})
}
