package channel

import "zigbee-channels/internal/zcl"

const attrCurrentLevel zcl.AttributeID = 0x0000

// defaultMoveRate substitutes for the 0xff rate code, which asks for the
// device's own default rate.
const defaultMoveRate = 10

// LevelControl follows a dimmable endpoint's current level and translates
// level commands the device sends into set-level and move-level signals.
type LevelControl struct {
	*base
}

var _ Channel = (*LevelControl)(nil)

// NewLevelControl builds the level control channel.
func NewLevelControl(cluster Cluster, pool Pool) Channel {
	return &LevelControl{
		base: newBase(cluster, pool, ReportSpec{Attr: "current_level", Cadence: CadenceASAP}),
	}
}

func (c *LevelControl) HandleCommand(tsn uint8, cmd zcl.CommandID, args []any) {
	switch parseAndLogCommand(c.base, tsn, cmd, args) {
	case "move_to_level", "move_to_level_with_on_off":
		level, ok := argInt(args, 0)
		if !ok {
			c.log.Warn("malformed move_to_level", "args", args)
			return
		}
		c.dispatchLevelChange(SignalSetLevel, level)

	case "move", "move_with_on_off":
		// TODO: dim continuously while the move runs; for now step once.
		mode, ok := argInt(args, 0)
		rate, ok2 := argInt(args, 1)
		if !ok || !ok2 {
			c.log.Warn("malformed move", "args", args)
			return
		}
		if rate == 0xFF {
			rate = defaultMoveRate
		}
		if mode != 0 {
			rate = -rate
		}
		c.dispatchLevelChange(SignalMoveLevel, rate)

	case "step", "step_with_on_off":
		mode, ok := argInt(args, 0)
		step, ok2 := argInt(args, 1)
		if !ok || !ok2 {
			c.log.Warn("malformed step", "args", args)
			return
		}
		if mode != 0 {
			step = -step
		}
		c.dispatchLevelChange(SignalMoveLevel, step)
	}
}

func (c *LevelControl) HandleAttributeReport(id zcl.AttributeID, value any) {
	c.recordAttribute(id, value)
	if id != attrCurrentLevel {
		return
	}
	if level, ok := toInt(value); ok {
		c.dispatchLevelChange(SignalSetLevel, level)
	}
}

func (c *LevelControl) dispatchLevelChange(kind string, level int) {
	c.pool.SendSignal(c.signal(kind), level)
}
