package channel

import (
	"context"
	"sync"
	"time"

	"zigbee-channels/internal/zcl"
)

const attrOnOff zcl.AttributeID = 0x0000

// OnOff tracks the on/off state of a switch or light endpoint. Commands the
// device sends to its bound client are folded into the tracked state right
// away, so consumers do not wait for the next attribute report.
type OnOff struct {
	*base

	stateMu   sync.Mutex
	on        bool
	cancelOff func()
}

var _ Channel = (*OnOff)(nil)

// NewOnOff builds the on/off channel.
func NewOnOff(cluster Cluster, pool Pool) Channel {
	return &OnOff{
		base: newBase(cluster, pool, ReportSpec{Attr: "on_off", Cadence: CadenceImmediate}),
	}
}

// IsOn returns the tracked on/off state.
func (c *OnOff) IsOn() bool {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.on
}

// stateChanged folds a new state in and announces it.
func (c *OnOff) stateChanged(on bool) {
	c.stateMu.Lock()
	c.on = on
	c.stateMu.Unlock()
	c.pool.SendSignal(c.signal(SignalAttrUpdated), attrOnOff, "on_off", on)
}

func (c *OnOff) HandleCommand(tsn uint8, cmd zcl.CommandID, args []any) {
	switch parseAndLogCommand(c.base, tsn, cmd, args) {
	case "off", "off_with_effect":
		c.stateChanged(false)
	case "on", "on_with_recall_global_scene":
		c.stateChanged(true)
	case "on_with_timed_off":
		c.timedOn(args)
	case "toggle":
		c.stateChanged(!c.IsOn())
	}
}

// timedOn handles on_with_timed_off: an on that reverts by itself. The
// arguments carry an accept mode (0 always accepts, 1 only while already on)
// and the on time in tenths of a second.
func (c *OnOff) timedOn(args []any) {
	mode, ok := argInt(args, 0)
	onTime, ok2 := argInt(args, 1)
	if !ok || !ok2 {
		c.log.Warn("malformed on_with_timed_off", "args", args)
		return
	}
	if mode != 0 && !(mode == 1 && c.IsOn()) {
		return
	}

	c.cancelPendingOff()
	c.stateChanged(true)
	if onTime > 0 {
		d := time.Duration(onTime) * time.Second / 10
		c.stateMu.Lock()
		c.cancelOff = c.pool.CallLater(d, c.setToOff)
		c.stateMu.Unlock()
	}
}

// setToOff is the delayed turn-off scheduled by on_with_timed_off.
func (c *OnOff) setToOff() {
	c.stateMu.Lock()
	c.cancelOff = nil
	c.stateMu.Unlock()
	c.stateChanged(false)
}

// cancelPendingOff drops the outstanding auto-off timer, if any. Only one
// may be pending per channel.
func (c *OnOff) cancelPendingOff() {
	c.stateMu.Lock()
	cancel := c.cancelOff
	c.cancelOff = nil
	c.stateMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (c *OnOff) HandleAttributeReport(id zcl.AttributeID, value any) {
	c.recordAttribute(id, value)
	if id != attrOnOff {
		return
	}
	on, ok := value.(bool)
	if !ok {
		c.log.Warn("unexpected on_off report", "value", value)
		return
	}
	c.stateChanged(on)
}

// Initialize restores the tracked state from the cache once the declared
// attributes are primed.
func (c *OnOff) Initialize(ctx context.Context, fromCache bool) error {
	if err := c.base.Initialize(ctx, fromCache); err != nil {
		return err
	}
	if v, ok := c.cache.Peek(attrOnOff); ok {
		if on, ok := v.(bool); ok {
			c.stateMu.Lock()
			c.on = on
			c.stateMu.Unlock()
		}
	}
	return nil
}

// Update re-reads the state, straight from the device when mains powered,
// and folds a changed value into the tracked state.
func (c *OnOff) Update(ctx context.Context) error {
	if c.cluster.IsClient() {
		return nil
	}
	allowCache := !c.pool.IsMainsPowered()
	c.log.Debug("updating on/off state", "from_cache", allowCache)
	if v, ok := c.cache.Get(ctx, attrOnOff, allowCache); ok {
		if on, ok := v.(bool); ok && on != c.IsOn() {
			c.stateChanged(on)
		}
	}
	c.setStatus(StatusReady)
	return nil
}

// Shutdown cancels a pending auto-off timer.
func (c *OnOff) Shutdown() {
	c.cancelPendingOff()
	c.base.Shutdown()
}
