package channel

// Signal kinds emitted by channels. Channel-scoped signals go out under
// "<channel id>_<kind>"; SignalUpdateDevice is scoped by the device id
// instead, so firmware events address the device as a whole.
const (
	SignalAttrUpdated  = "attr_updated"
	SignalSetLevel     = "set_level"
	SignalMoveLevel    = "move_level"
	SignalStateAttr    = "update_state_attribute"
	SignalUpdateDevice = "update_device"
)
