package clusters

import "zigbee-channels/internal/zcl"

var PollControl = zcl.ClusterDef{
	ID:   0x0020,
	Name: "poll_control",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "checkin_interval", Type: zcl.TypeUint32, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0001, Name: "long_poll_interval", Type: zcl.TypeUint32, Access: zcl.AccessRead},
		{ID: 0x0002, Name: "short_poll_interval", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0003, Name: "fast_poll_timeout", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0004, Name: "checkin_interval_min", Type: zcl.TypeUint32, Access: zcl.AccessRead},
		{ID: 0x0005, Name: "long_poll_interval_min", Type: zcl.TypeUint32, Access: zcl.AccessRead},
		{ID: 0x0006, Name: "fast_poll_timeout_max", Type: zcl.TypeUint16, Access: zcl.AccessRead},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "checkin_response"},
		{ID: 0x01, Name: "fast_poll_stop"},
		{ID: 0x02, Name: "set_long_poll_interval"},
		{ID: 0x03, Name: "set_short_poll_interval"},
	},
	ClientCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "checkin"},
	},
}

var GreenPowerProxy = zcl.ClusterDef{
	ID:   0x0021,
	Name: "green_power",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0010, Name: "max_sink_table_entries", Type: zcl.TypeUint8, Access: zcl.AccessRead},
		{ID: 0x0016, Name: "commissioning_exit_mode", Type: zcl.TypeBitmap8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0020, Name: "shared_security_key_type", Type: zcl.TypeBitmap8, Access: zcl.AccessRead | zcl.AccessWrite},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "notification"},
		{ID: 0x04, Name: "commissioning_notification"},
	},
	ClientCommands: []zcl.CommandDef{
		{ID: 0x01, Name: "pairing"},
		{ID: 0x02, Name: "proxy_commissioning_mode"},
		{ID: 0x06, Name: "response"},
	},
}
