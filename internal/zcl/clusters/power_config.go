package clusters

import "zigbee-channels/internal/zcl"

var PowerConfiguration = zcl.ClusterDef{
	ID:   0x0001,
	Name: "power",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "mains_voltage", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0001, Name: "mains_frequency", Type: zcl.TypeUint8, Access: zcl.AccessRead},
		{ID: 0x0010, Name: "mains_alarm_mask", Type: zcl.TypeBitmap8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0020, Name: "battery_voltage", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0021, Name: "battery_percentage_remaining", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0030, Name: "battery_manufacturer", Type: zcl.TypeCharStr, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0031, Name: "battery_size", Type: zcl.TypeEnum8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0032, Name: "battery_a_hr_rating", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0033, Name: "battery_quantity", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0034, Name: "battery_rated_voltage", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0035, Name: "battery_alarm_mask", Type: zcl.TypeBitmap8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0036, Name: "battery_volt_min_thres", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x003A, Name: "battery_percent_min_thres", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x003E, Name: "battery_alarm_state", Type: zcl.TypeBitmap32, Access: zcl.AccessRead | zcl.AccessReport},
	},
}
