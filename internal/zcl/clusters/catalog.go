package clusters

import "zigbee-channels/internal/zcl"

// Clusters outside the general function domain. No adapters attach to these
// here; the definitions give diagnostics readable names and attribute types.

var DoorLock = zcl.ClusterDef{
	ID:   0x0101,
	Name: "door_lock",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "lock_state", Type: zcl.TypeEnum8, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0001, Name: "lock_type", Type: zcl.TypeEnum8, Access: zcl.AccessRead},
		{ID: 0x0002, Name: "actuator_enabled", Type: zcl.TypeBool, Access: zcl.AccessRead},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "lock_door"},
		{ID: 0x01, Name: "unlock_door"},
		{ID: 0x03, Name: "unlock_with_timeout"},
	},
}

var WindowCovering = zcl.ClusterDef{
	ID:   0x0102,
	Name: "window_covering",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "window_covering_type", Type: zcl.TypeEnum8, Access: zcl.AccessRead},
		{ID: 0x0008, Name: "current_position_lift_percentage", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0009, Name: "current_position_tilt_percentage", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessReport},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "up_open"},
		{ID: 0x01, Name: "down_close"},
		{ID: 0x02, Name: "stop"},
		{ID: 0x05, Name: "go_to_lift_percentage"},
		{ID: 0x08, Name: "go_to_tilt_percentage"},
	},
}

var Thermostat = zcl.ClusterDef{
	ID:   0x0201,
	Name: "thermostat",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "local_temperature", Type: zcl.TypeInt16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0011, Name: "occupied_cooling_setpoint", Type: zcl.TypeInt16, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0012, Name: "occupied_heating_setpoint", Type: zcl.TypeInt16, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x001C, Name: "system_mode", Type: zcl.TypeEnum8, Access: zcl.AccessRead | zcl.AccessWrite | zcl.AccessReport},
		{ID: 0x0029, Name: "running_state", Type: zcl.TypeBitmap16, Access: zcl.AccessRead},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "setpoint_raise_lower"},
	},
}

var FanControl = zcl.ClusterDef{
	ID:   0x0202,
	Name: "fan",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "fan_mode", Type: zcl.TypeEnum8, Access: zcl.AccessRead | zcl.AccessWrite | zcl.AccessReport},
		{ID: 0x0001, Name: "fan_mode_sequence", Type: zcl.TypeEnum8, Access: zcl.AccessRead | zcl.AccessWrite},
	},
}

var ColorControl = zcl.ClusterDef{
	ID:   0x0300,
	Name: "light_color",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "current_hue", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0001, Name: "current_saturation", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0003, Name: "current_x", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0004, Name: "current_y", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0007, Name: "color_temperature", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0008, Name: "color_mode", Type: zcl.TypeEnum8, Access: zcl.AccessRead},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "move_to_hue"},
		{ID: 0x06, Name: "move_to_hue_and_saturation"},
		{ID: 0x07, Name: "move_to_color"},
		{ID: 0x0A, Name: "move_to_color_temp"},
	},
}

var IlluminanceMeasurement = zcl.ClusterDef{
	ID:   0x0400,
	Name: "illuminance",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "measured_value", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0001, Name: "min_measured_value", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0002, Name: "max_measured_value", Type: zcl.TypeUint16, Access: zcl.AccessRead},
	},
}

var TemperatureMeasurement = zcl.ClusterDef{
	ID:   0x0402,
	Name: "temperature",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "measured_value", Type: zcl.TypeInt16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0001, Name: "min_measured_value", Type: zcl.TypeInt16, Access: zcl.AccessRead},
		{ID: 0x0002, Name: "max_measured_value", Type: zcl.TypeInt16, Access: zcl.AccessRead},
		{ID: 0x0003, Name: "tolerance", Type: zcl.TypeUint16, Access: zcl.AccessRead},
	},
}

var PressureMeasurement = zcl.ClusterDef{
	ID:   0x0403,
	Name: "pressure",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "measured_value", Type: zcl.TypeInt16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0001, Name: "min_measured_value", Type: zcl.TypeInt16, Access: zcl.AccessRead},
		{ID: 0x0002, Name: "max_measured_value", Type: zcl.TypeInt16, Access: zcl.AccessRead},
	},
}

var RelativeHumidity = zcl.ClusterDef{
	ID:   0x0405,
	Name: "humidity",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "measured_value", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0001, Name: "min_measured_value", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0002, Name: "max_measured_value", Type: zcl.TypeUint16, Access: zcl.AccessRead},
	},
}

var OccupancySensing = zcl.ClusterDef{
	ID:   0x0406,
	Name: "occupancy",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "occupancy", Type: zcl.TypeBitmap8, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0001, Name: "occupancy_sensor_type", Type: zcl.TypeEnum8, Access: zcl.AccessRead},
	},
}

var IasZone = zcl.ClusterDef{
	ID:   0x0500,
	Name: "ias_zone",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "zone_state", Type: zcl.TypeEnum8, Access: zcl.AccessRead},
		{ID: 0x0001, Name: "zone_type", Type: zcl.TypeEnum16, Access: zcl.AccessRead},
		{ID: 0x0002, Name: "zone_status", Type: zcl.TypeBitmap16, Access: zcl.AccessRead},
		{ID: 0x0010, Name: "cie_addr", Type: zcl.TypeEUI64, Access: zcl.AccessRead | zcl.AccessWrite},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "enroll_response"},
	},
	ClientCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "status_change_notification"},
		{ID: 0x01, Name: "enroll"},
	},
}

var Metering = zcl.ClusterDef{
	ID:   0x0702,
	Name: "smartenergy_metering",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "current_summ_delivered", Type: zcl.TypeUint48, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0200, Name: "status", Type: zcl.TypeBitmap8, Access: zcl.AccessRead},
		{ID: 0x0300, Name: "unit_of_measure", Type: zcl.TypeEnum8, Access: zcl.AccessRead},
		{ID: 0x0301, Name: "multiplier", Type: zcl.TypeUint24, Access: zcl.AccessRead},
		{ID: 0x0302, Name: "divisor", Type: zcl.TypeUint24, Access: zcl.AccessRead},
		{ID: 0x0400, Name: "instantaneous_demand", Type: zcl.TypeInt24, Access: zcl.AccessRead | zcl.AccessReport},
	},
}

var ElectricalMeasurement = zcl.ClusterDef{
	ID:   0x0B04,
	Name: "electrical_measurement",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0505, Name: "rms_voltage", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0508, Name: "rms_current", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x050B, Name: "active_power", Type: zcl.TypeInt16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0600, Name: "ac_voltage_multiplier", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0601, Name: "ac_voltage_divisor", Type: zcl.TypeUint16, Access: zcl.AccessRead},
	},
}

var Diagnostic = zcl.ClusterDef{
	ID:   0x0B05,
	Name: "diagnostic",
	Attributes: []zcl.AttributeDef{
		{ID: 0x011C, Name: "last_message_lqi", Type: zcl.TypeUint8, Access: zcl.AccessRead},
		{ID: 0x011D, Name: "last_message_rssi", Type: zcl.TypeInt8, Access: zcl.AccessRead},
	},
}

var TouchlinkCommissioning = zcl.ClusterDef{
	ID:   0x1000,
	Name: "touchlink",
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "scan"},
		{ID: 0x06, Name: "identify"},
		{ID: 0x07, Name: "reset_to_factory_new"},
	},
}
