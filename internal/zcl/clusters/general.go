package clusters

import "zigbee-channels/internal/zcl"

// Remaining clusters of the general function domain (0x0002..0x0016).

var DeviceTemperature = zcl.ClusterDef{
	ID:   0x0002,
	Name: "device_temperature",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "current_temperature", Type: zcl.TypeInt16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0001, Name: "min_temp_experienced", Type: zcl.TypeInt16, Access: zcl.AccessRead},
		{ID: 0x0002, Name: "max_temp_experienced", Type: zcl.TypeInt16, Access: zcl.AccessRead},
		{ID: 0x0003, Name: "over_temp_total_dwell", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0010, Name: "dev_temp_alarm_mask", Type: zcl.TypeBitmap8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0011, Name: "low_temp_thres", Type: zcl.TypeInt16, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0012, Name: "high_temp_thres", Type: zcl.TypeInt16, Access: zcl.AccessRead | zcl.AccessWrite},
	},
}

var Identify = zcl.ClusterDef{
	ID:   0x0003,
	Name: "identify",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "identify_time", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessWrite},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "identify"},
		{ID: 0x01, Name: "identify_query"},
		{ID: 0x40, Name: "trigger_effect"},
	},
	ClientCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "identify_query_response"},
	},
}

var Groups = zcl.ClusterDef{
	ID:   0x0004,
	Name: "groups",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "name_support", Type: zcl.TypeBitmap8, Access: zcl.AccessRead},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "add"},
		{ID: 0x01, Name: "view"},
		{ID: 0x02, Name: "get_membership"},
		{ID: 0x03, Name: "remove"},
		{ID: 0x04, Name: "remove_all"},
		{ID: 0x05, Name: "add_if_identifying"},
	},
	ClientCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "add_response"},
		{ID: 0x01, Name: "view_response"},
		{ID: 0x02, Name: "get_membership_response"},
		{ID: 0x03, Name: "remove_response"},
	},
}

var Scenes = zcl.ClusterDef{
	ID:   0x0005,
	Name: "scenes",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "count", Type: zcl.TypeUint8, Access: zcl.AccessRead},
		{ID: 0x0001, Name: "current_scene", Type: zcl.TypeUint8, Access: zcl.AccessRead},
		{ID: 0x0002, Name: "current_group", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0003, Name: "scene_valid", Type: zcl.TypeBool, Access: zcl.AccessRead},
		{ID: 0x0004, Name: "name_support", Type: zcl.TypeBitmap8, Access: zcl.AccessRead},
		{ID: 0x0005, Name: "last_configured_by", Type: zcl.TypeEUI64, Access: zcl.AccessRead},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "add"},
		{ID: 0x01, Name: "view"},
		{ID: 0x02, Name: "remove"},
		{ID: 0x03, Name: "remove_all"},
		{ID: 0x04, Name: "store"},
		{ID: 0x05, Name: "recall"},
		{ID: 0x06, Name: "get_scene_membership"},
		{ID: 0x40, Name: "enhanced_add"},
		{ID: 0x41, Name: "enhanced_view"},
		{ID: 0x42, Name: "copy"},
	},
	ClientCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "add_scene_response"},
		{ID: 0x01, Name: "view_response"},
		{ID: 0x02, Name: "remove_scene_response"},
		{ID: 0x03, Name: "remove_all_scenes_response"},
		{ID: 0x04, Name: "store_scene_response"},
		{ID: 0x06, Name: "get_scene_membership_response"},
	},
}

var OnOffConfiguration = zcl.ClusterDef{
	ID:   0x0007,
	Name: "on_off_config",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "switch_type", Type: zcl.TypeEnum8, Access: zcl.AccessRead},
		{ID: 0x0010, Name: "switch_actions", Type: zcl.TypeEnum8, Access: zcl.AccessRead | zcl.AccessWrite},
	},
}

var Alarms = zcl.ClusterDef{
	ID:   0x0009,
	Name: "alarms",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "alarm_count", Type: zcl.TypeUint16, Access: zcl.AccessRead},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "reset_alarm"},
		{ID: 0x01, Name: "reset_all_alarms"},
		{ID: 0x02, Name: "get_alarm"},
		{ID: 0x03, Name: "reset_alarm_log"},
	},
	ClientCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "alarm"},
		{ID: 0x01, Name: "get_alarm_response"},
	},
}

var Time = zcl.ClusterDef{
	ID:   0x000A,
	Name: "time",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "time", Type: zcl.TypeUTC, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0001, Name: "time_status", Type: zcl.TypeBitmap8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0002, Name: "time_zone", Type: zcl.TypeInt32, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0003, Name: "dst_start", Type: zcl.TypeUint32, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0004, Name: "dst_end", Type: zcl.TypeUint32, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0005, Name: "dst_shift", Type: zcl.TypeInt32, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0006, Name: "standard_time", Type: zcl.TypeUint32, Access: zcl.AccessRead},
		{ID: 0x0007, Name: "local_time", Type: zcl.TypeUint32, Access: zcl.AccessRead},
		{ID: 0x0008, Name: "last_set_time", Type: zcl.TypeUTC, Access: zcl.AccessRead},
		{ID: 0x0009, Name: "valid_until_time", Type: zcl.TypeUTC, Access: zcl.AccessRead | zcl.AccessWrite},
	},
}

var RSSILocation = zcl.ClusterDef{
	ID:   0x000B,
	Name: "rssi_location",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "type", Type: zcl.TypeBitmap8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0001, Name: "method", Type: zcl.TypeEnum8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0002, Name: "age", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0003, Name: "quality_measure", Type: zcl.TypeUint8, Access: zcl.AccessRead},
		{ID: 0x0004, Name: "num_of_devices", Type: zcl.TypeUint8, Access: zcl.AccessRead},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "set_absolute_location"},
		{ID: 0x01, Name: "set_dev_config"},
		{ID: 0x02, Name: "get_dev_config"},
		{ID: 0x03, Name: "get_location_data"},
	},
	ClientCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "dev_config_response"},
		{ID: 0x01, Name: "location_data_response"},
		{ID: 0x02, Name: "location_data_notification"},
	},
}

var Commissioning = zcl.ClusterDef{
	ID:   0x0015,
	Name: "commissioning",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "short_address", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0001, Name: "extended_pan_id", Type: zcl.TypeEUI64, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0002, Name: "pan_id", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0005, Name: "startup_control", Type: zcl.TypeEnum8, Access: zcl.AccessRead | zcl.AccessWrite},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "restart_device"},
		{ID: 0x01, Name: "save_startup_parameters"},
		{ID: 0x02, Name: "restore_startup_parameters"},
		{ID: 0x03, Name: "reset_startup_parameters"},
	},
	ClientCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "restart_device_response"},
		{ID: 0x01, Name: "save_startup_params_response"},
		{ID: 0x02, Name: "restore_startup_params_response"},
		{ID: 0x03, Name: "reset_startup_params_response"},
	},
}

var Partition = zcl.ClusterDef{
	ID:   0x0016,
	Name: "partition",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "maximum_incoming_transfer_size", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0001, Name: "maximum_outgoing_transfer_size", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0002, Name: "partitioned_frame_size", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessWrite},
	},
}
