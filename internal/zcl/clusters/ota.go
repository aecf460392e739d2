package clusters

import "zigbee-channels/internal/zcl"

var Ota = zcl.ClusterDef{
	ID:   0x0019,
	Name: "ota",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "upgrade_server_id", Type: zcl.TypeEUI64, Access: zcl.AccessRead},
		{ID: 0x0001, Name: "file_offset", Type: zcl.TypeUint32, Access: zcl.AccessRead},
		{ID: 0x0002, Name: "current_file_version", Type: zcl.TypeUint32, Access: zcl.AccessRead},
		{ID: 0x0003, Name: "current_zigbee_stack_version", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0004, Name: "downloaded_file_version", Type: zcl.TypeUint32, Access: zcl.AccessRead},
		{ID: 0x0005, Name: "downloaded_zigbee_stack_version", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0006, Name: "image_upgrade_status", Type: zcl.TypeEnum8, Access: zcl.AccessRead},
		{ID: 0x0007, Name: "manufacturer_id", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0008, Name: "image_type_id", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x0009, Name: "minimum_block_request_period", Type: zcl.TypeUint16, Access: zcl.AccessRead},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x01, Name: "query_next_image"},
		{ID: 0x03, Name: "image_block"},
		{ID: 0x04, Name: "image_page"},
		{ID: 0x06, Name: "upgrade_end"},
		{ID: 0x08, Name: "query_specific_file"},
	},
	ClientCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "image_notify"},
		{ID: 0x02, Name: "query_next_image_response"},
		{ID: 0x05, Name: "image_block_response"},
		{ID: 0x07, Name: "upgrade_end_response"},
		{ID: 0x09, Name: "query_specific_file_response"},
	},
}

var PowerProfile = zcl.ClusterDef{
	ID:   0x001A,
	Name: "power_profile",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "total_profile_num", Type: zcl.TypeUint8, Access: zcl.AccessRead},
		{ID: 0x0001, Name: "multiple_scheduling", Type: zcl.TypeBool, Access: zcl.AccessRead},
		{ID: 0x0002, Name: "energy_formatting", Type: zcl.TypeBitmap8, Access: zcl.AccessRead},
		{ID: 0x0003, Name: "energy_remote", Type: zcl.TypeBool, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0004, Name: "schedule_mode", Type: zcl.TypeBitmap8, Access: zcl.AccessRead | zcl.AccessWrite | zcl.AccessReport},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "power_profile_request"},
		{ID: 0x01, Name: "power_profile_state_request"},
		{ID: 0x02, Name: "get_power_profile_price_response"},
		{ID: 0x03, Name: "get_overall_schedule_price_response"},
	},
	ClientCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "power_profile_notification"},
		{ID: 0x01, Name: "power_profile_response"},
		{ID: 0x02, Name: "power_profile_state_response"},
	},
}

var ApplianceControl = zcl.ClusterDef{
	ID:   0x001B,
	Name: "appliance_control",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "start_time", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0001, Name: "finish_time", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0002, Name: "remaining_time", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessReport},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "execution_of_command"},
		{ID: 0x01, Name: "signal_state"},
	},
	ClientCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "signal_state_response"},
		{ID: 0x01, Name: "signal_state_notification"},
	},
}
