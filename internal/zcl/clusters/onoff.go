package clusters

import "zigbee-channels/internal/zcl"

var OnOff = zcl.ClusterDef{
	ID:   0x0006,
	Name: "on_off",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "on_off", Type: zcl.TypeBool, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x4000, Name: "global_scene_control", Type: zcl.TypeBool, Access: zcl.AccessRead},
		{ID: 0x4001, Name: "on_time", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x4002, Name: "off_wait_time", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x4003, Name: "start_up_on_off", Type: zcl.TypeEnum8, Access: zcl.AccessRead | zcl.AccessWrite},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "off"},
		{ID: 0x01, Name: "on"},
		{ID: 0x02, Name: "toggle"},
		{ID: 0x40, Name: "off_with_effect"},
		{ID: 0x41, Name: "on_with_recall_global_scene"},
		{ID: 0x42, Name: "on_with_timed_off"},
	},
}

var LevelControl = zcl.ClusterDef{
	ID:   0x0008,
	Name: "level",
	Attributes: []zcl.AttributeDef{
		{ID: 0x0000, Name: "current_level", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessReport},
		{ID: 0x0001, Name: "remaining_time", Type: zcl.TypeUint16, Access: zcl.AccessRead},
		{ID: 0x000F, Name: "options", Type: zcl.TypeBitmap8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0010, Name: "on_off_transition_time", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0011, Name: "on_level", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0012, Name: "on_transition_time", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0013, Name: "off_transition_time", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x0014, Name: "default_move_rate", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessWrite},
		{ID: 0x4000, Name: "start_up_current_level", Type: zcl.TypeUint8, Access: zcl.AccessRead | zcl.AccessWrite},
	},
	ServerCommands: []zcl.CommandDef{
		{ID: 0x00, Name: "move_to_level"},
		{ID: 0x01, Name: "move"},
		{ID: 0x02, Name: "step"},
		{ID: 0x03, Name: "stop"},
		{ID: 0x04, Name: "move_to_level_with_on_off"},
		{ID: 0x05, Name: "move_with_on_off"},
		{ID: 0x06, Name: "step_with_on_off"},
		{ID: 0x07, Name: "stop_with_on_off"},
	},
}
