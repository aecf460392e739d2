package clusters

import "zigbee-channels/internal/zcl"

// Analog, binary and multistate I/O clusters (0x000C..0x0014). All of them
// center on a reportable present_value.

func analogIO(id zcl.ClusterID, name string) zcl.ClusterDef {
	return zcl.ClusterDef{
		ID:   id,
		Name: name,
		Attributes: []zcl.AttributeDef{
			{ID: 0x001C, Name: "description", Type: zcl.TypeCharStr, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x0041, Name: "max_present_value", Type: zcl.TypeFloat32, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x0045, Name: "min_present_value", Type: zcl.TypeFloat32, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x0051, Name: "out_of_service", Type: zcl.TypeBool, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x0055, Name: "present_value", Type: zcl.TypeFloat32, Access: zcl.AccessRead | zcl.AccessWrite | zcl.AccessReport},
			{ID: 0x0067, Name: "reliability", Type: zcl.TypeEnum8, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x006A, Name: "resolution", Type: zcl.TypeFloat32, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x006F, Name: "status_flags", Type: zcl.TypeBitmap8, Access: zcl.AccessRead | zcl.AccessReport},
			{ID: 0x0075, Name: "engineering_units", Type: zcl.TypeEnum16, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x0100, Name: "application_type", Type: zcl.TypeUint32, Access: zcl.AccessRead},
		},
	}
}

func binaryIO(id zcl.ClusterID, name string) zcl.ClusterDef {
	return zcl.ClusterDef{
		ID:   id,
		Name: name,
		Attributes: []zcl.AttributeDef{
			{ID: 0x0004, Name: "active_text", Type: zcl.TypeCharStr, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x001C, Name: "description", Type: zcl.TypeCharStr, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x002E, Name: "inactive_text", Type: zcl.TypeCharStr, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x0051, Name: "out_of_service", Type: zcl.TypeBool, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x0055, Name: "present_value", Type: zcl.TypeBool, Access: zcl.AccessRead | zcl.AccessWrite | zcl.AccessReport},
			{ID: 0x0067, Name: "reliability", Type: zcl.TypeEnum8, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x006F, Name: "status_flags", Type: zcl.TypeBitmap8, Access: zcl.AccessRead | zcl.AccessReport},
			{ID: 0x0100, Name: "application_type", Type: zcl.TypeUint32, Access: zcl.AccessRead},
		},
	}
}

func multistateIO(id zcl.ClusterID, name string) zcl.ClusterDef {
	return zcl.ClusterDef{
		ID:   id,
		Name: name,
		Attributes: []zcl.AttributeDef{
			{ID: 0x001C, Name: "description", Type: zcl.TypeCharStr, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x004A, Name: "number_of_states", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x0051, Name: "out_of_service", Type: zcl.TypeBool, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x0055, Name: "present_value", Type: zcl.TypeUint16, Access: zcl.AccessRead | zcl.AccessWrite | zcl.AccessReport},
			{ID: 0x0067, Name: "reliability", Type: zcl.TypeEnum8, Access: zcl.AccessRead | zcl.AccessWrite},
			{ID: 0x006F, Name: "status_flags", Type: zcl.TypeBitmap8, Access: zcl.AccessRead | zcl.AccessReport},
			{ID: 0x0100, Name: "application_type", Type: zcl.TypeUint32, Access: zcl.AccessRead},
		},
	}
}

var (
	AnalogInput      = analogIO(0x000C, "analog_input")
	AnalogOutput     = analogIO(0x000D, "analog_output")
	AnalogValue      = analogIO(0x000E, "analog_value")
	BinaryInput      = binaryIO(0x000F, "binary_input")
	BinaryOutput     = binaryIO(0x0010, "binary_output")
	BinaryValue      = binaryIO(0x0011, "binary_value")
	MultistateInput  = multistateIO(0x0012, "multistate_input")
	MultistateOutput = multistateIO(0x0013, "multistate_output")
	MultistateValue  = multistateIO(0x0014, "multistate_value")
)
