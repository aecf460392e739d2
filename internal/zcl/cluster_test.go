package zcl

import "testing"

func testDef() *ClusterDef {
	return &ClusterDef{
		ID:   0x0006,
		Name: "on_off",
		Attributes: []AttributeDef{
			{ID: 0x0000, Name: "on_off", Type: TypeBool, Access: AccessRead | AccessReport},
			{ID: 0x4001, Name: "on_time", Type: TypeUint16, Access: AccessRead | AccessWrite},
		},
		ServerCommands: []CommandDef{
			{ID: 0x00, Name: "off"},
			{ID: 0x01, Name: "on"},
			{ID: 0x02, Name: "toggle"},
		},
		ClientCommands: []CommandDef{},
	}
}

func TestClusterLookups(t *testing.T) {
	def := testDef()

	if a := def.Attribute(0x0000); a == nil || a.Name != "on_off" {
		t.Errorf("Attribute(0x0000) = %v", a)
	}
	if a := def.Attribute(0xFFFF); a != nil {
		t.Errorf("Attribute(0xFFFF) = %v, want nil", a)
	}
	if a := def.AttributeByName("on_time"); a == nil || a.ID != 0x4001 {
		t.Errorf("AttributeByName(on_time) = %v", a)
	}
	if a := def.AttributeByName("nope"); a != nil {
		t.Errorf("AttributeByName(nope) = %v, want nil", a)
	}
	if c := def.ServerCommand(0x02); c == nil || c.Name != "toggle" {
		t.Errorf("ServerCommand(0x02) = %v", c)
	}
	if c := def.ClientCommand(0x00); c != nil {
		t.Errorf("ClientCommand(0x00) = %v, want nil", c)
	}
}

func TestNameFallbacks(t *testing.T) {
	def := testDef()

	if got := def.AttributeName(0x0000); got != "on_off" {
		t.Errorf("AttributeName = %q", got)
	}
	if got := def.AttributeName(0xBEEF); got != "0xbeef" {
		t.Errorf("AttributeName fallback = %q, want 0xbeef", got)
	}
	if got := def.ServerCommandName(0x01); got != "on" {
		t.Errorf("ServerCommandName = %q", got)
	}
	if got := def.ServerCommandName(0x77); got != "0x77" {
		t.Errorf("ServerCommandName fallback = %q, want 0x77", got)
	}
	if got := def.ClientCommandName(0x00); got != "0x00" {
		t.Errorf("ClientCommandName fallback = %q, want 0x00", got)
	}

	// A nil def degrades to hex ids as well.
	var nildef *ClusterDef
	if got := nildef.AttributeName(0x0021); got != "0x0021" {
		t.Errorf("nil def AttributeName = %q", got)
	}
	if got := nildef.ServerCommandName(0x42); got != "0x42" {
		t.Errorf("nil def ServerCommandName = %q", got)
	}
}

func TestAccessPredicates(t *testing.T) {
	a := AttributeDef{Access: AccessRead | AccessReport}
	if !a.Readable() || a.Writable() || !a.Reportable() {
		t.Errorf("access predicates wrong for %08b", a.Access)
	}
}

func TestIDStrings(t *testing.T) {
	if got := ClusterID(0x0006).String(); got != "0x0006" {
		t.Errorf("ClusterID.String() = %q", got)
	}
	if got := AttributeID(0x21).String(); got != "0x0021" {
		t.Errorf("AttributeID.String() = %q", got)
	}
	if got := CommandID(0x42).String(); got != "0x42" {
		t.Errorf("CommandID.String() = %q", got)
	}
}
