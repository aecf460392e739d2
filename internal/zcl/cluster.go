package zcl

import "fmt"

// ClusterID identifies a ZCL cluster.
type ClusterID uint16

func (c ClusterID) String() string { return fmt.Sprintf("0x%04x", uint16(c)) }

// AttributeID identifies an attribute within a cluster.
type AttributeID uint16

func (a AttributeID) String() string { return fmt.Sprintf("0x%04x", uint16(a)) }

// CommandID identifies a cluster-specific command.
type CommandID uint8

func (c CommandID) String() string { return fmt.Sprintf("0x%02x", uint8(c)) }

// Attribute access flags.
const (
	AccessRead   uint8 = 0x01
	AccessWrite  uint8 = 0x02
	AccessReport uint8 = 0x04
)

// AttributeDef describes one attribute of a cluster.
type AttributeDef struct {
	ID     AttributeID `json:"id"`
	Name   string      `json:"name"`
	Type   uint8       `json:"type"`
	Access uint8       `json:"access"`
}

func (a *AttributeDef) Readable() bool   { return a.Access&AccessRead != 0 }
func (a *AttributeDef) Writable() bool   { return a.Access&AccessWrite != 0 }
func (a *AttributeDef) Reportable() bool { return a.Access&AccessReport != 0 }

// CommandDef describes one cluster-specific command. Whether it is a server
// or a client command follows from which ClusterDef list it appears in.
type CommandDef struct {
	ID   CommandID `json:"id"`
	Name string    `json:"name"`
}

// ClusterDef is the static vocabulary of a cluster: its attributes, the
// commands its server side receives, and the commands its client side
// receives (i.e. those the server side generates).
type ClusterDef struct {
	ID             ClusterID      `json:"id"`
	Name           string         `json:"name"`
	Attributes     []AttributeDef `json:"attributes,omitempty"`
	ServerCommands []CommandDef   `json:"server_commands,omitempty"`
	ClientCommands []CommandDef   `json:"client_commands,omitempty"`
}

// Attribute looks up an attribute by id. Returns nil when unknown.
func (c *ClusterDef) Attribute(id AttributeID) *AttributeDef {
	for i := range c.Attributes {
		if c.Attributes[i].ID == id {
			return &c.Attributes[i]
		}
	}
	return nil
}

// AttributeByName looks up an attribute by its name. Returns nil when unknown.
func (c *ClusterDef) AttributeByName(name string) *AttributeDef {
	for i := range c.Attributes {
		if c.Attributes[i].Name == name {
			return &c.Attributes[i]
		}
	}
	return nil
}

// ServerCommand looks up a server-side command by id. Returns nil when unknown.
func (c *ClusterDef) ServerCommand(id CommandID) *CommandDef {
	return findCommand(c.ServerCommands, id)
}

// ClientCommand looks up a client-side command by id. Returns nil when unknown.
func (c *ClusterDef) ClientCommand(id CommandID) *CommandDef {
	return findCommand(c.ClientCommands, id)
}

func findCommand(cmds []CommandDef, id CommandID) *CommandDef {
	for i := range cmds {
		if cmds[i].ID == id {
			return &cmds[i]
		}
	}
	return nil
}

// AttributeName returns the attribute's name, or its hex id when the
// definition does not know it.
func (c *ClusterDef) AttributeName(id AttributeID) string {
	if c != nil {
		if a := c.Attribute(id); a != nil {
			return a.Name
		}
	}
	return id.String()
}

// ServerCommandName returns the server command's name, or its hex id when the
// definition does not know it.
func (c *ClusterDef) ServerCommandName(id CommandID) string {
	if c != nil {
		if cmd := c.ServerCommand(id); cmd != nil {
			return cmd.Name
		}
	}
	return id.String()
}

// ClientCommandName returns the client command's name, or its hex id when the
// definition does not know it.
func (c *ClusterDef) ClientCommandName(id CommandID) string {
	if c != nil {
		if cmd := c.ClientCommand(id); cmd != nil {
			return cmd.Name
		}
	}
	return id.String()
}
