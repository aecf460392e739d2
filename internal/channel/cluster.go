package channel

import (
	"context"

	"zigbee-channels/internal/zcl"
)

// AttributeRecord is one attribute's outcome within a read response.
type AttributeRecord struct {
	ID     zcl.AttributeID
	Status zcl.Status
	Value  any
}

// ReportingConfig describes one attribute reporting subscription: report at
// most every Min seconds on change, at least every Max seconds, and only
// when the value moved by Change or more.
type ReportingConfig struct {
	Attribute zcl.AttributeID
	DataType  uint8
	Min       uint16
	Max       uint16
	Change    uint32
}

// CommandRequest is a cluster-specific command sent to the device.
type CommandRequest struct {
	ID      zcl.CommandID
	Payload []byte
	TSN     uint8
}

// Cluster is the transport-side handle a channel drives: one cluster on one
// device endpoint. Implementations live in the transport layer; channels
// hold a non-owning reference. Network failures surface as errors carrying
// the transport sentinel kinds.
type Cluster interface {
	ID() zcl.ClusterID
	Name() string
	// Def returns the cluster's static vocabulary, or nil for clusters the
	// catalog does not know.
	Def() *zcl.ClusterDef
	Endpoint() uint8
	// IsClient reports whether the device exposes this cluster on its
	// client side (an output cluster).
	IsClient() bool

	ReadAttributes(ctx context.Context, ids []zcl.AttributeID) (map[zcl.AttributeID]AttributeRecord, error)
	WriteAttributes(ctx context.Context, values map[zcl.AttributeID]any) error
	ConfigureReporting(ctx context.Context, configs []ReportingConfig) error
	Bind(ctx context.Context) error
	Command(ctx context.Context, req CommandRequest) error
}
