// Package transport defines the boundary between the channel framework and
// the Zigbee network backend below it. The backend owns device interviews,
// frame encoding and command schemas; everything above it works with typed
// ids, wire values as (data type, bytes) pairs, and decoded command
// arguments. Backend: in-process simulator.
package transport

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"zigbee-channels/internal/zcl"
)

// Sentinel errors returned (wrapped) by transport operations. Callers match
// with errors.Is.
var (
	// ErrTimeout reports that the device did not answer.
	ErrTimeout = errors.New("request timed out")
	// ErrProtocol reports a malformed frame or payload.
	ErrProtocol = errors.New("protocol error")
	// ErrUnsupportedAttribute reports a write to an attribute the device
	// does not implement.
	ErrUnsupportedAttribute = errors.New("unsupported attribute")
)

// IEEE is a device's 64-bit hardware address, displayed MSB-first.
type IEEE [8]byte

func (a IEEE) String() string {
	parts := make([]string, len(a))
	for i, b := range a {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, ":")
}

func (a IEEE) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *IEEE) UnmarshalText(text []byte) error {
	parts := strings.Split(string(text), ":")
	if len(parts) != len(a) {
		return fmt.Errorf("transport: bad ieee %q", text)
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return fmt.Errorf("transport: bad ieee %q: %w", text, err)
		}
		a[i] = byte(v)
	}
	return nil
}

// Endpoint describes one application endpoint on a device.
type Endpoint struct {
	ID          uint8           `json:"id"`
	ProfileID   uint16          `json:"profile_id"`
	DeviceID    uint16          `json:"device_id"`
	InClusters  []zcl.ClusterID `json:"in_clusters"`
	OutClusters []zcl.ClusterID `json:"out_clusters"`
}

// Descriptor is the interviewed identity of a device: who it is, how it is
// powered, and what its endpoints expose. The backend delivers it complete
// on join.
type Descriptor struct {
	IEEE         IEEE       `json:"ieee"`
	Nwk          uint16     `json:"nwk"`
	MainsPowered bool       `json:"mains_powered"`
	Manufacturer string     `json:"manufacturer,omitempty"`
	Model        string     `json:"model,omitempty"`
	Endpoints    []Endpoint `json:"endpoints"`
}

// DeviceLeft is emitted when a device leaves the network.
type DeviceLeft struct {
	IEEE IEEE
	Nwk  uint16
}

// AttributeReport is an unsolicited attribute report from a device. Value
// holds the wire bytes for DataType.
type AttributeReport struct {
	IEEE     IEEE
	Endpoint uint8
	Cluster  zcl.ClusterID
	Attr     zcl.AttributeID
	DataType uint8
	Value    []byte
	LQI      uint8
	RSSI     int8
}

// ClusterCommand is an incoming cluster-specific command. Args are decoded
// per the command schema by the backend.
type ClusterCommand struct {
	IEEE     IEEE
	Endpoint uint8
	Cluster  zcl.ClusterID
	Command  zcl.CommandID
	TSN      uint8
	Args     []any
	LQI      uint8
	RSSI     int8
}

// ReadRequest asks a device endpoint for attribute values.
type ReadRequest struct {
	IEEE       IEEE
	Endpoint   uint8
	Cluster    zcl.ClusterID
	Attributes []zcl.AttributeID
}

// AttributeResponse holds one attribute's read outcome. Value holds the
// wire bytes for DataType and is empty unless Status is success.
type AttributeResponse struct {
	ID       zcl.AttributeID
	Status   zcl.Status
	DataType uint8
	Value    []byte
}

// WriteRecord is a single attribute write, value already encoded.
type WriteRecord struct {
	ID       zcl.AttributeID
	DataType uint8
	Value    []byte
}

// WriteRequest writes attribute values to a device endpoint.
type WriteRequest struct {
	IEEE     IEEE
	Endpoint uint8
	Cluster  zcl.ClusterID
	Records  []WriteRecord
}

// ReportingEntry configures reporting for one attribute. Change carries the
// encoded reportable-change value for analog types and is empty for
// discrete ones.
type ReportingEntry struct {
	Attribute zcl.AttributeID
	DataType  uint8
	Min       uint16
	Max       uint16
	Change    []byte
}

// ReportingRequest configures attribute reporting, all entries in one
// request.
type ReportingRequest struct {
	IEEE     IEEE
	Endpoint uint8
	Cluster  zcl.ClusterID
	Entries  []ReportingEntry
}

// BindRequest binds a device cluster to the coordinator.
type BindRequest struct {
	IEEE     IEEE
	Endpoint uint8
	Cluster  zcl.ClusterID
}

// CommandRequest sends a cluster-specific command to a device.
type CommandRequest struct {
	IEEE     IEEE
	Endpoint uint8
	Cluster  zcl.ClusterID
	Command  zcl.CommandID
	Payload  []byte
	TSN      uint8
}

// Transport is the network backend: ZCL operations toward devices plus
// callbacks for traffic originating from them. Callback registration must
// happen before Start; callbacks run on the backend's dispatch goroutine
// and must not block.
type Transport interface {
	Start(ctx context.Context) error
	Stop() error

	ReadAttributes(ctx context.Context, req ReadRequest) ([]AttributeResponse, error)
	WriteAttributes(ctx context.Context, req WriteRequest) error
	ConfigureReporting(ctx context.Context, req ReportingRequest) error
	Bind(ctx context.Context, req BindRequest) error
	SendCommand(ctx context.Context, req CommandRequest) error

	OnDeviceAdded(handler func(Descriptor))
	OnDeviceLeft(handler func(DeviceLeft))
	OnAttributeReport(handler func(AttributeReport))
	OnClusterCommand(handler func(ClusterCommand))
}
