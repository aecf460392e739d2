package store

import (
	"errors"

	"zigbee-channels/internal/zcl"
)

// ErrNotFound is returned when a requested entity does not exist in the store.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface.
//
// Attribute snapshots hold the last cached values of one cluster on one
// device endpoint, keyed by the (ieee, endpoint, cluster) triple. They let
// channels come back after a restart without waking sleepy devices. Values
// round-trip through JSON, so integers load as float64 until the caller
// coerces them against the cluster definition.
type Store interface {
	// Device operations
	SaveDevice(dev *Device) error
	GetDevice(ieee string) (*Device, error)
	DeleteDevice(ieee string) error
	ListDevices() ([]*Device, error)

	// Attribute snapshots
	SaveAttribute(ieee string, ep uint8, cluster zcl.ClusterID, attr zcl.AttributeID, value any) error
	GetAttributes(ieee string, ep uint8, cluster zcl.ClusterID) (map[zcl.AttributeID]any, error)
	// DeleteAttributes removes every snapshot recorded for a device.
	DeleteAttributes(ieee string) error

	// Close the store
	Close() error
}
