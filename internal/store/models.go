package store

import (
	"time"

	"zigbee-channels/internal/zcl"
)

// Device is the persisted record of one paired device. It mirrors the
// transport descriptor closely enough that a restart can rebuild channel
// pools without talking to the device.
type Device struct {
	IEEE         string     `json:"ieee"`
	Nwk          uint16     `json:"nwk"`
	MainsPowered bool       `json:"mains_powered"`
	Manufacturer string     `json:"manufacturer,omitempty"`
	Model        string     `json:"model,omitempty"`
	Endpoints    []Endpoint `json:"endpoints,omitempty"`
	FirstSeen    time.Time  `json:"first_seen"`
	LastSeen     time.Time  `json:"last_seen"`
}

// Endpoint is one application endpoint with its cluster lists.
type Endpoint struct {
	ID          uint8           `json:"id"`
	ProfileID   uint16          `json:"profile_id"`
	DeviceID    uint16          `json:"device_id"`
	InClusters  []zcl.ClusterID `json:"in_clusters"`
	OutClusters []zcl.ClusterID `json:"out_clusters"`
}
