package channel

import (
	"strings"

	"zigbee-channels/internal/zcl"
)

// Ota watches firmware queries coming from the device. A query_next_image
// command carries the running firmware version; it is re-emitted on the
// device-scoped update signal, since firmware concerns the device as a
// whole rather than one endpoint's cluster.
type Ota struct {
	*base
}

var _ Channel = (*Ota)(nil)

// NewOta builds the OTA channel.
func NewOta(cluster Cluster, pool Pool) Channel {
	return &Ota{base: newBase(cluster, pool)}
}

func (c *Ota) HandleCommand(tsn uint8, cmd zcl.CommandID, args []any) {
	name := parseAndLogCommand(c.base, tsn, cmd, args)
	if name != "query_next_image" {
		return
	}
	// Field order: field control, manufacturer code, image type, version.
	version, ok := argAt(args, 3)
	if !ok {
		c.log.Warn("query_next_image with short argument list", "args", args)
		return
	}
	deviceID, _, _ := strings.Cut(c.pool.UniqueID(), "-")
	c.pool.SendSignal(deviceID+"_"+SignalUpdateDevice, version)
}
