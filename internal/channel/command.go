package channel

import (
	"math"

	"zigbee-channels/internal/zcl"
)

// parseAndLogCommand resolves a received command id against the cluster's
// server command table and logs the frame. Unknown ids come back as their
// hex form; parsing never fails.
func parseAndLogCommand(b *base, tsn uint8, cmd zcl.CommandID, args []any) string {
	name := b.cluster.Def().ServerCommandName(cmd)
	b.log.Debug("received command", "tsn", tsn, "command", name, "args", args)
	return name
}

// argAt returns the i'th command argument when present.
func argAt(args []any, i int) (any, bool) {
	if i < 0 || i >= len(args) {
		return nil, false
	}
	return args[i], true
}

// argInt returns the i'th command argument as an int. Decoded payloads carry
// a mix of Go integer widths depending on the wire type, so any numeric form
// is accepted.
func argInt(args []any, i int) (int, bool) {
	v, ok := argAt(args, i)
	if !ok {
		return 0, false
	}
	return toInt(v)
}

func toInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int8:
		return int(x), true
	case int16:
		return int(x), true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case uint8:
		return int(x), true
	case uint16:
		return int(x), true
	case uint32:
		return int(x), true
	case uint64:
		if x > math.MaxInt {
			return 0, false
		}
		return int(x), true
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
		return int(x), true
	}
	return 0, false
}
