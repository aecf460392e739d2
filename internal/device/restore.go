package device

import (
	"encoding/base64"

	"zigbee-channels/internal/zcl"
)

// coerceAttributes maps snapshot values, which arrive as generic JSON types,
// back to the Go types the codec produces, using each attribute's declared
// data type. Attributes the definition does not know pass through unchanged.
func coerceAttributes(def *zcl.ClusterDef, raw map[zcl.AttributeID]any) map[zcl.AttributeID]any {
	out := make(map[zcl.AttributeID]any, len(raw))
	for id, v := range raw {
		var attr *zcl.AttributeDef
		if def != nil {
			attr = def.Attribute(id)
		}
		if attr == nil {
			out[id] = v
			continue
		}
		out[id] = coerceValue(attr.Type, v)
	}
	return out
}

// coerceValue converts one JSON-decoded value to the codec's Go type for the
// ZCL data type. A value of an unexpected shape comes back unchanged rather
// than poisoning the cache with a bad conversion.
func coerceValue(t uint8, v any) any {
	switch t {
	case zcl.TypeBool:
		if b, ok := v.(bool); ok {
			return b
		}
	case zcl.TypeUint8, zcl.TypeEnum8, zcl.TypeBitmap8:
		if f, ok := v.(float64); ok {
			return uint8(f)
		}
	case zcl.TypeUint16, zcl.TypeEnum16, zcl.TypeBitmap16, zcl.TypeFloat16, zcl.TypeClusterID, zcl.TypeAttrID:
		if f, ok := v.(float64); ok {
			return uint16(f)
		}
	case zcl.TypeUint24, zcl.TypeBitmap24, zcl.TypeUint32, zcl.TypeBitmap32, zcl.TypeToD, zcl.TypeDate, zcl.TypeUTC:
		if f, ok := v.(float64); ok {
			return uint32(f)
		}
	case zcl.TypeUint40, zcl.TypeUint48:
		if f, ok := v.(float64); ok {
			return uint64(f)
		}
	case zcl.TypeInt8:
		if f, ok := v.(float64); ok {
			return int8(f)
		}
	case zcl.TypeInt16:
		if f, ok := v.(float64); ok {
			return int16(f)
		}
	case zcl.TypeInt24, zcl.TypeInt32:
		if f, ok := v.(float64); ok {
			return int32(f)
		}
	case zcl.TypeFloat32:
		if f, ok := v.(float64); ok {
			return float32(f)
		}
	case zcl.TypeFloat64:
		if f, ok := v.(float64); ok {
			return f
		}
	case zcl.TypeCharStr, zcl.TypeCharStr16:
		if s, ok := v.(string); ok {
			return s
		}
	case zcl.TypeOctetStr, zcl.TypeOctetStr16:
		// []byte survives JSON as base64 text.
		if s, ok := v.(string); ok {
			if b, err := base64.StdEncoding.DecodeString(s); err == nil {
				return b
			}
		}
	case zcl.TypeEUI64:
		if arr, ok := v.([]any); ok && len(arr) == 8 {
			var addr [8]byte
			for i, x := range arr {
				f, ok := x.(float64)
				if !ok {
					return v
				}
				addr[i] = byte(f)
			}
			return addr
		}
	}
	return v
}
