package zcl

import (
	"fmt"
	"math"
)

// ZCL data type ids, grouped by class.
const (
	TypeNoData uint8 = 0x00

	TypeBitmap8  uint8 = 0x18
	TypeBitmap16 uint8 = 0x19
	TypeBitmap24 uint8 = 0x1A
	TypeBitmap32 uint8 = 0x1B

	TypeBool uint8 = 0x10

	TypeUint8  uint8 = 0x20
	TypeUint16 uint8 = 0x21
	TypeUint24 uint8 = 0x22
	TypeUint32 uint8 = 0x23
	TypeUint40 uint8 = 0x24
	TypeUint48 uint8 = 0x25

	TypeInt8  uint8 = 0x28
	TypeInt16 uint8 = 0x29
	TypeInt24 uint8 = 0x2A
	TypeInt32 uint8 = 0x2B

	TypeEnum8  uint8 = 0x30
	TypeEnum16 uint8 = 0x31

	TypeFloat16 uint8 = 0x38
	TypeFloat32 uint8 = 0x39
	TypeFloat64 uint8 = 0x3A

	TypeOctetStr   uint8 = 0x41
	TypeCharStr    uint8 = 0x42
	TypeOctetStr16 uint8 = 0x43
	TypeCharStr16  uint8 = 0x44

	TypeArray  uint8 = 0x48
	TypeStruct uint8 = 0x4C

	TypeToD       uint8 = 0xE0
	TypeDate      uint8 = 0xE1
	TypeUTC       uint8 = 0xE2
	TypeClusterID uint8 = 0xE8
	TypeAttrID    uint8 = 0xE9
	TypeEUI64     uint8 = 0xF0
)

// TypeSize returns the wire size of a fixed-width type in bytes, 0 for
// no-data, or -1 for variable-length and unknown types.
func TypeSize(t uint8) int {
	switch t {
	case TypeNoData:
		return 0
	case TypeBool, TypeUint8, TypeInt8, TypeEnum8, TypeBitmap8:
		return 1
	case TypeUint16, TypeInt16, TypeEnum16, TypeBitmap16, TypeFloat16, TypeClusterID, TypeAttrID:
		return 2
	case TypeUint24, TypeInt24, TypeBitmap24:
		return 3
	case TypeUint32, TypeInt32, TypeBitmap32, TypeFloat32, TypeToD, TypeDate, TypeUTC:
		return 4
	case TypeUint40:
		return 5
	case TypeUint48:
		return 6
	case TypeFloat64, TypeEUI64:
		return 8
	default:
		return -1
	}
}

// Analog reports whether a data type is analog in the ZCL sense. Reporting
// configurations carry a reportable-change field for analog attributes only.
func Analog(t uint8) bool {
	switch {
	case t >= TypeUint8 && t <= TypeUint48:
		return true
	case t >= TypeInt8 && t <= TypeInt32:
		return true
	case t == TypeFloat16, t == TypeFloat32, t == TypeFloat64:
		return true
	case t == TypeToD, t == TypeDate, t == TypeUTC:
		return true
	}
	return false
}

// TypeName returns a short human-readable name for a data type id.
func TypeName(t uint8) string {
	switch t {
	case TypeNoData:
		return "nodata"
	case TypeBool:
		return "bool"
	case TypeUint8:
		return "uint8"
	case TypeUint16:
		return "uint16"
	case TypeUint24:
		return "uint24"
	case TypeUint32:
		return "uint32"
	case TypeUint40:
		return "uint40"
	case TypeUint48:
		return "uint48"
	case TypeInt8:
		return "int8"
	case TypeInt16:
		return "int16"
	case TypeInt24:
		return "int24"
	case TypeInt32:
		return "int32"
	case TypeEnum8:
		return "enum8"
	case TypeEnum16:
		return "enum16"
	case TypeBitmap8:
		return "map8"
	case TypeBitmap16:
		return "map16"
	case TypeBitmap24:
		return "map24"
	case TypeBitmap32:
		return "map32"
	case TypeFloat16:
		return "semi"
	case TypeFloat32:
		return "single"
	case TypeFloat64:
		return "double"
	case TypeOctetStr:
		return "octstr"
	case TypeCharStr:
		return "string"
	case TypeOctetStr16:
		return "octstr16"
	case TypeCharStr16:
		return "string16"
	case TypeArray:
		return "array"
	case TypeStruct:
		return "struct"
	case TypeToD:
		return "ToD"
	case TypeDate:
		return "date"
	case TypeUTC:
		return "UTC"
	case TypeClusterID:
		return "clusterId"
	case TypeAttrID:
		return "attrId"
	case TypeEUI64:
		return "EUI64"
	default:
		return fmt.Sprintf("0x%02x", t)
	}
}

// readUintLE reads an n-byte little-endian unsigned integer.
func readUintLE(b []byte, n int) uint64 {
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// appendUintLE appends an n-byte little-endian unsigned integer.
func appendUintLE(dst []byte, v uint64, n int) []byte {
	for i := 0; i < n; i++ {
		dst = append(dst, byte(v))
		v >>= 8
	}
	return dst
}

// Decode decodes one typed value from wire bytes. It returns the value, the
// number of bytes consumed, and an error for truncated input or a type the
// codec does not handle. Fixed-width integers come back as the narrowest Go
// type that fits; booleans as bool; character strings as string.
func Decode(t uint8, data []byte) (any, int, error) {
	switch t {
	case TypeOctetStr, TypeCharStr, TypeOctetStr16, TypeCharStr16:
		return decodeString(t, data)
	case TypeArray, TypeStruct:
		return nil, 0, fmt.Errorf("zcl: decode of composite type %s not supported", TypeName(t))
	}

	size := TypeSize(t)
	if size < 0 {
		return nil, 0, fmt.Errorf("zcl: decode of unknown type 0x%02x", t)
	}
	if size == 0 {
		return nil, 0, nil
	}
	if len(data) < size {
		return nil, 0, fmt.Errorf("zcl: truncated value for %s: need %d bytes, have %d", TypeName(t), size, len(data))
	}

	raw := readUintLE(data, size)
	switch t {
	case TypeBool:
		return raw != 0, size, nil
	case TypeUint8, TypeEnum8, TypeBitmap8:
		return uint8(raw), size, nil
	case TypeUint16, TypeEnum16, TypeBitmap16, TypeFloat16, TypeClusterID, TypeAttrID:
		return uint16(raw), size, nil
	case TypeUint24, TypeBitmap24, TypeUint32, TypeBitmap32, TypeToD, TypeDate, TypeUTC:
		return uint32(raw), size, nil
	case TypeUint40, TypeUint48:
		return raw, size, nil
	case TypeInt8:
		return int8(raw), size, nil
	case TypeInt16:
		return int16(raw), size, nil
	case TypeInt24:
		if raw&0x800000 != 0 {
			raw |= 0xFF000000
		}
		return int32(uint32(raw)), size, nil
	case TypeInt32:
		return int32(raw), size, nil
	case TypeFloat32:
		return math.Float32frombits(uint32(raw)), size, nil
	case TypeFloat64:
		return math.Float64frombits(raw), size, nil
	case TypeEUI64:
		var addr [8]byte
		copy(addr[:], data[:8])
		return addr, size, nil
	}
	// Remaining fixed-width types pass through as raw bytes.
	out := make([]byte, size)
	copy(out, data[:size])
	return out, size, nil
}

func decodeString(t uint8, data []byte) (any, int, error) {
	prefix := 1
	if t == TypeOctetStr16 || t == TypeCharStr16 {
		prefix = 2
	}
	if len(data) < prefix {
		return nil, 0, fmt.Errorf("zcl: missing length prefix for %s", TypeName(t))
	}
	n := int(readUintLE(data, prefix))
	invalid := 0xFF
	if prefix == 2 {
		invalid = 0xFFFF
	}
	if n == invalid {
		// Invalid-string marker: value is unknown.
		return nil, prefix, nil
	}
	if len(data) < prefix+n {
		return nil, 0, fmt.Errorf("zcl: truncated %s: need %d bytes, have %d", TypeName(t), n, len(data)-prefix)
	}
	body := data[prefix : prefix+n]
	if t == TypeCharStr || t == TypeCharStr16 {
		return string(body), prefix + n, nil
	}
	out := make([]byte, n)
	copy(out, body)
	return out, prefix + n, nil
}

// Encode encodes a value into wire bytes for the given data type. Numeric
// inputs are accepted in any Go integer or float width and range-checked
// against the wire type.
func Encode(t uint8, val any) ([]byte, error) {
	switch t {
	case TypeNoData:
		return nil, nil

	case TypeBool:
		b, ok := asBool(val)
		if !ok {
			return nil, convErr(val, t)
		}
		if b {
			return []byte{1}, nil
		}
		return []byte{0}, nil

	case TypeUint8, TypeEnum8, TypeBitmap8,
		TypeUint16, TypeEnum16, TypeBitmap16, TypeFloat16, TypeClusterID, TypeAttrID,
		TypeUint24, TypeBitmap24,
		TypeUint32, TypeBitmap32, TypeToD, TypeDate, TypeUTC,
		TypeUint40, TypeUint48:
		u, ok := asUint(val)
		if !ok {
			return nil, convErr(val, t)
		}
		size := TypeSize(t)
		if max := maxUintFor(size); u > max {
			return nil, fmt.Errorf("zcl: value %d out of range for %s", u, TypeName(t))
		}
		return appendUintLE(nil, u, size), nil

	case TypeInt8, TypeInt16, TypeInt24, TypeInt32:
		i, ok := asInt(val)
		if !ok {
			return nil, convErr(val, t)
		}
		size := TypeSize(t)
		bound := int64(1) << (size*8 - 1)
		if i < -bound || i >= bound {
			return nil, fmt.Errorf("zcl: value %d out of range for %s", i, TypeName(t))
		}
		return appendUintLE(nil, uint64(i), size), nil

	case TypeFloat32:
		f, ok := asFloat(val)
		if !ok {
			return nil, convErr(val, t)
		}
		return appendUintLE(nil, uint64(math.Float32bits(float32(f))), 4), nil

	case TypeFloat64:
		f, ok := asFloat(val)
		if !ok {
			return nil, convErr(val, t)
		}
		return appendUintLE(nil, math.Float64bits(f), 8), nil

	case TypeEUI64:
		switch a := val.(type) {
		case [8]byte:
			out := make([]byte, 8)
			copy(out, a[:])
			return out, nil
		case []byte:
			if len(a) != 8 {
				return nil, fmt.Errorf("zcl: EUI64 needs 8 bytes, got %d", len(a))
			}
			out := make([]byte, 8)
			copy(out, a)
			return out, nil
		}
		return nil, convErr(val, t)

	case TypeCharStr, TypeCharStr16:
		s, ok := val.(string)
		if !ok {
			return nil, convErr(val, t)
		}
		return encodeString(t, []byte(s))

	case TypeOctetStr, TypeOctetStr16:
		b, ok := val.([]byte)
		if !ok {
			return nil, convErr(val, t)
		}
		return encodeString(t, b)
	}

	return nil, fmt.Errorf("zcl: encode of type %s not supported", TypeName(t))
}

func encodeString(t uint8, body []byte) ([]byte, error) {
	prefix, limit := 1, 254
	if t == TypeOctetStr16 || t == TypeCharStr16 {
		prefix, limit = 2, 65534
	}
	if len(body) > limit {
		return nil, fmt.Errorf("zcl: %s too long: %d bytes (max %d)", TypeName(t), len(body), limit)
	}
	out := appendUintLE(make([]byte, 0, prefix+len(body)), uint64(len(body)), prefix)
	return append(out, body...), nil
}

func convErr(val any, t uint8) error {
	return fmt.Errorf("zcl: cannot encode %T as %s", val, TypeName(t))
}

func maxUintFor(size int) uint64 {
	if size >= 8 {
		return math.MaxUint64
	}
	return 1<<(size*8) - 1
}

func asBool(v any) (bool, bool) {
	switch x := v.(type) {
	case bool:
		return x, true
	case uint8:
		return x != 0, true
	case int:
		return x != 0, true
	case float64:
		return x != 0, true
	}
	return false, false
}

func asUint(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	case uint:
		return uint64(x), true
	case int8:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int16:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int32:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int64:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case float64:
		if x < 0 || x != math.Trunc(x) {
			return 0, false
		}
		return uint64(x), true
	}
	return 0, false
}

func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case int:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x > math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case float64:
		if x != math.Trunc(x) {
			return 0, false
		}
		return int64(x), true
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}
