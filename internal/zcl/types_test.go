package zcl

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestDecodeFixedWidth(t *testing.T) {
	tests := []struct {
		name string
		typ  uint8
		data []byte
		want any
		n    int
	}{
		{"bool true", TypeBool, []byte{0x01}, true, 1},
		{"bool false", TypeBool, []byte{0x00}, false, 1},
		{"uint8", TypeUint8, []byte{0x42}, uint8(0x42), 1},
		{"uint16", TypeUint16, []byte{0x34, 0x12}, uint16(0x1234), 2},
		{"uint24", TypeUint24, []byte{0x56, 0x34, 0x12}, uint32(0x123456), 3},
		{"uint32", TypeUint32, []byte{0x78, 0x56, 0x34, 0x12}, uint32(0x12345678), 4},
		{"uint40", TypeUint40, []byte{0x01, 0x02, 0x03, 0x04, 0x05}, uint64(0x0504030201), 5},
		{"uint48", TypeUint48, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}, uint64(0x060504030201), 6},
		{"int8 min", TypeInt8, []byte{0x80}, int8(-128), 1},
		{"int16 negative", TypeInt16, []byte{0x9C, 0xFF}, int16(-100), 2},
		{"int24 minus one", TypeInt24, []byte{0xFF, 0xFF, 0xFF}, int32(-1), 3},
		{"int24 positive", TypeInt24, []byte{0x64, 0x00, 0x00}, int32(100), 3},
		{"int32", TypeInt32, []byte{0x60, 0x79, 0xFE, 0xFF}, int32(-100000), 4},
		{"enum8", TypeEnum8, []byte{0x03}, uint8(3), 1},
		{"enum16", TypeEnum16, []byte{0x01, 0x00}, uint16(1), 2},
		{"map8", TypeBitmap8, []byte{0xFF}, uint8(0xFF), 1},
		{"map16", TypeBitmap16, []byte{0xFF, 0x00}, uint16(0x00FF), 2},
		{"UTC", TypeUTC, []byte{0x78, 0x56, 0x34, 0x12}, uint32(0x12345678), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, n, err := Decode(tt.typ, tt.data)
			if err != nil {
				t.Fatal(err)
			}
			if n != tt.n {
				t.Errorf("consumed %d, want %d", n, tt.n)
			}
			if got != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
			}
		})
	}
}

func TestDecodeFloats(t *testing.T) {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(3.14))
	v, n, err := Decode(TypeFloat32, buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 || v.(float32) != 3.14 {
		t.Errorf("float32: got %v, consumed %d", v, n)
	}

	buf8 := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf8, math.Float64bits(2.718281828))
	v, n, err = Decode(TypeFloat64, buf8)
	if err != nil {
		t.Fatal(err)
	}
	if n != 8 || v.(float64) != 2.718281828 {
		t.Errorf("float64: got %v, consumed %d", v, n)
	}
}

func TestDecodeEUI64(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	v, n, err := Decode(TypeEUI64, data)
	if err != nil {
		t.Fatal(err)
	}
	if n != 8 {
		t.Errorf("consumed %d, want 8", n)
	}
	addr := v.([8]byte)
	if !bytes.Equal(addr[:], data) {
		t.Errorf("got %X, want %X", addr, data)
	}
}

func TestDecodeStrings(t *testing.T) {
	v, n, err := Decode(TypeCharStr, []byte{5, 'H', 'e', 'l', 'l', 'o'})
	if err != nil {
		t.Fatal(err)
	}
	if n != 6 || v.(string) != "Hello" {
		t.Errorf("got %q, consumed %d", v, n)
	}

	v, n, err = Decode(TypeOctetStr, []byte{3, 0xAA, 0xBB, 0xCC})
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 || !bytes.Equal(v.([]byte), []byte{0xAA, 0xBB, 0xCC}) {
		t.Errorf("octstr: got %X, consumed %d", v, n)
	}

	s := "Hello World"
	data := make([]byte, 2+len(s))
	binary.LittleEndian.PutUint16(data[:2], uint16(len(s)))
	copy(data[2:], s)
	v, n, err = Decode(TypeCharStr16, data)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2+len(s) || v.(string) != s {
		t.Errorf("string16: got %q, consumed %d", v, n)
	}
}

func TestDecodeInvalidStringMarker(t *testing.T) {
	v, n, err := Decode(TypeCharStr, []byte{0xFF})
	if err != nil {
		t.Fatalf("0xFF length is the invalid marker, not an error: %v", err)
	}
	if v != nil || n != 1 {
		t.Errorf("got %v consumed %d, want nil consumed 1", v, n)
	}
}

func TestDecodeTruncated(t *testing.T) {
	if _, _, err := Decode(TypeUint32, []byte{0x01}); err == nil {
		t.Error("expected error for short uint32")
	}
	if _, _, err := Decode(TypeCharStr, []byte{5, 'H', 'i'}); err == nil {
		t.Error("expected error for truncated string body")
	}
	if _, _, err := Decode(TypeCharStr, nil); err == nil {
		t.Error("expected error for missing length prefix")
	}
}

func TestDecodeNoData(t *testing.T) {
	v, n, err := Decode(TypeNoData, []byte{0xFF})
	if err != nil {
		t.Fatal(err)
	}
	if v != nil || n != 0 {
		t.Errorf("got %v consumed %d, want nil consumed 0", v, n)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		typ  uint8
		val  any
		want []byte
	}{
		{"bool", TypeBool, true, []byte{1}},
		{"uint8", TypeUint8, uint8(0x42), []byte{0x42}},
		{"uint16 from int", TypeUint16, 0x1234, []byte{0x34, 0x12}},
		{"uint24", TypeUint24, uint64(0x123456), []byte{0x56, 0x34, 0x12}},
		{"uint32", TypeUint32, uint32(0x12345678), []byte{0x78, 0x56, 0x34, 0x12}},
		{"uint40", TypeUint40, uint64(0x0504030201), []byte{0x01, 0x02, 0x03, 0x04, 0x05}},
		{"uint48", TypeUint48, uint64(0x060504030201), []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}},
		{"int8 min", TypeInt8, -128, []byte{0x80}},
		{"int16", TypeInt16, int16(-100), []byte{0x9C, 0xFF}},
		{"int24 minus one", TypeInt24, int64(-1), []byte{0xFF, 0xFF, 0xFF}},
		{"int32", TypeInt32, int64(-100000), []byte{0x60, 0x79, 0xFE, 0xFF}},
		{"string", TypeCharStr, "Hi", []byte{2, 'H', 'i'}},
		{"octstr", TypeOctetStr, []byte{0xDE, 0xAD}, []byte{2, 0xDE, 0xAD}},
		{"string16", TypeCharStr16, "AB", []byte{0x02, 0x00, 'A', 'B'}},
		{"octstr16", TypeOctetStr16, []byte{0x01}, []byte{0x01, 0x00, 0x01}},
		{"EUI64", TypeEUI64, [8]byte{1, 2, 3, 4, 5, 6, 7, 8}, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.typ, tt.val)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("encoded % X, want % X", got, tt.want)
			}
		})
	}
}

func TestEncodeFloat32(t *testing.T) {
	want := make([]byte, 4)
	binary.LittleEndian.PutUint32(want, math.Float32bits(3.14))
	got, err := Encode(TypeFloat32, float64(3.14))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("encoded % X, want % X", got, want)
	}
}

func TestEncodeRangeChecks(t *testing.T) {
	tests := []struct {
		name string
		typ  uint8
		val  any
	}{
		{"uint8 overflow", TypeUint8, uint64(256)},
		{"uint24 overflow", TypeUint24, uint64(0x1000000)},
		{"int8 high", TypeInt8, int64(128)},
		{"int8 low", TypeInt8, int64(-129)},
		{"int24 high", TypeInt24, int64(8388608)},
		{"int24 low", TypeInt24, int64(-8388609)},
		{"negative as uint8", TypeUint8, -1},
		{"negative float as uint16", TypeUint16, float64(-1.0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Encode(tt.typ, tt.val); err == nil {
				t.Errorf("Encode(%s, %v) succeeded, want range error", TypeName(tt.typ), tt.val)
			}
		})
	}
}

func TestEncodeUnsupported(t *testing.T) {
	if _, err := Encode(TypeArray, "anything"); err == nil {
		t.Error("expected error for composite type")
	}
	if _, err := Encode(TypeBool, struct{}{}); err == nil {
		t.Error("expected conversion error")
	}
}

func TestNumericCoercion(t *testing.T) {
	if _, ok := asUint(-1); ok {
		t.Error("asUint accepted a negative int")
	}
	if _, ok := asUint(float64(0.5)); ok {
		t.Error("asUint accepted a fractional float")
	}
	if v, ok := asUint(float64(255)); !ok || v != 255 {
		t.Errorf("asUint(255.0) = %d, %v", v, ok)
	}
	if _, ok := asInt(float64(-42.9)); ok {
		t.Error("asInt accepted a fractional float")
	}
	if v, ok := asInt(float64(-42)); !ok || v != -42 {
		t.Errorf("asInt(-42.0) = %d, %v", v, ok)
	}
	if v, ok := asBool(float64(1)); !ok || !v {
		t.Error("asBool(1.0) should be true")
	}
}

func TestTypeSizeTable(t *testing.T) {
	tests := []struct {
		typ  uint8
		want int
	}{
		{TypeNoData, 0},
		{TypeBool, 1},
		{TypeUint8, 1},
		{TypeUint16, 2},
		{TypeUint24, 3},
		{TypeUint32, 4},
		{TypeUint40, 5},
		{TypeUint48, 6},
		{TypeInt8, 1},
		{TypeInt16, 2},
		{TypeInt24, 3},
		{TypeInt32, 4},
		{TypeFloat16, 2},
		{TypeFloat32, 4},
		{TypeFloat64, 8},
		{TypeEUI64, 8},
		{TypeCharStr, -1},
		{TypeOctetStr, -1},
		{TypeArray, -1},
	}
	for _, tt := range tests {
		if got := TypeSize(tt.typ); got != tt.want {
			t.Errorf("TypeSize(0x%02X) = %d, want %d", tt.typ, got, tt.want)
		}
	}
}
