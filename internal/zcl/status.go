package zcl

import "fmt"

// Status is a ZCL status code as carried in read/write/report responses.
type Status uint8

const (
	StatusSuccess              Status = 0x00
	StatusFailure              Status = 0x01
	StatusNotAuthorized        Status = 0x7E
	StatusMalformedCommand     Status = 0x80
	StatusUnsupCommand         Status = 0x81
	StatusUnsupportedAttribute Status = 0x86
	StatusInvalidValue         Status = 0x87
	StatusReadOnly             Status = 0x88
	StatusInsufficientSpace    Status = 0x89
	StatusNotFound             Status = 0x8B
	StatusUnreportable         Status = 0x8C
	StatusInvalidDataType      Status = 0x8D
	StatusTimeout              Status = 0x94
	StatusAbort                Status = 0x95
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	case StatusNotAuthorized:
		return "NOT_AUTHORIZED"
	case StatusMalformedCommand:
		return "MALFORMED_COMMAND"
	case StatusUnsupCommand:
		return "UNSUP_COMMAND"
	case StatusUnsupportedAttribute:
		return "UNSUPPORTED_ATTRIBUTE"
	case StatusInvalidValue:
		return "INVALID_VALUE"
	case StatusReadOnly:
		return "READ_ONLY"
	case StatusInsufficientSpace:
		return "INSUFFICIENT_SPACE"
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusUnreportable:
		return "UNREPORTABLE_ATTRIBUTE"
	case StatusInvalidDataType:
		return "INVALID_DATA_TYPE"
	case StatusTimeout:
		return "TIMEOUT"
	case StatusAbort:
		return "ABORT"
	default:
		return fmt.Sprintf("0x%02x", uint8(s))
	}
}
