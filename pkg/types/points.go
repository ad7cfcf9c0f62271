package types

import (
	"fmt"
	"strings"
)

// PointType identifies one of the DNP3 measurement point types an outstation
// database can hold. The set is closed.
type PointType int

const (
	PointTypeBinaryInput PointType = iota
	PointTypeDoubleBitBinaryInput
	PointTypeAnalogInput
	PointTypeCounter
	PointTypeFrozenCounter
	PointTypeBinaryOutputStatus
	PointTypeAnalogOutputStatus
)

var pointTypeNames = [...]string{
	PointTypeBinaryInput:          "binaryInput",
	PointTypeDoubleBitBinaryInput: "doubleBitBinaryInput",
	PointTypeAnalogInput:          "analogInput",
	PointTypeCounter:              "counter",
	PointTypeFrozenCounter:        "frozenCounter",
	PointTypeBinaryOutputStatus:   "binaryOutputStatus",
	PointTypeAnalogOutputStatus:   "analogOutputStatus",
}

// AllPointTypes returns every point type in declaration order
func AllPointTypes() []PointType {
	return []PointType{
		PointTypeBinaryInput,
		PointTypeDoubleBitBinaryInput,
		PointTypeAnalogInput,
		PointTypeCounter,
		PointTypeFrozenCounter,
		PointTypeBinaryOutputStatus,
		PointTypeAnalogOutputStatus,
	}
}

// IsValid reports whether p is a member of the closed set
func (p PointType) IsValid() bool {
	return p >= PointTypeBinaryInput && p <= PointTypeAnalogOutputStatus
}

// String returns the camelCase name used in field names and template files
func (p PointType) String() string {
	if !p.IsValid() {
		return fmt.Sprintf("PointType(%d)", int(p))
	}
	return pointTypeNames[p]
}

// ParsePointType accepts the camelCase name, the snake_case name, or any
// case variation of either.
func ParsePointType(s string) (PointType, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	for _, p := range AllPointTypes() {
		if strings.ToLower(pointTypeNames[p]) == key {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown point type %q", s)
}
