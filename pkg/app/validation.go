package app

import (
	"fmt"
	"slices"

	"avaneesh/dnp3-sim/pkg/types"
)

// ErrUnknownPointType is returned for values outside the closed point type set
var ErrUnknownPointType = fmt.Errorf("unknown point type")

// variationTable lists the group and the variations an outstation may
// report for one point type, plus the variation used when nothing is chosen.
type variationTable struct {
	group      uint8
	variations []uint8
	preferred  uint8
}

var staticTables = map[types.PointType]variationTable{
	types.PointTypeBinaryInput:          {GroupBinaryInput, []uint8{1, 2}, BinaryInputWithFlags},
	types.PointTypeDoubleBitBinaryInput: {GroupDoubleBitBinaryInput, []uint8{2}, 2},
	types.PointTypeAnalogInput:          {GroupAnalogInput, []uint8{1, 2, 3, 4, 5, 6}, AnalogInput32Bit},
	types.PointTypeCounter:              {GroupCounter, []uint8{1, 2, 5, 6}, Counter32BitWithFlag},
	types.PointTypeFrozenCounter:        {GroupFrozenCounter, []uint8{1, 2, 5, 6, 9, 10}, 1},
	types.PointTypeBinaryOutputStatus:   {GroupBinaryOutput, []uint8{2}, 2},
	types.PointTypeAnalogOutputStatus:   {GroupAnalogOutputStatus, []uint8{1, 2, 3, 4}, 1},
}

var eventTables = map[types.PointType]variationTable{
	types.PointTypeBinaryInput:          {GroupBinaryInputEvent, []uint8{1, 2, 3}, BinaryInputEventWithoutTime},
	types.PointTypeDoubleBitBinaryInput: {GroupDoubleBitBinaryEvent, []uint8{1, 2, 3}, 1},
	types.PointTypeAnalogInput:          {GroupAnalogInputEvent, []uint8{1, 2, 3, 4, 5, 6, 7, 8}, AnalogInputEvent32BitNoTime},
	types.PointTypeCounter:              {GroupCounterEvent, []uint8{1, 2, 5, 6}, 1},
	types.PointTypeFrozenCounter:        {GroupFrozenCounterEvent, []uint8{1, 2, 5, 6}, 1},
	types.PointTypeBinaryOutputStatus:   {GroupBinaryOutputEvent, []uint8{1, 2}, 1},
	types.PointTypeAnalogOutputStatus:   {GroupAnalogOutputEvent, []uint8{1, 2, 3, 4, 5, 6, 7, 8}, 1},
}

// StaticGroup returns the object group used for static reads of pt
func StaticGroup(pt types.PointType) (uint8, error) {
	t, ok := staticTables[pt]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownPointType, pt)
	}
	return t.group, nil
}

// EventGroup returns the object group used for events of pt
func EventGroup(pt types.PointType) (uint8, error) {
	t, ok := eventTables[pt]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownPointType, pt)
	}
	return t.group, nil
}

// StaticVariations returns the legal static variations for pt. The slice is a copy.
func StaticVariations(pt types.PointType) []uint8 {
	return slices.Clone(staticTables[pt].variations)
}

// EventVariations returns the legal event variations for pt. The slice is a copy.
func EventVariations(pt types.PointType) []uint8 {
	return slices.Clone(eventTables[pt].variations)
}

// IsValidStaticVariation checks if variation may be used for static reads of pt
func IsValidStaticVariation(pt types.PointType, variation uint8) bool {
	return slices.Contains(staticTables[pt].variations, variation)
}

// IsValidEventVariation checks if variation may be used for events of pt
func IsValidEventVariation(pt types.PointType, variation uint8) bool {
	return slices.Contains(eventTables[pt].variations, variation)
}

// DefaultStaticVariation returns the stack-wide static variation for pt
func DefaultStaticVariation(pt types.PointType) uint8 {
	return staticTables[pt].preferred
}

// DefaultEventVariation returns the stack-wide event variation for pt
func DefaultEventVariation(pt types.PointType) uint8 {
	return eventTables[pt].preferred
}
