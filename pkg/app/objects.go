package app

// Object group numbers for measurement data
const (
	GroupBinaryInput          uint8 = 1
	GroupBinaryInputEvent     uint8 = 2
	GroupDoubleBitBinaryInput uint8 = 3
	GroupDoubleBitBinaryEvent uint8 = 4
	GroupBinaryOutput         uint8 = 10
	GroupBinaryOutputEvent    uint8 = 11
	GroupCounter              uint8 = 20
	GroupFrozenCounter        uint8 = 21
	GroupCounterEvent         uint8 = 22
	GroupFrozenCounterEvent   uint8 = 23
	GroupAnalogInput          uint8 = 30
	GroupAnalogInputEvent     uint8 = 32
	GroupAnalogOutputStatus   uint8 = 40
	GroupAnalogOutputEvent    uint8 = 42
)

// Binary Input variations (Group 1)
const (
	BinaryInputPacked    uint8 = 1
	BinaryInputWithFlags uint8 = 2
)

// Binary Input Event variations (Group 2)
const (
	BinaryInputEventWithoutTime      uint8 = 1
	BinaryInputEventWithTime         uint8 = 2
	BinaryInputEventWithRelativeTime uint8 = 3
)

// Counter variations (Group 20)
const (
	Counter32BitWithFlag uint8 = 1
	Counter16BitWithFlag uint8 = 2
	Counter32Bit         uint8 = 5
	Counter16Bit         uint8 = 6
)

// Analog Input variations (Group 30)
const (
	AnalogInput32Bit       uint8 = 1
	AnalogInput16Bit       uint8 = 2
	AnalogInput32BitNoFlag uint8 = 3
	AnalogInput16BitNoFlag uint8 = 4
	AnalogInputFloat       uint8 = 5
	AnalogInputDouble      uint8 = 6
)

// Analog Input Event variations (Group 32)
const (
	AnalogInputEvent32BitNoTime    uint8 = 1
	AnalogInputEvent16BitNoTime    uint8 = 2
	AnalogInputEvent32BitWithTime  uint8 = 3
	AnalogInputEvent16BitWithTime  uint8 = 4
	AnalogInputEventFloatNoTime    uint8 = 5
	AnalogInputEventDoubleNoTime   uint8 = 6
	AnalogInputEventFloatWithTime  uint8 = 7
	AnalogInputEventDoubleWithTime uint8 = 8
)
