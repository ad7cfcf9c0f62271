package types

import "time"

// DNP3Time is milliseconds since the Unix epoch
type DNP3Time uint64

// Now returns the current time as DNP3Time
func Now() DNP3Time {
	return DNP3Time(time.Now().UnixMilli())
}

// ToTime converts DNP3Time to Go time.Time
func (t DNP3Time) ToTime() time.Time {
	return time.UnixMilli(int64(t))
}

// Measurement is implemented by every point value type
type Measurement interface {
	GetFlags() Flags
	GetTime() DNP3Time
}

// Binary represents a binary input (on/off) measurement
type Binary struct {
	Value bool
	Flags Flags
	Time  DNP3Time
}

func (b Binary) GetFlags() Flags   { return b.Flags }
func (b Binary) GetTime() DNP3Time { return b.Time }

// DoubleBitValue represents the state of a double-bit binary input
type DoubleBitValue uint8

const (
	DoubleBitIntermediate  DoubleBitValue = 0
	DoubleBitOff           DoubleBitValue = 1
	DoubleBitOn            DoubleBitValue = 2
	DoubleBitIndeterminate DoubleBitValue = 3
)

// DoubleBitBinary represents a double-bit binary input measurement
type DoubleBitBinary struct {
	Value DoubleBitValue
	Flags Flags
	Time  DNP3Time
}

func (d DoubleBitBinary) GetFlags() Flags   { return d.Flags }
func (d DoubleBitBinary) GetTime() DNP3Time { return d.Time }

// Analog represents an analog input measurement
type Analog struct {
	Value float64
	Flags Flags
	Time  DNP3Time
}

func (a Analog) GetFlags() Flags   { return a.Flags }
func (a Analog) GetTime() DNP3Time { return a.Time }

// Counter represents a counter value
type Counter struct {
	Value uint32
	Flags Flags
	Time  DNP3Time
}

func (c Counter) GetFlags() Flags   { return c.Flags }
func (c Counter) GetTime() DNP3Time { return c.Time }

// FrozenCounter represents a frozen counter value
type FrozenCounter struct {
	Value uint32
	Flags Flags
	Time  DNP3Time
}

func (f FrozenCounter) GetFlags() Flags   { return f.Flags }
func (f FrozenCounter) GetTime() DNP3Time { return f.Time }

// BinaryOutputStatus represents the status of a binary output
type BinaryOutputStatus struct {
	Value bool
	Flags Flags
	Time  DNP3Time
}

func (b BinaryOutputStatus) GetFlags() Flags   { return b.Flags }
func (b BinaryOutputStatus) GetTime() DNP3Time { return b.Time }

// AnalogOutputStatus represents the status of an analog output
type AnalogOutputStatus struct {
	Value float64
	Flags Flags
	Time  DNP3Time
}

func (a AnalogOutputStatus) GetFlags() Flags   { return a.Flags }
func (a AnalogOutputStatus) GetTime() DNP3Time { return a.Time }
