package outstation

import (
	"math"
	"sync"

	"avaneesh/dnp3-sim/pkg/template"
	"avaneesh/dnp3-sim/pkg/types"
)

// DefaultMaxEventsPerClass is the event buffer size used by NewDatabase
const DefaultMaxEventsPerClass = 100

// EventMode controls event generation on update
type EventMode int

const (
	EventModeDetect   EventMode = iota // generate when value or flags change
	EventModeForce                     // always generate
	EventModeSuppress                  // never generate
)

// point stores the current value and reporting configuration of one index
type point[T types.Measurement] struct {
	value           T
	defined         bool
	staticVariation uint8
	eventVariation  uint8
	class           uint8
	deadband        float64
}

// PointInfo describes the reporting configuration of one point
type PointInfo struct {
	Index           uint16
	Defined         bool
	StaticVariation uint8
	EventVariation  uint8
	Class           uint8
	Deadband        float64
}

// Database stores the measurement points of one outstation. Indices are
// dense: the array of each type spans 0 through the highest index the
// template defines, and indices the template skips are undefined, offline
// and never generate events.
type Database struct {
	binary        []point[types.Binary]
	doubleBit     []point[types.DoubleBitBinary]
	analog        []point[types.Analog]
	counter       []point[types.Counter]
	frozenCounter []point[types.FrozenCounter]
	binaryOutput  []point[types.BinaryOutputStatus]
	analogOutput  []point[types.AnalogOutputStatus]

	eventBuffer *EventBuffer

	mu sync.RWMutex
}

// NewDatabase instantiates the configuration's template with the default
// event buffer size
func (c *Configuration) NewDatabase() *Database {
	return c.NewDatabaseWithEvents(NewEventBuffer(DefaultMaxEventsPerClass))
}

// NewDatabaseWithEvents instantiates the configuration's template: initial
// values, class and deadband come from the point definitions, variations
// from the static and event defaults.
func (c *Configuration) NewDatabaseWithEvents(eventBuffer *EventBuffer) *Database {
	tpl := c.template
	vars := func(pt types.PointType) (uint8, uint8) {
		sv, _ := c.staticDefaults.Variation(pt)
		ev, _ := c.eventDefaults.Variation(pt)
		return sv, ev
	}

	return &Database{
		binary: instantiate(tpl, types.PointTypeBinaryInput, vars, func(d template.PointDefinition, f types.Flags) types.Binary {
			return types.Binary{Value: d.Value != 0, Flags: f}
		}),
		doubleBit: instantiate(tpl, types.PointTypeDoubleBitBinaryInput, vars, func(d template.PointDefinition, f types.Flags) types.DoubleBitBinary {
			return types.DoubleBitBinary{Value: types.DoubleBitValue(d.Value), Flags: f}
		}),
		analog: instantiate(tpl, types.PointTypeAnalogInput, vars, func(d template.PointDefinition, f types.Flags) types.Analog {
			return types.Analog{Value: d.Value, Flags: f}
		}),
		counter: instantiate(tpl, types.PointTypeCounter, vars, func(d template.PointDefinition, f types.Flags) types.Counter {
			return types.Counter{Value: uint32(d.Value), Flags: f}
		}),
		frozenCounter: instantiate(tpl, types.PointTypeFrozenCounter, vars, func(d template.PointDefinition, f types.Flags) types.FrozenCounter {
			return types.FrozenCounter{Value: uint32(d.Value), Flags: f}
		}),
		binaryOutput: instantiate(tpl, types.PointTypeBinaryOutputStatus, vars, func(d template.PointDefinition, f types.Flags) types.BinaryOutputStatus {
			return types.BinaryOutputStatus{Value: d.Value != 0, Flags: f}
		}),
		analogOutput: instantiate(tpl, types.PointTypeAnalogOutputStatus, vars, func(d template.PointDefinition, f types.Flags) types.AnalogOutputStatus {
			return types.AnalogOutputStatus{Value: d.Value, Flags: f}
		}),
		eventBuffer: eventBuffer,
	}
}

func instantiate[T types.Measurement](
	tpl *template.Template,
	pt types.PointType,
	vars func(types.PointType) (uint8, uint8),
	initial func(template.PointDefinition, types.Flags) T,
) []point[T] {
	defs := tpl.PointsOf(pt)
	if len(defs) == 0 {
		return nil
	}

	sv, ev := vars(pt)
	points := make([]point[T], int(defs[len(defs)-1].Stop)+1)
	for _, d := range defs {
		flags := types.Flags(0).WithOnline(d.Online).WithRestart(true)
		for i := int(d.Start); i <= int(d.Stop); i++ {
			points[i] = point[T]{
				value:           initial(d, flags),
				defined:         true,
				staticVariation: sv,
				eventVariation:  ev,
				class:           d.Class,
				deadband:        d.Deadband,
			}
		}
	}
	return points
}

// EventBuffer returns the buffer events are written to
func (db *Database) EventBuffer() *EventBuffer {
	return db.eventBuffer
}

func update[T types.Measurement](db *Database, points []point[T], pt types.PointType, index uint16, value T, mode EventMode, changed func(old, new T, deadband float64) bool) bool {
	db.mu.Lock()
	defer db.mu.Unlock()

	if int(index) >= len(points) || !points[index].defined {
		return false
	}

	p := &points[index]
	old := p.value
	p.value = value

	generate := false
	switch mode {
	case EventModeForce:
		generate = true
	case EventModeDetect:
		generate = old.GetFlags() != value.GetFlags() || changed(old, value, p.deadband)
	}

	if generate && p.class > 0 && db.eventBuffer != nil {
		db.eventBuffer.Add(Event{
			Type:      pt,
			Index:     index,
			Value:     value,
			Class:     p.class,
			Variation: p.eventVariation,
		})
	}
	return true
}

func get[T types.Measurement](db *Database, points []point[T], index uint16) (T, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if int(index) >= len(points) || !points[index].defined {
		var zero T
		return zero, false
	}
	return points[index].value, true
}

func info[T types.Measurement](points []point[T], index uint16) (PointInfo, bool) {
	if int(index) >= len(points) {
		return PointInfo{}, false
	}
	p := points[index]
	return PointInfo{
		Index:           index,
		Defined:         p.defined,
		StaticVariation: p.staticVariation,
		EventVariation:  p.eventVariation,
		Class:           p.class,
		Deadband:        p.deadband,
	}, true
}

func exceeds(old, new, deadband float64) bool {
	return math.Abs(old-new) > deadband
}

// UpdateBinary updates a binary input point
func (db *Database) UpdateBinary(index uint16, value types.Binary, mode EventMode) bool {
	return update(db, db.binary, types.PointTypeBinaryInput, index, value, mode, func(o, n types.Binary, _ float64) bool {
		return o.Value != n.Value
	})
}

// UpdateDoubleBitBinary updates a double-bit binary input point
func (db *Database) UpdateDoubleBitBinary(index uint16, value types.DoubleBitBinary, mode EventMode) bool {
	return update(db, db.doubleBit, types.PointTypeDoubleBitBinaryInput, index, value, mode, func(o, n types.DoubleBitBinary, _ float64) bool {
		return o.Value != n.Value
	})
}

// UpdateAnalog updates an analog input point
func (db *Database) UpdateAnalog(index uint16, value types.Analog, mode EventMode) bool {
	return update(db, db.analog, types.PointTypeAnalogInput, index, value, mode, func(o, n types.Analog, d float64) bool {
		return exceeds(o.Value, n.Value, d)
	})
}

// UpdateCounter updates a counter point
func (db *Database) UpdateCounter(index uint16, value types.Counter, mode EventMode) bool {
	return update(db, db.counter, types.PointTypeCounter, index, value, mode, func(o, n types.Counter, d float64) bool {
		return exceeds(float64(o.Value), float64(n.Value), d)
	})
}

// UpdateFrozenCounter updates a frozen counter point
func (db *Database) UpdateFrozenCounter(index uint16, value types.FrozenCounter, mode EventMode) bool {
	return update(db, db.frozenCounter, types.PointTypeFrozenCounter, index, value, mode, func(o, n types.FrozenCounter, d float64) bool {
		return exceeds(float64(o.Value), float64(n.Value), d)
	})
}

// UpdateBinaryOutputStatus updates a binary output status point
func (db *Database) UpdateBinaryOutputStatus(index uint16, value types.BinaryOutputStatus, mode EventMode) bool {
	return update(db, db.binaryOutput, types.PointTypeBinaryOutputStatus, index, value, mode, func(o, n types.BinaryOutputStatus, _ float64) bool {
		return o.Value != n.Value
	})
}

// UpdateAnalogOutputStatus updates an analog output status point
func (db *Database) UpdateAnalogOutputStatus(index uint16, value types.AnalogOutputStatus, mode EventMode) bool {
	return update(db, db.analogOutput, types.PointTypeAnalogOutputStatus, index, value, mode, func(o, n types.AnalogOutputStatus, d float64) bool {
		return exceeds(o.Value, n.Value, d)
	})
}

// GetBinary returns a binary input value
func (db *Database) GetBinary(index uint16) (types.Binary, bool) {
	return get(db, db.binary, index)
}

// GetDoubleBitBinary returns a double-bit binary input value
func (db *Database) GetDoubleBitBinary(index uint16) (types.DoubleBitBinary, bool) {
	return get(db, db.doubleBit, index)
}

// GetAnalog returns an analog input value
func (db *Database) GetAnalog(index uint16) (types.Analog, bool) {
	return get(db, db.analog, index)
}

// GetCounter returns a counter value
func (db *Database) GetCounter(index uint16) (types.Counter, bool) {
	return get(db, db.counter, index)
}

// GetFrozenCounter returns a frozen counter value
func (db *Database) GetFrozenCounter(index uint16) (types.FrozenCounter, bool) {
	return get(db, db.frozenCounter, index)
}

// GetBinaryOutputStatus returns a binary output status value
func (db *Database) GetBinaryOutputStatus(index uint16) (types.BinaryOutputStatus, bool) {
	return get(db, db.binaryOutput, index)
}

// GetAnalogOutputStatus returns an analog output status value
func (db *Database) GetAnalogOutputStatus(index uint16) (types.AnalogOutputStatus, bool) {
	return get(db, db.analogOutput, index)
}

// Count returns the size of the point array of one type, including undefined gaps
func (db *Database) Count(pt types.PointType) int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	switch pt {
	case types.PointTypeBinaryInput:
		return len(db.binary)
	case types.PointTypeDoubleBitBinaryInput:
		return len(db.doubleBit)
	case types.PointTypeAnalogInput:
		return len(db.analog)
	case types.PointTypeCounter:
		return len(db.counter)
	case types.PointTypeFrozenCounter:
		return len(db.frozenCounter)
	case types.PointTypeBinaryOutputStatus:
		return len(db.binaryOutput)
	case types.PointTypeAnalogOutputStatus:
		return len(db.analogOutput)
	}
	return 0
}

// Info returns the reporting configuration of one point
func (db *Database) Info(pt types.PointType, index uint16) (PointInfo, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	switch pt {
	case types.PointTypeBinaryInput:
		return info(db.binary, index)
	case types.PointTypeDoubleBitBinaryInput:
		return info(db.doubleBit, index)
	case types.PointTypeAnalogInput:
		return info(db.analog, index)
	case types.PointTypeCounter:
		return info(db.counter, index)
	case types.PointTypeFrozenCounter:
		return info(db.frozenCounter, index)
	case types.PointTypeBinaryOutputStatus:
		return info(db.binaryOutput, index)
	case types.PointTypeAnalogOutputStatus:
		return info(db.analogOutput, index)
	}
	return PointInfo{}, false
}
