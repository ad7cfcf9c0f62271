package outstation

import (
	"container/list"
	"sync"

	"avaneesh/dnp3-sim/pkg/types"
)

// Event is a logged change of one point
type Event struct {
	Type      types.PointType
	Index     uint16
	Value     types.Measurement
	Class     uint8
	Variation uint8
}

// EventBuffer stores events per class, dropping the oldest event of a class
// when that class is full.
type EventBuffer struct {
	classes    [3]*list.List
	maxSize    uint
	overflowed bool
	mu         sync.RWMutex
}

// NewEventBuffer creates an event buffer holding up to maxSize events per class
func NewEventBuffer(maxSize uint) *EventBuffer {
	eb := &EventBuffer{maxSize: maxSize}
	for i := range eb.classes {
		eb.classes[i] = list.New()
	}
	return eb
}

func (eb *EventBuffer) classList(class uint8) *list.List {
	if class < 1 || class > 3 {
		return nil
	}
	return eb.classes[class-1]
}

// Add stores the event in its class. Events without a class are ignored.
func (eb *EventBuffer) Add(event Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	l := eb.classList(event.Class)
	if l == nil || eb.maxSize == 0 {
		return
	}

	if uint(l.Len()) >= eb.maxSize {
		l.Remove(l.Front())
		eb.overflowed = true
	}
	l.PushBack(event)
}

// Count returns the number of buffered events of a class
func (eb *EventBuffer) Count(class uint8) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	l := eb.classList(class)
	if l == nil {
		return 0
	}
	return l.Len()
}

// Events returns the buffered events of a class, oldest first
func (eb *EventBuffer) Events(class uint8) []Event {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	l := eb.classList(class)
	if l == nil {
		return nil
	}
	out := make([]Event, 0, l.Len())
	for e := l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(Event))
	}
	return out
}

// Clear removes all events of a class
func (eb *EventBuffer) Clear(class uint8) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if l := eb.classList(class); l != nil {
		l.Init()
	}
}

// HasEvents returns true if any events are buffered
func (eb *EventBuffer) HasEvents() bool {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, l := range eb.classes {
		if l.Len() > 0 {
			return true
		}
	}
	return false
}

// Overflowed reports whether an event was ever dropped for lack of space
func (eb *EventBuffer) Overflowed() bool {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return eb.overflowed
}
