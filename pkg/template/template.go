// Package template holds database templates: named, reusable point
// definition sets that seed an outstation's point database.
//
// Templates are immutable once built. The Catalog publishes them through
// versioned snapshots so a reader never observes a half-applied edit.
package template

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"avaneesh/dnp3-sim/pkg/types"
)

// Template definition errors
var (
	ErrInvalidName       = errors.New("invalid template name")
	ErrInvalidPoint      = errors.New("invalid point definition")
	ErrOverlappingPoints = errors.New("overlapping point indices")
)

// MaxClass is the highest event class a point may be assigned to (0 = no events)
const MaxClass = 3

// PointDefinition describes a contiguous index range of one point type and
// the value every point in the range starts with.
type PointDefinition struct {
	Type  types.PointType
	Start uint16
	Stop  uint16

	// Value is the initial value: 0/1 for binaries, a DoubleBitValue for
	// double-bit inputs, a whole non-negative count for counters.
	Value  float64
	Online bool

	Class    uint8
	Deadband float64
}

// Count returns the number of points in the range
func (p PointDefinition) Count() int {
	return int(p.Stop) - int(p.Start) + 1
}

// Validate checks a single definition in isolation
func (p PointDefinition) Validate() error {
	if !p.Type.IsValid() {
		return fmt.Errorf("%w: unknown point type %d", ErrInvalidPoint, p.Type)
	}
	if p.Stop < p.Start {
		return fmt.Errorf("%w: %s start=%d > stop=%d", ErrInvalidPoint, p.Type, p.Start, p.Stop)
	}
	if p.Class > MaxClass {
		return fmt.Errorf("%w: %s[%d-%d] class %d (must be 0-%d)", ErrInvalidPoint, p.Type, p.Start, p.Stop, p.Class, MaxClass)
	}
	if p.Deadband < 0 || math.IsNaN(p.Deadband) {
		return fmt.Errorf("%w: %s[%d-%d] deadband %v", ErrInvalidPoint, p.Type, p.Start, p.Stop, p.Deadband)
	}
	if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return fmt.Errorf("%w: %s[%d-%d] value %v", ErrInvalidPoint, p.Type, p.Start, p.Stop, p.Value)
	}

	switch p.Type {
	case types.PointTypeBinaryInput, types.PointTypeBinaryOutputStatus:
		if p.Value != 0 && p.Value != 1 {
			return fmt.Errorf("%w: %s[%d-%d] value %v (must be 0 or 1)", ErrInvalidPoint, p.Type, p.Start, p.Stop, p.Value)
		}
	case types.PointTypeDoubleBitBinaryInput:
		if p.Value != math.Trunc(p.Value) || p.Value < 0 || p.Value > float64(types.DoubleBitIndeterminate) {
			return fmt.Errorf("%w: %s[%d-%d] value %v (must be 0-3)", ErrInvalidPoint, p.Type, p.Start, p.Stop, p.Value)
		}
	case types.PointTypeCounter, types.PointTypeFrozenCounter:
		if p.Value != math.Trunc(p.Value) || p.Value < 0 || p.Value > math.MaxUint32 {
			return fmt.Errorf("%w: %s[%d-%d] value %v (must be a 32-bit count)", ErrInvalidPoint, p.Type, p.Start, p.Stop, p.Value)
		}
	}
	return nil
}

// Template is an immutable, named set of point definitions
type Template struct {
	name   string
	points []PointDefinition
}

// New validates the definitions and builds a template. Definitions are
// kept in type, then start index order.
func New(name string, points ...PointDefinition) (*Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidName)
	}

	sorted := slices.Clone(points)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Type != sorted[j].Type {
			return sorted[i].Type < sorted[j].Type
		}
		return sorted[i].Start < sorted[j].Start
	})

	for i, p := range sorted {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("template %q: %w", name, err)
		}
		if i > 0 {
			prev := sorted[i-1]
			if prev.Type == p.Type && p.Start <= prev.Stop {
				return nil, fmt.Errorf("template %q: %w: %s [%d-%d] and [%d-%d]",
					name, ErrOverlappingPoints, p.Type, prev.Start, prev.Stop, p.Start, p.Stop)
			}
		}
	}

	return &Template{name: name, points: sorted}, nil
}

// Name returns the template name
func (t *Template) Name() string {
	return t.name
}

// Points returns a copy of the point definitions
func (t *Template) Points() []PointDefinition {
	return slices.Clone(t.points)
}

// PointsOf returns the definitions of one point type, in index order
func (t *Template) PointsOf(pt types.PointType) []PointDefinition {
	var out []PointDefinition
	for _, p := range t.points {
		if p.Type == pt {
			out = append(out, p)
		}
	}
	return out
}

// PointTypes returns the point types present in the template
func (t *Template) PointTypes() []types.PointType {
	var out []types.PointType
	for _, p := range t.points {
		if len(out) == 0 || out[len(out)-1] != p.Type {
			out = append(out, p.Type)
		}
	}
	return out
}

// Count returns the number of points of the given type
func (t *Template) Count(pt types.PointType) int {
	n := 0
	for _, p := range t.points {
		if p.Type == pt {
			n += p.Count()
		}
	}
	return n
}
