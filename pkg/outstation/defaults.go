package outstation

import (
	"maps"
	"slices"

	"avaneesh/dnp3-sim/pkg/app"
	"avaneesh/dnp3-sim/pkg/field"
	"avaneesh/dnp3-sim/pkg/types"
)

// DefaultsKind distinguishes static from event response defaults
type DefaultsKind int

const (
	DefaultsStatic DefaultsKind = iota
	DefaultsEvent
)

// String returns the section name the kind's errors are filed under
func (k DefaultsKind) String() string {
	if k == DefaultsEvent {
		return SectionEventDefaults
	}
	return SectionStaticDefaults
}

func (k DefaultsKind) variations(pt types.PointType) []uint8 {
	if k == DefaultsEvent {
		return app.EventVariations(pt)
	}
	return app.StaticVariations(pt)
}

func (k DefaultsKind) stackDefault(pt types.PointType) uint8 {
	if k == DefaultsEvent {
		return app.DefaultEventVariation(pt)
	}
	return app.DefaultStaticVariation(pt)
}

// ResponseDefaults maps each point type to the variation reported when a
// master does not ask for a specific one. Values are immutable.
type ResponseDefaults struct {
	kind       DefaultsKind
	variations map[types.PointType]uint8
}

// Kind returns whether these are static or event defaults
func (d ResponseDefaults) Kind() DefaultsKind {
	return d.kind
}

// Variation returns the default variation for pt
func (d ResponseDefaults) Variation(pt types.PointType) (uint8, bool) {
	v, ok := d.variations[pt]
	return v, ok
}

// Map returns a copy of the mapping
func (d ResponseDefaults) Map() map[types.PointType]uint8 {
	return maps.Clone(d.variations)
}

// StackDefaults returns the stack-wide default variation of every point type
func StackDefaults(kind DefaultsKind) map[types.PointType]uint8 {
	m := make(map[types.PointType]uint8, len(types.AllPointTypes()))
	for _, pt := range types.AllPointTypes() {
		m[pt] = kind.stackDefault(pt)
	}
	return m
}

// WithStackDefaults returns a copy of m with every missing point type set to
// the stack-wide default. Entries already present are kept, valid or not.
func WithStackDefaults(kind DefaultsKind, m map[types.PointType]uint8) map[types.PointType]uint8 {
	out := StackDefaults(kind)
	for pt, v := range m {
		out[pt] = v
	}
	return out
}

// NewResponseDefaults checks that every point type in supported has an
// entry in m and that the entry is a legal variation for that type. All
// failures are reported, filed under the kind's section.
func NewResponseDefaults(kind DefaultsKind, m map[types.PointType]uint8, supported []types.PointType) (ResponseDefaults, field.Errors) {
	var errs field.Errors
	out := make(map[types.PointType]uint8, len(supported))

	for _, pt := range supported {
		v, ok := m[pt]
		if !ok {
			errs.Add(field.MissingPointTypeDefault(kind.String(), pt.String()))
			continue
		}
		if err := field.OneOf(pt.String(), v, kind.variations(pt)); err != nil {
			errs.Add(err)
			continue
		}
		out[pt] = v
	}

	keys := make([]types.PointType, 0, len(m))
	for pt := range m {
		keys = append(keys, pt)
	}
	slices.Sort(keys)
	for _, pt := range keys {
		if !pt.IsValid() {
			errs.Add(field.InvalidValue(pt.String(), m[pt], "unknown point type"))
		}
	}

	if len(errs) > 0 {
		return ResponseDefaults{}, errs.InSection(kind.String())
	}
	return ResponseDefaults{kind: kind, variations: out}, nil
}
