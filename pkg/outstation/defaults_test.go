package outstation

import (
	"testing"

	"avaneesh/dnp3-sim/pkg/field"
	"avaneesh/dnp3-sim/pkg/types"
)

func TestStackDefaults(t *testing.T) {
	static := StackDefaults(DefaultsStatic)
	event := StackDefaults(DefaultsEvent)

	if len(static) != 7 || len(event) != 7 {
		t.Fatalf("got %d static and %d event entries, want 7", len(static), len(event))
	}

	tests := []struct {
		pt            types.PointType
		static, event uint8
	}{
		{types.PointTypeBinaryInput, 2, 1},
		{types.PointTypeDoubleBitBinaryInput, 2, 1},
		{types.PointTypeAnalogInput, 1, 1},
		{types.PointTypeCounter, 1, 1},
		{types.PointTypeFrozenCounter, 1, 1},
		{types.PointTypeBinaryOutputStatus, 2, 1},
		{types.PointTypeAnalogOutputStatus, 1, 1},
	}
	for _, tt := range tests {
		if static[tt.pt] != tt.static || event[tt.pt] != tt.event {
			t.Errorf("%s: got %d/%d, want %d/%d", tt.pt, static[tt.pt], event[tt.pt], tt.static, tt.event)
		}
	}
}

func TestNewResponseDefaults_Valid(t *testing.T) {
	m := StackDefaults(DefaultsEvent)
	m[types.PointTypeAnalogInput] = 7

	d, errs := NewResponseDefaults(DefaultsEvent, m, types.AllPointTypes())
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if d.Kind() != DefaultsEvent {
		t.Errorf("Kind: got %v", d.Kind())
	}
	if v, ok := d.Variation(types.PointTypeAnalogInput); !ok || v != 7 {
		t.Errorf("analogInput: got %d, %v", v, ok)
	}

	// The returned map is a copy.
	d.Map()[types.PointTypeAnalogInput] = 1
	if v, _ := d.Variation(types.PointTypeAnalogInput); v != 7 {
		t.Error("Map leaked internal state")
	}
}

func TestNewResponseDefaults_Errors(t *testing.T) {
	tests := []struct {
		name    string
		kind    DefaultsKind
		mutate  func(m map[types.PointType]uint8)
		field   string
		errKind field.Kind
		section string
	}{
		{
			name:    "static binary variation 3",
			kind:    DefaultsStatic,
			mutate:  func(m map[types.PointType]uint8) { m[types.PointTypeBinaryInput] = 3 },
			field:   "binaryInput",
			errKind: field.KindInvalidEnumeration,
			section: SectionStaticDefaults,
		},
		{
			name:    "static double-bit variation 1",
			kind:    DefaultsStatic,
			mutate:  func(m map[types.PointType]uint8) { m[types.PointTypeDoubleBitBinaryInput] = 1 },
			field:   "doubleBitBinaryInput",
			errKind: field.KindInvalidEnumeration,
			section: SectionStaticDefaults,
		},
		{
			name:    "event counter variation 3",
			kind:    DefaultsEvent,
			mutate:  func(m map[types.PointType]uint8) { m[types.PointTypeCounter] = 3 },
			field:   "counter",
			errKind: field.KindInvalidEnumeration,
			section: SectionEventDefaults,
		},
		{
			name:    "event analog output missing",
			kind:    DefaultsEvent,
			mutate:  func(m map[types.PointType]uint8) { delete(m, types.PointTypeAnalogOutputStatus) },
			field:   "analogOutputStatus",
			errKind: field.KindMissingPointTypeDefault,
			section: SectionEventDefaults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := StackDefaults(tt.kind)
			tt.mutate(m)

			_, errs := NewResponseDefaults(tt.kind, m, types.AllPointTypes())
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
			}
			e := errs[0]
			if e.Field != tt.field || e.Kind != tt.errKind || e.Section != tt.section {
				t.Errorf("got %s.%s %v, want %s.%s %v", e.Section, e.Field, e.Kind, tt.section, tt.field, tt.errKind)
			}
		})
	}
}

func TestNewResponseDefaults_PermittedList(t *testing.T) {
	m := StackDefaults(DefaultsStatic)
	m[types.PointTypeFrozenCounter] = 3

	_, errs := NewResponseDefaults(DefaultsStatic, m, types.AllPointTypes())
	if len(errs) != 1 {
		t.Fatalf("got %v", errs)
	}
	if got, want := errs[0].Permitted(), "{1, 2, 5, 6, 9, 10}"; got != want {
		t.Errorf("Permitted: got %q, want %q", got, want)
	}
}

func TestNewResponseDefaults_SupportedSubset(t *testing.T) {
	m := map[types.PointType]uint8{types.PointTypeAnalogInput: 3}

	d, errs := NewResponseDefaults(DefaultsStatic, m, []types.PointType{types.PointTypeAnalogInput})
	if errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if _, ok := d.Variation(types.PointTypeBinaryInput); ok {
		t.Error("unsupported type should not be present")
	}
}

func TestWithStackDefaults(t *testing.T) {
	m := WithStackDefaults(DefaultsStatic, map[types.PointType]uint8{types.PointTypeAnalogInput: 5})
	if m[types.PointTypeAnalogInput] != 5 {
		t.Errorf("explicit entry overwritten: %d", m[types.PointTypeAnalogInput])
	}
	if m[types.PointTypeBinaryInput] != 2 {
		t.Errorf("missing entry not filled: %d", m[types.PointTypeBinaryInput])
	}
}
