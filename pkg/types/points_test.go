package types

import "testing"

func TestParsePointType(t *testing.T) {
	tests := []struct {
		in      string
		want    PointType
		wantErr bool
	}{
		{"analogInput", PointTypeAnalogInput, false},
		{"analog_input", PointTypeAnalogInput, false},
		{"BINARY_OUTPUT_STATUS", PointTypeBinaryOutputStatus, false},
		{" doubleBitBinaryInput ", PointTypeDoubleBitBinaryInput, false},
		{"frozen_counter", PointTypeFrozenCounter, false},
		{"octetString", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePointType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPointType_String(t *testing.T) {
	for _, pt := range AllPointTypes() {
		back, err := ParsePointType(pt.String())
		if err != nil || back != pt {
			t.Errorf("%s: round trip got %v, %v", pt, back, err)
		}
	}
	if PointType(99).IsValid() {
		t.Error("PointType(99) should be invalid")
	}
	if PointType(99).String() != "PointType(99)" {
		t.Errorf("got %q", PointType(99).String())
	}
}

func TestFlags_WithOnline(t *testing.T) {
	f := Flags(0).WithOnline(true)
	if !f.IsOnline() {
		t.Error("online bit should be set")
	}
	f = f.WithRestart(true).WithOnline(false)
	if f.IsOnline() || !f.HasRestart() {
		t.Errorf("got flags 0x%02X, want restart only", f)
	}
}
