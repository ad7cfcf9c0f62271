package outstation

import (
	"errors"
	"testing"

	"avaneesh/dnp3-sim/pkg/field"
	"avaneesh/dnp3-sim/pkg/types"
)

func TestSession_Add(t *testing.T) {
	catalog := testCatalog(t)
	s := NewSession("Default")
	if s.ID() == "" || s.IsEdit() {
		t.Fatalf("unexpected session state: id=%q edit=%v", s.ID(), s.IsEdit())
	}

	if got := s.Request().ID; got != DefaultID {
		t.Errorf("initial ID: got %q, want %q", got, DefaultID)
	}

	// Identifier cleared: it is the only problem.
	s.SetID("")
	_, err := s.Build(nil, catalog, nil)
	errs, _ := field.AsErrors(err)
	if len(errs) != 1 || errs[0].Kind != field.KindEmptyIdentifier {
		t.Fatalf("got %v", err)
	}
	if s.Closed() {
		t.Fatal("failed build must leave the session open")
	}

	s.SetID("OS-1")
	cfg, err := s.Build(nil, catalog, []string{"OS-2"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.ID() != "OS-1" || !s.Closed() {
		t.Errorf("got id=%q closed=%v", cfg.ID(), s.Closed())
	}

	if _, err := s.Build(nil, catalog, nil); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Build after commit: got %v", err)
	}
}

func TestSession_EditKeepsOwnIdentifier(t *testing.T) {
	catalog := testCatalog(t)
	cfg, err := Build(DefaultRequest("OS-1", "Default"), catalog, nil)
	if err != nil {
		t.Fatal(err)
	}

	s := EditSession(cfg)
	if !s.IsEdit() || s.OriginalID() != "OS-1" {
		t.Fatalf("got edit=%v original=%q", s.IsEdit(), s.OriginalID())
	}

	app := cfg.Application().Input()
	app.MaxControlsPerRequest = 4
	s.SetApplication(app)

	existing := []string{"OS-1", "OS-2"}
	edited, err := s.Build(nil, catalog, existing)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if edited.Application().MaxControlsPerRequest != 4 {
		t.Errorf("MaxControlsPerRequest: got %d", edited.Application().MaxControlsPerRequest)
	}
	if existing[0] != "OS-1" {
		t.Error("existing identifiers were modified")
	}
	if cfg.Application().MaxControlsPerRequest != 1 {
		t.Error("original configuration was modified")
	}
}

func TestSession_EditRenameToTakenIdentifier(t *testing.T) {
	catalog := testCatalog(t)
	cfg, err := Build(DefaultRequest("OS-1", "Default"), catalog, nil)
	if err != nil {
		t.Fatal(err)
	}

	s := EditSession(cfg)
	s.SetID("OS-2")
	_, err = s.Build(nil, catalog, []string{"OS-1", "OS-2"})
	errs, _ := field.AsErrors(err)
	if len(errs) != 1 || errs[0].Kind != field.KindDuplicateIdentifier {
		t.Errorf("got %v", err)
	}
}

func TestSession_SettersCopyMaps(t *testing.T) {
	s := NewSession("Default")
	m := StackDefaults(DefaultsStatic)
	s.SetStaticDefaults(m)
	m[types.PointTypeBinaryInput] = 3

	if got := s.Request().StaticDefaults[types.PointTypeBinaryInput]; got != 2 {
		t.Errorf("session saw caller mutation: %d", got)
	}

	r := s.Request()
	r.EventDefaults[types.PointTypeCounter] = 9
	if got := s.Request().EventDefaults[types.PointTypeCounter]; got != 1 {
		t.Errorf("Request leaked internal map: %d", got)
	}
}

func TestSession_Cancel(t *testing.T) {
	s := NewSession("Default")
	s.SetID("OS-1")
	s.SetTemplate("Other")
	s.Cancel()

	if !s.Closed() {
		t.Error("session should be closed")
	}
	if r := s.Request(); r.ID != "" || r.Template != "" {
		t.Errorf("input not discarded: %+v", r)
	}
	if _, err := s.Build(nil, testCatalog(t), nil); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("got %v", err)
	}
}

func TestSession_DefaultIDIsChecked(t *testing.T) {
	catalog := testCatalog(t)

	if _, err := NewSession("Default").Build(nil, catalog, nil); err != nil {
		t.Fatalf("Build with the default identifier failed: %v", err)
	}

	_, err := NewSession("Default").Build(nil, catalog, []string{DefaultID})
	errs, _ := field.AsErrors(err)
	if len(errs) != 1 || errs[0].Kind != field.KindDuplicateIdentifier {
		t.Errorf("second default identifier: got %v", err)
	}
}

func TestSession_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewSession("").ID()
		if seen[id] {
			t.Fatalf("duplicate session id %s", id)
		}
		seen[id] = true
	}
}
