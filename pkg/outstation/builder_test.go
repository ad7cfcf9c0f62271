package outstation

import (
	"errors"
	"reflect"
	"testing"

	"avaneesh/dnp3-sim/pkg/field"
	"avaneesh/dnp3-sim/pkg/link"
	"avaneesh/dnp3-sim/pkg/template"
	"avaneesh/dnp3-sim/pkg/types"
)

func testCatalog(t *testing.T) *template.Catalog {
	t.Helper()
	c := template.NewCatalog(nil)
	tpl, err := template.New("Default",
		template.PointDefinition{Type: types.PointTypeBinaryInput, Start: 0, Stop: 9, Online: true, Class: 1},
		template.PointDefinition{Type: types.PointTypeAnalogInput, Start: 0, Stop: 4, Value: 12.5, Online: true, Class: 2, Deadband: 1},
		template.PointDefinition{Type: types.PointTypeCounter, Start: 3, Stop: 5, Value: 7, Online: true, Class: 3},
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.New(tpl); err != nil {
		t.Fatal(err)
	}
	return c
}

func buildErrors(t *testing.T, err error) field.Errors {
	t.Helper()
	errs, ok := field.AsErrors(err)
	if !ok {
		t.Fatalf("expected field errors, got %v", err)
	}
	return errs
}

func TestBuild_Defaults(t *testing.T) {
	cfg, err := Build(DefaultRequest("OS-1", "Default"), testCatalog(t), nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if cfg.ID() != "OS-1" {
		t.Errorf("ID: got %q", cfg.ID())
	}
	if cfg.Link() != link.DefaultConfig() {
		t.Errorf("Link: got %+v", cfg.Link())
	}
	if cfg.Application() != DefaultApplicationConfig() {
		t.Errorf("Application: got %+v", cfg.Application())
	}
	if !reflect.DeepEqual(cfg.StaticDefaults().Map(), StackDefaults(DefaultsStatic)) {
		t.Errorf("StaticDefaults: got %v", cfg.StaticDefaults().Map())
	}
	if !reflect.DeepEqual(cfg.EventDefaults().Map(), StackDefaults(DefaultsEvent)) {
		t.Errorf("EventDefaults: got %v", cfg.EventDefaults().Map())
	}
	if cfg.Template().Name() != "Default" {
		t.Errorf("Template: got %q", cfg.Template().Name())
	}
}

func TestBuild_TrimsIdentifier(t *testing.T) {
	cfg, err := Build(DefaultRequest("  OS-1 ", "Default"), testCatalog(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ID() != "OS-1" {
		t.Errorf("ID: got %q", cfg.ID())
	}
}

func TestBuild_IdentifierErrors(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		existing []string
		kind     field.Kind
	}{
		{"empty", "", nil, field.KindEmptyIdentifier},
		{"blank", "   ", []string{"OS-1"}, field.KindEmptyIdentifier},
		{"duplicate", "OS-1", []string{"OS-1"}, field.KindDuplicateIdentifier},
		{"duplicate after trim", " OS-1", []string{"OS-1"}, field.KindDuplicateIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(DefaultRequest(tt.id, "Default"), testCatalog(t), tt.existing)
			errs := buildErrors(t, err)
			if len(errs) != 1 || errs[0].Kind != tt.kind || errs[0].Section != SectionIdentifier {
				t.Errorf("got %v", errs)
			}
		})
	}
}

func TestBuild_CaseSensitiveIdentifiers(t *testing.T) {
	if _, err := Build(DefaultRequest("os-1", "Default"), testCatalog(t), []string{"OS-1"}); err != nil {
		t.Errorf("identifiers differing in case should not collide: %v", err)
	}
}

func TestBuild_TemplateNotFound(t *testing.T) {
	for _, name := range []string{"", "Missing", "default"} {
		_, err := Build(DefaultRequest("OS-1", name), testCatalog(t), nil)
		errs := buildErrors(t, err)
		if len(errs) != 1 || !errors.Is(errs[0], field.ErrTemplateNotFound) {
			t.Errorf("%q: got %v", name, errs)
		}
	}

	var (
		snap    *template.Snapshot
		catalog *template.Catalog
	)
	sources := []struct {
		name   string
		lookup TemplateLookup
	}{
		{"nil", nil},
		{"nil snapshot", snap},
		{"nil catalog", catalog},
	}
	for _, src := range sources {
		t.Run(src.name, func(t *testing.T) {
			cfg, err := Build(DefaultRequest("OS-1", "Default"), src.lookup, nil)
			if cfg != nil {
				t.Error("configuration returned on failure")
			}
			if errs := buildErrors(t, err); len(errs) != 1 || errs[0].Kind != field.KindTemplateNotFound {
				t.Errorf("got %v", errs)
			}
		})
	}
}

func TestBuild_DuplicateWithOtherErrors(t *testing.T) {
	req := DefaultRequest("OS-1", "Missing")
	req.Link.ResponseTimeoutMs = 60001
	req.Application.MaxTxFragmentSize = 19
	req.EventDefaults[types.PointTypeBinaryInput] = 4

	cfg, err := Build(req, testCatalog(t), []string{"OS-0", "OS-1"})
	if cfg != nil {
		t.Fatal("configuration returned on failure")
	}
	errs := buildErrors(t, err)

	if len(errs) != 5 {
		t.Fatalf("got %d errors, want 5: %v", len(errs), errs)
	}
	if errs[0].Kind != field.KindDuplicateIdentifier || errs[0].Field != FieldID {
		t.Errorf("first error: got %v, want DuplicateIdentifier", errs[0])
	}
	for _, name := range []string{"responseTimeoutMs", "maxTxFragmentSize", "binaryInput", FieldTemplate} {
		if _, ok := errs.Find(name); !ok {
			t.Errorf("missing error for %s: %v", name, errs)
		}
	}
}

func TestBuild_CollectsAllSections(t *testing.T) {
	req := DefaultRequest("", "Missing")
	req.Link.RemoteAddress = req.Link.LocalAddress
	req.Link.ResponseTimeoutMs = 50
	req.Application.MaxControlsPerRequest = 17
	req.StaticDefaults[types.PointTypeBinaryInput] = 3
	delete(req.EventDefaults, types.PointTypeCounter)

	_, err := Build(req, testCatalog(t), nil)
	errs := buildErrors(t, err)

	want := []struct {
		section string
		kind    field.Kind
	}{
		{SectionIdentifier, field.KindEmptyIdentifier},
		{link.Section, field.KindInvalidValue},
		{link.Section, field.KindOutOfRange},
		{SectionApplication, field.KindOutOfRange},
		{SectionStaticDefaults, field.KindInvalidEnumeration},
		{SectionEventDefaults, field.KindMissingPointTypeDefault},
		{SectionTemplate, field.KindTemplateNotFound},
	}
	if len(errs) != len(want) {
		t.Fatalf("got %d errors, want %d: %v", len(errs), len(want), errs)
	}
	for i, w := range want {
		if errs[i].Section != w.section || errs[i].Kind != w.kind {
			t.Errorf("error %d: got %s/%v, want %s/%v", i, errs[i].Section, errs[i].Kind, w.section, w.kind)
		}
	}
}

func TestBuild_ControlsAndTemplateTogether(t *testing.T) {
	req := DefaultRequest("OS-1", "Missing")
	req.Application.MaxControlsPerRequest = 17

	_, err := Build(req, testCatalog(t), nil)
	errs := buildErrors(t, err)
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	if e, ok := errs.Find("maxControlsPerRequest"); !ok || e.Kind != field.KindOutOfRange || e.Max != 16 {
		t.Errorf("maxControlsPerRequest: got %v", e)
	}
	if e, ok := errs.Find(FieldTemplate); !ok || e.Kind != field.KindTemplateNotFound {
		t.Errorf("template: got %v", e)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	catalog := testCatalog(t)
	req := DefaultRequest("OS-1", "Default")
	req.Application.UnsolicitedEnabled = true
	req.Application.SelectTimeoutMs = "1500"

	a, err := Build(req, catalog, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(req, catalog, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("builds differ:\n%+v\n%+v", a, b)
	}

	_, err1 := Build(DefaultRequest("", "nope"), catalog, nil)
	_, err2 := Build(DefaultRequest("", "nope"), catalog, nil)
	if err1.Error() != err2.Error() {
		t.Errorf("errors differ: %v / %v", err1, err2)
	}
}

func TestBuild_RequestRoundTrip(t *testing.T) {
	catalog := testCatalog(t)
	req := DefaultRequest("OS-1", "Default")
	req.Link.NumRetry = 3
	req.Application.MaxTxFragmentSize = 512
	req.EventDefaults[types.PointTypeAnalogInput] = 5

	cfg, err := Build(req, catalog, nil)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Build(cfg.Request(), catalog, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, again) {
		t.Errorf("rebuilt configuration differs:\n%+v\n%+v", cfg, again)
	}
}

func TestBuild_SnapshotLookup(t *testing.T) {
	catalog := testCatalog(t)
	snap := catalog.Snapshot()
	if err := catalog.Remove("Default"); err != nil {
		t.Fatal(err)
	}

	if _, err := Build(DefaultRequest("OS-1", "Default"), snap, nil); err != nil {
		t.Errorf("snapshot should still resolve the template: %v", err)
	}
	if _, err := Build(DefaultRequest("OS-1", "Default"), catalog, nil); err == nil {
		t.Error("catalog should no longer resolve the template")
	}
}
