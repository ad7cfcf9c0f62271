package template

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muhammadmuzzammil1998/jsonc"
	"gopkg.in/yaml.v2"

	"avaneesh/dnp3-sim/pkg/types"
)

// Catalog file layout, shared by the YAML and JSON forms:
//
//	templates:
//	  - name: feeder
//	    points:
//	      - type: analog_input
//	        start: 0
//	        stop: 9
//	        class: 2
//	        deadband: 0.5
type catalogFile struct {
	Templates []templateFile `yaml:"templates" json:"templates"`
}

type templateFile struct {
	Name   string      `yaml:"name" json:"name"`
	Points []pointFile `yaml:"points" json:"points"`
}

type pointFile struct {
	Type     string  `yaml:"type" json:"type"`
	Start    uint16  `yaml:"start" json:"start"`
	Stop     *uint16 `yaml:"stop" json:"stop"`
	Value    float64 `yaml:"value" json:"value"`
	Online   *bool   `yaml:"online" json:"online"`
	Class    uint8   `yaml:"class" json:"class"`
	Deadband float64 `yaml:"deadband" json:"deadband"`
}

// ParseYAML decodes templates from YAML
func ParseYAML(data []byte) ([]*Template, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse template YAML: %w", err)
	}
	return f.build()
}

// ParseJSON decodes templates from JSON with optional // and /* */ comments
func ParseJSON(data []byte) ([]*Template, error) {
	clean := jsonc.ToJSON(data)
	if !json.Valid(clean) {
		return nil, fmt.Errorf("failed to parse template JSON: invalid syntax")
	}
	var f catalogFile
	if err := json.Unmarshal(clean, &f); err != nil {
		return nil, fmt.Errorf("failed to parse template JSON: %w", err)
	}
	return f.build()
}

// LoadFile reads a template file, choosing the format by extension
// (.yaml/.yml, or .json/.jsonc).
func LoadFile(path string) ([]*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json", ".jsonc":
		return ParseJSON(data)
	}
	return nil, fmt.Errorf("unsupported template file type %q", filepath.Ext(path))
}

// LoadFile adds every template in the file to the catalog as one new
// version. If any template cannot be added the catalog is left unchanged.
func (c *Catalog) LoadFile(path string) (int, error) {
	templates, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	if err := c.NewAll(templates...); err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	c.logger.Info("Loaded %d templates from %s", len(templates), path)
	return len(templates), nil
}

func (f catalogFile) build() ([]*Template, error) {
	out := make([]*Template, 0, len(f.Templates))
	seen := make(map[string]bool, len(f.Templates))
	for i, tf := range f.Templates {
		points := make([]PointDefinition, 0, len(tf.Points))
		for j, pf := range tf.Points {
			p, err := pf.definition()
			if err != nil {
				return nil, fmt.Errorf("templates[%d].points[%d]: %w", i, j, err)
			}
			points = append(points, p)
		}

		t, err := New(tf.Name, points...)
		if err != nil {
			return nil, fmt.Errorf("templates[%d]: %w", i, err)
		}
		if seen[t.Name()] {
			return nil, fmt.Errorf("templates[%d]: %w: %s", i, ErrTemplateExists, t.Name())
		}
		seen[t.Name()] = true
		out = append(out, t)
	}
	return out, nil
}

func (pf pointFile) definition() (PointDefinition, error) {
	pt, err := types.ParsePointType(pf.Type)
	if err != nil {
		return PointDefinition{}, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}

	stop := pf.Start
	if pf.Stop != nil {
		stop = *pf.Stop
	}
	online := true
	if pf.Online != nil {
		online = *pf.Online
	}

	return PointDefinition{
		Type:     pt,
		Start:    pf.Start,
		Stop:     stop,
		Value:    pf.Value,
		Online:   online,
		Class:    pf.Class,
		Deadband: pf.Deadband,
	}, nil
}
