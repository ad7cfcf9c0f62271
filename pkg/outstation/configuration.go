package outstation

import (
	"avaneesh/dnp3-sim/pkg/link"
	"avaneesh/dnp3-sim/pkg/template"
	"avaneesh/dnp3-sim/pkg/types"
)

// Request is the complete raw input for one outstation: the identifier,
// the four independently edited sections and the selected template name.
type Request struct {
	ID             string
	Link           link.Config
	Application    ApplicationInput
	StaticDefaults map[types.PointType]uint8
	EventDefaults  map[types.PointType]uint8
	Template       string
}

// DefaultRequest returns a request in which every section holds its
// defaults, as a freshly opened "Add Outstation" form does.
func DefaultRequest(id, templateName string) Request {
	return Request{
		ID:             id,
		Link:           link.DefaultConfig(),
		StaticDefaults: StackDefaults(DefaultsStatic),
		EventDefaults:  StackDefaults(DefaultsEvent),
		Template:       templateName,
	}
}

// Configuration is a validated outstation configuration. It can only be
// produced by a successful Build and is read-only afterwards.
type Configuration struct {
	id             string
	link           link.Config
	application    ApplicationConfig
	staticDefaults ResponseDefaults
	eventDefaults  ResponseDefaults
	template       *template.Template
}

// ID returns the outstation's unique identifier
func (c *Configuration) ID() string {
	return c.id
}

// Link returns the normalized link configuration
func (c *Configuration) Link() link.Config {
	return c.link
}

// Application returns the application layer configuration
func (c *Configuration) Application() ApplicationConfig {
	return c.application
}

// StaticDefaults returns the default static response variations
func (c *Configuration) StaticDefaults() ResponseDefaults {
	return c.staticDefaults
}

// EventDefaults returns the default event response variations
func (c *Configuration) EventDefaults() ResponseDefaults {
	return c.eventDefaults
}

// Template returns the database template resolved at build time
func (c *Configuration) Template() *template.Template {
	return c.template
}

// Request converts the configuration back into raw input so it can be
// edited and rebuilt.
func (c *Configuration) Request() Request {
	return Request{
		ID:             c.id,
		Link:           c.link,
		Application:    c.application.Input(),
		StaticDefaults: c.staticDefaults.Map(),
		EventDefaults:  c.eventDefaults.Map(),
		Template:       c.template.Name(),
	}
}
