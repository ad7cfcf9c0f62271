package outstation

import (
	"strings"

	"avaneesh/dnp3-sim/pkg/field"
	"avaneesh/dnp3-sim/pkg/internal/logger"
	"avaneesh/dnp3-sim/pkg/link"
	"avaneesh/dnp3-sim/pkg/template"
	"avaneesh/dnp3-sim/pkg/types"
)

// Field names reported by the builder itself
const (
	FieldID       = "id"
	FieldTemplate = "databaseTemplate"
)

// TemplateLookup resolves template names. *template.Snapshot and
// *template.Catalog both satisfy it; Build performs exactly one lookup per
// call.
type TemplateLookup interface {
	Template(name string) (*template.Template, bool)
}

// Builder validates requests and assembles outstation configurations
type Builder struct {
	logger logger.Logger
}

// NewBuilder creates a builder. A nil logger disables logging.
func NewBuilder(log logger.Logger) *Builder {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Builder{logger: logger.WithComponent(log, "Builder")}
}

// Build validates req against the template source and the identifiers
// already in use.
//
// Every section is checked on every call. On failure the returned error is
// a field.Errors holding all problems, ordered identifier, link,
// application, static defaults, event defaults, template; no configuration
// is returned.
func (b *Builder) Build(req Request, templates TemplateLookup, existingIDs []string) (*Configuration, error) {
	var errs field.Errors

	id := strings.TrimSpace(req.ID)
	errs.Append(checkIdentifier(id, existingIDs))

	linkCfg, linkErrs := link.Check(req.Link)
	errs.Append(linkErrs)

	appCfg, appErrs := NewApplicationConfig(req.Application)
	errs.Append(appErrs)

	supported := types.AllPointTypes()
	staticDefaults, staticErrs := NewResponseDefaults(DefaultsStatic, req.StaticDefaults, supported)
	errs.Append(staticErrs)
	eventDefaults, eventErrs := NewResponseDefaults(DefaultsEvent, req.EventDefaults, supported)
	errs.Append(eventErrs)

	tpl, tplErr := resolveTemplate(req.Template, templates)
	errs.Add(tplErr)

	if len(errs) > 0 {
		b.logger.Warn("Outstation %q rejected with %d errors", id, len(errs))
		for _, e := range errs {
			b.logger.Debug("  %v", e)
		}
		return nil, errs
	}

	b.logger.Info("Built outstation %q (template %s, local=%d remote=%d)",
		id, tpl.Name(), linkCfg.LocalAddress, linkCfg.RemoteAddress)

	return &Configuration{
		id:             id,
		link:           linkCfg,
		application:    appCfg,
		staticDefaults: staticDefaults,
		eventDefaults:  eventDefaults,
		template:       tpl,
	}, nil
}

// Build validates req with a builder that does not log
func Build(req Request, templates TemplateLookup, existingIDs []string) (*Configuration, error) {
	return NewBuilder(nil).Build(req, templates, existingIDs)
}

func checkIdentifier(id string, existingIDs []string) field.Errors {
	var errs field.Errors
	if id == "" {
		errs.Add(field.EmptyIdentifier(FieldID))
	} else {
		for _, existing := range existingIDs {
			if existing == id {
				errs.Add(field.DuplicateIdentifier(FieldID, id))
				break
			}
		}
	}
	return errs.InSection(SectionIdentifier)
}

func resolveTemplate(name string, templates TemplateLookup) (*template.Template, *field.Error) {
	var (
		tpl *template.Template
		ok  bool
	)
	if templates != nil && name != "" {
		tpl, ok = templates.Template(name)
	}
	if !ok {
		e := field.TemplateNotFound(FieldTemplate, name)
		e.Section = SectionTemplate
		return nil, e
	}
	return tpl, nil
}
