package outstation

import (
	"errors"
	"maps"
	"slices"

	"github.com/google/uuid"

	"avaneesh/dnp3-sim/pkg/link"
	"avaneesh/dnp3-sim/pkg/types"
)

// ErrSessionClosed is returned by a session after Cancel or a successful Build
var ErrSessionClosed = errors.New("session closed")

// DefaultID is the identifier a new add session starts with
const DefaultID = "outstation"

// Session holds the sections of one "Add Outstation" or "Edit Outstation"
// form while it is open. It is owned by a single editor and is not safe
// for concurrent use.
type Session struct {
	id         string
	originalID string
	req        Request
	closed     bool
}

// NewSession opens an add session with every section at its defaults and
// the identifier set to DefaultID
func NewSession(templateName string) *Session {
	return &Session{
		id:  uuid.NewString(),
		req: DefaultRequest(DefaultID, templateName),
	}
}

// EditSession opens a session seeded from an existing configuration. The
// configuration's own identifier is not treated as a duplicate when the
// session is built.
func EditSession(cfg *Configuration) *Session {
	return &Session{
		id:         uuid.NewString(),
		originalID: cfg.ID(),
		req:        cfg.Request(),
	}
}

// ID returns the session's unique identifier
func (s *Session) ID() string {
	return s.id
}

// OriginalID returns the identifier being edited, or "" for an add session
func (s *Session) OriginalID() string {
	return s.originalID
}

// IsEdit reports whether the session edits an existing outstation
func (s *Session) IsEdit() bool {
	return s.originalID != ""
}

// Closed reports whether the session was cancelled or committed
func (s *Session) Closed() bool {
	return s.closed
}

// Request returns a copy of the current raw input
func (s *Session) Request() Request {
	r := s.req
	r.StaticDefaults = maps.Clone(s.req.StaticDefaults)
	r.EventDefaults = maps.Clone(s.req.EventDefaults)
	return r
}

// SetID sets the outstation identifier
func (s *Session) SetID(id string) {
	s.req.ID = id
}

// SetLink replaces the link configuration
func (s *Session) SetLink(cfg link.Config) {
	s.req.Link = cfg
}

// SetApplication replaces the raw application layer input
func (s *Session) SetApplication(in ApplicationInput) {
	s.req.Application = in
}

// SetStaticDefaults replaces the static defaults mapping with a copy of m
func (s *Session) SetStaticDefaults(m map[types.PointType]uint8) {
	s.req.StaticDefaults = maps.Clone(m)
}

// SetEventDefaults replaces the event defaults mapping with a copy of m
func (s *Session) SetEventDefaults(m map[types.PointType]uint8) {
	s.req.EventDefaults = maps.Clone(m)
}

// SetTemplate selects the database template by name
func (s *Session) SetTemplate(name string) {
	s.req.Template = name
}

// Build validates the session's input. On success the session closes; on
// failure it stays open so the input can be corrected.
func (s *Session) Build(b *Builder, templates TemplateLookup, existingIDs []string) (*Configuration, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if b == nil {
		b = NewBuilder(nil)
	}

	ids := existingIDs
	if s.IsEdit() {
		ids = slices.DeleteFunc(slices.Clone(existingIDs), func(id string) bool {
			return id == s.originalID
		})
	}

	cfg, err := b.Build(s.Request(), templates, ids)
	if err != nil {
		return nil, err
	}
	s.closed = true
	return cfg, nil
}

// Cancel discards the session's input
func (s *Session) Cancel() {
	s.req = Request{}
	s.closed = true
}
