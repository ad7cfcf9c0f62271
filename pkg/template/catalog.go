package template

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"avaneesh/dnp3-sim/pkg/internal/logger"
)

// Catalog errors
var (
	ErrTemplateExists   = errors.New("template already exists")
	ErrTemplateNotFound = errors.New("template not found")
	ErrNilTemplate      = errors.New("nil template")
)

// Snapshot is an immutable point-in-time view of a catalog
type Snapshot struct {
	version   uint64
	templates map[string]*Template
}

// Version increases by one with every catalog mutation
func (s *Snapshot) Version() uint64 {
	if s == nil {
		return 0
	}
	return s.version
}

// Template looks up a template by exact name. A nil snapshot holds no templates.
func (s *Snapshot) Template(name string) (*Template, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.templates[name]
	return t, ok
}

// Names returns the template names in sorted order
func (s *Snapshot) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of templates
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.templates)
}

// Catalog is the process-wide, shared set of templates. Writers are
// serialized; readers take lock-free snapshots.
type Catalog struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
	logger  logger.Logger
}

// NewCatalog creates an empty catalog
func NewCatalog(log logger.Logger) *Catalog {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	c := &Catalog{logger: logger.WithComponent(log, "Catalog")}
	c.current.Store(&Snapshot{templates: map[string]*Template{}})
	return c
}

// Snapshot returns the current immutable view
func (c *Catalog) Snapshot() *Snapshot {
	return c.current.Load()
}

// Template looks the name up in the current snapshot
func (c *Catalog) Template(name string) (*Template, bool) {
	if c == nil {
		return nil, false
	}
	return c.Snapshot().Template(name)
}

// mutate copies the current template map, applies fn and publishes the
// result as the next snapshot. fn runs with the writer lock held.
func (c *Catalog) mutate(fn func(templates map[string]*Template) error) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.current.Load()
	next := make(map[string]*Template, len(old.templates)+1)
	for k, v := range old.templates {
		next[k] = v
	}
	if err := fn(next); err != nil {
		return old, err
	}

	snap := &Snapshot{version: old.version + 1, templates: next}
	c.current.Store(snap)
	return snap, nil
}

// New adds a template under its own name
func (c *Catalog) New(t *Template) error {
	return c.NewAll(t)
}

// NewAll adds every template in one mutation: either all of them are
// published in a single new snapshot or none is.
func (c *Catalog) NewAll(templates ...*Template) error {
	snap, err := c.mutate(func(m map[string]*Template) error {
		for _, t := range templates {
			if t == nil {
				return ErrNilTemplate
			}
			if _, exists := m[t.Name()]; exists {
				return fmt.Errorf("%w: %s", ErrTemplateExists, t.Name())
			}
			m[t.Name()] = t
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, t := range templates {
		c.logger.Info("Added template %s (%d definitions, version %d)", t.Name(), len(t.points), snap.Version())
	}
	return nil
}

// Edit replaces the named template's point definitions. fn receives a copy
// of the current definitions and returns the new set, which is validated
// before it is published.
func (c *Catalog) Edit(name string, fn func(points []PointDefinition) ([]PointDefinition, error)) error {
	snap, err := c.mutate(func(m map[string]*Template) error {
		old, ok := m[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		points, err := fn(old.Points())
		if err != nil {
			return err
		}
		t, err := New(name, points...)
		if err != nil {
			return err
		}
		m[name] = t
		return nil
	})
	if err != nil {
		c.logger.Warn("Edit of template %s rejected: %v", name, err)
		return err
	}
	c.logger.Info("Edited template %s (version %d)", name, snap.Version())
	return nil
}

// Remove deletes the named template
func (c *Catalog) Remove(name string) error {
	_, err := c.mutate(func(m map[string]*Template) error {
		if _, ok := m[name]; !ok {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		delete(m, name)
		return nil
	})
	if err != nil {
		return err
	}
	c.logger.Info("Removed template %s", name)
	return nil
}
