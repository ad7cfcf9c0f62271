package dnp3

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"avaneesh/dnp3-sim/pkg/internal/logger"
	"avaneesh/dnp3-sim/pkg/outstation"
	"avaneesh/dnp3-sim/pkg/template"
)

// ErrOutstationNotFound is returned for an identifier with no committed configuration
var ErrOutstationNotFound = errors.New("outstation not found")

// Manager is the root object of the simulator host.
// It owns the template catalog and the committed outstation configurations.
type Manager struct {
	catalog     *template.Catalog
	builder     *outstation.Builder
	outstations map[string]*outstation.Configuration
	mu          sync.RWMutex
	logger      logger.Logger
}

// NewManager creates a new manager using the default logger
func NewManager() *Manager {
	return NewManagerWithLogger(logger.GetDefault())
}

// NewManagerWithLogger creates a new manager with custom logger
func NewManagerWithLogger(log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Manager{
		catalog:     template.NewCatalog(log),
		builder:     outstation.NewBuilder(log),
		outstations: make(map[string]*outstation.Configuration),
		logger:      logger.WithComponent(log, "Manager"),
	}
}

// Catalog returns the template catalog outstations are built against
func (m *Manager) Catalog() *template.Catalog {
	return m.catalog
}

// NewSession opens an add session with every section at its defaults
func (m *Manager) NewSession(templateName string) *outstation.Session {
	return outstation.NewSession(templateName)
}

// EditSession opens a session for a committed outstation
func (m *Manager) EditSession(id string) (*outstation.Session, error) {
	cfg, ok := m.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutstationNotFound, id)
	}
	return outstation.EditSession(cfg), nil
}

// Commit builds a session against the current catalog and stores the
// result. Building and storing happen under one lock, so two sessions can
// never commit the same identifier.
func (m *Manager) Commit(s *outstation.Session) (*outstation.Configuration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.IsEdit() {
		if _, exists := m.outstations[s.OriginalID()]; !exists {
			return nil, fmt.Errorf("%w: %s", ErrOutstationNotFound, s.OriginalID())
		}
	}

	cfg, err := s.Build(m.builder, m.catalog.Snapshot(), m.idsLocked())
	if err != nil {
		return nil, err
	}

	if s.IsEdit() {
		delete(m.outstations, s.OriginalID())
	}
	m.outstations[cfg.ID()] = cfg
	m.logger.Info("Committed outstation %s", cfg.ID())
	return cfg, nil
}

// Add builds req and stores it as a new outstation
func (m *Manager) Add(req outstation.Request) (*outstation.Configuration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, err := m.builder.Build(req, m.catalog.Snapshot(), m.idsLocked())
	if err != nil {
		return nil, err
	}

	m.outstations[cfg.ID()] = cfg
	m.logger.Info("Added outstation %s", cfg.ID())
	return cfg, nil
}

// Update rebuilds the outstation id from req. req may rename it to any
// identifier not used by another outstation.
func (m *Manager) Update(id string, req outstation.Request) (*outstation.Configuration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.outstations[id]; !exists {
		return nil, fmt.Errorf("%w: %s", ErrOutstationNotFound, id)
	}

	others := slices.DeleteFunc(m.idsLocked(), func(existing string) bool {
		return existing == id
	})
	cfg, err := m.builder.Build(req, m.catalog.Snapshot(), others)
	if err != nil {
		return nil, err
	}

	delete(m.outstations, id)
	m.outstations[cfg.ID()] = cfg
	if cfg.ID() != id {
		m.logger.Info("Updated outstation %s (renamed to %s)", id, cfg.ID())
	} else {
		m.logger.Info("Updated outstation %s", id)
	}
	return cfg, nil
}

// Remove removes an outstation
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.outstations[id]; !exists {
		return fmt.Errorf("%w: %s", ErrOutstationNotFound, id)
	}

	delete(m.outstations, id)
	m.logger.Info("Removed outstation %s", id)
	return nil
}

// Get returns an outstation configuration by ID
func (m *Manager) Get(id string) (*outstation.Configuration, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg, exists := m.outstations[id]
	return cfg, exists
}

// IDs returns the committed identifiers in sorted order
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.idsLocked()
}

func (m *Manager) idsLocked() []string {
	var ids []string
	for id := range m.outstations {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Count returns the number of outstations
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.outstations)
}

// Shutdown removes every outstation
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Shutting down with %d outstations", len(m.outstations))
	m.outstations = make(map[string]*outstation.Configuration)
}
