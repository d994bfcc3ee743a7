package session

import (
	"errors"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultLimit is the number of live sessions kept when no limit is given.
const DefaultLimit = 1024

// ErrNotFound is returned for an unknown or evicted session id.
var ErrNotFound = errors.New("session not found")

// Manager owns the live sessions.
//
// Thread-safety: Manager is safe for concurrent use; the underlying cache
// is internally locked.
type Manager struct {
	cache  *lru.Cache[string, *Session]
	ids    IDGenerator
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithIDGenerator sets the session id source. Defaults to UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(m *Manager) { m.ids = g }
}

// WithLogger sets the logger used to report evictions.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// NewManager creates a manager holding at most limit sessions.
// A non-positive limit selects DefaultLimit.
func NewManager(limit int, opts ...Option) (*Manager, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	m := &Manager{ids: UUIDv7Generator{}, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}

	cache, err := lru.NewWithEvict(limit, func(id string, _ *Session) {
		m.logger.Debug("session evicted", "session", id)
	})
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	m.cache = cache
	return m, nil
}

// Create starts an empty session. When the manager is full the least
// recently used session is evicted.
func (m *Manager) Create() *Session {
	s := newSession(m.ids.Generate())
	m.cache.Add(s.id, s)
	return s
}

// Get returns the session with id and marks it recently used.
func (m *Manager) Get(id string) (*Session, error) {
	s, ok := m.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Delete ends a session. It reports whether the session existed.
func (m *Manager) Delete(id string) bool {
	return m.cache.Remove(id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	return m.cache.Len()
}
