package session

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbongpt/internal/clarify"
	"carbongpt/internal/domain"
	"carbongpt/internal/retriever"
)

// Manager scopes sessions per conversation. Callers address a session by
// identifier; nothing here is process-wide dialogue state.
type Manager struct {
	gate        *clarify.Gate
	retriever   *retriever.Retriever
	generator   domain.Generator
	temperature float64
	log         *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager wires the shared collaborators for all sessions it opens.
func NewManager(gate *clarify.Gate, r *retriever.Retriever, g domain.Generator, temperature float64, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		gate:        gate,
		retriever:   r,
		generator:   g,
		temperature: temperature,
		log:         log,
		sessions:    make(map[string]*Session),
	}
}

// Open returns the session registered under id, creating it on first use.
// An empty id mints a new conversation with a generated identifier.
func (m *Manager) Open(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := &Session{
		id:          id,
		gate:        m.gate,
		retriever:   m.retriever,
		generator:   m.generator,
		temperature: m.temperature,
		log:         m.log,
	}
	m.sessions[id] = s
	return s
}

// Close forgets the session with the given id.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}
