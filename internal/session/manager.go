package session

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mind-engage/quizsheet/internal/quiz"
)

var ErrNotFound = errors.New("session not found")

// Retention is how long a session stays readable after its clock ran out.
const Retention = 10 * time.Minute

// Manager keeps active sessions in memory.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
	rng      *rand.Rand
}

func NewManager() *Manager {
	return &Manager{
		sessions: map[string]*Session{},
		now:      time.Now,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *Manager) Start(player, topicID string, questions []quiz.Question, randomize bool) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rng *rand.Rand
	if randomize {
		rng = m.rng
	}
	now := m.now()
	m.sweep(now)
	s := New(uuid.NewString(), player, topicID, questions, rng, now)
	m.sessions[s.ID] = s
	return s
}

// With runs fn on the session under the manager lock after syncing its
// clock. Sessions belong to one player; other players get ErrNotFound.
func (m *Manager) With(id, player string, fn func(*Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	s, ok := m.sessions[id]
	if ok && expired(s, now) {
		delete(m.sessions, id)
		ok = false
	}
	if !ok || s.Player != player {
		return ErrNotFound
	}
	s.Advance(now)
	return fn(s)
}

// Len is the number of sessions held.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// sweep drops every expired session. Callers hold m.mu.
func (m *Manager) sweep(now time.Time) {
	for id, s := range m.sessions {
		if expired(s, now) {
			delete(m.sessions, id)
		}
	}
}

func expired(s *Session, now time.Time) bool {
	return now.Sub(s.StartedAt) > TimeLimit*time.Second+Retention
}
