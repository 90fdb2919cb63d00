package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session is expired")
)

const defaultSessionDuration = 720 * time.Hour // 30 days

type SessionManagerInterface interface {
	CreateSession(userID string, duration time.Duration) (Session, error)
	VerifySession(sessionID string) (Session, error)
	DeleteSession(sessionID string)
	PurgeExpired() int
}

// Session is the server-side record behind every issued token pair.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

func (sm *SessionManager) CreateSession(userID string, duration time.Duration) (Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Session{}, ErrInternalError
	}

	now := sm.now()
	session := Session{
		ID:        id.String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(duration),
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions[session.ID] = session
	return session, nil
}

func (sm *SessionManager) VerifySession(sessionID string) (Session, error) {
	sm.mu.RLock()
	session, exists := sm.sessions[sessionID]
	sm.mu.RUnlock()

	if !exists {
		return Session{}, ErrSessionNotFound
	}
	if sm.now().After(session.ExpiresAt) {
		return Session{}, ErrSessionExpired
	}
	return session, nil
}

func (sm *SessionManager) DeleteSession(sessionID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.sessions, sessionID)
}

// PurgeExpired drops expired sessions and returns how many were removed.
func (sm *SessionManager) PurgeExpired() int {
	now := sm.now()

	sm.mu.Lock()
	defer sm.mu.Unlock()
	removed := 0
	for id, session := range sm.sessions {
		if now.After(session.ExpiresAt) {
			delete(sm.sessions, id)
			removed++
		}
	}
	return removed
}
