package store

import (
	"sync"
	"time"
)

// Message is one turn of a session transcript.
type Message struct {
	Role    string
	Content string
}

// MemoryStore keeps per-session state: the transcript, OAuth state for
// CSRF protection, the authenticated Google account, and any pending
// intent awaiting a clarifying answer.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string][]Message
	maxMessages int
	// OAuth state mapping per session (for CSRF protection)
	oauthStateBySession map[string]string
	// Reverse mapping: state -> sessionID to resolve callbacks
	sessionByOAuthState map[string]string
	// Google account email associated with session after auth
	accountBySession map[string]string
	// Pending intent awaiting a follow-up answer (e.g. "Who would you
	// like to call?")
	pendingBySession map[string]pendingIntent
}

// NewMemoryStore returns a store keeping at most maxMessages per session.
func NewMemoryStore(maxMessages int) *MemoryStore {
	return &MemoryStore{
		sessions:            make(map[string][]Message),
		maxMessages:         maxMessages,
		oauthStateBySession: make(map[string]string),
		sessionByOAuthState: make(map[string]string),
		accountBySession:    make(map[string]string),
		pendingBySession:    make(map[string]pendingIntent),
	}
}

func (m *MemoryStore) Append(sessionID string, msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sessionID] = append(m.sessions[sessionID], msg)
	m.trimLocked(sessionID)
}

func (m *MemoryStore) Get(sessionID string) []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := m.sessions[sessionID]
	copyMsgs := make([]Message, len(msgs))
	copy(copyMsgs, msgs)
	return copyMsgs
}

func (m *MemoryStore) trimLocked(sessionID string) {
	if m.maxMessages <= 0 {
		return
	}
	msgs := m.sessions[sessionID]
	if len(msgs) > m.maxMessages {
		m.sessions[sessionID] = msgs[len(msgs)-m.maxMessages:]
	}
}

// OAuth helpers

func (m *MemoryStore) SetOAuthState(sessionID, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.oauthStateBySession[sessionID] = state
	m.sessionByOAuthState[state] = sessionID
}

func (m *MemoryStore) GetOAuthState(sessionID string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.oauthStateBySession[sessionID]
}

func (m *MemoryStore) ClearOAuthState(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.oauthStateBySession[sessionID]; ok {
		delete(m.sessionByOAuthState, st)
		delete(m.oauthStateBySession, sessionID)
	}
}

func (m *MemoryStore) GetSessionByOAuthState(state string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessionByOAuthState[state]
}

func (m *MemoryStore) SetAccount(sessionID, email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accountBySession[sessionID] = email
}

func (m *MemoryStore) GetAccount(sessionID string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accountBySession[sessionID]
}

// pendingTTL bounds how long a clarifying question stays open.
var pendingTTL = 7 * time.Minute

type pendingIntent struct {
	Kind      string
	UpdatedAt time.Time
}

// SetPendingIntent records that the session owes an answer to a
// clarifying question for the given intent kind.
func (m *MemoryStore) SetPendingIntent(sessionID, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingBySession[sessionID] = pendingIntent{Kind: kind, UpdatedAt: time.Now()}
}

// GetPendingIntent returns the pending intent kind if within TTL.
func (m *MemoryStore) GetPendingIntent(sessionID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pendingBySession[sessionID]
	if !ok {
		return "", false
	}
	if time.Since(p.UpdatedAt) > pendingTTL {
		delete(m.pendingBySession, sessionID)
		return "", false
	}
	return p.Kind, true
}

// ClearPendingIntent removes any pending intent for the session.
func (m *MemoryStore) ClearPendingIntent(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pendingBySession, sessionID)
}
