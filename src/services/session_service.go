package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/lojasmimi/trocas/backend/src/ledger"
	"github.com/lojasmimi/trocas/backend/src/logger"
)

const sessionCleanupInterval = 30 * time.Minute

// Session is one operator's working state: a fresh ledger plus a mutex the
// handlers hold while touching it. The ledger itself carries no locking; the
// session serializes access so it stays single-writer.
type Session struct {
	ID     string
	Mu     sync.Mutex
	Ledger *ledger.Ledger
}

// SessionStore keeps operator sessions in memory with a TTL. A session that
// expires simply disappears together with its ledger; nothing is persisted.
type SessionStore struct {
	sessions *cache.Cache
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: cache.New(ttl, sessionCleanupInterval),
		ttl:      ttl,
	}
}

// Create starts a new session with an empty ledger.
func (s *SessionStore) Create() *Session {
	session := &Session{
		ID:     uuid.NewString(),
		Ledger: ledger.New(),
	}
	s.sessions.Set(session.ID, session, cache.DefaultExpiration)
	logger.L.Info("Operator session created", "sessionID", session.ID)
	return session
}

// Get returns the session for the given ID, refreshing its TTL so an active
// operator is not expired mid-shift.
func (s *SessionStore) Get(id string) (*Session, bool) {
	value, found := s.sessions.Get(id)
	if !found {
		return nil, false
	}
	session := value.(*Session)
	s.sessions.Set(id, session, cache.DefaultExpiration)
	return session, true
}
