package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/ppiankov/factview/internal/session"
	"go.uber.org/zap"
)

// Session is one browser-side conversation with its own controller
type Session struct {
	ID         string
	Controller *session.Controller
	CreatedAt  time.Time
}

// Store keeps sessions in memory. Entries expire after ttl without access.
type Store struct {
	cache     *gocache.Cache
	ttl       time.Duration
	evaluator session.Evaluator
	logger    *zap.Logger

	mu      sync.Mutex
	evicted []func(id string)
}

// NewStore creates a session store
func NewStore(evaluator session.Evaluator, ttl time.Duration, logger *zap.Logger) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	s := &Store{
		cache:     gocache.New(ttl, ttl/2),
		ttl:       ttl,
		evaluator: evaluator,
		logger:    logger,
	}
	s.cache.OnEvicted(func(id string, _ interface{}) {
		s.logger.Debug("session expired", zap.String("session", id))
		s.mu.Lock()
		hooks := s.evicted
		s.mu.Unlock()
		for _, fn := range hooks {
			fn(id)
		}
	})
	return s
}

// OnEvicted registers fn to run whenever a session is removed
func (s *Store) OnEvicted(fn func(id string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evicted = append(s.evicted, fn)
}

// Create starts a new idle session
func (s *Store) Create() *Session {
	sess := &Session{
		ID:         uuid.NewString(),
		Controller: session.NewController(s.evaluator, s.logger),
		CreatedAt:  time.Now().UTC(),
	}
	s.cache.Set(sess.ID, sess, gocache.DefaultExpiration)
	return sess
}

// Get returns a session and extends its lifetime
func (s *Store) Get(id string) (*Session, bool) {
	val, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	sess := val.(*Session)
	s.cache.Set(id, sess, gocache.DefaultExpiration)
	return sess, true
}

// Delete removes a session
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	return s.cache.ItemCount()
}
