package telegram

import (
	"sync"
	"time"

	"github.com/kitbuilder587/wikiseek/internal/controller"
)

// session pairs one chat's view handle with the controller driving it.
// All per-chat state is ephemeral; when a session ages out the next
// message simply starts a fresh one.
type session struct {
	view *chatView
	ctrl *controller.Controller
}

type sessionEntry struct {
	sess      *session
	expiresAt time.Time
}

// sessionStore is an in-memory store with sliding TTL eviction.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*sessionEntry
	ttl      time.Duration
	stopChan chan struct{}
	stopped  bool
}

func newSessionStore(ttl time.Duration) *sessionStore {
	if ttl <= 0 {
		ttl = time.Hour
	}

	s := &sessionStore{
		sessions: make(map[int64]*sessionEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}
	go s.cleanup()
	return s
}

// get returns the live session for a chat and slides its expiry.
func (s *sessionStore) get(chatID int64) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[chatID]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	entry.expiresAt = time.Now().Add(s.ttl)
	return entry.sess, true
}

// getOrCreate returns the live session for a chat, building one with
// create while still holding the store lock, so concurrent first
// messages from the same chat end up sharing a single session.
func (s *sessionStore) getOrCreate(chatID int64, create func() *session) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if entry, ok := s.sessions[chatID]; ok && now.Before(entry.expiresAt) {
		entry.expiresAt = now.Add(s.ttl)
		return entry.sess
	}

	sess := create()
	s.sessions[chatID] = &sessionEntry{sess: sess, expiresAt: now.Add(s.ttl)}
	return sess
}

func (s *sessionStore) put(chatID int64, sess *session) {
	s.mu.Lock()
	s.sessions[chatID] = &sessionEntry{sess: sess, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *sessionStore) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.stopped = true
		close(s.stopChan)
	}
}

func (s *sessionStore) cleanup() {
	tick := time.NewTicker(5 * time.Minute)
	defer tick.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-tick.C:
			now := time.Now()
			s.mu.Lock()
			for chatID, entry := range s.sessions {
				if now.After(entry.expiresAt) {
					delete(s.sessions, chatID)
				}
			}
			s.mu.Unlock()
		}
	}
}
