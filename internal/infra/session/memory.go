package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"vitrine-engine/internal/domain/cart"
	"vitrine-engine/internal/domain/order"
)

const (
	// IdleTTL is how long an untouched session survives before cleanup.
	IdleTTL = 2 * time.Hour

	// CleanupInterval is how often the background cleanup runs.
	CleanupInterval = 5 * time.Minute
)

// Session is the per-customer engine state: the cart and the settlement
// state machine. There are no ambient globals; every operation reaches the
// session through the store.
type Session struct {
	ID    uuid.UUID
	Cart  *cart.Cart
	State order.SettlementState

	lastSeen time.Time
}

// MemoryStore keeps sessions in memory. Mutations run inside Update under
// the store lock, which is what makes cart operations and the busy-flag
// check-and-set atomic with respect to each other.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		sessions:    make(map[uuid.UUID]*Session),
		stopCleanup: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupLoop()

	return s
}

// Update runs fn against the session under the store lock, creating the
// session on first touch. fn must not block on I/O; network calls belong
// between Update calls.
func (s *MemoryStore) Update(id uuid.UUID, fn func(sess *Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{
			ID:    id,
			Cart:  cart.New(),
			State: order.StateIdle,
		}
		s.sessions[id] = sess
	}
	sess.lastSeen = time.Now()

	return fn(sess)
}

// Drop removes a session outright; no-op when absent.
func (s *MemoryStore) Drop(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Close stops the cleanup loop and waits for it to finish.
func (s *MemoryStore) Close() {
	close(s.stopCleanup)
	s.wg.Wait()
}

func (s *MemoryStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.expireIdle()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) expireIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-IdleTTL)
	for id, sess := range s.sessions {
		// A session mid-submission is never reaped, however stale.
		if sess.State.Busy() {
			continue
		}
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}
