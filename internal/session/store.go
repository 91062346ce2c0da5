package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps sessions in memory, keyed by ID, and expires the ones that
// have been idle longer than the TTL.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration

	stop chan struct{}
	once sync.Once
}

// NewStore creates a store and starts its expiry sweep.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Get returns the session with the given ID if it exists and is not expired.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	if time.Since(s.lastSeen) > st.ttl {
		delete(st.sessions, id)
		return nil, false
	}
	s.lastSeen = time.Now()
	return s, true
}

// Create registers a fresh session with a generated ID.
func (st *Store) Create() *Session {
	s := newSession(uuid.New().String())

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return s
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Close stops the expiry sweep.
func (st *Store) Close() {
	st.once.Do(func() { close(st.stop) })
}

func (st *Store) sweep() {
	ticker := time.NewTicker(st.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-st.stop:
			return
		case now := <-ticker.C:
			st.mu.Lock()
			for id, s := range st.sessions {
				if now.Sub(s.lastSeen) > st.ttl {
					delete(st.sessions, id)
				}
			}
			st.mu.Unlock()
		}
	}
}
