package cart

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

type entry struct {
	cart     *Cart
	lastSeen time.Time
}

// Store memetakan token sesi ke cart-nya. Cart hidup selama sesi browsing
// saja: tidak pernah dipersist, dan yang lama dibersihkan periodik.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Create membuat sesi baru dengan token acak.
func (s *Store) Create() (string, *Cart) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	token := hex.EncodeToString(buf)

	c := &Cart{}
	s.mu.Lock()
	s.sessions[token] = &entry{cart: c, lastSeen: time.Now()}
	s.mu.Unlock()
	return token, c
}

// Get mengembalikan cart milik token dan memperbarui lastSeen.
func (s *Store) Get(token string) (*Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.cart, true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// sweep membuang sesi yang sudah melewati TTL.
func (s *Store) sweep() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-s.ttl)
			s.mu.Lock()
			for token, e := range s.sessions {
				if e.lastSeen.Before(cutoff) {
					delete(s.sessions, token)
				}
			}
			s.mu.Unlock()
		case <-s.stop:
			return
		}
	}
}
