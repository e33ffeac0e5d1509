// Package session keeps conversations in process memory, keyed by an opaque
// session id.
package session

import (
	"sort"
	"sync"

	"github.com/alexanderramin/datemate/internal/domain"
)

// Store holds one conversation per session id. Lock serializes turns for a
// single session; distinct sessions never block each other.
type Store interface {
	Get(id string) (*domain.Conversation, bool)
	Put(conv *domain.Conversation)
	Delete(id string)
	Lock(id string) (unlock func())
	Len() int
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// MemoryStore is the in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	convs map[string]*domain.Conversation

	locksMu sync.Mutex
	locks   map[string]*lockEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		convs: make(map[string]*domain.Conversation),
		locks: make(map[string]*lockEntry),
	}
}

func (s *MemoryStore) Get(id string) (*domain.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.convs[id]
	return c, ok
}

// Put stores conv under its SessionID, replacing any previous one.
func (s *MemoryStore) Put(conv *domain.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.convs[conv.SessionID] = conv
}

func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.convs, id)
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.convs)
}

// IDs returns the stored session ids in sorted order.
func (s *MemoryStore) IDs() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.convs))
	for id := range s.convs {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Lock blocks until the caller holds the session's turn lock. The returned
// func releases it and must be called exactly once.
func (s *MemoryStore) Lock(id string) func() {
	s.locksMu.Lock()
	e, ok := s.locks[id]
	if !ok {
		e = &lockEntry{}
		s.locks[id] = e
	}
	e.refs++
	s.locksMu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()
			s.locksMu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(s.locks, id)
			}
			s.locksMu.Unlock()
		})
	}
}

// lockCount reports how many session locks are live.
func (s *MemoryStore) lockCount() int {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	return len(s.locks)
}
