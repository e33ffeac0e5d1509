package session

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/datemate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Get("s1")
	assert.False(t, ok)

	conv := domain.NewConversation("s1", testNow)
	s.Put(conv)
	got, ok := s.Get("s1")
	require.True(t, ok)
	assert.Same(t, conv, got)
	assert.Equal(t, 1, s.Len())

	replacement := domain.NewConversation("s1", testNow)
	s.Put(replacement)
	got, _ = s.Get("s1")
	assert.Same(t, replacement, got)
	assert.Equal(t, 1, s.Len())

	s.Put(domain.NewConversation("s0", testNow))
	assert.Equal(t, []string{"s0", "s1"}, s.IDs())

	s.Delete("s1")
	_, ok = s.Get("s1")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
	s.Delete("never-existed")
}

func TestMemoryStore_LockSerializesSameSession(t *testing.T) {
	s := NewMemoryStore()

	var (
		inside  atomic.Int32
		maxSeen atomic.Int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := s.Lock("same")
			defer unlock()

			n := inside.Add(1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxSeen.Load())
	assert.Zero(t, s.lockCount(), "lock entries are released")
}

func TestMemoryStore_DifferentSessionsDoNotBlock(t *testing.T) {
	s := NewMemoryStore()

	unlockA := s.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := s.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("locking session b blocked on session a")
	}
}

func TestMemoryStore_UnlockIsIdempotent(t *testing.T) {
	s := NewMemoryStore()

	unlock := s.Lock("x")
	unlock()
	unlock()

	unlock = s.Lock("x")
	unlock()
	assert.Zero(t, s.lockCount())
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i%10)
			unlock := s.Lock(id)
			defer unlock()

			conv, ok := s.Get(id)
			if !ok {
				conv = domain.NewConversation(id, testNow)
				s.Put(conv)
			}
			conv.AddTurn(domain.Turn{UserInput: "hi"}, testNow)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, s.Len())
	for _, id := range s.IDs() {
		conv, _ := s.Get(id)
		assert.Len(t, conv.Turns, 5, id)
	}
}
