package services

import (
	"sync"
	"time"

	"github.com/dihora04/djbook.in-sub000/internal/domain/entities"
)

// keyedMutex serializes work per key. The booking lifecycle locks on
// (djProfileID, day) so two concurrent requests for the same DJ and date
// cannot both pass the availability check, while requests for different
// dates proceed in parallel.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{
		locks: make(map[string]*keyedLock),
	}
}

func dateKey(djProfileID string, day time.Time) string {
	return djProfileID + "|" + entities.DayOf(day).Format("2006-01-02")
}

// Lock acquires the lock for key, blocking until it is free.
func (m *keyedMutex) Lock(key string) {
	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &keyedLock{}
		m.locks[key] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
}

// Unlock releases the lock for key and drops it once no goroutine waits.
func (m *keyedMutex) Unlock(key string) {
	m.mu.Lock()
	l := m.locks[key]
	l.refs--
	if l.refs == 0 {
		delete(m.locks, key)
	}
	m.mu.Unlock()

	l.mu.Unlock()
}
