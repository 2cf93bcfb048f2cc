package core

import (
	"sync"
	"sync/atomic"
)

// Manager is the ownership token that determines the lifetime of array data.
//
// A Manager counts its holders (Cores and FFT plans). It starts at zero;
// every holder calls Acquire once and Release once. The backing allocation
// is released exactly when the count returns to zero.
//
// A nil Manager is valid everywhere a Manager is accepted and means the
// memory has an independent lifetime.
type Manager interface {
	Acquire()
	Release()
	RefCount() int32
	// IsUnique reports whether the manager is the sole owner of its memory,
	// i.e. the memory cannot be reached except through arrays it manages.
	IsUnique() bool
}

// refCount is the shared counting logic of the concrete managers.
type refCount struct {
	count atomic.Int32
	once  sync.Once
}

func (rc *refCount) acquire() {
	rc.count.Add(1)
}

// release decrements the count and runs free when it reaches zero.
// free runs at most once.
func (rc *refCount) release(free func()) {
	if rc.count.Add(-1) == 0 {
		rc.once.Do(free)
	}
}

// SimpleManager owns a Go slice allocated by Allocate.
type SimpleManager[T any] struct {
	refCount
	mu   sync.Mutex // For safe deallocation
	data []T
}

// Allocate creates a SimpleManager owning a new slice of n elements.
// The returned slice is nil when n <= 0; arrays built on it are empty.
func Allocate[T any](n int) (*SimpleManager[T], []T) {
	m := &SimpleManager[T]{}
	if n > 0 {
		m.data = make([]T, n)
	}
	return m, m.data
}

// Acquire increments the reference count.
func (m *SimpleManager[T]) Acquire() { m.acquire() }

// Release decrements the reference count and drops the slice at zero.
func (m *SimpleManager[T]) Release() {
	m.release(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.data = nil
	})
}

// RefCount returns the current reference count.
func (m *SimpleManager[T]) RefCount() int32 { return m.count.Load() }

// IsUnique returns true; the slice is only reachable through managed arrays.
func (m *SimpleManager[T]) IsUnique() bool { return true }

// Released reports whether the backing slice has been dropped.
func (m *SimpleManager[T]) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data == nil
}

// ExternalManager keeps an externally owned object alive on behalf of arrays
// viewing its memory.
type ExternalManager struct {
	refCount
	owner     any
	onRelease func()
}

// NewExternal creates a Manager for memory owned by owner.
// release, if not nil, is called exactly once when the last holder lets go.
func NewExternal(owner any, release func()) *ExternalManager {
	return &ExternalManager{owner: owner, onRelease: release}
}

// Owner returns the object passed to NewExternal.
func (m *ExternalManager) Owner() any { return m.owner }

// Acquire increments the reference count.
func (m *ExternalManager) Acquire() { m.acquire() }

// Release decrements the reference count and calls the release hook at zero.
func (m *ExternalManager) Release() {
	m.release(func() {
		if m.onRelease != nil {
			m.onRelease()
		}
		m.owner = nil
	})
}

// RefCount returns the current reference count.
func (m *ExternalManager) RefCount() int32 { return m.count.Load() }

// IsUnique returns false; the owner may hand out the memory elsewhere.
func (m *ExternalManager) IsUnique() bool { return false }

func acquireManager(m Manager) {
	if m != nil {
		m.Acquire()
	}
}

func releaseManager(m Manager) {
	if m != nil {
		m.Release()
	}
}
