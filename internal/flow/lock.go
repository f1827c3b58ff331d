package flow

import (
	"sync"
	"sync/atomic"
)

// actionLock provides non-blocking lock semantics using atomic operations
type actionLock struct {
	state atomic.Int32 // 0 = unlocked, 1 = locked
}

// TryAcquire attempts to acquire the lock without blocking.
// Returns true if the lock was successfully acquired, false otherwise.
func (l *actionLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release releases the lock.
// Must only be called by the goroutine that successfully acquired the lock.
func (l *actionLock) Release() {
	l.state.Store(0)
}

// userLocks holds one actionLock per user so a user's actions never overlap.
// A double-pressed payment button would otherwise create two orders.
type userLocks struct {
	locks sync.Map // int64 -> *actionLock
}

func (u *userLocks) get(userID int64) *actionLock {
	l, _ := u.locks.LoadOrStore(userID, &actionLock{})
	return l.(*actionLock)
}
