// Package rwspin provides a spinning multiple-reader, single-writer lock.
//
// It is intended for data that is read on a hot path and written rarely, such
// as an interning table that stops growing after warm-up. Waiters yield the
// processor while spinning, but are never queued, so there is no fairness.
package rwspin

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// RWSpinLock is a reader/writer spin lock. The zero value is unlocked.
type RWSpinLock struct {
	readers atomic.Int32
	writer  atomic.Bool
}

var _ sync.Locker = (*RWSpinLock)(nil)

// RLock acquires a read lock, spinning while a writer holds the lock.
func (l *RWSpinLock) RLock() {
	for {
		l.readers.Add(1)
		if !l.writer.Load() {
			return
		}
		// back out, so the writer can observe zero readers
		l.readers.Add(-1)
		for l.writer.Load() {
			runtime.Gosched()
		}
	}
}

// RUnlock releases a read lock.
func (l *RWSpinLock) RUnlock() {
	if l.readers.Add(-1) < 0 {
		panic(`rwspin: RUnlock of unlocked RWSpinLock`)
	}
}

// Lock acquires the write lock, first winning the writer flag, then waiting
// for readers to drain.
func (l *RWSpinLock) Lock() {
	for !l.writer.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
	for l.readers.Load() != 0 {
		runtime.Gosched()
	}
}

// TryLock attempts to acquire the write lock without spinning on the flag.
// It still waits for in-flight readers, if it wins the flag.
func (l *RWSpinLock) TryLock() bool {
	if !l.writer.CompareAndSwap(false, true) {
		return false
	}
	for l.readers.Load() != 0 {
		runtime.Gosched()
	}
	return true
}

// Unlock releases the write lock.
func (l *RWSpinLock) Unlock() {
	if !l.writer.CompareAndSwap(true, false) {
		panic(`rwspin: Unlock of unlocked RWSpinLock`)
	}
}

// RLocker returns a [sync.Locker] that calls RLock and RUnlock.
func (l *RWSpinLock) RLocker() sync.Locker {
	return (*rlocker)(l)
}

type rlocker RWSpinLock

func (r *rlocker) Lock()   { (*RWSpinLock)(r).RLock() }
func (r *rlocker) Unlock() { (*RWSpinLock)(r).RUnlock() }
