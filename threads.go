package threadinstrument

import (
	"sync"
	"sync/atomic"

	"github.com/joeycumines/go-threadinstrument/internal/lfstack"
	"github.com/joeycumines/go-threadinstrument/internal/rwspin"
	"github.com/petermattis/goid"
)

type (
	// threadEntry is the registration of a single goroutine. Only the owning
	// goroutine writes profile, always under lock, and other goroutines take
	// the read lock to copy it.
	threadEntry struct {
		profile map[int]*EventData
		goid    int64
		index   int
		lock    rwspin.RWSpinLock
	}

	// threadRegistry is append-only. Entries are enumerated via the lock-free
	// stack, and looked up by goroutine id via the index.
	threadRegistry struct {
		entries lfstack.Stack[*threadEntry]
		byGoid  sync.Map // map[int64]*threadEntry
		next    atomic.Int64
		// serializes registration, which happens once per goroutine
		register sync.Mutex
	}
)

// current returns the calling goroutine's entry, registering it if necessary.
func (x *threadRegistry) current() *threadEntry {
	return x.entryFor(goid.Get())
}

// entryFor returns the entry for id, registering it if necessary.
func (x *threadRegistry) entryFor(id int64) *threadEntry {
	if e := x.lookup(id); e != nil {
		return e
	}

	x.register.Lock()
	defer x.register.Unlock()

	// the log drain may register ids other than its own
	if e := x.lookup(id); e != nil {
		return e
	}

	e := &threadEntry{
		profile: make(map[int]*EventData),
		goid:    id,
		index:   int(x.next.Add(1) - 1),
	}
	x.entries.Push(e)
	x.byGoid.Store(id, e)
	return e
}

func (x *threadRegistry) lookup(id int64) *threadEntry {
	if v, ok := x.byGoid.Load(id); ok {
		return v.(*threadEntry)
	}
	return nil
}

// count is the number of registered goroutines, counted by walking the
// registry.
func (x *threadRegistry) count() int {
	return x.entries.Size()
}

// byIndex finds the entry with the dense index n, by linear scan.
func (x *threadRegistry) byIndex(n int) (*threadEntry, bool) {
	return x.entries.Find(func(e *threadEntry) bool { return e.index == n })
}

// snapshot copies the entry's profile.
func (e *threadEntry) snapshot() Activity {
	e.lock.RLock()
	defer e.lock.RUnlock()
	m := make(Activity, len(e.profile))
	for code, data := range e.profile {
		m[code] = *data
	}
	return m
}

// NThreadsWithActivity returns the number of goroutines that have used this
// Instrument, i.e. profiled an activity, or had a logged entry dumped.
// The value may be stale if goroutines are concurrently registering.
func (x *Instrument) NThreadsWithActivity() int {
	return x.threads.count()
}

// MyThreadNumber returns the dense index of the calling goroutine, which is
// assigned on first use, and is stable for the lifetime of the Instrument.
func (x *Instrument) MyThreadNumber() int {
	return x.threads.current().index
}
