package threadinstrument

import (
	"time"
)

// for testing purposes
var timeNow = time.Now

// EventData records the activity of one event code, on one goroutine, or
// summed across goroutines (see [Instrument.AllActivity]).
type EventData struct {
	// LastTransition is when the activity last began or ended.
	LastTransition time.Time
	// Time is the accumulated running time, in seconds.
	Time float64
	// Invocations counts BeginActivity calls.
	Invocations uint64
	// CurrentlyRunning is true between a BeginActivity and its EndActivity.
	CurrentlyRunning bool
}

// Add accumulates other into x: times and invocations are summed, and x is
// running if either is running.
func (x *EventData) Add(other EventData) {
	x.Time += other.Time
	x.Invocations += other.Invocations
	x.CurrentlyRunning = x.CurrentlyRunning || other.CurrentlyRunning
}

// Duration returns Time as a time.Duration.
func (x EventData) Duration() time.Duration {
	return time.Duration(x.Time * float64(time.Second))
}

// BeginActivity records that the calling goroutine started the activity code.
//
// Beginning an activity that the goroutine is already running is a contract
// violation, see [WithStrictMode]. Different codes may be nested freely.
func (x *Instrument) BeginActivity(code int) {
	e := x.threads.current()

	e.lock.Lock()
	data := e.profile[code]
	if data == nil {
		data = new(EventData)
		e.profile[code] = data
	}
	violated := data.CurrentlyRunning
	if violated && x.strict {
		e.lock.Unlock()
		x.contractViolation(`begin`, code, e.index, ErrAlreadyRunning)
		return
	}
	data.Invocations++
	data.LastTransition = timeNow()
	data.CurrentlyRunning = true
	e.lock.Unlock()

	if violated {
		x.contractViolation(`begin`, code, e.index, ErrAlreadyRunning)
	}
}

// EndActivity records that the calling goroutine finished the activity code,
// adding the time since the matching BeginActivity.
//
// Ending an activity that isn't running is a contract violation, see
// [WithStrictMode], and otherwise has no effect.
func (x *Instrument) EndActivity(code int) {
	now := timeNow()
	e := x.threads.current()

	var err error
	e.lock.Lock()
	switch data := e.profile[code]; {
	case data == nil:
		err = ErrUnknownActivity
	case !data.CurrentlyRunning:
		err = ErrNotRunning
	default:
		data.Time += now.Sub(data.LastTransition).Seconds()
		data.LastTransition = now
		data.CurrentlyRunning = false
	}
	e.lock.Unlock()

	if err != nil {
		x.contractViolation(`end`, code, e.index, err)
	}
}

// BeginActivityNamed is BeginActivity for the code interned as name.
func (x *Instrument) BeginActivityNamed(name string) {
	x.BeginActivity(x.names.intern(name))
}

// EndActivityNamed is EndActivity for the code interned as name.
func (x *Instrument) EndActivityNamed(name string) {
	x.EndActivity(x.names.intern(name))
}

// Activity returns a copy of the profile of the goroutine with the dense
// index n, or false if there is no such goroutine.
//
// The copy is consistent for each event code, but the goroutine may still be
// running, so it may be stale by the time it is returned.
func (x *Instrument) Activity(n int) (Activity, bool) {
	e, ok := x.threads.byIndex(n)
	if !ok {
		return nil, false
	}
	return e.snapshot(), true
}

// AllActivity sums the profiles of every goroutine, per event code, see
// [EventData.Add]. It is a best-effort report, not a transaction across
// goroutines.
func (x *Instrument) AllActivity() Activity {
	m := make(Activity)
	for e := range x.threads.entries.All() {
		e.lock.RLock()
		for code, data := range e.profile {
			sum := m[code]
			sum.Add(*data)
			m[code] = sum
		}
		e.lock.RUnlock()
	}
	return m
}

// ClearAllActivity forgets the profile of every goroutine. Goroutine indexes
// are retained. An activity that is running when it is cleared cannot be
// ended afterward.
func (x *Instrument) ClearAllActivity() {
	for e := range x.threads.entries.All() {
		e.lock.Lock()
		clear(e.profile)
		e.lock.Unlock()
	}
}
