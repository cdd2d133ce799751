package threadinstrument

import (
	"github.com/joeycumines/go-threadinstrument/internal/rwspin"
)

// eventNames interns event names to dense codes, starting at 0.
type eventNames struct {
	codes map[string]int
	names []string
	lock  rwspin.RWSpinLock
}

// intern returns the code for name, assigning the next code on first use.
func (x *eventNames) intern(name string) int {
	x.lock.RLock()
	code, ok := x.codes[name]
	x.lock.RUnlock()
	if ok {
		return code
	}

	x.lock.Lock()
	defer x.lock.Unlock()
	// another goroutine may have won the race to the write lock
	if code, ok := x.codes[name]; ok {
		return code
	}
	if x.codes == nil {
		x.codes = make(map[string]int)
	}
	code = len(x.names)
	x.codes[name] = code
	x.names = append(x.names, name)
	return code
}

func (x *eventNames) name(code int) (string, bool) {
	x.lock.RLock()
	defer x.lock.RUnlock()
	if code < 0 || code >= len(x.names) {
		return ``, false
	}
	return x.names[code], true
}

// EventNumber returns the event code for name, interning it on first use.
// The same name always maps to the same code, for the lifetime of the
// Instrument, and codes are assigned densely from 0.
func (x *Instrument) EventNumber(name string) int {
	return x.names.intern(name)
}

// EventName returns the name interned as code, if any.
func (x *Instrument) EventName(code int) (string, bool) {
	return x.names.name(code)
}
