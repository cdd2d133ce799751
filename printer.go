package threadinstrument

import (
	"maps"
	"strconv"
	"sync"
	"sync/atomic"
)

type (
	// Printer renders the payload of a log entry, for a specific event code.
	Printer func(p Payload) string

	// GenericPrinter renders any log entry, see RegisterGenericPrinter.
	GenericPrinter func(code int, p Payload) string

	// printerRegistry is copy on write, so that a dump never blocks on, or
	// races with, registration.
	printerRegistry struct {
		specific atomic.Pointer[map[int]Printer]
		generic  atomic.Pointer[GenericPrinter]
		mu       sync.Mutex
	}
)

func (x *printerRegistry) setSpecific(code int, printer Printer) {
	x.mu.Lock()
	defer x.mu.Unlock()
	var m map[int]Printer
	if old := x.specific.Load(); old != nil {
		m = maps.Clone(*old)
	}
	if printer == nil {
		delete(m, code)
	} else {
		if m == nil {
			m = make(map[int]Printer)
		}
		m[code] = printer
	}
	x.specific.Store(&m)
}

func (x *printerRegistry) setGeneric(printer GenericPrinter) {
	if printer == nil {
		x.generic.Store(nil)
		return
	}
	x.generic.Store(&printer)
}

func (x *printerRegistry) lookup(code int) Printer {
	if m := x.specific.Load(); m != nil {
		return (*m)[code]
	}
	return nil
}

// RegisterPrinter sets the printer used to render log entries for code,
// replacing any previous registration. A nil printer removes the
// registration, reverting to the generic printer.
func (x *Instrument) RegisterPrinter(code int, printer Printer) {
	x.printers.setSpecific(code, printer)
}

// RegisterGenericPrinter sets the printer used to render log entries for
// codes without a specific printer. A nil printer restores the default,
// [Instrument.DefaultPrinter].
func (x *Instrument) RegisterGenericPrinter(printer GenericPrinter) {
	x.printers.setGeneric(printer)
}

// RegisterInspector sets a function to run, instead of dumping the log to
// the signal output, when the dump signal is received. Only one inspector is
// active, and a nil inspector restores the default dump.
func (x *Instrument) RegisterInspector(inspector func()) {
	if inspector == nil {
		x.inspector.Store(nil)
		return
	}
	x.inspector.Store(&inspector)
}

// render applies the specific printer for code, else the generic printer.
func (x *Instrument) render(code int, p Payload) string {
	if printer := x.printers.lookup(code); printer != nil {
		return printer(p)
	}
	if printer := x.printers.generic.Load(); printer != nil {
		return (*printer)(code, p)
	}
	return x.DefaultPrinter(code, p)
}

// eventLabel is the interned name of code, or the code itself.
func (x *Instrument) eventLabel(code int) string {
	if name, ok := x.names.name(code); ok {
		return name
	}
	return strconv.Itoa(code)
}

// DefaultPrinter is the generic printer used unless another is registered.
// It prints the event name (or code, if it was not interned), a space, and
// the payload, see [Payload.String].
func (x *Instrument) DefaultPrinter(code int, p Payload) string {
	return x.eventLabel(code) + ` ` + p.String()
}

// PictureTimePrinter is a generic printer for logs of activities that are
// delimited by a pair of entries with the same code, the first with the
// [Begin] payload, and the second with the [End] payload. It prints the
// event name (or code), followed by BEGIN or END. Zero integers and nil
// values are considered to be Begin.
//
// Used with timed entries, the output is suitable for tools that draw
// timing diagrams from the dump.
func (x *Instrument) PictureTimePrinter(code int, p Payload) string {
	if p.null() {
		return x.eventLabel(code) + ` BEGIN`
	}
	return x.eventLabel(code) + ` END`
}
