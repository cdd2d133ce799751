package threadinstrument

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
)

var (
	// for testing purposes
	osExit = os.Exit

	// set on init when Enabled, see StopDefaultDumpSignal
	defaultDumpSignalStop atomic.Pointer[func()]
)

// Default returns the process-wide Instrument, used by the package-level
// functions, creating it with the default options on first use.
//
// The package-level functions only use Default when built with the
// threadinstrument build tag, see [Enabled]. Default itself is always
// available, and calling it directly is the way to profile without the tag.
//
// When [Enabled], Default handles the dump signal from program start, see
// [Instrument.HandleDumpSignal]. Call [StopDefaultDumpSignal] before
// subscribing Default again, e.g. to change how signals are handled.
var Default = sync.OnceValue(func() *Instrument {
	x, err := New()
	if err != nil {
		panic(err)
	}
	return x
})

// BeginActivity calls [Instrument.BeginActivity] on the Default instrument,
// if [Enabled].
func BeginActivity(code int) {
	if Enabled {
		Default().BeginActivity(code)
	}
}

// EndActivity calls [Instrument.EndActivity] on the Default instrument, if
// [Enabled].
func EndActivity(code int) {
	if Enabled {
		Default().EndActivity(code)
	}
}

// BeginActivityNamed calls [Instrument.BeginActivityNamed] on the Default
// instrument, if [Enabled].
func BeginActivityNamed(name string) {
	if Enabled {
		Default().BeginActivityNamed(name)
	}
}

// EndActivityNamed calls [Instrument.EndActivityNamed] on the Default
// instrument, if [Enabled].
func EndActivityNamed(name string) {
	if Enabled {
		Default().EndActivityNamed(name)
	}
}

// NThreadsWithActivity returns zero unless [Enabled].
func NThreadsWithActivity() int {
	if Enabled {
		return Default().NThreadsWithActivity()
	}
	return 0
}

// MyThreadNumber returns zero unless [Enabled].
func MyThreadNumber() int {
	if Enabled {
		return Default().MyThreadNumber()
	}
	return 0
}

// ThreadActivity is [Instrument.Activity] on the Default instrument. It
// always returns false unless [Enabled].
func ThreadActivity(n int) (Activity, bool) {
	if Enabled {
		return Default().Activity(n)
	}
	return nil, false
}

// AllActivity returns an empty Activity unless [Enabled].
func AllActivity() Activity {
	if Enabled {
		return Default().AllActivity()
	}
	return Activity{}
}

// ClearAllActivity calls [Instrument.ClearAllActivity] on the Default
// instrument, if [Enabled].
func ClearAllActivity() {
	if Enabled {
		Default().ClearAllActivity()
	}
}

// Log calls [Instrument.Log] on the Default instrument, if [Enabled].
func Log(code int, p Payload, timed bool) {
	if Enabled {
		Default().Log(code, p, timed)
	}
}

// LogNamed calls [Instrument.LogNamed] on the Default instrument, if
// [Enabled].
func LogNamed(name string, p Payload, timed bool) {
	if Enabled {
		Default().LogNamed(name, p, timed)
	}
}

// SetLogLocked calls [Instrument.SetLogLocked] on the Default instrument, if
// [Enabled].
func SetLogLocked(locked bool) {
	if Enabled {
		Default().SetLogLocked(locked)
	}
}

// SetLogLimit calls [Instrument.SetLogLimit] on the Default instrument, if
// [Enabled]. It always succeeds when disabled.
func SetLogLimit(n int) error {
	if Enabled {
		return Default().SetLogLimit(n)
	}
	return nil
}

// ClearLog calls [Instrument.ClearLog] on the Default instrument, if
// [Enabled].
func ClearLog() {
	if Enabled {
		Default().ClearLog()
	}
}

// DumpLog dumps the log of the Default instrument to w, if [Enabled].
func DumpLog(w io.Writer) error {
	if Enabled {
		return Default().DumpLog(w)
	}
	return nil
}

// DumpLogFile dumps the log of the Default instrument to the named file, if
// [Enabled]. Unlike [Instrument.DumpLogFile], failure to dump is fatal: the
// error is logged, and the process exits.
func DumpLogFile(name string, truncate bool) {
	if !Enabled {
		return
	}
	x := Default()
	if err := x.DumpLogFile(name, truncate); err != nil {
		x.logger.Crit().
			Err(err).
			Str(`file`, name).
			Log(`failed to dump log file`)
		osExit(1)
	}
}

// RegisterPrinter calls [Instrument.RegisterPrinter] on the Default
// instrument, if [Enabled].
func RegisterPrinter(code int, printer Printer) {
	if Enabled {
		Default().RegisterPrinter(code, printer)
	}
}

// RegisterGenericPrinter calls [Instrument.RegisterGenericPrinter] on the
// Default instrument, if [Enabled].
func RegisterGenericPrinter(printer GenericPrinter) {
	if Enabled {
		Default().RegisterGenericPrinter(printer)
	}
}

// RegisterInspector calls [Instrument.RegisterInspector] on the Default
// instrument, if [Enabled].
func RegisterInspector(inspector func()) {
	if Enabled {
		Default().RegisterInspector(inspector)
	}
}

// EventNumber returns -1 unless [Enabled].
func EventNumber(name string) int {
	if Enabled {
		return Default().EventNumber(name)
	}
	return -1
}

// EventName calls [Instrument.EventName] on the Default instrument, if
// [Enabled].
func EventName(code int) (string, bool) {
	if Enabled {
		return Default().EventName(code)
	}
	return ``, false
}

// StopDefaultDumpSignal stops the dump signal handling that the Default
// instrument starts when [Enabled]. It is safe to call more than once, and
// does nothing when disabled.
//
// Without any subscription, the dump signal reverts to its default action,
// which terminates the process.
func StopDefaultDumpSignal() {
	if stop := defaultDumpSignalStop.Swap(nil); stop != nil {
		(*stop)()
	}
}
