package threadinstrument

import (
	"os"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// defaultViolationRates bounds contract violation warnings, per operation and
// event code.
var defaultViolationRates = map[time.Duration]int{
	time.Second: 5,
	time.Minute: 30,
}

type violationCategory struct {
	op   string
	code int
}

// newDefaultLogger builds the diagnostics logger used when WithLogger is not
// provided: JSON on stderr, warnings and above.
func newDefaultLogger() *logiface.Logger[logiface.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(os.Stderr)),
		stumpy.L.WithLevel(logiface.LevelWarning),
	).Logger()
}

// contractViolation panics in strict mode, otherwise it logs a warning,
// subject to the violation rate limits.
func (x *Instrument) contractViolation(op string, code, thread int, err error) {
	cerr := &ContractError{Op: op, Code: code, Thread: thread, Err: err}
	if x.strict {
		panic(cerr)
	}
	if _, ok := x.violations.Allow(violationCategory{op: op, code: code}); !ok {
		return
	}
	x.logger.Warning().
		Err(cerr).
		Str(`op`, op).
		Int(`code`, code).
		Int(`thread`, thread).
		Log(`activity contract violation`)
}
