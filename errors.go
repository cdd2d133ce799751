package threadinstrument

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyRunning indicates BeginActivity for an event code that the
	// calling goroutine is already running.
	ErrAlreadyRunning = errors.New(`threadinstrument: activity already running`)

	// ErrNotRunning indicates EndActivity for an event code that the calling
	// goroutine began and already ended.
	ErrNotRunning = errors.New(`threadinstrument: activity not running`)

	// ErrUnknownActivity indicates EndActivity for an event code that the
	// calling goroutine never began.
	ErrUnknownActivity = errors.New(`threadinstrument: activity never began`)

	// ErrInvalidLogLimit indicates a negative log limit.
	ErrInvalidLogLimit = errors.New(`threadinstrument: invalid log limit`)

	// ErrDumpInProgress is returned by a dump that raced with another dump
	// of the same Instrument.
	ErrDumpInProgress = errors.New(`threadinstrument: dump already in progress`)
)

// ContractError describes misuse of the activity API, e.g. a re-entrant
// BeginActivity. It is the panic value when strict mode is enabled, and is
// otherwise only logged. See [WithStrictMode].
type ContractError struct {
	// Err is one of ErrAlreadyRunning, ErrNotRunning, or ErrUnknownActivity.
	Err error
	// Op is the operation that detected the violation, e.g. "begin".
	Op string
	// Code is the event code.
	Code int
	// Thread is the dense index of the goroutine that violated the contract.
	Thread int
}

func (e *ContractError) Error() string {
	return fmt.Sprintf(`threadinstrument: %s activity %d on thread %d: %v`, e.Op, e.Code, e.Thread, e.Err)
}

// Unwrap returns the underlying sentinel error, for use with [errors.Is].
func (e *ContractError) Unwrap() error {
	return e.Err
}
