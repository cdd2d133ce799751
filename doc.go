// Package threadinstrument provides low-overhead, opt-in instrumentation of
// concurrent programs: per-goroutine activity profiling, and a process-wide
// event log that is dumped on demand, or when the process receives SIGUSR1.
//
// # Profiling
//
// An activity is a span of execution, identified by an integer event code,
// that a goroutine delimits with [Instrument.BeginActivity] and
// [Instrument.EndActivity]. Each goroutine accumulates, per event code, the
// time spent running and the number of invocations. Codes may be named, see
// [Instrument.EventNumber], in which case they are assigned densely from 0.
//
// Profiles are read per goroutine, addressed by a dense index assigned on
// first use ([Instrument.Activity]), or summed across goroutines
// ([Instrument.AllActivity]). Both are best-effort snapshots.
//
// # Logging
//
// [Instrument.Log] appends an entry (event code, [Payload], and optionally a
// timestamp) to a lock-free log. [Instrument.DumpLog] drains the log,
// printing one line per entry, oldest first:
//
//	Th   0 0.001250 COMPUTE BEGIN
//	Th   1 started
//
// Entries logged by one goroutine are printed in the order they were logged.
// There is no ordering across goroutines, other than that implied by the
// timestamps of timed entries. Printers may be registered per event code, to
// render payloads, see [Instrument.RegisterPrinter].
//
// # Enabling
//
// The package-level functions operate on the [Default] instrument, but only
// when built with the threadinstrument build tag:
//
//	go build -tags threadinstrument ./...
//
// Otherwise they are constant branches with no side effects. When enabled,
// the Default instrument dumps its log to stderr on SIGUSR1.
//
// # Thread Safety
//
//   - Log, BeginActivity and EndActivity are safe to call from any goroutine
//   - Only one dump of an Instrument runs at a time, see [ErrDumpInProgress]
//   - Printers must be safe to call from the dumping goroutine
package threadinstrument
