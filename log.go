package threadinstrument

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/petermattis/goid"
)

// logEntry is a single Log call. A zero when means the entry is untimed.
type logEntry struct {
	when    time.Time
	payload Payload
	goid    int64
	code    int
}

// Log appends an entry for code to the log, attributed to the calling
// goroutine. If timed is true, the entry records the current time, which is
// the only way to recover a reliable order across goroutines.
//
// Log is lock-free, and does nothing while the log is locked, see
// SetLogLocked.
func (x *Instrument) Log(code int, p Payload, timed bool) {
	if x.logLocked.Load() {
		return
	}
	entry := logEntry{payload: p, goid: goid.Get(), code: code}
	if timed {
		entry.when = timeNow()
	}
	x.log.Push(entry)
}

// LogNamed is Log for the code interned as name.
func (x *Instrument) LogNamed(name string, p Payload, timed bool) {
	if x.logLocked.Load() {
		return
	}
	x.Log(x.names.intern(name), p, timed)
}

// SetLogLocked silences (true) or restores (false) logging. Entries logged
// while locked are discarded.
func (x *Instrument) SetLogLocked(locked bool) {
	x.logLocked.Store(locked)
}

// LogLocked reports whether logging is silenced.
func (x *Instrument) LogLocked() bool {
	return x.logLocked.Load()
}

// SetLogLimit sets the maximum number of entries printed by a dump, which
// keeps the n most recent entries, discarding the rest. Zero disables the
// limit.
func (x *Instrument) SetLogLimit(n int) error {
	if n < 0 {
		return fmt.Errorf(`%w: %d`, ErrInvalidLogLimit, n)
	}
	x.logLimit.Store(int64(n))
	return nil
}

// LogLimit returns the value set by SetLogLimit or WithLogLimit.
func (x *Instrument) LogLimit() int {
	return int(x.logLimit.Load())
}

// LogSize counts the entries waiting to be dumped. The count is approximate
// while goroutines are logging.
func (x *Instrument) LogSize() int {
	return x.log.Size()
}

// ClearLog discards every entry waiting to be dumped.
func (x *Instrument) ClearLog() {
	x.log.Clear()
}

// DumpLog prints, then discards, every entry waiting to be dumped, in the
// order they were logged (per goroutine), subject to the log limit.
//
// Each line has the format "Th <index> [<seconds>] <event>", where index is
// the dense index of the goroutine that logged the entry, seconds is only
// present for timed entries, and event is the output of the printer.
//
// Entries logged during the dump are retained for the next dump. If w fails,
// the remaining entries are still discarded, and the error is returned.
// Only one dump may run at a time, other callers receive ErrDumpInProgress.
func (x *Instrument) DumpLog(w io.Writer) error {
	if !x.draining.CompareAndSwap(false, true) {
		return ErrDumpInProgress
	}
	defer x.draining.Store(false)

	pending := x.log.Take()
	pending.Reverse()

	var dropped int
	if limit := int(x.logLimit.Load()); limit > 0 {
		for n := pending.Size(); n > limit; n-- {
			pending.PopHead()
			dropped++
		}
	}

	bw := bufio.NewWriter(w)
	var (
		written int
		err     error
	)
	for {
		entry, ok := pending.PopHead()
		if !ok {
			break
		}
		if _, err = bw.WriteString(x.formatEntry(entry)); err != nil {
			pending.Clear()
			break
		}
		written++
	}
	if err == nil {
		err = bw.Flush()
	}

	if err != nil {
		x.logger.Err().
			Err(err).
			Int(`written`, written).
			Log(`log dump failed`)
		return err
	}

	x.logger.Debug().
		Int(`written`, written).
		Int(`dropped`, dropped).
		Log(`dumped log`)

	return nil
}

// DumpLogFile is DumpLog to the named file, which is created if necessary,
// and either truncated or appended to.
func (x *Instrument) DumpLogFile(name string, truncate bool) (err error) {
	flag := os.O_WRONLY | os.O_CREATE
	if truncate {
		flag |= os.O_TRUNC
	} else {
		flag |= os.O_APPEND
	}
	f, err := os.OpenFile(name, flag, 0644)
	if err != nil {
		return fmt.Errorf(`threadinstrument: open dump file: %w`, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return x.DumpLog(f)
}

func (x *Instrument) formatEntry(entry logEntry) string {
	thread := x.threads.entryFor(entry.goid).index
	event := x.render(entry.code, entry.payload)
	if entry.when.IsZero() {
		return fmt.Sprintf("Th %3d %s\n", thread, event)
	}
	return fmt.Sprintf("Th %3d %f %s\n", thread, entry.when.Sub(x.start).Seconds(), event)
}
