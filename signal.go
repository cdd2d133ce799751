package threadinstrument

import (
	"errors"
	"os"
	"os/signal"
	"sync"
)

// HandleDumpSignal starts handling the dump signal (SIGUSR1, on unix
// platforms), which either runs the registered inspector, see
// RegisterInspector, or dumps the log to the signal output, see
// WithSignalOutput. The returned function stops handling the signal, and is
// safe to call more than once.
//
// Signals received while a previous signal is being handled are coalesced.
// Each call is an independent subscription, and every subscription handles
// every signal, so a second subscription for the same Instrument only adds a
// dump attempt that loses to the first, see [ErrDumpInProgress]. When
// [Enabled], the [Default] instrument is already subscribed, see
// [StopDefaultDumpSignal]. On platforms without a dump signal this is a
// no-op.
func (x *Instrument) HandleDumpSignal() (stop func()) {
	if len(dumpSignals) == 0 {
		return func() {}
	}

	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, dumpSignals...)

	go func() {
		for {
			select {
			case <-done:
				return
			case sig := <-ch:
				x.handleDumpSignal(sig)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}

func (x *Instrument) handleDumpSignal(sig os.Signal) {
	if inspector := x.inspector.Load(); inspector != nil {
		x.logger.Info().
			Str(`signal`, sig.String()).
			Log(`running inspector`)
		(*inspector)()
		return
	}

	x.logger.Info().
		Str(`signal`, sig.String()).
		Int(`entries`, x.log.Size()).
		Log(`dumping log`)

	// write failures are logged by DumpLog
	if err := x.DumpLog(x.signalOutput); errors.Is(err, ErrDumpInProgress) {
		x.logger.Info().
			Str(`signal`, sig.String()).
			Log(`dump signal ignored, dump already in progress`)
	}
}
