// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package threadinstrument

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/go-threadinstrument/internal/lfstack"
	"github.com/joeycumines/logiface"
)

// Instrument profiles activities and logs events, per goroutine.
//
// Profiling (BeginActivity, EndActivity) and logging (Log) are safe for
// concurrent use, and are designed to be cheap enough to leave in hot paths.
// Reports (Activity, AllActivity, DumpLog) may be taken from any goroutine,
// at any time, and are best-effort snapshots.
//
// Most programs use the process-wide Instrument, via the package-level
// functions, see [Default].
type Instrument struct {
	start        time.Time
	signalOutput io.Writer
	logger       *logiface.Logger[logiface.Event]
	violations   *catrate.Limiter
	inspector    atomic.Pointer[func()]
	printers     printerRegistry
	names        eventNames
	threads      threadRegistry
	log          lfstack.Stack[logEntry]
	logLimit     atomic.Int64
	logLocked    atomic.Bool
	draining     atomic.Bool
	strict       bool
}

// New creates an Instrument, configured by the given options.
func New(opts ...Option) (*Instrument, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	x := &Instrument{
		start:        cfg.startTime,
		signalOutput: cfg.signalOutput,
		logger:       cfg.logger,
		strict:       cfg.strict,
	}

	if !cfg.loggerSet {
		x.logger = newDefaultLogger()
	}
	if x.start.IsZero() {
		x.start = timeNow()
	}
	if x.signalOutput == nil {
		x.signalOutput = os.Stderr
	}
	if cfg.violationRates != nil {
		x.violations = catrate.NewLimiter(cfg.violationRates)
	}
	if cfg.genericPrinter != nil {
		x.printers.setGeneric(cfg.genericPrinter)
	}
	x.logLimit.Store(int64(cfg.logLimit))

	return x, nil
}

// StartTime is the reference point for timed log entries.
func (x *Instrument) StartTime() time.Time {
	return x.start
}
