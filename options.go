// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package threadinstrument

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

// instrumentOptions holds configuration options for Instrument creation.
type instrumentOptions struct {
	logger         *logiface.Logger[logiface.Event]
	genericPrinter GenericPrinter
	violationRates map[time.Duration]int
	signalOutput   io.Writer
	startTime      time.Time
	logLimit       int
	strict         bool
	loggerSet      bool
}

// Option configures an Instrument.
type Option interface {
	applyInstrument(*instrumentOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyInstrumentFunc func(*instrumentOptions) error
}

func (o *optionImpl) applyInstrument(opts *instrumentOptions) error {
	return o.applyInstrumentFunc(opts)
}

// WithLogLimit sets the maximum number of (most recent) log entries that a
// dump will print. Zero, the default, prints every entry.
func WithLogLimit(n int) Option {
	return &optionImpl{func(opts *instrumentOptions) error {
		if n < 0 {
			return fmt.Errorf(`%w: %d`, ErrInvalidLogLimit, n)
		}
		opts.logLimit = n
		return nil
	}}
}

// WithLogger sets the logger used to report diagnostics, e.g. contract
// violations and dump failures. A nil logger disables diagnostics.
// Defaults to a JSON logger on stderr, at warning level.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *instrumentOptions) error {
		opts.logger = logger
		opts.loggerSet = true
		return nil
	}}
}

// WithStrictMode makes activity contract violations panic with a
// [*ContractError], instead of logging a (rate limited) warning.
func WithStrictMode(enabled bool) Option {
	return &optionImpl{func(opts *instrumentOptions) error {
		opts.strict = enabled
		return nil
	}}
}

// WithGenericPrinter sets the fallback printer used for event codes without a
// specific printer. Nil selects [Instrument.DefaultPrinter].
func WithGenericPrinter(printer GenericPrinter) Option {
	return &optionImpl{func(opts *instrumentOptions) error {
		opts.genericPrinter = printer
		return nil
	}}
}

// WithViolationRateLimits configures how often contract violation warnings
// may be logged, per operation and event code, using the same format as
// [catrate.NewLimiter]. A nil map disables rate limiting.
func WithViolationRateLimits(rates map[time.Duration]int) Option {
	return &optionImpl{func(opts *instrumentOptions) (err error) {
		if rates == nil {
			opts.violationRates = nil
			return nil
		}
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf(`threadinstrument: invalid violation rate limits: %v`, r)
			}
		}()
		_ = catrate.NewLimiter(rates)
		opts.violationRates = rates
		return nil
	}}
}

// WithSignalOutput sets where a signal triggered dump is written, when no
// inspector is registered. Defaults to stderr.
func WithSignalOutput(w io.Writer) Option {
	return &optionImpl{func(opts *instrumentOptions) error {
		if w == nil {
			return errors.New(`threadinstrument: nil signal output`)
		}
		opts.signalOutput = w
		return nil
	}}
}

// WithStartTime sets the reference point for timed log entries, which are
// printed as seconds since this time. Defaults to the time of New.
func WithStartTime(t time.Time) Option {
	return &optionImpl{func(opts *instrumentOptions) error {
		opts.startTime = t
		return nil
	}}
}

// resolveOptions applies Option instances to instrumentOptions.
func resolveOptions(opts []Option) (*instrumentOptions, error) {
	cfg := &instrumentOptions{
		violationRates: defaultViolationRates,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyInstrument(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
