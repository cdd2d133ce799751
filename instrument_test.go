package threadinstrument

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_defaults(t *testing.T) {
	before := time.Now()
	x, err := New()
	require.NoError(t, err)

	assert.NotNil(t, x.logger)
	assert.NotNil(t, x.violations)
	assert.False(t, x.strict)
	assert.Equal(t, os.Stderr, x.signalOutput)
	assert.Zero(t, x.LogLimit())
	assert.False(t, x.LogLocked())
	assert.False(t, x.StartTime().Before(before))
	assert.Zero(t, x.NThreadsWithActivity())
	assert.Zero(t, x.LogSize())
}

func TestNew_nilOptions(t *testing.T) {
	x, err := New(nil, WithLogLimit(2), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, x.LogLimit())
}

func TestNew_nilLogger(t *testing.T) {
	x, err := New(WithLogger(nil))
	require.NoError(t, err)
	assert.Nil(t, x.logger)

	// diagnostics are discarded
	x.EndActivity(1)
	x.Log(0, Payload{}, false)
	require.Len(t, dumpLines(t, x), 1)
}

func TestNew_invalidOptions(t *testing.T) {
	for _, tc := range [...]struct {
		name   string
		option Option
		check  func(t *testing.T, err error)
	}{
		{
			name:   `negative log limit`,
			option: WithLogLimit(-1),
			check: func(t *testing.T, err error) {
				assert.True(t, errors.Is(err, ErrInvalidLogLimit))
			},
		},
		{
			name:   `nil signal output`,
			option: WithSignalOutput(nil),
			check: func(t *testing.T, err error) {
				assert.EqualError(t, err, `threadinstrument: nil signal output`)
			},
		},
		{
			name:   `non-positive rate`,
			option: WithViolationRateLimits(map[time.Duration]int{time.Second: 0}),
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, `invalid violation rate limits`)
			},
		},
		{
			name:   `non-monotonic rates`,
			option: WithViolationRateLimits(map[time.Duration]int{time.Second: 10, time.Minute: 5}),
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, `invalid violation rate limits`)
			},
		},
		{
			name:   `empty rates`,
			option: WithViolationRateLimits(map[time.Duration]int{}),
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, `invalid violation rate limits`)
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			x, err := New(tc.option)
			assert.Nil(t, x)
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestWithViolationRateLimits_nilDisables(t *testing.T) {
	x := newTestInstrument(t, WithViolationRateLimits(nil))
	assert.Nil(t, x.violations)
}

func TestContractError(t *testing.T) {
	err := &ContractError{Op: `end`, Code: 3, Thread: 2, Err: ErrNotRunning}
	assert.Equal(t, `threadinstrument: end activity 3 on thread 2: threadinstrument: activity not running`, err.Error())
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.NotErrorIs(t, err, ErrAlreadyRunning)
}
