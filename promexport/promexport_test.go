package promexport

import (
	"strings"
	"testing"

	threadinstrument "github.com/joeycumines/go-threadinstrument"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	activity threadinstrument.Activity
	names    map[int]string
	threads  int
}

func (x *fakeSource) AllActivity() threadinstrument.Activity { return x.activity }

func (x *fakeSource) EventName(code int) (string, bool) {
	name, ok := x.names[code]
	return name, ok
}

func (x *fakeSource) NThreadsWithActivity() int { return x.threads }

func TestCollector(t *testing.T) {
	src := &fakeSource{
		activity: threadinstrument.Activity{
			0: {Time: 1.5, Invocations: 4},
			3: {Time: 0.25, Invocations: 2, CurrentlyRunning: true},
		},
		names:   map[int]string{0: `compute`},
		threads: 2,
	}
	c, err := NewCollector(src)
	require.NoError(t, err)

	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(`
# HELP threadinstrument_activity_invocations_total Number of times each activity began, summed across goroutines.
# TYPE threadinstrument_activity_invocations_total counter
threadinstrument_activity_invocations_total{code="0",event="compute"} 4
threadinstrument_activity_invocations_total{code="3",event=""} 2
# HELP threadinstrument_activity_running Whether any goroutine is running each activity.
# TYPE threadinstrument_activity_running gauge
threadinstrument_activity_running{code="0",event="compute"} 0
threadinstrument_activity_running{code="3",event=""} 1
# HELP threadinstrument_activity_seconds_total Time spent running each activity, summed across goroutines.
# TYPE threadinstrument_activity_seconds_total counter
threadinstrument_activity_seconds_total{code="0",event="compute"} 1.5
threadinstrument_activity_seconds_total{code="3",event=""} 0.25
# HELP threadinstrument_threads Number of goroutines that have used the instrument.
# TYPE threadinstrument_threads gauge
threadinstrument_threads 2
`)))
}

func TestCollector_instrument(t *testing.T) {
	x, err := threadinstrument.New(threadinstrument.WithLogger(nil))
	require.NoError(t, err)

	for range 3 {
		x.BeginActivityNamed(`io`)
		x.EndActivityNamed(`io`)
	}

	c, err := NewCollector(x, WithNamespace(`app`), WithConstLabels(prometheus.Labels{`instance`: `a`}))
	require.NoError(t, err)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(c))

	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(`
# HELP app_activity_invocations_total Number of times each activity began, summed across goroutines.
# TYPE app_activity_invocations_total counter
app_activity_invocations_total{code="0",event="io",instance="a"} 3
# HELP app_threads Number of goroutines that have used the instrument.
# TYPE app_threads gauge
app_threads{instance="a"} 1
`), `app_activity_invocations_total`, `app_threads`))

	assert.Equal(t, 4, testutil.CollectAndCount(c))
}

func TestCollector_empty(t *testing.T) {
	c, err := NewCollector(&fakeSource{})
	require.NoError(t, err)
	assert.Equal(t, 1, testutil.CollectAndCount(c))
}

func TestNewCollector_errors(t *testing.T) {
	_, err := NewCollector(nil)
	assert.EqualError(t, err, `promexport: nil source`)

	_, err = NewCollector(&fakeSource{}, WithNamespace(``))
	assert.EqualError(t, err, `promexport: empty namespace`)

	c, err := NewCollector(&fakeSource{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, c)
}
