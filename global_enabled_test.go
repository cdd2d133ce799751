//go:build threadinstrument

package threadinstrument

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobal_enabled(t *testing.T) {
	require.True(t, Enabled)

	ClearLog()
	ClearAllActivity()

	BeginActivityNamed(`global`)
	EndActivityNamed(`global`)
	code := EventNumber(`global`)
	name, ok := EventName(code)
	require.True(t, ok)
	assert.Equal(t, `global`, name)

	assert.Equal(t, uint64(1), AllActivity()[code].Invocations)
	a, ok := ThreadActivity(MyThreadNumber())
	require.True(t, ok)
	assert.Equal(t, uint64(1), a[code].Invocations)
	assert.Positive(t, NThreadsWithActivity())

	RegisterPrinter(code, func(p Payload) string { return `printed ` + p.String() })
	defer RegisterPrinter(code, nil)

	Log(code, IntPayload(3), false)
	SetLogLocked(true)
	LogNamed(`global`, IntPayload(4), false)
	SetLogLocked(false)

	var b bytes.Buffer
	require.NoError(t, DumpLog(&b))
	assert.Regexp(t, `^Th +\d+ printed 3\n$`, b.String())
}

func TestGlobal_DumpLogFile(t *testing.T) {
	ClearLog()
	Log(0, IntPayload(1), false)

	name := filepath.Join(t.TempDir(), `dump.log`)
	DumpLogFile(name, true)

	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Regexp(t, `^Th +\d+ .* 1\n$`, string(b))
}

func TestGlobal_DumpLogFile_exitsOnError(t *testing.T) {
	old := osExit
	defer func() { osExit = old }()

	var code int
	osExit = func(c int) { code = c }

	DumpLogFile(filepath.Join(t.TempDir(), `missing`, `dump.log`), true)
	assert.Equal(t, 1, code)
}

func TestStopDefaultDumpSignal(t *testing.T) {
	require.NotNil(t, defaultDumpSignalStop.Load())

	StopDefaultDumpSignal()
	assert.Nil(t, defaultDumpSignalStop.Load())
	StopDefaultDumpSignal()

	// restore, so SIGUSR1 doesn't fall back to terminating the tests
	stop := Default().HandleDumpSignal()
	defaultDumpSignalStop.Store(&stop)
}
