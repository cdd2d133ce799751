//go:build !threadinstrument

package threadinstrument

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobal_disabled(t *testing.T) {
	require.False(t, Enabled)

	BeginActivity(1)
	EndActivity(1)
	BeginActivityNamed(`a`)
	EndActivityNamed(`a`)
	Log(1, IntPayload(1), true)
	LogNamed(`a`, Payload{}, false)
	SetLogLocked(true)
	ClearLog()
	ClearAllActivity()
	RegisterPrinter(1, func(Payload) string { return `` })
	RegisterGenericPrinter(nil)
	RegisterInspector(func() {})

	assert.Zero(t, NThreadsWithActivity())
	assert.Zero(t, MyThreadNumber())
	_, ok := ThreadActivity(0)
	assert.False(t, ok)
	assert.Empty(t, AllActivity())
	assert.NoError(t, SetLogLimit(-1))
	assert.Equal(t, -1, EventNumber(`a`))
	_, ok = EventName(0)
	assert.False(t, ok)

	var b bytes.Buffer
	assert.NoError(t, DumpLog(&b))
	assert.Empty(t, b.String())

	name := filepath.Join(t.TempDir(), `dump.log`)
	DumpLogFile(name, true)
	assert.NoFileExists(t, name)

	assert.Nil(t, defaultDumpSignalStop.Load())
	StopDefaultDumpSignal()
	StopDefaultDumpSignal()
}
