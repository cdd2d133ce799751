package threadinstrument

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/require"
)

// lockedBuffer is a bytes.Buffer that is safe for concurrent use.
type lockedBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (x *lockedBuffer) Write(p []byte) (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.b.Write(p)
}

func (x *lockedBuffer) String() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.b.String()
}

func newBufferLogger(w *lockedBuffer, level logiface.Level) *logiface.Logger[logiface.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(
			stumpy.WithWriter(w),
			stumpy.WithTimeField(``),
		),
		stumpy.L.WithLevel(level),
	).Logger()
}

// newTestInstrument creates an Instrument with logging disabled, unless a
// WithLogger option is provided.
func newTestInstrument(t *testing.T, opts ...Option) *Instrument {
	t.Helper()
	x, err := New(append([]Option{WithLogger(nil)}, opts...)...)
	require.NoError(t, err)
	require.NotNil(t, x)
	return x
}

// dumpLines drains the log of x, returning each printed line.
func dumpLines(t *testing.T, x *Instrument) []string {
	t.Helper()
	var b bytes.Buffer
	require.NoError(t, x.DumpLog(&b))
	s := strings.TrimSuffix(b.String(), "\n")
	if s == `` {
		return nil
	}
	return strings.Split(s, "\n")
}

// recoverContractError calls f, returning the *ContractError it panicked
// with, or nil.
func recoverContractError(t *testing.T, f func()) (err *ContractError) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			err, ok = r.(*ContractError)
			require.Truef(t, ok, `unexpected panic: %v`, r)
		}
	}()
	f()
	return nil
}
