//go:build threadinstrument

package threadinstrument

// Enabled is true when built with the threadinstrument build tag, which
// turns the package-level functions on.
const Enabled = true

func init() {
	stop := Default().HandleDumpSignal()
	defaultDumpSignalStop.Store(&stop)
}
