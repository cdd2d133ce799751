//go:build unix

package threadinstrument

import (
	"os"

	"golang.org/x/sys/unix"
)

var dumpSignals = []os.Signal{unix.SIGUSR1}
