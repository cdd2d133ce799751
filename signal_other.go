//go:build !unix

package threadinstrument

import (
	"os"
)

var dumpSignals []os.Signal
