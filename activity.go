package threadinstrument

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"
)

// Activity maps event codes to their EventData.
type Activity map[int]EventData

// Codes returns the event codes, in ascending order.
func (a Activity) Codes() []int {
	return slices.Sorted(maps.Keys(a))
}

// WriteActivity prints one line per event code, in ascending order, e.g.
//
//	Event          COMPUTE : 1.250000 seconds 4 invocations
//
// The name of each code is names[code], if present and non-empty, otherwise
// the code is printed.
func WriteActivity(w io.Writer, a Activity, names []string) error {
	bw := bufio.NewWriter(w)
	for _, code := range a.Codes() {
		data := a[code]
		if code >= 0 && code < len(names) && names[code] != `` {
			fmt.Fprintf(bw, "Event %16s : %f seconds %d invocations\n", names[code], data.Time, data.Invocations)
		} else {
			fmt.Fprintf(bw, "Event %d : %f seconds %d invocations\n", code, data.Time, data.Invocations)
		}
	}
	return bw.Flush()
}

// WriteActivitySummary prints [Instrument.AllActivity], naming interned event
// codes. See also WriteActivity.
func (x *Instrument) WriteActivitySummary(w io.Writer) error {
	a := x.AllActivity()
	var names []string
	for _, code := range a.Codes() {
		if name, ok := x.names.name(code); ok {
			if code >= len(names) {
				names = append(names, make([]string, code+1-len(names))...)
			}
			names[code] = name
		}
	}
	return WriteActivity(w, a, names)
}
