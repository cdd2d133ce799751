package threadinstrument

import (
	"fmt"
	"strconv"
)

type payloadKind uint8

const (
	payloadNone payloadKind = iota
	payloadInt
	payloadValue
)

var (
	// Begin is the payload that [PictureTimePrinter] renders as BEGIN.
	Begin = Payload{}

	// End is the payload that [PictureTimePrinter] renders as END.
	End = IntPayload(1)
)

// Payload is the data attached to a log entry: either a small integer, or an
// opaque value, never both. The zero value carries nothing.
//
// Log entries do not own their payload. A dump discards each entry after
// rendering it, so a printer is the last code to see a value payload, and is
// where any associated resource should be released.
type Payload struct {
	value any
	i     int64
	kind  payloadKind
}

// IntPayload returns a payload carrying i.
func IntPayload(i int64) Payload {
	return Payload{i: i, kind: payloadInt}
}

// ValuePayload returns a payload carrying v, which is opaque to this package.
func ValuePayload(v any) Payload {
	return Payload{value: v, kind: payloadValue}
}

// Int returns the integer payload, if any.
func (p Payload) Int() (int64, bool) {
	return p.i, p.kind == payloadInt
}

// Value returns the value payload, if any.
func (p Payload) Value() (any, bool) {
	return p.value, p.kind == payloadValue
}

// IsZero reports whether the payload carries nothing.
func (p Payload) IsZero() bool {
	return p.kind == payloadNone
}

// null reports whether the payload is empty, a zero integer, or a nil value,
// which the printers treat alike.
func (p Payload) null() bool {
	switch p.kind {
	case payloadInt:
		return p.i == 0
	case payloadValue:
		return p.value == nil
	default:
		return true
	}
}

// String renders the payload: empty as 0, integers in decimal, and values
// using the fmt package's default format.
func (p Payload) String() string {
	switch p.kind {
	case payloadInt:
		return strconv.FormatInt(p.i, 10)
	case payloadValue:
		return fmt.Sprint(p.value)
	default:
		return `0`
	}
}
