package lfstack

import (
	"unsafe"
)

// These constants are verified via unit tests.
const (
	// sizeOfCacheLine is the size of a CPU cache line.
	// 128 covers Apple Silicon and other ARM64, as well as x86-64 (64).
	sizeOfCacheLine = 128

	// sizeOfPointer is the size of an atomic.Pointer variable.
	sizeOfPointer = int(unsafe.Sizeof(uintptr(0)))
)
