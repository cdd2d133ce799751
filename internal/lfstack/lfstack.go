// Package lfstack implements a singly linked, multi-producer, lock-free stack.
//
// Only Push is safe to call from any number of goroutines. Every other
// mutating method assumes a single logical consumer, which the caller must
// coordinate. Nodes are reclaimed by the garbage collector, so a node popped
// by the consumer can never be observed again by a racing producer's CAS.
package lfstack

import (
	"iter"
	"sync/atomic"
)

type (
	// Stack is a lock-free LIFO. The zero value is an empty stack, ready to
	// use. It must not be copied after first use.
	Stack[T any] struct { // betteralign:ignore
		_    [sizeOfCacheLine]byte //nolint:unused
		head atomic.Pointer[node[T]]
		_    [sizeOfCacheLine - sizeOfPointer]byte //nolint:unused
	}

	node[T any] struct {
		item T
		next atomic.Pointer[node[T]]
	}
)

// Push adds v to the top of the stack. Safe for concurrent use.
func (s *Stack[T]) Push(v T) {
	n := &node[T]{item: v}
	for {
		head := s.head.Load()
		n.next.Store(head)
		if s.head.CompareAndSwap(head, n) {
			return
		}
	}
}

// PopHead removes and returns the most recently pushed item.
//
// Single consumer only. Concurrent pushes are tolerated.
func (s *Stack[T]) PopHead() (v T, ok bool) {
	for {
		head := s.head.Load()
		if head == nil {
			return
		}
		if s.head.CompareAndSwap(head, head.next.Load()) {
			v = head.item
			head.item = *new(T)
			head.next.Store(nil)
			return v, true
		}
	}
}

// PopTail removes and returns the oldest item, walking the whole chain.
//
// Single consumer only. Concurrent pushes are tolerated.
func (s *Stack[T]) PopTail() (v T, ok bool) {
	for {
		head := s.head.Load()
		if head == nil {
			return
		}

		var prev *node[T]
		last := head
		for next := last.next.Load(); next != nil; next = last.next.Load() {
			prev = last
			last = next
		}

		if prev == nil {
			// single element, the head itself, which a producer may be racing on
			if !s.head.CompareAndSwap(head, nil) {
				continue
			}
		} else {
			// producers never touch links below the head
			prev.next.Store(nil)
		}

		v = last.item
		last.item = *new(T)
		return v, true
	}
}

// Reverse flips the order of the stack in place, so that the oldest item
// becomes the head. Items pushed while Reverse runs end up above the reversed
// chain, in their own push order.
//
// Single consumer only.
func (s *Stack[T]) Reverse() {
	chain := s.head.Swap(nil)
	if chain == nil {
		return
	}

	var rev *node[T]
	for chain != nil {
		next := chain.next.Load()
		chain.next.Store(rev)
		rev = chain
		chain = next
	}

	for {
		top := s.head.Load()
		if top == nil {
			if s.head.CompareAndSwap(nil, rev) {
				return
			}
			continue
		}
		// something was pushed while detached, hang the reversed chain below it
		bottom := top
		for next := bottom.next.Load(); next != nil; next = bottom.next.Load() {
			bottom = next
		}
		bottom.next.Store(rev)
		return
	}
}

// Take atomically detaches every item, returning them as a new stack, in the
// same order. Producers continue pushing into the (now empty) receiver.
func (s *Stack[T]) Take() *Stack[T] {
	var out Stack[T]
	out.head.Store(s.head.Swap(nil))
	return &out
}

// Size counts the items by walking the chain. The result is only an estimate
// when producers are active.
func (s *Stack[T]) Size() (n int) {
	for p := s.head.Load(); p != nil; p = p.next.Load() {
		n++
	}
	return
}

// Empty reports whether the stack currently has no items.
func (s *Stack[T]) Empty() bool {
	return s.head.Load() == nil
}

// Clear discards every item.
func (s *Stack[T]) Clear() {
	s.head.Store(nil)
}

// All iterates from the head (most recent) to the tail (oldest). It is safe
// to call concurrently with Push, and will not observe items pushed after it
// loaded the head.
func (s *Stack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for p := s.head.Load(); p != nil; p = p.next.Load() {
			if !yield(p.item) {
				return
			}
		}
	}
}

// Find returns the first item, from the head, for which match returns true.
func (s *Stack[T]) Find(match func(T) bool) (v T, ok bool) {
	for item := range s.All() {
		if match(item) {
			return item, true
		}
	}
	return
}
