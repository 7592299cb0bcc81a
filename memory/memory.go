// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package memory implements byte addressable stores used as pixel planes and
// bitmap sources.
//
// Every backend satisfies the same Array contract so drawing code does not
// care whether the bytes live in RAM or on a device reachable over a bus.
//
// Indices are never checked. Valid positions are [0, Len()) and the caller is
// responsible for staying inside that range.
package memory

import "fmt"

// Array is a fixed size addressable byte store.
type Array interface {
	// Len returns the number of addressable bytes.
	Len() int
	// At returns the byte at pos.
	At(pos int) byte
	// Set stores v at pos.
	Set(pos int, v byte)
	// ReadRange copies len(p) bytes starting at off into p.
	ReadRange(off int, p []byte)
	// WriteRange copies p into the store starting at off.
	WriteRange(off int, p []byte)
	// Fill sets n bytes starting at off to v.
	Fill(v byte, n, off int)
}

// Heap is an Array backed by a slice in main memory.
type Heap struct {
	b []byte
}

// NewHeap returns a zeroed Heap of n bytes. The allocation is owned by the
// Heap.
func NewHeap(n int) *Heap {
	return &Heap{b: make([]byte, n)}
}

// Wrap returns a Heap that uses b as its storage without copying it.
//
// It is mostly useful for constant bitmaps and fonts.
func Wrap(b []byte) *Heap {
	return &Heap{b: b}
}

func (h *Heap) String() string {
	return fmt.Sprintf("memory.Heap{%d}", len(h.b))
}

// Bytes returns the underlying storage.
func (h *Heap) Bytes() []byte {
	return h.b
}

// Len implements Array.
func (h *Heap) Len() int {
	return len(h.b)
}

// At implements Array.
func (h *Heap) At(pos int) byte {
	return h.b[pos]
}

// Set implements Array.
func (h *Heap) Set(pos int, v byte) {
	h.b[pos] = v
}

// ReadRange implements Array.
func (h *Heap) ReadRange(off int, p []byte) {
	copy(p, h.b[off:off+len(p)])
}

// WriteRange implements Array.
func (h *Heap) WriteRange(off int, p []byte) {
	copy(h.b[off:off+len(p)], p)
}

// Fill implements Array.
func (h *Heap) Fill(v byte, n, off int) {
	s := h.b[off : off+n]
	for i := range s {
		s[i] = v
	}
}

var _ Array = &Heap{}
