// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package memory

import "fmt"

// Value is a single byte kept at a fixed slot.
type Value interface {
	Get() byte
	Set(v byte)
}

// Cell is a Value in main memory.
type Cell struct {
	v byte
}

// NewCell returns a Cell holding v.
func NewCell(v byte) *Cell {
	return &Cell{v: v}
}

func (c *Cell) String() string {
	return fmt.Sprintf("memory.Cell{%#02x}", c.v)
}

// Get implements Value.
func (c *Cell) Get() byte {
	return c.v
}

// Set implements Value.
func (c *Cell) Set(v byte) {
	c.v = v
}

// Slot returns the Value stored at pos in a.
//
// pos is not checked, like every index into an Array.
func Slot(a Array, pos int) Value {
	return &slot{a: a, pos: pos}
}

type slot struct {
	a   Array
	pos int
}

func (s *slot) Get() byte {
	return s.a.At(s.pos)
}

func (s *slot) Set(v byte) {
	s.a.Set(s.pos, v)
}

var _ Value = &Cell{}
var _ Value = &slot{}
