// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/GermanBionicSystems/fmradio/memory"
	"github.com/GermanBionicSystems/fmradio/sh1106/page1bit"
)

func TestDemos(t *testing.T) {
	f := &page1bit.Font{Width: 2, Spacing: 1, First: '0', Data: make([]byte, 2*43)}
	for i := range f.Data {
		f.Data[i] = 0x7E
	}
	for name, screens := range demos {
		for i, draw := range screens {
			backing := memory.NewHeap(3 * 1024)
			p, err := page1bit.New(&offset{Heap: backing, off: 1024}, 128, 64, 32)
			if err != nil {
				t.Fatal(err)
			}
			draw(p, f)
			set := 0
			for _, v := range backing.Bytes()[1024:2048] {
				if v != 0 {
					set++
				}
			}
			if set == 0 {
				t.Errorf("%s #%d: blank screen", name, i)
			}
			for j, v := range backing.Bytes() {
				if (j < 1024 || j >= 2048) && v != 0 {
					t.Fatalf("%s #%d: byte %d outside the frame buffer modified", name, i, j)
				}
			}
		}
	}
}

// offset shifts a Heap so that any write outside the frame buffer is visible.
type offset struct {
	*memory.Heap
	off int
}

func (o *offset) Len() int                     { return 1024 }
func (o *offset) At(pos int) byte              { return o.Heap.At(o.off + pos) }
func (o *offset) Set(pos int, v byte)          { o.Heap.Set(o.off+pos, v) }
func (o *offset) ReadRange(off int, p []byte)  { o.Heap.ReadRange(o.off+off, p) }
func (o *offset) WriteRange(off int, p []byte) { o.Heap.WriteRange(o.off+off, p) }
func (o *offset) Fill(v byte, n, off int)      { o.Heap.Fill(v, n, o.off+off) }
