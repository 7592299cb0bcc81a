// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package page1bit

import "github.com/GermanBionicSystems/fmradio/memory"

// Bitmap draws the page packed bitmap src of bw×bh pixels at (x, y), repeated
// loop times horizontally. bh is rounded down to a multiple of 8. A loop of 0
// is treated as 1.
//
// The bitmap is opaque, except when y is not on a page boundary: the rows of
// the first destination page above the bitmap are kept, and the last
// destination page receives the bottom rows of the bitmap over zeros.
//
// Columns outside the plane are clipped and destination pages outside the
// plane are skipped.
func (p *Plane) Bitmap(x, y, bw, bh int, src memory.Array, loop int) {
	rows := bh / 8
	if bw <= 0 || rows <= 0 {
		return
	}
	if loop <= 0 {
		loop = 1
	}
	// Visible columns of the tiled bitmap, relative to x.
	first, last := 0, bw*loop
	if x < 0 {
		first = -x
	}
	if x+last > p.w {
		last = p.w - x
	}
	if first >= last {
		return
	}
	for i := range p.rows {
		if cap(p.rows[i]) < bw {
			p.rows[i] = make([]byte, bw)
		}
		p.rows[i] = p.rows[i][:bw]
	}
	page := y >> 3
	r := uint(y & 7)
	cur, next := 0, 1

	src.ReadRange(0, p.rows[cur])
	if r == 0 {
		p.bitmapRow(page, x, first, last, func(j int, _ byte) byte {
			return p.rows[cur][j]
		}, false)
	} else {
		// Keep the r rows above the bitmap.
		keep := tailMask[r]
		p.bitmapRow(page, x, first, last, func(j int, d byte) byte {
			return d&keep | p.rows[cur][j]<<r
		}, true)
	}

	for k := 1; k < rows; k++ {
		src.ReadRange(k*bw, p.rows[next])
		p.bitmapRow(page+k, x, first, last, func(j int, _ byte) byte {
			return Merge(p.rows[next][j], p.rows[cur][j], r)
		}, false)
		cur, next = next, cur
	}

	if r != 0 {
		p.bitmapRow(page+rows, x, first, last, func(j int, _ byte) byte {
			return Merge(0, p.rows[cur][j], r)
		}, false)
	}
}

// bitmapRow computes the destination bytes of columns [first, last) of page
// with merge, which receives the source column and the current destination
// byte (only read when readDst is set), and writes them back in clusters.
func (p *Plane) bitmapRow(page, x, first, last int, merge func(j int, dst byte) byte, readDst bool) {
	if page < 0 || page >= p.pages {
		return
	}
	bw := len(p.rows[0])
	pos := page*p.w + x
	for i := first; i < last; {
		k := len(p.cluster)
		if last-i < k {
			k = last - i
		}
		buf := p.cluster[:k]
		if readDst {
			p.mem.ReadRange(pos+i, buf)
		}
		for n := range buf {
			var d byte
			if readDst {
				d = buf[n]
			}
			buf[n] = merge((i+n)%bw, d)
		}
		p.mem.WriteRange(pos+i, buf)
		i += k
	}
}
