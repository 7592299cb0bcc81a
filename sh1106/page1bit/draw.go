// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package page1bit

// Merge returns the byte spanning a page boundary r rows below the start of
// a: the low 8-r bits of a moved up by r, over the high r bits of b moved
// down by 8-r.
//
// r must be in [0, 8). Merge(a, b, 0) is a.
func Merge(a, b byte, r uint) byte {
	if r == 0 {
		return a
	}
	return a<<r | b>>(8-r)
}

// headMask[n] selects the n high bits of a byte.
var headMask = [9]byte{0x00, 0x80, 0xC0, 0xE0, 0xF0, 0xF8, 0xFC, 0xFE, 0xFF}

// tailMask[n] selects the n low bits of a byte.
var tailMask = [9]byte{0x00, 0x01, 0x03, 0x07, 0x0F, 0x1F, 0x3F, 0x7F, 0xFF}

// HLine draws the horizontal run [x, x+w) on row y.
//
// The run is clipped to the plane; a run left empty by clipping draws
// nothing.
func (p *Plane) HLine(x, y, w int, c Color) {
	if y < 0 || y >= p.h {
		return
	}
	if x < 0 {
		w += x
		x = 0
	}
	if x+w > p.w {
		w = p.w - x
	}
	if w <= 0 {
		return
	}
	pos := (y/8)*p.w + x
	mask := byte(1) << uint(y&7)
	for w != 0 {
		k := len(p.cluster)
		if w < k {
			k = w
		}
		buf := p.cluster[:k]
		p.mem.ReadRange(pos, buf)
		for i := range buf {
			buf[i] = apply(buf[i], mask, c)
		}
		p.mem.WriteRange(pos, buf)
		pos += k
		w -= k
	}
}

// VLine draws the vertical run [y, y+h) on column x.
func (p *Plane) VLine(x, y, h int, c Color) {
	p.vline(x, y, h, c, 0, false)
}

// VLinePattern ORs pattern into the vertical run [y, y+h) on column x. The
// pattern is applied byte wise in page coordinates, so it only lands on the
// rows covered by the run. This is used for dithering.
func (p *Plane) VLinePattern(x, y, h int, pattern byte) {
	p.vline(x, y, h, White, pattern, true)
}

func (p *Plane) vline(x, y, h int, c Color, pattern byte, usePattern bool) {
	if x < 0 || x >= p.w {
		return
	}
	if y < 0 {
		h += y
		y = 0
	}
	if y+h > p.h {
		h = p.h - y
	}
	if h <= 0 {
		return
	}
	pos := (y/8)*p.w + x

	// Leading partial byte.
	if r := y & 7; r != 0 {
		n := 8 - r
		mask := headMask[n]
		if h < n {
			mask &= 0xFF >> uint(n-h)
		}
		v := p.mem.At(pos)
		if usePattern {
			v |= mask & pattern
		} else {
			v = apply(v, mask, c)
		}
		p.mem.Set(pos, v)
		if h <= n {
			return
		}
		h -= n
		pos += p.w
	}

	// Whole bytes, 8 rows at a time.
	if h >= 8 {
		if c == Inverse && !usePattern {
			for ; h >= 8; h -= 8 {
				p.mem.Set(pos, ^p.mem.At(pos))
				pos += p.w
			}
		} else {
			v := pattern
			if !usePattern {
				v = 0
				if c == White {
					v = 0xFF
				}
			}
			for ; h >= 8; h -= 8 {
				p.mem.Set(pos, v)
				pos += p.w
			}
		}
	}

	// Trailing partial byte.
	if h != 0 {
		mask := tailMask[h]
		v := p.mem.At(pos)
		if usePattern {
			v |= mask & pattern
		} else {
			v = apply(v, mask, c)
		}
		p.mem.Set(pos, v)
	}
}

// FillRect draws the rectangle [x, x+w)×[y, y+h) column by column.
func (p *Plane) FillRect(x, y, w, h int, c Color) {
	for i := x; i < x+w; i++ {
		p.VLine(i, y, h, c)
	}
}

// Line draws a line between (x0, y0) and (x1, y1), both included.
//
// The axis with the largest delta drives the iteration one pixel at a time;
// the other coordinate advances by a fixed point increment with 8 fractional
// bits.
func (p *Plane) Line(x0, y0, x1, y1 int, c Color) {
	yLonger := false
	short := y1 - y0
	long := x1 - x0
	if abs(short) > abs(long) {
		short, long = long, short
		yLonger = true
	}
	inc := 0
	if long != 0 {
		inc = (short << 8) / long
	}
	if yLonger {
		if long > 0 {
			end := y0 + long
			for j := 0x80 + x0<<8; y0 <= end; y0++ {
				p.SetPixel(j>>8, y0, c)
				j += inc
			}
			return
		}
		end := y0 + long
		for j := 0x80 + x0<<8; y0 >= end; y0-- {
			p.SetPixel(j>>8, y0, c)
			j -= inc
		}
		return
	}
	if long > 0 {
		end := x0 + long
		for j := 0x80 + y0<<8; x0 <= end; x0++ {
			p.SetPixel(x0, j>>8, c)
			j += inc
		}
		return
	}
	end := x0 + long
	for j := 0x80 + y0<<8; x0 >= end; x0-- {
		p.SetPixel(x0, j>>8, c)
		j -= inc
	}
}

// Rect draws the outline of the rectangle [x, x+w)×[y, y+h).
func (p *Plane) Rect(x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	p.HLine(x, y, w, c)
	if h > 1 {
		p.HLine(x, y+h-1, w, c)
	}
	if h > 2 {
		p.VLine(x, y+1, h-2, c)
		if w > 1 {
			p.VLine(x+w-1, y+1, h-2, c)
		}
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
