// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"math"

	"github.com/GermanBionicSystems/fmradio/memory"
	"github.com/GermanBionicSystems/fmradio/sh1106/page1bit"
)

var demos = map[string][]func(*page1bit.Plane, *page1bit.Font){
	"radio":  {radio(87.5, 2), radio(104.3, 5)},
	"shapes": {shapes, sine},
	"bitmap": {speakers(0), speakers(3), speakers(5)},
}

// antenna is a 8×16 page packed icon.
var antenna = []byte{
	0x03, 0x0C, 0x30, 0xC0, 0xC0, 0x30, 0x0C, 0x03,
	0x00, 0x00, 0x00, 0xFF, 0xFF, 0x00, 0x00, 0x00,
}

// radio draws a tuner screen at freq MHz with a signal strength of level
// bars out of 5.
func radio(freq float64, level int) func(*page1bit.Plane, *page1bit.Font) {
	return func(p *page1bit.Plane, f *page1bit.Font) {
		p.Bitmap(2, 2, 8, 16, memory.Wrap(antenna), 1)
		for i := 0; i < 5; i++ {
			x, h := 14+i*4, 3+i*3
			if i < level {
				p.FillRect(x, 18-h, 3, h, page1bit.White)
			} else {
				p.Rect(x, 18-h, 3, h, page1bit.White)
			}
		}
		t := p.NewText(f)
		t.SetCursor(48, 1)
		fmt.Fprintf(t, "%5.1f MHz", freq)
		p.HLine(0, 24, p.Width(), page1bit.White)
		// Tuning scale from 87.5 to 108MHz.
		for mhz := 88; mhz <= 108; mhz += 2 {
			x := 4 + (mhz-88)*6
			p.VLinePattern(x, 48, 8, 0x55)
		}
		x := 4 + int((freq-88)*6)
		p.VLine(x, 40, 24, page1bit.Inverse)
		t.Background = page1bit.BgNone
		t.SetCursor(0, 4)
		_, _ = t.WriteString("STEREO\r\n")
		t.Color = page1bit.Inverse
		_, _ = t.WriteString("RDS")
	}
}

func shapes(p *page1bit.Plane, f *page1bit.Font) {
	w, h := p.Width(), p.Height()
	for i := 0; i < 4; i++ {
		p.Rect(i*4, i*4, w-i*8, h-i*8, page1bit.White)
	}
	p.Line(0, 0, w-1, h-1, page1bit.Inverse)
	p.Line(0, h-1, w-1, 0, page1bit.Inverse)
	p.FillRect(w/2-20, h/2-6, 40, 13, page1bit.Inverse)
}

func sine(p *page1bit.Plane, f *page1bit.Font) {
	w, h := p.Width(), p.Height()
	p.HLine(0, h/2, w, page1bit.White)
	p.VLine(w/2, 0, h, page1bit.White)
	scale := float64(h/2 - 4)
	px, py := 0, h/2
	for x := 1; x < w; x++ {
		y := h/2 - int(math.Sin(float64(x)*4*math.Pi/float64(w))*scale)
		p.Line(px, py, x, y, page1bit.White)
		px, py = x, y
	}
}

// speakers tiles the antenna icon at a vertical offset that is not on a page
// boundary.
func speakers(dy int) func(*page1bit.Plane, *page1bit.Font) {
	return func(p *page1bit.Plane, f *page1bit.Font) {
		src := memory.Wrap(antenna)
		for y := -8; y < p.Height(); y += 20 {
			p.Bitmap(-3, y+dy, 8, 16, src, 17)
		}
		t := p.NewText(f)
		t.SetCursor(0, p.Pages()-1)
		fmt.Fprintf(t, "offset %d", dy)
	}
}
