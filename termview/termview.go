// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termview implements a display.Drawer that shows a one bit page
// packed frame in the terminal (stdout) using ANSI color codes.
//
// Useful to work on screens while the panel is not wired yet.
package termview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/GermanBionicSystems/fmradio/memory"
	"github.com/GermanBionicSystems/fmradio/sh1106/page1bit"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	W, H int
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// On and Off are the colors of the pixels. They default to white and
	// black.
	On, Off color.Color
	// Out defaults to stdout.
	Out io.Writer

	_ struct{}
}

// Dev is a page packed OLED emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	on, off string

	plane *page1bit.Plane
	mem   *memory.Heap
	drawn bool
	buf   bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) (*Dev, error) {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	on, off := opts.On, opts.Off
	if on == nil {
		on = color.White
	}
	if off == nil {
		off = color.Black
	}
	mem := memory.NewHeap(opts.W * opts.H / 8)
	plane, err := page1bit.New(mem, opts.W, opts.H, opts.W)
	if err != nil {
		return nil, fmt.Errorf("termview: %w", err)
	}
	d := &Dev{
		w:       opts.Out,
		palette: *p,
		plane:   plane,
		mem:     mem,
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	d.on = d.palette.Block(color.NRGBAModel.Convert(on).(color.NRGBA))
	d.off = d.palette.Block(color.NRGBAModel.Convert(off).(color.NRGBA))
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("TermView{%s}", d.Bounds().Max)
}

// Halt implements conn.Resource.
//
// It resets the colors so the terminal is not corrupted.
func (d *Dev) Halt() error {
	_, err := io.WriteString(d.w, "\033[0m\n")
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return page1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.plane.Bounds()
}

// Plane returns the frame buffer. Changes are shown on the next Flush.
func (d *Dev) Plane() *page1bit.Plane {
	return d.plane
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Src.Draw(d.plane, r, src, sp)
	return d.Flush()
}

// Write accepts a page packed frame, as sh1106.Dev.Write does, and shows it.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != d.mem.Len() {
		return 0, fmt.Errorf("termview: invalid pixel stream length; expected %d bytes, got %d bytes", d.mem.Len(), len(pixels))
	}
	d.mem.WriteRange(0, pixels)
	if err := d.Flush(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Show copies the pixels of p, which must have the same size, and shows them.
func (d *Dev) Show(p *page1bit.Plane) error {
	if p.Bounds() != d.Bounds() {
		return fmt.Errorf("termview: size mismatch %s != %s", p.Bounds().Max, d.Bounds().Max)
	}
	p.Memory().ReadRange(0, d.mem.Bytes())
	return d.Flush()
}

// Flush writes the frame buffer to the console, over the previous frame.
func (d *Dev) Flush() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	h := d.plane.Height()
	if d.drawn {
		fmt.Fprintf(&d.buf, "\033[%dA", h)
	}
	for y := 0; y < h; y++ {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := 0; x < d.plane.Width(); x++ {
			if d.plane.Pixel(x, y) {
				_, _ = d.buf.WriteString(d.on)
			} else {
				_, _ = d.buf.WriteString(d.off)
			}
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
