// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package page1bit draws on a 1 bit per pixel plane stored as horizontal pages
// of 8 rows, the memory layout of the SSD1306 and SH1106 OLED controllers.
//
// The byte at (page p, column x) is at index p*W+x and its bit n is the pixel
// at row p*8+n. Drawing primitives merge bits into the page bytes, which
// requires combining two adjacent bytes whenever a shape does not start on a
// page boundary.
//
// The plane lives in a memory.Array, so it can be kept in RAM or on an
// external SRAM. Bytes are moved in clusters of a fixed size to limit the
// number of read-modify-write round trips on slow backends.
package page1bit

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/GermanBionicSystems/fmradio/memory"
)

// Color is the drawing mode of a primitive.
type Color uint8

// Drawing modes.
const (
	Black   Color = 0 // clear the bits
	White   Color = 1 // set the bits
	Inverse Color = 2 // toggle the bits
)

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	case Inverse:
		return "Inverse"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}

// Bit implements a 1 bit color.
type Bit bool

// Possible bitness.
const (
	On  = Bit(true)
	Off = Bit(false)
)

// RGBA returns either all white or all black.
func (b Bit) RGBA() (uint32, uint32, uint32, uint32) {
	if b {
		return 65535, 65535, 65535, 65535
	}
	return 0, 0, 0, 65535
}

func (b Bit) String() string {
	if b {
		return "On"
	}
	return "Off"
}

// BitModel is the color Model for 1 bit color.
var BitModel = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	r, g, b, _ := c.RGBA()
	// Same luminance weights as color.GrayModel.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 24
	return Bit(y >= 128)
}

// DefaultCluster is the number of bytes moved at a time.
const DefaultCluster = 64

// Plane is a W×H 1 bit plane stored in a memory.Array.
//
// A Plane is not safe for concurrent use.
type Plane struct {
	mem   memory.Array
	w, h  int
	pages int

	// cluster stages destination bytes.
	cluster []byte
	// rows stages two source bitmap rows; the roles are swapped by index.
	rows [2][]byte
}

// New returns a Plane of w×h pixels using mem, which must hold at least
// w*h/8 bytes. h must be a multiple of 8. cluster is the size of the burst
// buffer; 0 selects DefaultCluster.
func New(mem memory.Array, w, h, cluster int) (*Plane, error) {
	if w <= 0 || h <= 0 || h&7 != 0 {
		return nil, fmt.Errorf("page1bit: invalid size %dx%d", w, h)
	}
	if n := w * h / 8; mem.Len() < n {
		return nil, fmt.Errorf("page1bit: storage holds %d bytes, need %d", mem.Len(), n)
	}
	if cluster <= 0 {
		cluster = DefaultCluster
	}
	return &Plane{
		mem:     mem,
		w:       w,
		h:       h,
		pages:   h / 8,
		cluster: make([]byte, cluster),
	}, nil
}

func (p *Plane) String() string {
	return fmt.Sprintf("page1bit.Plane{%dx%d, %s}", p.w, p.h, p.mem)
}

// Memory returns the storage of the plane.
func (p *Plane) Memory() memory.Array {
	return p.mem
}

// Width returns the number of columns.
func (p *Plane) Width() int {
	return p.w
}

// Height returns the number of rows.
func (p *Plane) Height() int {
	return p.h
}

// Pages returns the number of 8 rows pages.
func (p *Plane) Pages() int {
	return p.pages
}

// ClusterSize returns the number of bytes moved per burst.
func (p *Plane) ClusterSize() int {
	return len(p.cluster)
}

// Clear sets every byte of the plane to v.
func (p *Plane) Clear(v byte) {
	p.mem.Fill(v, p.w*p.pages, 0)
}

// ColorModel implements image.Image.
func (p *Plane) ColorModel() color.Model {
	return BitModel
}

// Bounds implements image.Image.
func (p *Plane) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.w, p.h)
}

// At implements image.Image.
func (p *Plane) At(x, y int) color.Color {
	return p.Pixel(x, y)
}

// Set implements draw.Image.
func (p *Plane) Set(x, y int, c color.Color) {
	if BitModel.Convert(c).(Bit) {
		p.SetPixel(x, y, White)
	} else {
		p.SetPixel(x, y, Black)
	}
}

// Pixel returns the bit at (x, y), Off outside the plane.
func (p *Plane) Pixel(x, y int) Bit {
	if x < 0 || x >= p.w || y < 0 || y >= p.h {
		return Off
	}
	return p.mem.At(x+(y/8)*p.w)&(1<<uint(y&7)) != 0
}

// SetPixel draws one pixel. Pixels outside the plane are ignored.
func (p *Plane) SetPixel(x, y int, c Color) {
	if x < 0 || x >= p.w || y < 0 || y >= p.h {
		return
	}
	p.SetPixelUnsafe(x, y, c)
}

// SetPixelUnsafe draws one pixel without checking that it is inside the
// plane.
func (p *Plane) SetPixelUnsafe(x, y int, c Color) {
	pos := x + (y/8)*p.w
	v := p.mem.At(pos)
	p.mem.Set(pos, apply(v, 1<<uint(y&7), c))
}

// apply combines the bits of mask into v according to c.
func apply(v, mask byte, c Color) byte {
	switch c {
	case White:
		return v | mask
	case Black:
		return v &^ mask
	case Inverse:
		return v ^ mask
	}
	return v
}

var _ draw.Image = &Plane{}
