// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sh1106

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/GermanBionicSystems/fmradio/memory"
	"github.com/GermanBionicSystems/fmradio/sh1106/page1bit"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

const (
	_CHARGEPUMP          = 0x8D
	_COMSCANDEC          = 0xC8
	_DISPLAYALLON_RESUME = 0xA4
	_DISPLAYOFF          = 0xAE
	_DISPLAYON           = 0xAF
	_INVERTDISPLAY       = 0xA7
	_MEMORYMODE          = 0x20
	_NORMALDISPLAY       = 0xA6
	_PAGESTARTADDRESS    = 0xB0
	_SETCOMPINS          = 0xDA
	_SETCONTRAST         = 0x81
	_SETDISPLAYCLOCKDIV  = 0xD5
	_SETDISPLAYOFFSET    = 0xD3
	_SETHIGHCOLUMN       = 0x10
	_SETLOWCOLUMN        = 0x00
	_SETMULTIPLEX        = 0xA8
	_SETPRECHARGE        = 0xD9
	_SETSEGMENTREMAP     = 0xA1
	_SETSTARTLINE        = 0x40
	_SETVCOMDETECT       = 0xDB
)

// The SH1106 has 132 columns of RAM for 128 columns of pixels, centered.
const columnOffset = 2

// Status bits returned by ReadStatus.
const (
	StatusBusy       = 0x80
	StatusDisplayOff = 0x40
)

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	W:           128,
	H:           64,
	Addr:        0x3C,
	ClusterSize: page1bit.DefaultCluster,
}

// Opts defines the options for the device.
type Opts struct {
	W int
	H int
	// Addr is the I²C address of the display. 0 means 0x3C.
	Addr uint16
	// ExternalVCC must be set when the panel is powered by an external
	// supply instead of the internal charge pump.
	ExternalVCC bool
	// ClusterSize is the number of bytes sent per data transaction. W must
	// be a multiple of it. 0 means page1bit.DefaultCluster.
	ClusterSize int
	// Storage holds the pixels. It must have at least W*H/8 bytes. nil
	// allocates them in memory.
	Storage memory.Array
	// Reset is the optional RES pin of the panel, active low.
	Reset gpio.PinOut
}

// NewI2C returns a Dev object that communicates over I²C to a SH1106 display
// controller.
//
// The controller is initialized with the recommended sequence for a 128x64
// panel. The frame buffer is left as is; call Clear then Flush to blank the
// display.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.Addr == 0 {
		o.Addr = DefaultOpts.Addr
	}
	if o.ClusterSize == 0 {
		o.ClusterSize = page1bit.DefaultCluster
	}
	// Maximum clock speed is 400kHz.
	return newDev(&i2c.Dev{Bus: b, Addr: o.Addr}, &o)
}

// Dev is an open handle to the display controller.
type Dev struct {
	c     conn.Conn
	rect  image.Rectangle
	mem   memory.Array
	plane *page1bit.Plane
	// buf is the control byte followed by one cluster of data.
	buf    []byte
	cmd    [2]byte
	halted bool
}

func (d *Dev) String() string {
	return fmt.Sprintf("sh1106.Dev{%s, %s}", d.c, d.rect.Max)
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by page1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return page1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Plane returns the frame buffer. Changes are sent to the display on the next
// Flush.
func (d *Dev) Plane() *page1bit.Plane {
	return d.plane
}

// Draw implements display.Drawer.
//
// src is drawn over the frame buffer, then the whole frame is sent. It means
// that on slow bus (I²C), it may be preferable to defer Draw() calls to a
// background goroutine.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Src.Draw(d.plane, r, src, sp)
	return d.Flush()
}

// Write replaces the frame buffer with pixels and sends it to the display.
//
// pixels is page packed: W bytes per page of 8 rows, bit 0 of each byte being
// the top row of its page.
func (d *Dev) Write(pixels []byte) (int, error) {
	if n := d.rect.Dx() * d.rect.Dy() / 8; len(pixels) != n {
		return 0, fmt.Errorf("sh1106: invalid pixel stream length; expected %d bytes, got %d bytes", n, len(pixels))
	}
	d.mem.WriteRange(0, pixels)
	if err := d.Flush(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Clear fills the frame buffer with v. 0 is black, 0xFF is white.
func (d *Dev) Clear(v byte) {
	d.plane.Clear(v)
}

// Flush sends the frame buffer to the display.
//
// Each page is addressed, then sent in W/ClusterSize data transactions read
// one at a time from the storage.
func (d *Dev) Flush() error {
	if err := d.sendCommand(_SETLOWCOLUMN, _SETHIGHCOLUMN, _SETSTARTLINE); err != nil {
		return err
	}
	w := d.rect.Dx()
	cluster := d.buf[1:]
	for page := 0; page < d.plane.Pages(); page++ {
		err := d.sendCommand(
			_PAGESTARTADDRESS|byte(page),
			_SETLOWCOLUMN|columnOffset,
			_SETHIGHCOLUMN,
		)
		if err != nil {
			return err
		}
		for x := 0; x < w; x += len(cluster) {
			d.mem.ReadRange(page*w+x, cluster)
			if err := d.c.Tx(d.buf, nil); err != nil {
				return fmt.Errorf("sh1106: %w", err)
			}
		}
	}
	return nil
}

// SetContrast changes the screen contrast.
func (d *Dev) SetContrast(level byte) error {
	return d.sendCommand(_SETCONTRAST, level)
}

// SetStartLine causes the display to start from line, effectively scrolling
// the screen to that position.
//
// line must be between 0 and 63.
func (d *Dev) SetStartLine(line byte) error {
	if line > 63 {
		return fmt.Errorf("sh1106: invalid start line %d", line)
	}
	return d.sendCommand(_SETSTARTLINE | line)
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	if blackOnWhite {
		return d.sendCommand(_INVERTDISPLAY)
	}
	return d.sendCommand(_NORMALDISPLAY)
}

// Halt turns off the display.
//
// Sending any other command afterward reenables the display.
func (d *Dev) Halt() error {
	d.halted = false
	err := d.sendCommand(_DISPLAYOFF)
	if err == nil {
		d.halted = true
	}
	return err
}

// ReadStatus reads the status byte of the controller. See StatusBusy and
// StatusDisplayOff.
func (d *Dev) ReadStatus() (byte, error) {
	var r [1]byte
	if err := d.c.Tx([]byte{i2cCmd}, r[:]); err != nil {
		return 0, fmt.Errorf("sh1106: %w", err)
	}
	return r[0], nil
}

//

// sleep is overridden in tests.
var sleep = time.Sleep

// newDev validates the options, resets and initializes the controller.
func newDev(c conn.Conn, opts *Opts) (*Dev, error) {
	if opts.W < 8 || opts.W > 128 || opts.W&7 != 0 {
		return nil, fmt.Errorf("sh1106: invalid width %d", opts.W)
	}
	if opts.H < 8 || opts.H > 64 || opts.H&7 != 0 {
		return nil, fmt.Errorf("sh1106: invalid height %d", opts.H)
	}
	if opts.ClusterSize <= 0 || opts.W%opts.ClusterSize != 0 {
		return nil, fmt.Errorf("sh1106: width %d is not a multiple of the cluster size %d", opts.W, opts.ClusterSize)
	}
	mem := opts.Storage
	if mem == nil {
		mem = memory.NewHeap(opts.W * opts.H / 8)
	}
	p, err := page1bit.New(mem, opts.W, opts.H, opts.ClusterSize)
	if err != nil {
		return nil, fmt.Errorf("sh1106: %w", err)
	}
	d := &Dev{
		c:     c,
		rect:  image.Rect(0, 0, opts.W, opts.H),
		mem:   mem,
		plane: p,
		buf:   make([]byte, 1+opts.ClusterSize),
	}
	d.buf[0] = i2cData
	if opts.Reset != nil {
		if err := reset(opts.Reset); err != nil {
			return nil, err
		}
	}
	for _, b := range getInitCmd(opts) {
		// Acknowledgments are not checked.
		_ = d.command(b)
	}
	return d, nil
}

// reset pulses the RES pin low.
func reset(p gpio.PinOut) error {
	if err := p.Out(gpio.Low); err != nil {
		return fmt.Errorf("sh1106: failed to pull RES low: %w", err)
	}
	sleep(10 * time.Millisecond)
	if err := p.Out(gpio.High); err != nil {
		return fmt.Errorf("sh1106: failed to pull RES high: %w", err)
	}
	sleep(10 * time.Millisecond)
	return nil
}

func getInitCmd(opts *Opts) []byte {
	pump, contrast, precharge := byte(0x14), byte(0xCF), byte(0xF1)
	if opts.ExternalVCC {
		pump, contrast, precharge = 0x10, 0x9F, 0x22
	}
	return []byte{
		_DISPLAYOFF,
		_SETDISPLAYCLOCKDIV, 0x80, // Suggested ratio
		_SETMULTIPLEX, byte(opts.H - 1),
		_SETDISPLAYOFFSET, 0x00,
		_SETSTARTLINE,
		_CHARGEPUMP, pump,
		_MEMORYMODE, 0x00,
		_SETSEGMENTREMAP,
		_COMSCANDEC,
		_SETCOMPINS, 0x12,
		_SETCONTRAST, contrast,
		_SETPRECHARGE, precharge,
		_SETVCOMDETECT, 0x40,
		_DISPLAYALLON_RESUME,
		_NORMALDISPLAY,
		_DISPLAYON,
	}
}

// sendCommand sends each byte of c in its own transaction.
func (d *Dev) sendCommand(c ...byte) error {
	if d.halted {
		// Transparently enable the display.
		if err := d.command(_DISPLAYON); err != nil {
			return err
		}
		d.halted = false
	}
	for _, b := range c {
		if err := d.command(b); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dev) command(b byte) error {
	d.cmd[0] = i2cCmd
	d.cmd[1] = b
	if err := d.c.Tx(d.cmd[:], nil); err != nil {
		return fmt.Errorf("sh1106: %w", err)
	}
	return nil
}

const (
	i2cCmd  = 0x00 // I²C transaction has stream of command bytes
	i2cData = 0x40 // I²C transaction has stream of data bytes
)

var _ display.Drawer = &Dev{}
