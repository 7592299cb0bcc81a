// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package memory

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

// DefaultDeviceOpts is the layout used by the radio firmware: the frame buffer
// lives at offset 1024 of a 2kiB 47C16 SRAM at its default I²C address.
var DefaultDeviceOpts = DeviceOpts{
	Addr:  0x50,
	Base:  1024,
	Size:  1024,
	MaxTx: 32,
}

// DeviceOpts describes a region of an external SRAM.
type DeviceOpts struct {
	// Addr is the I²C address of the SRAM. Only used by NewI2C.
	Addr uint16
	// Base is the SRAM address mapped to position 0 of the Array.
	Base int
	// Size is the number of bytes exposed.
	Size int
	// MaxTx is the maximum number of data bytes in a single transaction.
	MaxTx int
}

// Device is an Array stored on an external byte addressable SRAM that uses a
// 16 bits big endian address prefix, like the Microchip 47xxx family.
//
// Since Array methods do not return errors, Device uses a persistent error
// model: the first bus error is kept, all following operations are skipped
// and Err() reports it. Reads return zeros once an error occurred.
type Device struct {
	c     conn.Conn
	base  int
	size  int
	maxTx int
	buf   []byte
	err   error
}

// NewI2C returns a Device reached through the I²C bus b.
func NewI2C(b i2c.Bus, opts *DeviceOpts) (*Device, error) {
	if opts == nil {
		opts = &DefaultDeviceOpts
	}
	addr := opts.Addr
	if addr == 0 {
		addr = DefaultDeviceOpts.Addr
	}
	return New(&i2c.Dev{Bus: b, Addr: addr}, opts)
}

// New returns a Device using an already addressed connection.
func New(c conn.Conn, opts *DeviceOpts) (*Device, error) {
	if opts == nil {
		opts = &DefaultDeviceOpts
	}
	if opts.Size <= 0 {
		return nil, fmt.Errorf("memory: invalid size %d", opts.Size)
	}
	if opts.Base < 0 || opts.Base+opts.Size > 0x10000 {
		return nil, fmt.Errorf("memory: region [%d, %d) outside the 16 bits address space", opts.Base, opts.Base+opts.Size)
	}
	maxTx := opts.MaxTx
	if maxTx <= 0 {
		maxTx = DefaultDeviceOpts.MaxTx
	}
	return &Device{
		c:     c,
		base:  opts.Base,
		size:  opts.Size,
		maxTx: maxTx,
		buf:   make([]byte, 2+maxTx),
	}, nil
}

func (d *Device) String() string {
	return fmt.Sprintf("memory.Device{%s, %#x, %d}", d.c, d.base, d.size)
}

// Err returns the first error that occurred, if any.
func (d *Device) Err() error {
	return d.err
}

// Len implements Array.
func (d *Device) Len() int {
	return d.size
}

// At implements Array.
func (d *Device) At(pos int) byte {
	var v [1]byte
	d.ReadRange(pos, v[:])
	return v[0]
}

// Set implements Array.
func (d *Device) Set(pos int, v byte) {
	d.WriteRange(pos, []byte{v})
}

// ReadRange implements Array.
func (d *Device) ReadRange(off int, p []byte) {
	for len(p) != 0 {
		n := len(p)
		if n > d.maxTx {
			n = d.maxTx
		}
		d.setAddress(off)
		d.tx(d.buf[:2], p[:n])
		if d.err != nil {
			for i := range p {
				p[i] = 0
			}
			return
		}
		off += n
		p = p[n:]
	}
}

// WriteRange implements Array.
func (d *Device) WriteRange(off int, p []byte) {
	for len(p) != 0 {
		n := copy(d.buf[2:], p)
		d.setAddress(off)
		d.tx(d.buf[:2+n], nil)
		off += n
		p = p[n:]
	}
}

// Fill implements Array.
func (d *Device) Fill(v byte, n, off int) {
	for n != 0 {
		k := n
		if k > d.maxTx {
			k = d.maxTx
		}
		for i := 0; i < k; i++ {
			d.buf[2+i] = v
		}
		d.setAddress(off)
		d.tx(d.buf[:2+k], nil)
		off += k
		n -= k
	}
}

func (d *Device) setAddress(off int) {
	a := d.base + off
	d.buf[0] = byte(a >> 8)
	d.buf[1] = byte(a)
}

// tx is a helper function to call Tx and handle the error by persisting it.
func (d *Device) tx(w, r []byte) {
	if d.err != nil {
		return
	}
	if err := d.c.Tx(w, r); err != nil {
		d.err = fmt.Errorf("memory: %s: %w", d.c, err)
	}
}

var _ Array = &Device{}
