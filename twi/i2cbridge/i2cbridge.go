// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package i2cbridge emulates a TWI master peripheral on top of a periph I²C
// bus, so that twi.Master can drive real hardware from a host and be tested
// against i2ctest.Playback.
//
// Writes are buffered and sent as a single Tx when the transaction ends; a
// write followed by a repeated start read is merged into one Tx with both w
// and r. Since the underlying bus only reports the outcome of the whole
// transaction, data bytes are acknowledged optimistically and a failed Tx
// raises the bus error flag, which stays set until the next start condition.
//
// Faults lets tests simulate arbitration loss, bus errors, unacknowledged
// addresses and a bus that never becomes ready.
package i2cbridge

import (
	"fmt"

	"github.com/GermanBionicSystems/fmradio/twi"
	"periph.io/x/conn/v3/i2c"
)

// Faults are conditions simulated on the next start conditions and written
// bytes.
type Faults struct {
	// ArbitrationLost makes the address phase or the next written byte lose
	// arbitration.
	ArbitrationLost bool
	// BusError latches a bus error during the address phase or the next
	// written byte.
	BusError bool
	// NackAddress makes the address phase unacknowledged.
	NackAddress bool
	// Stuck makes the peripheral never report completion.
	Stuck bool
}

// Controller implements twi.Controller over an i2c.Bus.
type Controller struct {
	// Faults are applied at every start condition while set.
	Faults Faults
	// Acks records the acknowledge action sent after each byte read, true for
	// ACK and false for NACK.
	Acks []bool

	bus    i2c.Bus
	status twi.Status
	baud   byte
	err    error

	addr    uint16
	reading bool
	held    bool // a write is pending for a repeated start
	w       []byte
	r       []byte
	ri      int
}

// New returns a Controller emulated on b.
func New(b i2c.Bus) *Controller {
	return &Controller{bus: b, status: twi.BusIdle}
}

func (c *Controller) String() string {
	return fmt.Sprintf("i2cbridge{%s}", c.bus)
}

// Err returns the error of the last failed bus transaction.
func (c *Controller) Err() error {
	return c.err
}

// Baud returns the last value written to the baud register.
func (c *Controller) Baud() byte {
	return c.baud
}

// Status implements twi.Controller.
func (c *Controller) Status() twi.Status {
	if c.Faults.Stuck {
		return twi.BusBusy
	}
	return c.status
}

// Start implements twi.Controller.
func (c *Controller) Start(addr byte, readCount int) {
	a := uint16(addr >> 1)
	read := addr&1 != 0
	switch {
	case c.Faults.Stuck:
		c.abort()
		return
	case c.Faults.ArbitrationLost:
		c.abort()
		c.status = twi.WriteIF | twi.ArbLost | twi.BusBusy
		return
	case c.Faults.BusError:
		c.abort()
		c.status = twi.WriteIF | twi.BusErr | twi.BusUnknown
		return
	case c.Faults.NackAddress:
		c.abort()
		c.status = twi.WriteIF | twi.RxNack | twi.BusOwner
		return
	}
	if c.held && (!read || a != c.addr) {
		// A repeated start that cannot be merged: flush the pending write.
		c.flush(nil)
	}
	c.addr = a
	c.reading = read
	if !read {
		c.held = true
		c.w = c.w[:0]
		c.status = twi.WriteIF | twi.BusOwner
		return
	}
	if readCount < 0 {
		readCount = 0
	}
	if cap(c.r) < readCount {
		c.r = make([]byte, readCount)
	}
	c.r = c.r[:readCount]
	c.ri = 0
	if !c.flush(c.r) {
		c.status = twi.WriteIF | twi.RxNack | twi.BusOwner
		return
	}
	c.status = twi.ReadIF | twi.ClockHold | twi.BusOwner
}

// Transmit implements twi.Controller.
func (c *Controller) Transmit(b byte) {
	switch {
	case c.Faults.ArbitrationLost:
		c.abort()
		c.status = twi.WriteIF | twi.ArbLost | twi.BusBusy
		return
	case c.Faults.BusError:
		c.abort()
		c.status = twi.WriteIF | twi.BusErr | twi.BusUnknown
		return
	}
	if c.reading || !c.held {
		c.status = twi.WriteIF | twi.BusErr | twi.BusUnknown
		return
	}
	c.w = append(c.w, b)
	c.status = twi.WriteIF | twi.ClockHold | twi.BusOwner
}

// Receive implements twi.Controller.
//
// Bytes past the count requested at Start read as 0xFF, the level of an
// undriven bus.
func (c *Controller) Receive() byte {
	if !c.reading || c.ri >= len(c.r) {
		return 0xFF
	}
	return c.r[c.ri]
}

// Exec implements twi.Controller.
func (c *Controller) Exec(cmd twi.Command) {
	switch cmd &^ twi.AckAct {
	case twi.RecvTrans:
		if c.reading {
			c.Acks = append(c.Acks, cmd&twi.AckAct == 0)
			c.ri++
			c.status = twi.ReadIF | twi.ClockHold | twi.BusOwner
		}
	case twi.Stop:
		ok := true
		if c.held {
			ok = c.flush(nil)
		}
		c.reading = false
		if ok {
			c.status = twi.BusIdle
		}
	}
}

// SetBaud implements twi.Controller.
func (c *Controller) SetBaud(b byte) {
	c.baud = b
}

// flush sends the pending write, if any, followed by a read into r.
func (c *Controller) flush(r []byte) bool {
	var w []byte
	if c.held {
		w = c.w
	}
	c.held = false
	if err := c.bus.Tx(c.addr, w, r); err != nil {
		c.err = err
		c.status = twi.BusErr | twi.BusUnknown
		return false
	}
	c.err = nil
	return true
}

// abort drops any pending write.
func (c *Controller) abort() {
	c.held = false
	c.reading = false
	c.w = c.w[:0]
}

var _ twi.Controller = &Controller{}
