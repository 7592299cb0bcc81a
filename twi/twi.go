// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package twi

import (
	"errors"
	"fmt"
	"sync/atomic"

	"periph.io/x/conn/v3/physic"
)

// Status is the content of the master status register.
type Status byte

// Master status register bits.
const (
	ReadIF       Status = 0x80 // a byte was received and is available
	WriteIF      Status = 0x40 // a byte or the address was sent
	ClockHold    Status = 0x20
	RxNack       Status = 0x10 // the peer did not acknowledge the last byte
	ArbLost      Status = 0x08
	BusErr       Status = 0x04
	BusStateMask Status = 0x03
)

// Bus states, as found in Status&BusStateMask.
const (
	BusUnknown Status = 0
	BusIdle    Status = 1
	BusOwner   Status = 2
	BusBusy    Status = 3
)

// Command is written to the master control register to drive the bus.
type Command byte

// Master control commands. AckAct selects NACK as the acknowledge action
// carried out by RecvTrans and Stop.
const (
	NoAct     Command = 0x00
	RecvTrans Command = 0x02
	Stop      Command = 0x03
	AckAct    Command = 0x04
)

// Controller is the register level interface of a TWI master peripheral.
type Controller interface {
	// Status returns the master status register.
	Status() Status
	// Start sends a (repeated) start condition followed by the address byte,
	// 7 bits address shifted left with the direction as bit 0 (1 = read).
	//
	// readCount is the number of bytes the master intends to read. Register
	// level peripherals ignore it; controllers emulated over a transaction
	// based bus need it.
	Start(addr byte, readCount int)
	// Transmit loads b in the data register, which sends it.
	Transmit(b byte)
	// Receive returns the last byte received.
	Receive() byte
	// Exec executes a command.
	Exec(c Command)
	// SetBaud sets the baud rate register.
	SetBaud(b byte)
}

// Errors latched by Master and returned by Err() and Tx().
var (
	ErrNack            = errors.New("twi: not acknowledged")
	ErrArbitrationLost = errors.New("twi: arbitration lost")
	ErrBusError        = errors.New("twi: bus error")
	ErrTimeout         = errors.New("twi: timeout waiting for the peripheral")
	ErrNotActive       = errors.New("twi: no transaction in progress")
)

// DefaultOpts is the configuration of the radio board: 16MHz CPU on a standard
// mode bus, waiting for the hardware forever.
var DefaultOpts = Opts{
	CPU:   16 * physic.MegaHertz,
	Speed: 100 * physic.KiloHertz,
	Wait:  Forever{},
}

// Opts configures a Master.
type Opts struct {
	// CPU is the peripheral clock, used to compute the baud rate register.
	CPU physic.Frequency
	// Speed is the initial bus speed.
	Speed physic.Frequency
	// Wait is the polling policy used for every hardware wait.
	Wait Waiter
	// OnEnd is called synchronously at the end of each transaction, before
	// Busy() becomes false.
	OnEnd func()
}

// Master drives a Controller as the only master of the bus.
type Master struct {
	ctl   Controller
	wait  Waiter
	cpu   physic.Frequency
	speed physic.Frequency
	onEnd func()

	busy      atomic.Bool
	active    bool // the address was acknowledged and nothing failed since
	done      bool // the final byte of the read was received
	bytesLeft int
	err       error
}

// New returns a Master using the controller c.
func New(c Controller, opts *Opts) (*Master, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	m := &Master{
		ctl:   c,
		wait:  opts.Wait,
		cpu:   opts.CPU,
		onEnd: opts.OnEnd,
	}
	if m.wait == nil {
		m.wait = Forever{}
	}
	if m.cpu == 0 {
		m.cpu = DefaultOpts.CPU
	}
	speed := opts.Speed
	if speed == 0 {
		speed = DefaultOpts.Speed
	}
	if err := m.SetSpeed(speed); err != nil {
		return nil, err
	}
	return m, nil
}

// Busy reports whether a transaction is in flight.
//
// It may be called from another goroutine.
func (m *Master) Busy() bool {
	return m.busy.Load()
}

// Err returns the failure of the current or last transaction, if any. It is
// cleared by Begin.
func (m *Master) Err() error {
	return m.err
}

// Begin sends a start condition and the address. The transaction reads
// readCount bytes when readCount is not 0 and writes otherwise.
//
// It returns true if the peer acknowledged its address. It returns false
// immediately, without blocking further, if arbitration was lost or a bus
// error is latched. In every case the caller must terminate with End.
func (m *Master) Begin(addr byte, readCount int) bool {
	m.busy.Store(true)
	m.err = nil
	m.active = false
	m.done = false
	m.bytesLeft = 0
	if readCount < 0 {
		m.err = fmt.Errorf("twi: invalid read count %d", readCount)
		return false
	}
	dir := byte(0)
	if readCount != 0 {
		m.bytesLeft = readCount
		dir = 1
	}
	m.ctl.Start(addr<<1|dir, readCount)
	if !m.poll(ReadIF | WriteIF) {
		return false
	}
	if !m.check() {
		return false
	}
	if m.ctl.Status()&RxNack != 0 {
		m.err = ErrNack
		return false
	}
	m.active = true
	return true
}

// Restart sends a repeated start. It must follow End(false).
func (m *Master) Restart(addr byte, readCount int) bool {
	return m.Begin(addr, readCount)
}

// RequestFrom begins a read transaction of n bytes.
func (m *Master) RequestFrom(addr byte, n int) bool {
	return m.Begin(addr, n)
}

// Write sends one byte and returns true if the peer acknowledged it.
//
// It returns false without touching the bus when Begin failed or the
// transaction was aborted by an arbitration loss or a bus error.
func (m *Master) Write(b byte) bool {
	if !m.isActive() || !m.poll(WriteIF) {
		return false
	}
	m.ctl.Transmit(b)
	m.ctl.Exec(RecvTrans)
	if !m.check() {
		return false
	}
	if m.ctl.Status()&RxNack != 0 {
		m.err = ErrNack
		return false
	}
	return true
}

// WriteBytes sends every byte of p, ignoring acknowledgment, like a reset
// sequence would. It returns the number of bytes acknowledged.
func (m *Master) WriteBytes(p []byte) int {
	n := 0
	for _, b := range p {
		if m.Write(b) {
			n++
		}
	}
	return n
}

// Read returns the next byte of a read transaction.
//
// The byte is acknowledged while more bytes are expected; the last expected
// byte is not acknowledged, which tells the peer to stop driving the bus.
// Reading past the expected count keeps sending NACK; the transaction ends
// only once, on the first NACKed byte.
//
// It returns 0xFF when no transaction is active.
func (m *Master) Read() byte {
	if !m.isActive() {
		return 0xFF
	}
	if m.bytesLeft > 0 {
		m.bytesLeft--
	}
	if !m.poll(ReadIF) || !m.check() {
		return 0xFF
	}
	b := m.ctl.Receive()
	if m.bytesLeft != 0 {
		m.ctl.Exec(RecvTrans)
		return b
	}
	m.ctl.Exec(AckAct | RecvTrans)
	if !m.done {
		m.done = true
		m.finish()
	}
	return b
}

// ReadLast reads one byte and NACKs it, regardless of the remaining count.
func (m *Master) ReadLast() byte {
	m.bytesLeft = 0
	return m.Read()
}

// ReadBytes fills p with Read.
func (m *Master) ReadBytes(p []byte) {
	for i := range p {
		p[i] = m.Read()
	}
}

// End terminates the transaction. With sendStop the bus is released,
// otherwise it is held so that Restart can chain another transaction, e.g.
// writing a register pointer then reading from it.
func (m *Master) End(sendStop bool) {
	if sendStop {
		m.ctl.Exec(AckAct | Stop)
	} else {
		m.ctl.Exec(AckAct)
	}
	if m.err == nil && m.ctl.Status()&BusErr != 0 {
		m.err = ErrBusError
	}
	m.active = false
	if m.busy.Load() {
		m.finish()
	}
}

// finish runs the completion callback then clears the busy flag.
func (m *Master) finish() {
	if m.onEnd != nil {
		m.onEnd()
	}
	m.busy.Store(false)
}

// isActive reports whether bytes can be exchanged, latching ErrNotActive
// if nothing else explains why they cannot.
func (m *Master) isActive() bool {
	if m.active {
		return true
	}
	if m.err == nil {
		m.err = ErrNotActive
	}
	return false
}

// check aborts the transaction on arbitration loss or bus error.
func (m *Master) check() bool {
	s := m.ctl.Status()
	switch {
	case s&ArbLost != 0:
		m.err = ErrArbitrationLost
	case s&BusErr != 0:
		m.err = ErrBusError
	default:
		return true
	}
	m.active = false
	return false
}

// poll waits until one of the status bits in mask is set.
func (m *Master) poll(mask Status) bool {
	if m.wait.Wait(func() bool { return m.ctl.Status()&mask != 0 }) {
		return true
	}
	m.err = ErrTimeout
	return false
}
