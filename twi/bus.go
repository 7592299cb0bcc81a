// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package twi

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Speed classes of the bus, with the maximum rise time each one allows.
const (
	Standard     = 100 * physic.KiloHertz
	FastMode     = 400 * physic.KiloHertz
	FastModePlus = 1000 * physic.KiloHertz
)

func (m *Master) String() string {
	return fmt.Sprintf("twi.Master{%s}", m.speed)
}

// SetSpeed implements i2c.Bus.
//
// The baud register is computed from the CPU clock and the worst case rise
// time of the speed class f belongs to. Fast mode plus needs a CPU clock of
// at least 16MHz.
func (m *Master) SetSpeed(f physic.Frequency) error {
	b, err := baud(m.cpu, f)
	if err != nil {
		return err
	}
	m.ctl.SetBaud(b)
	m.speed = f
	return nil
}

// baud returns the baud register value for a bus speed f.
func baud(cpu, f physic.Frequency) (byte, error) {
	var tRise int64 // ns
	switch {
	case f <= 0:
		return 0, fmt.Errorf("twi: invalid speed %s", f)
	case f <= Standard:
		tRise = 1000
	case f <= FastMode:
		tRise = 300
	case f <= FastModePlus:
		tRise = 120
	default:
		return 0, fmt.Errorf("twi: speed %s above fast mode plus", f)
	}
	fCPU := int64(cpu / physic.Hertz)
	kHz := int64(f / physic.KiloHertz)
	if kHz == 0 {
		return 0, fmt.Errorf("twi: speed %s below 1kHz", f)
	}
	v := (fCPU/1000/kHz - fCPU*tRise/1000/1000/1000 - 10) / 2
	if v < 0 || v > 255 {
		return 0, fmt.Errorf("twi: speed %s unreachable with a %s clock", f, cpu)
	}
	return byte(v), nil
}

// Tx implements i2c.Bus.
//
// w is sent in a write transaction, then r is filled by a read transaction
// chained with a repeated start. Only 7 bits addresses are supported.
func (m *Master) Tx(addr uint16, w, r []byte) error {
	if addr > 0x7F {
		return fmt.Errorf("twi: invalid address %#x, 10 bits addressing is not supported", addr)
	}
	a := byte(addr)
	if len(w) != 0 || len(r) == 0 {
		if !m.Begin(a, 0) {
			m.End(true)
			return m.txErr()
		}
		for _, b := range w {
			if !m.Write(b) {
				m.End(true)
				return m.txErr()
			}
		}
		if len(r) == 0 {
			m.End(true)
			return m.err
		}
		m.End(false)
	}
	if !m.Restart(a, len(r)) {
		m.End(true)
		return m.txErr()
	}
	m.ReadBytes(r)
	m.End(true)
	return m.err
}

func (m *Master) txErr() error {
	if m.err == nil {
		return errors.New("twi: transaction failed")
	}
	return m.err
}

var _ i2c.Bus = &Master{}
