// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package memory

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

// sram simulates a 47C16 style SRAM: writes are a 16 bits address followed by
// data, reads are a 16 bits address followed by a repeated start read.
type sram struct {
	mem [0x800]byte
	txs int
}

func (s *sram) String() string { return "sram" }

func (s *sram) SetSpeed(f physic.Frequency) error { return nil }

func (s *sram) Tx(addr uint16, w, r []byte) error {
	s.txs++
	if addr != DefaultDeviceOpts.Addr {
		return errors.New("sram: nack")
	}
	if len(w) < 2 {
		return errors.New("sram: missing address")
	}
	a := int(w[0])<<8 | int(w[1])
	a += copy(s.mem[a:], w[2:])
	copy(r, s.mem[a:])
	return nil
}

func backends(t *testing.T) map[string]Array {
	dev, err := NewI2C(&sram{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return map[string]Array{
		"heap":   NewHeap(1024),
		"wrap":   Wrap(make([]byte, 1024)),
		"device": dev,
	}
}

func TestRoundTrip(t *testing.T) {
	data := make([]byte, 200)
	for i := range data {
		data[i] = byte(i*7 + 3)
	}
	for name, a := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if a.Len() != 1024 {
				t.Fatalf("Len() = %d", a.Len())
			}
			for _, off := range []int{0, 1, 63, 824} {
				a.WriteRange(off, data)
				got := make([]byte, len(data))
				a.ReadRange(off, got)
				if diff := cmp.Diff(data, got); diff != "" {
					t.Fatalf("offset %d (-want +got):\n%s", off, diff)
				}
			}
			v := Slot(a, 1000)
			v.Set(0x5A)
			if got := v.Get(); got != 0x5A {
				t.Fatalf("Slot.Get() = %#x", got)
			}
			if got := a.At(1000); got != 0x5A {
				t.Fatalf("At(1000) = %#x, slot not stored in place", got)
			}
		})
	}
}

func TestAtSetFill(t *testing.T) {
	for name, a := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a.Fill(0xAA, 100, 10)
			if v := a.At(9); v != 0 {
				t.Fatalf("At(9) = %#x, fill leaked before offset", v)
			}
			if v := a.At(10); v != 0xAA {
				t.Fatalf("At(10) = %#x", v)
			}
			if v := a.At(109); v != 0xAA {
				t.Fatalf("At(109) = %#x", v)
			}
			if v := a.At(110); v != 0 {
				t.Fatalf("At(110) = %#x, fill leaked after count", v)
			}
			a.Set(50, 0x12)
			if v := a.At(50); v != 0x12 {
				t.Fatalf("At(50) = %#x", v)
			}
		})
	}
}

func TestWrapShares(t *testing.T) {
	b := []byte{1, 2, 3}
	h := Wrap(b)
	h.Set(1, 9)
	if b[1] != 9 {
		t.Fatal("Wrap must not copy")
	}
	if s := h.String(); s != "memory.Heap{3}" {
		t.Fatal(s)
	}
}

func TestCell(t *testing.T) {
	c := NewCell(3)
	if c.Get() != 3 {
		t.Fatal(c.Get())
	}
	var v Value = c
	v.Set(0xC0)
	if c.Get() != 0xC0 || c.String() != "memory.Cell{0xc0}" {
		t.Fatal(c)
	}
}

func TestDeviceWire(t *testing.T) {
	opts := DeviceOpts{Base: 0x400, Size: 16, MaxTx: 4}
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x50, W: []byte{0x04, 0x02, 1, 2, 3, 4}},
			{Addr: 0x50, W: []byte{0x04, 0x06, 5}},
			{Addr: 0x50, W: []byte{0x04, 0x03}, R: []byte{2, 3, 4, 5}},
			{Addr: 0x50, W: []byte{0x04, 0x00, 0xFF, 0xFF}},
		},
		DontPanic: true,
	}
	d, err := NewI2C(bus, &opts)
	if err != nil {
		t.Fatal(err)
	}
	d.WriteRange(2, []byte{1, 2, 3, 4, 5})
	got := make([]byte, 4)
	d.ReadRange(3, got)
	if diff := cmp.Diff([]byte{2, 3, 4, 5}, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	d.Fill(0xFF, 2, 0)
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
	if err := bus.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDeviceLatchesError(t *testing.T) {
	s := &sram{}
	d, err := NewI2C(s, &DeviceOpts{Addr: 0x51, Size: 64})
	if err != nil {
		t.Fatal(err)
	}
	d.Set(0, 1)
	if d.Err() == nil {
		t.Fatal("expected error from unacknowledged address")
	}
	d.Set(1, 1)
	if v := d.At(1); v != 0 {
		t.Fatalf("At() = %#x after error", v)
	}
	if s.txs != 1 {
		t.Fatalf("%d transactions after error, want 1", s.txs)
	}
}

func TestDeviceOpts(t *testing.T) {
	for _, opts := range []DeviceOpts{
		{Size: 0},
		{Base: -1, Size: 10},
		{Base: 0xFFF0, Size: 0x20},
	} {
		if _, err := NewI2C(&sram{}, &opts); err == nil {
			t.Errorf("%+v: expected error", opts)
		}
	}
}
