// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package i2cbridge

import (
	"testing"

	"github.com/GermanBionicSystems/fmradio/twi"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestWriteThenStop(t *testing.T) {
	pb := &i2ctest.Playback{Ops: []i2ctest.IO{{Addr: 0x50, W: []byte{1, 2}}}, DontPanic: true}
	c := New(pb)
	if c.Status() != twi.BusIdle {
		t.Fatalf("status %#x", c.Status())
	}
	c.Start(0x50<<1, 0)
	if s := c.Status(); s&twi.WriteIF == 0 || s&twi.BusStateMask != twi.BusOwner {
		t.Fatalf("status %#x", s)
	}
	c.Transmit(1)
	c.Exec(twi.RecvTrans)
	c.Transmit(2)
	c.Exec(twi.RecvTrans)
	if pb.Count != 0 {
		t.Fatal("write sent before the stop condition")
	}
	c.Exec(twi.AckAct | twi.Stop)
	if c.Status() != twi.BusIdle || c.Err() != nil {
		t.Fatalf("status %#x: %v", c.Status(), c.Err())
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
	if len(c.Acks) != 0 {
		t.Fatalf("acks %v", c.Acks)
	}
}

func TestRepeatedStart(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x50, W: []byte{0x04}, R: []byte{0xAA, 0xBB}},
			{Addr: 0x50, W: []byte{0x05}},
			{Addr: 0x51, R: []byte{0xCC}},
		},
		DontPanic: true,
	}
	c := New(pb)
	// Write then read on the same address: one Tx.
	c.Start(0x50<<1, 0)
	c.Transmit(0x04)
	c.Exec(twi.AckAct)
	c.Start(0x50<<1|1, 2)
	if c.Status()&twi.ReadIF == 0 {
		t.Fatalf("status %#x", c.Status())
	}
	if b := c.Receive(); b != 0xAA {
		t.Fatalf("%#x", b)
	}
	c.Exec(twi.RecvTrans)
	if b := c.Receive(); b != 0xBB {
		t.Fatalf("%#x", b)
	}
	c.Exec(twi.AckAct | twi.Stop)

	// Write then read on another address: two Tx.
	c.Start(0x50<<1, 0)
	c.Transmit(0x05)
	c.Start(0x51<<1|1, 1)
	if b := c.Receive(); b != 0xCC {
		t.Fatalf("%#x", b)
	}
	c.Exec(twi.AckAct | twi.RecvTrans)
	c.Exec(twi.AckAct | twi.Stop)
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestBusFailure(t *testing.T) {
	pb := &i2ctest.Playback{DontPanic: true}
	c := New(pb)
	c.Start(0x20<<1, 0)
	c.Transmit(9)
	c.Exec(twi.Stop)
	if c.Status()&twi.BusErr == 0 || c.Err() == nil {
		t.Fatalf("status %#x: %v", c.Status(), c.Err())
	}
	// A read that fails is reported as an unacknowledged address.
	c.Start(0x20<<1|1, 1)
	if c.Status()&twi.RxNack == 0 {
		t.Fatalf("status %#x", c.Status())
	}
	c.Exec(twi.Stop)
	// Transmit outside of a write is a protocol error.
	c.Transmit(1)
	if c.Status()&twi.BusErr == 0 {
		t.Fatalf("status %#x", c.Status())
	}
}

func TestNegativeReadCount(t *testing.T) {
	pb := &i2ctest.Playback{Ops: []i2ctest.IO{{Addr: 0x20}}, DontPanic: true}
	c := New(pb)
	c.Start(0x20<<1|1, -1)
	if b := c.Receive(); b != 0xFF {
		t.Fatalf("%#x", b)
	}
	c.Exec(twi.AckAct | twi.Stop)
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFaultOnWrite(t *testing.T) {
	pb := &i2ctest.Playback{DontPanic: true}
	c := New(pb)
	c.Start(0x20<<1, 0)
	c.Faults.ArbitrationLost = true
	c.Transmit(1)
	if c.Status()&twi.ArbLost == 0 {
		t.Fatalf("status %#x", c.Status())
	}
	c.Faults = Faults{}
	c.Exec(twi.Stop)
	// The aborted write never reaches the bus.
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestFaults(t *testing.T) {
	pb := &i2ctest.Playback{DontPanic: true}
	c := New(pb)
	c.Faults.Stuck = true
	c.Start(0x20<<1, 0)
	c.Transmit(1)
	c.Exec(twi.Stop)
	if c.Status()&(twi.ReadIF|twi.WriteIF) != 0 {
		t.Fatalf("status %#x", c.Status())
	}
	c.Faults = Faults{}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
	c.SetBaud(13)
	if c.Baud() != 13 || c.String() != "i2cbridge{playback}" {
		t.Fatal(c)
	}
}
