// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package twi implements a polling, master only driver for a two-wire (I²C)
// bus peripheral.
//
// The driver talks to the peripheral through a register level Controller and
// never uses interrupts: every step busy-waits on a status flag. How long to
// wait is decided by a Waiter; the default waits forever, as the hardware
// would, so a stuck bus hangs the caller. Use Polls or Deadline to bound it.
//
// Master exposes the raw transaction steps (Begin, Write, Read, ReadLast,
// End) which report their outcome as booleans, and also implements
// periph.io/x/conn/v3/i2c.Bus so it can be used by any periph device driver.
//
// Nothing in this package is safe for concurrent use, except the Busy flag.
//
// # Datasheet
//
// The register model follows the TWI master of the megaAVR 0-series.
//
// https://ww1.microchip.com/downloads/en/DeviceDoc/ATmega4808-4809-Data-Sheet-DS40002173A.pdf
package twi
