// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sh1106 controls a 128x64 monochrome OLED display driven by a SH1106
// controller over I²C.
//
// The pixels live in a page1bit.Plane backed by any memory.Array, so the
// frame buffer can be kept in RAM or in an external SRAM. Drawing only
// touches the plane; Flush sends the whole plane to the panel, one page at a
// time, in data transactions of ClusterSize bytes.
//
// Every command byte is sent in its own transaction. The initialization
// sequence does not check acknowledgments, a panel that is not connected is
// only detected by the following calls.
//
// Some boards expose a RES / Reset pin. When passed in Opts, the driver
// pulses it before initializing the controller.
//
// # Datasheet
//
// https://cdn.velleman.eu/downloads/29/infosheets/sh1106_datasheet.pdf
package sh1106
