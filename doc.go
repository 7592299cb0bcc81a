// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package fmradio is a container for the display and bus stack of the FM
// radio board.
//
// memory abstracts where the frame buffer lives, sh1106/page1bit draws on it,
// sh1106 sends it to the panel and twi is the polling bus master underneath.
package fmradio
