// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package twi

import "time"

// Waiter decides how long to poll a hardware condition.
//
// Wait returns true as soon as ready() returns true, or false if it gave up.
type Waiter interface {
	Wait(ready func() bool) bool
}

// Forever polls until the condition becomes true, possibly never returning.
type Forever struct{}

// Wait implements Waiter.
func (Forever) Wait(ready func() bool) bool {
	for !ready() {
	}
	return true
}

// Polls gives up after the condition was checked this many times.
type Polls int

// Wait implements Waiter.
func (p Polls) Wait(ready func() bool) bool {
	for i := 0; i < int(p); i++ {
		if ready() {
			return true
		}
	}
	return false
}

// Deadline gives up once the duration elapsed since Wait was called.
type Deadline time.Duration

// Wait implements Waiter.
func (d Deadline) Wait(ready func() bool) bool {
	end := now().Add(time.Duration(d))
	for {
		if ready() {
			return true
		}
		if now().After(end) {
			return false
		}
	}
}

var now = time.Now
