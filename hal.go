// Copyright 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package halmock

import (
	"context"
	"time"
)

// The interfaces below are the native peripheral contract drivers are
// written against when they are not tied to an external HAL. Each mock
// package implements the matching interface; the periphmock packages
// additionally adapt the same mocks to the periph.io/x/conn/v3
// interface family, so both contract families share one engine.

// I2C is a master-mode I2C bus.
type I2C interface {
	// Write transmits p to the device at addr.
	Write(addr uint16, p []byte) error

	// Read fills p with data from the device at addr. The mock fails
	// the test unless len(p) matches the expected response exactly.
	Read(addr uint16, p []byte) error

	// WriteRead transmits w then reads into r in a single transaction.
	WriteRead(addr uint16, w, r []byte) error
}

// SPI is a full-duplex SPI bus.
type SPI interface {
	Write(p []byte) error
	Read(p []byte) error

	// Transfer clocks w out while filling r. Both slices must be the
	// same length.
	Transfer(w, r []byte) error

	// TransferInPlace clocks p out and overwrites it with the response.
	TransferInPlace(p []byte) error

	// Flush blocks until all queued words are clocked out.
	Flush() error
}

// Serial is a word-oriented UART.
type Serial interface {
	WriteByte(word byte) error
	Write(words []byte) error
	ReadByte() (byte, error)

	// Read fills buf entirely, one expected word per byte.
	Read(buf []byte) error

	Flush() error
}

// Pin is a digital I/O pin.
type Pin interface {
	SetHigh() error
	SetLow() error
	Toggle() error
	IsHigh() (bool, error)
	IsLow() (bool, error)
}

// PWM sets the duty cycle of a single PWM channel.
type PWM interface {
	// MaxDutyCycle returns the value representing a 100% duty cycle.
	MaxDutyCycle() (uint16, error)

	// SetDutyCycle sets the duty cycle, where 0 is off and the value
	// returned by MaxDutyCycle is fully on.
	SetDutyCycle(duty uint16) error
}

// ADC performs one-shot analog reads.
type ADC interface {
	ReadChannel(channel uint8) (uint16, error)
}

// Delay blocks the caller for a duration.
type Delay interface {
	Sleep(d time.Duration)
}

// DelayCtx is the asynchronous delay contract: the call suspends until
// the duration elapses or ctx is cancelled, without blocking other
// goroutines.
type DelayCtx interface {
	SleepCtx(ctx context.Context, d time.Duration) error
}
