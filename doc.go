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

// Package halmock provides in-memory mock implementations of common
// peripheral interfaces (I2C, SPI, serial, digital pins, PWM, ADC and
// delays) so that device drivers can be tested without hardware.
//
// Every mock works the same way:
//
//  1. Declare the transactions you expect the driver-under-test to
//     perform, in order, using the named constructors of the peripheral
//     package (e.g. i2c.Write, i2c.Read).
//  2. Construct the mock with those expectations and a testing.TB.
//  3. Hand the mock to the driver and run the test body.
//  4. Call Done() on the mock to assert every expectation was consumed.
//
// A basic I2C example:
//
//	bus := i2c.NewMock(t,
//	    i2c.Write(0x24, []byte{0x01, 0x02}),
//	    i2c.Read(0x24, []byte{0xAA, 0xBB}),
//	)
//	driver := NewDriver(bus)
//	driver.Poke()
//	bus.Done()
//
// Any deviation from the declared script fails the test immediately: an
// operation with the wrong kind, address or payload, an operation after
// the script is exhausted, or a Done() call while transactions remain.
// Forgetting Done() entirely is also caught: when the mock is built from
// a *testing.T, a cleanup hook fails the test at teardown if the mock was
// never finalized.
//
// To exercise a driver's error handling, attach a fault to a specific
// step with WithError. The fault is returned through the peripheral's
// normal error channel when that step is reached:
//
//	bus := i2c.NewMock(t,
//	    i2c.Write(0x24, []byte{0x01}).WithError(halmock.ErrNoAck),
//	)
//
// The shared expectation queue lives in this package (Engine); the
// peripheral packages are thin adapters that translate protocol calls
// into engine transactions. The periphmock subpackages expose the same
// mocks through the periph.io/x/conn/v3 interface family so drivers
// written against periph.io can be tested unchanged.
package halmock
