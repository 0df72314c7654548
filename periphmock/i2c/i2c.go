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

// Package i2c adapts the halmock I2C mock to the periph.io/x/conn/v3
// i2c.Bus interface, so drivers written against periph.io can be tested
// against the same expectation scripts as native ones.
package i2c

import (
	conni2c "periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	halmock "github.com/ZaparooProject/go-halmock"
	i2cmock "github.com/ZaparooProject/go-halmock/i2c"
)

// Bus is an expectation-backed periph.io I2C bus.
//
// Tx calls are routed onto the underlying mock: a write-only Tx matches
// a Write expectation, a read-only Tx matches a Read expectation, and a
// combined Tx matches a WriteRead expectation.
type Bus struct {
	mock  *i2cmock.Mock
	speed physic.Frequency
}

var _ conni2c.BusCloser = (*Bus)(nil)

// NewBus creates a periph.io bus mock seeded with the expected
// transactions. Expectations are declared with the constructors of the
// halmock i2c package.
func NewBus(t halmock.TestReporter, expected ...i2cmock.Transaction) *Bus {
	return &Bus{mock: i2cmock.NewMock(t, expected...)}
}

// Wrap adapts an existing mock, sharing its expectation script. Useful
// when the same script drives both interface families.
func Wrap(mock *i2cmock.Mock) *Bus {
	return &Bus{mock: mock}
}

// String implements conn.Resource naming.
func (*Bus) String() string {
	return "halmock-i2c"
}

// Tx performs a write, read or combined write-read against the
// expectation script.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	switch {
	case len(w) > 0 && len(r) > 0:
		return b.mock.WriteRead(addr, w, r)
	case len(r) > 0:
		return b.mock.Read(addr, r)
	default:
		return b.mock.Write(addr, w)
	}
}

// SetSpeed records the requested bus speed without consuming an
// expectation.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	b.speed = f
	return nil
}

// Speed returns the most recently recorded bus speed.
func (b *Bus) Speed() physic.Frequency {
	return b.speed
}

// Close is a no-op on the mock; finalize through Done.
func (*Bus) Close() error {
	return nil
}

// Mock returns the underlying expectation mock, for introspection
// getters such as LastAddr.
func (b *Bus) Mock() *i2cmock.Mock {
	return b.mock
}

// Done asserts all expected transactions were consumed.
func (b *Bus) Done() {
	b.mock.Done()
}
