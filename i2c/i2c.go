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

// Package i2c provides an expectation-based mock I2C bus.
//
// Configure the mock with the transactions the driver-under-test is
// expected to perform, in order:
//
//	bus := i2c.NewMock(t,
//	    i2c.Write(0xAA, []byte{1, 2}),
//	    i2c.Read(0xBB, []byte{3, 4}),
//	)
//
//	_ = bus.Write(0xAA, []byte{1, 2})
//
//	buf := make([]byte, 2)
//	_ = bus.Read(0xBB, buf) // buf is now {3, 4}
//
//	bus.Done()
package i2c

import (
	"bytes"
	"fmt"

	halmock "github.com/ZaparooProject/go-halmock"
)

type opKind int

const (
	opWrite opKind = iota
	opRead
	opWriteRead
)

func (k opKind) String() string {
	switch k {
	case opWrite:
		return "Write"
	case opRead:
		return "Read"
	case opWriteRead:
		return "WriteRead"
	default:
		return fmt.Sprintf("opKind(%d)", int(k))
	}
}

// Transaction is one expected I2C bus operation. Construct values with
// Write, Read or WriteRead; attach a simulated fault with WithError.
type Transaction struct {
	err      error
	expected []byte
	response []byte
	kind     opKind
	addr     uint16
}

// Write creates an expectation for a write of exactly the given bytes
// to the device at addr.
func Write(addr uint16, expected []byte) Transaction {
	return Transaction{
		kind:     opWrite,
		addr:     addr,
		expected: append([]byte(nil), expected...),
	}
}

// Read creates an expectation for a read from the device at addr. The
// driver's buffer must be exactly len(response) bytes and is filled
// with response when the expectation is matched.
func Read(addr uint16, response []byte) Transaction {
	return Transaction{
		kind:     opRead,
		addr:     addr,
		response: append([]byte(nil), response...),
	}
}

// WriteRead creates an expectation for a combined write-then-read
// transaction against the device at addr.
func WriteRead(addr uint16, expected, response []byte) Transaction {
	return Transaction{
		kind:     opWriteRead,
		addr:     addr,
		expected: append([]byte(nil), expected...),
		response: append([]byte(nil), response...),
	}
}

// WithError attaches a fault to the transaction. The transaction is
// still validated when matched; the fault is then returned to the
// driver through the normal error channel.
func (tx Transaction) WithError(err error) Transaction {
	tx.err = err
	return tx
}

func (tx Transaction) String() string {
	switch tx.kind {
	case opWrite:
		return fmt.Sprintf("Write(addr=%#02x, data=[% X])", tx.addr, tx.expected)
	case opRead:
		return fmt.Sprintf("Read(addr=%#02x, len=%d)", tx.addr, len(tx.response))
	case opWriteRead:
		return fmt.Sprintf("WriteRead(addr=%#02x, data=[% X], len=%d)", tx.addr, tx.expected, len(tx.response))
	default:
		return tx.kind.String()
	}
}

// Match implements halmock.Matcher. The receiver is the expected
// transaction, actual is the operation the driver performed.
func (tx Transaction) Match(actual Transaction) error {
	if tx.kind != actual.kind {
		return fmt.Errorf("expected a %s call, got %s", tx.kind, actual.kind)
	}
	if tx.addr != actual.addr {
		return fmt.Errorf("expected address %#02x, got %#02x", tx.addr, actual.addr)
	}
	if !bytes.Equal(tx.expected, actual.expected) {
		return fmt.Errorf("expected data [% X], got [% X]", tx.expected, actual.expected)
	}
	if len(tx.response) != len(actual.response) {
		return fmt.Errorf("expected a %d byte read buffer, got %d bytes", len(tx.response), len(actual.response))
	}
	return nil
}

// Mock is an in-memory I2C bus that replays a pre-declared transaction
// script. It implements halmock.I2C.
//
// Mock pointers can be shared freely: the handle passed to the driver
// and the handle the test keeps for Done() see the same state.
type Mock struct {
	engine   *halmock.Engine[Transaction]
	lastAddr uint16
	touched  bool
}

var _ halmock.I2C = (*Mock)(nil)

// NewMock creates an I2C mock seeded with the expected transactions.
// Failures are reported through t; passing a *testing.T also arms a
// teardown check that fails the test if Done is never called.
func NewMock(t halmock.TestReporter, expected ...Transaction) *Mock {
	return &Mock{engine: halmock.NewEngine(t, "i2c", expected...)}
}

// Write transmits p to the device at addr.
func (m *Mock) Write(addr uint16, p []byte) error {
	exp := m.engine.Process(Transaction{
		kind:     opWrite,
		addr:     addr,
		expected: append([]byte(nil), p...),
	})
	m.lastAddr, m.touched = addr, true
	return exp.err
}

// Read fills p from the matched expectation's response payload.
func (m *Mock) Read(addr uint16, p []byte) error {
	exp := m.engine.Process(Transaction{
		kind:     opRead,
		addr:     addr,
		response: make([]byte, len(p)),
	})
	m.lastAddr, m.touched = addr, true
	if exp.err != nil {
		return exp.err
	}
	copy(p, exp.response)
	return nil
}

// WriteRead transmits w then fills r in one combined transaction.
func (m *Mock) WriteRead(addr uint16, w, r []byte) error {
	exp := m.engine.Process(Transaction{
		kind:     opWriteRead,
		addr:     addr,
		expected: append([]byte(nil), w...),
		response: make([]byte, len(r)),
	})
	m.lastAddr, m.touched = addr, true
	if exp.err != nil {
		return exp.err
	}
	copy(r, exp.response)
	return nil
}

// LastAddr returns the address of the most recent transaction and
// whether any transaction has occurred yet.
func (m *Mock) LastAddr() (uint16, bool) {
	return m.lastAddr, m.touched
}

// UpdateExpectations replaces the expectation script. The current
// script must be fully consumed first.
func (m *Mock) UpdateExpectations(expected ...Transaction) {
	m.engine.UpdateExpectations(expected...)
}

// Done asserts all expected transactions were consumed.
func (m *Mock) Done() {
	m.engine.Done()
}
