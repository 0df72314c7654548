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

// Package spi provides an expectation-based mock SPI bus.
//
// Expected transactions are declared in order and replayed as the
// driver-under-test performs operations:
//
//	bus := spi.NewMock(t,
//	    spi.Write([]byte{0x90}),
//	    spi.Transfer([]byte{0xFF, 0xFF}, []byte{0x12, 0x34}),
//	)
//
// Transfer expectations validate the outbound bytes and supply the
// inbound ones; both sides must match exactly in length and content.
// TransactionStart and TransactionEnd expectations are available for
// drivers whose framework brackets bus access with chip-select framing.
package spi

import (
	"bytes"
	"fmt"

	halmock "github.com/ZaparooProject/go-halmock"
)

type opKind int

const (
	opWrite opKind = iota
	opRead
	opTransfer
	opTransferInPlace
	opFlush
	opTransactionStart
	opTransactionEnd
)

func (k opKind) String() string {
	switch k {
	case opWrite:
		return "Write"
	case opRead:
		return "Read"
	case opTransfer:
		return "Transfer"
	case opTransferInPlace:
		return "TransferInPlace"
	case opFlush:
		return "Flush"
	case opTransactionStart:
		return "TransactionStart"
	case opTransactionEnd:
		return "TransactionEnd"
	default:
		return fmt.Sprintf("opKind(%d)", int(k))
	}
}

// Transaction is one expected SPI bus operation.
type Transaction struct {
	err      error
	expected []byte
	response []byte
	kind     opKind
}

// Write creates an expectation for a write of exactly the given bytes.
func Write(expected []byte) Transaction {
	return Transaction{kind: opWrite, expected: append([]byte(nil), expected...)}
}

// WriteByte creates an expectation for a single-word write.
func WriteByte(expected byte) Transaction {
	return Transaction{kind: opWrite, expected: []byte{expected}}
}

// Read creates an expectation for a read that fills the driver's buffer
// with response. The buffer must be exactly len(response) bytes.
func Read(response []byte) Transaction {
	return Transaction{kind: opRead, response: append([]byte(nil), response...)}
}

// ReadByte creates an expectation for a single-word read.
func ReadByte(response byte) Transaction {
	return Transaction{kind: opRead, response: []byte{response}}
}

// Transfer creates an expectation for a full-duplex exchange: expected
// is validated against the outbound buffer and response is written into
// the inbound one. Panics if the two sides differ in length, since a
// duplex exchange clocks one bit in per bit out.
func Transfer(expected, response []byte) Transaction {
	if len(expected) != len(response) {
		panic(fmt.Sprintf("spi.Transfer: expected and response lengths differ (%d != %d)",
			len(expected), len(response)))
	}
	return Transaction{
		kind:     opTransfer,
		expected: append([]byte(nil), expected...),
		response: append([]byte(nil), response...),
	}
}

// TransferInPlace creates an expectation for an in-place exchange: the
// driver's buffer is validated against expected and then overwritten
// with response. Panics if the two sides differ in length.
func TransferInPlace(expected, response []byte) Transaction {
	if len(expected) != len(response) {
		panic(fmt.Sprintf("spi.TransferInPlace: expected and response lengths differ (%d != %d)",
			len(expected), len(response)))
	}
	return Transaction{
		kind:     opTransferInPlace,
		expected: append([]byte(nil), expected...),
		response: append([]byte(nil), response...),
	}
}

// Flush creates an expectation for a flush call.
func Flush() Transaction {
	return Transaction{kind: opFlush}
}

// TransactionStart creates an expectation for the start of a framed bus
// transaction (chip select asserted).
func TransactionStart() Transaction {
	return Transaction{kind: opTransactionStart}
}

// TransactionEnd creates an expectation for the end of a framed bus
// transaction (chip select released).
func TransactionEnd() Transaction {
	return Transaction{kind: opTransactionEnd}
}

// WithError attaches a fault to the transaction, returned to the driver
// after the transaction is validated.
func (tx Transaction) WithError(err error) Transaction {
	tx.err = err
	return tx
}

func (tx Transaction) String() string {
	switch tx.kind {
	case opWrite:
		return fmt.Sprintf("Write([% X])", tx.expected)
	case opRead:
		return fmt.Sprintf("Read(len=%d)", len(tx.response))
	case opTransfer:
		return fmt.Sprintf("Transfer(out=[% X], len=%d)", tx.expected, len(tx.response))
	case opTransferInPlace:
		return fmt.Sprintf("TransferInPlace([% X])", tx.expected)
	default:
		return tx.kind.String() + "()"
	}
}

// Match implements halmock.Matcher.
func (tx Transaction) Match(actual Transaction) error {
	if tx.kind != actual.kind {
		return fmt.Errorf("expected a %s call, got %s", tx.kind, actual.kind)
	}
	if !bytes.Equal(tx.expected, actual.expected) {
		return fmt.Errorf("expected data [% X], got [% X]", tx.expected, actual.expected)
	}
	if len(tx.response) != len(actual.response) {
		return fmt.Errorf("expected a %d byte read buffer, got %d bytes", len(tx.response), len(actual.response))
	}
	return nil
}

// Mock is an in-memory SPI bus that replays a pre-declared transaction
// script. It implements halmock.SPI.
type Mock struct {
	engine *halmock.Engine[Transaction]
}

var _ halmock.SPI = (*Mock)(nil)

// NewMock creates an SPI mock seeded with the expected transactions.
func NewMock(t halmock.TestReporter, expected ...Transaction) *Mock {
	return &Mock{engine: halmock.NewEngine(t, "spi", expected...)}
}

// Write clocks p out onto the bus.
func (m *Mock) Write(p []byte) error {
	exp := m.engine.Process(Transaction{kind: opWrite, expected: append([]byte(nil), p...)})
	return exp.err
}

// Read fills p from the matched expectation's response payload.
func (m *Mock) Read(p []byte) error {
	exp := m.engine.Process(Transaction{kind: opRead, response: make([]byte, len(p))})
	if exp.err != nil {
		return exp.err
	}
	copy(p, exp.response)
	return nil
}

// Transfer clocks w out while filling r. A length difference between w
// and r surfaces as an expectation mismatch.
func (m *Mock) Transfer(w, r []byte) error {
	exp := m.engine.Process(Transaction{
		kind:     opTransfer,
		expected: append([]byte(nil), w...),
		response: make([]byte, len(r)),
	})
	if exp.err != nil {
		return exp.err
	}
	copy(r, exp.response)
	return nil
}

// TransferInPlace clocks p out and overwrites it with the response.
func (m *Mock) TransferInPlace(p []byte) error {
	exp := m.engine.Process(Transaction{
		kind:     opTransferInPlace,
		expected: append([]byte(nil), p...),
		response: make([]byte, len(p)),
	})
	if exp.err != nil {
		return exp.err
	}
	copy(p, exp.response)
	return nil
}

// Flush blocks until all queued words are clocked out. On the mock it
// only consumes a Flush expectation.
func (m *Mock) Flush() error {
	exp := m.engine.Process(Transaction{kind: opFlush})
	return exp.err
}

// StartTransaction consumes a TransactionStart expectation. Intended
// for driver frameworks that bracket bus access explicitly.
func (m *Mock) StartTransaction() error {
	exp := m.engine.Process(Transaction{kind: opTransactionStart})
	return exp.err
}

// EndTransaction consumes a TransactionEnd expectation.
func (m *Mock) EndTransaction() error {
	exp := m.engine.Process(Transaction{kind: opTransactionEnd})
	return exp.err
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
