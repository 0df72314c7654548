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

// Package can provides an expectation-based mock CAN controller.
//
// Expectations cover transmitted and received frames:
//
//	bus := can.NewMock(t,
//	    can.Transmit(can.NewFrame(0x123, []byte{0x00, 0x10})),
//	    can.Receive(can.NewExtendedFrame(0x12345678, []byte{0x01})),
//	)
//
//	_ = bus.Transmit(can.NewFrame(0x123, []byte{0x00, 0x10}))
//	frame, _ := bus.Receive()
//
//	bus.Done()
//
// Transmit expectations validate the outgoing frame in full (identifier,
// identifier width, frame type and payload); Receive expectations supply
// the incoming frame.
package can

import (
	"fmt"

	halmock "github.com/ZaparooProject/go-halmock"
)

// CAN identifier limits
const (
	maxStandardID = 0x7FF
	maxExtendedID = 0x1FFFFFFF
	maxDataLen    = 8
)

// Frame is a single CAN data or remote frame.
type Frame struct {
	data     []byte
	id       uint32
	dlc      int
	extended bool
	remote   bool
}

// NewFrame creates a data frame with an 11-bit standard identifier.
// Panics if the identifier or payload exceeds the CAN limits.
func NewFrame(id uint32, data []byte) Frame {
	if id > maxStandardID {
		panic(fmt.Sprintf("can: standard identifier %#x exceeds 11 bits", id))
	}
	return newDataFrame(id, data, false)
}

// NewExtendedFrame creates a data frame with a 29-bit extended
// identifier. Panics if the identifier or payload exceeds the CAN
// limits.
func NewExtendedFrame(id uint32, data []byte) Frame {
	if id > maxExtendedID {
		panic(fmt.Sprintf("can: extended identifier %#x exceeds 29 bits", id))
	}
	return newDataFrame(id, data, true)
}

func newDataFrame(id uint32, data []byte, extended bool) Frame {
	if len(data) > maxDataLen {
		panic(fmt.Sprintf("can: payload of %d bytes exceeds %d", len(data), maxDataLen))
	}
	return Frame{
		id:       id,
		data:     append([]byte(nil), data...),
		dlc:      len(data),
		extended: extended,
	}
}

// NewRemoteFrame creates a remote frame requesting dlc bytes from the
// device owning the standard identifier.
func NewRemoteFrame(id uint32, dlc int) Frame {
	if id > maxStandardID {
		panic(fmt.Sprintf("can: standard identifier %#x exceeds 11 bits", id))
	}
	if dlc < 0 || dlc > maxDataLen {
		panic(fmt.Sprintf("can: remote frame DLC %d out of range", dlc))
	}
	return Frame{id: id, dlc: dlc, remote: true}
}

// ID returns the frame identifier.
func (f Frame) ID() uint32 {
	return f.id
}

// IsExtended reports whether the identifier is 29-bit.
func (f Frame) IsExtended() bool {
	return f.extended
}

// IsRemote reports whether this is a remote frame.
func (f Frame) IsRemote() bool {
	return f.remote
}

// DLC returns the data length code.
func (f Frame) DLC() int {
	return f.dlc
}

// Data returns a copy of the frame payload. Remote frames carry none.
func (f Frame) Data() []byte {
	return append([]byte(nil), f.data...)
}

// Equal reports whether two frames match in identifier, identifier
// width, frame type and payload.
func (f Frame) Equal(other Frame) bool {
	if f.id != other.id || f.extended != other.extended || f.remote != other.remote || f.dlc != other.dlc {
		return false
	}
	for i := range f.data {
		if f.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

func (f Frame) String() string {
	kind := "std"
	if f.extended {
		kind = "ext"
	}
	if f.remote {
		return fmt.Sprintf("Frame(%s id=%#x, remote dlc=%d)", kind, f.id, f.dlc)
	}
	return fmt.Sprintf("Frame(%s id=%#x, data=[% X])", kind, f.id, f.data)
}

type opKind int

const (
	opTransmit opKind = iota
	opReceive
)

func (k opKind) String() string {
	if k == opTransmit {
		return "Transmit"
	}
	return "Receive"
}

// Transaction is one expected CAN operation.
type Transaction struct {
	err   error
	frame Frame
	kind  opKind
}

// Transmit creates an expectation for exactly the given frame being
// transmitted.
func Transmit(frame Frame) Transaction {
	return Transaction{kind: opTransmit, frame: frame}
}

// Receive creates an expectation for a receive call answered with the
// given frame.
func Receive(frame Frame) Transaction {
	return Transaction{kind: opReceive, frame: frame}
}

// WithError attaches a fault to the transaction, returned to the driver
// after the transaction is validated.
func (tx Transaction) WithError(err error) Transaction {
	tx.err = err
	return tx
}

func (tx Transaction) String() string {
	if tx.kind == opTransmit {
		return fmt.Sprintf("Transmit(%s)", tx.frame)
	}
	return fmt.Sprintf("Receive() -> %s", tx.frame)
}

// Match implements halmock.Matcher. Only Transmit carries driver input
// to compare; Receive supplies its frame from the expectation.
func (tx Transaction) Match(actual Transaction) error {
	if tx.kind != actual.kind {
		return fmt.Errorf("expected a %s call, got %s", tx.kind, actual.kind)
	}
	if tx.kind == opTransmit && !tx.frame.Equal(actual.frame) {
		return fmt.Errorf("expected frame %s, got %s", tx.frame, actual.frame)
	}
	return nil
}

// Mock is an in-memory CAN controller that replays a pre-declared
// transaction script.
type Mock struct {
	engine *halmock.Engine[Transaction]
}

// NewMock creates a CAN mock seeded with the expected transactions.
func NewMock(t halmock.TestReporter, expected ...Transaction) *Mock {
	return &Mock{engine: halmock.NewEngine(t, "can", expected...)}
}

// Transmit sends frame onto the bus.
func (m *Mock) Transmit(frame Frame) error {
	exp := m.engine.Process(Transaction{kind: opTransmit, frame: frame})
	return exp.err
}

// Receive returns the next expected incoming frame.
func (m *Mock) Receive() (Frame, error) {
	exp := m.engine.Process(Transaction{kind: opReceive})
	if exp.err != nil {
		return Frame{}, exp.err
	}
	return exp.frame, nil
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
