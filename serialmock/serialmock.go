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

// Package serialmock provides an expectation-based mock UART.
//
// The mock is word-oriented: every expected read or write covers a
// single byte, and the Many constructors expand into one expectation
// per byte. A script of
//
//	ser := serialmock.NewMock(t,
//	    serialmock.Read(0x23),
//	    serialmock.WriteMany([]byte{0x55, 0xAA}),
//	    serialmock.Flush(),
//	)
//
// expects one read, two writes and a flush, in that order.
//
// For drivers written against go.bug.st/serial, wrap the mock with
// Mock.Port() to obtain a serial.Port backed by the same expectation
// script.
package serialmock

import (
	"fmt"

	halmock "github.com/ZaparooProject/go-halmock"
)

type stepKind int

const (
	stepRead stepKind = iota
	stepWrite
	stepFlush
)

func (k stepKind) String() string {
	switch k {
	case stepRead:
		return "Read"
	case stepWrite:
		return "Write"
	case stepFlush:
		return "Flush"
	default:
		return fmt.Sprintf("stepKind(%d)", int(k))
	}
}

// step is a single-word expectation, the unit the engine replays.
type step struct {
	err  error
	kind stepKind
	word byte
}

func (s step) String() string {
	switch s.kind {
	case stepRead:
		return fmt.Sprintf("Read() -> %#02x", s.word)
	case stepWrite:
		return fmt.Sprintf("Write(%#02x)", s.word)
	default:
		return s.kind.String() + "()"
	}
}

// Match implements halmock.Matcher. Reads carry no driver input, so
// only the kind is compared; writes compare the transmitted word.
func (s step) Match(actual step) error {
	if s.kind != actual.kind {
		return fmt.Errorf("expected a %s call, got %s", s.kind, actual.kind)
	}
	if s.kind == stepWrite && s.word != actual.word {
		return fmt.Errorf("expected word %#02x, got %#02x", s.word, actual.word)
	}
	return nil
}

// Transaction is one or more expected serial operations. A transaction
// constructed with a Many constructor expands into one expectation per
// word when the mock is built.
type Transaction struct {
	steps []step
}

// Read creates an expectation for a single read returning word.
func Read(word byte) Transaction {
	return Transaction{steps: []step{{kind: stepRead, word: word}}}
}

// ReadMany creates expectations for consecutive reads returning the
// given words in order.
func ReadMany(words []byte) Transaction {
	steps := make([]step, len(words))
	for i, w := range words {
		steps[i] = step{kind: stepRead, word: w}
	}
	return Transaction{steps: steps}
}

// ReadError creates an expectation for a read that fails with err.
func ReadError(err error) Transaction {
	return Transaction{steps: []step{{kind: stepRead, err: err}}}
}

// Write creates an expectation for a single write of word.
func Write(word byte) Transaction {
	return Transaction{steps: []step{{kind: stepWrite, word: word}}}
}

// WriteMany creates expectations for consecutive writes of the given
// words in order.
func WriteMany(words []byte) Transaction {
	steps := make([]step, len(words))
	for i, w := range words {
		steps[i] = step{kind: stepWrite, word: w}
	}
	return Transaction{steps: steps}
}

// WriteError creates an expectation for a write of word that fails with
// err after the word is validated.
func WriteError(word byte, err error) Transaction {
	return Transaction{steps: []step{{kind: stepWrite, word: word, err: err}}}
}

// Flush creates an expectation for a flush call.
func Flush() Transaction {
	return Transaction{steps: []step{{kind: stepFlush}}}
}

// FlushError creates an expectation for a flush that fails with err.
func FlushError(err error) Transaction {
	return Transaction{steps: []step{{kind: stepFlush, err: err}}}
}

// Mock is an in-memory UART that replays a pre-declared script. It
// implements halmock.Serial.
type Mock struct {
	engine *halmock.Engine[step]
}

var _ halmock.Serial = (*Mock)(nil)

// NewMock creates a serial mock seeded with the expected transactions.
func NewMock(t halmock.TestReporter, expected ...Transaction) *Mock {
	return &Mock{engine: halmock.NewEngine(t, "serial", flatten(expected)...)}
}

func flatten(transactions []Transaction) []step {
	var steps []step
	for _, tx := range transactions {
		steps = append(steps, tx.steps...)
	}
	return steps
}

// WriteByte transmits a single word.
func (m *Mock) WriteByte(word byte) error {
	exp := m.engine.Process(step{kind: stepWrite, word: word})
	return exp.err
}

// Write transmits words one at a time, stopping at the first injected
// error.
func (m *Mock) Write(words []byte) error {
	for _, w := range words {
		if err := m.WriteByte(w); err != nil {
			return err
		}
	}
	return nil
}

// ReadByte returns the next expected word.
func (m *Mock) ReadByte() (byte, error) {
	exp := m.engine.Process(step{kind: stepRead})
	if exp.err != nil {
		return 0, exp.err
	}
	return exp.word, nil
}

// Read fills buf entirely, one expected word per byte, stopping at the
// first injected error.
func (m *Mock) Read(buf []byte) error {
	for i := range buf {
		w, err := m.ReadByte()
		if err != nil {
			return err
		}
		buf[i] = w
	}
	return nil
}

// Flush consumes a Flush expectation.
func (m *Mock) Flush() error {
	exp := m.engine.Process(step{kind: stepFlush})
	return exp.err
}

// UpdateExpectations replaces the expectation script. The current
// script must be fully consumed first.
func (m *Mock) UpdateExpectations(expected ...Transaction) {
	m.engine.UpdateExpectations(flatten(expected)...)
}

// Done asserts all expected transactions were consumed.
func (m *Mock) Done() {
	m.engine.Done()
}
