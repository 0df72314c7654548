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

// Package pin provides an expectation-based mock digital I/O pin.
//
// Expectations cover both driven output levels and sampled input
// levels:
//
//	p := pin.NewMock(t,
//	    pin.Set(pin.High),
//	    pin.Get(pin.High),
//	    pin.Toggle(),
//	    pin.GetState(pin.Low),
//	)
//
//	_ = p.SetHigh()
//	high, _ := p.IsHigh() // true
//	_ = p.Toggle()
//	low, _ := p.IsSetLow() // true, from the driven-state expectation
//
//	p.Done()
//
// Get expectations answer IsHigh/IsLow (sampling an input); GetState
// expectations answer IsSetHigh/IsSetLow (reading back the driven
// output level). Independently of the script, the mock tracks the last
// level driven through matched Set/Toggle expectations, available via
// State() for test introspection.
package pin

import (
	"fmt"

	halmock "github.com/ZaparooProject/go-halmock"
)

// Level is a digital pin level.
type Level bool

// Pin levels
const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l == High {
		return "High"
	}
	return "Low"
}

type opKind int

const (
	opSet opKind = iota
	opGet
	opToggle
	opGetState
)

func (k opKind) String() string {
	switch k {
	case opSet:
		return "Set"
	case opGet:
		return "Get"
	case opToggle:
		return "Toggle"
	case opGetState:
		return "GetState"
	default:
		return fmt.Sprintf("opKind(%d)", int(k))
	}
}

// Transaction is one expected pin operation.
type Transaction struct {
	err   error
	kind  opKind
	level Level
}

// Set creates an expectation for the pin being driven to level.
func Set(level Level) Transaction {
	return Transaction{kind: opSet, level: level}
}

// Get creates an expectation for the input level being sampled; the
// read returns level.
func Get(level Level) Transaction {
	return Transaction{kind: opGet, level: level}
}

// Toggle creates an expectation for the driven level being toggled.
func Toggle() Transaction {
	return Transaction{kind: opToggle}
}

// GetState creates an expectation for the driven output level being
// read back; the read returns level.
func GetState(level Level) Transaction {
	return Transaction{kind: opGetState, level: level}
}

// WithError attaches a fault to the transaction, returned to the driver
// after the transaction is validated.
func (tx Transaction) WithError(err error) Transaction {
	tx.err = err
	return tx
}

func (tx Transaction) String() string {
	switch tx.kind {
	case opSet:
		return fmt.Sprintf("Set(%s)", tx.level)
	case opGet:
		return fmt.Sprintf("Get() -> %s", tx.level)
	case opGetState:
		return fmt.Sprintf("GetState() -> %s", tx.level)
	default:
		return tx.kind.String() + "()"
	}
}

// Match implements halmock.Matcher. Only Set carries driver input to
// compare; the read kinds supply output from the expectation.
func (tx Transaction) Match(actual Transaction) error {
	if tx.kind != actual.kind {
		return fmt.Errorf("expected a %s call, got %s", tx.kind, actual.kind)
	}
	if tx.kind == opSet && tx.level != actual.level {
		return fmt.Errorf("expected level %s, got %s", tx.level, actual.level)
	}
	return nil
}

// Mock is an in-memory digital pin that replays a pre-declared script.
// It implements halmock.Pin.
type Mock struct {
	engine *halmock.Engine[Transaction]
	state  Level
}

var _ halmock.Pin = (*Mock)(nil)

// NewMock creates a pin mock seeded with the expected transactions. The
// tracked driven level starts Low.
func NewMock(t halmock.TestReporter, expected ...Transaction) *Mock {
	return &Mock{engine: halmock.NewEngine(t, "pin", expected...)}
}

// SetHigh drives the pin high.
func (m *Mock) SetHigh() error {
	return m.set(High)
}

// SetLow drives the pin low.
func (m *Mock) SetLow() error {
	return m.set(Low)
}

func (m *Mock) set(level Level) error {
	exp := m.engine.Process(Transaction{kind: opSet, level: level})
	if exp.err != nil {
		return exp.err
	}
	m.state = level
	return nil
}

// Toggle inverts the driven level.
func (m *Mock) Toggle() error {
	exp := m.engine.Process(Transaction{kind: opToggle})
	if exp.err != nil {
		return exp.err
	}
	m.state = !m.state
	return nil
}

// IsHigh samples the input level.
func (m *Mock) IsHigh() (bool, error) {
	exp := m.engine.Process(Transaction{kind: opGet})
	if exp.err != nil {
		return false, exp.err
	}
	return exp.level == High, nil
}

// IsLow samples the input level.
func (m *Mock) IsLow() (bool, error) {
	high, err := m.IsHigh()
	if err != nil {
		return false, err
	}
	return !high, nil
}

// IsSetHigh reads back the driven output level.
func (m *Mock) IsSetHigh() (bool, error) {
	exp := m.engine.Process(Transaction{kind: opGetState})
	if exp.err != nil {
		return false, exp.err
	}
	return exp.level == High, nil
}

// IsSetLow reads back the driven output level.
func (m *Mock) IsSetLow() (bool, error) {
	high, err := m.IsSetHigh()
	if err != nil {
		return false, err
	}
	return !high, nil
}

// State returns the last level driven through a matched Set or Toggle
// expectation. It is introspection only and never consumes an
// expectation.
func (m *Mock) State() Level {
	return m.state
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
