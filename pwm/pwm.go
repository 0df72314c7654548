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

// Package pwm provides an expectation-based mock PWM channel.
//
// Both duty-cycle writes and max-duty queries are expectations:
//
//	ch := pwm.NewMock(t,
//	    pwm.MaxDutyCycle(100),
//	    pwm.SetDutyCycle(50),
//	)
//
//	max, _ := ch.MaxDutyCycle()     // 100
//	_ = ch.SetDutyCycle(max / 2)
//
//	ch.Done()
//
// Duty values are compared with exact integer equality.
package pwm

import (
	"fmt"

	halmock "github.com/ZaparooProject/go-halmock"
)

type opKind int

const (
	opMaxDutyCycle opKind = iota
	opSetDutyCycle
)

func (k opKind) String() string {
	switch k {
	case opMaxDutyCycle:
		return "MaxDutyCycle"
	case opSetDutyCycle:
		return "SetDutyCycle"
	default:
		return fmt.Sprintf("opKind(%d)", int(k))
	}
}

// Transaction is one expected PWM operation.
type Transaction struct {
	err  error
	kind opKind
	duty uint16
}

// MaxDutyCycle creates an expectation for a max-duty query returning
// duty.
func MaxDutyCycle(duty uint16) Transaction {
	return Transaction{kind: opMaxDutyCycle, duty: duty}
}

// SetDutyCycle creates an expectation for the duty cycle being set to
// exactly duty.
func SetDutyCycle(duty uint16) Transaction {
	return Transaction{kind: opSetDutyCycle, duty: duty}
}

// WithError attaches a fault to the transaction, returned to the driver
// after the transaction is validated.
func (tx Transaction) WithError(err error) Transaction {
	tx.err = err
	return tx
}

func (tx Transaction) String() string {
	if tx.kind == opMaxDutyCycle {
		return fmt.Sprintf("MaxDutyCycle() -> %d", tx.duty)
	}
	return fmt.Sprintf("SetDutyCycle(%d)", tx.duty)
}

// Match implements halmock.Matcher.
func (tx Transaction) Match(actual Transaction) error {
	if tx.kind != actual.kind {
		return fmt.Errorf("expected a %s call, got %s", tx.kind, actual.kind)
	}
	if tx.kind == opSetDutyCycle && tx.duty != actual.duty {
		return fmt.Errorf("expected duty cycle %d, got %d", tx.duty, actual.duty)
	}
	return nil
}

// Mock is an in-memory PWM channel that replays a pre-declared script.
// It implements halmock.PWM.
type Mock struct {
	engine   *halmock.Engine[Transaction]
	lastDuty uint16
}

var _ halmock.PWM = (*Mock)(nil)

// NewMock creates a PWM mock seeded with the expected transactions.
func NewMock(t halmock.TestReporter, expected ...Transaction) *Mock {
	return &Mock{engine: halmock.NewEngine(t, "pwm", expected...)}
}

// MaxDutyCycle returns the seeded max-duty value.
func (m *Mock) MaxDutyCycle() (uint16, error) {
	exp := m.engine.Process(Transaction{kind: opMaxDutyCycle})
	if exp.err != nil {
		return 0, exp.err
	}
	return exp.duty, nil
}

// SetDutyCycle sets the duty cycle; the value must match the next
// expectation exactly.
func (m *Mock) SetDutyCycle(duty uint16) error {
	exp := m.engine.Process(Transaction{kind: opSetDutyCycle, duty: duty})
	if exp.err != nil {
		return exp.err
	}
	m.lastDuty = duty
	return nil
}

// SetDutyCycleFraction sets the duty cycle to num/denom of the channel
// maximum. It queries MaxDutyCycle first, so the script needs a
// MaxDutyCycle expectation followed by a SetDutyCycle expectation for
// the computed value. Panics if denom is zero or num exceeds denom.
func (m *Mock) SetDutyCycleFraction(num, denom uint16) error {
	if denom == 0 || num > denom {
		panic(fmt.Sprintf("pwm mock: invalid duty fraction %d/%d", num, denom))
	}
	max, err := m.MaxDutyCycle()
	if err != nil {
		return err
	}
	duty := uint16(uint32(max) * uint32(num) / uint32(denom))
	return m.SetDutyCycle(duty)
}

// SetDutyCyclePercent sets the duty cycle to percent of the channel
// maximum. Panics if percent exceeds 100.
func (m *Mock) SetDutyCyclePercent(percent uint8) error {
	return m.SetDutyCycleFraction(uint16(percent), 100)
}

// SetDutyCycleFullyOn sets the duty cycle to the channel maximum.
func (m *Mock) SetDutyCycleFullyOn() error {
	return m.SetDutyCycleFraction(1, 1)
}

// SetDutyCycleFullyOff sets the duty cycle to zero. Unlike the fraction
// helpers this needs no MaxDutyCycle expectation.
func (m *Mock) SetDutyCycleFullyOff() error {
	return m.SetDutyCycle(0)
}

// LastDutyCycle returns the most recent successfully set duty cycle.
func (m *Mock) LastDutyCycle() uint16 {
	return m.lastDuty
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
