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

// Package adc provides an expectation-based mock one-shot ADC.
//
// Each expectation covers a single conversion on a specific channel:
//
//	conv := adc.NewMock(t,
//	    adc.Read(0, 0x00AB),
//	    adc.Read(1, 0xABCD),
//	)
//
//	v, _ := conv.ReadChannel(0) // 0x00AB
//	v, _ = conv.ReadChannel(1)  // 0xABCD
//
//	conv.Done()
//
// There is no continuous sampling; every read consumes exactly one
// expectation.
package adc

import (
	"fmt"

	halmock "github.com/ZaparooProject/go-halmock"
)

// Transaction is one expected ADC conversion.
type Transaction struct {
	err      error
	response uint16
	channel  uint8
}

// Read creates an expectation for a one-shot read on channel returning
// response.
func Read(channel uint8, response uint16) Transaction {
	return Transaction{channel: channel, response: response}
}

// WithError attaches a fault to the transaction, returned to the driver
// after the channel is validated.
func (tx Transaction) WithError(err error) Transaction {
	tx.err = err
	return tx
}

func (tx Transaction) String() string {
	return fmt.Sprintf("Read(channel=%d) -> %#04x", tx.channel, tx.response)
}

// Match implements halmock.Matcher.
func (tx Transaction) Match(actual Transaction) error {
	if tx.channel != actual.channel {
		return fmt.Errorf("expected channel %d, got %d", tx.channel, actual.channel)
	}
	return nil
}

// Mock is an in-memory one-shot ADC that replays a pre-declared script.
// It implements halmock.ADC.
type Mock struct {
	engine *halmock.Engine[Transaction]
}

var _ halmock.ADC = (*Mock)(nil)

// NewMock creates an ADC mock seeded with the expected conversions.
func NewMock(t halmock.TestReporter, expected ...Transaction) *Mock {
	return &Mock{engine: halmock.NewEngine(t, "adc", expected...)}
}

// ReadChannel performs a one-shot conversion on the given channel.
func (m *Mock) ReadChannel(channel uint8) (uint16, error) {
	exp := m.engine.Process(Transaction{channel: channel})
	if exp.err != nil {
		return 0, exp.err
	}
	return exp.response, nil
}

// UpdateExpectations replaces the expectation script. The current
// script must be fully consumed first.
func (m *Mock) UpdateExpectations(expected ...Transaction) {
	m.engine.UpdateExpectations(expected...)
}

// Done asserts all expected conversions were consumed.
func (m *Mock) Done() {
	m.engine.Done()
}
