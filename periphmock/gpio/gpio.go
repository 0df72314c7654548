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

// Package gpio adapts the halmock pin mock to the periph.io/x/conn/v3
// gpio.PinIO interface.
package gpio

import (
	"errors"
	"fmt"
	"time"

	conngpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"

	halmock "github.com/ZaparooProject/go-halmock"
	pinmock "github.com/ZaparooProject/go-halmock/pin"
)

// ErrPWMUnsupported is returned by Pin.PWM; the mock models digital
// levels only. Use the halmock pwm package to test duty-cycle logic.
var ErrPWMUnsupported = errors.New("gpio mock: PWM is not supported")

// Pin is an expectation-backed periph.io GPIO pin.
//
// Out consumes Set expectations and Read consumes Get expectations of
// the wrapped pin mock. Because gpio.PinIn's Read has no error return,
// an injected error on a Get expectation is reported as a test failure
// instead of being surfaced to the driver.
type Pin struct {
	rep  halmock.TestReporter
	mock *pinmock.Mock
	name string
	num  int
	pull conngpio.Pull
	edge conngpio.Edge
}

var _ conngpio.PinIO = (*Pin)(nil)

// NewPin creates a periph.io pin mock seeded with the expected
// transactions. Expectations are declared with the constructors of the
// halmock pin package.
func NewPin(t halmock.TestReporter, name string, number int, expected ...pinmock.Transaction) *Pin {
	return &Pin{
		rep:  t,
		mock: pinmock.NewMock(t, expected...),
		name: name,
		num:  number,
		pull: conngpio.Float,
	}
}

// String implements conn.Resource naming.
func (p *Pin) String() string {
	return fmt.Sprintf("%s(%d)", p.name, p.num)
}

// Halt is a no-op on the mock.
func (*Pin) Halt() error {
	return nil
}

// Name returns the pin name.
func (p *Pin) Name() string {
	return p.name
}

// Number returns the pin number.
func (p *Pin) Number() int {
	return p.num
}

// Function returns a description of the pin's current role.
func (*Pin) Function() string {
	return "In/Out"
}

// In records the requested pull and edge configuration without
// consuming an expectation.
func (p *Pin) In(pull conngpio.Pull, edge conngpio.Edge) error {
	p.pull = pull
	p.edge = edge
	return nil
}

// Read samples the input level, consuming a Get expectation.
func (p *Pin) Read() conngpio.Level {
	high, err := p.mock.IsHigh()
	if err != nil {
		// No error channel on Read; make the fault visible anyway.
		if p.rep != nil {
			p.rep.Errorf("gpio mock %s: injected error on Read has no error channel: %v", p, err)
		}
		return conngpio.Low
	}
	return conngpio.Level(high)
}

// WaitForEdge is not supported by the mock and returns false
// immediately.
func (*Pin) WaitForEdge(time.Duration) bool {
	return false
}

// Pull returns the configured pull resistor setting.
func (p *Pin) Pull() conngpio.Pull {
	return p.pull
}

// Edge returns the edge detection setting configured through In.
func (p *Pin) Edge() conngpio.Edge {
	return p.edge
}

// DefaultPull returns the power-on pull setting.
func (*Pin) DefaultPull() conngpio.Pull {
	return conngpio.Float
}

// Out drives the pin, consuming a Set expectation.
func (p *Pin) Out(l conngpio.Level) error {
	if l == conngpio.High {
		return p.mock.SetHigh()
	}
	return p.mock.SetLow()
}

// PWM is not supported on the digital mock.
func (*Pin) PWM(conngpio.Duty, physic.Frequency) error {
	return ErrPWMUnsupported
}

// Mock returns the underlying expectation mock, for the State getter
// and expectation replacement.
func (p *Pin) Mock() *pinmock.Mock {
	return p.mock
}

// Done asserts all expected transactions were consumed.
func (p *Pin) Done() {
	p.mock.Done()
}
