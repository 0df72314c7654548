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

// Package spi adapts the halmock SPI mock to the periph.io/x/conn/v3
// spi.Conn and spi.PortCloser interfaces.
package spi

import (
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	connspi "periph.io/x/conn/v3/spi"

	halmock "github.com/ZaparooProject/go-halmock"
	spimock "github.com/ZaparooProject/go-halmock/spi"
)

// Conn is an expectation-backed periph.io SPI connection.
//
// Tx calls route onto the underlying mock: write-only onto a Write
// expectation, read-only onto a Read expectation, and full-duplex onto
// a Transfer expectation.
type Conn struct {
	mock *spimock.Mock
}

var _ connspi.Conn = (*Conn)(nil)

// NewConn creates a periph.io SPI connection mock seeded with the
// expected transactions. Expectations are declared with the
// constructors of the halmock spi package.
func NewConn(t halmock.TestReporter, expected ...spimock.Transaction) *Conn {
	return &Conn{mock: spimock.NewMock(t, expected...)}
}

// Wrap adapts an existing mock, sharing its expectation script.
func Wrap(mock *spimock.Mock) *Conn {
	return &Conn{mock: mock}
}

// String implements conn.Resource naming.
func (*Conn) String() string {
	return "halmock-spi"
}

// Tx performs a write, read or full-duplex exchange against the
// expectation script.
func (c *Conn) Tx(w, r []byte) error {
	switch {
	case len(w) > 0 && len(r) > 0:
		return c.mock.Transfer(w, r)
	case len(r) > 0:
		return c.mock.Read(r)
	default:
		return c.mock.Write(w)
	}
}

// TxPackets performs each packet's exchange in order.
func (c *Conn) TxPackets(p []connspi.Packet) error {
	for i := range p {
		if err := c.Tx(p[i].W, p[i].R); err != nil {
			return err
		}
	}
	return nil
}

// Duplex reports a full-duplex connection.
func (*Conn) Duplex() conn.Duplex {
	return conn.Full
}

// Mock returns the underlying expectation mock.
func (c *Conn) Mock() *spimock.Mock {
	return c.mock
}

// Done asserts all expected transactions were consumed.
func (c *Conn) Done() {
	c.mock.Done()
}

// Port is an expectation-backed periph.io SPI port. Connect hands out
// the same underlying Conn regardless of the requested parameters,
// which are recorded for introspection.
type Port struct {
	conn  *Conn
	speed physic.Frequency
	mode  connspi.Mode
	bits  int
}

var _ connspi.PortCloser = (*Port)(nil)

// NewPort creates a periph.io SPI port mock seeded with the expected
// transactions.
func NewPort(t halmock.TestReporter, expected ...spimock.Transaction) *Port {
	return &Port{conn: NewConn(t, expected...)}
}

// String implements conn.Resource naming.
func (*Port) String() string {
	return "halmock-spi-port"
}

// Connect records the requested parameters and returns the mock
// connection.
func (p *Port) Connect(f physic.Frequency, mode connspi.Mode, bits int) (connspi.Conn, error) {
	p.speed = f
	p.mode = mode
	p.bits = bits
	return p.conn, nil
}

// LimitSpeed records the maximum bus speed.
func (p *Port) LimitSpeed(f physic.Frequency) error {
	p.speed = f
	return nil
}

// Close is a no-op on the mock; finalize through Done.
func (*Port) Close() error {
	return nil
}

// Done asserts all expected transactions were consumed.
func (p *Port) Done() {
	p.conn.Done()
}
