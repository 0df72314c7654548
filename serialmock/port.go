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

package serialmock

import (
	"fmt"
	"time"

	"go.bug.st/serial"

	halmock "github.com/ZaparooProject/go-halmock"
)

// Port adapts a Mock to the go.bug.st/serial Port interface so drivers
// that open a real port in production can be tested against the same
// expectation script.
//
// Reads and writes consume expectations byte by byte. Mode, timeout and
// control-line setters do not consume expectations; they record their
// arguments for introspection, since they configure the port rather
// than move data over the wire.
type Port struct {
	mock        *Mock
	mode        *serial.Mode
	readTimeout time.Duration
	dtr         bool
	rts         bool
	closed      bool
}

var _ serial.Port = (*Port)(nil)

// Port wraps the mock in a go.bug.st/serial compatible port.
func (m *Mock) Port() *Port {
	return &Port{mock: m, mode: &serial.Mode{}}
}

// SetMode records the requested port configuration.
func (p *Port) SetMode(mode *serial.Mode) error {
	if p.closed {
		return p.errClosed("SetMode")
	}
	p.mode = mode
	return nil
}

// Mode returns the most recently configured port mode.
func (p *Port) Mode() *serial.Mode {
	return p.mode
}

// Read fills buf from the expectation script, one expected word per
// byte. It returns the number of bytes read before an injected error,
// if any.
func (p *Port) Read(buf []byte) (int, error) {
	if p.closed {
		return 0, p.errClosed("Read")
	}
	for i := range buf {
		w, err := p.mock.ReadByte()
		if err != nil {
			return i, err
		}
		buf[i] = w
	}
	return len(buf), nil
}

// Write transmits buf against the expectation script, one expected word
// per byte.
func (p *Port) Write(buf []byte) (int, error) {
	if p.closed {
		return 0, p.errClosed("Write")
	}
	for i, w := range buf {
		if err := p.mock.WriteByte(w); err != nil {
			return i, err
		}
	}
	return len(buf), nil
}

// Drain consumes a Flush expectation.
func (p *Port) Drain() error {
	if p.closed {
		return p.errClosed("Drain")
	}
	return p.mock.Flush()
}

// ResetInputBuffer is a no-op on the mock.
func (p *Port) ResetInputBuffer() error {
	if p.closed {
		return p.errClosed("ResetInputBuffer")
	}
	return nil
}

// ResetOutputBuffer is a no-op on the mock.
func (p *Port) ResetOutputBuffer() error {
	if p.closed {
		return p.errClosed("ResetOutputBuffer")
	}
	return nil
}

// SetDTR records the DTR line state.
func (p *Port) SetDTR(dtr bool) error {
	if p.closed {
		return p.errClosed("SetDTR")
	}
	p.dtr = dtr
	return nil
}

// SetRTS records the RTS line state.
func (p *Port) SetRTS(rts bool) error {
	if p.closed {
		return p.errClosed("SetRTS")
	}
	p.rts = rts
	return nil
}

// ControlLines returns the recorded DTR and RTS states.
func (p *Port) ControlLines() (dtr, rts bool) {
	return p.dtr, p.rts
}

// GetModemStatusBits reports all status lines low.
func (p *Port) GetModemStatusBits() (*serial.ModemStatusBits, error) {
	if p.closed {
		return nil, p.errClosed("GetModemStatusBits")
	}
	return &serial.ModemStatusBits{}, nil
}

// SetReadTimeout records the requested timeout. The mock never blocks,
// so the timeout is never applied.
func (p *Port) SetReadTimeout(t time.Duration) error {
	if p.closed {
		return p.errClosed("SetReadTimeout")
	}
	p.readTimeout = t
	return nil
}

// ReadTimeout returns the most recently recorded read timeout.
func (p *Port) ReadTimeout() time.Duration {
	return p.readTimeout
}

// Break is a no-op on the mock.
func (p *Port) Break(time.Duration) error {
	if p.closed {
		return p.errClosed("Break")
	}
	return nil
}

// Close marks the port closed. Further operations fail, mirroring a
// real port. Close does not finalize the expectation script; call Done
// on the underlying mock for that.
func (p *Port) Close() error {
	p.closed = true
	return nil
}

func (*Port) errClosed(op string) error {
	return fmt.Errorf("%w: %s on closed port", halmock.ErrIO, op)
}
