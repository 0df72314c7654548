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

package i2c

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"

	halmock "github.com/ZaparooProject/go-halmock"
	i2cmock "github.com/ZaparooProject/go-halmock/i2c"
)

func TestBus_TxRouting(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil,
		i2cmock.Write(0x48, []byte{0x01}),
		i2cmock.Read(0x48, []byte{0xAA}),
		i2cmock.WriteRead(0x48, []byte{0x00}, []byte{0x1A, 0x20}),
	)

	require.NoError(t, bus.Tx(0x48, []byte{0x01}, nil))

	r := make([]byte, 1)
	require.NoError(t, bus.Tx(0x48, nil, r))
	assert.Equal(t, []byte{0xAA}, r)

	r = make([]byte, 2)
	require.NoError(t, bus.Tx(0x48, []byte{0x00}, r))
	assert.Equal(t, []byte{0x1A, 0x20}, r)

	bus.Done()
}

func TestBus_InjectedError(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil,
		i2cmock.Write(0x48, []byte{0x01}).WithError(halmock.ErrNoAck),
	)

	require.ErrorIs(t, bus.Tx(0x48, []byte{0x01}, nil), halmock.ErrNoAck)
	bus.Done()
}

func TestBus_Mismatch(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil, i2cmock.Write(0x48, []byte{0x01}))
	require.Panics(t, func() { _ = bus.Tx(0x49, []byte{0x01}, nil) })
}

func TestBus_WrapSharesScript(t *testing.T) {
	t.Parallel()

	mock := i2cmock.NewMock(nil, i2cmock.Write(0x10, []byte{0x01}))
	bus := Wrap(mock)

	require.NoError(t, bus.Tx(0x10, []byte{0x01}, nil))

	addr, seen := bus.Mock().LastAddr()
	assert.True(t, seen)
	assert.Equal(t, uint16(0x10), addr)

	// Done on either handle finalizes the shared script.
	mock.Done()
}

func TestBus_SpeedAndClose(t *testing.T) {
	t.Parallel()

	bus := NewBus(nil)

	require.NoError(t, bus.SetSpeed(400*physic.KiloHertz))
	assert.Equal(t, 400*physic.KiloHertz, bus.Speed())

	require.NoError(t, bus.Close())
	assert.Equal(t, "halmock-i2c", bus.String())

	bus.Done()
}
