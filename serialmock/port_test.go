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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"

	halmock "github.com/ZaparooProject/go-halmock"
)

func TestPort_ReadWrite(t *testing.T) {
	t.Parallel()

	mock := NewMock(nil,
		WriteMany([]byte{0x55, 0xAA}),
		ReadMany([]byte{0x01, 0x02}),
	)
	port := mock.Port()

	n, err := port.Write([]byte{0x55, 0xAA})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	buf := make([]byte, 2)
	n, err = port.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte{0x01, 0x02}, buf)

	mock.Done()
}

func TestPort_PartialCountOnError(t *testing.T) {
	t.Parallel()

	mock := NewMock(nil,
		Read(0x01),
		ReadError(halmock.ErrOverrun),
	)
	port := mock.Port()

	buf := make([]byte, 2)
	n, err := port.Read(buf)
	require.ErrorIs(t, err, halmock.ErrOverrun)
	assert.Equal(t, 1, n)
	assert.Equal(t, byte(0x01), buf[0])

	mock.Done()
}

func TestPort_Drain(t *testing.T) {
	t.Parallel()

	mock := NewMock(nil, Flush())
	port := mock.Port()

	require.NoError(t, port.Drain())
	mock.Done()
}

func TestPort_RecordsConfiguration(t *testing.T) {
	t.Parallel()

	mock := NewMock(nil)
	port := mock.Port()

	mode := &serial.Mode{BaudRate: 115200, DataBits: 8, StopBits: serial.OneStopBit}
	require.NoError(t, port.SetMode(mode))
	assert.Equal(t, mode, port.Mode())

	require.NoError(t, port.SetReadTimeout(250*time.Millisecond))
	assert.Equal(t, 250*time.Millisecond, port.ReadTimeout())

	require.NoError(t, port.SetDTR(true))
	require.NoError(t, port.SetRTS(true))
	dtr, rts := port.ControlLines()
	assert.True(t, dtr)
	assert.True(t, rts)

	// Configuration calls never consume expectations.
	mock.Done()
}

func TestPort_NoOps(t *testing.T) {
	t.Parallel()

	mock := NewMock(nil)
	port := mock.Port()

	require.NoError(t, port.ResetInputBuffer())
	require.NoError(t, port.ResetOutputBuffer())
	require.NoError(t, port.Break(10*time.Millisecond))

	bits, err := port.GetModemStatusBits()
	require.NoError(t, err)
	assert.Equal(t, &serial.ModemStatusBits{}, bits)

	mock.Done()
}

func TestPort_ClosedOperationsFail(t *testing.T) {
	t.Parallel()

	mock := NewMock(nil, Write(0x01))
	port := mock.Port()
	require.NoError(t, port.Close())

	_, err := port.Write([]byte{0x01})
	require.ErrorIs(t, err, halmock.ErrIO)

	_, err = port.Read(make([]byte, 1))
	require.ErrorIs(t, err, halmock.ErrIO)

	require.ErrorIs(t, port.Drain(), halmock.ErrIO)
	require.ErrorIs(t, port.SetMode(&serial.Mode{}), halmock.ErrIO)

	// Close does not finalize the script.
	require.Panics(t, mock.Done)
}
