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

package pin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	halmock "github.com/ZaparooProject/go-halmock"
)

func TestMock_ReplaysScript(t *testing.T) {
	t.Parallel()

	p := NewMock(nil,
		Set(High),
		Get(High),
		Toggle(),
		GetState(Low),
	)

	require.NoError(t, p.SetHigh())

	high, err := p.IsHigh()
	require.NoError(t, err)
	assert.True(t, high)

	require.NoError(t, p.Toggle())

	low, err := p.IsSetLow()
	require.NoError(t, err)
	assert.True(t, low)

	p.Done()
}

func TestMock_WrongLevelMismatch(t *testing.T) {
	t.Parallel()

	p := NewMock(nil, Set(High))
	require.Panics(t, func() { _ = p.SetLow() })
}

func TestMock_WrongKindMismatch(t *testing.T) {
	t.Parallel()

	p := NewMock(nil, Get(High))
	require.Panics(t, func() { _ = p.Toggle() })
}

func TestMock_GetAnswersBothPolarities(t *testing.T) {
	t.Parallel()

	p := NewMock(nil, Get(Low), Get(Low))

	high, err := p.IsHigh()
	require.NoError(t, err)
	assert.False(t, high)

	low, err := p.IsLow()
	require.NoError(t, err)
	assert.True(t, low)

	p.Done()
}

func TestMock_TracksDrivenState(t *testing.T) {
	t.Parallel()

	p := NewMock(nil,
		Set(High),
		Toggle(),
		Toggle(),
	)

	assert.Equal(t, Low, p.State())

	require.NoError(t, p.SetHigh())
	assert.Equal(t, High, p.State())

	require.NoError(t, p.Toggle())
	assert.Equal(t, Low, p.State())

	require.NoError(t, p.Toggle())
	assert.Equal(t, High, p.State())

	p.Done()
}

func TestMock_InjectedError(t *testing.T) {
	t.Parallel()

	p := NewMock(nil,
		Set(High).WithError(halmock.ErrIO),
		Get(High).WithError(halmock.ErrIO),
	)

	require.ErrorIs(t, p.SetHigh(), halmock.ErrIO)

	// A faulted set does not update the tracked driven level.
	assert.Equal(t, Low, p.State())

	_, err := p.IsHigh()
	require.ErrorIs(t, err, halmock.ErrIO)

	p.Done()
}

func TestMock_Exhaustion(t *testing.T) {
	t.Parallel()

	p := NewMock(nil)
	require.Panics(t, func() { _ = p.SetHigh() })
}

func TestMock_UpdateExpectations(t *testing.T) {
	t.Parallel()

	p := NewMock(nil, Set(High))
	require.NoError(t, p.SetHigh())

	p.UpdateExpectations(Get(Low))

	low, err := p.IsLow()
	require.NoError(t, err)
	assert.True(t, low)

	p.Done()
}
