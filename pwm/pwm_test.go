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

package pwm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	halmock "github.com/ZaparooProject/go-halmock"
)

func TestMock_ReplaysScript(t *testing.T) {
	t.Parallel()

	ch := NewMock(nil,
		MaxDutyCycle(100),
		SetDutyCycle(50),
	)

	max, err := ch.MaxDutyCycle()
	require.NoError(t, err)
	assert.Equal(t, uint16(100), max)

	require.NoError(t, ch.SetDutyCycle(max/2))
	assert.Equal(t, uint16(50), ch.LastDutyCycle())

	ch.Done()
}

func TestMock_WrongDutyMismatch(t *testing.T) {
	t.Parallel()

	ch := NewMock(nil, SetDutyCycle(50))
	require.Panics(t, func() { _ = ch.SetDutyCycle(51) })
}

func TestMock_WrongKindMismatch(t *testing.T) {
	t.Parallel()

	ch := NewMock(nil, SetDutyCycle(50))
	require.Panics(t, func() { _, _ = ch.MaxDutyCycle() })
}

func TestMock_InjectedError(t *testing.T) {
	t.Parallel()

	ch := NewMock(nil,
		MaxDutyCycle(100).WithError(halmock.ErrIO),
		SetDutyCycle(25).WithError(halmock.ErrIO),
	)

	_, err := ch.MaxDutyCycle()
	require.ErrorIs(t, err, halmock.ErrIO)

	require.ErrorIs(t, ch.SetDutyCycle(25), halmock.ErrIO)

	// A faulted set does not update the recorded duty.
	assert.Equal(t, uint16(0), ch.LastDutyCycle())

	ch.Done()
}

func TestMock_FractionHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		exercise func(ch *Mock) error
		max      uint16
		wantDuty uint16
	}{
		{
			name:     "half",
			exercise: func(ch *Mock) error { return ch.SetDutyCycleFraction(1, 2) },
			max:      1000,
			wantDuty: 500,
		},
		{
			name:     "percent",
			exercise: func(ch *Mock) error { return ch.SetDutyCyclePercent(25) },
			max:      200,
			wantDuty: 50,
		},
		{
			name:     "fully on",
			exercise: func(ch *Mock) error { return ch.SetDutyCycleFullyOn() },
			max:      1000,
			wantDuty: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ch := NewMock(nil,
				MaxDutyCycle(tt.max),
				SetDutyCycle(tt.wantDuty),
			)
			require.NoError(t, tt.exercise(ch))
			assert.Equal(t, tt.wantDuty, ch.LastDutyCycle())
			ch.Done()
		})
	}
}

func TestMock_FullyOffNeedsNoMaxExpectation(t *testing.T) {
	t.Parallel()

	ch := NewMock(nil, SetDutyCycle(0))
	require.NoError(t, ch.SetDutyCycleFullyOff())
	ch.Done()
}

func TestMock_InvalidFractionPanics(t *testing.T) {
	t.Parallel()

	ch := NewMock(nil)
	require.Panics(t, func() { _ = ch.SetDutyCycleFraction(1, 0) })
	require.Panics(t, func() { _ = ch.SetDutyCycleFraction(3, 2) })
	ch.Done()
}

func TestMock_UpdateExpectations(t *testing.T) {
	t.Parallel()

	ch := NewMock(nil, SetDutyCycle(10))
	require.NoError(t, ch.SetDutyCycle(10))

	ch.UpdateExpectations(SetDutyCycle(20))
	require.NoError(t, ch.SetDutyCycle(20))

	ch.Done()
}
