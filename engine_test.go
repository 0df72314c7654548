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

package halmock

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numTx is a minimal transaction type for exercising the engine
// directly: two numbers match when equal.
type numTx struct {
	value int
}

func (tx numTx) String() string {
	return fmt.Sprintf("numTx(%d)", tx.value)
}

func (tx numTx) Match(actual numTx) error {
	if tx.value != actual.value {
		return fmt.Errorf("expected value %d, got %d", tx.value, actual.value)
	}
	return nil
}

// recordReporter captures failures instead of ending the test, so the
// failure paths of the engine itself can be asserted on.
type recordReporter struct {
	errors   []string
	fatals   []string
	cleanups []func()
}

func (r *recordReporter) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordReporter) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

func (r *recordReporter) Cleanup(f func()) {
	r.cleanups = append(r.cleanups, f)
}

func (r *recordReporter) runCleanups() {
	for i := len(r.cleanups) - 1; i >= 0; i-- {
		r.cleanups[i]()
	}
}

func TestEngine_ReplayInOrder(t *testing.T) {
	t.Parallel()

	e := NewEngine[numTx](t, "test", numTx{1}, numTx{2}, numTx{3})

	for _, v := range []int{1, 2, 3} {
		got := e.Process(numTx{v})
		assert.Equal(t, v, got.value)
	}

	assert.Equal(t, 3, e.Consumed())
	assert.Equal(t, 0, e.Remaining())
	e.Done()
}

func TestEngine_MismatchAtExactPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		corrupt int
	}{
		{name: "first_position", corrupt: 0},
		{name: "middle_position", corrupt: 1},
		{name: "last_position", corrupt: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rep := &recordReporter{}
			e := NewEngine[numTx](rep, "test", numTx{10}, numTx{20}, numTx{30})

			expected := []int{10, 20, 30}
			for i, v := range expected {
				if i == tt.corrupt {
					v = 99
				}
				e.Process(numTx{v})
				if i < tt.corrupt {
					assert.Empty(t, rep.fatals, "no failure before the corrupted position")
				}
			}

			require.Len(t, rep.fatals, 1, "exactly one mismatch reported")
			assert.Contains(t, rep.fatals[0], "mismatch")
			assert.Contains(t, rep.fatals[0], fmt.Sprintf("transaction %d", tt.corrupt))
			assert.Contains(t, rep.fatals[0], "numTx(99)")
		})
	}
}

func TestEngine_MismatchCarriesBothRepresentations(t *testing.T) {
	t.Parallel()

	rep := &recordReporter{}
	e := NewEngine[numTx](rep, "test", numTx{7})

	e.Process(numTx{8})

	require.Len(t, rep.fatals, 1)
	assert.Contains(t, rep.fatals[0], "expected numTx(7)")
	assert.Contains(t, rep.fatals[0], "got numTx(8)")
}

func TestEngine_Exhaustion(t *testing.T) {
	t.Parallel()

	rep := &recordReporter{}
	e := NewEngine[numTx](rep, "test", numTx{1})

	e.Process(numTx{1})
	require.Empty(t, rep.fatals)

	e.Process(numTx{2})
	require.Len(t, rep.fatals, 1)
	assert.Contains(t, rep.fatals[0], "no expected transactions remaining")
	assert.Contains(t, rep.fatals[0], "numTx(2)")
}

func TestEngine_ExhaustionOnEmptyScript(t *testing.T) {
	t.Parallel()

	rep := &recordReporter{}
	e := NewEngine[numTx](rep, "test")

	e.Process(numTx{1})
	require.Len(t, rep.fatals, 1)
	assert.Contains(t, rep.fatals[0], "no expected transactions remaining")
}

func TestEngine_DoneWithRemaining(t *testing.T) {
	t.Parallel()

	rep := &recordReporter{}
	e := NewEngine[numTx](rep, "test", numTx{1}, numTx{2})

	e.Process(numTx{1})
	e.Done()

	require.Len(t, rep.fatals, 1)
	assert.Contains(t, rep.fatals[0], "unconsumed expected transactions")
	assert.Contains(t, rep.fatals[0], "remaining 1")
}

func TestEngine_DoneTwice(t *testing.T) {
	t.Parallel()

	rep := &recordReporter{}
	e := NewEngine[numTx](rep, "test")

	e.Done()
	require.Empty(t, rep.fatals)

	e.Done()
	require.Len(t, rep.fatals, 1)
	assert.Contains(t, rep.fatals[0], "Done called more than once")
}

func TestEngine_DropGuard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		exercise   func(e *Engine[numTx])
		name       string
		wantFailed bool
	}{
		{
			name:       "done_called_disarms_guard",
			exercise:   func(e *Engine[numTx]) { e.Process(numTx{1}); e.Done() },
			wantFailed: false,
		},
		{
			name:       "forgotten_done_fails_at_teardown",
			exercise:   func(e *Engine[numTx]) { e.Process(numTx{1}) },
			wantFailed: true,
		},
		{
			name:       "forgotten_done_with_remaining_fails_at_teardown",
			exercise:   func(_ *Engine[numTx]) {},
			wantFailed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rep := &recordReporter{}
			e := NewEngine[numTx](rep, "test", numTx{1})
			require.Len(t, rep.cleanups, 1, "guard registered via Cleanup")

			tt.exercise(e)
			rep.runCleanups()

			if tt.wantFailed {
				require.Len(t, rep.errors, 1)
				assert.Contains(t, rep.errors[0], "without calling Done")
			} else {
				assert.Empty(t, rep.errors)
			}
			assert.Empty(t, rep.fatals)
		})
	}
}

func TestEngine_FailedDoneKeepsGuardArmed(t *testing.T) {
	t.Parallel()

	rep := &recordReporter{}
	e := NewEngine[numTx](rep, "test", numTx{1}, numTx{2})

	e.Process(numTx{1})
	e.Done()
	require.Len(t, rep.fatals, 1)
	assert.Contains(t, rep.fatals[0], "unconsumed expected transactions")

	// The incompletion failure must not finalize the engine: the
	// teardown guard still reports the mock as unfinalized, and the
	// failure is not misreported as a double Done.
	rep.runCleanups()
	require.Len(t, rep.errors, 1)
	assert.Contains(t, rep.errors[0], "without calling Done")
	require.Len(t, rep.fatals, 1)
}

func TestEngine_UpdateExpectations(t *testing.T) {
	t.Parallel()

	rep := &recordReporter{}
	e := NewEngine[numTx](rep, "test", numTx{1})

	e.Process(numTx{1})
	e.Done()

	// A fully consumed engine accepts a new script and re-arms.
	e.UpdateExpectations(numTx{2})
	e.Process(numTx{2})
	e.Done()

	assert.Empty(t, rep.fatals)
	assert.Equal(t, 2, e.Consumed())
}

func TestEngine_UpdateExpectationsWithPending(t *testing.T) {
	t.Parallel()

	rep := &recordReporter{}
	e := NewEngine[numTx](rep, "test", numTx{1}, numTx{2})

	e.Process(numTx{1})
	e.UpdateExpectations(numTx{3})

	require.Len(t, rep.fatals, 1)
	assert.Contains(t, rep.fatals[0], "UpdateExpectations")
	assert.Contains(t, rep.fatals[0], "unconsumed expected transactions")
}

func TestEngine_NilReporterPanics(t *testing.T) {
	t.Parallel()

	e := NewEngine[numTx](nil, "test", numTx{1})

	require.Panics(t, func() {
		e.Process(numTx{2})
	})
}

func TestEngine_TraceRecordsHistory(t *testing.T) {
	t.Parallel()

	e := NewEngine[numTx](t, "test", numTx{1}, numTx{2})
	e.Process(numTx{1})
	e.Process(numTx{2})
	e.Done()

	entries := e.Trace().Entries()
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Matched)
	assert.Equal(t, 0, entries[0].Index)
	assert.Equal(t, "numTx(1)", entries[0].Actual)
	assert.Equal(t, 1, entries[1].Index)
}
