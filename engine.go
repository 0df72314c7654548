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

	"github.com/eapache/queue"

	"github.com/ZaparooProject/go-halmock/internal/syncutil"
)

// Matcher is the comparison contract a peripheral transaction type must
// satisfy to be replayed through an Engine. Match compares the receiver
// (the expected transaction) against the operation the driver actually
// performed and returns a descriptive error on any structural
// difference. Comparison is exact: byte payloads must match in length
// and content, never by prefix.
type Matcher[T any] interface {
	fmt.Stringer

	// Match compares the expected transaction against the actual one.
	Match(actual T) error
}

// Engine is the shared expectation queue underlying every mock
// peripheral. It holds an ordered script of expected transactions,
// consumes them in strict FIFO order as the driver-under-test performs
// operations, and reports any deviation through its TestReporter.
//
// Engines are created indirectly through the peripheral packages (e.g.
// i2c.NewMock); drivers never see the engine itself. A single engine
// pointer may be shared between the mock handed to the driver and the
// handle the test keeps for Done(), so internal state is guarded by a
// mutex even though replay is single-threaded by design.
type Engine[T Matcher[T]] struct {
	rep        TestReporter
	expected   *queue.Queue
	trace      *TraceLog
	peripheral string
	mu         syncutil.Mutex
	consumed   int
	done       bool
}

// NewEngine creates an engine for the named peripheral, seeded with the
// given transactions in call order.
//
// If rep is a *testing.T (or anything else with a Cleanup method), a
// teardown hook is registered that fails the test if the engine reaches
// cleanup without Done() ever being called. A forgotten finalization
// therefore breaks the test run instead of passing silently. A nil rep
// falls back to panicking on failure.
func NewEngine[T Matcher[T]](rep TestReporter, peripheral string, expected ...T) *Engine[T] {
	if rep == nil {
		rep = panicReporter{}
	}
	e := &Engine[T]{
		rep:        rep,
		peripheral: peripheral,
		expected:   queue.New(),
		trace:      NewTraceLog(peripheral, defaultTraceSize),
	}
	for _, tx := range expected {
		e.expected.Add(tx)
	}
	if c, ok := rep.(cleanuper); ok {
		c.Cleanup(e.verifyFinalized)
	}
	return e
}

// Process validates the driver's actual operation against the next
// expected transaction and returns the expected transaction so the
// calling adapter can extract its response payload and injected error.
//
// Process fails the test on exhaustion (no transactions remain) and on
// mismatch (wrong kind, address or payload). The returned zero value
// after a failure is only observable with a non-fatal reporter.
func (e *Engine[T]) Process(actual T) T {
	e.helper()
	e.mu.Lock()

	var zero T
	if e.expected.Length() == 0 {
		consumed := e.consumed
		e.mu.Unlock()
		e.rep.Fatalf("%v", NewExhaustedError(e.peripheral, actual.String(), consumed))
		return zero
	}

	exp, ok := e.expected.Remove().(T)
	if !ok {
		e.mu.Unlock()
		e.rep.Fatalf("%s mock: invalid transaction type in queue", e.peripheral)
		return zero
	}
	index := e.consumed
	e.consumed++

	if err := exp.Match(actual); err != nil {
		e.trace.Record(index, exp.String(), actual.String(), false)
		history := e.trace.Format()
		e.mu.Unlock()
		mismatch := NewMismatchError(e.peripheral, index, exp.String(), actual.String(), err)
		mismatch.History = history
		e.rep.Fatalf("%v", mismatch)
		return zero
	}

	e.trace.Record(index, exp.String(), actual.String(), true)
	e.mu.Unlock()

	Debugf("%s: #%d %s", e.peripheral, index, actual)
	return exp
}

// Done asserts that every expected transaction was consumed and
// finalizes the engine, disarming the teardown guard.
//
// Calling Done with transactions still queued is an incompletion
// failure. Calling it a second time is a double-finalization failure,
// since it signals the mock is being reused across tests.
func (e *Engine[T]) Done() {
	e.helper()
	e.mu.Lock()
	already := e.done
	consumed := e.consumed
	remaining := e.expected.Length()
	// A failed finalization leaves the engine armed, so the teardown
	// guard still reports the mock as unfinalized.
	if !already && remaining == 0 {
		e.done = true
	}
	e.mu.Unlock()

	if already {
		e.rep.Fatalf("%v", NewAlreadyDoneError(e.peripheral, consumed))
		return
	}
	if remaining > 0 {
		e.rep.Fatalf("%v", NewUnconsumedError(e.peripheral, "Done", consumed, remaining))
	}
}

// UpdateExpectations replaces the expectation script with a new one and
// re-arms the engine.
//
// The current script must be fully consumed first; replacing pending
// expectations indicates a test-writer error and fails the test
// immediately.
func (e *Engine[T]) UpdateExpectations(expected ...T) {
	e.helper()
	e.mu.Lock()
	if remaining := e.expected.Length(); remaining > 0 {
		consumed := e.consumed
		e.mu.Unlock()
		e.rep.Fatalf("%v", NewUnconsumedError(e.peripheral, "UpdateExpectations", consumed, remaining))
		return
	}
	for _, tx := range expected {
		e.expected.Add(tx)
	}
	e.done = false
	e.mu.Unlock()
}

// Remaining returns the number of expected transactions not yet
// consumed.
func (e *Engine[T]) Remaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.expected.Length()
}

// Consumed returns the number of expected transactions matched so far.
func (e *Engine[T]) Consumed() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.consumed
}

// Trace returns the engine's transaction history.
func (e *Engine[T]) Trace() *TraceLog {
	return e.trace
}

// verifyFinalized is the teardown guard. It reports through Errorf, not
// Fatalf, because it runs after the test body has already returned.
func (e *Engine[T]) verifyFinalized() {
	e.mu.Lock()
	done := e.done
	consumed := e.consumed
	remaining := e.expected.Length()
	e.mu.Unlock()

	if !done {
		e.rep.Errorf("%v", NewNotFinalizedError(e.peripheral, consumed, remaining))
	}
}

func (e *Engine[T]) helper() {
	if h, ok := e.rep.(testHelper); ok {
		h.Helper()
	}
}
