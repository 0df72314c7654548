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
	"errors"
	"fmt"
	"strings"
)

// Error categories for expectation handling
var (
	// Expectation failures - test-writer errors, never recoverable
	ErrMismatch     = errors.New("transaction mismatch")
	ErrExhausted    = errors.New("no expected transactions remaining")
	ErrUnconsumed   = errors.New("unconsumed expected transactions")
	ErrAlreadyDone  = errors.New("Done called more than once")
	ErrNotFinalized = errors.New("mock discarded without calling Done")

	// Injectable faults - attached to a transaction via WithError and
	// returned through the peripheral's normal error channel so the
	// driver-under-test can exercise its own error handling
	ErrBus             = errors.New("bus error")
	ErrNoAck           = errors.New("no acknowledge received")
	ErrArbitrationLost = errors.New("bus arbitration lost")
	ErrOverrun         = errors.New("receive buffer overrun")
	ErrTimeout         = errors.New("operation timed out")
	ErrIO              = errors.New("i/o error")
)

// MismatchError reports an intercepted operation that differs from the
// next expected transaction. It carries both representations so the
// failure can be diagnosed without re-running the test.
type MismatchError struct {
	Cause      error  // Underlying comparison failure
	Peripheral string // Which mock detected the mismatch
	Expected   string // The transaction the script expected next
	Actual     string // The operation the driver actually performed
	History    string // Recent transaction history, if any
	Index      int    // Zero-based position in the expectation script
}

func (e *MismatchError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s mock: transaction %d mismatch: expected %s, got %s",
		e.Peripheral, e.Index, e.Expected, e.Actual)
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	if e.History != "" {
		sb.WriteString("\n")
		sb.WriteString(e.History)
	}
	return sb.String()
}

func (*MismatchError) Unwrap() error {
	return ErrMismatch
}

// ExpectationError reports a lifecycle failure of the expectation queue:
// exhaustion, incompletion, double finalization, or a mock discarded
// while still armed.
type ExpectationError struct {
	Err        error  // Sentinel identifying the failure kind
	Peripheral string // Which mock failed
	Op         string // Operation during which the failure was detected
	Actual     string // Offending operation, for exhaustion failures
	Consumed   int    // Transactions consumed so far
	Remaining  int    // Transactions still queued
}

func (e *ExpectationError) Error() string {
	msg := fmt.Sprintf("%s mock: %s: %v", e.Peripheral, e.Op, e.Err)
	if e.Actual != "" {
		msg += ": got " + e.Actual
	}
	return msg + fmt.Sprintf(" (consumed %d, remaining %d)", e.Consumed, e.Remaining)
}

func (e *ExpectationError) Unwrap() error {
	return e.Err
}

// Error constructors for consistent error creation

// NewMismatchError creates a mismatch error carrying both the expected
// and actual transaction representations.
func NewMismatchError(peripheral string, index int, expected, actual string, cause error) *MismatchError {
	return &MismatchError{
		Peripheral: peripheral,
		Index:      index,
		Expected:   expected,
		Actual:     actual,
		Cause:      cause,
	}
}

// NewExhaustedError creates an exhaustion error for an operation that
// arrived after the expectation script was fully consumed.
func NewExhaustedError(peripheral, actual string, consumed int) *ExpectationError {
	return &ExpectationError{
		Err:        ErrExhausted,
		Peripheral: peripheral,
		Op:         "unexpected call",
		Actual:     actual,
		Consumed:   consumed,
	}
}

// NewUnconsumedError creates an incompletion error for a finalization or
// expectation replacement attempted while transactions remain queued.
func NewUnconsumedError(peripheral, op string, consumed, remaining int) *ExpectationError {
	return &ExpectationError{
		Err:        ErrUnconsumed,
		Peripheral: peripheral,
		Op:         op,
		Consumed:   consumed,
		Remaining:  remaining,
	}
}

// NewAlreadyDoneError creates a double-finalization error.
func NewAlreadyDoneError(peripheral string, consumed int) *ExpectationError {
	return &ExpectationError{
		Err:        ErrAlreadyDone,
		Peripheral: peripheral,
		Op:         "Done",
		Consumed:   consumed,
	}
}

// NewNotFinalizedError creates an error for a mock that reached test
// teardown without Done() ever being called.
func NewNotFinalizedError(peripheral string, consumed, remaining int) *ExpectationError {
	return &ExpectationError{
		Err:        ErrNotFinalized,
		Peripheral: peripheral,
		Op:         "teardown",
		Consumed:   consumed,
		Remaining:  remaining,
	}
}

// IsMismatch returns true if the error reports a transaction mismatch
func IsMismatch(err error) bool {
	return errors.Is(err, ErrMismatch)
}

// IsExhausted returns true if the error reports an operation performed
// after the expectation script was fully consumed
func IsExhausted(err error) bool {
	return errors.Is(err, ErrExhausted)
}

// IsUnconsumed returns true if the error reports finalization with
// expectations still queued
func IsUnconsumed(err error) bool {
	return errors.Is(err, ErrUnconsumed)
}

// IsAlreadyDone returns true if the error reports a second Done call
func IsAlreadyDone(err error) bool {
	return errors.Is(err, ErrAlreadyDone)
}

// IsNotFinalized returns true if the error reports a mock discarded
// while still armed
func IsNotFinalized(err error) bool {
	return errors.Is(err, ErrNotFinalized)
}
