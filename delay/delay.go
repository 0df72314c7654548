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

// Package delay provides mock delay implementations.
//
// Three variants cover the time models a driver may use:
//
//   - Mock validates each requested duration against an expectation
//     script and performs no actual wait, keeping tests instant.
//   - Real sleeps for the requested duration on the host clock.
//   - Noop ignores every request; use it when the test does not care
//     about delays at all.
//
// Mock and Real also provide SleepCtx, the asynchronous contract: the
// call suspends until the duration elapses or the context is cancelled,
// without blocking other goroutines.
//
// Timer is a separate countdown test double for drivers that arm a
// timer and wait on it rather than sleeping inline.
package delay

import (
	"context"
	"fmt"
	"time"

	halmock "github.com/ZaparooProject/go-halmock"
)

type opKind int

const (
	// opAny matches a blocking or a context-aware sleep
	opAny opKind = iota
	opBlocking
	opCtx
)

func (k opKind) String() string {
	switch k {
	case opAny:
		return "Sleep"
	case opBlocking:
		return "BlockingSleep"
	case opCtx:
		return "CtxSleep"
	default:
		return fmt.Sprintf("opKind(%d)", int(k))
	}
}

// Transaction is one expected delay request.
type Transaction struct {
	err  error
	d    time.Duration
	kind opKind
}

// Sleep creates an expectation for a delay of exactly d, requested
// through either Sleep or SleepCtx.
func Sleep(d time.Duration) Transaction {
	return Transaction{kind: opAny, d: d}
}

// BlockingSleep creates an expectation that only matches the blocking
// Sleep call.
func BlockingSleep(d time.Duration) Transaction {
	return Transaction{kind: opBlocking, d: d}
}

// CtxSleep creates an expectation that only matches the context-aware
// SleepCtx call.
func CtxSleep(d time.Duration) Transaction {
	return Transaction{kind: opCtx, d: d}
}

// WithError attaches a fault to the transaction. Only SleepCtx can
// surface it; the blocking Sleep has no error channel and reports an
// injected fault as a test failure instead.
func (tx Transaction) WithError(err error) Transaction {
	tx.err = err
	return tx
}

func (tx Transaction) String() string {
	return fmt.Sprintf("%s(%s)", tx.kind, tx.d)
}

// Match implements halmock.Matcher. Durations compare exactly.
func (tx Transaction) Match(actual Transaction) error {
	if tx.kind != opAny && tx.kind != actual.kind {
		return fmt.Errorf("expected a %s call, got %s", tx.kind, actual.kind)
	}
	if tx.d != actual.d {
		return fmt.Errorf("expected duration %s, got %s", tx.d, actual.d)
	}
	return nil
}

// Mock validates delay requests against an expectation script without
// performing any actual wait. It implements halmock.Delay and
// halmock.DelayCtx.
type Mock struct {
	engine *halmock.Engine[Transaction]
	rep    halmock.TestReporter
}

var (
	_ halmock.Delay    = (*Mock)(nil)
	_ halmock.DelayCtx = (*Mock)(nil)
)

// NewMock creates a delay mock seeded with the expected requests.
func NewMock(t halmock.TestReporter, expected ...Transaction) *Mock {
	return &Mock{
		engine: halmock.NewEngine(t, "delay", expected...),
		rep:    t,
	}
}

// Sleep validates the requested duration and returns immediately.
func (m *Mock) Sleep(d time.Duration) {
	exp := m.engine.Process(Transaction{kind: opBlocking, d: d})
	if exp.err != nil {
		// Sleep has no error return, so an injected fault here is a
		// script error rather than something the driver can observe.
		msg := fmt.Sprintf("delay mock: injected error on blocking Sleep has no error channel: %v", exp.err)
		if m.rep == nil {
			panic(msg)
		}
		m.rep.Fatalf("%s", msg)
	}
}

// SleepCtx validates the requested duration and returns immediately
// with the injected error, if any. The context is still honored so a
// cancelled caller behaves as it would against a real clock.
func (m *Mock) SleepCtx(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	exp := m.engine.Process(Transaction{kind: opCtx, d: d})
	return exp.err
}

// UpdateExpectations replaces the expectation script. The current
// script must be fully consumed first.
func (m *Mock) UpdateExpectations(expected ...Transaction) {
	m.engine.UpdateExpectations(expected...)
}

// Done asserts all expected delay requests were consumed.
func (m *Mock) Done() {
	m.engine.Done()
}

// Real performs actual waits on the host clock. Use it when the driver
// needs real elapsed time, for example when ratelimiting against an
// external process.
type Real struct{}

var (
	_ halmock.Delay    = Real{}
	_ halmock.DelayCtx = Real{}
)

// Sleep blocks the calling goroutine for d.
func (Real) Sleep(d time.Duration) {
	time.Sleep(d)
}

// SleepCtx suspends the caller until d elapses or ctx is cancelled,
// whichever comes first.
func (Real) SleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Noop ignores every delay request. It carries no expectations and
// never fails.
type Noop struct{}

var (
	_ halmock.Delay    = Noop{}
	_ halmock.DelayCtx = Noop{}
)

// Sleep returns immediately.
func (Noop) Sleep(time.Duration) {}

// SleepCtx returns immediately, honoring an already-cancelled context.
func (Noop) SleepCtx(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}
