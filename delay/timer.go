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

package delay

import (
	"errors"
	"time"

	"github.com/ZaparooProject/go-halmock/internal/syncutil"
)

// ErrTimerNotCounting is returned by Timer.Cancel when no countdown is
// active.
var ErrTimerNotCounting = errors.New("timer is not counting")

type timerState int

const (
	timerIdle timerState = iota
	timerCounting
	timerCanceled
)

// Timer is a countdown timer test double. Start arms it with a
// duration, Wait completes the countdown immediately without any actual
// wait, and Cancel aborts a running countdown. The armed duration is
// recorded for introspection, so a test can assert what interval the
// driver programmed.
type Timer struct {
	mu    syncutil.Mutex
	tick  time.Duration
	state timerState
}

// NewTimer creates an idle countdown timer.
func NewTimer() *Timer {
	return &Timer{}
}

// Start arms the timer with the given countdown duration. Restarting a
// running timer replaces the duration.
func (t *Timer) Start(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = timerCounting
	t.tick = d
}

// Wait completes the countdown and returns immediately; the mock never
// performs an actual wait. The timer returns to idle and can be
// restarted.
func (t *Timer) Wait() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = timerIdle
	return nil
}

// Cancel aborts a running countdown. Cancelling a timer that is not
// counting returns ErrTimerNotCounting.
func (t *Timer) Cancel() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != timerCounting {
		return ErrTimerNotCounting
	}
	t.state = timerCanceled
	return nil
}

// Counting reports whether a countdown is active.
func (t *Timer) Counting() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == timerCounting
}

// Duration returns the most recently armed countdown duration.
func (t *Timer) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tick
}
