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
	"strings"

	"github.com/ZaparooProject/go-halmock/internal/syncutil"
)

// defaultTraceSize bounds the transaction history kept per mock.
const defaultTraceSize = 16

// TraceEntry records a single processed transaction for diagnostics.
type TraceEntry struct {
	Expected string
	Actual   string
	Index    int
	Matched  bool
}

// String formats a trace entry for display
func (e TraceEntry) String() string {
	if e.Matched {
		return fmt.Sprintf("  #%d ok   %s", e.Index, e.Actual)
	}
	return fmt.Sprintf("  #%d FAIL expected %s, got %s", e.Index, e.Expected, e.Actual)
}

// TraceLog collects the transactions a mock has processed. It uses a
// fixed-size buffer, evicting the oldest entry when full, and is
// embedded in mismatch failures so the operations leading up to a
// mismatch are visible without re-running the test.
type TraceLog struct {
	peripheral string
	entries    []TraceEntry
	maxSize    int
	mu         syncutil.RWMutex
}

// NewTraceLog creates a trace log with the specified capacity.
func NewTraceLog(peripheral string, maxSize int) *TraceLog {
	if maxSize <= 0 {
		maxSize = defaultTraceSize
	}
	return &TraceLog{
		peripheral: peripheral,
		entries:    make([]TraceEntry, 0, maxSize),
		maxSize:    maxSize,
	}
}

// Record appends an entry, evicting the oldest if the buffer is full.
func (tl *TraceLog) Record(index int, expected, actual string, matched bool) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	entry := TraceEntry{
		Index:    index,
		Expected: expected,
		Actual:   actual,
		Matched:  matched,
	}
	if len(tl.entries) >= tl.maxSize {
		copy(tl.entries, tl.entries[1:])
		tl.entries[len(tl.entries)-1] = entry
	} else {
		tl.entries = append(tl.entries, entry)
	}
}

// Entries returns a copy of the recorded history, oldest first.
func (tl *TraceLog) Entries() []TraceEntry {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	out := make([]TraceEntry, len(tl.entries))
	copy(out, tl.entries)
	return out
}

// Format returns a human-readable transaction history.
func (tl *TraceLog) Format() string {
	tl.mu.RLock()
	defer tl.mu.RUnlock()
	if len(tl.entries) == 0 {
		return fmt.Sprintf("[%s] (no transaction history)", tl.peripheral)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] transaction history (%d entries):\n", tl.peripheral, len(tl.entries))
	for i, entry := range tl.entries {
		sb.WriteString(entry.String())
		if i < len(tl.entries)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Clear resets the history.
func (tl *TraceLog) Clear() {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.entries = tl.entries[:0]
}
