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

import "fmt"

// TestReporter receives expectation failures. *testing.T satisfies it.
//
// Mismatch, exhaustion and finalization failures are reported through
// Fatalf because they indicate a broken test script, not behavior the
// driver-under-test could recover from.
type TestReporter interface {
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// cleanuper is the subset of testing.TB used to register the
// finalization guard. Reporters that implement it (such as *testing.T)
// get a teardown check that fails the test if Done() was never called.
type cleanuper interface {
	Cleanup(func())
}

// testHelper marks engine methods as helpers so failures are attributed
// to the test line, not the mock internals.
type testHelper interface {
	Helper()
}

// panicReporter is the fallback when no TestReporter is supplied. It
// turns every failure into a panic so expectation violations can never
// pass silently outside a test context.
type panicReporter struct{}

func (panicReporter) Errorf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

func (panicReporter) Fatalf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
