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
	"os"
)

// debugEnabled controls whether debug logging is active
var debugEnabled = false

func init() {
	// Enable debug logging if the environment asks for it
	if os.Getenv("HALMOCK_DEBUG") != "" || os.Getenv("DEBUG") != "" {
		debugEnabled = true
	}
}

// Debugf prints debug information when debug mode is enabled. The
// engine logs every matched transaction through it, which makes the
// replay visible when diagnosing a failing driver test.
func Debugf(format string, args ...any) {
	if debugEnabled {
		_, _ = fmt.Printf("DEBUG: "+format+"\n", args...)
	}
}

// SetDebugEnabled allows programmatic control of debug logging
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}
