//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package writer

import (
	gotype "github.com/timburks/gotype/types"
)

// A timeline is the ordered list of operations recorded before playback.
// It is closed when playback starts and only a reset empties it.
type timeline struct {
	operations []gotype.Operation
	closed     bool
}

// record appends op unless the timeline is closed. It reports whether op was kept.
func (t *timeline) record(op gotype.Operation) bool {
	if t.closed {
		return false
	}
	t.operations = append(t.operations, op)
	return true
}

// close stops further recording and returns the operations in insertion order.
func (t *timeline) close() []gotype.Operation {
	t.closed = true
	entries := make([]gotype.Operation, len(t.operations))
	copy(entries, t.operations)
	return entries
}

// open allows the timeline to be played again from the start.
func (t *timeline) open() {
	t.closed = false
}

func (t *timeline) clear() {
	t.operations = nil
	t.closed = false
}

func (t *timeline) len() int {
	return len(t.operations)
}
