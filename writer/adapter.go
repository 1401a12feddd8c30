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

// styler is implemented by surfaces that belong to a document with a style registry.
type styler interface {
	RegisterStyle(id string, style gotype.Style) bool
}

// adapter gives the caret-aware view of a surface that operations work with.
type adapter struct {
	s gotype.Surface
}

// caret reports whether the last child is a caret.
func (a adapter) caret() bool {
	n := a.s.Len()
	return n > 0 && a.s.At(n-1).Kind == gotype.KindCaret
}

// count is the number of units that are not the caret.
func (a adapter) count() int {
	n := a.s.Len()
	if a.caret() {
		n--
	}
	return n
}

// put inserts u before the caret, or at the end when there is no caret.
func (a adapter) put(u gotype.Unit) {
	if a.caret() {
		a.s.Insert(a.s.Len()-1, u)
	} else {
		a.s.Insert(a.s.Len(), u)
	}
}

// removeLast removes the last unit that is not the caret.
func (a adapter) removeLast() bool {
	n := a.count()
	if n == 0 {
		return false
	}
	a.s.Remove(n - 1)
	return true
}

// tail returns the last unit that is not the caret and the unit before it.
func (a adapter) tail() (last, prev gotype.Unit, hasPrev, ok bool) {
	n := a.count()
	if n == 0 {
		return last, prev, false, false
	}
	last = a.s.At(n - 1)
	if n > 1 {
		prev = a.s.At(n - 2)
		hasPrev = true
	}
	return last, prev, hasPrev, true
}

// pop removes up to n units before the caret and returns how many went.
func (a adapter) pop(n int) int {
	removed := 0
	for removed < n && a.removeLast() {
		removed++
	}
	return removed
}

// addCaret appends a caret unless the surface already has one.
func (a adapter) addCaret(style gotype.Style) {
	if a.caret() {
		return
	}
	if r, ok := a.s.(styler); ok {
		r.RegisterStyle(gotype.CaretStyleID, gotype.Style{Blink: true})
	}
	a.s.Insert(a.s.Len(), gotype.Unit{Kind: gotype.KindCaret, Style: style})
}

// setBlink turns caret blinking on or off.
func (a adapter) setBlink(blink bool) {
	if !a.caret() {
		return
	}
	i := a.s.Len() - 1
	u := a.s.At(i)
	if u.Style.Blink != blink {
		u.Style.Blink = blink
		a.s.Replace(i, u)
	}
}
