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
package surface

import (
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	gotype "github.com/timburks/gotype/types"
)

// An Element is a render surface holding an ordered list of units.
type Element struct {
	mu      sync.RWMutex
	tag     string
	ID      string
	Classes []string
	units   []gotype.Unit
	doc     *Document
	top     int // document row of the first line
	width   int // columns available for wrapping, 0 for unlimited
}

func NewElement(tag string) *Element {
	el := &Element{}
	el.tag = strings.ToLower(tag)
	el.units = make([]gotype.Unit, 0)
	return el
}

// NewText creates an element pre-populated with a raw text node.
func NewText(tag string, text string) *Element {
	el := NewElement(tag)
	el.SetText(text)
	return el
}

func (el *Element) Tag() string {
	return el.tag
}

func (el *Element) HasClass(class string) bool {
	for _, c := range el.Classes {
		if c == class {
			return true
		}
	}
	return false
}

func (el *Element) Len() int {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return len(el.units)
}

func (el *Element) At(i int) gotype.Unit {
	el.mu.RLock()
	defer el.mu.RUnlock()
	if i < 0 || i >= len(el.units) {
		return gotype.Unit{}
	}
	return el.units[i]
}

// Insert places u before position i. Positions past the end append.
func (el *Element) Insert(i int, u gotype.Unit) {
	el.mu.Lock()
	defer el.mu.Unlock()
	if i < 0 {
		i = 0
	}
	if i >= len(el.units) {
		el.units = append(el.units, u)
		return
	}
	el.units = append(el.units, gotype.Unit{})
	copy(el.units[i+1:], el.units[i:])
	el.units[i] = u
}

// delete unit at i and return it
func (el *Element) Remove(i int) gotype.Unit {
	el.mu.Lock()
	defer el.mu.Unlock()
	if i < 0 || i >= len(el.units) {
		return gotype.Unit{}
	}
	u := el.units[i]
	el.units = append(el.units[0:i], el.units[i+1:]...)
	return u
}

func (el *Element) Replace(i int, u gotype.Unit) {
	el.mu.Lock()
	defer el.mu.Unlock()
	if i >= 0 && i < len(el.units) {
		el.units[i] = u
	}
}

// Text returns the text content of the element. Breaks read as newlines.
func (el *Element) Text() string {
	el.mu.RLock()
	defer el.mu.RUnlock()
	var b strings.Builder
	for _, u := range el.units {
		b.WriteString(u.Content())
	}
	return b.String()
}

// SetText replaces every child, the caret included, with a single raw text node.
func (el *Element) SetText(text string) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.units = make([]gotype.Unit, 0)
	if text != "" {
		el.units = append(el.units, gotype.Unit{Kind: gotype.KindText, Text: text})
	}
}

// Units returns a copy of the children for rendering.
func (el *Element) Units() []gotype.Unit {
	el.mu.RLock()
	defer el.mu.RUnlock()
	units := make([]gotype.Unit, len(el.units))
	copy(units, el.units)
	return units
}

// RegisterStyle registers a style with the document holding the element.
// Detached elements have no styles.
func (el *Element) RegisterStyle(id string, style gotype.Style) bool {
	el.mu.RLock()
	doc := el.doc
	el.mu.RUnlock()
	if doc == nil {
		return false
	}
	return doc.RegisterStyle(id, style)
}

// Place positions the element at a document row with a wrapping width.
func (el *Element) Place(top, width int) {
	el.mu.Lock()
	defer el.mu.Unlock()
	el.top = top
	el.width = width
}

// Bounds reports the document row of the element and the number of rows
// its content occupies when wrapped at its width.
func (el *Element) Bounds() (top, height int) {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return el.top, len(Lines(el.units, el.width))
}

// Layout returns the document row of the element and its wrapped lines.
func (el *Element) Layout() (top int, lines [][]Cell) {
	el.mu.RLock()
	defer el.mu.RUnlock()
	return el.top, Lines(el.units, el.width)
}

// A Cell is one unit laid out on a row.
type Cell struct {
	Col  int
	Unit gotype.Unit
}

// Lines lays out units into rows, wrapping at width columns (0 for no wrap).
// Breaks start a new row. There is always at least one row.
func Lines(units []gotype.Unit, width int) [][]Cell {
	lines := make([][]Cell, 1)
	col := 0
	for _, u := range units {
		switch u.Kind {
		case gotype.KindBreak:
			lines = append(lines, nil)
			col = 0
			continue
		case gotype.KindCaret:
			w := u.Style.Width
			if w < 1 {
				w = 1
			}
			if width > 0 && col+w > width {
				lines = append(lines, nil)
				col = 0
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], Cell{Col: col, Unit: u})
			col += w
			continue
		}
		for _, r := range u.Text {
			if r == '\n' {
				lines = append(lines, nil)
				col = 0
				continue
			}
			w := runewidth.RuneWidth(r)
			if width > 0 && col+w > width && col > 0 {
				lines = append(lines, nil)
				col = 0
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], Cell{Col: col, Unit: gotype.Unit{Kind: u.Kind, Text: string(r), Style: u.Style}})
			col += w
		}
	}
	return lines
}
