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

	gotype "github.com/timburks/gotype/types"
)

// A Document owns a set of elements and the styles registered for them.
type Document struct {
	mu       sync.RWMutex
	elements []*Element
	styles   map[string]gotype.Style
}

func NewDocument() *Document {
	return &Document{
		elements: make([]*Element, 0),
		styles:   make(map[string]gotype.Style),
	}
}

// Append adds an element to the end of the document and returns it.
func (d *Document) Append(el *Element) *Element {
	el.mu.Lock()
	el.doc = d
	el.mu.Unlock()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements = append(d.elements, el)
	return el
}

func (d *Document) Elements() []*Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	elements := make([]*Element, len(d.elements))
	copy(elements, d.elements)
	return elements
}

// Query returns the first element matching a selector: "#id", ".class" or a tag name.
func (d *Document) Query(selector string) (gotype.Surface, bool) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, el := range d.elements {
		if matches(el, selector) {
			return el, true
		}
	}
	return nil, false
}

func matches(el *Element, selector string) bool {
	switch selector[0] {
	case '#':
		return el.ID == selector[1:]
	case '.':
		return el.HasClass(selector[1:])
	default:
		return el.Tag() == strings.ToLower(selector)
	}
}

// RegisterStyle records a style under id unless one is already registered.
// It reports whether the style was added.
func (d *Document) RegisterStyle(id string, style gotype.Style) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.styles[id]; ok {
		return false
	}
	d.styles[id] = style
	return true
}

func (d *Document) Style(id string) (gotype.Style, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.styles[id]
	return s, ok
}
