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
package visible

import (
	"context"
	"fmt"
	"strings"
	"sync"

	gotype "github.com/timburks/gotype/types"
)

// Edges
const (
	EdgeTop    = 0
	EdgeCenter = 1
	EdgeBottom = 2
)

// DefaultSpec waits until the center of an element reaches the bottom of the viewport.
const DefaultSpec = "center bottom"

// A Spec pairs an element edge with the viewport edge it must reach.
type Spec struct {
	Element  int
	Viewport int
}

func edge(name string) (int, bool) {
	switch name {
	case "top":
		return EdgeTop, true
	case "center":
		return EdgeCenter, true
	case "bottom":
		return EdgeBottom, true
	}
	return 0, false
}

// ParseSpec reads one or two edge names. A single name applies to both
// the element and the viewport.
func ParseSpec(s string) (Spec, error) {
	parts := strings.Fields(s)
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return Spec{}, fmt.Errorf("unknown value for visibility options - '%s'", s)
	}
	el, ok := edge(parts[0])
	if !ok {
		return Spec{}, fmt.Errorf("unknown value for visibility options - '%s'", s)
	}
	vp, ok := edge(parts[1])
	if !ok {
		return Spec{}, fmt.Errorf("unknown value for visibility options - '%s'", s)
	}
	return Spec{Element: el, Viewport: vp}, nil
}

// A Box reports where a surface sits in its document.
type Box interface {
	Bounds() (top, height int)
}

// A Viewport is the visible window onto a document of rows.
type Viewport struct {
	mu      sync.Mutex
	height  int
	offset  int
	changed chan struct{} // closed and replaced on every scroll or resize
}

func NewViewport(height int) *Viewport {
	return &Viewport{height: height, changed: make(chan struct{})}
}

func (v *Viewport) Height() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.height
}

func (v *Viewport) Offset() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset
}

func (v *Viewport) SetHeight(height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.height = height
	v.notify()
}

// ScrollBy moves the viewport down by delta rows (up when negative).
func (v *Viewport) ScrollBy(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset += delta
	if v.offset < 0 {
		v.offset = 0
	}
	v.notify()
}

func (v *Viewport) ScrollTo(offset int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if offset < 0 {
		offset = 0
	}
	v.offset = offset
	v.notify()
}

func (v *Viewport) notify() {
	close(v.changed)
	v.changed = make(chan struct{})
}

// Visible reports whether the box has reached the threshold in spec.
func (v *Viewport) Visible(b Box, spec Spec) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible(b, spec)
}

func (v *Viewport) visible(b Box, spec Spec) bool {
	top, height := b.Bounds()
	top -= v.offset
	var elementPos, viewportPos float64
	switch spec.Element {
	case EdgeTop:
		elementPos = float64(top)
	case EdgeCenter:
		elementPos = float64(top) + float64(height)/2
	case EdgeBottom:
		elementPos = float64(top + height)
	}
	switch spec.Viewport {
	case EdgeTop:
		viewportPos = 0
	case EdgeCenter:
		viewportPos = float64(v.height) / 2
	case EdgeBottom:
		viewportPos = float64(v.height)
	}
	return elementPos <= viewportPos
}

// WaitVisible blocks until the surface reaches threshold or ctx is done.
// Surfaces that are not boxes are always visible.
func (v *Viewport) WaitVisible(ctx context.Context, s gotype.Surface, threshold string) error {
	b, ok := s.(Box)
	if !ok {
		return ctx.Err()
	}
	sp, err := ParseSpec(threshold)
	if err != nil {
		return err
	}
	for {
		v.mu.Lock()
		if v.visible(b, sp) {
			v.mu.Unlock()
			return ctx.Err()
		}
		changed := v.changed
		v.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}
