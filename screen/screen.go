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
package screen

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/timburks/gotype/surface"
	gotype "github.com/timburks/gotype/types"
	"github.com/timburks/gotype/visible"
)

var infoPaint = Paint{Fg: "black", Bg: "white"}

// The Screen draws a document through a viewport.
type Screen struct {
	display Display
	size    gotype.Size // screen size
	blink   bool        // blinking carets are drawn when true
}

func NewScreen(d Display) *Screen {
	return &Screen{display: d, blink: true}
}

func (s *Screen) Close() {
	s.display.Close()
}

func (s *Screen) GetNextEvent() *gotype.Event {
	return s.display.PollEvent()
}

func (s *Screen) Interrupt() {
	s.display.Interrupt()
}

// ToggleBlink flips the phase of blinking carets.
func (s *Screen) ToggleBlink() {
	s.blink = !s.blink
}

func (s *Screen) Size() gotype.Size {
	return s.display.Size()
}

// Render draws every element of the document that falls inside the viewport,
// with an info bar on the last row.
func (s *Screen) Render(doc *surface.Document, v *visible.Viewport, status string) {
	s.display.Clear()
	s.size = s.display.Size()

	rows := s.size.Rows - 1
	offset := v.Offset()
	extent := 0
	for _, el := range doc.Elements() {
		top, lines := el.Layout()
		if end := top + len(lines); end > extent {
			extent = end
		}
		for i, line := range lines {
			row := top + i - offset
			if row < 0 || row >= rows {
				continue
			}
			s.RenderLine(row, line)
		}
	}
	s.RenderInfoBar(status, offset, extent)
	s.display.Flush()
}

func (s *Screen) RenderLine(row int, line []surface.Cell) {
	for _, cell := range line {
		if cell.Col >= s.size.Cols {
			break
		}
		u := cell.Unit
		if u.Kind != gotype.KindCaret {
			for _, ch := range u.Text {
				s.display.SetCell(cell.Col, row, ch, Paint{})
			}
			continue
		}
		if u.Style.Blink && !s.blink {
			continue
		}
		width := u.Style.Width
		if width < 1 {
			width = 1
		}
		for x := 0; x < width && cell.Col+x < s.size.Cols; x++ {
			s.display.SetCell(cell.Col+x, row, ' ', caretPaint(u.Style))
		}
	}
}

func caretPaint(style gotype.Style) Paint {
	if style.Color == "" || strings.EqualFold(style.Color, "currentcolor") {
		return Paint{Reverse: true}
	}
	return Paint{Bg: style.Color}
}

func (s *Screen) RenderInfoBar(status string, offset, extent int) {
	if s.size.Rows < 1 {
		return
	}
	finalText := fmt.Sprintf(" %d/%d ", offset, extent)
	text := " the gotype typewriter - " + status + " "
	available := s.size.Cols - runewidth.StringWidth(finalText)
	if available < 0 {
		available = 0
	}
	text = runewidth.FillRight(runewidth.Truncate(text, available, ""), available)
	text += finalText
	x := 0
	for _, ch := range text {
		if x >= s.size.Cols {
			break
		}
		s.display.SetCell(x, s.size.Rows-1, ch, infoPaint)
		x += runewidth.RuneWidth(ch)
	}
}
