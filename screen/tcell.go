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
	"github.com/gdamore/tcell/v2"
	gotype "github.com/timburks/gotype/types"
)

// Tcell draws with a tcell screen.
type Tcell struct {
	screen tcell.Screen
}

func OpenTcell() (*Tcell, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTcell(s)
}

// NewTcell initializes s and draws on it.
func NewTcell(s tcell.Screen) (*Tcell, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.HideCursor()
	return &Tcell{screen: s}, nil
}

func (t *Tcell) Close() {
	t.screen.Fini()
}

func (t *Tcell) Size() gotype.Size {
	var size gotype.Size
	size.Cols, size.Rows = t.screen.Size()
	return size
}

func (t *Tcell) Clear() {
	t.screen.Clear()
}

func (t *Tcell) SetCell(col, row int, ch rune, p Paint) {
	t.screen.SetContent(col, row, ch, nil, tcellStyle(p))
}

func (t *Tcell) Flush() {
	t.screen.Show()
}

func (t *Tcell) Interrupt() {
	t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (t *Tcell) PollEvent() *gotype.Event {
	switch ev := t.screen.PollEvent().(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			return &gotype.Event{Type: gotype.EventKey, Ch: ev.Rune()}
		}
		return &gotype.Event{Type: gotype.EventKey, Key: tcellKey(ev.Key())}
	case *tcell.EventResize:
		var size gotype.Size
		size.Cols, size.Rows = ev.Size()
		return &gotype.Event{Type: gotype.EventResize, Size: size}
	case *tcell.EventInterrupt, nil:
		// a nil event means the screen has been finalized
		return &gotype.Event{Type: gotype.EventInterrupt}
	default:
		return &gotype.Event{Type: gotype.EventOther}
	}
}

func tcellStyle(p Paint) tcell.Style {
	style := tcell.StyleDefault
	if p.Fg != "" {
		style = style.Foreground(tcell.GetColor(p.Fg))
	}
	if p.Bg != "" {
		style = style.Background(tcell.GetColor(p.Bg))
	}
	return style.Reverse(p.Reverse)
}

func tcellKey(k tcell.Key) int {
	switch k {
	case tcell.KeyDown:
		return gotype.KeyArrowDown
	case tcell.KeyLeft:
		return gotype.KeyArrowLeft
	case tcell.KeyRight:
		return gotype.KeyArrowRight
	case tcell.KeyUp:
		return gotype.KeyArrowUp
	case tcell.KeyCtrlC:
		return gotype.KeyCtrlC
	case tcell.KeyEnd:
		return gotype.KeyEnd
	case tcell.KeyEnter:
		return gotype.KeyEnter
	case tcell.KeyEscape:
		return gotype.KeyEsc
	case tcell.KeyHome:
		return gotype.KeyHome
	case tcell.KeyPgDn:
		return gotype.KeyPgdn
	case tcell.KeyPgUp:
		return gotype.KeyPgup
	default:
		return gotype.KeyUnsupported
	}
}
