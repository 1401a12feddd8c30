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
	"github.com/nsf/termbox-go"
	gotype "github.com/timburks/gotype/types"
)

// Termbox draws with termbox-go.
type Termbox struct{}

func OpenTermbox() (*Termbox, error) {
	// Open the terminal.
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetOutputMode(termbox.Output256)
	termbox.HideCursor()
	return &Termbox{}, nil
}

func (t *Termbox) Close() {
	termbox.Close()
}

func (t *Termbox) Size() gotype.Size {
	var size gotype.Size
	size.Cols, size.Rows = termbox.Size()
	return size
}

func (t *Termbox) Clear() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
}

func (t *Termbox) SetCell(col, row int, ch rune, p Paint) {
	fg := termboxColor(p.Fg)
	bg := termboxColor(p.Bg)
	if p.Reverse {
		fg |= termbox.AttrReverse
	}
	termbox.SetCell(col, row, ch, fg, bg)
}

func (t *Termbox) Flush() {
	termbox.Flush()
}

func (t *Termbox) Interrupt() {
	termbox.Interrupt()
}

func (t *Termbox) PollEvent() *gotype.Event {
	event := termbox.PollEvent()
	switch event.Type {
	case termbox.EventKey:
		return &gotype.Event{Type: gotype.EventKey, Key: termboxKey(event.Key), Ch: event.Ch}
	case termbox.EventResize:
		termbox.Flush()
		return &gotype.Event{Type: gotype.EventResize, Size: gotype.Size{Rows: event.Height, Cols: event.Width}}
	case termbox.EventInterrupt:
		return &gotype.Event{Type: gotype.EventInterrupt}
	default:
		return &gotype.Event{Type: gotype.EventOther}
	}
}

var termboxColors = map[string]termbox.Attribute{
	"black":   termbox.ColorBlack,
	"red":     termbox.ColorRed,
	"green":   termbox.ColorGreen,
	"yellow":  termbox.ColorYellow,
	"blue":    termbox.ColorBlue,
	"magenta": termbox.ColorMagenta,
	"cyan":    termbox.ColorCyan,
	"white":   termbox.ColorWhite,
}

func termboxColor(name string) termbox.Attribute {
	if c, ok := termboxColors[name]; ok {
		return c
	}
	return termbox.ColorDefault
}

func termboxKey(k termbox.Key) int {
	switch k {
	case termbox.KeyArrowDown:
		return gotype.KeyArrowDown
	case termbox.KeyArrowLeft:
		return gotype.KeyArrowLeft
	case termbox.KeyArrowRight:
		return gotype.KeyArrowRight
	case termbox.KeyArrowUp:
		return gotype.KeyArrowUp
	case termbox.KeyCtrlC:
		return gotype.KeyCtrlC
	case termbox.KeyEnd:
		return gotype.KeyEnd
	case termbox.KeyEnter:
		return gotype.KeyEnter
	case termbox.KeyEsc:
		return gotype.KeyEsc
	case termbox.KeyHome:
		return gotype.KeyHome
	case termbox.KeyPgdn:
		return gotype.KeyPgdn
	case termbox.KeyPgup:
		return gotype.KeyPgup
	case termbox.KeySpace:
		return gotype.KeySpace
	case 0:
		return gotype.KeyNone
	default:
		return gotype.KeyUnsupported
	}
}
