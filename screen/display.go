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

	gotype "github.com/timburks/gotype/types"
)

// Paint describes how a cell is drawn. Empty colors are the terminal defaults.
type Paint struct {
	Fg      string
	Bg      string
	Reverse bool
}

// A Display is a terminal backend.
type Display interface {
	Size() gotype.Size
	Clear()
	SetCell(col, row int, ch rune, p Paint)
	Flush()
	// PollEvent blocks until the next event.
	PollEvent() *gotype.Event
	// Interrupt makes a blocked PollEvent return an interrupt event.
	Interrupt()
	Close()
}

// Open starts the named backend: "termbox" or "tcell".
func Open(backend string) (Display, error) {
	switch backend {
	case "", "termbox":
		t, err := OpenTermbox()
		if err != nil {
			return nil, err
		}
		return t, nil
	case "tcell":
		t, err := OpenTcell()
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, fmt.Errorf("unknown backend '%s'", backend)
}
