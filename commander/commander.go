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
package commander

import (
	"fmt"

	gotype "github.com/timburks/gotype/types"
)

// A Scroller is the viewport the commander moves.
type Scroller interface {
	Height() int
	SetHeight(height int)
	ScrollBy(delta int)
}

// A Controller is the writer the commander drives.
type Controller interface {
	Restart() error
	Reset()
}

// The Commander converts user input into commands for the viewport and writer.
type Commander struct {
	viewport Scroller
	writer   Controller
	running  bool
	debug    bool   // debug mode displays information about events (key codes, etc)
	message  string // status message
}

func NewCommander(v Scroller, w Controller) *Commander {
	return &Commander{viewport: v, writer: w, running: true}
}

func (c *Commander) IsRunning() bool {
	return c.running
}

func (c *Commander) Quit() {
	c.running = false
}

func (c *Commander) SetDebug(debug bool) {
	c.debug = debug
}

func (c *Commander) GetMessage() string {
	return c.message
}

func (c *Commander) ProcessEvent(event *gotype.Event) error {
	if c.debug {
		c.message = fmt.Sprintf("event=%+v", event)
	}
	switch event.Type {
	case gotype.EventKey:
		return c.ProcessKey(event)
	case gotype.EventResize:
		return c.ProcessResize(event)
	case gotype.EventInterrupt:
		c.running = false
	}
	return nil
}

// ProcessResize gives the viewport every row but the info bar.
func (c *Commander) ProcessResize(event *gotype.Event) error {
	rows := event.Size.Rows - 1
	if rows < 0 {
		rows = 0
	}
	c.viewport.SetHeight(rows)
	return nil
}

func (c *Commander) ProcessKey(event *gotype.Event) error {
	v := c.viewport

	switch event.Key {
	case gotype.KeyEsc, gotype.KeyCtrlC:
		c.running = false
	case gotype.KeyArrowUp:
		v.ScrollBy(-1)
	case gotype.KeyArrowDown:
		v.ScrollBy(1)
	case gotype.KeyPgup:
		v.ScrollBy(-v.Height())
	case gotype.KeyPgdn:
		v.ScrollBy(v.Height())
	}
	switch event.Ch {
	case 'q':
		c.running = false
	case 'k':
		v.ScrollBy(-1)
	case 'j':
		v.ScrollBy(1)
	case 'r':
		if err := c.writer.Restart(); err != nil {
			c.message = err.Error()
			return err
		}
		c.message = "restarted"
	case 'x':
		c.writer.Reset()
		c.message = "reset"
	}
	return nil
}
