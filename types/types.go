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
package types

import (
	"context"
	"time"
)

// Unit kinds
const (
	KindText  = 0
	KindBreak = 1
	KindCaret = 2
)

// Delete modes
const (
	DeleteChar = 0
	DeleteWord = 1
)

// Playback states
const (
	StateIdle      = 0
	StatePlaying   = 1
	StateRepeating = 2
)

// CaretStyleID names the style shared by every caret in a document.
const CaretStyleID = "gotype-caret"

// Style holds the cosmetic attributes of a unit. Only carets use it.
type Style struct {
	Color string
	Width int
	Blink bool
}

// A Unit is one child of a surface: a typed character, a line break,
// the caret, or a raw text node restored after a reset.
type Unit struct {
	Kind  int
	Text  string
	Style Style
}

// Content is the text a unit contributes to its surface.
func (u Unit) Content() string {
	if u.Kind == KindBreak {
		return "\n"
	}
	return u.Text
}

type Size struct {
	Rows int
	Cols int
}

// A Surface is the element being written into.
// When a caret is present it is always the last child.
type Surface interface {
	Tag() string
	Len() int
	At(i int) Unit
	Insert(i int, u Unit)
	Remove(i int) Unit
	Replace(i int, u Unit)
	Text() string
	SetText(text string)
}

// Visibility resolves when a surface becomes visible. The threshold is
// a pair of edges such as "center bottom".
type Visibility interface {
	WaitVisible(ctx context.Context, s Surface, threshold string) error
}

// Settings are the timing values operations fall back to.
type Settings struct {
	TypingSpeed   time.Duration
	DeletingSpeed time.Duration
	DeleteDelay   time.Duration
	Pause         time.Duration
}

// A Player is the set of services a writer provides to operations.
// Every method taking a context fails once that context's playback
// generation has been invalidated, and then leaves the surface untouched.
type Player interface {
	Settings() Settings
	Sleep(ctx context.Context, d time.Duration) error

	Put(ctx context.Context, u Unit) error
	Pop(ctx context.Context) error
	Tail() (last Unit, prev Unit, hasPrev bool, ok bool)
	Count() int
	Clear(ctx context.Context) error

	CharDeleted(ctx context.Context)
	SetTyping(ctx context.Context, typing bool)
}

type Operation interface {
	Perform(ctx context.Context, p Player) error
}

// Event types
const (
	EventKey       = 0
	EventResize    = 1
	EventInterrupt = 2
	EventOther     = 3
)

// Keys
const (
	KeyNone = iota
	KeyUnsupported
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyPgup
	KeyPgdn
	KeyHome
	KeyEnd
	KeyEnter
	KeyEsc
	KeySpace
	KeyCtrlC
)

// An Event is a key press or a resize, translated from the terminal backend.
// Ch is set for printable keys, Key for everything else.
type Event struct {
	Type int
	Key  int
	Ch   rune
	Size Size
}
