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
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/timburks/gotype/operations"
	gotype "github.com/timburks/gotype/types"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrDetached        = errors.New("writer has been reset")
)

// A Querier resolves a selector to a surface.
type Querier interface {
	Query(selector string) (gotype.Surface, bool)
}

// The Writer animates a timeline of typing operations on a surface.
type Writer struct {
	mu       sync.Mutex
	surface  gotype.Surface // nil once reset
	options  Options
	timeline timeline
	state    int
	entries  int // units typed and not yet deleted, caret excluded
	repeats  int
	ctx      context.Context // current playback generation
	cancel   context.CancelFunc
	initial  string // text found on the surface when the writer was created
	err      error  // first builder error
}

// New binds a writer to a surface. Text already on the surface is cleared
// and becomes the first thing typed; it is put back by Reset.
func New(target gotype.Surface, opts *Options) (*Writer, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: no surface", ErrInvalidArgument)
	}
	switch tag := strings.ToLower(target.Tag()); tag {
	case "input", "textarea":
		return nil, fmt.Errorf("%w: surface cannot be a '%s' element", ErrInvalidArgument, tag)
	}

	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	o.normalize()

	w := &Writer{surface: target, options: o}
	w.ctx, w.cancel = context.WithCancel(context.Background())

	if text := strings.TrimSpace(target.Text()); text != "" {
		target.SetText("")
		w.initial = text
		w.Type(text)
	}
	if o.Caret {
		adapter{target}.addCaret(gotype.Style{Color: o.CaretColor, Width: o.CaretWidth, Blink: true})
	}
	return w, nil
}

// NewFromSelector binds a writer to the first surface matching selector.
func NewFromSelector(q Querier, selector string, opts *Options) (*Writer, error) {
	target, ok := q.Query(selector)
	if !ok {
		return nil, fmt.Errorf("%w: couldn't find an element with '%s'", ErrNotFound, selector)
	}
	return New(target, opts)
}

func (w *Writer) log() logrus.FieldLogger {
	return w.options.Logger
}

// Err returns the first error reported by a builder method.
func (w *Writer) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// State returns the playback state.
func (w *Writer) State() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}


// fail keeps err as the builder error. Once playback has started builder
// calls are ignored, so the error is only logged.
func (w *Writer) fail(err error) *Writer {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timeline.closed {
		w.log().WithError(err).Warn("builder call ignored during playback")
		return w
	}
	if w.err == nil {
		w.err = err
	}
	w.log().WithError(err).Error("builder call rejected")
	return w
}

func (w *Writer) record(op gotype.Operation) *Writer {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.surface == nil {
		if w.err == nil {
			w.err = ErrDetached
		}
		return w
	}
	w.timeline.record(op)
	return w
}

// Type types text one code point at a time.
func (w *Writer) Type(text string) *Writer {
	return w.record(&operations.Type{Text: text})
}

type deleteConfig struct {
	mode  string
	speed *time.Duration
	delay *time.Duration
}

// A DeleteOption adjusts a Delete or DeleteAll.
type DeleteOption func(*deleteConfig)

// Mode selects "char" ("c") or "word" ("w") deletion.
func Mode(mode string) DeleteOption {
	return func(c *deleteConfig) { c.mode = mode }
}

// Speed overrides the pause after each deleted unit.
func Speed(d time.Duration) DeleteOption {
	return func(c *deleteConfig) { c.speed = &d }
}

// Delay overrides the pause before deletion begins.
func Delay(d time.Duration) DeleteOption {
	return func(c *deleteConfig) { c.delay = &d }
}

func deleteOptions(opts []DeleteOption) (deleteConfig, error) {
	var c deleteConfig
	for _, opt := range opts {
		opt(&c)
	}
	if c.speed != nil && *c.speed < 0 {
		return c, fmt.Errorf("%w: '%v' must be a positive duration", ErrInvalidArgument, *c.speed)
	}
	if c.delay != nil && *c.delay < 0 {
		return c, fmt.Errorf("%w: '%v' must be a positive duration", ErrInvalidArgument, *c.delay)
	}
	return c, nil
}

// Delete removes count characters, or count words with Mode("word").
// Asking for more than there is removes everything.
func (w *Writer) Delete(count int, opts ...DeleteOption) *Writer {
	if count < 0 {
		return w.fail(fmt.Errorf("%w: '%d' must be a positive number", ErrInvalidArgument, count))
	}
	c, err := deleteOptions(opts)
	if err != nil {
		return w.fail(err)
	}
	mode, err := operations.ParseMode(c.mode)
	if err != nil {
		return w.fail(fmt.Errorf("%w: %v", ErrInvalidArgument, err))
	}
	op := operations.NewDelete(count, mode)
	if c.speed != nil {
		op.WithSpeed(*c.speed)
	}
	if c.delay != nil {
		op.WithDelay(*c.delay)
	}
	return w.record(op)
}

// DeleteAll removes everything but the caret, one unit at a time when ease
// is true and all at once otherwise.
func (w *Writer) DeleteAll(ease bool, opts ...DeleteOption) *Writer {
	c, err := deleteOptions(opts)
	if err != nil {
		return w.fail(err)
	}
	op := operations.NewDeleteAll(ease)
	if c.speed != nil {
		op.WithSpeed(*c.speed)
	}
	if c.delay != nil {
		op.WithDelay(*c.delay)
	}
	return w.record(op)
}

// NewLine inserts line breaks, one unless a count is given.
func (w *Writer) NewLine(count ...int) *Writer {
	n := 1
	switch len(count) {
	case 0:
	case 1:
		n = count[0]
	default:
		return w.fail(fmt.Errorf("%w: NewLine takes at most one count", ErrInvalidArgument))
	}
	if n < 0 {
		return w.fail(fmt.Errorf("%w: '%d' must be a positive number", ErrInvalidArgument, n))
	}
	return w.record(&operations.NewLine{Count: n})
}

// Pause waits, for the configured pause unless a duration is given.
func (w *Writer) Pause(d ...time.Duration) *Writer {
	w.mu.Lock()
	duration := w.options.Pause
	w.mu.Unlock()
	switch len(d) {
	case 0:
	case 1:
		duration = d[0]
	default:
		return w.fail(fmt.Errorf("%w: Pause takes at most one duration", ErrInvalidArgument))
	}
	if duration < 0 {
		return w.fail(fmt.Errorf("%w: '%v' must be a positive duration", ErrInvalidArgument, duration))
	}
	return w.record(&operations.Pause{Duration: duration})
}
