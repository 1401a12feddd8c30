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
	"time"

	"github.com/timburks/gotype/operations"
	gotype "github.com/timburks/gotype/types"
)

// Play starts playback in the background. Calling it again while the
// timeline is playing, or after it has finished, does nothing.
func (w *Writer) Play() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.surface == nil {
		return ErrDetached
	}
	if w.err != nil {
		return w.err
	}
	w.start()
	return nil
}

// start launches a pass for the current generation. Callers hold w.mu.
func (w *Writer) start() {
	if w.timeline.closed {
		return
	}
	entries := w.timeline.close()
	w.state = gotype.StatePlaying
	w.log().WithField("entries", len(entries)).Debug("play")
	go w.run(w.ctx, w.surface, entries, w.options)
}

// Restart abandons the current pass, removes what it typed and plays the
// timeline again from the start.
func (w *Writer) Restart() error {
	w.mu.Lock()
	if w.surface == nil {
		w.mu.Unlock()
		return ErrDetached
	}
	w.renew()
	adapter{w.surface}.pop(w.entries)
	w.entries = 0
	w.repeats = 0
	w.state = gotype.StateIdle
	onRestart := w.options.OnRestart
	w.log().Debug("restart")
	w.mu.Unlock()

	if onRestart != nil {
		onRestart()
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	// a callback may have reset the writer
	if w.surface == nil {
		return ErrDetached
	}
	if w.err != nil {
		return w.err
	}
	w.timeline.open()
	w.start()
	return nil
}

// Reset stops playback, removes what this writer typed, puts back the text
// the surface held when the writer was created and detaches the writer from
// the surface. Units written by other writers are left alone.
func (w *Writer) Reset() {
	w.mu.Lock()
	if w.surface == nil {
		w.mu.Unlock()
		return
	}
	w.renew()
	adapter{w.surface}.pop(w.entries)
	if w.initial != "" {
		w.surface.SetText(w.initial)
	}
	w.surface = nil
	w.initial = ""
	w.timeline.clear()
	w.entries = 0
	w.repeats = 0
	w.state = gotype.StateIdle
	onReset := w.options.OnReset
	logger := w.options.Logger
	w.options = DefaultOptions()
	w.options.Logger = logger
	w.log().Debug("reset")
	w.mu.Unlock()

	if onReset != nil {
		onReset()
	}
}

// renew invalidates the current playback generation. Callers hold w.mu.
func (w *Writer) renew() {
	w.cancel()
	w.ctx, w.cancel = context.WithCancel(context.Background())
}

// run plays entries until the timeline and its repeats are done or ctx is
// cancelled. A cancelled pass stops silently.
func (w *Writer) run(ctx context.Context, surface gotype.Surface, entries []gotype.Operation, o Options) {
	p := (*player)(w)
	log := o.Logger

	if o.WaitUntilVisible && o.Visibility != nil {
		if err := o.Visibility.WaitVisible(ctx, surface, o.VisibleOptions); err != nil {
			log.WithError(err).Debug("visibility wait abandoned")
			return
		}
	}
	if err := p.Sleep(ctx, o.StartDelay); err != nil {
		return
	}
	p.fire(ctx, o.OnStart)

	for {
		for _, op := range entries {
			if err := op.Perform(ctx, p); err != nil {
				log.WithError(err).Debug("pass interrupted")
				return
			}
		}
		if !w.repeat(ctx, o.Repeat) {
			break
		}
		wipe := operations.NewDeleteAll(o.RepeatEase)
		if o.RepeatEase {
			wipe.WithSpeed(o.RepeatSpeed)
		}
		if err := wipe.Perform(ctx, p); err != nil {
			return
		}
		if err := p.Sleep(ctx, o.RepeatDelay); err != nil {
			return
		}
		if !w.resume(ctx) {
			return
		}
		log.Debug("repeat")
	}

	w.mu.Lock()
	if ctx.Err() != nil {
		w.mu.Unlock()
		return
	}
	w.state = gotype.StateIdle
	w.mu.Unlock()
	p.fire(ctx, o.OnEnd)
}

// repeat reports whether another pass is due and, if so, counts it.
func (w *Writer) repeat(ctx context.Context, limit int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	if limit != RepeatInfinite && w.repeats >= limit {
		w.repeats = 0
		return false
	}
	if limit != RepeatInfinite {
		w.repeats++
	}
	w.state = gotype.StateRepeating
	return true
}

// resume marks the writer as playing again after a repeat wipe. It reports
// false when ctx has been cancelled.
func (w *Writer) resume(ctx context.Context) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	w.state = gotype.StatePlaying
	return true
}

// player provides the services operations use during a pass.
type player Writer

func (p *player) lock() *player {
	p.mu.Lock()
	return p
}

func (p *player) unlock() {
	p.mu.Unlock()
}

// target returns the surface unless ctx has been cancelled. Callers hold p.mu.
func (p *player) target(ctx context.Context) (adapter, error) {
	if err := ctx.Err(); err != nil {
		return adapter{}, err
	}
	return adapter{p.surface}, nil
}

// fire calls f unless ctx has been cancelled. No lock is held during the call.
func (p *player) fire(ctx context.Context, f func()) {
	if f == nil || ctx.Err() != nil {
		return
	}
	f()
}

func (p *player) Settings() gotype.Settings {
	defer p.lock().unlock()
	return p.options.settings()
}

func (p *player) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (p *player) Put(ctx context.Context, u gotype.Unit) error {
	p.lock()
	a, err := p.target(ctx)
	if err != nil {
		p.unlock()
		return err
	}
	a.put(u)
	p.entries++
	onCharTyped := p.options.OnCharTyped
	p.unlock()

	p.fire(ctx, onCharTyped)
	return nil
}

func (p *player) Pop(ctx context.Context) error {
	defer p.lock().unlock()
	a, err := p.target(ctx)
	if err != nil {
		return err
	}
	if p.entries > 0 && a.removeLast() {
		p.entries--
	}
	return nil
}

func (p *player) Tail() (last, prev gotype.Unit, hasPrev, ok bool) {
	defer p.lock().unlock()
	if p.surface == nil || p.entries == 0 {
		return last, prev, false, false
	}
	return adapter{p.surface}.tail()
}

func (p *player) Count() int {
	defer p.lock().unlock()
	return p.entries
}

func (p *player) Clear(ctx context.Context) error {
	defer p.lock().unlock()
	a, err := p.target(ctx)
	if err != nil {
		return err
	}
	a.pop(p.entries)
	p.entries = 0
	return nil
}

func (p *player) CharDeleted(ctx context.Context) {
	p.lock()
	onCharDeleted := p.options.OnCharDeleted
	p.unlock()
	p.fire(ctx, onCharDeleted)
}

func (p *player) SetTyping(ctx context.Context, typing bool) {
	defer p.lock().unlock()
	a, err := p.target(ctx)
	if err != nil {
		return
	}
	a.setBlink(!typing)
}
