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
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/timburks/gotype/surface"
	gotype "github.com/timburks/gotype/types"
)

const timeout = 5 * time.Second

// instant returns options with every pause set to zero.
func instant(caret bool) *Options {
	o := DefaultOptions()
	o.TypingSpeed = 0
	o.DeletingSpeed = 0
	o.DeleteDelay = 0
	o.Pause = 0
	o.RepeatDelay = 0
	o.Caret = caret
	logger, _ := logtest.NewNullLogger()
	o.Logger = logger
	return &o
}

// signal returns a callback that reports each call on the returned channel.
func signal() (func(), chan struct{}) {
	c := make(chan struct{}, 16)
	return func() { c <- struct{}{} }, c
}

func counter() (func(), *int64) {
	var n int64
	return func() { atomic.AddInt64(&n, 1) }, &n
}

func await(t *testing.T, c chan struct{}, what string) {
	t.Helper()
	select {
	case <-c:
	case <-time.After(timeout):
		t.Fatalf("Timed out waiting for %s", what)
	}
}

func quiet(t *testing.T, c chan struct{}, what string) {
	t.Helper()
	select {
	case <-c:
		t.Errorf("Unexpected %s", what)
	case <-time.After(100 * time.Millisecond):
	}
}

// play builds a writer on el, lets build add to its timeline and plays it to the end.
func play(t *testing.T, el *surface.Element, o *Options, build func(w *Writer)) *Writer {
	t.Helper()
	onEnd, ended := signal()
	o.OnEnd = onEnd
	w, err := New(el, o)
	if err != nil {
		t.Fatalf("New failed: %+v", err)
	}
	build(w)
	if err := w.Play(); err != nil {
		t.Fatalf("Play failed: %+v", err)
	}
	await(t, ended, "the end of playback")
	return w
}

func TestType(t *testing.T) {
	for _, caret := range []bool{false, true} {
		el := surface.NewElement("div")
		play(t, el, instant(caret), func(w *Writer) { w.Type("test") })
		expected := 4
		if caret {
			expected = 5
		}
		if n := el.Len(); n != expected {
			t.Errorf("Unexpected unit count with caret=%t: %d", caret, n)
		}
		if text := el.Text(); text != "test" {
			t.Errorf("Unexpected text: '%s'", text)
		}
	}
}

func TestTypeCodePoints(t *testing.T) {
	el := surface.NewElement("div")
	play(t, el, instant(false), func(w *Writer) { w.Type("héllo→✓") })
	if n := el.Len(); n != 7 {
		t.Errorf("Unexpected unit count: %d", n)
	}
}

func TestTypeEmpty(t *testing.T) {
	el := surface.NewElement("div")
	play(t, el, instant(true), func(w *Writer) { w.Type("") })
	if n := el.Len(); n != 1 {
		t.Errorf("Unexpected unit count: %d", n)
	}
}

func TestTypeKeepsCaretLast(t *testing.T) {
	el := surface.NewElement("div")
	play(t, el, instant(true), func(w *Writer) { w.Type("ab").NewLine().Type("c") })
	if u := el.At(el.Len() - 1); u.Kind != gotype.KindCaret {
		t.Errorf("Caret is not the last unit: %+v", u)
	}
	if text := el.Text(); text != "ab\nc" {
		t.Errorf("Unexpected text: '%s'", text)
	}
}

func TestDeleteCharacters(t *testing.T) {
	el := surface.NewElement("div")
	play(t, el, instant(true), func(w *Writer) { w.Type("hello").Delete(2) })
	if text := el.Text(); text != "hel" {
		t.Errorf("Unexpected text after deletion: '%s'", text)
	}

	el = surface.NewElement("div")
	play(t, el, instant(true), func(w *Writer) { w.Type("hello").Delete(50) })
	if n := el.Len(); n != 1 {
		t.Errorf("Unexpected unit count after clamped deletion: %d", n)
	}
}

func TestDeleteWords(t *testing.T) {
	el := surface.NewElement("div")
	play(t, el, instant(false), func(w *Writer) {
		w.Type("fast in and out").Delete(3, Mode("word"))
	})
	if n := el.Len(); n != 5 {
		t.Errorf("Unexpected unit count after word deletion: %d", n)
	}
	if text := el.Text(); text != "fast " {
		t.Errorf("Unexpected remainder after word deletion: '%s'", text)
	}
}

func TestDeleteWordsAcrossBreaks(t *testing.T) {
	el := surface.NewElement("div")
	play(t, el, instant(false), func(w *Writer) {
		w.Type("one two").NewLine().Type("three").Delete(2, Mode("w"))
	})
	// the break counts as a word
	if text := el.Text(); text != "one two" {
		t.Errorf("Unexpected remainder after word deletion: '%s'", text)
	}
}

func TestDeleteMoreWordsThanExist(t *testing.T) {
	el := surface.NewElement("div")
	onCharDeleted, deleted := counter()
	o := instant(false)
	o.OnCharDeleted = onCharDeleted
	play(t, el, o, func(w *Writer) {
		w.Type("fast in and out").Delete(50, Mode("word")).Type("more")
	})
	if n := el.Len(); n != 4 {
		t.Errorf("Unexpected unit count: %d", n)
	}
	if text := el.Text(); text != "more" {
		t.Errorf("Unexpected text: '%s'", text)
	}
	if n := atomic.LoadInt64(deleted); n != 4 {
		t.Errorf("Expected one deletion callback per word, got %d", n)
	}
}

func TestNewLine(t *testing.T) {
	breaks := func(el *surface.Element) int {
		n := 0
		for _, u := range el.Units() {
			if u.Kind == gotype.KindBreak {
				n++
			}
		}
		return n
	}
	el := surface.NewElement("div")
	play(t, el, instant(false), func(w *Writer) { w.NewLine() })
	if n := breaks(el); n != 1 {
		t.Errorf("Unexpected break count: %d", n)
	}
	el = surface.NewElement("div")
	play(t, el, instant(false), func(w *Writer) { w.NewLine(2) })
	if n := breaks(el); n != 2 {
		t.Errorf("Unexpected break count: %d", n)
	}
}

func TestDeleteAll(t *testing.T) {
	for _, ease := range []bool{false, true} {
		el := surface.NewElement("div")
		onCharDeleted, deleted := counter()
		o := instant(false)
		o.OnCharDeleted = onCharDeleted
		play(t, el, o, func(w *Writer) { w.Type("a b").NewLine().Type("c").DeleteAll(ease) })
		if n := el.Len(); n != 0 {
			t.Errorf("Unexpected unit count with ease=%t: %d", ease, n)
		}
		expected := int64(1)
		if ease {
			expected = 5
		}
		if n := atomic.LoadInt64(deleted); n != expected {
			t.Errorf("Unexpected deletion callbacks with ease=%t: %d", ease, n)
		}
	}
}

func TestPause(t *testing.T) {
	el := surface.NewElement("div")
	start := time.Now()
	play(t, el, instant(false), func(w *Writer) { w.Type("a").Pause(50 * time.Millisecond).Type("b") })
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Pause was too short: %v", elapsed)
	}
	if text := el.Text(); text != "ab" {
		t.Errorf("Unexpected text: '%s'", text)
	}
}

func TestCallbacks(t *testing.T) {
	el := surface.NewElement("div")
	onStart, started := counter()
	onCharTyped, typed := counter()
	o := instant(true)
	o.OnStart = onStart
	o.OnCharTyped = onCharTyped
	o.Repeat = 2
	w := play(t, el, o, func(w *Writer) { w.Type("abc").NewLine() })
	if n := atomic.LoadInt64(started); n != 1 {
		t.Errorf("Start callback fired %d times", n)
	}
	if n := atomic.LoadInt64(typed); n != 12 {
		t.Errorf("Typing callback fired %d times", n)
	}
	if state := w.State(); state != gotype.StateIdle {
		t.Errorf("Unexpected state after playback: %d", state)
	}
	if text := el.Text(); text != "abc\n" {
		t.Errorf("Unexpected text: '%s'", text)
	}
}

func TestRepeatInfinite(t *testing.T) {
	el := surface.NewElement("div")
	onCharTyped, typed := signal()
	o := instant(false)
	o.Repeat = RepeatInfinite
	o.OnCharTyped = onCharTyped
	w, err := New(el, o)
	if err != nil {
		t.Fatalf("New failed: %+v", err)
	}
	w.Type("ab")
	if err := w.Play(); err != nil {
		t.Fatalf("Play failed: %+v", err)
	}
	// three passes are enough to show it keeps going
	for i := 0; i < 6; i++ {
		await(t, typed, "a typed character")
	}
	w.Reset()
}

func TestBuilderAfterPlay(t *testing.T) {
	el := surface.NewElement("div")
	w := play(t, el, instant(false), func(w *Writer) { w.Type("test") })
	w.Type("more").NewLine()
	if err := w.Play(); err != nil {
		t.Errorf("Second play failed: %+v", err)
	}
	time.Sleep(50 * time.Millisecond)
	if text := el.Text(); text != "test" {
		t.Errorf("Unexpected text: '%s'", text)
	}
}

func TestReset(t *testing.T) {
	el := surface.NewText("p", "  Former Text ")
	onReset, resets := counter()
	o := instant(true)
	o.OnReset = onReset
	w := play(t, el, o, func(w *Writer) { w.Type(" and more") })
	if text := el.Text(); text != "Former Text and more" {
		t.Errorf("Unexpected text before reset: '%s'", text)
	}
	w.Reset()
	w.Reset()
	if text := el.Text(); text != "Former Text" {
		t.Errorf("Unexpected text after reset: '%s'", text)
	}
	if n := atomic.LoadInt64(resets); n != 1 {
		t.Errorf("Reset callback fired %d times", n)
	}
	if err := w.Play(); !errors.Is(err, ErrDetached) {
		t.Errorf("Expected play after reset to fail, got %+v", err)
	}
}

func TestResetWhileDeleting(t *testing.T) {
	el := surface.NewText("div", "four")
	onReset, reset := signal()
	o := instant(true)
	o.DeletingSpeed = 10 * time.Millisecond
	o.OnReset = onReset
	var w *Writer
	o.OnCharDeleted = func() { w.Reset() }
	w, err := New(el, o)
	if err != nil {
		t.Fatalf("New failed: %+v", err)
	}
	w.Type("test").NewLine(2).Type("hello").Delete(3)
	if err := w.Play(); err != nil {
		t.Fatalf("Play failed: %+v", err)
	}
	await(t, reset, "reset")
	time.Sleep(50 * time.Millisecond)
	if text := el.Text(); text != "four" {
		t.Errorf("Unexpected text after reset: '%s'", text)
	}
}

func TestRestart(t *testing.T) {
	el := surface.NewElement("div")
	onCharTyped, typed := counter()
	onRestart, restarts := counter()
	onEnd, ended := signal()
	o := instant(true)
	o.OnCharTyped = onCharTyped
	o.OnRestart = onRestart
	o.OnEnd = onEnd
	w, err := New(el, o)
	if err != nil {
		t.Fatalf("New failed: %+v", err)
	}
	w.Type("test")
	if err := w.Play(); err != nil {
		t.Fatalf("Play failed: %+v", err)
	}
	await(t, ended, "the first pass")
	if err := w.Restart(); err != nil {
		t.Fatalf("Restart failed: %+v", err)
	}
	await(t, ended, "the second pass")
	if n := atomic.LoadInt64(typed); n != 8 {
		t.Errorf("Typing callback fired %d times", n)
	}
	if n := atomic.LoadInt64(restarts); n != 1 {
		t.Errorf("Restart callback fired %d times", n)
	}
	if text := el.Text(); text != "test" {
		t.Errorf("Unexpected text after restart: '%s'", text)
	}
}

func TestRestartMidPass(t *testing.T) {
	el := surface.NewElement("div")
	onEnd, ended := signal()
	o := instant(false)
	o.TypingSpeed = 5 * time.Millisecond
	o.OnEnd = onEnd
	w, err := New(el, o)
	if err != nil {
		t.Fatalf("New failed: %+v", err)
	}
	w.Type("abcdefgh")
	if err := w.Play(); err != nil {
		t.Fatalf("Play failed: %+v", err)
	}
	time.Sleep(12 * time.Millisecond)
	if err := w.Restart(); err != nil {
		t.Fatalf("Restart failed: %+v", err)
	}
	await(t, ended, "the restarted pass")
	quiet(t, ended, "end of the interrupted pass")
	if text := el.Text(); text != "abcdefgh" {
		t.Errorf("Unexpected text after restart: '%s'", text)
	}
}

type gate chan struct{}

func (g gate) WaitVisible(ctx context.Context, s gotype.Surface, spec string) error {
	select {
	case <-g:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestWaitUntilVisible(t *testing.T) {
	el := surface.NewElement("div")
	g := make(gate)
	onEnd, ended := signal()
	o := instant(false)
	o.WaitUntilVisible = true
	o.Visibility = g
	o.OnEnd = onEnd
	w, err := New(el, o)
	if err != nil {
		t.Fatalf("New failed: %+v", err)
	}
	w.Type("seen")
	if err := w.Play(); err != nil {
		t.Fatalf("Play failed: %+v", err)
	}
	quiet(t, ended, "end before the surface was visible")
	if n := el.Len(); n != 0 {
		t.Errorf("Typed %d units before the surface was visible", n)
	}
	close(g)
	await(t, ended, "the end of playback")
	if text := el.Text(); text != "seen" {
		t.Errorf("Unexpected text: '%s'", text)
	}
}

func TestResetWhileWaitingForVisibility(t *testing.T) {
	el := surface.NewElement("div")
	onStart, started := signal()
	o := instant(false)
	o.WaitUntilVisible = true
	o.Visibility = make(gate)
	o.OnStart = onStart
	w, err := New(el, o)
	if err != nil {
		t.Fatalf("New failed: %+v", err)
	}
	w.Type("never")
	if err := w.Play(); err != nil {
		t.Fatalf("Play failed: %+v", err)
	}
	w.Reset()
	quiet(t, started, "start after reset")
}

func TestSharedCaret(t *testing.T) {
	doc := surface.NewDocument()
	el := doc.Append(surface.NewElement("div"))
	for i := 0; i < 2; i++ {
		if _, err := New(el, instant(true)); err != nil {
			t.Fatalf("New failed: %+v", err)
		}
	}
	if n := el.Len(); n != 1 {
		t.Errorf("Expected a single caret, found %d units", n)
	}
	if style, ok := doc.Style(gotype.CaretStyleID); !ok || !style.Blink {
		t.Errorf("Caret style was not registered: %+v", style)
	}
}

func TestInvalidSurface(t *testing.T) {
	for _, tag := range []string{"input", "TEXTAREA"} {
		if _, err := New(surface.NewElement(tag), nil); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Expected an invalid argument error for %s, got %+v", tag, err)
		}
	}
	if _, err := New(nil, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected an invalid argument error for a nil surface, got %+v", err)
	}
}

func TestNewFromSelector(t *testing.T) {
	doc := surface.NewDocument()
	el := surface.NewElement("span")
	el.ID = "headline"
	doc.Append(el)
	if _, err := NewFromSelector(doc, "#missing", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected a not found error, got %+v", err)
	}
	if _, err := NewFromSelector(doc, "#headline", instant(true)); err != nil {
		t.Errorf("Selector lookup failed: %+v", err)
	}
	if n := el.Len(); n != 1 {
		t.Errorf("Writer was not bound to the selected element")
	}
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(w *Writer)
	}{
		{"negative count", func(w *Writer) { w.Delete(-1) }},
		{"unknown mode", func(w *Writer) { w.Delete(1, Mode("line")) }},
		{"negative speed", func(w *Writer) { w.DeleteAll(true, Speed(-time.Second)) }},
		{"negative lines", func(w *Writer) { w.NewLine(-2) }},
		{"negative pause", func(w *Writer) { w.Pause(-time.Millisecond) }},
	}
	for _, tt := range tests {
		w, err := New(surface.NewElement("div"), instant(false))
		if err != nil {
			t.Fatalf("New failed: %+v", err)
		}
		tt.build(w)
		if err := w.Err(); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: expected an invalid argument error, got %+v", tt.name, err)
		}
		if err := w.Play(); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("%s: expected play to fail, got %+v", tt.name, err)
		}
	}
}

func TestModeError(t *testing.T) {
	w, _ := New(surface.NewElement("div"), instant(false))
	w.Delete(1, Mode("sentence"))
	if err := w.Err(); err == nil || !strings.Contains(err.Error(), "'sentence'") {
		t.Errorf("Unexpected error: %+v", err)
	}
}

func TestBuilderErrorAfterPlay(t *testing.T) {
	el := surface.NewElement("div")
	onEnd, ended := signal()
	o := instant(false)
	o.OnEnd = onEnd
	w, err := New(el, o)
	if err != nil {
		t.Fatalf("New failed: %+v", err)
	}
	w.Type("test")
	if err := w.Play(); err != nil {
		t.Fatalf("Play failed: %+v", err)
	}
	await(t, ended, "the first pass")
	w.Delete(-1)
	if err := w.Err(); err != nil {
		t.Errorf("Builder call during playback was not ignored: %+v", err)
	}
	if err := w.Restart(); err != nil {
		t.Fatalf("Restart failed: %+v", err)
	}
	await(t, ended, "the restarted pass")
	if text := el.Text(); text != "test" {
		t.Errorf("Unexpected text after restart: '%s'", text)
	}
}

func TestRestartIgnoresBuilderCallsFromCallback(t *testing.T) {
	el := surface.NewElement("div")
	onEnd, ended := signal()
	o := instant(false)
	o.OnEnd = onEnd
	var w *Writer
	o.OnRestart = func() { w.Type(" extra") }
	w, err := New(el, o)
	if err != nil {
		t.Fatalf("New failed: %+v", err)
	}
	w.Type("test")
	if err := w.Play(); err != nil {
		t.Fatalf("Play failed: %+v", err)
	}
	await(t, ended, "the first pass")
	if err := w.Restart(); err != nil {
		t.Fatalf("Restart failed: %+v", err)
	}
	await(t, ended, "the restarted pass")
	if text := el.Text(); text != "test" {
		t.Errorf("Unexpected text after restart: '%s'", text)
	}
}

func TestRepeatedPassIsPlaying(t *testing.T) {
	el := surface.NewElement("div")
	onEnd, ended := signal()
	var states []int
	var w *Writer
	o := instant(false)
	o.Repeat = 1
	o.OnEnd = onEnd
	o.OnCharTyped = func() { states = append(states, w.State()) }
	w, err := New(el, o)
	if err != nil {
		t.Fatalf("New failed: %+v", err)
	}
	w.Type("ab")
	if err := w.Play(); err != nil {
		t.Fatalf("Play failed: %+v", err)
	}
	await(t, ended, "the end of playback")
	expected := []int{gotype.StatePlaying, gotype.StatePlaying, gotype.StatePlaying, gotype.StatePlaying}
	if diff := cmp.Diff(expected, states); diff != "" {
		t.Errorf("Unexpected states while typing (-want +got):\n%s", diff)
	}
	if state := w.State(); state != gotype.StateIdle {
		t.Errorf("Unexpected state after playback: %d", state)
	}
}

func TestResetLeavesOtherWriters(t *testing.T) {
	doc := surface.NewDocument()
	el := doc.Append(surface.NewElement("div"))
	idle, err := New(el, instant(true))
	if err != nil {
		t.Fatalf("New failed: %+v", err)
	}
	play(t, el, instant(true), func(w *Writer) { w.Type("xy") })
	idle.Reset()
	if text := el.Text(); text != "xy" {
		t.Errorf("Unexpected text after reset: '%s'", text)
	}
	if n := el.Len(); n != 3 {
		t.Errorf("Unexpected unit count after reset: %d", n)
	}
	if u := el.At(el.Len() - 1); u.Kind != gotype.KindCaret {
		t.Errorf("Shared caret was removed: %+v", u)
	}
}
