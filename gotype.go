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
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/timburks/gotype/audio"
	"github.com/timburks/gotype/commander"
	"github.com/timburks/gotype/screen"
	"github.com/timburks/gotype/surface"
	gotype "github.com/timburks/gotype/types"
	"github.com/timburks/gotype/visible"
	"github.com/timburks/gotype/writer"
)

const (
	frameInterval = 30 * time.Millisecond
	blinkInterval = 530 * time.Millisecond
)

var states = map[int]string{
	gotype.StateIdle:      "idle",
	gotype.StatePlaying:   "playing",
	gotype.StateRepeating: "repeating",
}

// then calls g after f.
func then(f, g func()) func() {
	if f == nil {
		return g
	}
	return func() {
		f()
		g()
	}
}

func main() {
	backend := flag.String("backend", "termbox", "terminal backend, termbox or tcell")
	top := flag.Int("top", 1, "document row of the typewriter")
	width := flag.Int("width", 0, "wrapping width, 0 for the screen width")
	sound := flag.Bool("sound", false, "play typewriter sounds")
	once := flag.Bool("once", false, "exit when playback ends")
	eval := flag.String("eval", "", "script to run instead of a file")
	debug := flag.Bool("debug", false, "log debug messages and show events")
	flag.Parse()

	var program *commander.Program
	var err error
	switch {
	case *eval != "":
		program, err = commander.Eval(*eval)
	case flag.NArg() == 1:
		program, err = commander.EvalFile(flag.Arg(0))
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [flags] script.lisp\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	if err != nil {
		logrus.Fatal(err)
	}

	// Open a log file.
	f, err := os.OpenFile(os.Getenv("HOME")+"/.gotypelog", os.O_APPEND|os.O_CREATE|os.O_RDWR, 0666)
	if err != nil {
		logrus.Fatal(err)
	}
	defer f.Close()
	logrus.SetOutput(f)
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Create a screen to manage display.
	d, err := screen.Open(*backend)
	if err != nil {
		logrus.Fatal(err)
	}
	s := screen.NewScreen(d)
	defer s.Close()

	size := s.Size()
	v := visible.NewViewport(size.Rows - 1)
	doc := surface.NewDocument()
	el := doc.Append(surface.NewElement("p"))
	el.ID = "typewriter"
	if *width <= 0 {
		*width = size.Cols
	}
	el.Place(*top, *width)

	var clicker *audio.Clicker
	if *sound {
		clicker = audio.NewClicker(logrus.StandardLogger())
		clicker.Init()
	}

	ended := make(chan struct{}, 1)
	w, err := program.Build(el, logrus.StandardLogger(), func(o *writer.Options) {
		o.Visibility = v
		if clicker != nil {
			o.OnCharTyped = then(o.OnCharTyped, clicker.Typed)
			o.OnCharDeleted = then(o.OnCharDeleted, clicker.Deleted)
		}
		if *once {
			o.OnEnd = then(o.OnEnd, func() {
				select {
				case ended <- struct{}{}:
				default:
				}
			})
		}
	})
	if err != nil {
		s.Close()
		logrus.Fatal(err)
	}

	// The commander converts user inputs into commands for the viewport and writer.
	c := commander.NewCommander(v, w)
	c.SetDebug(*debug)

	if err := w.Play(); err != nil {
		logrus.Error(err)
	}

	events := make(chan *gotype.Event, 16)
	go func() {
		for {
			ev := s.GetNextEvent()
			events <- ev
			if ev.Type == gotype.EventInterrupt {
				return
			}
		}
	}()

	frames := time.NewTicker(frameInterval)
	defer frames.Stop()
	blink := time.NewTicker(blinkInterval)
	defer blink.Stop()

	// Run the main event loop.
	for c.IsRunning() {
		status := states[w.State()]
		if message := c.GetMessage(); message != "" {
			status += " - " + message
		}
		s.Render(doc, v, status)
		select {
		case ev := <-events:
			if err := c.ProcessEvent(ev); err != nil {
				logrus.Error(err)
			}
		case <-frames.C:
		case <-blink.C:
			s.ToggleBlink()
		case <-ended:
			c.Quit()
		}
	}
	w.Reset()
	s.Interrupt()
}
