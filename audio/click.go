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
package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"
)

const (
	sampleRate     = beep.SampleRate(44100)
	keystrokeTime  = 15 * time.Millisecond
	backspaceTime  = 25 * time.Millisecond
	backspaceTone  = 330.0
	defaultVolume  = -1.0
	speakerLatency = time.Second / 10
)

// A Clicker plays typewriter sounds for typed and deleted characters.
// It is silent until Init succeeds.
type Clicker struct {
	mu     sync.Mutex
	ready  bool
	volume float64 // in halvings of amplitude, 0 is unchanged
	log    logrus.FieldLogger
}

func NewClicker(logger logrus.FieldLogger) *Clicker {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Clicker{volume: defaultVolume, log: logger}
}

// Init opens the speaker. Failure leaves the clicker silent.
func (c *Clicker) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := speaker.Init(sampleRate, sampleRate.N(speakerLatency)); err != nil {
		c.log.WithError(err).Warn("audio initialization failed")
		return err
	}
	c.ready = true
	return nil
}

func (c *Clicker) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Typed plays a keystroke.
func (c *Clicker) Typed() {
	c.play(Keystroke(sampleRate))
}

// Deleted plays a backspace.
func (c *Clicker) Deleted() {
	c.play(Backspace(sampleRate))
}

func (c *Clicker) play(s beep.Streamer) {
	c.mu.Lock()
	ready, volume := c.ready, c.volume
	c.mu.Unlock()
	if !ready || s == nil {
		return
	}
	speaker.Play(&effects.Volume{Streamer: s, Base: 2, Volume: volume})
}

// Keystroke is a short burst of decaying noise.
func Keystroke(rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: noise{}, total: rate.N(keystrokeTime)}
}

// Backspace is a short decaying tone.
func Backspace(rate beep.SampleRate) beep.Streamer {
	tone, err := generators.SineTone(rate, backspaceTone)
	if err != nil {
		return nil
	}
	n := rate.N(backspaceTime)
	return &decay{streamer: beep.Take(n, tone), total: n}
}

type noise struct{}

func (noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := rand.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (noise) Err() error { return nil }

// decay fades a stream out exponentially over total samples and then ends it.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	remaining := d.total - d.position
	if remaining <= 0 {
		return 0, false
	}
	if len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := math.Exp(-5 * float64(d.position) / float64(d.total))
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok || n > 0
}

func (d *decay) Err() error { return d.streamer.Err() }
