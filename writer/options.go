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
	"time"

	"github.com/sirupsen/logrus"
	gotype "github.com/timburks/gotype/types"
	"github.com/timburks/gotype/visible"
)

// RepeatInfinite repeats the timeline until the writer is restarted or reset.
const RepeatInfinite = -1

// Options configure a Writer. Start from DefaultOptions.
type Options struct {
	StartDelay    time.Duration // before the first action
	TypingSpeed   time.Duration // between typed units and breaks
	DeletingSpeed time.Duration // between deleted units
	DeleteDelay   time.Duration // before a deletion begins
	Pause         time.Duration // default for Pause()

	Repeat      int  // extra passes, or RepeatInfinite
	RepeatEase  bool // clear gradually between passes
	RepeatSpeed time.Duration
	RepeatDelay time.Duration

	Caret      bool
	CaretColor string
	CaretWidth int

	WaitUntilVisible bool
	VisibleOptions   string
	Visibility       gotype.Visibility

	OnStart       func()
	OnEnd         func()
	OnCharTyped   func()
	OnCharDeleted func()
	OnRestart     func()
	OnReset       func()

	Logger logrus.FieldLogger
}

func DefaultOptions() Options {
	return Options{
		StartDelay:     0,
		TypingSpeed:    100 * time.Millisecond,
		DeletingSpeed:  40 * time.Millisecond,
		DeleteDelay:    300 * time.Millisecond,
		Pause:          time.Second,
		Repeat:         0,
		RepeatEase:     false,
		RepeatSpeed:    0,
		RepeatDelay:    750 * time.Millisecond,
		Caret:          true,
		CaretColor:     "currentcolor",
		CaretWidth:     1,
		VisibleOptions: visible.DefaultSpec,
		Logger:         logrus.StandardLogger(),
	}
}

func (o *Options) settings() gotype.Settings {
	return gotype.Settings{
		TypingSpeed:   o.TypingSpeed,
		DeletingSpeed: o.DeletingSpeed,
		DeleteDelay:   o.DeleteDelay,
		Pause:         o.Pause,
	}
}

// normalize clamps negative values to zero and replaces invalid values with
// their defaults, logging a warning for each.
func (o *Options) normalize() {
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	defaults := DefaultOptions()
	durations := []struct {
		name  string
		value *time.Duration
	}{
		{"startDelay", &o.StartDelay},
		{"typingSpeed", &o.TypingSpeed},
		{"deletingSpeed", &o.DeletingSpeed},
		{"deleteDelay", &o.DeleteDelay},
		{"pause", &o.Pause},
		{"repeatSpeed", &o.RepeatSpeed},
		{"repeatDelay", &o.RepeatDelay},
	}
	for _, d := range durations {
		if *d.value < 0 {
			o.Logger.WithField("option", d.name).Warnf("%s expects a positive number, got %v", d.name, *d.value)
			*d.value = 0
		}
	}
	if o.Repeat < 0 && o.Repeat != RepeatInfinite {
		o.Logger.WithField("option", "repeat").Warnf("repeat expects a positive number or infinite, got %d", o.Repeat)
		o.Repeat = 0
	}
	if o.CaretWidth < 0 {
		o.Logger.WithField("option", "caretWidth").Warnf("caretWidth expects a positive number, got %d", o.CaretWidth)
		o.CaretWidth = 0
	}
	if o.CaretColor == "" {
		o.CaretColor = defaults.CaretColor
	}
	if _, err := visible.ParseSpec(o.VisibleOptions); err != nil {
		o.Logger.WithField("option", "visibleOptions").Warn(err)
		o.VisibleOptions = defaults.VisibleOptions
	}
}

// OptionsFromMap builds options from loosely typed values such as those read
// from a script. Numbers are milliseconds. Values of the wrong type fall back
// to their defaults and unknown names are ignored, with a warning for each.
func OptionsFromMap(raw map[string]interface{}, logger logrus.FieldLogger) Options {
	o := DefaultOptions()
	if logger != nil {
		o.Logger = logger
	}
	for name, value := range raw {
		log := o.Logger.WithField("option", name)
		switch name {
		case "startDelay":
			o.StartDelay = durationOption(log, value, o.StartDelay)
		case "typingSpeed":
			o.TypingSpeed = durationOption(log, value, o.TypingSpeed)
		case "deletingSpeed":
			o.DeletingSpeed = durationOption(log, value, o.DeletingSpeed)
		case "deleteDelay":
			o.DeleteDelay = durationOption(log, value, o.DeleteDelay)
		case "pause":
			o.Pause = durationOption(log, value, o.Pause)
		case "repeatSpeed":
			o.RepeatSpeed = durationOption(log, value, o.RepeatSpeed)
		case "repeatDelay":
			o.RepeatDelay = durationOption(log, value, o.RepeatDelay)
		case "repeat":
			if s, ok := value.(string); ok && s == "infinite" {
				o.Repeat = RepeatInfinite
			} else if n, ok := number(value); ok {
				o.Repeat = int(clamp(log, n))
			} else {
				log.Warnf("%v is not of type 'infinite' or 'number'", value)
			}
		case "repeatEase":
			o.RepeatEase = boolOption(log, value, o.RepeatEase)
		case "caret":
			o.Caret = boolOption(log, value, o.Caret)
		case "waitUntilVisible":
			o.WaitUntilVisible = boolOption(log, value, o.WaitUntilVisible)
		case "caretColor":
			o.CaretColor = stringOption(log, value, o.CaretColor)
		case "visibleOptions":
			o.VisibleOptions = stringOption(log, value, o.VisibleOptions)
		case "caretWidth":
			if n, ok := number(value); ok {
				o.CaretWidth = int(clamp(log, n))
			} else {
				log.Warnf("%v is not of type 'number'", value)
			}
		case "onStart":
			o.OnStart = callbackOption(log, value)
		case "onEnd":
			o.OnEnd = callbackOption(log, value)
		case "onCharTyped":
			o.OnCharTyped = callbackOption(log, value)
		case "onCharDeleted":
			o.OnCharDeleted = callbackOption(log, value)
		case "onRestart":
			o.OnRestart = callbackOption(log, value)
		case "onReset":
			o.OnReset = callbackOption(log, value)
		default:
			log.Warnf("unknown option %s", name)
		}
	}
	return o
}

func number(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case time.Duration:
		return float64(n) / float64(time.Millisecond), true
	}
	return 0, false
}

func clamp(log logrus.FieldLogger, n float64) float64 {
	if n < 0 {
		log.Warnf("expects a positive number, got %v", n)
		return 0
	}
	return n
}

func durationOption(log logrus.FieldLogger, value interface{}, fallback time.Duration) time.Duration {
	n, ok := number(value)
	if !ok {
		log.Warnf("%v is not of type 'number'", value)
		return fallback
	}
	return time.Duration(clamp(log, n) * float64(time.Millisecond))
}

func boolOption(log logrus.FieldLogger, value interface{}, fallback bool) bool {
	b, ok := value.(bool)
	if !ok {
		log.Warnf("%v is not of type 'boolean'", value)
		return fallback
	}
	return b
}

func stringOption(log logrus.FieldLogger, value interface{}, fallback string) string {
	s, ok := value.(string)
	if !ok {
		log.Warnf("%v is not of type 'string'", value)
		return fallback
	}
	return s
}

func callbackOption(log logrus.FieldLogger, value interface{}) func() {
	f, ok := value.(func())
	if !ok {
		log.Warnf("%v is not of type 'function'", value)
		return nil
	}
	return f
}
