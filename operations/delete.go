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
package operations

import (
	"context"
	"fmt"
	"strings"
	"time"

	gotype "github.com/timburks/gotype/types"
)

// ParseMode reads a delete mode name. An empty name means characters.
func ParseMode(name string) (int, error) {
	switch strings.ToLower(name) {
	case "", "char", "c":
		return gotype.DeleteChar, nil
	case "word", "w":
		return gotype.DeleteWord, nil
	}
	return 0, fmt.Errorf("mode must be either 'word', 'w', 'char' or 'c', got '%s'", name)
}

// Delete removes Count trailing characters or words.
type Delete struct {
	timing
	Count int
	Mode  int
}

func NewDelete(count int, mode int) *Delete {
	return &Delete{Count: count, Mode: mode}
}

// WithSpeed overrides the pause after each removal.
func (op *Delete) WithSpeed(d time.Duration) *Delete {
	op.Speed, op.HasSpeed = d, true
	return op
}

// WithDelay overrides the pause before the first removal.
func (op *Delete) WithDelay(d time.Duration) *Delete {
	op.Delay, op.HasDelay = d, true
	return op
}

func (op *Delete) Perform(ctx context.Context, p gotype.Player) error {
	if p.Count() == 0 {
		return nil
	}
	settings := p.Settings()
	if err := p.Sleep(ctx, op.delay(settings.DeleteDelay)); err != nil {
		return err
	}
	speed := op.speed(settings.DeletingSpeed)
	if op.Mode == gotype.DeleteWord {
		return deleteWords(ctx, p, op.Count, speed)
	}

	count := op.Count
	if available := p.Count(); count > available {
		count = available
	}
	for i := 0; i < count; i++ {
		if err := p.Pop(ctx); err != nil {
			return err
		}
		p.CharDeleted(ctx)
		if err := p.Sleep(ctx, speed); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAll removes every unit except the caret. Without easing the units
// go at once and the deletion is reported once.
type DeleteAll struct {
	timing
	Ease bool
}

func NewDeleteAll(ease bool) *DeleteAll {
	return &DeleteAll{Ease: ease}
}

func (op *DeleteAll) WithSpeed(d time.Duration) *DeleteAll {
	op.Speed, op.HasSpeed = d, true
	return op
}

func (op *DeleteAll) WithDelay(d time.Duration) *DeleteAll {
	op.Delay, op.HasDelay = d, true
	return op
}

func (op *DeleteAll) Perform(ctx context.Context, p gotype.Player) error {
	if p.Count() == 0 {
		return nil
	}
	settings := p.Settings()
	if err := p.Sleep(ctx, op.delay(settings.DeleteDelay)); err != nil {
		return err
	}
	if !op.Ease {
		if err := p.Clear(ctx); err != nil {
			return err
		}
		p.CharDeleted(ctx)
		return nil
	}
	speed := op.speed(settings.DeletingSpeed)
	count := p.Count()
	for i := 0; i < count; i++ {
		if err := p.Pop(ctx); err != nil {
			return err
		}
		p.CharDeleted(ctx)
		if err := p.Sleep(ctx, speed); err != nil {
			return err
		}
	}
	return nil
}
