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

	gotype "github.com/timburks/gotype/types"
)

// Type inserts one text unit per code point of Text.
type Type struct {
	Text string
}

func (op *Type) Perform(ctx context.Context, p gotype.Player) error {
	p.SetTyping(ctx, true)
	defer p.SetTyping(ctx, false)

	speed := p.Settings().TypingSpeed
	for _, c := range op.Text {
		if err := p.Put(ctx, gotype.Unit{Kind: gotype.KindText, Text: string(c)}); err != nil {
			return err
		}
		if err := p.Sleep(ctx, speed); err != nil {
			return err
		}
	}
	return nil
}

// NewLine inserts Count line breaks.
type NewLine struct {
	Count int
}

func (op *NewLine) Perform(ctx context.Context, p gotype.Player) error {
	p.SetTyping(ctx, true)
	defer p.SetTyping(ctx, false)

	speed := p.Settings().TypingSpeed
	for i := 0; i < op.Count; i++ {
		if err := p.Put(ctx, gotype.Unit{Kind: gotype.KindBreak}); err != nil {
			return err
		}
		if err := p.Sleep(ctx, speed); err != nil {
			return err
		}
	}
	return nil
}
