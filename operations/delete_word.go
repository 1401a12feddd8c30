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
	"strings"
	"time"

	gotype "github.com/timburks/gotype/types"
)

// EndsWord reports whether removing last completes the word being deleted.
// Runs of spaces are absorbed into the word before them, and a line break
// is a word of its own.
func EndsWord(last gotype.Unit, prev gotype.Unit, hasPrev bool) bool {
	content := last.Text
	if content == "" {
		// a break
		return true
	}
	if strings.TrimSpace(content) == "" {
		return false
	}
	if !hasPrev {
		// first character on the surface
		return false
	}
	prevContent := prev.Text
	if prevContent == "" {
		return true
	}
	return strings.TrimSpace(prevContent) == ""
}

// deleteWords removes count words from the end of the surface, reporting
// each completed word once.
func deleteWords(ctx context.Context, p gotype.Player, count int, speed time.Duration) error {
	for deleted := 0; deleted < count && p.Count() > 0; deleted++ {
		for p.Count() > 0 {
			last, prev, hasPrev, ok := p.Tail()
			if !ok {
				break
			}
			boundary := EndsWord(last, prev, hasPrev)
			if err := p.Pop(ctx); err != nil {
				return err
			}
			if err := p.Sleep(ctx, speed); err != nil {
				return err
			}
			if boundary {
				break
			}
		}
		p.CharDeleted(ctx)
	}
	return nil
}
