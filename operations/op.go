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
	"time"
)

// timing holds optional per-operation overrides of the player settings.
type timing struct {
	Speed    time.Duration
	Delay    time.Duration
	HasSpeed bool
	HasDelay bool
}

func (t *timing) speed(fallback time.Duration) time.Duration {
	if t.HasSpeed {
		return t.Speed
	}
	return fallback
}

func (t *timing) delay(fallback time.Duration) time.Duration {
	if t.HasDelay {
		return t.Delay
	}
	return fallback
}
