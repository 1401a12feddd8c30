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

// Package writer implements the typewriter animation of gotype.
// A Writer binds to a surface, records typing, deletion, line breaks and
// pauses through chained builder calls, and plays them back in order in its
// own goroutine. Playback can repeat, be restarted from the start, or be
// reset, which puts back the text the surface held before the writer was
// created. Each playback generation has its own context; restarting or
// resetting cancels it so that an abandoned pass never touches the surface
// again.
package writer
