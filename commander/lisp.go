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
package commander

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/steelseries/golisp"
	gotype "github.com/timburks/gotype/types"
	"github.com/timburks/gotype/writer"
)

// A Program is the timeline and options described by a script.
type Program struct {
	Options map[string]interface{}
	steps   []func(w *writer.Writer)
}

func NewProgram() *Program {
	return &Program{Options: make(map[string]interface{})}
}

// Len returns the number of recorded steps.
func (p *Program) Len() int {
	return len(p.steps)
}

// Build creates a writer on s with the program's options and timeline.
// configure, if not nil, can adjust the options before the writer is created.
func (p *Program) Build(s gotype.Surface, logger logrus.FieldLogger, configure func(o *writer.Options)) (*writer.Writer, error) {
	o := writer.OptionsFromMap(p.Options, logger)
	if configure != nil {
		configure(&o)
	}
	w, err := writer.New(s, &o)
	if err != nil {
		return nil, err
	}
	for _, step := range p.steps {
		step(w)
	}
	return w, w.Err()
}

var (
	evalMu  sync.Mutex
	current *Program // the program being built by the script being evaluated
)

func init() {
	golisp.MakePrimitiveFunction("option", "2", OptionImpl)
	golisp.MakePrimitiveFunction("type", "1", TypeImpl)
	golisp.MakePrimitiveFunction("delete", "*", DeleteImpl)
	golisp.MakePrimitiveFunction("delete-all", "*", DeleteAllImpl)
	golisp.MakePrimitiveFunction("new-line", "*", NewLineImpl)
	golisp.MakePrimitiveFunction("pause", "*", PauseImpl)
}

// Eval runs a script and returns the program it describes.
func Eval(source string) (*Program, error) {
	evalMu.Lock()
	defer evalMu.Unlock()
	p := NewProgram()
	current = p
	defer func() { current = nil }()
	if _, err := golisp.ParseAndEval("(begin " + source + "\n)"); err != nil {
		return nil, err
	}
	return p, nil
}

// EvalFile runs the script in a file.
func EvalFile(filename string) (*Program, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Eval(string(b))
}

func record(step func(w *writer.Writer)) (*golisp.Data, error) {
	if current == nil {
		return nil, errors.New("no program is being evaluated")
	}
	current.steps = append(current.steps, step)
	return nil, nil
}

// arguments returns the elements of a primitive's argument list.
func arguments(args *golisp.Data) []*golisp.Data {
	values := make([]*golisp.Data, 0)
	for a := args; !golisp.NilP(a); a = golisp.Cdr(a) {
		values = append(values, golisp.Car(a))
	}
	return values
}

func value(d *golisp.Data) (interface{}, error) {
	switch {
	case golisp.IntegerP(d):
		return golisp.IntegerValue(d), nil
	case golisp.FloatP(d):
		return float64(golisp.FloatValue(d)), nil
	case golisp.StringP(d):
		return golisp.StringValue(d), nil
	case golisp.BooleanP(d):
		return golisp.BooleanValue(d), nil
	}
	return nil, fmt.Errorf("unsupported value %s", golisp.String(d))
}

func integer(name string, d *golisp.Data) (int, error) {
	switch {
	case golisp.IntegerP(d):
		return int(golisp.IntegerValue(d)), nil
	case golisp.FloatP(d):
		return int(golisp.FloatValue(d)), nil
	}
	return 0, fmt.Errorf("%s requires a number argument", name)
}

func millis(name string, d *golisp.Data) (time.Duration, error) {
	switch {
	case golisp.IntegerP(d):
		return time.Duration(golisp.IntegerValue(d)) * time.Millisecond, nil
	case golisp.FloatP(d):
		return time.Duration(float64(golisp.FloatValue(d)) * float64(time.Millisecond)), nil
	}
	return 0, fmt.Errorf("%s requires a number of milliseconds", name)
}

func boolean(name string, d *golisp.Data) (bool, error) {
	if !golisp.BooleanP(d) {
		return false, fmt.Errorf("%s requires a boolean argument", name)
	}
	return golisp.BooleanValue(d), nil
}

// (option name value)
func OptionImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	name := golisp.Car(args)
	if !golisp.StringP(name) {
		return nil, errors.New("option requires a string name")
	}
	v, err := value(golisp.Cadr(args))
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, errors.New("no program is being evaluated")
	}
	current.Options[golisp.StringValue(name)] = v
	return nil, nil
}

// (type text)
func TypeImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	text := golisp.Car(args)
	if !golisp.StringP(text) {
		return nil, errors.New("type requires a string argument")
	}
	s := golisp.StringValue(text)
	return record(func(w *writer.Writer) { w.Type(s) })
}

// (delete [count [mode [speed [delay]]]])
func DeleteImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	values := arguments(args)
	if len(values) > 4 {
		return nil, errors.New("delete takes at most 4 arguments")
	}
	count := 1
	var opts []writer.DeleteOption
	var err error
	if len(values) > 0 {
		if count, err = integer("delete", values[0]); err != nil {
			return nil, err
		}
	}
	if len(values) > 1 {
		if !golisp.StringP(values[1]) {
			return nil, errors.New("delete requires a string mode")
		}
		opts = append(opts, writer.Mode(golisp.StringValue(values[1])))
	}
	if len(values) > 2 {
		speed, err := millis("delete", values[2])
		if err != nil {
			return nil, err
		}
		opts = append(opts, writer.Speed(speed))
	}
	if len(values) > 3 {
		delay, err := millis("delete", values[3])
		if err != nil {
			return nil, err
		}
		opts = append(opts, writer.Delay(delay))
	}
	return record(func(w *writer.Writer) { w.Delete(count, opts...) })
}

// (delete-all [ease [speed [delay]]])
func DeleteAllImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	values := arguments(args)
	if len(values) > 3 {
		return nil, errors.New("delete-all takes at most 3 arguments")
	}
	ease := false
	var opts []writer.DeleteOption
	var err error
	if len(values) > 0 {
		if ease, err = boolean("delete-all", values[0]); err != nil {
			return nil, err
		}
	}
	if len(values) > 1 {
		speed, err := millis("delete-all", values[1])
		if err != nil {
			return nil, err
		}
		opts = append(opts, writer.Speed(speed))
	}
	if len(values) > 2 {
		delay, err := millis("delete-all", values[2])
		if err != nil {
			return nil, err
		}
		opts = append(opts, writer.Delay(delay))
	}
	return record(func(w *writer.Writer) { w.DeleteAll(ease, opts...) })
}

// (new-line [count])
func NewLineImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	values := arguments(args)
	switch len(values) {
	case 0:
		return record(func(w *writer.Writer) { w.NewLine() })
	case 1:
		n, err := integer("new-line", values[0])
		if err != nil {
			return nil, err
		}
		return record(func(w *writer.Writer) { w.NewLine(n) })
	}
	return nil, errors.New("new-line takes at most 1 argument")
}

// (pause [ms])
func PauseImpl(args *golisp.Data, env *golisp.SymbolTableFrame) (*golisp.Data, error) {
	values := arguments(args)
	switch len(values) {
	case 0:
		return record(func(w *writer.Writer) { w.Pause() })
	case 1:
		d, err := millis("pause", values[0])
		if err != nil {
			return nil, err
		}
		return record(func(w *writer.Writer) { w.Pause(d) })
	}
	return nil, errors.New("pause takes at most 1 argument")
}
