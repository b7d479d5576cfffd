// Copyright 2026 Wisteria Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package builtin

import (
	"bufio"
	"fmt"
	"os"

	"github.com/wisteria-scheme/wisteria/value"
)

// IO is the port procedure set of spec.md §4.9: display/write/newline
// and the string-port pair open-output-string/get-output-string, plus
// minimal character input over a port. Ports with a nil Buf are the
// host's stdout/stdin stream, named accordingly; string ports hold
// their bytes directly in Buf so get-output-string needs no I/O.
type IO struct{}

func (IO) Name() string { return "io" }

var (
	stdoutPort = &value.Port{Name: "stdout", IsOutput: true}
	stdinPort  = &value.Port{Name: "stdin", IsInput: true}
	stdinRead  = bufio.NewReader(os.Stdin)
)

func asPort(op string, v value.Value) (*value.Port, error) {
	p, ok := v.(*value.Port)
	if !ok {
		return nil, typeErr(op, "port", v)
	}
	return p, nil
}

func outputPort(args []value.Value, i int) (*value.Port, error) {
	if len(args) > i {
		return asPort("write", args[i])
	}
	return stdoutPort, nil
}

func writePortString(p *value.Port, s string) {
	if p.Buf != nil {
		*p.Buf = append(*p.Buf, s...)
		return
	}
	fmt.Fprint(os.Stdout, s)
}

func (IO) Builtins() map[string]*value.BuiltinProc {
	return map[string]*value.BuiltinProc{
		"display": proc("display", value.Range(1, 2), func(args []value.Value) (value.Value, error) {
			p, err := outputPort(args, 1)
			if err != nil {
				return nil, err
			}
			writePortString(p, value.Display(args[0]))
			return value.Undefined{}, nil
		}),
		"write": proc("write", value.Range(1, 2), func(args []value.Value) (value.Value, error) {
			p, err := outputPort(args, 1)
			if err != nil {
				return nil, err
			}
			writePortString(p, value.Write(args[0]))
			return value.Undefined{}, nil
		}),
		"newline": proc("newline", value.Range(0, 1), func(args []value.Value) (value.Value, error) {
			p, err := outputPort(args, 0)
			if err != nil {
				return nil, err
			}
			writePortString(p, "\n")
			return value.Undefined{}, nil
		}),
		"write-string": proc("write-string", value.Range(1, 2), func(args []value.Value) (value.Value, error) {
			s, err := asString("write-string", args[0])
			if err != nil {
				return nil, err
			}
			p, err := outputPort(args, 1)
			if err != nil {
				return nil, err
			}
			writePortString(p, s.String())
			return value.Undefined{}, nil
		}),
		"write-char": proc("write-char", value.Range(1, 2), func(args []value.Value) (value.Value, error) {
			c, err := asChar("write-char", args[0])
			if err != nil {
				return nil, err
			}
			p, err := outputPort(args, 1)
			if err != nil {
				return nil, err
			}
			writePortString(p, string(rune(c)))
			return value.Undefined{}, nil
		}),

		"current-output-port": proc("current-output-port", value.Exact(0), func(args []value.Value) (value.Value, error) {
			return stdoutPort, nil
		}),
		"current-input-port": proc("current-input-port", value.Exact(0), func(args []value.Value) (value.Value, error) {
			return stdinPort, nil
		}),
		"open-output-string": proc("open-output-string", value.Exact(0), func(args []value.Value) (value.Value, error) {
			buf := make([]byte, 0, 16)
			return &value.Port{Name: "string", IsOutput: true, Buf: &buf}, nil
		}),
		"get-output-string": proc("get-output-string", value.Exact(1), func(args []value.Value) (value.Value, error) {
			p, err := asPort("get-output-string", args[0])
			if err != nil {
				return nil, err
			}
			if p.Buf == nil {
				return nil, typeErr("get-output-string", "string output port", args[0])
			}
			return value.NewString(string(*p.Buf)), nil
		}),
		"open-input-string": proc("open-input-string", value.Exact(1), func(args []value.Value) (value.Value, error) {
			s, err := asString("open-input-string", args[0])
			if err != nil {
				return nil, err
			}
			buf := []byte(s.String())
			return &value.Port{Name: "string", IsInput: true, Buf: &buf}, nil
		}),
		"read-char": proc("read-char", value.Range(0, 1), func(args []value.Value) (value.Value, error) {
			p, err := inputPort(args, 0)
			if err != nil {
				return nil, err
			}
			return readCharFrom(p, true)
		}),
		"peek-char": proc("peek-char", value.Range(0, 1), func(args []value.Value) (value.Value, error) {
			p, err := inputPort(args, 0)
			if err != nil {
				return nil, err
			}
			return readCharFrom(p, false)
		}),
		"close-port": proc("close-port", value.Exact(1), func(args []value.Value) (value.Value, error) {
			p, err := asPort("close-port", args[0])
			if err != nil {
				return nil, err
			}
			p.Closed = true
			return value.Undefined{}, nil
		}),
	}
}

func inputPort(args []value.Value, i int) (*value.Port, error) {
	if len(args) > i {
		return asPort("read", args[i])
	}
	return stdinPort, nil
}

func readCharFrom(p *value.Port, advance bool) (value.Value, error) {
	if p.Buf != nil {
		if p.Pos >= len(*p.Buf) {
			return value.EofObject{}, nil
		}
		r := rune((*p.Buf)[p.Pos])
		if advance {
			p.Pos++
		}
		return value.Character(r), nil
	}
	if advance {
		r, _, err := stdinRead.ReadRune()
		if err != nil {
			return value.EofObject{}, nil
		}
		return value.Character(r), nil
	}
	r, _, err := stdinRead.ReadRune()
	if err != nil {
		return value.EofObject{}, nil
	}
	stdinRead.UnreadRune()
	return value.Character(r), nil
}
