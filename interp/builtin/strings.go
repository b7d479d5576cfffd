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
	"strings"

	"github.com/wisteria-scheme/wisteria/value"
)

// Strings is the string and character procedure set of spec.md §4.9.
type Strings struct{}

func (Strings) Name() string { return "strings" }

func asString(op string, v value.Value) (*value.String, error) {
	s, ok := v.(*value.String)
	if !ok {
		return nil, typeErr(op, "string", v)
	}
	return s, nil
}

func asChar(op string, v value.Value) (value.Character, error) {
	c, ok := v.(value.Character)
	if !ok {
		return 0, typeErr(op, "char", v)
	}
	return c, nil
}

func asIndex(op string, v value.Value) (int, error) {
	n, err := asNumber(op, v)
	if err != nil {
		return 0, err
	}
	return int(asInt64(n)), nil
}

func (Strings) Builtins() map[string]*value.BuiltinProc {
	return map[string]*value.BuiltinProc{
		"string-length": proc("string-length", value.Exact(1), func(args []value.Value) (value.Value, error) {
			s, err := asString("string-length", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewInt(int64(len(s.Runes))), nil
		}),
		"string-ref": proc("string-ref", value.Exact(2), func(args []value.Value) (value.Value, error) {
			s, err := asString("string-ref", args[0])
			if err != nil {
				return nil, err
			}
			i, err := asIndex("string-ref", args[1])
			if err != nil {
				return nil, err
			}
			if i < 0 || i >= len(s.Runes) {
				return nil, typeErr("string-ref", "in-range index", args[1])
			}
			return value.Character(s.Runes[i]), nil
		}),
		"string-set!": proc("string-set!", value.Exact(3), func(args []value.Value) (value.Value, error) {
			s, err := asString("string-set!", args[0])
			if err != nil {
				return nil, err
			}
			i, err := asIndex("string-set!", args[1])
			if err != nil {
				return nil, err
			}
			c, err := asChar("string-set!", args[2])
			if err != nil {
				return nil, err
			}
			if i < 0 || i >= len(s.Runes) {
				return nil, typeErr("string-set!", "in-range index", args[1])
			}
			s.Runes[i] = rune(c)
			return value.Undefined{}, nil
		}),
		"string": proc("string", value.AtLeast(0), func(args []value.Value) (value.Value, error) {
			runes := make([]rune, len(args))
			for i, a := range args {
				c, err := asChar("string", a)
				if err != nil {
					return nil, err
				}
				runes[i] = rune(c)
			}
			return &value.String{Runes: runes}, nil
		}),
		"make-string": proc("make-string", value.Range(1, 2), func(args []value.Value) (value.Value, error) {
			n, err := asIndex("make-string", args[0])
			if err != nil {
				return nil, err
			}
			fill := rune(' ')
			if len(args) == 2 {
				c, err := asChar("make-string", args[1])
				if err != nil {
					return nil, err
				}
				fill = rune(c)
			}
			runes := make([]rune, n)
			for i := range runes {
				runes[i] = fill
			}
			return &value.String{Runes: runes}, nil
		}),
		"string-append": proc("string-append", value.AtLeast(0), func(args []value.Value) (value.Value, error) {
			var b strings.Builder
			for _, a := range args {
				s, err := asString("string-append", a)
				if err != nil {
					return nil, err
				}
				b.WriteString(s.String())
			}
			return value.NewString(b.String()), nil
		}),
		"substring": proc("substring", value.Range(2, 3), func(args []value.Value) (value.Value, error) {
			s, err := asString("substring", args[0])
			if err != nil {
				return nil, err
			}
			start, err := asIndex("substring", args[1])
			if err != nil {
				return nil, err
			}
			end := len(s.Runes)
			if len(args) == 3 {
				end, err = asIndex("substring", args[2])
				if err != nil {
					return nil, err
				}
			}
			if start < 0 || end > len(s.Runes) || start > end {
				return nil, typeErr("substring", "in-range start/end", args[1])
			}
			out := make([]rune, end-start)
			copy(out, s.Runes[start:end])
			return &value.String{Runes: out}, nil
		}),
		"string-copy": proc("string-copy", value.Range(1, 3), func(args []value.Value) (value.Value, error) {
			s, err := asString("string-copy", args[0])
			if err != nil {
				return nil, err
			}
			start, end := 0, len(s.Runes)
			if len(args) >= 2 {
				start, err = asIndex("string-copy", args[1])
				if err != nil {
					return nil, err
				}
			}
			if len(args) == 3 {
				end, err = asIndex("string-copy", args[2])
				if err != nil {
					return nil, err
				}
			}
			if start < 0 || end > len(s.Runes) || start > end {
				return nil, typeErr("string-copy", "in-range start/end", args[0])
			}
			out := make([]rune, end-start)
			copy(out, s.Runes[start:end])
			return &value.String{Runes: out}, nil
		}),
		"string->list": proc("string->list", value.Exact(1), func(args []value.Value) (value.Value, error) {
			s, err := asString("string->list", args[0])
			if err != nil {
				return nil, err
			}
			out := make([]value.Value, len(s.Runes))
			for i, r := range s.Runes {
				out[i] = value.Character(r)
			}
			return value.FromSlice(out), nil
		}),
		"list->string": proc("list->string", value.Exact(1), func(args []value.Value) (value.Value, error) {
			elems, err := asList("list->string", args[0])
			if err != nil {
				return nil, err
			}
			runes := make([]rune, len(elems))
			for i, e := range elems {
				c, err := asChar("list->string", e)
				if err != nil {
					return nil, err
				}
				runes[i] = rune(c)
			}
			return &value.String{Runes: runes}, nil
		}),
		"string-upcase": proc("string-upcase", value.Exact(1), func(args []value.Value) (value.Value, error) {
			s, err := asString("string-upcase", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewString(strings.ToUpper(s.String())), nil
		}),
		"string-downcase": proc("string-downcase", value.Exact(1), func(args []value.Value) (value.Value, error) {
			s, err := asString("string-downcase", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewString(strings.ToLower(s.String())), nil
		}),
		"string-fill!": proc("string-fill!", value.Exact(2), func(args []value.Value) (value.Value, error) {
			s, err := asString("string-fill!", args[0])
			if err != nil {
				return nil, err
			}
			c, err := asChar("string-fill!", args[1])
			if err != nil {
				return nil, err
			}
			for i := range s.Runes {
				s.Runes[i] = rune(c)
			}
			return value.Undefined{}, nil
		}),

		"string=?":  stringCompareProc("string=?", func(c int) bool { return c == 0 }),
		"string<?":  stringCompareProc("string<?", func(c int) bool { return c < 0 }),
		"string>?":  stringCompareProc("string>?", func(c int) bool { return c > 0 }),
		"string<=?": stringCompareProc("string<=?", func(c int) bool { return c <= 0 }),
		"string>=?": stringCompareProc("string>=?", func(c int) bool { return c >= 0 }),

		"char->integer": proc("char->integer", value.Exact(1), func(args []value.Value) (value.Value, error) {
			c, err := asChar("char->integer", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewInt(int64(c)), nil
		}),
		"integer->char": proc("integer->char", value.Exact(1), func(args []value.Value) (value.Value, error) {
			n, err := asNumber("integer->char", args[0])
			if err != nil {
				return nil, err
			}
			return value.Character(rune(asInt64(n))), nil
		}),
		"char-upcase": proc("char-upcase", value.Exact(1), func(args []value.Value) (value.Value, error) {
			c, err := asChar("char-upcase", args[0])
			if err != nil {
				return nil, err
			}
			return value.Character(strings.ToUpper(string(rune(c)))[0]), nil
		}),
		"char-downcase": proc("char-downcase", value.Exact(1), func(args []value.Value) (value.Value, error) {
			c, err := asChar("char-downcase", args[0])
			if err != nil {
				return nil, err
			}
			return value.Character(strings.ToLower(string(rune(c)))[0]), nil
		}),
		"char-alphabetic?": charPredicate(func(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }),
		"char-numeric?":    charPredicate(func(r rune) bool { return r >= '0' && r <= '9' }),
		"char-whitespace?": charPredicate(func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }),

		"char=?":  charCompareProc("char=?", func(c int) bool { return c == 0 }),
		"char<?":  charCompareProc("char<?", func(c int) bool { return c < 0 }),
		"char>?":  charCompareProc("char>?", func(c int) bool { return c > 0 }),
		"char<=?": charCompareProc("char<=?", func(c int) bool { return c <= 0 }),
		"char>=?": charCompareProc("char>=?", func(c int) bool { return c >= 0 }),
	}
}

func stringCompareProc(name string, ok func(int) bool) *value.BuiltinProc {
	return proc(name, value.AtLeast(1), func(args []value.Value) (value.Value, error) {
		strs := make([]string, len(args))
		for i, a := range args {
			s, err := asString(name, a)
			if err != nil {
				return nil, err
			}
			strs[i] = s.String()
		}
		for i := 1; i < len(strs); i++ {
			if !ok(strings.Compare(strs[i-1], strs[i])) {
				return value.Boolean(false), nil
			}
		}
		return value.Boolean(true), nil
	})
}

func charCompareProc(name string, ok func(int) bool) *value.BuiltinProc {
	return proc(name, value.AtLeast(1), func(args []value.Value) (value.Value, error) {
		chars := make([]rune, len(args))
		for i, a := range args {
			c, err := asChar(name, a)
			if err != nil {
				return nil, err
			}
			chars[i] = rune(c)
		}
		for i := 1; i < len(chars); i++ {
			c := int(chars[i-1]) - int(chars[i])
			if !ok(c) {
				return value.Boolean(false), nil
			}
		}
		return value.Boolean(true), nil
	})
}

func charPredicate(pred func(rune) bool) *value.BuiltinProc {
	return proc("", value.Exact(1), func(args []value.Value) (value.Value, error) {
		c, err := asChar("char-predicate", args[0])
		if err != nil {
			return nil, err
		}
		return value.Boolean(pred(rune(c))), nil
	})
}
