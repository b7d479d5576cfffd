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

package value

import (
	"strconv"
	"strings"
)

// Write renders v the way `write` does: strings quoted, characters as
// #\x. Cyclic pair structure is bounded by a visited set, same as Equal.
func Write(v Value) string {
	var b strings.Builder
	writeRec(&b, v, true, map[*Pair]bool{})
	return b.String()
}

// Display renders v the way `display` does: strings and characters
// printed literally rather than in read syntax.
func Display(v Value) string {
	var b strings.Builder
	writeRec(&b, v, false, map[*Pair]bool{})
	return b.String()
}

func writeRec(b *strings.Builder, v Value, readable bool, seen map[*Pair]bool) {
	switch x := v.(type) {
	case Undefined:
		b.WriteString("#<unspecified>")
	case Nil:
		b.WriteString("()")
	case Boolean:
		if x {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case Character:
		if readable {
			b.WriteString("#\\")
			b.WriteString(charName(rune(x)))
		} else {
			b.WriteRune(rune(x))
		}
	case *Symbol:
		b.WriteString(x.Name)
	case *String:
		if readable {
			b.WriteByte('"')
			b.WriteString(escapeString(string(x.Runes)))
			b.WriteByte('"')
		} else {
			b.WriteString(string(x.Runes))
		}
	case *Number:
		b.WriteString(x.String())
	case *Pair:
		writePair(b, x, readable, seen)
	case *Vector:
		b.WriteString("#(")
		for i, e := range x.Elems {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeRec(b, e, readable, seen)
		}
		b.WriteByte(')')
	case *Procedure:
		b.WriteString("#<procedure")
		if x.Name != "" {
			b.WriteByte(' ')
			b.WriteString(x.Name)
		}
		b.WriteByte('>')
	case *Promise:
		b.WriteString("#<promise>")
	case *Record:
		b.WriteString("#<")
		b.WriteString(x.Type.Name)
		for i, f := range x.Fields {
			b.WriteByte(' ')
			b.WriteString(x.Type.FieldNames[i])
			b.WriteString(": ")
			writeRec(b, f, readable, seen)
		}
		b.WriteByte('>')
	case *Box:
		b.WriteString("#&")
		writeRec(b, x.Val, readable, seen)
	case *Port:
		b.WriteString("#<port ")
		b.WriteString(x.Name)
		b.WriteByte('>')
	case *HashTable:
		b.WriteString("#<hash-table>")
	case *Comparator:
		b.WriteString("#<comparator ")
		b.WriteString(x.Name)
		b.WriteByte('>')
	case *StringCursor:
		b.WriteString("#<string-cursor>")
	case *ErrorObject:
		b.WriteString("#<error ")
		b.WriteString(x.Message)
		b.WriteByte('>')
	case *Values:
		for i, e := range x.Elems {
			if i > 0 {
				b.WriteByte(' ')
			}
			writeRec(b, e, readable, seen)
		}
	default:
		b.WriteString("#<unknown>")
	}
}

func writePair(b *strings.Builder, p *Pair, readable bool, seen map[*Pair]bool) {
	if seen[p] {
		b.WriteString("...")
		return
	}
	seen[p] = true
	b.WriteByte('(')
	writeRec(b, p.Car, readable, seen)
	rest := p.Cdr
	for {
		switch r := rest.(type) {
		case Nil:
			b.WriteByte(')')
			return
		case *Pair:
			if seen[r] {
				b.WriteString(" ...)")
				return
			}
			seen[r] = true
			b.WriteByte(' ')
			writeRec(b, r.Car, readable, seen)
			rest = r.Cdr
		default:
			b.WriteString(" . ")
			writeRec(b, rest, readable, seen)
			b.WriteByte(')')
			return
		}
	}
}

var charNames = map[rune]string{
	' ':    "space",
	'\n':   "newline",
	'\t':   "tab",
	'\r':   "return",
	0:      "null",
	0x7f:   "delete",
	0x1b:   "escape",
	'\a':   "alarm",
	'\b':   "backspace",
}

func charName(r rune) string {
	if n, ok := charNames[r]; ok {
		return n
	}
	if strconv.IsPrint(r) {
		return string(r)
	}
	return "x" + strconv.FormatInt(int64(r), 16)
}

func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
