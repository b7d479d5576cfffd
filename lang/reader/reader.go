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

// Package reader implements the external representation reader of
// spec.md §6.1: a single recursive-descent scanner/parser (no teacher or
// pack exemplar matches Scheme's s-expression syntax closely enough to
// adapt from directly — see DESIGN.md) that turns source text directly
// into lang/ast.Expr trees, tracking source spans via lang/token as it
// goes so downstream errors can point at the read site.
package reader

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v2"

	"github.com/wisteria-scheme/wisteria/interp/errors"
	"github.com/wisteria-scheme/wisteria/lang/ast"
	"github.com/wisteria-scheme/wisteria/lang/token"
	"github.com/wisteria-scheme/wisteria/value"
)

// Reader turns one source text into a sequence of top-level datums.
type Reader struct {
	src  []rune
	pos  int
	file *token.File
}

func New(src, filename string) *Reader {
	return &Reader{src: []rune(src), file: token.NewFile(filename)}
}

// ReadAll parses every top-level datum in the source, continuing after a
// malformed one so a single typo does not hide every other error in the
// file (mirroring interp/errors.List's accumulate-don't-abort design).
func ReadAll(src, filename string) ([]ast.Expr, error) {
	r := New(src, filename)
	var exprs []ast.Expr
	var errs errors.List
	for {
		r.skipAtmosphere()
		if r.atEnd() {
			break
		}
		e, err := r.readDatum()
		if err != nil {
			if se, ok := err.(*errors.SchemeError); ok {
				errs.Add(se)
			} else {
				errs.Add(errors.New(errors.Parse, token.NoSpan, "%v", err))
			}
			r.recover()
			continue
		}
		exprs = append(exprs, e)
	}
	return exprs, errs.Err()
}

// ReadOne parses exactly the first datum in src, ignoring any trailing
// text; used by the `read` builtin over a string/input port.
func ReadOne(src string) (ast.Expr, bool, error) {
	r := New(src, "")
	r.skipAtmosphere()
	if r.atEnd() {
		return nil, false, nil
	}
	e, err := r.readDatum()
	return e, true, err
}

func (r *Reader) atEnd() bool { return r.pos >= len(r.src) }

func (r *Reader) peek() rune {
	if r.atEnd() {
		return 0
	}
	return r.src[r.pos]
}

func (r *Reader) peekAt(off int) rune {
	if r.pos+off >= len(r.src) {
		return 0
	}
	return r.src[r.pos+off]
}

func (r *Reader) advance() rune {
	c := r.src[r.pos]
	r.pos++
	r.file.Advance(c)
	return c
}

func (r *Reader) here() token.Pos { return r.file.Pos() }

// recover skips to the next plausible datum boundary after a parse
// error, so ReadAll can keep scanning the rest of the file.
func (r *Reader) recover() {
	for !r.atEnd() {
		c := r.peek()
		if c == '(' || c == ')' || isWhitespace(c) {
			return
		}
		r.advance()
	}
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDelimiter(c rune) bool {
	return c == 0 || isWhitespace(c) || c == '(' || c == ')' || c == '"' || c == ';' || c == '\'' || c == '`' || c == ',' || c == '[' || c == ']'
}

// skipAtmosphere consumes whitespace, line comments, block comments
// (#| ... |#, nestable), and datum comments (#; datum) until real
// content or end of input.
func (r *Reader) skipAtmosphere() {
	for {
		c := r.peek()
		switch {
		case isWhitespace(c):
			r.advance()
		case c == ';':
			for !r.atEnd() && r.peek() != '\n' {
				r.advance()
			}
		case c == '#' && r.peekAt(1) == '|':
			r.advance()
			r.advance()
			depth := 1
			for depth > 0 && !r.atEnd() {
				if r.peek() == '#' && r.peekAt(1) == '|' {
					r.advance()
					r.advance()
					depth++
				} else if r.peek() == '|' && r.peekAt(1) == '#' {
					r.advance()
					r.advance()
					depth--
				} else {
					r.advance()
				}
			}
		case c == '#' && r.peekAt(1) == ';':
			r.advance()
			r.advance()
			r.skipAtmosphere()
			r.readDatum() // discard the commented-out datum
		default:
			return
		}
	}
}

func (r *Reader) syntaxErr(format string, args ...interface{}) error {
	return errors.New(errors.Parse, token.Span{Start: r.here(), End: r.here()}, format, args...)
}

func (r *Reader) readDatum() (ast.Expr, error) {
	r.skipAtmosphere()
	if r.atEnd() {
		return nil, r.syntaxErr("unexpected end of input")
	}
	start := r.here()
	c := r.peek()
	switch {
	case c == '(' || c == '[':
		return r.readList(c)
	case c == ')' || c == ']':
		return nil, r.syntaxErr("unexpected %q", c)
	case c == '\'':
		r.advance()
		e, err := r.readDatum()
		if err != nil {
			return nil, err
		}
		return ast.NewQuote(token.Span{Start: start, End: r.here()}, e), nil
	case c == '`':
		r.advance()
		e, err := r.readDatum()
		if err != nil {
			return nil, err
		}
		return ast.NewQuasiquote(token.Span{Start: start, End: r.here()}, e), nil
	case c == ',':
		r.advance()
		splicing := r.peek() == '@'
		if splicing {
			r.advance()
		}
		e, err := r.readDatum()
		if err != nil {
			return nil, err
		}
		sp := token.Span{Start: start, End: r.here()}
		if splicing {
			return ast.NewUnquoteSplicing(sp, e), nil
		}
		return ast.NewUnquote(sp, e), nil
	case c == '"':
		return r.readString()
	case c == '#':
		return r.readHash()
	default:
		return r.readAtom()
	}
}

func (r *Reader) readList(open rune) (ast.Expr, error) {
	start := r.here()
	close := ')'
	if open == '[' {
		close = ']'
	}
	r.advance()
	var elems []ast.Expr
	for {
		r.skipAtmosphere()
		if r.atEnd() {
			return nil, r.syntaxErr("unterminated list")
		}
		if r.peek() == close || r.peek() == ')' || r.peek() == ']' {
			r.advance()
			return ast.NewList(token.Span{Start: start, End: r.here()}, elems), nil
		}
		if r.peek() == '.' && isDelimiter(r.peekAt(1)) {
			r.advance()
			tail, err := r.readDatum()
			if err != nil {
				return nil, err
			}
			r.skipAtmosphere()
			if r.atEnd() || (r.peek() != close && r.peek() != ')' && r.peek() != ']') {
				return nil, r.syntaxErr("malformed dotted list")
			}
			r.advance()
			return ast.NewDottedList(token.Span{Start: start, End: r.here()}, elems, tail), nil
		}
		e, err := r.readDatum()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
}

func (r *Reader) readString() (ast.Expr, error) {
	start := r.here()
	r.advance() // opening quote
	var b strings.Builder
	for {
		if r.atEnd() {
			return nil, r.syntaxErr("unterminated string literal")
		}
		c := r.advance()
		if c == '"' {
			break
		}
		if c == '\\' {
			if r.atEnd() {
				return nil, r.syntaxErr("unterminated string escape")
			}
			esc := r.advance()
			switch esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			case 'a':
				b.WriteRune('\a')
			case 'b':
				b.WriteRune('\b')
			case '"':
				b.WriteRune('"')
			case '\\':
				b.WriteRune('\\')
			case 'x':
				var hex strings.Builder
				for !r.atEnd() && r.peek() != ';' {
					hex.WriteRune(r.advance())
				}
				if !r.atEnd() {
					r.advance() // ';'
				}
				n, err := strconv.ParseInt(hex.String(), 16, 32)
				if err != nil {
					return nil, r.syntaxErr("invalid \\x escape")
				}
				b.WriteRune(rune(n))
			case '\n':
				// line continuation: skip leading whitespace of next line
				for !r.atEnd() && (r.peek() == ' ' || r.peek() == '\t') {
					r.advance()
				}
			default:
				b.WriteRune(esc)
			}
			continue
		}
		b.WriteRune(c)
	}
	sp := token.Span{Start: start, End: r.here()}
	s := b.String()
	return ast.NewLiteral(sp, ast.LitString, value.NewString(s), s), nil
}

var namedChars = map[string]rune{
	"space": ' ', "newline": '\n', "tab": '\t', "return": '\r',
	"null": 0, "nul": 0, "delete": 0x7f, "escape": 0x1b, "altmode": 0x1b,
	"alarm": '\a', "backspace": '\b', "linefeed": '\n',
}

func (r *Reader) readHash() (ast.Expr, error) {
	start := r.here()
	c := r.peekAt(1)
	switch c {
	case 't':
		r.advance()
		r.consumeWord()
		return ast.NewLiteral(token.Span{Start: start, End: r.here()}, ast.LitBoolean, value.Boolean(true), "#t"), nil
	case 'f':
		r.advance()
		r.consumeWord()
		return ast.NewLiteral(token.Span{Start: start, End: r.here()}, ast.LitBoolean, value.Boolean(false), "#f"), nil
	case '\\':
		r.advance()
		r.advance()
		return r.readCharacter(start)
	case '(':
		r.advance()
		return r.readVector(start)
	case 'e', 'i', 'x', 'o', 'b', 'd':
		// A number with an exactness/radix prefix: leave '#' in place and
		// let readAtom absorb the whole token, prefix included.
		return r.readAtom()
	default:
		r.advance()
		return nil, r.syntaxErr("unsupported # syntax: #%c", c)
	}
}

// consumeWord absorbs the rest of a #t/#true, #f/#false token.
func (r *Reader) consumeWord() {
	for !r.atEnd() && !isDelimiter(r.peek()) {
		r.advance()
	}
}

func (r *Reader) readCharacter(start token.Pos) (ast.Expr, error) {
	if r.atEnd() {
		return nil, r.syntaxErr("unterminated character literal")
	}
	first := r.advance()
	var name strings.Builder
	name.WriteRune(first)
	for !r.atEnd() && !isDelimiter(r.peek()) {
		name.WriteRune(r.advance())
	}
	text := name.String()
	sp := token.Span{Start: start, End: r.here()}
	if len([]rune(text)) == 1 {
		return ast.NewLiteral(sp, ast.LitCharacter, value.Character(first), "#\\"+text), nil
	}
	if rn, ok := namedChars[strings.ToLower(text)]; ok {
		return ast.NewLiteral(sp, ast.LitCharacter, value.Character(rn), "#\\"+text), nil
	}
	if (text[0] == 'x' || text[0] == 'X') && len(text) > 1 {
		n, err := strconv.ParseInt(text[1:], 16, 32)
		if err == nil {
			return ast.NewLiteral(sp, ast.LitCharacter, value.Character(rune(n)), "#\\"+text), nil
		}
	}
	return nil, r.syntaxErr("unknown character name: #\\%s", text)
}

func (r *Reader) readVector(start token.Pos) (ast.Expr, error) {
	r.advance() // '('
	var elems []ast.Expr
	for {
		r.skipAtmosphere()
		if r.atEnd() {
			return nil, r.syntaxErr("unterminated vector literal")
		}
		if r.peek() == ')' {
			r.advance()
			return ast.NewVector(token.Span{Start: start, End: r.here()}, elems), nil
		}
		e, err := r.readDatum()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
}

// readAtom reads a run of non-delimiter characters (a number or a
// symbol). Numbers are tried first; anything that does not parse as one
// under R7RS's external syntax is read back as a symbol, the same
// disambiguation strategy as every Scheme reader.
func (r *Reader) readAtom() (ast.Expr, error) {
	start := r.here()
	var b strings.Builder
	if r.peek() == '|' {
		// |...| verbatim-symbol syntax.
		r.advance()
		for !r.atEnd() && r.peek() != '|' {
			b.WriteRune(r.advance())
		}
		if !r.atEnd() {
			r.advance()
		}
		return ast.NewVariable(token.Span{Start: start, End: r.here()}, b.String()), nil
	}
	for !r.atEnd() && !isDelimiter(r.peek()) {
		b.WriteRune(r.advance())
	}
	text := b.String()
	if text == "" {
		return nil, r.syntaxErr("empty token")
	}
	sp := token.Span{Start: start, End: r.here()}
	if n, ok := parseNumber(text); ok {
		return ast.NewLiteral(sp, ast.LitNumber, n, text), nil
	}
	return ast.NewVariable(sp, text), nil
}

// parseNumber implements a practical subset of R7RS numeric external
// syntax: optional #e/#i/#x/#o/#b/#d prefixes (in either order), signed
// integers, rationals (num/den), and reals with a decimal point and/or
// exponent marker.
func parseNumber(text string) (*value.Number, bool) {
	exactness := byte(0) // 'e', 'i', or 0
	radix := 10
	s := text
	for len(s) >= 2 && s[0] == '#' {
		switch s[1] {
		case 'e', 'i':
			exactness = s[1]
		case 'x':
			radix = 16
		case 'o':
			radix = 8
		case 'b':
			radix = 2
		case 'd':
			radix = 10
		default:
			return nil, false
		}
		s = s[2:]
	}
	if s == "" {
		return nil, false
	}
	if radix != 10 {
		n, err := strconv.ParseInt(s, radix, 64)
		if err != nil {
			return nil, false
		}
		return value.NewInt(n), true
	}
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		numS, denS := s[:idx], s[idx+1:]
		num, ok1 := parseDecimalInt(numS)
		den, ok2 := parseDecimalInt(denS)
		if !ok1 || !ok2 {
			return nil, false
		}
		n, err := value.NewRational(apd.New(num, 0), apd.New(den, 0))
		if err != nil {
			return nil, false
		}
		if exactness == 'i' {
			return value.NewReal(n.Float64()), true
		}
		return n, true
	}
	if looksLikeReal(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		if exactness == 'e' {
			d := new(apd.Decimal)
			d.SetFloat64(f)
			n, err := value.NewRational(d, apd.New(1, 0))
			if err != nil {
				return value.NewReal(f), true
			}
			return n, true
		}
		return value.NewReal(f), true
	}
	i, ok := parseDecimalInt(s)
	if !ok {
		return nil, false
	}
	if exactness == 'i' {
		return value.NewReal(float64(i)), true
	}
	return value.NewInt(i), true
}

func looksLikeReal(s string) bool {
	return strings.ContainsAny(s, ".eE") && s != "." && !strings.HasPrefix(s, "0x")
}

func parseDecimalInt(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
