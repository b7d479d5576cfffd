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

package macro

import (
	"sync/atomic"

	"github.com/wisteria-scheme/wisteria/env"
	"github.com/wisteria-scheme/wisteria/lang/ast"
	"github.com/wisteria-scheme/wisteria/lang/token"
)

// colorCounter allocates the fresh "color" spec.md §9 describes, one per
// macro expansion process-wide: uniqueness only needs to hold within a
// single expansion, so a monotonic counter shared across every
// Transformer and Expander trivially satisfies it without the expander
// needing to carry any mutable per-instance generator.
var colorCounter uint64

func nextColor() int {
	return int(atomic.AddUint64(&colorCounter, 1))
}

// matchSeq matches a (possibly ellipsis-containing, possibly dotted)
// pattern element sequence against a use's element sequence. At most one
// ellipsis may appear per sequence, per R7RS; the sub-pattern to its
// left absorbs zero or more use elements, and any fixed pattern
// elements after it anchor against the tail of the use sequence.
func matchSeq(patElems []ast.Expr, patHasTail bool, patTail ast.Expr, useElems []ast.Expr, useTail ast.Expr, t *Transformer, b *bindings) bool {
	ellIdx := -1
	for i := 0; i+1 < len(patElems); i++ {
		if sym, ok := patElems[i+1].(*ast.Variable); ok && sym.Name == t.Ellipsis {
			ellIdx = i
			break
		}
	}

	var before, after []ast.Expr
	var ellPat ast.Expr
	if ellIdx >= 0 {
		before = patElems[:ellIdx]
		ellPat = patElems[ellIdx]
		after = patElems[ellIdx+2:]
	} else {
		before = patElems
	}

	if len(useElems) < len(before)+len(after) {
		return false
	}
	for i, p := range before {
		if !matchPattern(p, useElems[i], t, b) {
			return false
		}
	}
	afterStart := len(useElems) - len(after)
	for i, p := range after {
		if !matchPattern(p, useElems[afterStart+i], t, b) {
			return false
		}
	}

	if ellPat != nil {
		middle := useElems[len(before):afterStart]
		vars := collectPatternVars(ellPat, t)
		seqs := map[string][]*binding{}
		for _, v := range vars {
			seqs[v] = nil
		}
		for _, m := range middle {
			sub := newBindings()
			if !matchPattern(ellPat, m, t, sub) {
				return false
			}
			for _, v := range vars {
				seqs[v] = append(seqs[v], sub.vars[v])
			}
		}
		for _, v := range vars {
			b.set(v, &binding{seq: seqs[v]})
		}
	} else if len(useElems) != len(before)+len(after) {
		return false
	}

	if patHasTail {
		var tailVal ast.Expr
		if useTail != nil {
			tailVal = useTail
		} else {
			tailVal = ast.NewList(token.NoSpan, nil)
		}
		return matchPattern(patTail, tailVal, t, b)
	}
	return useTail == nil
}

func matchPattern(pat, use ast.Expr, t *Transformer, b *bindings) bool {
	switch p := pat.(type) {
	case *ast.Variable:
		if p.Name == "_" {
			return true
		}
		if t.Literals[p.Name] {
			v, ok := use.(*ast.Variable)
			return ok && v.Name == p.Name
		}
		b.set(p.Name, &binding{leaf: use})
		return true
	case *ast.Literal:
		u, ok := use.(*ast.Literal)
		return ok && p.Kind == u.Kind && p.Text == u.Text
	case *ast.List:
		switch u := use.(type) {
		case *ast.List:
			return matchSeq(p.Elems, false, nil, u.Elems, nil, t, b)
		case *ast.DottedList:
			return matchSeq(p.Elems, false, nil, u.Elems, u.Tail, t, b)
		default:
			return false
		}
	case *ast.DottedList:
		switch u := use.(type) {
		case *ast.List:
			return matchSeq(p.Elems, true, p.Tail, u.Elems, nil, t, b)
		case *ast.DottedList:
			return matchSeq(p.Elems, true, p.Tail, u.Elems, u.Tail, t, b)
		default:
			return false
		}
	case *ast.Vector:
		u, ok := use.(*ast.Vector)
		if !ok {
			return false
		}
		return matchSeq(p.Elems, false, nil, u.Elems, nil, t, b)
	default:
		return false
	}
}

// collectPatternVars returns every identifier bound by pat (excluding
// literals, the ellipsis keyword, and `_`), used to know which bindings
// an ellipsis sub-pattern populates.
func collectPatternVars(pat ast.Expr, t *Transformer) []string {
	var out []string
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		switch x := e.(type) {
		case *ast.Variable:
			if x.Name == "_" || x.Name == t.Ellipsis || t.Literals[x.Name] {
				return
			}
			out = append(out, x.Name)
		case *ast.List:
			for _, el := range x.Elems {
				walk(el)
			}
		case *ast.DottedList:
			for _, el := range x.Elems {
				walk(el)
			}
			walk(x.Tail)
		case *ast.Vector:
			for _, el := range x.Elems {
				walk(el)
			}
		}
	}
	walk(pat)
	return out
}

// instantiate builds the expansion of template under the bindings
// collected by a successful match. A template variable not present in b
// is a template-introduced identifier, not a substitution of use-site
// text — spec.md §4.9/§9 requires these to be renamed ("hygiene-marked")
// with the fresh color this expansion allocated, so a let/lambda-bound
// name the template introduces (e.g. swap!'s "t") cannot capture, or be
// captured by, an identically spelled identifier at the macro's use
// site. The ellipsis keyword and any syntax-rules literal are exempt:
// both are matched structurally elsewhere (against the use form's own
// symbols, or against auxiliary keywords like "else"/"=>" — see
// interp/eval.isAuxKeyword) and must keep their literal spelling.
func instantiate(tmpl ast.Expr, t *Transformer, b *bindings, color int) ast.Expr {
	switch x := tmpl.(type) {
	case *ast.Variable:
		if bd, ok := b.vars[x.Name]; ok {
			if bd.leaf != nil {
				return bd.leaf
			}
			return ast.NewList(token.NoSpan, nil)
		}
		if x.Name == t.Ellipsis || t.Literals[x.Name] {
			return x
		}
		return ast.NewVariable(x.Sp, env.Mark(x.Name, color))
	case *ast.List:
		return ast.NewList(x.Sp, instantiateSeq(x.Elems, t, b, color))
	case *ast.DottedList:
		elems := instantiateSeq(x.Elems, t, b, color)
		return ast.NewDottedList(x.Sp, elems, instantiate(x.Tail, t, b, color))
	case *ast.Vector:
		return ast.NewVector(x.Sp, instantiateSeq(x.Elems, t, b, color))
	case *ast.Quote:
		return ast.NewQuote(x.Sp, instantiate(x.Expr, t, b, color))
	case *ast.Quasiquote:
		return ast.NewQuasiquote(x.Sp, instantiate(x.Expr, t, b, color))
	case *ast.Unquote:
		return ast.NewUnquote(x.Sp, instantiate(x.Expr, t, b, color))
	case *ast.UnquoteSplicing:
		return ast.NewUnquoteSplicing(x.Sp, instantiate(x.Expr, t, b, color))
	default:
		return tmpl
	}
}

func instantiateSeq(elems []ast.Expr, t *Transformer, b *bindings, color int) []ast.Expr {
	var out []ast.Expr
	i := 0
	for i < len(elems) {
		if i+1 < len(elems) {
			if sym, ok := elems[i+1].(*ast.Variable); ok && sym.Name == t.Ellipsis {
				sub := elems[i]
				j := i + 1
				extra := 0
				for j < len(elems) {
					if sym2, ok2 := elems[j].(*ast.Variable); ok2 && sym2.Name == t.Ellipsis {
						extra++
						j++
						continue
					}
					break
				}
				out = append(out, expandEllipsisTemplate(sub, t, b, extra-1, color)...)
				i = j
				continue
			}
		}
		out = append(out, instantiate(elems[i], t, b, color))
		i++
	}
	return out
}

// expandEllipsisTemplate expands sub once per element of the longest
// varying (seq-bound) pattern variable referenced inside it. extraDepth
// counts doubled ellipses past the first ("x ... ..."), each of which
// splices one further nesting level flat into the result, covering the
// common nested-ellipsis (SRFI 46) shapes without needing a separate
// code path: the recursive instantiate call naturally re-triggers
// ellipsis expansion on any deeper-nested seq bindings it finds.
func expandEllipsisTemplate(sub ast.Expr, t *Transformer, b *bindings, extraDepth int, color int) []ast.Expr {
	varying := collectVaryingVars(sub, b)
	n := 0
	for _, v := range varying {
		if bd := b.vars[v]; bd != nil && len(bd.seq) > n {
			n = len(bd.seq)
		}
	}
	var out []ast.Expr
	for idx := 0; idx < n; idx++ {
		subB := newBindings()
		for name, bd := range b.vars {
			subB.vars[name] = bd
		}
		for _, v := range varying {
			bd := b.vars[v]
			if bd != nil && idx < len(bd.seq) {
				subB.vars[v] = bd.seq[idx]
			}
		}
		item := instantiate(sub, t, subB, color)
		if extraDepth > 0 {
			if l, ok := item.(*ast.List); ok {
				out = append(out, l.Elems...)
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func collectVaryingVars(tmpl ast.Expr, b *bindings) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(ast.Expr)
	walk = func(e ast.Expr) {
		switch x := e.(type) {
		case *ast.Variable:
			if bd, ok := b.vars[x.Name]; ok && bd.seq != nil && !seen[x.Name] {
				seen[x.Name] = true
				out = append(out, x.Name)
			}
		case *ast.List:
			for _, el := range x.Elems {
				walk(el)
			}
		case *ast.DottedList:
			for _, el := range x.Elems {
				walk(el)
			}
			walk(x.Tail)
		case *ast.Vector:
			for _, el := range x.Elems {
				walk(el)
			}
		case *ast.Quote:
			walk(x.Expr)
		case *ast.Quasiquote:
			walk(x.Expr)
		case *ast.Unquote:
			walk(x.Expr)
		case *ast.UnquoteSplicing:
			walk(x.Expr)
		}
	}
	walk(tmpl)
	return out
}
