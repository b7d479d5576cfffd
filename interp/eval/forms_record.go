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

package eval

import (
	"github.com/wisteria-scheme/wisteria/env"
	"github.com/wisteria-scheme/wisteria/interp/errors"
	"github.com/wisteria-scheme/wisteria/lang/ast"
	"github.com/wisteria-scheme/wisteria/value"
)

// --- define-record-type (SRFI 9) ---
//
// (define-record-type <name>
//   (constructor field ...)
//   predicate
//   (field accessor [mutator]) ...)
//
// Every clause names an identifier and is resolved entirely at
// define-record-type's own evaluation; none of it is a further
// expression to dispatch, so the whole form runs synchronously and
// never pushes a Frame.
func formDefineRecordType(m *Machine, l *ast.List, e env.Frame) (Outcome, error) {
	if len(l.Elems) < 4 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "define-record-type: malformed form")
	}
	typeName, ok := recordTypeName(l.Elems[1])
	if !ok {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "define-record-type: malformed type name")
	}

	ctorSpec, ok := l.Elems[2].(*ast.List)
	if !ok || len(ctorSpec.Elems) == 0 {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "define-record-type: malformed constructor spec")
	}
	ctorName, ok := symbolName(ctorSpec.Elems[0])
	if !ok {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "define-record-type: constructor name must be an identifier")
	}
	var ctorFields []string
	for _, fe := range ctorSpec.Elems[1:] {
		n, ok := symbolName(fe)
		if !ok {
			return Outcome{}, errors.New(errors.Syntax, l.Sp, "define-record-type: constructor field must be an identifier")
		}
		ctorFields = append(ctorFields, n)
	}

	predName, ok := symbolName(l.Elems[3])
	if !ok {
		return Outcome{}, errors.New(errors.Syntax, l.Sp, "define-record-type: predicate name must be an identifier")
	}

	type fieldSpec struct {
		name, accessor, mutator string
		hasMutator               bool
	}
	var fields []fieldSpec
	for _, fe := range l.Elems[4:] {
		fl, ok := fe.(*ast.List)
		if !ok || len(fl.Elems) < 2 || len(fl.Elems) > 3 {
			return Outcome{}, errors.New(errors.Syntax, l.Sp, "define-record-type: malformed field spec")
		}
		fname, ok := symbolName(fl.Elems[0])
		if !ok {
			return Outcome{}, errors.New(errors.Syntax, l.Sp, "define-record-type: field name must be an identifier")
		}
		accessor, ok := symbolName(fl.Elems[1])
		if !ok {
			return Outcome{}, errors.New(errors.Syntax, l.Sp, "define-record-type: accessor name must be an identifier")
		}
		fs := fieldSpec{name: fname, accessor: accessor}
		if len(fl.Elems) == 3 {
			mname, ok := symbolName(fl.Elems[2])
			if !ok {
				return Outcome{}, errors.New(errors.Syntax, l.Sp, "define-record-type: mutator name must be an identifier")
			}
			fs.mutator, fs.hasMutator = mname, true
		}
		fields = append(fields, fs)
	}

	fieldNames := make([]string, len(fields))
	index := map[string]int{}
	for i, fs := range fields {
		fieldNames[i] = fs.name
		index[fs.name] = i
	}
	rt := &value.RecordType{Name: typeName, FieldNames: fieldNames}

	ctorIdx := make([]int, len(ctorFields))
	for i, fn := range ctorFields {
		idx, ok := index[fn]
		if !ok {
			return Outcome{}, errors.New(errors.Syntax, l.Sp, "define-record-type: constructor field %q is not a declared field", fn)
		}
		ctorIdx[i] = idx
	}

	e.Define(typeName, rt)

	e.Define(ctorName, &value.Procedure{Name: ctorName, Builtin: &value.BuiltinProc{
		Name:  ctorName,
		Arity: value.Exact(len(ctorIdx)),
		Fn: func(args []value.Value) (value.Value, error) {
			vals := make([]value.Value, len(fieldNames))
			for i := range vals {
				vals[i] = value.Undefined{}
			}
			for i, fieldIdx := range ctorIdx {
				vals[fieldIdx] = args[i]
			}
			return &value.Record{Type: rt, Fields: vals}, nil
		},
	}})

	e.Define(predName, &value.Procedure{Name: predName, Builtin: &value.BuiltinProc{
		Name:  predName,
		Arity: value.Exact(1),
		Fn: func(args []value.Value) (value.Value, error) {
			r, ok := args[0].(*value.Record)
			return value.Boolean(ok && r.Type == rt), nil
		},
	}})

	for i, fs := range fields {
		i, fs := i, fs
		e.Define(fs.accessor, &value.Procedure{Name: fs.accessor, Builtin: &value.BuiltinProc{
			Name:  fs.accessor,
			Arity: value.Exact(1),
			Fn: func(args []value.Value) (value.Value, error) {
				r, ok := args[0].(*value.Record)
				if !ok || r.Type != rt {
					return nil, errors.WrongType(l.Sp, fs.accessor, typeName, args[0])
				}
				return r.Fields[i], nil
			},
		}})
		if fs.hasMutator {
			e.Define(fs.mutator, &value.Procedure{Name: fs.mutator, Builtin: &value.BuiltinProc{
				Name:  fs.mutator,
				Arity: value.Exact(2),
				Fn: func(args []value.Value) (value.Value, error) {
					r, ok := args[0].(*value.Record)
					if !ok || r.Type != rt {
						return nil, errors.WrongType(l.Sp, fs.mutator, typeName, args[0])
					}
					r.Fields[i] = args[1]
					return value.Undefined{}, nil
				},
			}})
		}
	}

	return done(value.Undefined{})
}

func recordTypeName(e ast.Expr) (string, bool) {
	if n, ok := symbolName(e); ok {
		return n, true
	}
	if l, ok := e.(*ast.List); ok && len(l.Elems) >= 1 {
		return symbolName(l.Elems[0])
	}
	return "", false
}
