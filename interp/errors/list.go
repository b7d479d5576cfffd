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

package errors

import "github.com/wisteria-scheme/wisteria/lang/token"

// List accumulates multiple SchemeErrors, used by the reader to keep
// scanning after a malformed token instead of aborting on the first
// error, mirroring CUE's errors.Append accumulation pattern.
type List struct {
	errs []*SchemeError
}

func (l *List) Add(e *SchemeError) {
	if e == nil {
		return
	}
	l.errs = append(l.errs, e)
}

func (l *List) Errors() []*SchemeError { return l.errs }

func (l *List) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l
}

func (l *List) Error() string {
	if len(l.errs) == 1 {
		return l.errs[0].Error()
	}
	s := ""
	for i, e := range l.errs {
		if i > 0 {
			s += "\n"
		}
		s += e.Error()
	}
	return s
}

// Append combines a and b into a List, flattening either argument that
// is already a List.
func Append(a, b error) error {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	l := &List{}
	flatten(l, a)
	flatten(l, b)
	return l
}

func flatten(l *List, err error) {
	switch e := err.(type) {
	case nil:
	case *List:
		l.errs = append(l.errs, e.errs...)
	case *SchemeError:
		l.errs = append(l.errs, e)
	default:
		l.errs = append(l.errs, New(Runtime, token.NoSpan, "%v", err))
	}
}
