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

// Package token defines source position tracking shared by the reader,
// the AST, and the error model.
package token

import "fmt"

// Pos is a compact source position: the File it belongs to plus a line
// and column within it. The zero value is NoPos, which carries no location.
type Pos struct {
	file *File
	line int
	col  int
}

// NoPos is the position used for synthesized nodes that have no source
// location, such as template output from a hygienic macro expansion.
var NoPos = Pos{}

// IsValid reports whether p refers to an actual source location.
func (p Pos) IsValid() bool { return p.file != nil }

// Filename returns the name of the file p belongs to, or "" for NoPos.
func (p Pos) Filename() string {
	if p.file == nil {
		return ""
	}
	return p.file.name
}

// Line returns the 1-based line number of p.
func (p Pos) Line() int { return p.line }

// Column returns the 1-based column number of p.
func (p Pos) Column() int { return p.col }

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%s:%d:%d", p.file.name, p.line, p.col)
}

// File tracks line/column bookkeeping for a single source text while it
// is being scanned.
type File struct {
	name string
	line int
	col  int
}

// NewFile creates a File positioned at line 1, column 1.
func NewFile(name string) *File {
	return &File{name: name, line: 1, col: 1}
}

// Pos returns the current position in f.
func (f *File) Pos() Pos {
	return Pos{file: f, line: f.line, col: f.col}
}

// Advance moves f's position past r, tracking line/column for the next
// call to Pos.
func (f *File) Advance(r rune) {
	if r == '\n' {
		f.line++
		f.col = 1
		return
	}
	f.col++
}

// Span is a half-open source range [Start, End) used by AST nodes and
// errors to point at the exact text responsible for a diagnostic.
type Span struct {
	Start, End Pos
}

// NoSpan is the span used for synthesized nodes.
var NoSpan = Span{}

func (s Span) String() string {
	if !s.Start.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%s-%d:%d", s.Start, s.End.Line(), s.End.Column())
}
