// Copyright (c) 2026 Vrai Stacey
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES WITH
// REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF MERCHANTABILITY
// AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR ANY SPECIAL, DIRECT,
// INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES WHATSOEVER RESULTING FROM
// LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION OF CONTRACT, NEGLIGENCE OR
// OTHER TORTIOUS ACTION, ARISING OUT OF OR IN CONNECTION WITH THE USE OR
// PERFORMANCE OF THIS SOFTWARE.
//
// SPDX-License-Identifier: 0BSD

package ast

import (
	"iter"
	"slices"
	"strings"
)

// An Identifier is an ordered sequence of name segments, such as the
// three segments of "a.b.c".
//
// Identifiers stored by a definition, an index, or a field type are shared
// and must not be modified. Use [Identifier.Clone] to obtain a copy that can
// be changed.
type Identifier struct {
	segments []string
}

func NewIdentifier(first string, rest ...string) *Identifier {
	segments := make([]string, 0, 1+len(rest))
	segments = append(segments, first)
	segments = append(segments, rest...)
	return &Identifier{segments: segments}
}

// ParseIdentifier splits src on sep, dropping empty segments. A source with
// no non-empty segments yields an identifier with one empty segment.
func ParseIdentifier(src, sep string) *Identifier {
	return parseIdentifier(src, sep, true)
}

// SplitIdentifier splits src on sep, keeping empty segments.
func SplitIdentifier(src, sep string) *Identifier {
	return parseIdentifier(src, sep, false)
}

func parseIdentifier(src, sep string, ignoreEmpty bool) *Identifier {
	id := &Identifier{}
	for segment := range strings.SplitSeq(src, sep) {
		if segment == "" && ignoreEmpty {
			continue
		}
		id.segments = append(id.segments, segment)
	}
	if len(id.segments) == 0 {
		id.segments = []string{""}
	}
	return id
}

func (id *Identifier) Clone() *Identifier {
	return &Identifier{segments: slices.Clone(id.segments)}
}

func (id *Identifier) Len() int {
	return len(id.segments)
}

func (id *Identifier) At(index int) string {
	return id.segments[index]
}

func (id *Identifier) Last() string {
	return id.segments[len(id.segments)-1]
}

func (id *Identifier) Segments() iter.Seq2[int, string] {
	return slices.All(id.segments)
}

// Blank reports whether id has no segments, or a single empty segment.
func (id *Identifier) Blank() bool {
	return len(id.segments) == 0 || (len(id.segments) == 1 && id.segments[0] == "")
}

func (id *Identifier) Append(segment string) {
	id.segments = append(id.segments, segment)
}

func (id *Identifier) Prepend(segment string) {
	id.segments = slices.Insert(id.segments, 0, segment)
}

func (id *Identifier) Extend(other *Identifier) {
	id.segments = append(id.segments, other.segments...)
}

func (id *Identifier) PrependAll(other *Identifier) {
	id.segments = slices.Insert(id.segments, 0, other.segments...)
}

func (id *Identifier) Pop() error {
	if len(id.segments) == 0 {
		return errIdentifierEmpty()
	}
	id.segments = id.segments[:len(id.segments)-1]
	return nil
}

// Parent returns a copy of id without its last segment, or nil if id has
// fewer than two segments.
func (id *Identifier) Parent() *Identifier {
	if len(id.segments) < 2 {
		return nil
	}
	return &Identifier{segments: slices.Clone(id.segments[:len(id.segments)-1])}
}

func (id *Identifier) Equal(other *Identifier) bool {
	if id == nil || other == nil {
		return id == other
	}
	return slices.Equal(id.segments, other.segments)
}

func (id *Identifier) Join(sep string) string {
	return strings.Join(id.segments, sep)
}

func (id *Identifier) String() string {
	if id == nil {
		return "NULL"
	}
	return id.Join(".")
}
