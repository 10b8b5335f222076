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

package fptext_test

import (
	"errors"
	"iter"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/vrai/SimpleFudgeProto/ast"
	"github.com/vrai/SimpleFudgeProto/encoding/fptext"
	"github.com/vrai/SimpleFudgeProto/internal/testutil"
	"github.com/vrai/SimpleFudgeProto/syntax"
)

type fakeIndex struct {
	enums    map[string]*ast.Enum
	messages map[string]*ast.Message
}

func (idx *fakeIndex) Enums() iter.Seq2[string, *ast.Enum] {
	return maps.All(idx.enums)
}

func (idx *fakeIndex) Messages() iter.Seq2[string, *ast.Message] {
	return maps.All(idx.messages)
}

type fakeExtRefs map[string][]string

func (refs fakeExtRefs) Closures() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, name := range slices.Sorted(maps.Keys(refs)) {
			if !yield(name, refs[name]) {
				return
			}
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestFormatField(t *testing.T) {
	t.Parallel()

	root, err := syntax.Parse([]byte(`message M {
		required int[3][] grid = 4;
		mutable string label [default = "x"];
	}`))
	testutil.AssertNoError(t, err)
	msg := root.Content()[0].(*ast.Message)

	var got []string
	for _, field := range msg.Fields() {
		got = append(got, fptext.FormatField(field))
	}
	testutil.ExpectSliceEq(t, []string{
		"field( required int[3][] grid = 4 )",
		"field( mutable optional string label [default=\"x\"] )",
	}, got)
}

func TestWriteIndex(t *testing.T) {
	t.Parallel()

	index := &fakeIndex{
		enums: map[string]*ast.Enum{"b.E": nil},
		messages: map[string]*ast.Message{
			"c.M": nil,
			"a.M": nil,
		},
	}
	var buf strings.Builder
	testutil.AssertNoError(t, fptext.WriteIndex(&buf, index))
	testutil.ExpectNoDiff(t, ""+
		"message a.M\n"+
		"enum b.E\n"+
		"message c.M\n",
		buf.String())
}

func TestWriteExtRefs(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	err := fptext.WriteExtRefs(&buf, fakeExtRefs{
		"A": {"B", "C"},
		"B": {},
	})
	testutil.AssertNoError(t, err)
	testutil.ExpectNoDiff(t, "A -> B, C\nB ->\n", buf.String())
}

func TestWriteErrorIsSticky(t *testing.T) {
	t.Parallel()

	root, err := syntax.Parse([]byte("message A {} message B {}"))
	testutil.AssertNoError(t, err)
	err = fptext.WriteTree(failingWriter{}, root)
	testutil.AssertError(t, err)
	testutil.ExpectEq(t, "write failed", err.Error())
}
