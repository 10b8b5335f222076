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

package fpschema_test

import (
	"path/filepath"
	"testing"

	"github.com/vrai/SimpleFudgeProto/encoding/fpschema"
	"github.com/vrai/SimpleFudgeProto/internal/testutil"
)

func TestOutputFileValidate(t *testing.T) {
	t.Parallel()

	valid := fpschema.OutputFile{Path: []string{"com", "acme", "Order.java"}}
	testutil.ExpectNoError(t, valid.Validate())
	testutil.ExpectEq(t, filepath.Join("out", "com", "acme", "Order.java"), valid.Join("out"))

	tests := []struct {
		path    []string
		message string
	}{
		{nil, "empty"},
		{[]string{"a", ""}, `bad path component ""`},
		{[]string{".."}, `bad path component ".."`},
		{[]string{"/etc"}, `absolute path component "/etc"`},
		{[]string{"a/b"}, `component "a/b" contains '/'`},
	}
	for _, test := range tests {
		file := fpschema.OutputFile{Path: test.path}
		err := file.Validate()
		testutil.AssertError(t, err)
		testutil.ExpectMatch(t, test.message, err.Error())
	}
}

func TestResponseFraming(t *testing.T) {
	t.Parallel()

	resp := &fpschema.CodegenResponse{
		Files: []fpschema.OutputFile{
			{Path: []string{"order.txt"}, Content: "hello"},
		},
	}
	buf, err := fpschema.MarshalResponse(resp)
	testutil.AssertNoError(t, err)

	// Trailing bytes past the framed length are ignored.
	decoded, err := fpschema.UnmarshalResponse(append(buf, 0xFF, 0xFF))
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "", decoded.Error)
	testutil.AssertTrue(t, len(decoded.Files) == 1)
	testutil.ExpectEq(t, "hello", decoded.Files[0].Content)

	_, err = fpschema.UnmarshalResponse(buf[:2])
	testutil.AssertError(t, err)
	_, err = fpschema.UnmarshalResponse(buf[:len(buf)-1])
	testutil.AssertError(t, err)
}
