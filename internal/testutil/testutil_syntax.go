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

package testutil

import (
	"encoding/json"
	"io/fs"
	"strconv"
	"regexp"
	"testing"

	"github.com/vrai/SimpleFudgeProto/syntax"
)

type SyntaxError struct {
	code    uint32
	message string
	pattern *regexp.Regexp
}

func (err *SyntaxError) Code() uint32 {
	return err.code
}

func (err *SyntaxError) Message() string {
	return err.message
}

func (err *SyntaxError) MessagePattern() *regexp.Regexp {
	return err.pattern
}

func LoadSyntaxErrors(testdata fs.FS) (map[string]*SyntaxError, error) {
	diags, err := loadDiagnostics(testdata, "diagnostics/syntax_errors.json", "syntax error")
	if err != nil {
		return nil, err
	}
	out := make(map[string]*SyntaxError, len(diags))
	for key, diag := range diags {
		out[key] = &SyntaxError{
			code:    diag.code,
			message: diag.message,
			pattern: diag.pattern,
		}
	}
	return out, nil
}

type ExpectedSyntaxError struct {
	Name string
	Span syntax.Span
}

// LoadExpectedSyntaxError reads an expect_err.json file of the form
// {"error": NAME, "error_span": {"start": N, "len": N}}.
func LoadExpectedSyntaxError(t *testing.T, testdata fs.FS, jsonPath string) ExpectedSyntaxError {
	t.Helper()

	jsonData, err := fs.ReadFile(testdata, jsonPath)
	if err != nil {
		t.Fatal(err)
	}

	var raw struct {
		Error string `json:"error"`
		Span  struct {
			Start uint32 `json:"start"`
			Len   uint32 `json:"len"`
		} `json:"error_span"`
	}
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		t.Fatal(err)
	}
	return ExpectedSyntaxError{
		Name: raw.Error,
		Span: syntax.NewSpan(raw.Span.Start, raw.Span.Len),
	}
}

// SpanOrDie converts a decoded {"start": N, "len": N} object into a Span.
// Numbers must have been decoded with [json.Decoder.UseNumber].
func SpanOrDie(t *testing.T, value any) syntax.Span {
	t.Helper()

	obj, ok := value.(map[string]any)
	if !ok {
		t.Fatalf("expected span object, got %#v", value)
	}
	field := func(key string) uint32 {
		num, ok := obj[key].(json.Number)
		if !ok {
			t.Fatalf("span field %q: expected number, got %#v", key, obj[key])
		}
		n, err := strconv.ParseUint(num.String(), 10, 32)
		if err != nil {
			t.Fatalf("span field %q: %v", key, err)
		}
		return uint32(n)
	}
	return syntax.NewSpan(field("start"), field("len"))
}
