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
	"errors"
	"io/fs"
	"regexp"
	"testing"
)

type SchemaError struct {
	Key     string
	Code    uint32
	Message string
	Pattern *regexp.Regexp
}

func LoadSchemaErrors(testdata fs.FS) (map[string]*SchemaError, error) {
	diags, err := loadDiagnostics(testdata, "diagnostics/schema_errors.json", "schema error")
	if err != nil {
		return nil, err
	}
	out := make(map[string]*SchemaError, len(diags))
	for key, diag := range diags {
		out[key] = &SchemaError{
			Key:     key,
			Code:    diag.code,
			Message: diag.message,
			Pattern: diag.pattern,
		}
	}
	return out, nil
}

// LoadExpectedError reads an expect_err.json file naming the error that
// halts compilation of a test schema.
func LoadExpectedError(
	t *testing.T,
	schemaErrors map[string]*SchemaError,
	testdata fs.FS,
	jsonPath string,
) *SchemaError {
	t.Helper()

	jsonData, err := fs.ReadFile(testdata, jsonPath)
	if err != nil {
		t.Fatal(err)
	}

	var raw struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(jsonData, &raw); err != nil {
		t.Fatal(err)
	}

	expect, ok := schemaErrors[raw.Error]
	if !ok {
		t.Fatalf("unknown schema error name %q", raw.Error)
	}
	return expect
}

func ExpectSchemaError(t *testing.T, want *SchemaError, err error) {
	t.Helper()
	if err == nil {
		t.Errorf("expected schema error %q (code %d), got: nil", want.Key, want.Code)
		return
	}
	var coded CodedError
	if !errors.As(err, &coded) {
		t.Errorf("expected schema error %q (code %d), got: %v", want.Key, want.Code, err)
		return
	}
	ExpectEq(t, want.Code, coded.Code())
	if want.Pattern != nil {
		ExpectMatch(t, want.Pattern, coded.Message())
	} else if want.Message != "" {
		ExpectEq(t, want.Message, coded.Message())
	}
}
