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

package fpschema

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// CodegenRequest is the body passed to a code generation plugin.
type CodegenRequest struct {
	Language string            `json:"language"`
	Document *Document         `json:"document"`
	Options  map[string]string `json:"options,omitempty"`
}

// CodegenResponse is the body returned by a code generation plugin. A
// non-empty Error means generation failed.
type CodegenResponse struct {
	Error string       `json:"error,omitempty"`
	Files []OutputFile `json:"files"`
}

type OutputFile struct {
	Path    []string `json:"path"`
	Content string   `json:"content"`
}

// Validate checks that the file's path stays inside the output directory.
func (f *OutputFile) Validate() error {
	if len(f.Path) == 0 {
		return fmt.Errorf("Invalid output path %#v: empty", f.Path)
	}
	for _, part := range f.Path {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("Invalid output path %#v: bad path component %q", f.Path, part)
		}
		if part[0] == '/' || filepath.IsAbs(part) {
			return fmt.Errorf("Invalid output path %#v: absolute path component %q", f.Path, part)
		}
		if strings.Contains(part, "/") {
			return fmt.Errorf("Invalid output path %#v: component %q contains '/'", f.Path, part)
		}
	}
	return nil
}

// Join returns the file's path below dir. The path must be valid.
func (f *OutputFile) Join(dir string) string {
	return filepath.Join(append([]string{dir}, f.Path...)...)
}

func (req *CodegenRequest) Marshal() ([]byte, error) {
	return json.Marshal(req)
}

// UnmarshalResponse decodes a response framed as a little-endian uint32
// length followed by that many bytes of JSON.
func UnmarshalResponse(buf []byte) (*CodegenResponse, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("Codegen response is truncated (%d bytes)", len(buf))
	}
	size := binary.LittleEndian.Uint32(buf)
	if uint64(size) > uint64(len(buf)-4) {
		return nil, fmt.Errorf(
			"Codegen response length %d exceeds available %d bytes",
			size, len(buf)-4,
		)
	}
	var resp CodegenResponse
	if err := json.Unmarshal(buf[4:4+size], &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MarshalResponse frames resp for [UnmarshalResponse].
func MarshalResponse(resp *CodegenResponse) ([]byte, error) {
	body, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}
	buf := binary.LittleEndian.AppendUint32(make([]byte, 0, 4+len(body)), uint32(len(body)))
	return append(buf, body...), nil
}
