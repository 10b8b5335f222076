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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrai/SimpleFudgeProto/encoding/fpschema"
)

const pixelSchema = `namespace gfx {
	enum Color { RED; GREEN; BLUE; }
	message Pixel {
		Color c = 1;
	}
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rc := execute(context.Background(), args, &stdout, &stderr)
	return rc, stdout.String(), stderr.String()
}

func TestCompileText(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "pixel.proto", pixelSchema)
	rc, stdout, stderr := runCLI(t, "compile", path)
	require.Equal(t, 0, rc, stderr)
	assert.Equal(t, ""+
		"enum( gfx.Color )\n"+
		"\tRED = 0\n"+
		"\tGREEN = 1\n"+
		"\tBLUE = 2\n"+
		"message( gfx.Pixel )\n"+
		"\tfield( optional gfx.Color c = 1 )\n"+
		"--- INDEX ---\n"+
		"enum gfx.Color\n"+
		"message gfx.Pixel\n"+
		"--- EXTREFS ---\n"+
		"gfx.Pixel ->\n",
		stdout)
	assert.Empty(t, stderr)
}

func TestCompileJSONWithAlias(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "pixel.proto", pixelSchema)
	outPath := filepath.Join(dir, "out.json")

	rc, stdout, stderr := runCLI(t, "compile", "--format=json", "--alias", "gfx:g", "-o", outPath, path)
	require.Equal(t, 0, rc, stderr)
	assert.Empty(t, stdout)

	fp, err := os.Open(outPath)
	require.NoError(t, err)
	defer fp.Close()
	doc, err := fpschema.DecodeJSON(fp)
	require.NoError(t, err)

	require.Len(t, doc.Messages, 1)
	assert.Equal(t, "g.Pixel", doc.Messages[0].Name)
	assert.Equal(t, "gfx.Pixel", doc.Messages[0].OriginalName)
	assert.Equal(t, "g_pixel", doc.Messages[0].FileStem)
	require.Len(t, doc.Enums, 1)
	assert.Equal(t, "g.Color", doc.Enums[0].Name)
}

func TestCompileYAMLWithConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "pixel.proto", pixelSchema)
	configPath := writeFile(t, dir, "fudgeproto.toml", "prefix = \"org\"\n")

	rc, stdout, stderr := runCLI(t, "compile", "--format", "yaml", "--config", configPath, path)
	require.Equal(t, 0, rc, stderr)

	doc, err := fpschema.DecodeYAML(strings.NewReader(stdout))
	require.NoError(t, err)
	require.Len(t, doc.Messages, 1)
	assert.Equal(t, "org.gfx.Pixel", doc.Messages[0].Name)
}

func TestCompileDirectoryWithExcludes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "schemas/a.proto", "message A {}\n")
	writeFile(t, dir, "schemas/skip/b.proto", "message B {}\n")
	configPath := writeFile(t, dir, "fudgeproto.toml", "exclude = [\"skip\"]\n")

	rc, stdout, stderr := runCLI(t, "compile", "--config", configPath, filepath.Join(dir, "schemas"))
	require.Equal(t, 0, rc, stderr)
	assert.Contains(t, stdout, "message( A )")
	assert.NotContains(t, stdout, "message( B )")
}

func TestCompileSyntaxErrorLocation(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "bad.proto", "message M {\n\tint x = 1\n}\n")
	rc, stdout, stderr := runCLI(t, "compile", path)
	assert.Equal(t, 1, rc)
	assert.Empty(t, stdout)
	assert.True(t,
		strings.HasPrefix(stderr, path+":3:1: E2005: Expected sigil ';'"),
		"stderr: %q", stderr)
}

func TestCompileSemanticError(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "bad.proto", "message M { Missing m = 1; }\n")
	rc, _, stderr := runCLI(t, "compile", path)
	assert.Equal(t, 1, rc)
	assert.Equal(t,
		path+": E3004: Cannot resolve type 'Missing' of field 'm' in message 'M'\n",
		stderr)
}

func TestCompileVerboseDumpsStages(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "pixel.proto", pixelSchema)
	rc, _, stderr := runCLI(t, "compile", "--verbose", path)
	require.Equal(t, 0, rc, stderr)
	assert.Contains(t, stderr, "--- RAW AST ---\n")
	assert.Contains(t, stderr, "--- POST EXTRESOLVE STAGE ---\n")
	assert.Contains(t, stderr, "msg=\"stage complete\" stage=RESOLVE")
}

func TestCompileUnknownFormat(t *testing.T) {
	t.Parallel()

	rc, _, stderr := runCLI(t, "compile", "--format=xml", "x.proto")
	assert.Equal(t, 1, rc)
	assert.Contains(t, stderr, `Unsupported output format "xml"`)
}

func TestCompileBadAliasFlag(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "pixel.proto", pixelSchema)
	rc, _, stderr := runCLI(t, "compile", "--alias", "nocolon", path)
	assert.Equal(t, 1, rc)
	assert.Contains(t, stderr, `invalid alias "nocolon"`)
}

func TestCompileRepeatedAliasScope(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "p.proto", "namespace a { message M {} }\n")
	rc, stdout, stderr := runCLI(t, "compile", "--alias", "a:b", "--alias", "a:c", path)
	assert.Equal(t, 1, rc)
	assert.Empty(t, stdout)
	assert.Equal(t,
		path+": E3008: Alias 'a' collides with an existing alias at segment 0 ('a')\n",
		stderr)
}

func TestCompileConfigAliasClashesWithFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "p.proto", "namespace a { message M {} }\n")
	configPath := writeFile(t, dir, "fudgeproto.toml", "[[alias]]\nfrom = \"a\"\nto = \"b\"\n")

	rc, _, stderr := runCLI(t, "compile", "--config", configPath, "--alias", "a:c", path)
	assert.Equal(t, 1, rc)
	assert.Contains(t, stderr, "E3008: ")
}

func TestCheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeFile(t, dir, "good.proto", pixelSchema)
	bad := writeFile(t, dir, "bad.proto", "message M {} message M {}\n")

	rc, stdout, stderr := runCLI(t, "check", good)
	assert.Equal(t, 0, rc, stderr)
	assert.Empty(t, stdout)

	rc, _, stderr = runCLI(t, "check", good, bad)
	assert.Equal(t, 1, rc)
	assert.Equal(t, bad+": E3001: Message 'M' is already defined\n", stderr)
}

func TestMissingArguments(t *testing.T) {
	t.Parallel()

	rc, _, stderr := runCLI(t, "compile")
	assert.Equal(t, 1, rc)
	assert.Contains(t, stderr, "requires at least 1 arg")
}

func TestCodegenRequiresOutput(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "pixel.proto", pixelSchema)
	rc, _, stderr := runCLI(t, "codegen", path)
	assert.Equal(t, 1, rc)
	assert.Contains(t, stderr, "No output directory specified")
}

func TestCodegenMissingPlugin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "pixel.proto", pixelSchema)
	rc, _, stderr := runCLI(t,
		"codegen", "-o", filepath.Join(dir, "out"),
		"--language", "csharp",
		"--plugin-path", filepath.Join(dir, "plugins"),
		path,
	)
	assert.Equal(t, 1, rc)
	assert.Contains(t, stderr, "fudgeproto-codegen-csharp.wasm not found")
}

func TestLocatePlugin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "first")
	second := filepath.Join(dir, "second")
	want := writeFile(t, second, "fudgeproto-codegen-java.wasm", "")
	writeFile(t, first, "fudgeproto-codegen-cpp.wasm", "")

	got, err := locatePlugin(first+string(filepath.ListSeparator)+second, "java")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPluginRejectsInvalidModule(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, err := newPlugin(ctx, []byte("not wasm"))
	assert.ErrorContains(t, err, "Failed to compile codegen plugin")

	// A valid module with no exports.
	emptyModule := []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}
	_, err = newPlugin(ctx, emptyModule)
	assert.ErrorContains(t, err, "does not export "+pluginAllocate)
}

func TestWriteGeneratedFiles(t *testing.T) {
	t.Parallel()

	outDir := filepath.Join(t.TempDir(), "gen")
	err := writeGeneratedFiles(outDir, []fpschema.OutputFile{
		{Path: []string{"gfx", "Pixel.java"}, Content: "class Pixel {}\n"},
	})
	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(outDir, "gfx", "Pixel.java"))
	require.NoError(t, err)
	assert.Equal(t, "class Pixel {}\n", string(content))

	err = writeGeneratedFiles(outDir, []fpschema.OutputFile{
		{Path: []string{"ok.txt"}},
		{Path: []string{"..", "escape.txt"}},
	})
	assert.ErrorContains(t, err, "bad path component")
	assert.NoFileExists(t, filepath.Join(outDir, "ok.txt"))
}
