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
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/vrai/SimpleFudgeProto/compiler"
	"github.com/vrai/SimpleFudgeProto/encoding/fpschema"
	"github.com/vrai/SimpleFudgeProto/encoding/fptext"
	"github.com/vrai/SimpleFudgeProto/internal/config"
)

type cmdCompile struct {
	compileFlags
	outPath string
	format  string
}

func (*cmdCompile) help() *commandHelp {
	return &commandHelp{
		usage:   "compile [flags] PATH...",
		summary: "Compile schemas and print their resolved description",
		minArgs: 1,
	}
}

func (cmd *cmdCompile) flags(flags *pflag.FlagSet) {
	cmd.compileFlags.register(flags)
	flags.StringVarP(&cmd.outPath, "output", "o", "", "Write output to this file instead of stdout")
	flags.StringVarP(&cmd.format, "format", "f", "text", "Output format: text, json or yaml")
}

func (cmd *cmdCompile) run(ctx context.Context, out *output, argv []string) int {
	var encode func(w io.Writer, result *compiler.CompileResult) error
	switch cmd.format {
	case "text", "fptext":
		encode = encodeText
	case "json":
		encode = func(w io.Writer, result *compiler.CompileResult) error {
			return fpschema.EncodeJSON(w, fpschema.New(result))
		}
	case "yaml", "yml":
		encode = func(w io.Writer, result *compiler.CompileResult) error {
			return fpschema.EncodeYAML(w, fpschema.New(result))
		}
	default:
		out.errorf("Unsupported output format %q (choose 'text', 'json' or 'yaml')", cmd.format)
		return 1
	}

	files, opts, ok := cmd.prepare(out, argv)
	if !ok {
		return 1
	}

	var buf bytes.Buffer
	failed := false
	for _, path := range files {
		result, ok := compileFile(out, path, opts)
		if !ok {
			failed = true
			continue
		}
		if len(files) > 1 && cmd.format != "json" {
			writeSeparator(&buf, cmd.format, path)
		}
		if err := encode(&buf, result); err != nil {
			out.errorf("%v", err)
			return 1
		}
	}
	if failed {
		return 1
	}
	if err := out.writeOutput(cmd.outPath, buf.Bytes()); err != nil {
		out.errorf("%v", err)
		return 1
	}
	return 0
}

// prepare loads configuration and expands argv into schema files.
func (f *compileFlags) prepare(out *output, argv []string) ([]string, []compiler.CompileOption, bool) {
	cfg, err := f.loadConfig()
	if err != nil {
		out.errorf("%v", err)
		return nil, nil, false
	}
	excluder, err := config.NewExcluder(cfg.Exclude)
	if err != nil {
		out.errorf("%v", err)
		return nil, nil, false
	}
	files, err := excluder.SchemaFiles(argv)
	if err != nil {
		out.errorf("%v", err)
		return nil, nil, false
	}
	if len(files) == 0 {
		out.errorf("No schema files found")
		return nil, nil, false
	}
	return files, f.compileOptions(out, cfg), true
}

func writeSeparator(w io.Writer, format, path string) {
	switch format {
	case "yaml", "yml":
		fmt.Fprintf(w, "--- # %s\n", path)
	default:
		fmt.Fprintf(w, "# %s\n", path)
	}
}

func encodeText(w io.Writer, result *compiler.CompileResult) error {
	if err := fptext.WriteTree(w, result.Root); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "--- INDEX ---\n"); err != nil {
		return err
	}
	if err := fptext.WriteIndex(w, result.Index); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "--- EXTREFS ---\n"); err != nil {
		return err
	}
	return fptext.WriteExtRefs(w, result.ExtRefs)
}

type cmdCheck struct {
	compileFlags
}

func (*cmdCheck) help() *commandHelp {
	return &commandHelp{
		usage:   "check [flags] PATH...",
		summary: "Compile schemas and report errors only",
		minArgs: 1,
	}
}

func (cmd *cmdCheck) flags(flags *pflag.FlagSet) {
	cmd.compileFlags.register(flags)
}

func (cmd *cmdCheck) run(ctx context.Context, out *output, argv []string) int {
	files, opts, ok := cmd.prepare(out, argv)
	if !ok {
		return 1
	}
	rc := 0
	for _, path := range files {
		if _, ok := compileFile(out, path, opts); !ok {
			rc = 1
		}
	}
	return rc
}
