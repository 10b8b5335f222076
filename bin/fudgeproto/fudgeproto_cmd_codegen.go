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
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/vrai/SimpleFudgeProto/encoding/fpschema"
)

const pluginPathEnv = "FUDGEPROTO_CODEGEN_PLUGIN_PATH"

type cmdCodegen struct {
	compileFlags
	outDir     string
	language   string
	pluginPath string
}

func (*cmdCodegen) help() *commandHelp {
	return &commandHelp{
		usage:   "codegen [flags] SCHEMA",
		summary: "Generate source code for a schema with a backend plugin",
		minArgs: 1,
	}
}

func (cmd *cmdCodegen) flags(flags *pflag.FlagSet) {
	cmd.compileFlags.register(flags)
	flags.StringVarP(&cmd.outDir, "output", "o", "", "Directory to write generated files into")
	flags.StringVarP(&cmd.language, "language", "l", "", "Target language, selecting the plugin fudgeproto-codegen-LANGUAGE.wasm")
	flags.StringVar(&cmd.pluginPath, "plugin-path", "", "Colon-separated plugin search path (default $"+pluginPathEnv+")")
}

func (cmd *cmdCodegen) run(ctx context.Context, out *output, argv []string) int {
	if len(argv) != 1 {
		out.errorf("codegen takes exactly one schema file, got %d", len(argv))
		return 1
	}
	cfg, err := cmd.loadConfig()
	if err != nil {
		out.errorf("%v", err)
		return 1
	}
	outDir := cmd.outDir
	if outDir == "" {
		outDir = cfg.Codegen.Output
	}
	if outDir == "" {
		out.errorf("No output directory specified (set --output=)")
		return 1
	}
	language := cmd.language
	if language == "" {
		language = cfg.Codegen.Language
	}
	if language == "" {
		language = "java"
	}
	searchPath := cmd.pluginPath
	if searchPath == "" {
		searchPath = cfg.Codegen.PluginPath
	}

	pluginPath, err := locatePlugin(searchPath, language)
	if err != nil {
		out.errorf("%v", err)
		return 1
	}

	result, ok := compileFile(out, argv[0], cmd.compileOptions(out, cfg))
	if !ok {
		return 1
	}
	request := &fpschema.CodegenRequest{
		Language: language,
		Document: fpschema.New(result),
	}
	requestBuf, err := request.Marshal()
	if err != nil {
		out.errorf("%v", err)
		return 1
	}

	plugin, err := loadPlugin(ctx, pluginPath)
	if err != nil {
		out.errorf("%v", err)
		return 1
	}
	defer plugin.close(ctx)

	response, err := plugin.generate(ctx, requestBuf)
	if err != nil {
		out.errorf("%v", err)
		return 1
	}
	if response.Error != "" {
		out.errorf("%s", strings.TrimRight(response.Error, "\n"))
		return 1
	}
	if len(response.Files) == 0 {
		out.errorf("Plugin did not generate any output files")
		return 1
	}
	if err := writeGeneratedFiles(outDir, response.Files); err != nil {
		out.errorf("%v", err)
		return 1
	}
	return 0
}

// locatePlugin finds the plugin for language on a colon-separated search
// path, falling back to the environment.
func locatePlugin(searchPath, language string) (string, error) {
	if searchPath == "" {
		searchPath = os.Getenv(pluginPathEnv)
	}
	if searchPath == "" {
		return "", fmt.Errorf("No plugin path set, use --plugin-path= or $%s", pluginPathEnv)
	}
	basename := fmt.Sprintf("fudgeproto-codegen-%s.wasm", language)
	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			continue
		}
		pluginPath := filepath.Join(dir, basename)
		if _, err := os.Stat(pluginPath); err == nil {
			return pluginPath, nil
		}
	}
	return "", fmt.Errorf("Codegen plugin %s not found in plugin path", basename)
}

// writeGeneratedFiles validates every output path before writing any file.
func writeGeneratedFiles(outDir string, files []fpschema.OutputFile) error {
	for ii := range files {
		if err := files[ii].Validate(); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	for ii := range files {
		outPath := files[ii].Join(outDir)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(outPath, []byte(files[ii].Content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
