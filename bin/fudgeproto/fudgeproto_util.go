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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/vrai/SimpleFudgeProto/compiler"
	"github.com/vrai/SimpleFudgeProto/internal/config"
	"github.com/vrai/SimpleFudgeProto/syntax"
)

type output struct {
	stdout io.Writer
	stderr io.Writer

	errorStyle    lipgloss.Style
	locationStyle lipgloss.Style
}

func newOutput(stdout, stderr io.Writer) *output {
	renderer := lipgloss.NewRenderer(stderr)
	return &output{
		stdout:        stdout,
		stderr:        stderr,
		errorStyle:    renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		locationStyle: renderer.NewStyle().Bold(true),
	}
}

func (out *output) errorf(format string, args ...any) {
	fmt.Fprintf(out.stderr, "%s %s\n", out.errorStyle.Render("error:"), fmt.Sprintf(format, args...))
}

// reportError prints a compilation error for the schema at path. Syntax
// errors are located by line and column.
func (out *output) reportError(path string, src []byte, err error) {
	location := path + ":"
	var syntaxErr *syntax.Error
	if errors.As(err, &syntaxErr) {
		line, column := syntax.Position(src, syntaxErr.Span())
		location = fmt.Sprintf("%s:%d:%d:", path, line, column)
	}
	fmt.Fprintf(out.stderr, "%s %v\n", out.locationStyle.Render(location), err)
}

func (out *output) logger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(out.stderr, &slog.HandlerOptions{Level: level}))
}

// compileFlags are shared by every command that compiles schemas.
type compileFlags struct {
	configPath string
	aliases    []string
	prefix     string
	verbose    bool
}

func (f *compileFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.configPath, "config", "", "Project configuration file (default ./"+config.FileName+" if present)")
	flags.StringArrayVar(&f.aliases, "alias", nil, "Rename output scope FROM to TO, written FROM:TO (repeatable)")
	flags.StringVar(&f.prefix, "prefix", "", "Scope prepended to output names not matched by an alias")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Log each stage and dump the tree after it")
}

// loadConfig reads the project configuration and applies command line
// overrides to it.
func (f *compileFlags) loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	path := f.configPath
	if path == "" {
		if _, err := os.Stat(config.FileName); err == nil {
			path = config.FileName
		}
	}
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	for _, raw := range f.aliases {
		alias, err := config.ParseAlias(raw)
		if err != nil {
			return nil, err
		}
		cfg.Aliases = append(cfg.Aliases, alias)
	}
	if f.prefix != "" {
		cfg.Prefix = f.prefix
	}
	return cfg, nil
}

func (f *compileFlags) compileOptions(out *output, cfg *config.Config) []compiler.CompileOption {
	opts := []compiler.CompileOption{
		compiler.WithLogger(out.logger(f.verbose)),
	}
	for _, alias := range cfg.Aliases {
		opts = append(opts, compiler.WithAlias(alias.From, alias.To))
	}
	if cfg.Prefix != "" {
		opts = append(opts, compiler.WithPrefix(cfg.Prefix))
	}
	if f.verbose {
		opts = append(opts, compiler.WithStageDump(out.stderr))
	}
	return opts
}

// compileFile parses and compiles one schema, reporting any error.
func compileFile(
	out *output,
	path string,
	opts []compiler.CompileOption,
) (*compiler.CompileResult, bool) {
	src, err := os.ReadFile(path)
	if err != nil {
		out.errorf("%v", err)
		return nil, false
	}
	parsed, err := syntax.Parse(src)
	if err != nil {
		out.reportError(path, src, err)
		return nil, false
	}
	result, err := compiler.Compile(parsed, opts...)
	if err != nil {
		out.reportError(path, src, err)
		return nil, false
	}
	return result, true
}

// writeOutput writes data to path, or to stdout if path is empty.
func (out *output) writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := out.stdout.Write(data)
		return err
	}
	openFlags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	fp, err := os.OpenFile(path, openFlags, 0o666)
	if err != nil {
		return err
	}
	_, writeErr := fp.Write(data)
	closeErr := fp.Close()
	if writeErr != nil {
		return writeErr
	}
	return closeErr
}
