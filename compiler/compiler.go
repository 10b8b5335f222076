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

// Package compiler runs the semantic passes that turn a parsed schema into
// a qualified, resolved, and dependency-closed symbol table.
//
// The passes run in a fixed order, each relying on the shape left by the
// one before it:
//
//	RENAME      qualify enum and message names with their enclosing scopes
//	FLATTEN     hoist namespace content into the root namespace
//	INDEX       build the symbol table, merging extern declarations
//	RESOLVE     resolve field types and message parents
//	ALIAS       rewrite output names through the alias map
//	EXTRESOLVE  compute each top-level message's dependencies
package compiler

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/vrai/SimpleFudgeProto/ast"
	"github.com/vrai/SimpleFudgeProto/encoding/fptext"
)

// A Pass is one stage of compilation. Run may be called again on another
// tree after Reset.
type Pass interface {
	Name() string
	Run(root *ast.Namespace) error
	Reset()
}

type CompileOption interface {
	apply(*CompileOptions)
}

type compileOption func(*CompileOptions)

func (f compileOption) apply(opts *CompileOptions) { f(opts) }

type alias struct {
	from, to string
}

type CompileOptions struct {
	logger  *slog.Logger
	dump    io.Writer
	aliases []alias
	prefix  string
}

func WithLogger(logger *slog.Logger) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.logger = logger
	})
}

// WithStageDump writes the tree to w before the first stage and after
// every stage.
func WithStageDump(w io.Writer) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.dump = w
	})
}

// WithAlias renames the dotted scope from to the dotted scope to in output
// names. Wire names are not affected.
func WithAlias(from, to string) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.aliases = append(opts.aliases, alias{from, to})
	})
}

// WithAliases is WithAlias for each entry of aliases, in key order.
func WithAliases(aliases map[string]string) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		for _, from := range slices.Sorted(maps.Keys(aliases)) {
			opts.aliases = append(opts.aliases, alias{from, aliases[from]})
		}
	})
}

// WithPrefix prepends prefix to every output name not matched by an alias.
func WithPrefix(prefix string) CompileOption {
	return compileOption(func(opts *CompileOptions) {
		opts.prefix = prefix
	})
}

type CompileResult struct {
	Root    *ast.Namespace
	Index   *Index
	ExtRefs *ExtRefs
}

func Compile(root *ast.Namespace, opts ...CompileOption) (*CompileResult, error) {
	return NewCompileOptions(opts...).Compile(root)
}

func NewCompileOptions(opts ...CompileOption) *CompileOptions {
	compileOptions := &CompileOptions{}
	for _, opt := range opts {
		opt.apply(compileOptions)
	}
	if compileOptions.logger == nil {
		compileOptions.logger = slog.New(slog.DiscardHandler)
	}
	return compileOptions
}

// NewMutator builds the identifier mutator for the configured aliases
// and prefix.
func (opts *CompileOptions) NewMutator() (*Mutator, error) {
	mutator := NewMutator()
	for _, alias := range opts.aliases {
		from := ast.ParseIdentifier(alias.from, ".")
		to := ast.ParseIdentifier(alias.to, ".")
		if _, err := mutator.Add(from, to); err != nil {
			return nil, err
		}
	}
	if opts.prefix != "" {
		if err := mutator.AddPrefix(ast.ParseIdentifier(opts.prefix, ".")); err != nil {
			return nil, err
		}
	}
	return mutator, nil
}

// Compile runs every pass over root, modifying it in place. The first
// error stops compilation.
func (opts *CompileOptions) Compile(root *ast.Namespace) (*CompileResult, error) {
	mutator, err := opts.NewMutator()
	if err != nil {
		return nil, err
	}

	result := &CompileResult{
		Root:    root,
		Index:   NewIndex(),
		ExtRefs: NewExtRefs(),
	}
	passes := []Pass{
		NewRenamer(),
		NewFlattener(),
		NewIndexer(result.Index),
		NewResolver(result.Index),
		NewAliaser(result.Index, mutator),
		NewExtResolver(result.Index, result.ExtRefs),
	}

	if err := opts.dumpStage("--- RAW AST ---", root); err != nil {
		return nil, err
	}
	for _, pass := range passes {
		if err := pass.Run(root); err != nil {
			opts.logger.Debug("stage failed", "stage", pass.Name(), "err", err)
			return nil, err
		}
		opts.logger.Debug("stage complete", "stage", pass.Name())

		if err := opts.dumpStage(fmt.Sprintf("--- POST %s STAGE ---", pass.Name()), root); err != nil {
			return nil, err
		}
		if opts.dump == nil {
			continue
		}
		switch pass.(type) {
		case *Indexer:
			err = fptext.WriteIndex(opts.dump, result.Index)
		case *ExtResolver:
			err = fptext.WriteExtRefs(opts.dump, result.ExtRefs)
		}
		if err != nil {
			return nil, err
		}
	}
	opts.logger.Debug(
		"compiled",
		"enums", result.Index.NumEnums(),
		"messages", result.Index.NumMessages(),
	)
	return result, nil
}

func (opts *CompileOptions) dumpStage(header string, root *ast.Namespace) error {
	if opts.dump == nil {
		return nil
	}
	if _, err := fmt.Fprintln(opts.dump, header); err != nil {
		return err
	}
	return fptext.WriteTree(opts.dump, root)
}

// checkRoot verifies that a pass was started on the anonymous root.
func checkRoot(pass string, root *ast.Namespace) error {
	if root.HasID() {
		return errRootNotAnonymous(pass, root)
	}
	return nil
}
