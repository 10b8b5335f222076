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

// Package config reads fudgeproto.toml project files.
package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"
)

const FileName = "fudgeproto.toml"

type Config struct {
	Prefix  string   `toml:"prefix"`
	Aliases []Alias  `toml:"alias"`
	Exclude []string `toml:"exclude"`
	Codegen Codegen  `toml:"codegen"`
}

type Alias struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

type Codegen struct {
	Language   string `toml:"language"`
	Output     string `toml:"output"`
	PluginPath string `toml:"plugin_path"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

func Parse(data string) (*Config, error) {
	var cfg Config
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	for _, alias := range cfg.Aliases {
		if alias.From == "" || alias.To == "" {
			return nil, fmt.Errorf("alias %q -> %q must name both scopes", alias.From, alias.To)
		}
	}
	if cfg.Codegen.Language == "" {
		cfg.Codegen.Language = "java"
	}
	return &cfg, nil
}

// ParseAlias reads an alias written on the command line as FROM:TO.
func ParseAlias(s string) (Alias, error) {
	from, to, ok := strings.Cut(s, ":")
	if !ok || from == "" || to == "" {
		return Alias{}, fmt.Errorf("invalid alias %q, expected FROM:TO", s)
	}
	return Alias{From: from, To: to}, nil
}

// Excluder matches file and directory base names against exclude globs.
type Excluder struct {
	globs []glob.Glob
}

func NewExcluder(patterns []string) (*Excluder, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return &Excluder{globs: globs}, nil
}

func (e *Excluder) Match(name string) bool {
	for _, g := range e.globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// SchemaFiles expands paths into the schema files they name. Directories
// are walked for *.proto files, skipping excluded names. Files named
// directly are always included.
func (e *Excluder) SchemaFiles(paths []string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			base := filepath.Base(path)
			if d.IsDir() {
				if path != root && e.Match(base) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".proto" || e.Match(base) {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
