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

package compiler

import (
	"github.com/vrai/SimpleFudgeProto/ast"
)

// Renamer replaces the name of every enum and message with its fully
// qualified name: the names of all enclosing namespaces and messages
// followed by its own.
type Renamer struct {
	walker *ast.Walker
}

func NewRenamer() *Renamer {
	r := &Renamer{}
	r.walker = ast.NewWalker(r)
	return r
}

func (*Renamer) Name() string {
	return "RENAME"
}

func (r *Renamer) Reset() {
	r.walker.Reset()
}

func (r *Renamer) Run(root *ast.Namespace) error {
	r.Reset()
	return r.walker.Walk(root)
}

func (r *Renamer) VisitNamespace(node *ast.Namespace) error {
	if r.walker.Depth() == 1 {
		if err := checkRoot(r.Name(), node); err != nil {
			return err
		}
	}
	return ast.WalkAll(r.walker, node.Content())
}

func (r *Renamer) VisitEnum(node *ast.Enum) error {
	return r.qualify(node)
}

// VisitMessage qualifies nested definitions while the message still has
// its short name, so that each scope is counted once.
func (r *Renamer) VisitMessage(node *ast.Message) error {
	if err := ast.WalkAll(r.walker, node.Enums()); err != nil {
		return err
	}
	if err := ast.WalkAll(r.walker, node.Messages()); err != nil {
		return err
	}
	return r.qualify(node)
}

func (r *Renamer) VisitField(node *ast.Field) error {
	return errUnexpectedDefinition(r.Name(), node)
}

func (r *Renamer) qualify(node ast.Definition) error {
	if !node.HasID() {
		return errAnonymousDefinition(r.Name(), node)
	}
	var qualified *ast.Identifier
	for _, def := range r.walker.Stack() {
		if !def.HasID() {
			continue
		}
		if qualified == nil {
			qualified = def.ID().Clone()
		} else {
			qualified.Extend(def.ID())
		}
	}
	return node.ResetID(qualified)
}
