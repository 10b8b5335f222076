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

// Resolver binds every user field type and every message parent to its
// definition in the index, replacing the written name with the
// definition's qualified name.
type Resolver struct {
	walker *ast.Walker
	index  *Index
}

func NewResolver(index *Index) *Resolver {
	r := &Resolver{index: index}
	r.walker = ast.NewWalker(r)
	return r
}

func (*Resolver) Name() string {
	return "RESOLVE"
}

func (r *Resolver) Reset() {
	r.walker.Reset()
}

func (r *Resolver) Run(root *ast.Namespace) error {
	r.Reset()
	return r.walker.Walk(root)
}

func (r *Resolver) VisitNamespace(node *ast.Namespace) error {
	if r.walker.Depth() > 1 {
		return errNamespaceNotFlattened(r.Name(), node)
	}
	if err := checkRoot(r.Name(), node); err != nil {
		return err
	}
	for _, child := range node.Content() {
		msg, ok := child.(*ast.Message)
		if !ok {
			continue
		}
		if err := r.walker.Walk(msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) VisitMessage(node *ast.Message) error {
	for ii, parent := range node.Parents() {
		def := r.findType(parent, node.ID())
		if def == nil {
			return errUnresolvedParent(node.IDString(), parent)
		}
		if def.Kind() != ast.KindMessage {
			return errParentNotMessage(node.IDString(), def)
		}
		if err := node.ReplaceParent(ii, def.ID().Clone()); err != nil {
			return err
		}
	}
	if err := ast.WalkAll(r.walker, node.Messages()); err != nil {
		return err
	}
	return ast.WalkAll(r.walker, node.Fields())
}

func (r *Resolver) VisitField(node *ast.Field) error {
	msg := r.walker.Peek(1)
	if ordinal, ok := node.Ordinal(); ok {
		if ordinal < ast.MinOrdinal || ordinal > ast.MaxOrdinal {
			return errOrdinalOutOfRange(msg.IDString(), node.Name(), ordinal)
		}
	}

	fieldType := node.Type()
	if !fieldType.IsUser() {
		return nil
	}
	def := r.findType(fieldType.Name(), msg.ID())
	if def == nil {
		return errUnresolvedType(msg.IDString(), node.Name(), fieldType.Name())
	}
	if err := fieldType.ResetName(def.ID().Clone()); err != nil {
		return err
	}
	return fieldType.SetDefinition(def)
}

func (r *Resolver) VisitEnum(node *ast.Enum) error {
	return errUnexpectedDefinition(r.Name(), node)
}

// findType looks name up as written, then in scope and each enclosing
// scope from the innermost outwards.
func (r *Resolver) findType(name *ast.Identifier, scope *ast.Identifier) ast.Definition {
	if def := r.index.Find(name.String()); def != nil {
		return def
	}
	prefix := scope.Clone()
	for prefix.Len() > 0 {
		candidate := prefix.Clone()
		candidate.Extend(name)
		if def := r.index.Find(candidate.String()); def != nil {
			return def
		}
		// prefix is not empty, so Pop cannot fail.
		_ = prefix.Pop()
	}
	return nil
}
