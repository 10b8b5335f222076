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

// Aliaser rewrites the scope of every enum and message name through a
// [Mutator], keeping the index keyed by the new names. Each message keeps
// its pre-alias name as its original ID.
//
// The index is rekeyed and field type names are rewritten once every
// definition has its new name.
type Aliaser struct {
	walker   *ast.Walker
	index    *Index
	mutator  *Mutator
	messages []*ast.Message
	renames  map[string]string
}

func NewAliaser(index *Index, mutator *Mutator) *Aliaser {
	a := &Aliaser{
		index:   index,
		mutator: mutator,
	}
	a.walker = ast.NewWalker(a)
	return a
}

func (*Aliaser) Name() string {
	return "ALIAS"
}

func (a *Aliaser) Reset() {
	a.walker.Reset()
	a.messages = nil
	a.renames = make(map[string]string)
}

func (a *Aliaser) Run(root *ast.Namespace) error {
	a.Reset()
	if err := a.walker.Walk(root); err != nil {
		return err
	}
	if err := a.index.Rekey(a.renames); err != nil {
		return err
	}
	for _, msg := range a.messages {
		for _, field := range msg.Fields() {
			fieldType := field.Type()
			if !fieldType.IsUser() {
				continue
			}
			def := fieldType.Definition()
			if def == nil {
				return errTypeNotResolved(msg.IDString(), field.Name())
			}
			if err := fieldType.ResetName(def.ID().Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Aliaser) VisitNamespace(node *ast.Namespace) error {
	if a.walker.Depth() > 1 {
		return errNamespaceNotFlattened(a.Name(), node)
	}
	if err := checkRoot(a.Name(), node); err != nil {
		return err
	}
	return ast.WalkAll(a.walker, node.Content())
}

func (a *Aliaser) VisitEnum(node *ast.Enum) error {
	return a.rename(node)
}

func (a *Aliaser) VisitMessage(node *ast.Message) error {
	node.SaveOriginalID()
	if err := a.rename(node); err != nil {
		return err
	}
	for ii, parent := range node.Parents() {
		if err := node.ReplaceParent(ii, a.mutator.MutatedCloneStem(parent)); err != nil {
			return err
		}
	}
	if err := ast.WalkAll(a.walker, node.Enums()); err != nil {
		return err
	}
	if err := ast.WalkAll(a.walker, node.Messages()); err != nil {
		return err
	}
	a.messages = append(a.messages, node)
	return nil
}

func (a *Aliaser) VisitField(node *ast.Field) error {
	return errUnexpectedDefinition(a.Name(), node)
}

// rename gives node its aliased name and records the move of its index
// entry. An entry belonging to another node, as for an extern declaration
// of a defined message, is left to that node.
func (a *Aliaser) rename(node ast.Definition) error {
	oldName := node.IDString()
	newID := a.mutator.MutatedCloneStem(node.ID())
	if a.index.Find(oldName) == node {
		a.renames[oldName] = newID.String()
	}
	return node.ResetID(newID)
}
