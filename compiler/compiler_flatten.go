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

// Flattener moves the content of every named namespace into the root, so
// that the root holds only enums and messages.
type Flattener struct {
	walker *ast.Walker
}

func NewFlattener() *Flattener {
	f := &Flattener{}
	f.walker = ast.NewWalker(f)
	return f
}

func (*Flattener) Name() string {
	return "FLATTEN"
}

func (f *Flattener) Reset() {
	f.walker.Reset()
}

func (f *Flattener) Run(root *ast.Namespace) error {
	f.Reset()
	return f.walker.Walk(root)
}

func (f *Flattener) VisitNamespace(node *ast.Namespace) error {
	if f.walker.Depth() == 1 {
		if err := checkRoot(f.Name(), node); err != nil {
			return err
		}
	} else if !node.HasID() {
		return errAnonymousDefinition(f.Name(), node)
	}

	// Children append their own content to node while this loop runs.
	// Ranging over the original slice visits only the original children.
	for _, child := range node.Content() {
		if child.Kind() == ast.KindEnum {
			continue
		}
		if err := f.walker.Walk(child); err != nil {
			return err
		}
	}
	node.RemoveContentFunc(isNamespace)

	parent, ok := f.walker.Peek(1).(*ast.Namespace)
	if !ok {
		return nil
	}
	for _, child := range node.Content() {
		if err := parent.AddContent(child); err != nil {
			return err
		}
	}
	node.Clear()
	return nil
}

func (f *Flattener) VisitMessage(node *ast.Message) error {
	if !node.HasID() {
		return errAnonymousDefinition(f.Name(), node)
	}
	return nil
}

func (f *Flattener) VisitEnum(node *ast.Enum) error {
	return errUnexpectedDefinition(f.Name(), node)
}

func (f *Flattener) VisitField(node *ast.Field) error {
	return errUnexpectedDefinition(f.Name(), node)
}

func isNamespace(def ast.Definition) bool {
	return def.Kind() == ast.KindNamespace
}
