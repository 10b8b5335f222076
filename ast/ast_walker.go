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

package ast

// A Visitor receives each definition reached by a [Walker]. The walker has
// already pushed the definition onto its stack when a method is called.
type Visitor interface {
	VisitEnum(node *Enum) error
	VisitField(node *Field) error
	VisitMessage(node *Message) error
	VisitNamespace(node *Namespace) error
}

// A Walker dispatches definitions to a Visitor while tracking the chain of
// definitions currently being visited.
type Walker struct {
	visitor Visitor
	stack   []Definition
}

func NewWalker(visitor Visitor) *Walker {
	return &Walker{visitor: visitor}
}

func (w *Walker) Walk(node Definition) error {
	w.stack = append(w.stack, node)
	defer func() {
		w.stack = w.stack[:len(w.stack)-1]
	}()

	switch node := node.(type) {
	case *Enum:
		return w.visitor.VisitEnum(node)
	case *Field:
		return w.visitor.VisitField(node)
	case *Message:
		return w.visitor.VisitMessage(node)
	case *Namespace:
		return w.visitor.VisitNamespace(node)
	}
	return errUnknownDefinition(node)
}

// WalkAll walks each node in order, stopping at the first error.
func WalkAll[D Definition](w *Walker, nodes []D) error {
	for _, node := range nodes {
		if err := w.Walk(node); err != nil {
			return err
		}
	}
	return nil
}

// Peek returns the definition offset levels up the stack, where zero is
// the definition being visited. It returns nil past the top of the stack.
func (w *Walker) Peek(offset int) Definition {
	index := len(w.stack) - 1 - offset
	if offset < 0 || index < 0 {
		return nil
	}
	return w.stack[index]
}

// Depth is the number of definitions on the stack.
func (w *Walker) Depth() int {
	return len(w.stack)
}

// Stack returns the stack from the outermost definition inwards.
func (w *Walker) Stack() []Definition {
	return w.stack
}

func (w *Walker) Reset() {
	clear(w.stack)
	w.stack = w.stack[:0]
}
