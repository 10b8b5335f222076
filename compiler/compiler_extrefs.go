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
	"iter"
	"maps"
	"slices"

	"github.com/vrai/SimpleFudgeProto/ast"
)

// ExtRefs records which top-level messages each top-level message refers
// to, directly and transitively. Names are index keys.
type ExtRefs struct {
	refs     map[string]map[string]struct{}
	closures map[string][]string
}

func NewExtRefs() *ExtRefs {
	return &ExtRefs{
		refs:     make(map[string]map[string]struct{}),
		closures: make(map[string][]string),
	}
}

// Add records a direct reference from one message to another.
func (e *ExtRefs) Add(from, to string) {
	refs, ok := e.refs[from]
	if !ok {
		refs = make(map[string]struct{})
		e.refs[from] = refs
	}
	refs[to] = struct{}{}
}

// Refs returns the direct references of name in sorted order.
func (e *ExtRefs) Refs(name string) []string {
	return slices.Sorted(maps.Keys(e.refs[name]))
}

// Closure returns every message name reachable from name in sorted order,
// excluding name itself.
func (e *ExtRefs) Closure(name string) []string {
	return e.closures[name]
}

// Closures yields the closure of every top-level message in name order.
func (e *ExtRefs) Closures() iter.Seq2[string, []string] {
	return sortedSeq(e.closures)
}

func (e *ExtRefs) NumRefs() int {
	count := 0
	for _, refs := range e.refs {
		count += len(refs)
	}
	return count
}

func (e *ExtRefs) Reset() {
	clear(e.refs)
	clear(e.closures)
}

func (e *ExtRefs) close(name string) {
	visited := map[string]struct{}{name: {}}
	queue := []string{name}
	closure := []string{}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, ref := range e.Refs(current) {
			if _, seen := visited[ref]; seen {
				continue
			}
			visited[ref] = struct{}{}
			closure = append(closure, ref)
			queue = append(queue, ref)
		}
	}
	slices.Sort(closure)
	e.closures[name] = closure
}

// ExtResolver fills an [ExtRefs] from a resolved tree. A reference from a
// nested message counts as a reference from its top-level message, and a
// reference to a nested enum or message counts as a reference to the
// top-level message that contains it. Enums declared outside any message
// create no reference.
type ExtResolver struct {
	walker  *ast.Walker
	index   *Index
	extrefs *ExtRefs
	roots   []string
}

func NewExtResolver(index *Index, extrefs *ExtRefs) *ExtResolver {
	r := &ExtResolver{
		index:   index,
		extrefs: extrefs,
	}
	r.walker = ast.NewWalker(r)
	return r
}

func (*ExtResolver) Name() string {
	return "EXTRESOLVE"
}

func (r *ExtResolver) Reset() {
	r.walker.Reset()
	r.extrefs.Reset()
	r.roots = nil
}

func (r *ExtResolver) Run(root *ast.Namespace) error {
	r.Reset()
	if err := r.walker.Walk(root); err != nil {
		return err
	}
	for _, name := range r.roots {
		r.extrefs.close(name)
	}
	return nil
}

func (r *ExtResolver) VisitNamespace(node *ast.Namespace) error {
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
		if !slices.Contains(r.roots, msg.IDString()) {
			r.roots = append(r.roots, msg.IDString())
		}
		if err := r.walker.Walk(msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *ExtResolver) VisitMessage(node *ast.Message) error {
	for _, parent := range node.Parents() {
		r.addRef(node.ID(), parent)
	}
	if err := ast.WalkAll(r.walker, node.Messages()); err != nil {
		return err
	}
	return ast.WalkAll(r.walker, node.Fields())
}

func (r *ExtResolver) VisitField(node *ast.Field) error {
	fieldType := node.Type()
	if !fieldType.IsUser() {
		return nil
	}
	msg := r.walker.Peek(1)
	def := fieldType.Definition()
	if def == nil {
		return errTypeNotResolved(msg.IDString(), node.Name())
	}
	target := def.ID()
	if def.Kind() == ast.KindEnum {
		target = target.Parent()
		if target == nil {
			return nil
		}
	}
	r.addRef(msg.ID(), target)
	return nil
}

func (r *ExtResolver) VisitEnum(node *ast.Enum) error {
	return errUnexpectedDefinition(r.Name(), node)
}

func (r *ExtResolver) addRef(from, to *ast.Identifier) {
	if _, ok := r.index.Message(to.String()); !ok {
		return
	}
	fromName := r.owner(from)
	toName := r.owner(to)
	if fromName == toName {
		return
	}
	r.extrefs.Add(fromName, toName)
}

// owner returns the name of the top-level message containing the message
// named by id.
func (r *ExtResolver) owner(id *ast.Identifier) string {
	for {
		parent := id.Parent()
		if parent == nil {
			return id.String()
		}
		if _, ok := r.index.Message(parent.String()); !ok {
			return id.String()
		}
		id = parent
	}
}
