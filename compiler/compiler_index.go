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

// Index is the symbol table of a compiled document, keyed by fully
// qualified name. Enum and message names never overlap.
type Index struct {
	enums    map[string]*ast.Enum
	messages map[string]*ast.Message
}

func NewIndex() *Index {
	return &Index{
		enums:    make(map[string]*ast.Enum),
		messages: make(map[string]*ast.Message),
	}
}

func (idx *Index) Enum(name string) (*ast.Enum, bool) {
	enum, ok := idx.enums[name]
	return enum, ok
}

func (idx *Index) Message(name string) (*ast.Message, bool) {
	msg, ok := idx.messages[name]
	return msg, ok
}

// Find returns the enum or message named name, or nil.
func (idx *Index) Find(name string) ast.Definition {
	if enum, ok := idx.enums[name]; ok {
		return enum
	}
	if msg, ok := idx.messages[name]; ok {
		return msg
	}
	return nil
}

func (idx *Index) NumEnums() int {
	return len(idx.enums)
}

func (idx *Index) NumMessages() int {
	return len(idx.messages)
}

// Enums yields every enum in name order.
func (idx *Index) Enums() iter.Seq2[string, *ast.Enum] {
	return sortedSeq(idx.enums)
}

// Messages yields every message in name order.
func (idx *Index) Messages() iter.Seq2[string, *ast.Message] {
	return sortedSeq(idx.messages)
}

func sortedSeq[V any](m map[string]V) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, name := range slices.Sorted(maps.Keys(m)) {
			if !yield(name, m[name]) {
				return
			}
		}
	}
}

// Rekey renames entries in one step: each key found in renames moves to
// its new name, other keys stay put. Conflicts are checked against the
// final key set only, so the order of renames does not matter.
func (idx *Index) Rekey(renames map[string]string) error {
	newName := func(name string) string {
		if to, ok := renames[name]; ok {
			return to
		}
		return name
	}
	owners := make(map[string]string, len(idx.enums)+len(idx.messages))
	claim := func(from string) error {
		to := newName(from)
		if prev, taken := owners[to]; taken {
			// Report the entry that was moved onto the other.
			if from == to {
				from = prev
			}
			return errAliasedNameConflict(from, to)
		}
		owners[to] = from
		return nil
	}
	for _, name := range slices.Sorted(maps.Keys(idx.enums)) {
		if err := claim(name); err != nil {
			return err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(idx.messages)) {
		if err := claim(name); err != nil {
			return err
		}
	}

	enums := make(map[string]*ast.Enum, len(idx.enums))
	for name, enum := range idx.enums {
		enums[newName(name)] = enum
	}
	messages := make(map[string]*ast.Message, len(idx.messages))
	for name, msg := range idx.messages {
		messages[newName(name)] = msg
	}
	idx.enums = enums
	idx.messages = messages
	return nil
}

func (idx *Index) Reset() {
	clear(idx.enums)
	clear(idx.messages)
}

// Indexer fills an Index from a flattened tree, then checks that field
// names and ordinals are unique within each message.
//
// An extern message is a forward declaration: a later definition of the
// same message replaces it, and an extern declaration of an already
// defined message is ignored.
type Indexer struct {
	walker *ast.Walker
	index  *Index
}

func NewIndexer(index *Index) *Indexer {
	i := &Indexer{index: index}
	i.walker = ast.NewWalker(i)
	return i
}

func (*Indexer) Name() string {
	return "INDEX"
}

func (i *Indexer) Reset() {
	i.walker.Reset()
	i.index.Reset()
}

func (i *Indexer) Run(root *ast.Namespace) error {
	i.Reset()
	if err := i.walker.Walk(root); err != nil {
		return err
	}
	for name, msg := range i.index.Messages() {
		if err := checkFields(name, msg); err != nil {
			return err
		}
	}
	return nil
}

func (i *Indexer) VisitNamespace(node *ast.Namespace) error {
	if i.walker.Depth() > 1 {
		return errNamespaceNotFlattened(i.Name(), node)
	}
	if err := checkRoot(i.Name(), node); err != nil {
		return err
	}
	return ast.WalkAll(i.walker, node.Content())
}

func (i *Indexer) VisitEnum(node *ast.Enum) error {
	name := node.IDString()
	if existing := i.index.Find(name); existing != nil {
		return errTypeNameConflict(name, existing.Kind(), ast.KindEnum)
	}
	i.index.enums[name] = node
	return nil
}

func (i *Indexer) VisitMessage(node *ast.Message) error {
	name := node.IDString()
	if existing, ok := i.index.enums[name]; ok {
		return errTypeNameConflict(name, existing.Kind(), ast.KindMessage)
	}
	if existing, ok := i.index.messages[name]; ok {
		if node.Extern() {
			return nil
		}
		if !existing.Extern() {
			return errMessageAlreadyDefined(name)
		}
	}
	i.index.messages[name] = node

	if err := ast.WalkAll(i.walker, node.Enums()); err != nil {
		return err
	}
	return ast.WalkAll(i.walker, node.Messages())
}

func (i *Indexer) VisitField(node *ast.Field) error {
	return errUnexpectedDefinition(i.Name(), node)
}

func checkFields(name string, msg *ast.Message) error {
	names := make(map[string]struct{}, len(msg.Fields()))
	ordinals := make(map[int]string)
	for _, field := range msg.Fields() {
		if _, dup := names[field.Name()]; dup {
			return errFieldNameConflict(name, field.Name())
		}
		names[field.Name()] = struct{}{}

		ordinal, ok := field.Ordinal()
		if !ok {
			continue
		}
		if prev, dup := ordinals[ordinal]; dup {
			return errFieldOrdinalConflict(name, ordinal, prev, field.Name())
		}
		ordinals[ordinal] = field.Name()
	}
	return nil
}
