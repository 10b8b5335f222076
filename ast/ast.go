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

// Package ast defines the schema tree shared by the parser and the
// compiler passes.
//
// A Definition is one of [*Enum], [*Field], [*Message], or [*Namespace].
// Definitions are shared by pointer between the tree, the compiler's index,
// and the field types that resolve to them.
package ast

import (
	"fmt"
	"math"
	"slices"
)

type Kind uint8

const (
	KindEnum Kind = iota + 1
	KindField
	KindMessage
	KindNamespace
)

func (k Kind) String() string {
	switch k {
	case KindEnum:
		return "enum"
	case KindField:
		return "field"
	case KindMessage:
		return "message"
	case KindNamespace:
		return "namespace"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

type Definition interface {
	Kind() Kind

	// ID returns the definition's identifier, or nil if it is anonymous.
	ID() *Identifier
	HasID() bool
	IDString() string

	// SetID names an anonymous definition.
	SetID(id *Identifier) error

	// ResetID replaces the identifier of a named definition.
	ResetID(id *Identifier) error

	definition_() *definition
}

type definition struct {
	id *Identifier
}

func (d *definition) definition_() *definition {
	return d
}

func (d *definition) ID() *Identifier {
	return d.id
}

func (d *definition) HasID() bool {
	return d.id != nil
}

func (d *definition) IDString() string {
	return d.id.String()
}

func (d *definition) SetID(id *Identifier) error {
	if d.id != nil {
		return errIdentifierAlreadySet(d.id)
	}
	d.id = id
	return nil
}

func (d *definition) ResetID(id *Identifier) error {
	if d.id == nil {
		return errIdentifierNotSet()
	}
	d.id = id
	return nil
}

type EnumItem struct {
	Name  string
	Value int32
}

type Enum struct {
	definition
	items []EnumItem
}

func NewEnum(id *Identifier) *Enum {
	return &Enum{definition: definition{id: id}}
}

func (*Enum) Kind() Kind {
	return KindEnum
}

// Append adds an item valued one more than the previous item, or zero if
// the enum is empty. The value must fit in an int32.
func (e *Enum) Append(name string) error {
	var value int32
	if len(e.items) > 0 {
		previous := e.items[len(e.items)-1].Value
		if previous == math.MaxInt32 {
			return errEnumValueOverflow(e.IDString(), name)
		}
		value = previous + 1
	}
	e.items = append(e.items, EnumItem{Name: name, Value: value})
	return nil
}

func (e *Enum) AppendValue(name string, value int32) {
	e.items = append(e.items, EnumItem{Name: name, Value: value})
}

func (e *Enum) Items() []EnumItem {
	return e.items
}

func (e *Enum) Len() int {
	return len(e.items)
}

type Message struct {
	definition
	extern     bool
	originalID *Identifier
	parents    []*Identifier
	enums      []*Enum
	fields     []*Field
	messages   []*Message
}

func NewMessage(id *Identifier, extern bool) *Message {
	return &Message{
		definition: definition{id: id},
		extern:     extern,
	}
}

func (*Message) Kind() Kind {
	return KindMessage
}

func (m *Message) Extern() bool {
	return m.extern
}

// AddContent adds a nested enum, field, or message.
func (m *Message) AddContent(content Definition) error {
	if content == nil {
		return errNilContent(m)
	}
	if m.extern {
		return errExternContent(m.IDString())
	}
	switch content := content.(type) {
	case *Enum:
		m.enums = append(m.enums, content)
	case *Field:
		m.fields = append(m.fields, content)
	case *Message:
		if content == m {
			return errInvalidContent(m, content)
		}
		m.messages = append(m.messages, content)
	default:
		return errInvalidContent(m, content)
	}
	return nil
}

func (m *Message) Enums() []*Enum {
	return m.enums
}

func (m *Message) Fields() []*Field {
	return m.fields
}

func (m *Message) Messages() []*Message {
	return m.messages
}

func (m *Message) Parents() []*Identifier {
	return m.parents
}

func (m *Message) AddParents(parents ...*Identifier) error {
	if m.extern {
		return errExternParents(m.IDString())
	}
	m.parents = append(m.parents, parents...)
	return nil
}

func (m *Message) ReplaceParent(index int, parent *Identifier) error {
	if index < 0 || index >= len(m.parents) {
		return errParentIndex(m.IDString(), index, len(m.parents))
	}
	m.parents[index] = parent
	return nil
}

// SaveOriginalID records the current identifier as the message's wire name.
// Only the first call has any effect.
func (m *Message) SaveOriginalID() {
	if m.originalID == nil && m.id != nil {
		m.originalID = m.id.Clone()
	}
}

// OriginalID returns the identifier recorded by [Message.SaveOriginalID],
// or the current identifier if none was recorded.
func (m *Message) OriginalID() *Identifier {
	if m.originalID != nil {
		return m.originalID
	}
	return m.id
}

func (m *Message) OriginalIDString() string {
	return m.OriginalID().String()
}

type Namespace struct {
	definition
	content []Definition
}

// NewNamespace returns a namespace named id, or the anonymous root
// namespace if id is nil.
func NewNamespace(id *Identifier) *Namespace {
	return &Namespace{definition: definition{id: id}}
}

func (*Namespace) Kind() Kind {
	return KindNamespace
}

func (n *Namespace) AddContent(content Definition) error {
	if content == nil {
		return errNilContent(n)
	}
	switch content := content.(type) {
	case *Enum, *Message:
	case *Namespace:
		if content == n {
			return errInvalidContent(n, content)
		}
	default:
		return errInvalidContent(n, content)
	}
	n.content = append(n.content, content)
	return nil
}

func (n *Namespace) Content() []Definition {
	return n.content
}

// RemoveContentFunc removes every child for which del returns true.
func (n *Namespace) RemoveContentFunc(del func(Definition) bool) {
	n.content = slices.DeleteFunc(n.content, del)
}

func (n *Namespace) Clear() {
	n.content = nil
}
