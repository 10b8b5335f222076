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

// Package fpschema describes a compiled schema document as plain data, for
// export as JSON or YAML and for code generation plugins.
package fpschema

import (
	"encoding/json"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vrai/SimpleFudgeProto/ast"
	"github.com/vrai/SimpleFudgeProto/compiler"
)

type Document struct {
	Enums    []Enum    `json:"enums" yaml:"enums"`
	Messages []Message `json:"messages" yaml:"messages"`
}

type Enum struct {
	Name  string     `json:"name" yaml:"name"`
	Items []EnumItem `json:"items" yaml:"items"`
}

type EnumItem struct {
	Name  string `json:"name" yaml:"name"`
	Value int32  `json:"value" yaml:"value"`
}

type Message struct {
	Name string `json:"name" yaml:"name"`

	// OriginalName is the name before aliasing, used as the wire type tag.
	OriginalName string `json:"original_name" yaml:"original_name"`

	FileStem string   `json:"file_stem" yaml:"file_stem"`
	Extern   bool     `json:"extern,omitempty" yaml:"extern,omitempty"`
	Parents  []string `json:"parents,omitempty" yaml:"parents,omitempty"`
	Fields   []Field  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Enums    []string `json:"enums,omitempty" yaml:"enums,omitempty"`
	Messages []string `json:"messages,omitempty" yaml:"messages,omitempty"`

	// Dependencies lists the top-level messages this message needs,
	// directly or transitively. It is set only for top-level messages.
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

type FieldKind string

const (
	FieldKindPrimitive FieldKind = "primitive"
	FieldKindEnum      FieldKind = "enum"
	FieldKindMessage   FieldKind = "message"
)

type Field struct {
	Name      string    `json:"name" yaml:"name"`
	Type      string    `json:"type" yaml:"type"`
	Kind      FieldKind `json:"kind" yaml:"kind"`
	Modifiers []string  `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`

	// Bounds has one entry per array dimension; -1 marks an unbounded
	// dimension.
	Bounds  []int `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Ordinal *int  `json:"ordinal,omitempty" yaml:"ordinal,omitempty"`
	Default any   `json:"default,omitempty" yaml:"default,omitempty"`
}

// New describes a compilation result. Enums and messages appear in name
// order.
func New(result *compiler.CompileResult) *Document {
	doc := &Document{
		Enums:    []Enum{},
		Messages: []Message{},
	}
	for name, enum := range result.Index.Enums() {
		doc.Enums = append(doc.Enums, newEnum(name, enum))
	}
	for name, msg := range result.Index.Messages() {
		doc.Messages = append(doc.Messages, newMessage(name, msg, result.ExtRefs))
	}
	return doc
}

func newEnum(name string, enum *ast.Enum) Enum {
	out := Enum{
		Name:  name,
		Items: make([]EnumItem, 0, enum.Len()),
	}
	for _, item := range enum.Items() {
		out.Items = append(out.Items, EnumItem{Name: item.Name, Value: item.Value})
	}
	return out
}

func newMessage(name string, msg *ast.Message, extRefs *compiler.ExtRefs) Message {
	out := Message{
		Name:         name,
		OriginalName: msg.OriginalIDString(),
		FileStem:     FileStem(msg.ID()),
		Extern:       msg.Extern(),
		Dependencies: extRefs.Closure(name),
	}
	for _, parent := range msg.Parents() {
		out.Parents = append(out.Parents, parent.String())
	}
	for _, enum := range msg.Enums() {
		out.Enums = append(out.Enums, enum.IDString())
	}
	for _, nested := range msg.Messages() {
		out.Messages = append(out.Messages, nested.IDString())
	}
	for _, field := range msg.Fields() {
		out.Fields = append(out.Fields, newField(field))
	}
	return out
}

func newField(field *ast.Field) Field {
	fieldType := field.Type()
	out := Field{
		Name:      field.Name(),
		Type:      fieldType.String(),
		Kind:      FieldKindPrimitive,
		Modifiers: field.Modifier().Names(),
		Bounds:    field.Bounds(),
	}
	switch fieldType.Definition().(type) {
	case *ast.Enum:
		out.Kind = FieldKindEnum
	case *ast.Message:
		out.Kind = FieldKindMessage
	}
	if ordinal, ok := field.Ordinal(); ok {
		out.Ordinal = &ordinal
	}
	if value, ok := field.Default(); ok {
		out.Default = value.Value()
	}
	return out
}

// FileStem returns the base name of the file generated for a message: the
// segments of its name joined with '_', in lower case.
func FileStem(id *ast.Identifier) string {
	return strings.ToLower(id.Join("_"))
}

func EncodeJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func EncodeYAML(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func DecodeJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func DecodeYAML(r io.Reader) (*Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
