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

// Package fptext renders schema trees, symbol tables and dependency
// closures as indented text.
package fptext

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"
	"strings"

	"github.com/vrai/SimpleFudgeProto/ast"
)

// Index is the read side of a compiled symbol table.
type Index interface {
	Enums() iter.Seq2[string, *ast.Enum]
	Messages() iter.Seq2[string, *ast.Message]
}

// ExtRefs maps each top-level message to the messages it depends on.
type ExtRefs interface {
	Closures() iter.Seq2[string, []string]
}

func Tree(root ast.Definition) string {
	var buf strings.Builder
	WriteTree(&buf, root)
	return buf.String()
}

func WriteTree(w io.Writer, root ast.Definition) error {
	e := encoder{w: w}
	e.visit(root)
	return e.err
}

func WriteIndex(w io.Writer, index Index) error {
	type entry struct {
		name, kind string
	}
	var entries []entry
	for name := range index.Enums() {
		entries = append(entries, entry{name, "enum"})
	}
	for name := range index.Messages() {
		entries = append(entries, entry{name, "message"})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.name, b.name)
	})

	e := encoder{w: w}
	for _, entry := range entries {
		e.linef("%s %s", entry.kind, entry.name)
	}
	return e.err
}

func WriteExtRefs(w io.Writer, extRefs ExtRefs) error {
	e := encoder{w: w}
	for name, closure := range extRefs.Closures() {
		if len(closure) == 0 {
			e.linef("%s ->", name)
			continue
		}
		e.linef("%s -> %s", name, strings.Join(closure, ", "))
	}
	return e.err
}

type encoder struct {
	w      io.Writer
	indent int
	err    error
}

func (e *encoder) line(s string) {
	if e.err != nil {
		return
	}
	if indent := strings.Repeat("\t", e.indent); indent != "" {
		if _, err := io.WriteString(e.w, indent); err != nil {
			e.err = err
			return
		}
	}
	if _, err := io.WriteString(e.w, s); err != nil {
		e.err = err
		return
	}
	if _, err := io.WriteString(e.w, "\n"); err != nil {
		e.err = err
		return
	}
}

func (e *encoder) linef(format string, a ...any) {
	e.line(fmt.Sprintf(format, a...))
}

func (e *encoder) visit(def ast.Definition) {
	switch def := def.(type) {
	case *ast.Namespace:
		e.visitNamespace(def)
	case *ast.Message:
		e.visitMessage(def)
	case *ast.Enum:
		e.visitEnum(def)
	case *ast.Field:
		e.line(FormatField(def))
	default:
		e.linef("UNKNOWN( %T )", def)
	}
}

func (e *encoder) visitNamespace(ns *ast.Namespace) {
	if !ns.HasID() {
		for _, child := range ns.Content() {
			e.visit(child)
		}
		return
	}
	e.linef("namespace( %s )", ns.IDString())
	e.indent += 1
	for _, child := range ns.Content() {
		e.visit(child)
	}
	e.indent -= 1
}

func (e *encoder) visitEnum(enum *ast.Enum) {
	e.linef("enum( %s )", enum.IDString())
	e.indent += 1
	for _, item := range enum.Items() {
		e.linef("%s = %d", item.Name, item.Value)
	}
	e.indent -= 1
}

func (e *encoder) visitMessage(msg *ast.Message) {
	if msg.Extern() {
		e.linef("extern message( %s )", msg.IDString())
		return
	}

	header := msg.IDString()
	if parents := msg.Parents(); len(parents) > 0 {
		names := make([]string, 0, len(parents))
		for _, parent := range parents {
			names = append(names, parent.String())
		}
		header += " extends " + strings.Join(names, ", ")
	}
	e.linef("message( %s )", header)
	e.indent += 1
	for _, enum := range msg.Enums() {
		e.visitEnum(enum)
	}
	for _, nested := range msg.Messages() {
		e.visitMessage(nested)
	}
	for _, field := range msg.Fields() {
		e.line(FormatField(field))
	}
	e.indent -= 1
}

// FormatField renders a field declaration as a single line.
func FormatField(field *ast.Field) string {
	var buf strings.Builder
	buf.WriteString("field( ")
	if mods := field.Modifier().String(); mods != "" {
		buf.WriteString(mods)
		buf.WriteByte(' ')
	}
	buf.WriteString(field.Type().String())
	for _, bound := range field.Bounds() {
		if bound == ast.Unbounded {
			buf.WriteString("[]")
		} else {
			fmt.Fprintf(&buf, "[%d]", bound)
		}
	}
	buf.WriteByte(' ')
	buf.WriteString(field.Name())
	if ordinal, ok := field.Ordinal(); ok {
		buf.WriteString(" = ")
		buf.WriteString(strconv.Itoa(ordinal))
	}
	if value, ok := field.Default(); ok {
		buf.WriteString(" [default=")
		buf.WriteString(value.String())
		buf.WriteByte(']')
	}
	buf.WriteString(" )")
	return buf.String()
}
