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

package ast_test

import (
	"math"
	"testing"

	"github.com/vrai/SimpleFudgeProto/ast"
	"github.com/vrai/SimpleFudgeProto/internal/testutil"
)

func TestIdentifierRoundTrip(t *testing.T) {
	t.Parallel()

	ids := []*ast.Identifier{
		ast.NewIdentifier("a"),
		ast.NewIdentifier("a", "b", "c"),
		ast.NewIdentifier("com", "opengamma", "Pixel"),
	}
	for _, id := range ids {
		for _, sep := range []string{".", "::", "->"} {
			parsed := ast.ParseIdentifier(id.Join(sep), sep)
			if !parsed.Equal(id) {
				t.Errorf("ParseIdentifier(%q, %q) = %v, want %v", id.Join(sep), sep, parsed, id)
			}
		}
	}
}

func TestParseIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		sep  string
		want []string
	}{
		{"first.second.third", ".", []string{"first", "second", "third"}},
		{"first..second.third", ".", []string{"first", "second", "third"}},
		{"first->second->third->fourth->", "->", []string{"first", "second", "third", "fourth"}},
		{"second.third.fourth.", ".", []string{"second", "third", "fourth"}},
		{"", ".", []string{""}},
		{"...", ".", []string{""}},
	}
	for _, test := range tests {
		id := ast.ParseIdentifier(test.src, test.sep)
		var got []string
		for _, segment := range id.Segments() {
			got = append(got, segment)
		}
		testutil.ExpectSliceEq(t, test.want, got)
	}

	split := ast.SplitIdentifier("a..b", ".")
	testutil.ExpectEq(t, 3, split.Len())
	testutil.ExpectEq(t, "", split.At(1))
}

func TestIdentifierEdits(t *testing.T) {
	t.Parallel()

	id := ast.NewIdentifier("b")
	id.Prepend("a")
	id.Append("c")
	id.Extend(ast.NewIdentifier("d", "e"))
	id.PrependAll(ast.NewIdentifier("x", "y"))
	testutil.ExpectEq(t, "x.y.a.b.c.d.e", id.String())
	testutil.ExpectEq(t, "x::y::a::b::c::d::e", id.Join("::"))
	testutil.ExpectEq(t, "e", id.Last())
	testutil.ExpectEq(t, "x.y.a.b.c.d", id.Parent().String())

	clone := id.Clone()
	testutil.AssertNoError(t, clone.Pop())
	testutil.ExpectEq(t, 7, id.Len())
	testutil.ExpectEq(t, 6, clone.Len())
	testutil.ExpectFalse(t, clone.Equal(id))
}

func TestIdentifierPopEmpty(t *testing.T) {
	t.Parallel()

	id := ast.NewIdentifier("a", "b")
	testutil.AssertNoError(t, id.Pop())
	testutil.AssertNoError(t, id.Pop())
	testutil.ExpectTrue(t, id.Blank())
	testutil.ExpectTrue(t, id.Parent() == nil)

	err := id.Pop()
	testutil.AssertErrorCode(t, err, 5000)
	testutil.ExpectErrorKind(t, err, ast.ErrorKindInternal)
}

func TestEnumAppend(t *testing.T) {
	t.Parallel()

	enum := ast.NewEnum(ast.NewIdentifier("Color"))
	testutil.AssertNoError(t, enum.Append("RED"))
	testutil.AssertNoError(t, enum.Append("GREEN"))
	enum.AppendValue("BLUE", 10)
	testutil.AssertNoError(t, enum.Append("ALPHA"))
	enum.AppendValue("NEGATIVE", -5)
	testutil.AssertNoError(t, enum.Append("NEXT"))

	want := []ast.EnumItem{
		{Name: "RED", Value: 0},
		{Name: "GREEN", Value: 1},
		{Name: "BLUE", Value: 10},
		{Name: "ALPHA", Value: 11},
		{Name: "NEGATIVE", Value: -5},
		{Name: "NEXT", Value: -4},
	}
	testutil.ExpectSliceEq(t, want, enum.Items())
}

func TestEnumAppendOverflow(t *testing.T) {
	t.Parallel()

	enum := ast.NewEnum(ast.NewIdentifier("E"))
	enum.AppendValue("A", math.MaxInt32)
	err := enum.Append("B")
	coded := testutil.AssertErrorCode(t, err, 5019)
	testutil.ExpectErrorKind(t, err, ast.ErrorKindSemantic)
	testutil.ExpectEq(t, "Value of item 'B' in enum 'E' overflows int32", coded.Message())
	testutil.ExpectEq(t, 1, enum.Len())
}

func TestCleanModifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   ast.Modifier
		want ast.Modifier
		code uint32
	}{
		{ast.ModifierNone, ast.ModifierOptional, 0},
		{ast.ModifierRequired, ast.ModifierRequired, 0},
		{ast.ModifierMutable, ast.ModifierMutable | ast.ModifierOptional, 0},
		{ast.ModifierReadonly | ast.ModifierRequired, ast.ModifierReadonly | ast.ModifierRequired, 0},
		{ast.ModifierRequired | ast.ModifierOptional, 0, 5007},
		{ast.ModifierMutable | ast.ModifierReadonly, 0, 5008},
		{ast.ModifierRepeated, 0, 5009},
	}
	for _, test := range tests {
		got, err := ast.CleanModifier(test.in)
		if test.code != 0 {
			testutil.AssertErrorCode(t, err, test.code)
			testutil.ExpectErrorKind(t, err, ast.ErrorKindSemantic)
			continue
		}
		testutil.AssertNoError(t, err)
		testutil.ExpectEq(t, test.want, got)
	}

	testutil.ExpectEq(t, "mutable optional", (ast.ModifierMutable | ast.ModifierOptional).String())
}

func TestLiteralCompatibility(t *testing.T) {
	t.Parallel()

	primitive := func(t_ ast.Type) *ast.FieldType {
		ft, err := ast.PrimitiveType(t_)
		testutil.AssertNoError(t, err)
		return ft
	}

	tests := []struct {
		value ast.Literal
		type_ ast.Type
		want  bool
	}{
		{ast.IntLiteral(1), ast.TypeByte, true},
		{ast.IntLiteral(1), ast.TypeShort, true},
		{ast.IntLiteral(1), ast.TypeInt, true},
		{ast.IntLiteral(1), ast.TypeLong, true},
		{ast.IntLiteral(1), ast.TypeDouble, false},
		{ast.IntLiteral(1), ast.TypeString, false},
		{ast.DoubleLiteral(1.5), ast.TypeFloat, true},
		{ast.DoubleLiteral(1.5), ast.TypeDouble, true},
		{ast.DoubleLiteral(1.5), ast.TypeInt, false},
		{ast.StringLiteral("x"), ast.TypeString, true},
		{ast.StringLiteral("x"), ast.TypeDate, false},
		{ast.BoolLiteral(true), ast.TypeBool, true},
		{ast.BoolLiteral(true), ast.TypeIndicator, false},
	}
	for _, test := range tests {
		got := test.value.CompatibleWith(primitive(test.type_))
		if got != test.want {
			t.Errorf("%s.CompatibleWith(%s) = %v, want %v", test.value, test.type_, got, test.want)
		}
	}

	userType, err := ast.UserType(ast.NewIdentifier("Color"))
	testutil.AssertNoError(t, err)
	testutil.ExpectFalse(t, ast.IntLiteral(0).CompatibleWith(userType))
}

func TestNewField(t *testing.T) {
	t.Parallel()

	intType, err := ast.PrimitiveType(ast.TypeInt)
	testutil.AssertNoError(t, err)

	field, err := ast.NewField(
		"values",
		intType,
		ast.ModifierRequired,
		ast.WithBounds(4, ast.Unbounded),
		ast.WithOrdinal(3),
		ast.WithDefault(ast.IntLiteral(7)),
	)
	testutil.AssertNoError(t, err)
	testutil.ExpectEq(t, "values", field.Name())
	testutil.ExpectEq(t, ast.ModifierRequired, field.Modifier())
	testutil.ExpectSliceEq(t, []int{4, ast.Unbounded}, field.Bounds())
	testutil.ExpectTrue(t, field.IsCollection())
	ordinal, ok := field.Ordinal()
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, 3, ordinal)
	value, ok := field.Default()
	testutil.ExpectTrue(t, ok)
	testutil.ExpectEq(t, "7", value.String())

	_, err = ast.NewField("bad", intType, ast.ModifierNone, ast.WithDefault(ast.StringLiteral("x")))
	testutil.AssertErrorCode(t, err, 5010)

	_, err = ast.NewField("bad", intType, ast.ModifierNone, ast.WithBounds(0))
	testutil.AssertErrorCode(t, err, 5011)

	_, err = ast.NewField("bad", intType, ast.ModifierRepeated)
	testutil.AssertErrorCode(t, err, 5009)
}

func TestFieldTypeResolution(t *testing.T) {
	t.Parallel()

	_, err := ast.PrimitiveType(ast.TypeUser)
	testutil.AssertErrorCode(t, err, 5003)
	_, err = ast.UserType(ast.ParseIdentifier("", "."))
	testutil.AssertErrorCode(t, err, 5004)

	enumType, err := ast.UserType(ast.NewIdentifier("Color"))
	testutil.AssertNoError(t, err)
	enum := ast.NewEnum(ast.NewIdentifier("gfx", "Color"))
	testutil.AssertNoError(t, enumType.SetDefinition(enum))
	testutil.ExpectFalse(t, enumType.IsComplex())
	testutil.ExpectTrue(t, enumType.Definition() == ast.Definition(enum))

	err = enumType.SetDefinition(ast.NewEnum(ast.NewIdentifier("Other")))
	testutil.AssertErrorCode(t, err, 5005)
	testutil.ExpectErrorKind(t, err, ast.ErrorKindInternal)
	testutil.ExpectTrue(t, enumType.Definition() == ast.Definition(enum))

	msgType, err := ast.UserType(ast.NewIdentifier("Pixel"))
	testutil.AssertNoError(t, err)
	testutil.ExpectFalse(t, msgType.IsComplex())
	testutil.AssertNoError(t, msgType.SetDefinition(ast.NewMessage(ast.NewIdentifier("Pixel"), false)))
	testutil.ExpectTrue(t, msgType.IsComplex())

	nsType, err := ast.UserType(ast.NewIdentifier("ns"))
	testutil.AssertNoError(t, err)
	testutil.AssertErrorCode(t, nsType.SetDefinition(ast.NewNamespace(ast.NewIdentifier("ns"))), 5006)
}

func TestMessage(t *testing.T) {
	t.Parallel()

	extern := ast.NewMessage(ast.NewIdentifier("Ext"), true)
	testutil.AssertErrorCode(t, extern.AddParents(ast.NewIdentifier("Base")), 5012)
	testutil.AssertErrorCode(t, extern.AddContent(ast.NewEnum(ast.NewIdentifier("E"))), 5017)

	msg := ast.NewMessage(ast.NewIdentifier("Msg"), false)
	testutil.AssertNoError(t, msg.AddParents(ast.NewIdentifier("A"), ast.NewIdentifier("B")))
	testutil.AssertNoError(t, msg.ReplaceParent(1, ast.NewIdentifier("ns", "B")))
	testutil.AssertErrorCode(t, msg.ReplaceParent(2, ast.NewIdentifier("C")), 5013)
	testutil.ExpectEq(t, "ns.B", msg.Parents()[1].String())

	testutil.AssertErrorCode(t, msg.AddContent(msg), 5014)
	testutil.AssertErrorCode(t, msg.AddContent(ast.NewNamespace(ast.NewIdentifier("ns"))), 5014)
	testutil.AssertErrorCode(t, msg.AddContent(nil), 5015)

	testutil.ExpectEq(t, "Msg", msg.OriginalIDString())
	msg.SaveOriginalID()
	testutil.AssertNoError(t, msg.ResetID(ast.NewIdentifier("x", "Msg")))
	msg.SaveOriginalID()
	testutil.ExpectEq(t, "x.Msg", msg.IDString())
	testutil.ExpectEq(t, "Msg", msg.OriginalIDString())
}

func TestNamespace(t *testing.T) {
	t.Parallel()

	root := ast.NewNamespace(nil)
	testutil.ExpectFalse(t, root.HasID())
	testutil.ExpectEq(t, "NULL", root.IDString())
	testutil.AssertErrorCode(t, root.ResetID(ast.NewIdentifier("x")), 5002)

	inner := ast.NewNamespace(ast.NewIdentifier("inner"))
	testutil.AssertErrorCode(t, inner.SetID(ast.NewIdentifier("again")), 5001)
	testutil.AssertNoError(t, root.AddContent(inner))
	testutil.AssertNoError(t, root.AddContent(ast.NewMessage(ast.NewIdentifier("M"), false)))
	testutil.AssertErrorCode(t, root.AddContent(root), 5014)

	intType, _ := ast.PrimitiveType(ast.TypeInt)
	field, err := ast.NewField("f", intType, ast.ModifierNone)
	testutil.AssertNoError(t, err)
	testutil.AssertErrorCode(t, root.AddContent(field), 5014)

	root.RemoveContentFunc(func(def ast.Definition) bool {
		return def.Kind() == ast.KindNamespace
	})
	testutil.ExpectEq(t, 1, len(root.Content()))
	testutil.ExpectEq(t, ast.KindMessage, root.Content()[0].Kind())
}
