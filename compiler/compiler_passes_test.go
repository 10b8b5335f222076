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

package compiler_test

import (
	"testing"

	"github.com/vrai/SimpleFudgeProto/ast"
	"github.com/vrai/SimpleFudgeProto/compiler"
	"github.com/vrai/SimpleFudgeProto/encoding/fptext"
	"github.com/vrai/SimpleFudgeProto/internal/testutil"
)

func runPasses(t *testing.T, root *ast.Namespace, passes ...compiler.Pass) {
	t.Helper()
	for _, pass := range passes {
		if err := pass.Run(root); err != nil {
			t.Fatalf("%s: %v", pass.Name(), err)
		}
	}
}

func TestRenamer(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `
namespace a.b {
	message M {
		enum E { X; }
		message N {}
	}
	enum T { A; }
}`)
	runPasses(t, root, compiler.NewRenamer())

	testutil.ExpectNoDiff(t, ""+
		"namespace( a.b )\n"+
		"\tmessage( a.b.M )\n"+
		"\t\tenum( a.b.M.E )\n"+
		"\t\t\tX = 0\n"+
		"\t\tmessage( a.b.M.N )\n"+
		"\tenum( a.b.T )\n"+
		"\t\tA = 0\n",
		fptext.Tree(root))
}

func TestRenamerTopLevelIsStable(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "message M { int x = 1; } enum E { A; }")
	renamer := compiler.NewRenamer()
	runPasses(t, root, renamer)
	first := fptext.Tree(root)
	runPasses(t, root, renamer)
	testutil.ExpectEq(t, first, fptext.Tree(root))
}

func TestRenamerRejectsField(t *testing.T) {
	t.Parallel()

	field, err := ast.NewField("x", mustPrimitive(t, ast.TypeInt), ast.ModifierNone)
	testutil.AssertNoError(t, err)

	renamer := compiler.NewRenamer()
	err = ast.NewWalker(renamer).Walk(field)
	testutil.AssertErrorCode(t, err, 9000)
	testutil.ExpectErrorKind(t, err, ast.ErrorKindInternal)
}

func mustPrimitive(t *testing.T, type_ ast.Type) *ast.FieldType {
	t.Helper()
	fieldType, err := ast.PrimitiveType(type_)
	testutil.AssertNoError(t, err)
	return fieldType
}

func TestFlattener(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `
namespace a {
	namespace b {
		message M {}
	}
	enum E { A; }
	message N {}
}`)
	runPasses(t, root, compiler.NewRenamer(), compiler.NewFlattener())

	for _, child := range root.Content() {
		testutil.ExpectTrue(t, child.Kind() != ast.KindNamespace)
	}
	testutil.ExpectNoDiff(t, ""+
		"enum( a.E )\n"+
		"\tA = 0\n"+
		"message( a.N )\n"+
		"message( a.b.M )\n",
		fptext.Tree(root))
}

func TestFlattenerRejectsAnonymousNamespace(t *testing.T) {
	t.Parallel()

	root := ast.NewNamespace(nil)
	testutil.AssertNoError(t, root.AddContent(ast.NewNamespace(nil)))

	err := compiler.NewFlattener().Run(root)
	testutil.AssertErrorCode(t, err, 6002)
}

func TestIndexerRequiresFlattenedTree(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "namespace n { message M {} }")
	err := compiler.NewIndexer(compiler.NewIndex()).Run(root)
	testutil.AssertErrorCode(t, err, 6001)
	testutil.ExpectErrorKind(t, err, ast.ErrorKindUsage)
}

func TestIndexerReset(t *testing.T) {
	t.Parallel()

	index := compiler.NewIndex()
	indexer := compiler.NewIndexer(index)

	runPasses(t, mustParse(t, "message A {} enum E { X; }"), indexer)
	testutil.ExpectEq(t, 1, index.NumMessages())
	testutil.ExpectEq(t, 1, index.NumEnums())

	runPasses(t, mustParse(t, "message B {} message C {}"), indexer)
	testutil.ExpectEq(t, 2, index.NumMessages())
	testutil.ExpectEq(t, 0, index.NumEnums())
	testutil.ExpectTrue(t, index.Find("A") == nil)
	testutil.ExpectTrue(t, index.Find("B") != nil)
}

func TestIndexerExternDeclaredAfterDefinition(t *testing.T) {
	t.Parallel()

	root := mustParse(t, "message M { int x = 1; } extern message M;")
	index := compiler.NewIndex()
	runPasses(t, root, compiler.NewIndexer(index))

	msg, ok := index.Message("M")
	testutil.AssertTrue(t, ok)
	testutil.ExpectFalse(t, msg.Extern())
}

func TestResolverWrittenNameFirst(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `
message T {}
message Outer {
	message T {}
	message U {}
	message Inner {
		message U {}
		U inner_u = 1;
	}
	T outer_t = 1;
	Outer.T qualified_t = 2;
}
message Other {
	U other_u = 1;
}`)
	_, err := compiler.Compile(root)
	testutil.AssertErrorCode(t, err, 3004)

	root = mustParse(t, `
message T {}
message Outer {
	message T {}
	message U {}
	message Inner {
		message U {}
		U inner_u = 1;
	}
	T outer_t = 1;
	Outer.T qualified_t = 2;
	U outer_u = 3;
}`)
	result, err := compiler.Compile(root)
	testutil.AssertNoError(t, err)

	typesOf := func(message string) []string {
		msg, ok := result.Index.Message(message)
		testutil.AssertTrue(t, ok)
		var names []string
		for _, field := range msg.Fields() {
			names = append(names, field.Type().Name().String())
		}
		return names
	}
	testutil.ExpectSliceEq(t, []string{"T", "Outer.T", "Outer.U"}, typesOf("Outer"))
	testutil.ExpectSliceEq(t, []string{"Outer.Inner.U"}, typesOf("Outer.Inner"))
}

func TestResolverNestedParent(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `
message Outer {
	message Base {}
	message Derived extends Base {}
}`)
	result, err := compiler.Compile(root)
	testutil.AssertNoError(t, err)

	derived, ok := result.Index.Message("Outer.Derived")
	testutil.AssertTrue(t, ok)
	testutil.ExpectEq(t, "Outer.Base", derived.Parents()[0].String())
}

func TestResolverOrdinalRange(t *testing.T) {
	t.Parallel()

	_, err := compiler.Compile(mustParse(t, "message M { int a = 0; }"))
	testutil.AssertErrorCode(t, err, 3007)

	_, err = compiler.Compile(mustParse(t, "message M { int a = 32767; }"))
	testutil.ExpectNoError(t, err)
}

func TestExtRefsTransitiveClosure(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `
message A { B b = 1; }
message B { C c = 1; }
message C { A a = 1; D d = 2; }
message D {}
message Lonely { int x = 1; }`)
	result, err := compiler.Compile(root)
	testutil.AssertNoError(t, err)

	refs := result.ExtRefs
	testutil.ExpectSliceEq(t, []string{"C"}, refs.Refs("B"))
	testutil.ExpectSliceEq(t, []string{"A", "D"}, refs.Refs("C"))
	testutil.ExpectEq(t, 4, refs.NumRefs())

	testutil.ExpectSliceEq(t, []string{"B", "C", "D"}, refs.Closure("A"))
	testutil.ExpectSliceEq(t, []string{"A", "B", "D"}, refs.Closure("C"))
	testutil.ExpectSliceEq(t, []string{}, refs.Closure("D"))
	testutil.ExpectSliceEq(t, []string{}, refs.Closure("Lonely"))

	var names []string
	for name := range refs.Closures() {
		names = append(names, name)
	}
	testutil.ExpectSliceEq(t, []string{"A", "B", "C", "D", "Lonely"}, names)
}

func TestExtRefsNestedOwners(t *testing.T) {
	t.Parallel()

	root := mustParse(t, `
message Holder {
	message Part {
		Other.Kind kind = 1;
		Holder holder = 2;
	}
	enum Local { X; }
	Local local = 1;
}
message Other {
	enum Kind { A; B; }
}`)
	result, err := compiler.Compile(root)
	testutil.AssertNoError(t, err)

	testutil.ExpectSliceEq(t, []string{"Other"}, result.ExtRefs.Closure("Holder"))
	testutil.ExpectSliceEq(t, []string{}, result.ExtRefs.Closure("Other"))
	testutil.ExpectEq(t, 0, len(result.ExtRefs.Closure("Holder.Part")))
}
