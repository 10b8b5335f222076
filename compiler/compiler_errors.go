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
	"fmt"

	"github.com/vrai/SimpleFudgeProto/ast"
)

type Error struct {
	code    uint32
	kind    ast.ErrorKind
	message string
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Kind() ast.ErrorKind {
	return err.kind
}

func (err *Error) Message() string {
	return err.message
}

func errTypeNameConflict(name string, existing, incoming ast.Kind) error {
	return &Error{
		code: 3000,
		kind: ast.ErrorKindSemantic,
		message: fmt.Sprintf(
			"Type name '%s' of %s is already used by %s",
			name, incoming, existing,
		),
	}
}

func errMessageAlreadyDefined(name string) error {
	return &Error{
		code:    3001,
		kind:    ast.ErrorKindSemantic,
		message: fmt.Sprintf("Message '%s' is already defined", name),
	}
}

func errFieldNameConflict(message, field string) error {
	return &Error{
		code:    3002,
		kind:    ast.ErrorKindSemantic,
		message: fmt.Sprintf("Duplicate field name '%s' in message '%s'", field, message),
	}
}

func errFieldOrdinalConflict(message string, ordinal int, prev, field string) error {
	return &Error{
		code: 3003,
		kind: ast.ErrorKindSemantic,
		message: fmt.Sprintf(
			"Ordinal %d of field '%s' in message '%s' is already used by field '%s'",
			ordinal, field, message, prev,
		),
	}
}

func errUnresolvedType(message, field string, typeName *ast.Identifier) error {
	return &Error{
		code: 3004,
		kind: ast.ErrorKindSemantic,
		message: fmt.Sprintf(
			"Cannot resolve type '%s' of field '%s' in message '%s'",
			typeName, field, message,
		),
	}
}

func errUnresolvedParent(message string, parent *ast.Identifier) error {
	return &Error{
		code: 3005,
		kind: ast.ErrorKindSemantic,
		message: fmt.Sprintf(
			"Cannot resolve parent '%s' of message '%s'",
			parent, message,
		),
	}
}

func errParentNotMessage(message string, parent ast.Definition) error {
	return &Error{
		code: 3006,
		kind: ast.ErrorKindSemantic,
		message: fmt.Sprintf(
			"Parent '%s' of message '%s' is %s, not a message",
			parent.IDString(), message, parent.Kind(),
		),
	}
}

func errOrdinalOutOfRange(message, field string, ordinal int) error {
	return &Error{
		code: 3007,
		kind: ast.ErrorKindSemantic,
		message: fmt.Sprintf(
			"Ordinal %d of field '%s' in message '%s' is out of range (must be between %d and %d)",
			ordinal, field, message, ast.MinOrdinal, ast.MaxOrdinal,
		),
	}
}

func errAliasCollision(path *ast.Identifier, index int) error {
	return &Error{
		code: 3008,
		kind: ast.ErrorKindSemantic,
		message: fmt.Sprintf(
			"Alias '%s' collides with an existing alias at segment %d ('%s')",
			path, index, path.At(index),
		),
	}
}

func errAliasEmpty() error {
	return &Error{
		code:    3009,
		kind:    ast.ErrorKindSemantic,
		message: "Alias source must not be empty",
	}
}

func errAliasedNameConflict(from, to string) error {
	return &Error{
		code: 3010,
		kind: ast.ErrorKindSemantic,
		message: fmt.Sprintf(
			"Aliasing '%s' to '%s' conflicts with an existing type",
			from, to,
		),
	}
}

func errPrefixAlreadySet(current *ast.Identifier) error {
	return &Error{
		code:    3011,
		kind:    ast.ErrorKindSemantic,
		message: fmt.Sprintf("Alias prefix is already set to '%s'", current),
	}
}

func errRootNotAnonymous(pass string, root ast.Definition) error {
	return &Error{
		code: 6000,
		kind: ast.ErrorKindUsage,
		message: fmt.Sprintf(
			"%s stage requires an anonymous root namespace, got %s '%s'",
			pass, root.Kind(), root.IDString(),
		),
	}
}

func errNamespaceNotFlattened(pass string, ns *ast.Namespace) error {
	return &Error{
		code: 6001,
		kind: ast.ErrorKindUsage,
		message: fmt.Sprintf(
			"%s stage requires a flattened tree, found namespace '%s'",
			pass, ns.IDString(),
		),
	}
}

func errAnonymousDefinition(pass string, def ast.Definition) error {
	return &Error{
		code:    6002,
		kind:    ast.ErrorKindUsage,
		message: fmt.Sprintf("%s stage found an anonymous %s below the root", pass, def.Kind()),
	}
}

func errUnexpectedDefinition(pass string, def ast.Definition) error {
	return &Error{
		code: 9000,
		kind: ast.ErrorKindInternal,
		message: fmt.Sprintf(
			"%s stage cannot visit %s '%s' directly",
			pass, def.Kind(), def.IDString(),
		),
	}
}

func errTypeNotResolved(message, field string) error {
	return &Error{
		code: 9001,
		kind: ast.ErrorKindInternal,
		message: fmt.Sprintf(
			"Type of field '%s' in message '%s' was not resolved",
			field, message,
		),
	}
}
