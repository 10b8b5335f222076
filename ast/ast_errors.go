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

import (
	"fmt"
)

// ErrorKind classifies a failure as bad input, bad driver usage, or a
// compiler defect.
type ErrorKind uint8

const (
	ErrorKindUsage ErrorKind = iota + 1
	ErrorKindSemantic
	ErrorKindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindUsage:
		return "usage"
	case ErrorKindSemantic:
		return "semantic"
	case ErrorKindInternal:
		return "internal"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

type Error struct {
	code    uint32
	kind    ErrorKind
	message string
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

func (err *Error) Kind() ErrorKind {
	return err.kind
}

func (err *Error) Message() string {
	return err.message
}

func errIdentifierEmpty() error {
	return &Error{
		code:    5000,
		kind:    ErrorKindInternal,
		message: "Cannot pop from an empty identifier",
	}
}

func errIdentifierAlreadySet(current *Identifier) error {
	return &Error{
		code:    5001,
		kind:    ErrorKindInternal,
		message: fmt.Sprintf("Definition '%s' already has an identifier", current),
	}
}

func errIdentifierNotSet() error {
	return &Error{
		code:    5002,
		kind:    ErrorKindInternal,
		message: "Cannot reset the identifier of an anonymous definition",
	}
}

func errInvalidPrimitive(t Type) error {
	return &Error{
		code:    5003,
		kind:    ErrorKindInternal,
		message: fmt.Sprintf("%s is not a primitive field type", t),
	}
}

func errUserTypeNameEmpty() error {
	return &Error{
		code:    5004,
		kind:    ErrorKindSemantic,
		message: "User field type requires a non-empty type name",
	}
}

func errTypeDefinitionAlreadySet(name *Identifier) error {
	return &Error{
		code:    5005,
		kind:    ErrorKindInternal,
		message: fmt.Sprintf("Field type '%s' has already been resolved", name),
	}
}

func errTypeDefinitionInvalid(name *Identifier, def Definition) error {
	if def == nil {
		return &Error{
			code:    5006,
			kind:    ErrorKindInternal,
			message: fmt.Sprintf("Field type '%s' cannot resolve to nil", name),
		}
	}
	return &Error{
		code: 5006,
		kind: ErrorKindInternal,
		message: fmt.Sprintf(
			"Field type '%s' cannot resolve to %s '%s'",
			name, def.Kind(), def.IDString(),
		),
	}
}

func errModifierRequiredOptional() error {
	return &Error{
		code:    5007,
		kind:    ErrorKindSemantic,
		message: "Field modifiers 'required' and 'optional' are mutually exclusive",
	}
}

func errModifierMutableReadonly() error {
	return &Error{
		code:    5008,
		kind:    ErrorKindSemantic,
		message: "Field modifiers 'mutable' and 'readonly' are mutually exclusive",
	}
}

func errModifierRepeated() error {
	return &Error{
		code:    5009,
		kind:    ErrorKindSemantic,
		message: "Field modifier 'repeated' is not supported, use an array bound instead",
	}
}

func errDefaultTypeMismatch(field string, t *FieldType, value Literal) error {
	return &Error{
		code: 5010,
		kind: ErrorKindSemantic,
		message: fmt.Sprintf(
			"Default value %s (%s) of field '%s' is not compatible with type %s",
			value, value.Type(), field, t,
		),
	}
}

func errInvalidBound(field string, bound int) error {
	return &Error{
		code:    5011,
		kind:    ErrorKindSemantic,
		message: fmt.Sprintf("Array bound %d of field '%s' must be positive", bound, field),
	}
}

func errExternParents(message string) error {
	return &Error{
		code:    5012,
		kind:    ErrorKindSemantic,
		message: fmt.Sprintf("Extern message '%s' cannot declare parents", message),
	}
}

func errParentIndex(message string, index, count int) error {
	return &Error{
		code: 5013,
		kind: ErrorKindInternal,
		message: fmt.Sprintf(
			"Parent index %d out of range for message '%s' (%d parents)",
			index, message, count,
		),
	}
}

func errInvalidContent(container Definition, content Definition) error {
	return &Error{
		code: 5014,
		kind: ErrorKindUsage,
		message: fmt.Sprintf(
			"%s '%s' cannot contain %s '%s'",
			container.Kind(), container.IDString(),
			content.Kind(), content.IDString(),
		),
	}
}

func errNilContent(container Definition) error {
	return &Error{
		code: 5015,
		kind: ErrorKindInternal,
		message: fmt.Sprintf(
			"Cannot add nil content to %s '%s'",
			container.Kind(), container.IDString(),
		),
	}
}

func errUnknownDefinition(node Definition) error {
	return &Error{
		code:    5016,
		kind:    ErrorKindInternal,
		message: fmt.Sprintf("Walker cannot dispatch definition of type %T", node),
	}
}

func errExternContent(message string) error {
	return &Error{
		code:    5017,
		kind:    ErrorKindSemantic,
		message: fmt.Sprintf("Extern message '%s' cannot have a body", message),
	}
}

func errFieldNameEmpty() error {
	return &Error{
		code:    5018,
		kind:    ErrorKindSemantic,
		message: "Field name must not be empty",
	}
}

func errEnumValueOverflow(enum, item string) error {
	return &Error{
		code: 5019,
		kind: ErrorKindSemantic,
		message: fmt.Sprintf(
			"Value of item '%s' in enum '%s' overflows int32",
			item, enum,
		),
	}
}
