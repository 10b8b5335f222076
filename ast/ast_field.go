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
	"math"
	"slices"
	"strconv"
	"strings"
)

const (
	// Unbounded is the array bound of a dimension with no fixed size.
	Unbounded = -1

	MinOrdinal = 1
	MaxOrdinal = math.MaxInt16
)

type Type uint8

const (
	TypeInvalid Type = iota
	TypeIndicator
	TypeBool
	TypeByte
	TypeShort
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeString
	TypeMessage
	TypeDate
	TypeTime
	TypeDateTime
	TypeUser
)

var typeNames = [...]string{
	TypeInvalid:   "INVALID_TYPE",
	TypeIndicator: "indicator",
	TypeBool:      "bool",
	TypeByte:      "byte",
	TypeShort:     "short",
	TypeInt:       "int",
	TypeLong:      "long",
	TypeFloat:     "float",
	TypeDouble:    "double",
	TypeString:    "string",
	TypeMessage:   "message",
	TypeDate:      "date",
	TypeTime:      "time",
	TypeDateTime:  "datetime",
	TypeUser:      "user",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// LookupPrimitive returns the primitive type with the given keyword.
func LookupPrimitive(name string) (Type, bool) {
	for t := TypeIndicator; t < TypeUser; t++ {
		if typeNames[t] == name {
			return t, true
		}
	}
	return TypeInvalid, false
}

func (t Type) IsInteger() bool {
	switch t {
	case TypeByte, TypeShort, TypeInt, TypeLong:
		return true
	}
	return false
}

func (t Type) IsFloat() bool {
	return t == TypeFloat || t == TypeDouble
}

// A FieldType is either one of the primitive types, or a user type naming
// an enum or message. A user type is resolved to its definition exactly once.
type FieldType struct {
	type_ Type
	name  *Identifier
	def   Definition
}

func PrimitiveType(t Type) (*FieldType, error) {
	if t == TypeInvalid || t >= TypeUser {
		return nil, errInvalidPrimitive(t)
	}
	return &FieldType{type_: t}, nil
}

func UserType(name *Identifier) (*FieldType, error) {
	if name == nil || name.Blank() {
		return nil, errUserTypeNameEmpty()
	}
	return &FieldType{type_: TypeUser, name: name}, nil
}

func (t *FieldType) Type() Type {
	return t.type_
}

func (t *FieldType) IsUser() bool {
	return t.type_ == TypeUser
}

// Name returns the type name of a user type, or nil for a primitive type.
func (t *FieldType) Name() *Identifier {
	return t.name
}

func (t *FieldType) ResetName(name *Identifier) error {
	if !t.IsUser() {
		return errInvalidPrimitive(t.type_)
	}
	if name == nil || name.Blank() {
		return errUserTypeNameEmpty()
	}
	t.name = name
	return nil
}

// Definition returns the resolved enum or message, or nil if the type is
// primitive or not yet resolved.
func (t *FieldType) Definition() Definition {
	return t.def
}

func (t *FieldType) SetDefinition(def Definition) error {
	if t.def != nil {
		return errTypeDefinitionAlreadySet(t.name)
	}
	switch def.(type) {
	case *Enum, *Message:
	default:
		return errTypeDefinitionInvalid(t.name, def)
	}
	t.def = def
	return nil
}

// IsComplex reports whether the type resolved to a message.
func (t *FieldType) IsComplex() bool {
	_, ok := t.def.(*Message)
	return t.IsUser() && ok
}

func (t *FieldType) String() string {
	if t.IsUser() {
		return t.name.String()
	}
	return t.type_.String()
}

// A Literal is the default value of a field.
type Literal struct {
	type_ Type
	i     int32
	f     float64
	s     string
	b     bool
}

func IntLiteral(value int32) Literal {
	return Literal{type_: TypeInt, i: value}
}

func DoubleLiteral(value float64) Literal {
	return Literal{type_: TypeDouble, f: value}
}

func StringLiteral(value string) Literal {
	return Literal{type_: TypeString, s: value}
}

func BoolLiteral(value bool) Literal {
	return Literal{type_: TypeBool, b: value}
}

func (l Literal) Type() Type {
	return l.type_
}

func (l Literal) Int() (int32, bool) {
	return l.i, l.type_ == TypeInt
}

func (l Literal) Double() (float64, bool) {
	return l.f, l.type_ == TypeDouble
}

func (l Literal) Text() (string, bool) {
	return l.s, l.type_ == TypeString
}

func (l Literal) Bool() (bool, bool) {
	return l.b, l.type_ == TypeBool
}

// Value returns the literal as an int32, float64, string, or bool.
func (l Literal) Value() any {
	switch l.type_ {
	case TypeInt:
		return l.i
	case TypeDouble:
		return l.f
	case TypeString:
		return l.s
	case TypeBool:
		return l.b
	}
	return nil
}

// CompatibleWith reports whether the literal can be the default value of
// a field with type t. Integer literals fit any integer type, and floating
// point literals fit either float type.
func (l Literal) CompatibleWith(t *FieldType) bool {
	switch {
	case l.type_.IsInteger():
		return t.Type().IsInteger()
	case l.type_.IsFloat():
		return t.Type().IsFloat()
	}
	return l.type_ == t.Type()
}

func (l Literal) String() string {
	switch l.type_ {
	case TypeInt:
		return strconv.FormatInt(int64(l.i), 10)
	case TypeDouble:
		return strconv.FormatFloat(l.f, 'g', -1, 64)
	case TypeString:
		return strconv.Quote(l.s)
	case TypeBool:
		return strconv.FormatBool(l.b)
	}
	return fmt.Sprintf("UNKNOWN_TYPE(%d)", uint8(l.type_))
}

type Modifier uint8

const (
	ModifierNone     Modifier = 0x00
	ModifierMutable  Modifier = 0x01
	ModifierOptional Modifier = 0x02
	ModifierReadonly Modifier = 0x04
	ModifierRepeated Modifier = 0x08
	ModifierRequired Modifier = 0x10
)

var modifierNames = []struct {
	flag Modifier
	name string
}{
	{ModifierMutable, "mutable"},
	{ModifierOptional, "optional"},
	{ModifierReadonly, "readonly"},
	{ModifierRepeated, "repeated"},
	{ModifierRequired, "required"},
}

func LookupModifier(name string) (Modifier, bool) {
	for _, m := range modifierNames {
		if m.name == name {
			return m.flag, true
		}
	}
	return ModifierNone, false
}

func (m Modifier) Has(flag Modifier) bool {
	return m&flag == flag
}

func (m Modifier) Names() []string {
	var names []string
	for _, known := range modifierNames {
		if m.Has(known.flag) {
			names = append(names, known.name)
		}
	}
	return names
}

func (m Modifier) String() string {
	return strings.Join(m.Names(), " ")
}

// CleanModifier makes a field optional unless it is required, and rejects
// conflicting or unsupported combinations.
func CleanModifier(m Modifier) (Modifier, error) {
	if !m.Has(ModifierRequired) {
		m |= ModifierOptional
	}
	if m.Has(ModifierRequired | ModifierOptional) {
		return m, errModifierRequiredOptional()
	}
	if m.Has(ModifierMutable | ModifierReadonly) {
		return m, errModifierMutableReadonly()
	}
	if m.Has(ModifierRepeated) {
		return m, errModifierRepeated()
	}
	return m, nil
}

type FieldOption interface {
	apply(*Field)
}

type fieldOption func(*Field)

func (f fieldOption) apply(field *Field) { f(field) }

// WithBounds makes the field an array, with one bound per dimension.
func WithBounds(bounds ...int) FieldOption {
	return fieldOption(func(field *Field) {
		field.bounds = append(field.bounds, bounds...)
	})
}

func WithOrdinal(ordinal int) FieldOption {
	return fieldOption(func(field *Field) {
		field.ordinal = ordinal
		field.hasOrdinal = true
	})
}

func WithDefault(value Literal) FieldOption {
	return fieldOption(func(field *Field) {
		field.defValue = &value
	})
}

type Field struct {
	definition
	type_      *FieldType
	modifier   Modifier
	bounds     []int
	ordinal    int
	hasOrdinal bool
	defValue   *Literal
}

// NewField validates the modifier, the array bounds and the default value.
// The ordinal is checked later, once the field's scope is final.
func NewField(
	name string,
	type_ *FieldType,
	modifier Modifier,
	opts ...FieldOption,
) (*Field, error) {
	if name == "" {
		return nil, errFieldNameEmpty()
	}
	modifier, err := CleanModifier(modifier)
	if err != nil {
		return nil, err
	}
	field := &Field{
		definition: definition{id: NewIdentifier(name)},
		type_:      type_,
		modifier:   modifier,
	}
	for _, opt := range opts {
		opt.apply(field)
	}
	for _, bound := range field.bounds {
		if bound != Unbounded && bound <= 0 {
			return nil, errInvalidBound(name, bound)
		}
	}
	if field.defValue != nil && !field.defValue.CompatibleWith(type_) {
		return nil, errDefaultTypeMismatch(name, type_, *field.defValue)
	}
	return field, nil
}

func (*Field) Kind() Kind {
	return KindField
}

func (f *Field) Name() string {
	return f.id.Last()
}

func (f *Field) Type() *FieldType {
	return f.type_
}

func (f *Field) Modifier() Modifier {
	return f.modifier
}

func (f *Field) Bounds() []int {
	return slices.Clone(f.bounds)
}

func (f *Field) IsCollection() bool {
	return len(f.bounds) > 0
}

func (f *Field) Ordinal() (int, bool) {
	return f.ordinal, f.hasOrdinal
}

func (f *Field) Default() (Literal, bool) {
	if f.defValue == nil {
		return Literal{}, false
	}
	return *f.defValue, true
}
