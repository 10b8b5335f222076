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

package syntax

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vrai/SimpleFudgeProto/ast"
)

type Error struct {
	code    uint32
	message string
	span    Span
	cause   error
}

var _ error = (*Error)(nil)

func (err *Error) Error() string {
	return fmt.Sprintf("E%d: %s", err.code, err.message)
}

func (err *Error) Code() uint32 {
	return err.code
}

// Kind reports the kind of the wrapped cause, if any. Other syntax errors
// are bad input.
func (err *Error) Kind() ast.ErrorKind {
	var astErr *ast.Error
	if errors.As(err.cause, &astErr) {
		return astErr.Kind()
	}
	return ast.ErrorKindSemantic
}

func (err *Error) Message() string {
	return err.message
}

func (err *Error) Span() Span {
	return err.span
}

func (err *Error) Unwrap() error {
	return err.cause
}

func clampLen(n int) uint32 {
	if uint64(n) < math.MaxUint32 {
		return uint32(n)
	}
	return math.MaxUint32
}

func errSourceTooLong(srcLen int) error {
	return &Error{
		code: 1000,
		message: fmt.Sprintf(
			"Source file size (%d bytes) exceeds maximum (%d bytes)",
			srcLen, maxSrcLen,
		),
		span: Span{0, clampLen(srcLen)},
	}
}

func errInvalidUtf8(src []byte) error {
	var off uint32
	for len(src) > 0 {
		r, size := utf8.DecodeRune(src)
		if r == utf8.RuneError {
			break
		}
		off += uint32(size)
		src = src[size:]
	}
	return &Error{
		code:    1001,
		message: "Source file contains invalid UTF-8",
		span:    Span{off, 1},
	}
}

func errUnexpectedCharacter(start uint32, r rune) error {
	return &Error{
		code:    1002,
		message: fmt.Sprintf("Unexpected character '%s' (U+%04X)", string(r), r),
		span:    Span{start, uint32(utf8.RuneLen(r))},
	}
}

func errForbiddenControlCharacter(start uint32, c byte) error {
	return &Error{
		code:    1003,
		message: fmt.Sprintf("Forbidden control character U+%04X", c),
		span:    Span{start, 1},
	}
}

func errTokenTooLong(start uint32, tokenLen int) error {
	return &Error{
		code: 1004,
		message: fmt.Sprintf(
			"Token size (%d bytes) exceeds maximum (%d bytes)",
			tokenLen, maxTokenLen,
		),
		span: Span{start, clampLen(tokenLen)},
	}
}

func errIntLitInvalid(start uint32, token []byte) error {
	return &Error{
		code:    1005,
		message: fmt.Sprintf("Invalid integer literal %q", token),
		span:    Span{start, clampLen(len(token))},
	}
}

func errTextLitUnterminated(start, tokenLen uint32) error {
	return &Error{
		code:    1006,
		message: "Unterminated text literal",
		span:    Span{start, tokenLen},
	}
}

func errTextLitContainsNewline(start, newlineLen uint32) error {
	return &Error{
		code:    1007,
		message: "Text literal contains unescaped newline",
		span:    Span{start, newlineLen},
	}
}

func errIdentInvalid(start uint32, token []byte) error {
	return &Error{
		code:    1008,
		message: fmt.Sprintf("Invalid identifier %q", token),
		span:    Span{start, clampLen(len(token))},
	}
}

func errBlockCommentUnterminated(start uint32, tokenLen int) error {
	return &Error{
		code:    1009,
		message: "Unterminated block comment",
		span:    Span{start, clampLen(tokenLen)},
	}
}

func errFloatLitInvalid(start uint32, token []byte) error {
	return &Error{
		code:    1010,
		message: fmt.Sprintf("Invalid floating point literal %q", token),
		span:    Span{start, clampLen(len(token))},
	}
}

func errExpectedSigil(wantKind TokenKind, got lexeme) error {
	var code uint32
	var want string
	switch wantKind {
	case T_OPEN_CURL:
		code = 2000
		want = "{"
	case T_CLOSE_CURL:
		code = 2001
		want = "}"
	case T_OPEN_SQUARE:
		code = 2002
		want = "["
	case T_CLOSE_SQUARE:
		code = 2003
		want = "]"
	case T_EQ:
		code = 2004
		want = "="
	case T_SEMICOLON:
		code = 2005
		want = ";"
	case T_COMMA:
		code = 2006
		want = ","
	case T_DOT:
		code = 2007
		want = "."
	default:
		panic("unreachable")
	}
	return &Error{
		code:    code,
		message: fmt.Sprintf("Expected sigil '%s', got (%s %q)", want, got.kind, got.text),
		span:    got.span,
	}
}

func errExpectedIntLit(got lexeme) error {
	return &Error{
		code:    2010,
		message: fmt.Sprintf("Expected integer literal, got (%s %q)", got.kind, got.text),
		span:    got.span,
	}
}

func errExpectedLiteral(got lexeme) error {
	return &Error{
		code:    2011,
		message: fmt.Sprintf("Expected default value literal, got (%s %q)", got.kind, got.text),
		span:    got.span,
	}
}

func errExpectedIdent(got lexeme) error {
	return &Error{
		code:    2012,
		message: fmt.Sprintf("Expected identifier, got (%s %q)", got.kind, got.text),
		span:    got.span,
	}
}

func errExpectedDeclaration(got lexeme) error {
	return &Error{
		code:    2013,
		message: fmt.Sprintf("Expected declaration keyword, got (%s %q)", got.kind, got.text),
		span:    got.span,
	}
}

func errExpectedKeywordMessage(got lexeme) error {
	return &Error{
		code:    2014,
		message: fmt.Sprintf("Expected keyword 'message' after 'extern', got (%s %q)", got.kind, got.text),
		span:    got.span,
	}
}

func errExpectedKeywordDefault(got lexeme) error {
	return &Error{
		code:    2015,
		message: fmt.Sprintf("Expected keyword 'default', got (%s %q)", got.kind, got.text),
		span:    got.span,
	}
}

func errIntLitOutOfRange(got lexeme) error {
	return &Error{
		code: 2016,
		message: fmt.Sprintf(
			"Integer literal %s out of range (must be between %d and %d)",
			got.text, math.MinInt32, math.MaxInt32,
		),
		span: got.span,
	}
}

func errExpectedFieldType(got lexeme) error {
	return &Error{
		code:    2017,
		message: fmt.Sprintf("Expected field type, got (%s %q)", got.kind, got.text),
		span:    got.span,
	}
}

func errFieldInvalid(name string, span Span, cause error) error {
	var message string
	var astErr *ast.Error
	if errors.As(cause, &astErr) {
		message = astErr.Message()
	} else {
		message = cause.Error()
	}
	return &Error{
		code:    2018,
		message: fmt.Sprintf("Invalid field '%s': %s", name, message),
		span:    span,
		cause:   cause,
	}
}

func errNamespaceInMessage(got lexeme) error {
	return &Error{
		code:    2019,
		message: "Namespaces cannot be declared inside a message",
		span:    got.span,
	}
}

func errTextLitInvalid(got lexeme) error {
	return &Error{
		code:    2020,
		message: fmt.Sprintf("Invalid text literal %s", got.text),
		span:    got.span,
	}
}

func errInvalidContent(span Span, cause error) error {
	var astErr *ast.Error
	message := cause.Error()
	if errors.As(cause, &astErr) {
		message = astErr.Message()
	}
	return &Error{
		code:    2021,
		message: message,
		span:    span,
		cause:   cause,
	}
}
