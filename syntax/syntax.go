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

// Package syntax parses schema source into an [ast.Namespace].
package syntax

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vrai/SimpleFudgeProto/ast"
)

type Span struct {
	start, len uint32
}

func NewSpan(start, len uint32) Span {
	return Span{start, len}
}

func (s Span) Start() uint32 {
	return s.start
}

func (s Span) End() uint32 {
	return s.start + s.len
}

func (s Span) Len() uint32 {
	return s.len
}

// Position returns the 1-based line and column of the start of span. Columns
// count characters, not bytes.
func Position(src []byte, span Span) (line, column int) {
	start := int(span.start)
	if start > len(src) {
		start = len(src)
	}
	line = 1
	lineStart := 0
	for ii := 0; ii < start; ii++ {
		if src[ii] == '\n' {
			line++
			lineStart = ii + 1
		}
	}
	column = utf8.RuneCount(src[lineStart:start]) + 1
	return line, column
}

// Parse returns the anonymous root namespace holding every declaration in
// src. Parsing keeps no state between calls.
func Parse(src []byte) (*ast.Namespace, error) {
	ctx, err := newParseCtx(src)
	if err != nil {
		return nil, err
	}
	root := ast.NewNamespace(nil)
	for ctx.err == nil && ctx.peek(0).kind != T_EOF {
		parseDecl(ctx, root)
	}
	if ctx.err != nil {
		return nil, ctx.err
	}
	return root, nil
}

// A lexeme is a significant token: spaces, newlines, and comments are
// dropped before parsing.
type lexeme struct {
	kind  TokenKind
	text  string
	span  Span
	flags uint8
}

type parseCtx struct {
	lexemes []lexeme
	pos     int
	err     error
}

func newParseCtx(src []byte) (*parseCtx, error) {
	tokens, err := NewTokens(src)
	if err != nil {
		return nil, err
	}
	ctx := &parseCtx{}
	for {
		start := tokens.Offset()
		var token Token
		if err := tokens.Next(&token); err != nil {
			return nil, err
		}
		switch token.Kind {
		case T_SPACE, T_NEWLINE, T_COMMENT:
			continue
		}
		ctx.lexemes = append(ctx.lexemes, lexeme{
			kind:  token.Kind,
			text:  string(src[start : start+uint32(token.Len)]),
			span:  Span{start, uint32(token.Len)},
			flags: token.flags,
		})
		if token.Kind == T_EOF {
			return ctx, nil
		}
	}
}

func (ctx *parseCtx) peek(offset int) lexeme {
	if ctx.pos+offset >= len(ctx.lexemes) {
		return ctx.lexemes[len(ctx.lexemes)-1]
	}
	return ctx.lexemes[ctx.pos+offset]
}

func (ctx *parseCtx) advance() lexeme {
	token := ctx.peek(0)
	if token.kind != T_EOF {
		ctx.pos++
	}
	return token
}

func (ctx *parseCtx) peekKeyword(offset int, keyword string) bool {
	token := ctx.peek(offset)
	return token.kind == T_IDENT && token.text == keyword
}

func (ctx *parseCtx) sigil(kind TokenKind) {
	if ctx.err != nil {
		return
	}
	if ctx.peek(0).kind != kind {
		ctx.err = errExpectedSigil(kind, ctx.peek(0))
		return
	}
	ctx.advance()
}

func (ctx *parseCtx) trySigil(kind TokenKind) bool {
	if ctx.err != nil || ctx.peek(0).kind != kind {
		return false
	}
	ctx.advance()
	return true
}

func (ctx *parseCtx) tryKeyword(keyword string) bool {
	if ctx.err != nil || !ctx.peekKeyword(0, keyword) {
		return false
	}
	ctx.advance()
	return true
}

func (ctx *parseCtx) ident() string {
	if ctx.err != nil {
		return ""
	}
	if ctx.peek(0).kind != T_IDENT {
		ctx.err = errExpectedIdent(ctx.peek(0))
		return ""
	}
	return ctx.advance().text
}

func (ctx *parseCtx) qname() *ast.Identifier {
	id := ast.NewIdentifier(ctx.ident())
	for ctx.trySigil(T_DOT) {
		id.Append(ctx.ident())
	}
	return id
}

func (ctx *parseCtx) int32Lit() int32 {
	if ctx.err != nil {
		return 0
	}
	token := ctx.peek(0)
	if token.kind != T_INT_LIT && token.kind != T_HEX_INT_LIT {
		ctx.err = errExpectedIntLit(token)
		return 0
	}
	ctx.advance()
	value, ok := parseInt32(token)
	if !ok {
		ctx.err = errIntLitOutOfRange(token)
	}
	return value
}

func parseInt32(token lexeme) (int32, bool) {
	digits := token.text
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")
	base := 10
	if token.kind == T_HEX_INT_LIT {
		base = 16
		digits = digits[2:]
	}
	value, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		if value > -math.MinInt32 {
			return 0, false
		}
		return int32(-int64(value)), true
	}
	if value > math.MaxInt32 {
		return 0, false
	}
	return int32(value), true
}

func (ctx *parseCtx) literal() ast.Literal {
	if ctx.err != nil {
		return ast.Literal{}
	}
	token := ctx.peek(0)
	switch token.kind {
	case T_INT_LIT, T_HEX_INT_LIT:
		return ast.IntLiteral(ctx.int32Lit())
	case T_FLOAT_LIT:
		ctx.advance()
		value, err := strconv.ParseFloat(token.text, 64)
		if err != nil {
			ctx.err = errFloatLitInvalid(token.span.start, []byte(token.text))
		}
		return ast.DoubleLiteral(value)
	case T_TEXT_LIT:
		ctx.advance()
		value, ok := unquoteText(token)
		if !ok {
			ctx.err = errTextLitInvalid(token)
		}
		return ast.StringLiteral(value)
	case T_IDENT:
		switch token.text {
		case "true":
			ctx.advance()
			return ast.BoolLiteral(true)
		case "false":
			ctx.advance()
			return ast.BoolLiteral(false)
		}
	}
	ctx.err = errExpectedLiteral(token)
	return ast.Literal{}
}

func unquoteText(token lexeme) (string, bool) {
	value := token.text[1 : len(token.text)-1]
	if token.flags&tokenFlagTextHasNoEscapes != 0 {
		return value, true
	}
	var buf strings.Builder
	for len(value) > 0 {
		c := value[0]
		value = value[1:]
		if c != '\\' {
			buf.WriteByte(c)
			continue
		}
		if len(value) == 0 {
			return "", false
		}
		switch value[0] {
		case '"', '\\':
			buf.WriteByte(value[0])
		case 'n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case 't':
			buf.WriteByte('\t')
		default:
			return "", false
		}
		value = value[1:]
	}
	return buf.String(), true
}

type container interface {
	ast.Definition
	AddContent(ast.Definition) error
}

func (ctx *parseCtx) add(parent container, child ast.Definition, span Span) {
	if ctx.err != nil {
		return
	}
	if err := parent.AddContent(child); err != nil {
		ctx.err = errInvalidContent(span, err)
	}
}

func parseDecl(ctx *parseCtx, parent *ast.Namespace) {
	token := ctx.peek(0)
	switch {
	case ctx.peekKeyword(0, "namespace"):
		parseNamespace(ctx, parent)
	case ctx.peekKeyword(0, "extern"):
		parseExtern(ctx, parent)
	case ctx.peekKeyword(0, "message"):
		parseMessage(ctx, parent)
	case ctx.peekKeyword(0, "enum"):
		parseEnum(ctx, parent)
	default:
		ctx.err = errExpectedDeclaration(token)
	}
}

func parseNamespace(ctx *parseCtx, parent *ast.Namespace) {
	start := ctx.advance()
	ns := ast.NewNamespace(ctx.qname())
	ctx.sigil(T_OPEN_CURL)
	for ctx.err == nil && !ctx.trySigil(T_CLOSE_CURL) {
		if ctx.peek(0).kind == T_EOF {
			ctx.err = errExpectedSigil(T_CLOSE_CURL, ctx.peek(0))
			return
		}
		parseDecl(ctx, ns)
	}
	ctx.trySigil(T_SEMICOLON)
	ctx.add(parent, ns, start.span)
}

func parseExtern(ctx *parseCtx, parent container) {
	start := ctx.advance()
	if !ctx.tryKeyword("message") {
		ctx.err = errExpectedKeywordMessage(ctx.peek(0))
		return
	}
	msg := ast.NewMessage(ast.NewIdentifier(ctx.ident()), true)
	ctx.sigil(T_SEMICOLON)
	ctx.add(parent, msg, start.span)
}

func parseMessage(ctx *parseCtx, parent container) {
	start := ctx.advance()
	msg := ast.NewMessage(ast.NewIdentifier(ctx.ident()), false)
	if ctx.tryKeyword("extends") {
		parents := []*ast.Identifier{ctx.qname()}
		for ctx.trySigil(T_COMMA) {
			parents = append(parents, ctx.qname())
		}
		if ctx.err == nil {
			// A freshly created message is never extern.
			_ = msg.AddParents(parents...)
		}
	}
	ctx.sigil(T_OPEN_CURL)
	for ctx.err == nil && !ctx.trySigil(T_CLOSE_CURL) {
		parseMember(ctx, msg)
	}
	ctx.trySigil(T_SEMICOLON)
	ctx.add(parent, msg, start.span)
}

func parseMember(ctx *parseCtx, msg *ast.Message) {
	token := ctx.peek(0)
	switch {
	case token.kind == T_EOF:
		ctx.err = errExpectedSigil(T_CLOSE_CURL, token)
	case ctx.peekKeyword(0, "namespace"):
		ctx.err = errNamespaceInMessage(token)
	case ctx.peekKeyword(0, "extern"):
		parseExtern(ctx, msg)
	case ctx.peekKeyword(0, "enum"):
		parseEnum(ctx, msg)
	case ctx.peekKeyword(0, "message") && isNestedMessage(ctx):
		parseMessage(ctx, msg)
	default:
		parseField(ctx, msg)
	}
}

// isNestedMessage distinguishes "message Name {" and "message Name extends"
// from a field of the primitive message type.
func isNestedMessage(ctx *parseCtx) bool {
	if ctx.peek(1).kind != T_IDENT {
		return false
	}
	return ctx.peek(2).kind == T_OPEN_CURL || ctx.peekKeyword(2, "extends")
}

func parseEnum(ctx *parseCtx, parent container) {
	start := ctx.advance()
	enum := ast.NewEnum(ast.NewIdentifier(ctx.ident()))
	ctx.sigil(T_OPEN_CURL)
	for ctx.err == nil && !ctx.trySigil(T_CLOSE_CURL) {
		item := ctx.peek(0)
		name := ctx.ident()
		if ctx.trySigil(T_EQ) {
			enum.AppendValue(name, ctx.int32Lit())
		} else if err := enum.Append(name); err != nil && ctx.err == nil {
			ctx.err = errInvalidContent(item.span, err)
		}
		if !ctx.trySigil(T_COMMA) && !ctx.trySigil(T_SEMICOLON) {
			ctx.sigil(T_CLOSE_CURL)
			break
		}
	}
	ctx.trySigil(T_SEMICOLON)
	ctx.add(parent, enum, start.span)
}

func parseField(ctx *parseCtx, msg *ast.Message) {
	start := ctx.peek(0)

	modifier := ast.ModifierNone
	for ctx.peek(0).kind == T_IDENT && ctx.peek(1).kind == T_IDENT {
		flag, ok := ast.LookupModifier(ctx.peek(0).text)
		if !ok {
			break
		}
		modifier |= flag
		ctx.advance()
	}

	fieldType := parseFieldType(ctx)

	var opts []ast.FieldOption
	var bounds []int
	for ctx.trySigil(T_OPEN_SQUARE) {
		if ctx.trySigil(T_CLOSE_SQUARE) {
			bounds = append(bounds, ast.Unbounded)
			continue
		}
		bounds = append(bounds, int(ctx.int32Lit()))
		ctx.sigil(T_CLOSE_SQUARE)
	}
	if len(bounds) > 0 {
		opts = append(opts, ast.WithBounds(bounds...))
	}

	name := ctx.ident()
	if ctx.trySigil(T_EQ) {
		opts = append(opts, ast.WithOrdinal(int(ctx.int32Lit())))
	}
	if ctx.trySigil(T_OPEN_SQUARE) {
		if !ctx.tryKeyword("default") {
			if ctx.err == nil {
				ctx.err = errExpectedKeywordDefault(ctx.peek(0))
			}
			return
		}
		ctx.sigil(T_EQ)
		opts = append(opts, ast.WithDefault(ctx.literal()))
		ctx.sigil(T_CLOSE_SQUARE)
	}
	end := ctx.peek(0)
	ctx.sigil(T_SEMICOLON)
	if ctx.err != nil {
		return
	}

	span := Span{start.span.start, end.span.End() - start.span.start}
	field, err := ast.NewField(name, fieldType, modifier, opts...)
	if err != nil {
		ctx.err = errFieldInvalid(name, span, err)
		return
	}
	ctx.add(msg, field, span)
}

func parseFieldType(ctx *parseCtx) *ast.FieldType {
	if ctx.err != nil {
		return nil
	}
	token := ctx.peek(0)
	if token.kind != T_IDENT {
		ctx.err = errExpectedFieldType(token)
		return nil
	}
	if primitive, ok := ast.LookupPrimitive(token.text); ok {
		ctx.advance()
		fieldType, err := ast.PrimitiveType(primitive)
		if err != nil {
			ctx.err = errInvalidContent(token.span, err)
		}
		return fieldType
	}
	fieldType, err := ast.UserType(ctx.qname())
	if err != nil && ctx.err == nil {
		ctx.err = errInvalidContent(token.span, err)
	}
	return fieldType
}
