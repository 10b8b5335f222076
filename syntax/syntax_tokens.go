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
	"fmt"
	"math"
	"unicode/utf8"
)

const (
	maxSrcLen   = 0x7FFFFFFF // (2**31)-1
	maxTokenLen = int(math.MaxUint16)

	tokenFlagTextHasNoEscapes uint8 = 0x01
)

type Token struct {
	Len   uint16
	Kind  TokenKind
	flags uint8
}

type TokenKind uint8

const (
	T_EOF TokenKind = iota

	T_SPACE
	T_NEWLINE
	T_COMMENT

	T_COMMA
	T_DOT
	T_EQ
	T_SEMICOLON

	T_OPEN_CURL
	T_CLOSE_CURL
	T_OPEN_SQUARE
	T_CLOSE_SQUARE

	T_INT_LIT
	T_HEX_INT_LIT
	T_FLOAT_LIT
	T_TEXT_LIT

	T_IDENT
)

func (k TokenKind) String() string {
	switch k {
	case T_EOF:
		return "EOF"
	case T_SPACE:
		return "SPACE"
	case T_NEWLINE:
		return "NEWLINE"
	case T_COMMENT:
		return "COMMENT"
	case T_COMMA:
		return "COMMA"
	case T_DOT:
		return "DOT"
	case T_EQ:
		return "EQ"
	case T_SEMICOLON:
		return "SEMICOLON"
	case T_OPEN_CURL:
		return "OPEN_CURL"
	case T_CLOSE_CURL:
		return "CLOSE_CURL"
	case T_OPEN_SQUARE:
		return "OPEN_SQUARE"
	case T_CLOSE_SQUARE:
		return "CLOSE_SQUARE"
	case T_INT_LIT:
		return "INT_LIT"
	case T_HEX_INT_LIT:
		return "HEX_INT_LIT"
	case T_FLOAT_LIT:
		return "FLOAT_LIT"
	case T_TEXT_LIT:
		return "TEXT_LIT"
	case T_IDENT:
		return "IDENT"
	default:
		return fmt.Sprintf("TokenKind(%d)", uint8(k))
	}
}

type Tokens struct {
	src    []byte
	offset uint32
}

func NewTokens(src []byte) (*Tokens, error) {
	if len(src) > maxSrcLen {
		return nil, errSourceTooLong(len(src))
	}
	if !utf8.Valid(src) {
		return nil, errInvalidUtf8(src)
	}
	return &Tokens{
		src: src,
	}, nil
}

// Offset is the byte offset of the next token.
func (t *Tokens) Offset() uint32 {
	return t.offset
}

func (t *Tokens) Next(token *Token) error {
	if len(t.src) == 0 {
		*token = Token{
			Kind: T_EOF,
		}
		return nil
	}

	c := t.src[0]
	var kind TokenKind
	switch c {
	case '\t', ' ':
		return t.nextSpace(token)
	case '\n':
		kind = T_NEWLINE
		goto len1
	case ',':
		kind = T_COMMA
		goto len1
	case '.':
		kind = T_DOT
		goto len1
	case '=':
		kind = T_EQ
		goto len1
	case ';':
		kind = T_SEMICOLON
		goto len1
	case '{':
		kind = T_OPEN_CURL
		goto len1
	case '}':
		kind = T_CLOSE_CURL
		goto len1
	case '[':
		kind = T_OPEN_SQUARE
		goto len1
	case ']':
		kind = T_CLOSE_SQUARE
		goto len1
	case '/':
		if len(t.src) > 1 && t.src[1] == '/' {
			return t.nextLineComment(token)
		}
		if len(t.src) > 1 && t.src[1] == '*' {
			return t.nextBlockComment(token)
		}
		return errUnexpectedCharacter(t.offset, '/')
	case '"':
		return t.nextTextLit(token)
	case '\r':
		if len(t.src) < 2 || t.src[1] != '\n' {
			return errForbiddenControlCharacter(t.offset, c)
		}
		*token = Token{
			Kind: T_NEWLINE,
			Len:  2,
		}
		t.offset += 2
		t.src = t.src[2:]
		return nil
	default:
		goto big
	}

len1:
	*token = Token{
		Kind: kind,
		Len:  1,
	}
	t.offset += 1
	t.src = t.src[1:]
	return nil

big:
	if (c >= '0' && c <= '9') || c == '-' {
		return t.nextNumLit(token)
	}

	if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_' {
		return t.nextIdent(token)
	}

	r, _ := utf8.DecodeRune(t.src)
	if r == '\u00A0' {
		return t.nextSpace(token)
	}

	if r < 0x20 || r == 0x7F {
		return errForbiddenControlCharacter(t.offset, c)
	}
	return errUnexpectedCharacter(t.offset, r)
}

func (t *Tokens) nextSpace(token *Token) error {
	src := t.src
	for {
		if src[0] == ' ' || src[0] == '\t' {
			src = src[1:]
		} else if r, runeLen := utf8.DecodeRune(src); r == '\u00A0' {
			src = src[runeLen:]
		} else {
			break
		}
		if len(src) == 0 {
			break
		}
	}
	return t.emit(token, T_SPACE, len(t.src)-len(src), 0)
}

func (t *Tokens) nextLineComment(token *Token) error {
	tokenLen := len(t.src)
	for ii, c := range t.src {
		if c == '\n' || c == '\r' {
			tokenLen = ii
			break
		}
	}
	return t.emit(token, T_COMMENT, tokenLen, 0)
}

func (t *Tokens) nextBlockComment(token *Token) error {
	for ii := 2; ii+1 < len(t.src); ii++ {
		if t.src[ii] == '*' && t.src[ii+1] == '/' {
			return t.emit(token, T_COMMENT, ii+2, 0)
		}
	}
	return errBlockCommentUnterminated(t.offset, len(t.src))
}

func (t *Tokens) nextNumLit(token *Token) error {
	numSrc := t.src

	tokenLen := 0
	if numSrc[0] == '-' {
		if len(numSrc) == 1 || numSrc[1] < '0' || numSrc[1] > '9' {
			return errIntLitInvalid(t.offset, t.src[:1])
		}
		tokenLen += 1
		numSrc = numSrc[1:]
	}

	isAlnum := func(c byte) bool {
		return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
	}

	if len(numSrc) > 1 && numSrc[0] == '0' && numSrc[1] == 'x' {
		digits := 0
		invalid := false
		ii := 2
		for ; ii < len(numSrc) && isAlnum(numSrc[ii]); ii++ {
			c := numSrc[ii]
			if (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f') {
				digits++
				continue
			}
			invalid = true
		}
		tokenLen += ii
		if invalid || digits == 0 {
			return errIntLitInvalid(t.offset, t.src[:tokenLen])
		}
		return t.emit(token, T_HEX_INT_LIT, tokenLen, 0)
	}

	kind := T_INT_LIT
	invalid := false
	ii := 0
	for ; ii < len(numSrc) && isAlnum(numSrc[ii]); ii++ {
		if numSrc[ii] < '0' || numSrc[ii] > '9' {
			if numSrc[ii] == 'e' || numSrc[ii] == 'E' {
				break
			}
			invalid = true
		}
	}
	intDigits := ii
	if !invalid && intDigits > 1 && numSrc[0] == '0' {
		invalid = true
	}

	// Fraction, then exponent.
	if ii+1 < len(numSrc) && numSrc[ii] == '.' && numSrc[ii+1] >= '0' && numSrc[ii+1] <= '9' {
		kind = T_FLOAT_LIT
		ii++
		for ; ii < len(numSrc) && isAlnum(numSrc[ii]); ii++ {
			if numSrc[ii] == 'e' || numSrc[ii] == 'E' {
				break
			}
			if numSrc[ii] < '0' || numSrc[ii] > '9' {
				invalid = true
			}
		}
	}
	if ii < len(numSrc) && (numSrc[ii] == 'e' || numSrc[ii] == 'E') {
		kind = T_FLOAT_LIT
		ii++
		if ii < len(numSrc) && (numSrc[ii] == '+' || numSrc[ii] == '-') {
			ii++
		}
		expDigits := 0
		for ; ii < len(numSrc) && isAlnum(numSrc[ii]); ii++ {
			if numSrc[ii] < '0' || numSrc[ii] > '9' {
				invalid = true
			}
			expDigits++
		}
		if expDigits == 0 {
			invalid = true
		}
	}

	tokenLen += ii
	if invalid {
		if kind == T_FLOAT_LIT {
			return errFloatLitInvalid(t.offset, t.src[:tokenLen])
		}
		return errIntLitInvalid(t.offset, t.src[:tokenLen])
	}
	return t.emit(token, kind, tokenLen, 0)
}

func (t *Tokens) nextTextLit(token *Token) error {
	escaped := false
	hasEscapes := false
	tokenLen := 0
	for ii, c := range t.src {
		if ii == 0 {
			continue
		}
		if escaped {
			escaped = false
			continue
		}
		if c == '"' {
			tokenLen = ii + 1
			break
		}
		if (c <= 0x1F || c == 0x7F) && c != 0x09 {
			off := t.offset + uint32(ii)
			if c == 0x0A {
				return errTextLitContainsNewline(off, 1)
			}
			if c == 0x0D && ii+1 < len(t.src) && t.src[ii+1] == 0x0A {
				return errTextLitContainsNewline(off, 2)
			}
			return errForbiddenControlCharacter(off, c)
		}
		if c == '\\' {
			escaped = true
			hasEscapes = true
		}
	}
	if tokenLen == 0 {
		return errTextLitUnterminated(t.offset, uint32(len(t.src)))
	}

	var flags uint8
	if !hasEscapes {
		flags |= tokenFlagTextHasNoEscapes
	}
	return t.emit(token, T_TEXT_LIT, tokenLen, flags)
}

func (t *Tokens) nextIdent(token *Token) error {
	tokenLen := len(t.src)
	for ii, c := range t.src {
		if ii == 0 {
			continue
		}
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		tokenLen = ii
		break
	}

	if tokenLen == 1 && t.src[0] == '_' {
		return errIdentInvalid(t.offset, t.src[:1])
	}
	return t.emit(token, T_IDENT, tokenLen, 0)
}

func (t *Tokens) emit(token *Token, kind TokenKind, tokenLen int, flags uint8) error {
	if tokenLen > maxTokenLen {
		return errTokenTooLong(t.offset, tokenLen)
	}
	*token = Token{
		Kind:  kind,
		Len:   uint16(tokenLen),
		flags: flags,
	}
	t.offset += uint32(tokenLen)
	t.src = t.src[tokenLen:]
	return nil
}
