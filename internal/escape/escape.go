// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings, used for the
// quoted member names of a keypath.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote escapes src for inclusion in a JSON string. Enclosing quotation
// marks are not added.
func Quote(src mem.RO) string {
	buf := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		switch {
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				buf = append(buf, '\\', b)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
			}
		case r == '"' || r == '\\':
			buf = append(buf, '\\', byte(r))
		case r == '\u2028' || r == '\u2029':
			buf = fmt.Appendf(buf, `\u%04x`, r)
		default:
			buf = utf8.AppendRune(buf, r)
		}
	}
	return string(buf)
}

// Unquote decodes the contents of a JSON string. The input must have the
// enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents, and a
// \u-escaped surrogate pair is combined into a single rune. Invalid escapes
// are replaced by the Unicode replacement rune. Unquote reports an error for
// an incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	for {
		plain, esc, ok := mem.Cut(src, backslash)
		dec = mem.Append(dec, plain)
		if !ok {
			return dec, nil
		} else if esc.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}

		r, n := mem.DecodeRune(esc)
		src = esc.SliceFrom(n)
		if r == 'u' {
			u, rest, err := decodeUTF16(src)
			if err != nil {
				return nil, err
			}
			dec = utf8.AppendRune(dec, u)
			src = rest
		} else if b, ok := unescape[r]; ok {
			dec = append(dec, b)
		} else {
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}
	}
}

var backslash = mem.S(`\`)

var unescape = map[rune]byte{
	'"': '"', '\\': '\\', '/': '/',
	'b': '\b', 'f': '\f', 'n': '\n', 'r': '\r', 't': '\t',
}

// decodeUTF16 decodes the code unit following a \u escape. If the unit is
// the high half of a surrogate pair and a \u-escaped low half follows, both
// are consumed and combined. An unpaired or malformed unit decodes as the
// replacement rune.
func decodeUTF16(src mem.RO) (rune, mem.RO, error) {
	hi, ok, err := hex4(src)
	if err != nil {
		return 0, src, err
	}
	src = src.SliceFrom(4)
	switch {
	case !ok:
		return utf8.RuneError, src, nil
	case !utf16.IsSurrogate(hi):
		return hi, src, nil
	}
	low, found := mem.CutPrefix(src, mem.S(`\u`))
	if !found {
		return utf8.RuneError, src, nil
	}
	lo, ok, _ := hex4(low)
	if r := utf16.DecodeRune(hi, lo); ok && r != utf8.RuneError {
		return r, low.SliceFrom(4), nil
	}
	return utf8.RuneError, src, nil
}

// hex4 parses the four hex digits at the start of src. It reports an error
// if src is too short, and false if the digits are malformed.
func hex4(src mem.RO) (rune, bool, error) {
	if src.Len() < 4 {
		return 0, false, errors.New("incomplete Unicode escape")
	}
	v, err := mem.ParseUint(src.SliceTo(4), 16, 16)
	return rune(v), err == nil, nil
}
