// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/creachadair/jnode/keypath"
)

// Error kinds reported by parsing and decoding. Use errors.Is to check the
// kind of an error returned by this package.
var (
	// ErrSyntax means the input is not valid JSON.
	ErrSyntax = errors.New("invalid JSON syntax")

	// ErrUnrecognized means a value matched none of the recognized types.
	ErrUnrecognized = errors.New("unrecognized value")

	// ErrPathNotFound means a keypath does not resolve in the input.
	ErrPathNotFound = errors.New("path not found")

	// ErrTypeMismatch means a keypath resolved, but to a value of the wrong
	// type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnsupportedTag means a tag is not a valid replay target.
	ErrUnsupportedTag = errors.New("unsupported tag")

	// ErrUnknownTag means an encoded schema contains an unknown code.
	ErrUnknownTag = errors.New("unknown tag code")
)

// ParseError is the concrete type of errors reported by the parser.
type ParseError struct {
	Kind error           // one of ErrSyntax or ErrUnrecognized
	Path keypath.Keypath // location of the offending value, if known
	Loc  *Location       // position of a syntax error in the input, or nil
	Err  error           // the underlying cause, or nil
}

// A Location describes a position in JSON source text.
type Location struct {
	Offset int // byte offset, 0-based
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	return formatError("parse", e.Kind, e.Path, "", e.Err)
}

// Unwrap supports error wrapping. Both the kind and the cause are visible to
// errors.Is and errors.As.
func (e *ParseError) Unwrap() []error { return unwrapPair(e.Kind, e.Err) }

// DecodeError is the concrete type of errors reported by path-replay
// decoding and by the schema codec.
type DecodeError struct {
	Kind error           // one of the Err* kinds other than ErrUnrecognized
	Path keypath.Keypath // the location at which decoding failed
	Tag  Tag             // the requested tag, if any
	Err  error           // the underlying cause, or nil
}

// Error satisfies the error interface.
func (e *DecodeError) Error() string {
	var tag string
	if e.Tag != nil {
		tag = e.Tag.String()
	}
	return formatError("decode", e.Kind, e.Path, tag, e.Err)
}

// Unwrap supports error wrapping. Both the kind and the cause are visible to
// errors.Is and errors.As.
func (e *DecodeError) Unwrap() []error { return unwrapPair(e.Kind, e.Err) }

func formatError(op string, kind error, kp keypath.Keypath, tag string, cause error) string {
	msg := fmt.Sprintf("%s: %v", op, kind)
	if !kp.IsRoot() {
		msg += fmt.Sprintf(" at %s", kp.JSONPath())
	}
	if tag != "" {
		msg += fmt.Sprintf(" (want %s)", tag)
	}
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return msg
}

func unwrapPair(kind, cause error) []error {
	if cause == nil {
		return []error{kind}
	}
	return []error{kind, cause}
}

// syntaxError reports err as a syntax error in text. If err carries a line
// and column from hujson, the error records the corresponding location.
func syntaxError(text []byte, err error) error {
	pe := &ParseError{Kind: ErrSyntax, Err: err}
	var line, col int
	if _, serr := fmt.Sscanf(err.Error(), "hujson: line %d, column %d:", &line, &col); serr == nil {
		pe.Loc = locate(text, line, col)
	}
	return pe
}

// locate converts a 1-based line and column in text into a Location. It
// returns nil if the position is not within text.
func locate(text []byte, line, col int) *Location {
	if line < 1 || col < 1 {
		return nil
	}
	var start int
	for range line - 1 {
		i := bytes.IndexByte(text[start:], '\n')
		if i < 0 {
			return nil
		}
		start += i + 1
	}
	off := start + col - 1
	if off > len(text) {
		return nil
	}
	return &Location{Offset: off, Line: line, Column: col - 1}
}
