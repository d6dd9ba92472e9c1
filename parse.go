// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/creachadair/jnode/keypath"
	"github.com/tailscale/hujson"
)

// Options control how JSON input is parsed. A nil *Options is ready for use
// and equivalent to a zero Options.
type Options struct {
	// AllowJWCC admits comments and trailing commas in JSON text, as
	// defined by https://nigeltao.github.io/blog/2021/json-with-commas-comments.html.
	// Otherwise such input is reported as a syntax error.
	AllowJWCC bool

	// ParseTimes tries to decode every string as an ISO-8601 timestamp
	// before treating it as a string.
	//
	// By default, timestamps are the last interpretation tried, after
	// strings. Since every timestamp is also a string, a document parsed
	// without this option never contains a Time.
	ParseTimes bool
}

// ParseJSON parses text as a single JSON value and returns its node tree.
// The root of the tree has the empty keypath.
func ParseJSON(text []byte) (Node, error) { return (*Options)(nil).ParseJSON(text) }

// ParseValue converts a JSON value into a node tree. The root of the tree
// has the empty keypath.
func ParseValue(v hujson.Value) (Node, error) { return (*Options)(nil).ParseValue(v) }

// ParseValueAt converts a JSON value into a node tree whose root has the
// keypath base. Use this to parse a subdocument while keeping track of
// where it was extracted from.
func ParseValueAt(base keypath.Keypath, v hujson.Value) (Node, error) {
	return (*Options)(nil).ParseValueAt(base, v)
}

// ParseJSON parses text as a single JSON value and returns its node tree.
// It reports an error wrapping ErrSyntax if text is not a valid JSON value.
func (o *Options) ParseJSON(text []byte) (Node, error) {
	v, err := o.parseText(text)
	if err != nil {
		return Node{}, syntaxError(text, err)
	}
	return o.ParseValueAt(keypath.Init(), v)
}

// ParseValue converts a JSON value into a node tree with a root at the empty
// keypath.
func (o *Options) ParseValue(v hujson.Value) (Node, error) {
	return o.ParseValueAt(keypath.Init(), v)
}

// ParseValueAt converts a JSON value into a node tree whose root has the
// keypath base.
//
// The tree is built in two passes: First, the value is decoded recursively
// into nodes with empty keypaths. Then each node is stamped with its
// keypath, top-down from base.
func (o *Options) ParseValueAt(base keypath.Keypath, v hujson.Value) (Node, error) {
	root, err := o.decode(v.Value, base)
	if err != nil {
		return Node{}, err
	}
	root.stamp(base)
	return root, nil
}

var errNonStandard = errors.New("comments or trailing commas are not allowed")

// parseText parses text as a JSON value, subject to the settings of o.
func (o *Options) parseText(text []byte) (hujson.Value, error) {
	v, err := hujson.Parse(text)
	if err != nil {
		return hujson.Value{}, err
	}
	if !o.allowJWCC() && !v.IsStandard() {
		return hujson.Value{}, errNonStandard
	}
	return v, nil
}

func (o *Options) allowJWCC() bool  { return o != nil && o.AllowJWCC }
func (o *Options) parseTimes() bool { return o != nil && o.ParseTimes }

// An interpretation tries to decode v as one kind of value. It reports false
// if v does not have that kind. The path locates v for error reporting.
type interpretation func(o *Options, v hujson.ValueTrimmed, path keypath.Keypath) (Value, bool, error)

// order returns the interpretations to try, in order. The order is
// significant: by default timestamps come last, because every timestamp is
// also a string.
// The container interpretations call decode, so these lists cannot be
// package variables without an initialization cycle.
func (o *Options) order() []interpretation {
	if o.parseTimes() {
		return []interpretation{
			decodeTime, decodeString, decodeInt, decodeFloat, decodeBool,
			decodeList, decodeObject, decodeNull,
		}
	}
	return []interpretation{
		decodeString, decodeInt, decodeFloat, decodeBool,
		decodeList, decodeObject, decodeNull, decodeTime,
	}
}

// decode constructs a node for v. Descendant keypaths are tracked only for
// error reporting; the nodes of the result are not yet stamped.
func (o *Options) decode(v hujson.ValueTrimmed, path keypath.Keypath) (Node, error) {
	if v == nil {
		return Node{}, &ParseError{Kind: ErrUnrecognized, Path: path, Err: errors.New("missing value")}
	}
	for _, try := range o.order() {
		val, ok, err := try(o, v, path)
		if err != nil {
			return Node{}, err
		} else if ok {
			return newNode(val), nil
		}
	}
	return Node{}, &ParseError{
		Kind: ErrUnrecognized,
		Path: path,
		Err:  fmt.Errorf("invalid %s", describe(v)),
	}
}

// describe summarizes v for an error message.
func describe(v hujson.ValueTrimmed) string {
	if v == nil {
		return "missing value"
	}
	if lit, ok := v.(hujson.Literal); ok {
		return fmt.Sprintf("literal %q", string(lit))
	}
	return fmt.Sprintf("value of kind %q", byte(v.Kind()))
}

func literalOf(v hujson.ValueTrimmed, kind hujson.Kind) (hujson.Literal, bool) {
	lit, ok := v.(hujson.Literal)
	return lit, ok && lit.Kind() == kind
}

func decodeString(_ *Options, v hujson.ValueTrimmed, _ keypath.Keypath) (Value, bool, error) {
	s, ok := stringOf(v)
	if !ok {
		return nil, false, nil
	}
	return String(s), true, nil
}

func decodeInt(_ *Options, v hujson.ValueTrimmed, _ keypath.Keypath) (Value, bool, error) {
	z, ok := intOf(v)
	if !ok {
		return nil, false, nil
	}
	return Int(z), true, nil
}

func decodeFloat(_ *Options, v hujson.ValueTrimmed, _ keypath.Keypath) (Value, bool, error) {
	f, ok := floatOf(v)
	if !ok {
		return nil, false, nil
	}
	return Float(f), true, nil
}

func decodeBool(_ *Options, v hujson.ValueTrimmed, _ keypath.Keypath) (Value, bool, error) {
	b, ok := boolOf(v)
	if !ok {
		return nil, false, nil
	}
	return Bool(b), true, nil
}

func decodeNull(_ *Options, v hujson.ValueTrimmed, _ keypath.Keypath) (Value, bool, error) {
	if !isNull(v) {
		return nil, false, nil
	}
	return Null{}, true, nil
}

func decodeTime(_ *Options, v hujson.ValueTrimmed, _ keypath.Keypath) (Value, bool, error) {
	t, ok := timeOf(v)
	if !ok {
		return nil, false, nil
	}
	return Time{t}, true, nil
}

func decodeList(o *Options, v hujson.ValueTrimmed, path keypath.Keypath) (Value, bool, error) {
	arr, ok := v.(*hujson.Array)
	if !ok || arr == nil {
		return nil, false, nil
	}
	out := make(List, len(arr.Elements))
	for i, elt := range arr.Elements {
		n, err := o.decode(elt.Value, path.Index(i))
		if err != nil {
			return nil, false, err
		}
		out[i] = n
	}
	return out, true, nil
}

func decodeObject(o *Options, v hujson.ValueTrimmed, path keypath.Keypath) (Value, bool, error) {
	obj, ok := v.(*hujson.Object)
	if !ok || obj == nil {
		return nil, false, nil
	}
	out := make(Object, len(obj.Members))
	for i, m := range obj.Members {
		key, ok := stringOf(m.Name.Value)
		if !ok {
			return nil, false, &ParseError{
				Kind: ErrUnrecognized,
				Path: path,
				Err:  fmt.Errorf("member %d has invalid name", i),
			}
		}
		n, err := o.decode(m.Value.Value, path.At(key))
		if err != nil {
			return nil, false, err
		}
		out[i] = Member{Key: key, Node: n}
	}
	return out, true, nil
}

// The helpers below extract scalar values from JSON literals. They are
// shared by the parser and the path-replay decoder, so that a value decoded
// at a keypath has the same type it had when the keypath was recorded.

func stringOf(v hujson.ValueTrimmed) (string, bool) {
	lit, ok := literalOf(v, '"')
	if !ok || !lit.IsValid() {
		return "", false
	}
	return lit.String(), true
}

// intOf reports the value of v if it is a number written without a fraction
// or exponent that fits in an int64.
func intOf(v hujson.ValueTrimmed) (int64, bool) {
	lit, ok := literalOf(v, '0')
	if !ok || bytes.ContainsAny(lit, ".eE") {
		return 0, false
	}
	z, err := strconv.ParseInt(string(lit), 10, 64)
	return z, err == nil
}

// floatOf reports the value of v if it is any JSON number. Magnitudes too
// large for a float64 are reported as infinities.
func floatOf(v hujson.ValueTrimmed) (float64, bool) {
	lit, ok := literalOf(v, '0')
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(lit), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func boolOf(v hujson.ValueTrimmed) (bool, bool) {
	if lit, ok := literalOf(v, 't'); ok && string(lit) == "true" {
		return true, true
	} else if lit, ok := literalOf(v, 'f'); ok && string(lit) == "false" {
		return false, true
	}
	return false, false
}

func isNull(v hujson.ValueTrimmed) bool {
	lit, ok := literalOf(v, 'n')
	return ok && string(lit) == "null"
}

func timeOf(v hujson.ValueTrimmed) (t time.Time, ok bool) {
	s, ok := stringOf(v)
	if !ok {
		return t, false
	}
	t, err := parseTime(s)
	return t, err == nil
}
