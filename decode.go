// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"fmt"

	"github.com/creachadair/jnode/keypath"
	"github.com/tailscale/hujson"
)

// DecodeAt extracts a value of type tag at location kp within v.
//
// The tag must be a Prop. Decoding a Structure tag reports ErrUnsupportedTag.
// If kp does not resolve in v, DecodeAt reports ErrPathNotFound. If kp
// resolves to a value that does not have type tag, DecodeAt reports
// ErrTypeMismatch.
//
// For PropNull, the value found at kp is not examined: any value there is
// reported as Null, but kp must still resolve.
//
// If an object has duplicate keys, a key step selects the last occurrence.
// Nodes parsed from an earlier, shadowed occurrence share their keypath with
// the last one, and replaying their schemas reaches the last occurrence.
func DecodeAt(kp keypath.Keypath, tag Tag, v hujson.Value) (Value, error) {
	d, err := NewDecoder(kp, tag)
	if err != nil {
		return nil, err
	}
	return d.Decode(v)
}

// DecodeJSON parses text as a JSON value and extracts a value of type tag at
// location kp, as DecodeAt. If text is not valid JSON, it reports ErrSyntax.
func DecodeJSON(kp keypath.Keypath, tag Tag, text []byte) (Value, error) {
	return (*Options)(nil).DecodeJSON(kp, tag, text)
}

// DecodeJSON parses text as a JSON value subject to the settings of o, and
// extracts a value of type tag at location kp, as DecodeAt.
func (o *Options) DecodeJSON(kp keypath.Keypath, tag Tag, text []byte) (Value, error) {
	d, err := NewDecoder(kp, tag)
	if err != nil {
		return nil, err
	}
	v, err := o.parseText(text)
	if err != nil {
		return nil, &DecodeError{Kind: ErrSyntax, Tag: tag, Err: err}
	}
	return d.Decode(v)
}

// A Decoder extracts a value of a fixed type at a fixed keypath from JSON
// values. A Decoder is immutable and safe for concurrent use.
type Decoder struct {
	path keypath.Keypath
	tag  Prop
	plan []step // root-to-leaf
}

// NewDecoder constructs a Decoder for values of type tag at kp. It reports
// ErrUnsupportedTag if tag is not a valid Prop.
func NewDecoder(kp keypath.Keypath, tag Tag) (*Decoder, error) {
	p, ok := tag.(Prop)
	if !ok || p < PropString || p > PropNull {
		return nil, &DecodeError{Kind: ErrUnsupportedTag, Path: kp, Tag: tag}
	}

	// The keypath is stored innermost-first, so prepending each step while
	// folding yields the steps in root-to-leaf order.
	plan := keypath.Fold(kp, func(s step, acc []step) []step {
		return append([]step{s}, acc...)
	}, keypath.Handlers[step]{
		FromIndex: func(i int) step { return nthStep(i) },
		FromAt:    func(name string) step { return keyStep(name) },
	}, nil)

	return &Decoder{path: kp, tag: p, plan: plan}, nil
}

// Schema returns the schema replayed by d.
func (d *Decoder) Schema() Schema { return Schema{Keypath: d.path, Tag: d.tag} }

// Decode extracts the value of d's type at d's keypath within v.
func (d *Decoder) Decode(v hujson.Value) (Value, error) {
	cur := v.Value
	path := keypath.Init()
	for _, s := range d.plan {
		path = s.extend(path)
		next, err := s.eval(cur)
		if err != nil {
			return nil, &DecodeError{Kind: ErrPathNotFound, Path: path, Tag: d.tag, Err: err}
		}
		cur = next
	}

	var val Value
	var ok bool
	switch d.tag {
	case PropString:
		var s string
		s, ok = stringOf(cur)
		val = String(s)
	case PropInt:
		var z int64
		z, ok = intOf(cur)
		val = Int(z)
	case PropFloat:
		var f float64
		f, ok = floatOf(cur)
		val = Float(f)
	case PropBool:
		var b bool
		b, ok = boolOf(cur)
		val = Bool(b)
	case PropTime:
		t, tok := timeOf(cur)
		val, ok = Time{t}, tok
	case PropNull:
		val, ok = Null{}, true
	}
	if !ok {
		return nil, &DecodeError{
			Kind: ErrTypeMismatch,
			Path: path,
			Tag:  d.tag,
			Err:  fmt.Errorf("found %s", describe(cur)),
		}
	}
	return val, nil
}

// DecodeJSON parses text as a JSON value and decodes it as Decode.
func (d *Decoder) DecodeJSON(text []byte) (Value, error) {
	v, err := (*Options)(nil).parseText(text)
	if err != nil {
		return nil, &DecodeError{Kind: ErrSyntax, Tag: d.tag, Err: err}
	}
	return d.Decode(v)
}

// A step is a single navigation step of a decoding plan.
type step interface {
	eval(hujson.ValueTrimmed) (hujson.ValueTrimmed, error)
	extend(keypath.Keypath) keypath.Keypath
}

// keyStep selects the last member of an object with the given key.
type keyStep string

func (k keyStep) extend(kp keypath.Keypath) keypath.Keypath { return kp.At(string(k)) }

func (k keyStep) eval(v hujson.ValueTrimmed) (hujson.ValueTrimmed, error) {
	obj, ok := v.(*hujson.Object)
	if !ok || obj == nil {
		return nil, fmt.Errorf("got %s, want object", kindName(v))
	}
	for i := len(obj.Members) - 1; i >= 0; i-- {
		m := obj.Members[i]
		if name, ok := stringOf(m.Name.Value); ok && name == string(k) {
			return m.Value.Value, nil
		}
	}
	return nil, fmt.Errorf("key %q not found", string(k))
}

// nthStep selects the element of an array at the given offset. Negative
// offsets are never in range.
type nthStep int

func (n nthStep) extend(kp keypath.Keypath) keypath.Keypath { return kp.Index(int(n)) }

func (n nthStep) eval(v hujson.ValueTrimmed) (hujson.ValueTrimmed, error) {
	arr, ok := v.(*hujson.Array)
	if !ok || arr == nil {
		return nil, fmt.Errorf("got %s, want array", kindName(v))
	}
	if n < 0 || int(n) >= len(arr.Elements) {
		return nil, fmt.Errorf("index %d out of range (0..%d)", n, len(arr.Elements))
	}
	return arr.Elements[n].Value, nil
}

func kindName(v hujson.ValueTrimmed) string {
	if v == nil {
		return "nothing"
	}
	switch v.Kind() {
	case 'n':
		return "null"
	case 't', 'f':
		return "bool"
	case '"':
		return "string"
	case '0':
		return "number"
	case '{':
		return "object"
	case '[':
		return "array"
	}
	return "invalid value"
}
