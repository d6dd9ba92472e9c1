// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/creachadair/jnode/keypath"
)

/*
Wire format of an encoded Schema:

	{"k": [step, ...], "t": tag}

Steps are listed in the storage order of the keypath, innermost first:

	{"a": "name"}   object member
	{"i": 5}        array index

A tag is either {"p": code} for a Prop or {"s": code} for a Structure:

	Prop:      "s" string, "i" int, "f" float, "b" bool, "t" time, "n" null
	Structure: "l" list, "o" object

For example, the schema for .user.emails[0] with tag PropString encodes as:

	{"k":[{"i":0},{"a":"emails"},{"a":"user"}],"t":{"p":"s"}}
*/

var propCode = map[Prop]string{
	PropString: "s",
	PropInt:    "i",
	PropFloat:  "f",
	PropBool:   "b",
	PropTime:   "t",
	PropNull:   "n",
}

var structCode = map[Structure]string{
	StructList:   "l",
	StructObject: "o",
}

type wireSchema struct {
	K *[]wireStep `json:"k"`
	T *wireTag    `json:"t"`
}

type wireStep struct {
	I *int    `json:"i,omitempty"`
	A *string `json:"a,omitempty"`
}

type wireTag struct {
	P *string `json:"p,omitempty"`
	S *string `json:"s,omitempty"`
}

// EncodeSchema encodes s in its JSON wire format. It reports ErrUnknownTag
// if the tag of s is not a valid Prop or Structure, and ErrSyntax if a member
// name in the keypath of s is not valid UTF-8, since JSON strings cannot
// represent it.
func EncodeSchema(s Schema) ([]byte, error) {
	tag, err := encodeTag(s.Tag)
	if err != nil {
		return nil, err
	}
	for _, acc := range s.Keypath.Steps() {
		if name, ok := acc.Name(); ok && !utf8.ValidString(name) {
			return nil, &DecodeError{
				Kind: ErrSyntax,
				Path: s.Keypath,
				Tag:  s.Tag,
				Err:  fmt.Errorf("member name %q is not valid UTF-8", name),
			}
		}
	}
	steps := keypath.Fold(s.Keypath, func(w wireStep, acc []wireStep) []wireStep {
		return append(acc, w)
	}, keypath.Handlers[wireStep]{
		FromIndex: func(i int) wireStep { return wireStep{I: &i} },
		FromAt:    func(name string) wireStep { return wireStep{A: &name} },
	}, make([]wireStep, 0, s.Keypath.Len()))
	return json.Marshal(wireSchema{K: &steps, T: &tag})
}

func encodeTag(t Tag) (wireTag, error) {
	switch v := t.(type) {
	case Prop:
		if c, ok := propCode[v]; ok {
			return wireTag{P: &c}, nil
		}
	case Structure:
		if c, ok := structCode[v]; ok {
			return wireTag{S: &c}, nil
		}
	}
	return wireTag{}, &DecodeError{Kind: ErrUnknownTag, Tag: t}
}

// DecodeSchema decodes a Schema from its JSON wire format. It reports
// ErrSyntax if data is not a well-formed encoding, and ErrUnknownTag if data
// contains an unrecognized tag code or step.
func DecodeSchema(data []byte) (Schema, error) {
	var w wireSchema
	if err := json.Unmarshal(data, &w); err != nil {
		return Schema{}, &DecodeError{Kind: ErrSyntax, Err: err}
	}
	if w.K == nil {
		return Schema{}, &DecodeError{Kind: ErrSyntax, Err: errors.New(`missing keypath ("k")`)}
	} else if w.T == nil {
		return Schema{}, &DecodeError{Kind: ErrSyntax, Err: errors.New(`missing tag ("t")`)}
	}

	// Steps are stored innermost first, and extending a keypath adds an
	// innermost step, so rebuild from the outermost step.
	kp := keypath.Init()
	steps := *w.K
	for i := len(steps) - 1; i >= 0; i-- {
		switch st := steps[i]; {
		case st.I != nil && st.A == nil:
			kp = kp.Index(*st.I)
		case st.A != nil && st.I == nil:
			kp = kp.At(*st.A)
		default:
			return Schema{}, &DecodeError{
				Kind: ErrUnknownTag,
				Path: kp,
				Err:  fmt.Errorf("invalid step %d", i),
			}
		}
	}

	tag, err := decodeTag(*w.T)
	if err != nil {
		return Schema{}, &DecodeError{Kind: ErrUnknownTag, Path: kp, Err: err}
	}
	return Schema{Keypath: kp, Tag: tag}, nil
}

func decodeTag(w wireTag) (Tag, error) {
	switch {
	case w.P != nil && w.S == nil:
		for p, c := range propCode {
			if c == *w.P {
				return p, nil
			}
		}
		return nil, fmt.Errorf("unknown prop code %q", *w.P)
	case w.S != nil && w.P == nil:
		for s, c := range structCode {
			if c == *w.S {
				return s, nil
			}
		}
		return nil, fmt.Errorf("unknown structure code %q", *w.S)
	}
	return nil, errors.New("tag must have exactly one of \"p\" or \"s\"")
}

// MarshalJSON encodes s in its wire format. It implements json.Marshaler.
func (s Schema) MarshalJSON() ([]byte, error) { return EncodeSchema(s) }

// UnmarshalJSON decodes s from its wire format. It implements
// json.Unmarshaler.
func (s *Schema) UnmarshalJSON(data []byte) error {
	dec, err := DecodeSchema(data)
	if err != nil {
		return err
	}
	*s = dec
	return nil
}
