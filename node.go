// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jnode

import "github.com/creachadair/jnode/keypath"

// A Schema describes the kind of value found at a location in a document,
// without the value itself.
type Schema struct {
	Keypath keypath.Keypath
	Tag     Tag
}

// Equal reports whether s and o have equal keypaths and tags.
func (s Schema) Equal(o Schema) bool {
	return s.Tag == o.Tag && s.Keypath.Equal(o.Keypath)
}

func (s Schema) String() string {
	tag := "<nil>"
	if s.Tag != nil {
		tag = s.Tag.String()
	}
	return s.Keypath.JSONPath() + ":" + tag
}

// A Node is a parsed value together with its schema. The tag of a node's
// schema always matches the classification of its value, and its keypath
// is the sequence of accessors leading to it from the root.
type Node struct {
	Value  Value
	Schema Schema
}

// Keypath returns the location of n.
func (n Node) Keypath() keypath.Keypath { return n.Schema.Keypath }

// Tag returns the classification of n.
func (n Node) Tag() Tag { return n.Schema.Tag }

// newNode constructs a node for v with an empty keypath.
func newNode(v Value) Node {
	return Node{Value: v, Schema: Schema{Tag: Classify(v)}}
}

// stamp sets the keypath of n to kp, and the keypaths of the descendants of
// n relative to kp. It is applied exactly once, to a freshly-decoded tree
// that is not yet shared.
func (n *Node) stamp(kp keypath.Keypath) {
	n.Schema.Keypath = kp
	switch t := n.Value.(type) {
	case List:
		for i := range t {
			t[i].stamp(kp.Index(i))
		}
	case Object:
		for i := range t {
			t[i].Node.stamp(kp.At(t[i].Key))
		}
	}
}
