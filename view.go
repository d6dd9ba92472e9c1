// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jnode

import "time"

// A Field is a rendered object member, passed to Renderers.Object.
type Field[M any] struct {
	Key   string
	Value M
}

// Renderers supply one rendering function for each kind of value, producing
// output of type M. All the functions except WithPath and OnSelect must be
// set.
type Renderers[M any] struct {
	String func(string) M
	Int    func(int64) M
	Float  func(float64) M
	Bool   func(bool) M
	Time   func(time.Time) M
	Null   func() M

	// List and Object receive the already-rendered children of a
	// container, in document order.
	List   func([]M) M
	Object func([]Field[M]) M

	// If set, WithPath wraps each rendered node given the String form of
	// its keypath.
	WithPath func(path string, m M) M

	// If set, OnSelect attaches a selection handler for the source node to
	// each rendered node. It is applied after WithPath.
	OnSelect func(n Node, m M) M
}

// View renders n using r. Children are rendered before their parent.
func View[M any](r Renderers[M], n Node) M {
	var m M
	switch t := n.Value.(type) {
	case String:
		m = r.String(string(t))
	case Int:
		m = r.Int(int64(t))
	case Float:
		m = r.Float(float64(t))
	case Bool:
		m = r.Bool(bool(t))
	case Time:
		m = r.Time(t.Time)
	case Null:
		m = r.Null()
	case List:
		elts := make([]M, len(t))
		for i, elt := range t {
			elts[i] = View(r, elt)
		}
		m = r.List(elts)
	case Object:
		fields := make([]Field[M], len(t))
		for i, mem := range t {
			fields[i] = Field[M]{Key: mem.Key, Value: View(r, mem.Node)}
		}
		m = r.Object(fields)
	}
	if r.WithPath != nil {
		m = r.WithPath(n.Schema.Keypath.String(), m)
	}
	if r.OnSelect != nil {
		m = r.OnSelect(n, m)
	}
	return m
}
