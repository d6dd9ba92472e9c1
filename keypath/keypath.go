// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package keypath defines the location of a value inside a JSON document as
// a sequence of object member names and array indices.
//
// A Keypath is immutable. Extending a path with At or Index returns a new
// path that shares its prefix with the original:
//
//	kp := keypath.Init().At("episodes").Index(0).At("airDate")
//	fmt.Println(kp) // .episodes[0].airDate
//
// Internally, the accessors of a path are stored innermost-first, so that
// the accessor nearest the value is the head of the list, and the accessor
// nearest the document root is the last. Fold visits accessors in that
// storage order; String, Steps, and JSONPath report them root-to-leaf.
package keypath

import "strconv"

// An Accessor is a single step of a Keypath: either the name of an object
// member or the offset of an array element.
type Accessor struct {
	name    string
	index   int
	isIndex bool
}

// Field returns an Accessor that selects the object member with the given
// name.
func Field(name string) Accessor { return Accessor{name: name} }

// Elem returns an Accessor that selects the array element at offset i.
// No bounds are checked; negative offsets are carried as-is.
func Elem(i int) Accessor { return Accessor{index: i, isIndex: true} }

// Name reports the member name selected by a, and whether a is a member
// accessor.
func (a Accessor) Name() (string, bool) { return a.name, !a.isIndex }

// Index reports the array offset selected by a, and whether a is an index
// accessor.
func (a Accessor) Index() (int, bool) { return a.index, a.isIndex }

// String renders a as it appears in the String form of a Keypath.
func (a Accessor) String() string {
	if a.isIndex {
		return "[" + strconv.Itoa(a.index) + "]"
	}
	return "." + a.name
}

// A Keypath is an immutable sequence of accessors locating a value within a
// JSON document. The zero value is the empty path, denoting the root.
type Keypath struct {
	head *link
	n    int
}

type link struct {
	acc  Accessor
	next *link
}

// Init returns the empty path, which denotes the root of a document.
func Init() Keypath { return Keypath{} }

// At returns a new path that extends kp by the member named name.
func At(name string, kp Keypath) Keypath { return kp.push(Field(name)) }

// Index returns a new path that extends kp by the array element at offset i.
func Index(i int, kp Keypath) Keypath { return kp.push(Elem(i)) }

// At returns a new path that extends kp by the member named name.
func (kp Keypath) At(name string) Keypath { return kp.push(Field(name)) }

// Index returns a new path that extends kp by the array element at offset i.
func (kp Keypath) Index(i int) Keypath { return kp.push(Elem(i)) }

// Append returns a new path that extends kp by each of the given accessors,
// in order from outermost to innermost.
func (kp Keypath) Append(accs ...Accessor) Keypath {
	for _, a := range accs {
		kp = kp.push(a)
	}
	return kp
}

func (kp Keypath) push(a Accessor) Keypath {
	return Keypath{head: &link{acc: a, next: kp.head}, n: kp.n + 1}
}

// IsRoot reports whether kp is the empty path.
func (kp Keypath) IsRoot() bool { return kp.head == nil }

// Len reports the number of accessors in kp.
func (kp Keypath) Len() int { return kp.n }

// Last returns the innermost accessor of kp, and reports whether it exists.
func (kp Keypath) Last() (Accessor, bool) {
	if kp.head == nil {
		return Accessor{}, false
	}
	return kp.head.acc, true
}

// Parent returns kp with its innermost accessor removed. The parent of the
// root is the root.
func (kp Keypath) Parent() Keypath {
	if kp.head == nil {
		return kp
	}
	return Keypath{head: kp.head.next, n: kp.n - 1}
}

// Equal reports whether kp and o contain the same accessors in the same
// order.
func (kp Keypath) Equal(o Keypath) bool {
	if kp.n != o.n {
		return false
	}
	for p, q := kp.head, o.head; p != nil && p != q; p, q = p.next, q.next {
		if p.acc != q.acc {
			return false
		}
	}
	return true
}

// Steps returns the accessors of kp in root-to-leaf order.
func (kp Keypath) Steps() []Accessor {
	out := make([]Accessor, kp.n)
	i := kp.n
	for p := kp.head; p != nil; p = p.next {
		i--
		out[i] = p.acc
	}
	return out
}

// Handlers convert each kind of accessor into a value of type A for Fold.
type Handlers[A any] struct {
	FromIndex func(int) A
	FromAt    func(string) A
}

// Fold combines the accessors of kp in storage order, innermost first.  Each
// accessor is converted by h, then merged into the accumulator by combine,
// starting from seed.
//
// Because the innermost accessor is visited first, a combine function that
// places each new element in front of the accumulator produces a result in
// root-to-leaf order.
func Fold[A, B any](kp Keypath, combine func(A, B) B, h Handlers[A], seed B) B {
	acc := seed
	for p := kp.head; p != nil; p = p.next {
		var a A
		if p.acc.isIndex {
			a = h.FromIndex(p.acc.index)
		} else {
			a = h.FromAt(p.acc.name)
		}
		acc = combine(a, acc)
	}
	return acc
}

// String renders kp in root-to-leaf order, with ".name" for each member and
// "[i]" for each index. The root renders as "".
//
// Member names are written verbatim; use JSONPath for a form that can be
// parsed back for any name.
func (kp Keypath) String() string {
	return Fold(kp, func(tok, acc string) string {
		return tok + acc
	}, Handlers[string]{
		FromIndex: func(i int) string { return Elem(i).String() },
		FromAt:    func(name string) string { return Field(name).String() },
	}, "")
}
