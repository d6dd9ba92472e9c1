// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"fmt"
	"time"
)

// A Value is a parsed JSON value. The concrete type is exactly one of
// String, Int, Float, Bool, Time, List, Object, or Null.
type Value interface {
	isValue()
}

// A String is a JSON string value.
type String string

// An Int is a JSON number written without a fraction or exponent.
type Int int64

// A Float is a JSON number that is not an Int.
type Float float64

// A Bool is a Boolean constant, true or false.
type Bool bool

// A Time is a timestamp decoded from an ISO-8601 string.
type Time struct{ time.Time }

// A List is an array of nodes, in document order.
type List []Node

// An Object is a sequence of key-value members, in document order.
// Keys are neither sorted nor deduplicated.
type Object []Member

// Null represents the null constant.
type Null struct{}

func (String) isValue() {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (Bool) isValue()   {}
func (Time) isValue()   {}
func (List) isValue()   {}
func (Object) isValue() {}
func (Null) isValue()   {}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key  string
	Node Node
}

// Find returns the last member of o with the given key, or nil. When keys
// are duplicated, the last occurrence wins, as in encoding/json.
func (o Object) Find(key string) *Member {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Key == key {
			return &o[i]
		}
	}
	return nil
}

// A Tag classifies a value. The concrete type is either Prop, for scalar
// values, or Structure, for containers.
type Tag interface {
	isTag()
	String() string
}

// A Prop is the tag of a scalar value.
type Prop byte

// Constants defining the valid Prop values.
const (
	PropString Prop = iota + 1
	PropInt
	PropFloat
	PropBool
	PropTime
	PropNull
)

var propStr = [...]string{
	PropString: "string",
	PropInt:    "int",
	PropFloat:  "float",
	PropBool:   "bool",
	PropTime:   "time",
	PropNull:   "null",
}

func (Prop) isTag() {}

func (p Prop) String() string {
	if p == 0 || int(p) >= len(propStr) {
		return fmt.Sprintf("Prop(%d)", byte(p))
	}
	return propStr[p]
}

// A Structure is the tag of a container value.
type Structure byte

// Constants defining the valid Structure values.
const (
	StructList Structure = iota + 1
	StructObject
)

func (Structure) isTag() {}

func (s Structure) String() string {
	switch s {
	case StructList:
		return "list"
	case StructObject:
		return "object"
	}
	return fmt.Sprintf("Structure(%d)", byte(s))
}

// Classify returns the tag of v.
func Classify(v Value) Tag {
	switch v.(type) {
	case String:
		return PropString
	case Int:
		return PropInt
	case Float:
		return PropFloat
	case Bool:
		return PropBool
	case Time:
		return PropTime
	case Null:
		return PropNull
	case List:
		return StructList
	case Object:
		return StructObject
	default:
		panic(fmt.Sprintf("jnode: invalid value type %T", v))
	}
}

// ClassifyProp returns the tag of v if v is a scalar, and reports whether it
// is. Lists and objects have no Prop.
func ClassifyProp(v Value) (Prop, bool) {
	p, ok := Classify(v).(Prop)
	return p, ok
}

func as[T Value](v Value) (T, bool) { t, ok := v.(T); return t, ok }

// AsString returns the contents of v if it is a String.
func AsString(v Value) (string, bool) { s, ok := as[String](v); return string(s), ok }

// AsInt returns the contents of v if it is an Int.
func AsInt(v Value) (int64, bool) { z, ok := as[Int](v); return int64(z), ok }

// AsFloat returns the contents of v if it is a Float.
func AsFloat(v Value) (float64, bool) { f, ok := as[Float](v); return float64(f), ok }

// AsBool returns the contents of v if it is a Bool.
func AsBool(v Value) (bool, bool) { b, ok := as[Bool](v); return bool(b), ok }

// AsTime returns the contents of v if it is a Time.
func AsTime(v Value) (time.Time, bool) { t, ok := as[Time](v); return t.Time, ok }

// AsList returns the elements of v if it is a List.
func AsList(v Value) ([]Node, bool) { a, ok := as[List](v); return a, ok }

// AsObject returns the members of v if it is an Object.
func AsObject(v Value) ([]Member, bool) { o, ok := as[Object](v); return o, ok }

// AsNull reports whether v is Null.
func AsNull(v Value) bool { _, ok := as[Null](v); return ok }
