// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jnode parses JSON into a tree of typed, addressable nodes, and
// replays recorded locations and types against other JSON documents.
//
// # Parsing
//
// ParseJSON parses JSON text into a Node tree. Each Node carries its Value
// and a Schema, which records the keypath of the node from the root of the
// document and the Tag that classifies its value:
//
//	root, err := jnode.ParseJSON([]byte(`{"filename": "file1.txt"}`))
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//	for n := range root.All() {
//	   fmt.Println(n.Schema.Keypath, n.Schema.Tag)
//	}
//
// Use ParseValue or ParseValueAt to convert a JSON value that has already
// been parsed by github.com/tailscale/hujson. Use an Options value to accept
// comments and trailing commas, or to recognize ISO-8601 timestamps.
//
// # Values
//
// A Value is one of the concrete types:
//
//	JSON type | Go type | Tag
//	--------- | ------- | ------------
//	string    | String  | PropString
//	number    | Int     | PropInt      (no fraction or exponent, fits int64)
//	number    | Float   | PropFloat    (all other numbers)
//	boolean   | Bool    | PropBool
//	string    | Time    | PropTime     (only with Options.ParseTimes)
//	null      | Null    | PropNull
//	array     | List    | StructList
//	object    | Object  | StructObject
//
// The As* functions project a value to its contents when the kind matches.
//
// # Replay
//
// A Schema taken from one document can be replayed against another: DecodeAt
// and DecodeJSON find the value at the recorded keypath and decode it as the
// recorded type. Replay fails with ErrPathNotFound if the keypath does not
// resolve, and with ErrTypeMismatch if the value found has the wrong type:
//
//	s := node.Schema // e.g., .filename with tag PropString
//	v, err := jnode.DecodeJSON(s.Keypath, s.Tag, []byte(`{"filename": "file2.txt"}`))
//	if errors.Is(err, jnode.ErrPathNotFound) {
//	   // the field is no longer present
//	}
//
// Only Prop tags can be replayed. A Schema can be stored and retrieved using
// EncodeSchema and DecodeSchema, or by the json.Marshaler and
// json.Unmarshaler implementations of Schema.
package jnode
