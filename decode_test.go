// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jnode_test

import (
	"errors"
	"testing"
	"time"

	"github.com/creachadair/jnode"
	"github.com/creachadair/jnode/internal/testutil"
	"github.com/creachadair/jnode/keypath"
	"github.com/google/go-cmp/cmp"
	"github.com/tailscale/hujson"
)

func TestDecodeReplay(t *testing.T) {
	src := testutil.MustParse(t, `{"filename": "file1.txt", "size": 10, "tags": ["a", "b"]}`)
	const other = `{"tags": ["x", "y", "z"], "size": 25, "filename": "file2.txt"}`

	want := map[string]jnode.Value{
		".filename": jnode.String("file2.txt"),
		".size":     jnode.Int(25),
		".tags[0]":  jnode.String("x"),
		".tags[1]":  jnode.String("y"),
	}
	for _, n := range jnode.Select(src, isScalar) {
		got, err := jnode.DecodeJSON(n.Schema.Keypath, n.Schema.Tag, []byte(other))
		if err != nil {
			t.Errorf("DecodeJSON %v: unexpected error: %v", n.Schema, err)
			continue
		}
		if diff := cmp.Diff(got, want[n.Keypath().String()]); diff != "" {
			t.Errorf("DecodeJSON %v (-got, +want):\n%s", n.Schema, diff)
		}
	}
}

func isScalar(n jnode.Node) bool { _, ok := n.Tag().(jnode.Prop); return ok }

func TestDecodeFidelity(t *testing.T) {
	// Replaying every scalar schema of a document against the same document
	// recovers the original values.
	const input = `{"a": [1, 2.5, -3e2, true, null, "s"], "b": {"c": {"d": "e"}}, "f": false}`
	root := testutil.MustParse(t, input)
	hv, err := hujson.Parse([]byte(input))
	if err != nil {
		t.Fatalf("hujson.Parse: %v", err)
	}
	var count int
	for _, n := range jnode.Select(root, isScalar) {
		count++
		got, err := jnode.DecodeAt(n.Schema.Keypath, n.Schema.Tag, hv)
		if err != nil {
			t.Errorf("DecodeAt %v: unexpected error: %v", n.Schema, err)
		} else if diff := cmp.Diff(got, n.Value); diff != "" {
			t.Errorf("DecodeAt %v (-got, +want):\n%s", n.Schema, diff)
		}
	}
	if count != 8 {
		t.Errorf("Found %d scalars, want 8", count)
	}
}

func TestDecodeErrors(t *testing.T) {
	const doc = `{"name": "Ann", "age": "forty", "tags": ["x"], "address": null, "n": 5}`
	kp := keypath.MustParse
	tests := []struct {
		path string
		tag  jnode.Tag
		want error
		at   string // where the error is reported
	}{
		{".age", jnode.PropInt, jnode.ErrTypeMismatch, ".age"},
		{".name", jnode.PropBool, jnode.ErrTypeMismatch, ".name"},
		{".n", jnode.PropString, jnode.ErrTypeMismatch, ".n"},
		{".tags", jnode.PropString, jnode.ErrTypeMismatch, ".tags"},
		{".name", jnode.PropTime, jnode.ErrTypeMismatch, ".name"},
		{".address.city", jnode.PropString, jnode.ErrPathNotFound, ".address.city"},
		{".missing", jnode.PropString, jnode.ErrPathNotFound, ".missing"},
		{".tags[1]", jnode.PropString, jnode.ErrPathNotFound, ".tags[1]"},
		{".tags[-1]", jnode.PropString, jnode.ErrPathNotFound, ".tags[-1]"},
		{".tags.x", jnode.PropString, jnode.ErrPathNotFound, ".tags.x"},
		{"[0]", jnode.PropString, jnode.ErrPathNotFound, "[0]"},
		{".missing.deeper", jnode.PropNull, jnode.ErrPathNotFound, ".missing"},
		{".name", jnode.StructList, jnode.ErrUnsupportedTag, ".name"},
		{".tags", jnode.StructObject, jnode.ErrUnsupportedTag, ".tags"},
		{".name", jnode.Prop(99), jnode.ErrUnsupportedTag, ".name"},
	}
	for _, tc := range tests {
		_, err := jnode.DecodeJSON(kp(tc.path), tc.tag, []byte(doc))
		if !errors.Is(err, tc.want) {
			t.Errorf("DecodeJSON(%q, %v): got %v, want %v", tc.path, tc.tag, err, tc.want)
			continue
		}
		var derr *jnode.DecodeError
		if !errors.As(err, &derr) {
			t.Errorf("DecodeJSON(%q, %v): got %T, want *DecodeError", tc.path, tc.tag, err)
		} else if got := derr.Path.String(); got != tc.at {
			t.Errorf("DecodeJSON(%q, %v): error at %q, want %q", tc.path, tc.tag, got, tc.at)
		}
	}

	for _, bad := range []string{``, `{"name":`, `{"name": "x",}`} {
		_, err := jnode.DecodeJSON(kp(".name"), jnode.PropString, []byte(bad))
		if !errors.Is(err, jnode.ErrSyntax) {
			t.Errorf("DecodeJSON %q: got %v, want %v", bad, err, jnode.ErrSyntax)
		}
	}
}

func TestDecodeNull(t *testing.T) {
	// A null replay succeeds wherever the path resolves, whatever is there.
	const doc = `{"a": null, "b": 1, "c": {"d": []}}`
	for _, path := range []string{".a", ".b", ".c", ".c.d"} {
		got, err := jnode.DecodeJSON(keypath.MustParse(path), jnode.PropNull, []byte(doc))
		if err != nil {
			t.Errorf("DecodeJSON %q: unexpected error: %v", path, err)
		} else if !jnode.AsNull(got) {
			t.Errorf("DecodeJSON %q: got %v, want null", path, got)
		}
	}
}

func TestDecodeNumbers(t *testing.T) {
	const doc = `{"i": 3, "f": 3.0, "e": 1e2, "big": 1e400}`
	kp := keypath.MustParse
	if _, err := jnode.DecodeJSON(kp(".f"), jnode.PropInt, []byte(doc)); !errors.Is(err, jnode.ErrTypeMismatch) {
		t.Errorf("Int at .f: got %v, want %v", err, jnode.ErrTypeMismatch)
	}
	if _, err := jnode.DecodeJSON(kp(".e"), jnode.PropInt, []byte(doc)); !errors.Is(err, jnode.ErrTypeMismatch) {
		t.Errorf("Int at .e: got %v, want %v", err, jnode.ErrTypeMismatch)
	}
	for path, want := range map[string]float64{".i": 3, ".f": 3, ".e": 100} {
		got, err := jnode.DecodeJSON(kp(path), jnode.PropFloat, []byte(doc))
		if err != nil {
			t.Errorf("Float at %s: unexpected error: %v", path, err)
		} else if f, _ := jnode.AsFloat(got); f != want {
			t.Errorf("Float at %s: got %v, want %v", path, f, want)
		}
	}
	if got, err := jnode.DecodeJSON(kp(".big"), jnode.PropFloat, []byte(doc)); err != nil {
		t.Errorf("Float at .big: unexpected error: %v", err)
	} else if f, _ := jnode.AsFloat(got); f <= 1e308 {
		t.Errorf("Float at .big: got %v, want +Inf", f)
	}
}

func TestDecodeTime(t *testing.T) {
	const doc = `{"at": "2024-02-29T08:30:00+01:00", "day": "2024-02-29", "no": "tomorrow"}`
	kp := keypath.MustParse
	got, err := jnode.DecodeJSON(kp(".at"), jnode.PropTime, []byte(doc))
	if err != nil {
		t.Fatalf("DecodeJSON .at: unexpected error: %v", err)
	}
	want := time.Date(2024, 2, 29, 7, 30, 0, 0, time.UTC)
	if ts, ok := jnode.AsTime(got); !ok || !ts.Equal(want) {
		t.Errorf("DecodeJSON .at: got %v, want %v", ts, want)
	}
	if _, err := jnode.DecodeJSON(kp(".day"), jnode.PropTime, []byte(doc)); err != nil {
		t.Errorf("DecodeJSON .day: unexpected error: %v", err)
	}
	if _, err := jnode.DecodeJSON(kp(".no"), jnode.PropTime, []byte(doc)); !errors.Is(err, jnode.ErrTypeMismatch) {
		t.Errorf("DecodeJSON .no: got %v, want %v", err, jnode.ErrTypeMismatch)
	}

	// A timestamp is also a string.
	if s, err := jnode.DecodeJSON(kp(".at"), jnode.PropString, []byte(doc)); err != nil {
		t.Errorf("DecodeJSON .at as string: unexpected error: %v", err)
	} else if got, _ := jnode.AsString(s); got != "2024-02-29T08:30:00+01:00" {
		t.Errorf("DecodeJSON .at as string: got %q", got)
	}
}

func TestDecoder(t *testing.T) {
	kp := keypath.Init().At("users").Index(0).At("name")
	d, err := jnode.NewDecoder(kp, jnode.PropString)
	if err != nil {
		t.Fatalf("NewDecoder: unexpected error: %v", err)
	}
	if got, want := d.Schema(), (jnode.Schema{Keypath: kp, Tag: jnode.PropString}); !got.Equal(want) {
		t.Errorf("Schema: got %v, want %v", got, want)
	}
	for _, tc := range []struct {
		input, want string
	}{
		{`{"users": [{"name": "ann"}]}`, "ann"},
		{`{"users": [{"id": 1, "name": "bob", "name": "eve"}, {"name": "x"}]}`, "eve"},
	} {
		got, err := d.DecodeJSON([]byte(tc.input))
		if err != nil {
			t.Errorf("Decode %q: unexpected error: %v", tc.input, err)
		} else if s, _ := jnode.AsString(got); s != tc.want {
			t.Errorf("Decode %q: got %q, want %q", tc.input, s, tc.want)
		}
	}

	// Comments are accepted only when the options allow them.
	const jwcc = `{"users": [{"name": "cy" /* here */}]}`
	if _, err := d.DecodeJSON([]byte(jwcc)); !errors.Is(err, jnode.ErrSyntax) {
		t.Errorf("Decode JWCC: got %v, want %v", err, jnode.ErrSyntax)
	}
	opts := &jnode.Options{AllowJWCC: true}
	if got, err := opts.DecodeJSON(kp, jnode.PropString, []byte(jwcc)); err != nil {
		t.Errorf("Options.DecodeJSON: unexpected error: %v", err)
	} else if s, _ := jnode.AsString(got); s != "cy" {
		t.Errorf("Options.DecodeJSON: got %q, want %q", s, "cy")
	}

	if _, err := jnode.NewDecoder(kp, jnode.StructObject); !errors.Is(err, jnode.ErrUnsupportedTag) {
		t.Errorf("NewDecoder(StructObject): got %v, want %v", err, jnode.ErrUnsupportedTag)
	}
	if _, err := jnode.NewDecoder(kp, nil); !errors.Is(err, jnode.ErrUnsupportedTag) {
		t.Errorf("NewDecoder(nil): got %v, want %v", err, jnode.ErrUnsupportedTag)
	}
}

func TestDecodeDuplicateKeys(t *testing.T) {
	const doc = `{"a": 1, "b": {"c": true}, "a": "x", "b": {"d": null}}`
	root := testutil.MustParse(t, doc)

	// The last occurrence of a key is the one replayed, so its schema
	// recovers its value from the same document.
	a, ok := jnode.Find(root, keypath.Init().At("a"))
	if !ok || a.Tag() != jnode.PropString {
		t.Fatalf("Find .a: got %v, %v; want string", a.Schema, ok)
	}
	got, err := jnode.DecodeJSON(a.Schema.Keypath, a.Schema.Tag, []byte(doc))
	if err != nil {
		t.Fatalf("DecodeJSON %v: unexpected error: %v", a.Schema, err)
	}
	if diff := cmp.Diff(got, a.Value); diff != "" {
		t.Errorf("DecodeJSON %v (-got, +want):\n%s", a.Schema, diff)
	}

	// A shadowed occurrence shares the keypath, and replay reaches the last.
	_, err = jnode.DecodeJSON(a.Schema.Keypath, jnode.PropInt, []byte(doc))
	if !errors.Is(err, jnode.ErrTypeMismatch) {
		t.Errorf("DecodeJSON .a as int: got %v, want %v", err, jnode.ErrTypeMismatch)
	}
	if _, err := jnode.DecodeJSON(keypath.MustParse(".b.c"), jnode.PropBool, []byte(doc)); !errors.Is(err, jnode.ErrPathNotFound) {
		t.Errorf("DecodeJSON .b.c: got %v, want %v", err, jnode.ErrPathNotFound)
	}
	if _, err := jnode.DecodeJSON(keypath.MustParse(".b.d"), jnode.PropNull, []byte(doc)); err != nil {
		t.Errorf("DecodeJSON .b.d: unexpected error: %v", err)
	}
}
