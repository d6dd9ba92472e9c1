// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package keypath

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/creachadair/jnode/internal/escape"
	"go4.org/mem"
)

/*
Grammar:

  path = [root] steps
  root = "$"
 steps = step [steps]
  step = "." NAME
  step = "[" INDEX "]"
  step = "[" QUOTED "]"

  NAME = RE `[^.\[\]]+`
 INDEX = RE `-?\d+`
QUOTED = a JSON string literal, in double quotation marks

The String form of a Keypath is accepted whenever its member names contain
no ".", "[", or "]". The JSONPath form is accepted for every Keypath.
*/

// Parse parses s as a Keypath. The empty string, and "$" alone, denote the
// root.
func Parse(s string) (Keypath, error) {
	kp := Init()
	rest := strings.TrimPrefix(s, "$")
	for rest != "" {
		acc, tail, err := parseStep(rest)
		if err != nil {
			return Keypath{}, fmt.Errorf("offset %d: %w", len(s)-len(rest), err)
		}
		kp = kp.push(acc)
		rest = tail
	}
	return kp, nil
}

// MustParse parses s as a Keypath, and panics if parsing fails.
func MustParse(s string) Keypath {
	kp, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("keypath.MustParse %q: %v", s, err))
	}
	return kp
}

func parseStep(s string) (_ Accessor, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "."); ok {
		m := nameRE.FindString(t)
		if m == "" {
			return Accessor{}, s, errors.New("invalid .name")
		}
		return Field(m), t[len(m):], nil
	}
	if t, ok := strings.CutPrefix(s, "["); ok {
		acc, u, err := parseBracket(t)
		if err != nil {
			return Accessor{}, s, err
		}
		u, ok := strings.CutPrefix(u, "]")
		if !ok {
			return Accessor{}, s, errors.New("missing close bracket")
		}
		return acc, u, nil
	}
	return Accessor{}, s, errors.New("invalid path step")
}

func parseBracket(s string) (_ Accessor, rest string, _ error) {
	if m := indexRE.FindString(s); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil {
			return Accessor{}, s, fmt.Errorf("invalid index: %w", err)
		}
		return Elem(v), s[len(m):], nil
	}
	if strings.HasPrefix(s, `"`) {
		end := closingQuote(s)
		if end < 0 {
			return Accessor{}, s, errors.New("unterminated quoted name")
		}
		name, err := escape.Unquote(mem.S(s[1:end]))
		if err != nil {
			return Accessor{}, s, fmt.Errorf("invalid quoted name: %w", err)
		}
		return Field(string(name)), s[end+1:], nil
	}
	return Accessor{}, s, fmt.Errorf("invalid bracket value: %q", s)
}

// closingQuote returns the offset of the double quotation mark that closes
// the string starting at s[0], or -1.
func closingQuote(s string) int {
	var esc bool
	for i := 1; i < len(s); i++ {
		switch {
		case esc:
			esc = false
		case s[i] == '\\':
			esc = true
		case s[i] == '"':
			return i
		}
	}
	return -1
}

// JSONPath renders kp root-to-leaf with a leading "$". Member names that are
// plain words render as ".name"; any other name renders as a quoted bracket
// step, ["name"]. Parse reverses JSONPath exactly when every member name is
// valid UTF-8; invalid bytes in a name render as U+FFFD.
func (kp Keypath) JSONPath() string {
	return "$" + Fold(kp, func(tok, acc string) string {
		return tok + acc
	}, Handlers[string]{
		FromIndex: func(i int) string { return Elem(i).String() },
		FromAt: func(name string) string {
			if wordRE.MatchString(name) {
				return "." + name
			}
			return `["` + escape.Quote(mem.S(name)) + `"]`
		},
	}, "")
}

var (
	nameRE  = regexp.MustCompile(`^[^.\[\]]+`)
	indexRE = regexp.MustCompile(`^-?\d+`)
	wordRE  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)
