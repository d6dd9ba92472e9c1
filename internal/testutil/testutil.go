// Package testutil defines support code for unit tests.
package testutil

import (
	"testing"

	"github.com/creachadair/jnode"
)

// TestJSON is a small document exercising every kind of value.
const TestJSON = `{
  "list": [
    {
      "x": 1
    },
    {
      "x": 2.5
    }
  ],
  "y": {
    "hello": "there"
  },
  "o": [
    "hi",
    "yourself"
  ],
  "xyz": {
    "p": true,
    "d": null,
    "q": false
  },
  "when": "2021-11-30T12:00:00Z"
}`

// MustParse parses text as JSON, and fails t if parsing fails.
func MustParse(t testing.TB, text string) jnode.Node {
	t.Helper()
	n, err := jnode.ParseJSON([]byte(text))
	if err != nil {
		t.Fatalf("Parse %q: %v", text, err)
	}
	return n
}
