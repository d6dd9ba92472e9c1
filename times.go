// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jnode

import (
	"errors"
	"time"
)

// isoLayouts are the ISO-8601 forms accepted as timestamps, most specific
// first. A fractional second is accepted after the seconds field of any
// layout that has one. A timestamp without an offset is in UTC.
var isoLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02",
}

var errNotTime = errors.New("not an ISO-8601 timestamp")

// parseTime parses s as an ISO-8601 timestamp.
func parseTime(s string) (time.Time, error) {
	// The shortest accepted form is a bare date.
	if len(s) < len("2006-01-02") {
		return time.Time{}, errNotTime
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errNotTime
}
