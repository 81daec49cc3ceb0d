package api

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// DefaultDateFormat is the RFC 1123 GMT layout used for Accept-Datetime
// values, Memento-Datetime attributes, and Date headers. UTC timestamps
// render the literal "GMT" suffix the protocol expects.
const DefaultDateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// ParseAcceptDatetime parses a requested datetime string. In strict mode
// the value must match layout exactly; in lenient mode any recognizable
// date representation is accepted. The result is always UTC.
//
// An empty value is an error in both modes: the point-lookup flow has no
// meaning without a requested time.
func ParseAcceptDatetime(value, layout string, strict bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty datetime value")
	}
	if strict {
		t, err := time.Parse(layout, value)
		if err != nil {
			return time.Time{}, err
		}
		return t.UTC(), nil
	}
	t, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatDatetime renders t in the given layout after conversion to UTC.
func FormatDatetime(t time.Time, layout string) string {
	return t.UTC().Format(layout)
}
