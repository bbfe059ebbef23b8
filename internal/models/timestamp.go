package models

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

const (
	zonedLayout    = time.RFC3339Nano
	zonelessLayout = "2006-01-02T15:04:05.999999999"
)

// Layouts accepted for timestamps. The remote collaborator emits zone-less
// local date-times; RFC 3339 is accepted as well.
var timestampLayouts = []string{
	zonedLayout,
	zonelessLayout,
	"2006-01-02T15:04",
}

// Timestamp is a server date-time. The zero value encodes as null. A value
// parsed with an offset is written back with it; any other value is written
// zone-less, with its fraction of a second when it has one.
type Timestamp struct {
	time.Time
	zoned bool
}

// NewTimestamp wraps t as a zone-less date-time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp parses s with any accepted layout.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, zoned: layout == zonedLayout}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	layout := zonelessLayout
	if t.zoned {
		layout = zonedLayout
	}
	return []byte(`"` + t.Format(layout) + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("invalid timestamp %s", data)
	}
	parsed, err := ParseTimestamp(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
