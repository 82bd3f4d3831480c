// model/datetime.go
package model

import (
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the wire format for every timestamp in request and
// response bodies. Clients send and expect exactly this pattern, without
// a timezone suffix.
const DateTimeLayout = "2006-01-02 15:04:05"

// DateTime wraps time.Time to serialize as "2006-01-02 15:04:05".
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t.Truncate(time.Second)}
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(DateTimeLayout, s)
	if err != nil {
		return fmt.Errorf("parse datetime %q: %w", s, err)
	}
	d.Time = t
	return nil
}
