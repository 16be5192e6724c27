package timefmt

import (
	"fmt"
	"time"
)

// Layout is the wire format for all booking and comment timestamps:
// ISO-8601 local date-time with second precision and no offset.
const Layout = "2006-01-02T15:04:05"

// LocalTime is a time.Time that marshals to and from the Layout format.
// It exists only at the DTO boundary; domain types use plain time.Time.
type LocalTime time.Time

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(Layout) + `"`), nil
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date-time %s", s)
	}
	parsed, err := time.Parse(Layout, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("invalid date-time %s: %w", s, err)
	}
	*t = LocalTime(parsed)
	return nil
}

// Time returns the underlying time.Time.
func (t LocalTime) Time() time.Time {
	return time.Time(t)
}
