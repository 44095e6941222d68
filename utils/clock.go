package utils

import (
	"log"
	"time"
)

// DefaultTimezone is the zone every platform timestamp is normalized to
const DefaultTimezone = "America/La_Paz"

// Clock hands out timestamps in a single configured location
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock loads the named zone. Bolivia has no DST so a fixed UTC-4 zone
// is a faithful fallback when the host has no tz database.
func NewClock(name string) *Clock {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[CLOCK] Timezone %q unavailable (%v), falling back to UTC-4", name, err)
		loc = time.FixedZone(DefaultTimezone, -4*60*60)
	}
	return &Clock{loc: loc, now: time.Now}
}

// NewFixedClock returns a clock frozen at t, used by tests and seeding
func NewFixedClock(t time.Time, loc *time.Location) *Clock {
	return &Clock{loc: loc, now: func() time.Time { return t }}
}

func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now returns the current time in the clock's location
func (c *Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns midnight of the current local date
func (c *Clock) Today() time.Time {
	n := c.Now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, c.loc)
}

// ParseDate parses a YYYY-MM-DD string as a local date
func (c *Clock) ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, c.loc)
}

// ParseTimestamp accepts RFC 3339 timestamps or bare YYYY-MM-DD dates; bare
// dates and zone-less timestamps are read as local time.
func (c *Clock) ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(c.loc), nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, c.loc); err == nil {
		return t, nil
	}
	return c.ParseDate(value)
}
