// Package reminder implements the monthly reading reminder: the calendar it
// reads, the state machine that records whether this month's reading was
// submitted, and the command surface that mutates it.
package reminder

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// ErrClockUnavailable is returned when the configured local clock cannot be
// resolved. It is fatal at startup.
var ErrClockUnavailable = errors.New("clock unavailable")

// Snapshot is a calendar date as seen by the configured local clock.
type Snapshot struct {
	Day   int
	Month time.Month
	Year  int
}

// SnapshotOf returns the date part of t in t's own location.
func SnapshotOf(t time.Time) Snapshot {
	y, m, d := t.Date()
	return Snapshot{Day: d, Month: m, Year: y}
}

// String formats the snapshot as YYYY-MM-DD.
func (s Snapshot) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", s.Year, int(s.Month), s.Day)
}

// Calendar answers "what day is it" for the reminder triggers.
type Calendar interface {
	Now() Snapshot
}

// ClockCalendar reads dates from a clockwork.Clock in a single location.
// The scheduler is driven by the same clock and location so reset and
// reminder decisions never disagree about the date.
type ClockCalendar struct {
	clock clockwork.Clock
	loc   *time.Location
}

// NewCalendar creates a calendar over clock in loc. A nil loc means time.Local.
func NewCalendar(clock clockwork.Clock, loc *time.Location) *ClockCalendar {
	if loc == nil {
		loc = time.Local
	}
	return &ClockCalendar{clock: clock, loc: loc}
}

// Now returns today's date in the calendar's location.
func (c *ClockCalendar) Now() Snapshot {
	return SnapshotOf(c.clock.Now().In(c.loc))
}

// Clock returns the underlying clock.
func (c *ClockCalendar) Clock() clockwork.Clock {
	return c.clock
}

// Location returns the calendar's location.
func (c *ClockCalendar) Location() *time.Location {
	return c.loc
}

// LoadLocation resolves a timezone name. Empty and "Local" both mean the host zone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: load location %q: %v", ErrClockUnavailable, name, err)
	}
	return loc, nil
}
