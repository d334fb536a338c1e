package reminder

import (
	"errors"
	"fmt"
)

// Window describes when reminders fire and when the month resets.
// Days are inclusive days of month; times are local wall-clock.
type Window struct {
	StartDay    int
	EndDay      int
	FireHour    int
	FireMinute  int
	ResetDay    int
	ResetHour   int
	ResetMinute int
}

// DefaultWindow fires at 10:00 on days 15 through 25 and resets at 00:00 on the 1st.
var DefaultWindow = Window{
	StartDay:    15,
	EndDay:      25,
	FireHour:    10,
	FireMinute:  0,
	ResetDay:    1,
	ResetHour:   0,
	ResetMinute: 0,
}

// Contains reports whether day falls inside the reminder window.
func (w Window) Contains(day int) bool {
	return day >= w.StartDay && day <= w.EndDay
}

// IsResetDay reports whether day is the monthly reset day.
func (w Window) IsResetDay(day int) bool {
	return day == w.ResetDay
}

// Validate checks ranges and that the reset day lies outside the reminder window.
func (w Window) Validate() error {
	var errs []error
	if w.StartDay < 1 || w.StartDay > 31 {
		errs = append(errs, fmt.Errorf("start day %d out of range 1-31", w.StartDay))
	}
	if w.EndDay < w.StartDay || w.EndDay > 31 {
		errs = append(errs, fmt.Errorf("end day %d must be within %d-31", w.EndDay, w.StartDay))
	}
	if w.ResetDay < 1 || w.ResetDay > 28 {
		errs = append(errs, fmt.Errorf("reset day %d out of range 1-28", w.ResetDay))
	}
	if w.Contains(w.ResetDay) {
		errs = append(errs, fmt.Errorf("reset day %d overlaps reminder window", w.ResetDay))
	}
	if !validTime(w.FireHour, w.FireMinute) {
		errs = append(errs, fmt.Errorf("fire time %02d:%02d invalid", w.FireHour, w.FireMinute))
	}
	if !validTime(w.ResetHour, w.ResetMinute) {
		errs = append(errs, fmt.Errorf("reset time %02d:%02d invalid", w.ResetHour, w.ResetMinute))
	}
	return errors.Join(errs...)
}

func validTime(hour, minute int) bool {
	return hour >= 0 && hour < 24 && minute >= 0 && minute < 60
}
