// Package weekly implements the weekly question cycle: mapping wall-clock
// time to a canonical week identifier (the Monday date) and to the current
// phase of that week's round.
package weekly

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for week identifiers and question days.
const DateLayout = "2006-01-02"

// Phase is the state of a weekly round relative to "now".
type Phase string

const (
	// PhaseAnswering lasts from Monday 00:00 until the reveal instant.
	PhaseAnswering Phase = "answering"
	// PhaseReveal begins at Thursday 18:00 and never reverts within the
	// same week; a later round's week start supersedes it.
	PhaseReveal Phase = "reveal"
)

const (
	revealWeekdayOffset = 3 // Thursday relative to Monday
	revealHour          = 18
	dailyRevealHour     = 20
)

// WeekStartMonday returns the Monday on or before now, formatted as
// YYYY-MM-DD in now's location.
func WeekStartMonday(now time.Time) string {
	offset := int(time.Monday - now.Weekday())
	if now.Weekday() == time.Sunday {
		offset = -6
	}
	return now.AddDate(0, 0, offset).Format(DateLayout)
}

// PhaseTimes derives the three instants of a week: week start (Monday
// 00:00), reveal (Thursday 18:00:00) and read-window end (Sunday 23:59:59),
// all in loc.
func PhaseTimes(weekStart string, loc *time.Location) (mon, reveal, sunEnd time.Time, err error) {
	day, err := time.ParseInLocation(DateLayout, weekStart, loc)
	if err != nil {
		return time.Time{}, time.Time{}, time.Time{}, fmt.Errorf("invalid week start %q: %w", weekStart, err)
	}

	mon = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	thu := mon.AddDate(0, 0, revealWeekdayOffset)
	reveal = time.Date(thu.Year(), thu.Month(), thu.Day(), revealHour, 0, 0, 0, loc)

	sun := mon.AddDate(0, 0, 6)
	sunEnd = time.Date(sun.Year(), sun.Month(), sun.Day(), 23, 59, 59, 0, loc)

	return mon, reveal, sunEnd, nil
}

// CurrentPhase reports the phase of the round identified by weekStart at
// the instant now. The boundary instant (exactly Thursday 18:00:00.000) is
// already PhaseReveal.
func CurrentPhase(weekStart string, now time.Time) (Phase, error) {
	_, reveal, _, err := PhaseTimes(weekStart, now.Location())
	if err != nil {
		return "", err
	}
	if now.Before(reveal) {
		return PhaseAnswering, nil
	}
	return PhaseReveal, nil
}

// DailyRevealAt returns the reveal instant of a daily question: 20:00 on
// the question's calendar day in loc.
func DailyRevealAt(qdate string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, qdate, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid question date %q: %w", qdate, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), dailyRevealHour, 0, 0, 0, loc), nil
}
