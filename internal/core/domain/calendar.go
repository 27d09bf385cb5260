package domain

import "time"

// BusinessDayMode selects how required settlement days are walked forward.
type BusinessDayMode string

const (
	// ModeStrictBusinessDays counts only weekdays that are not substitute
	// holidays against the required days.
	ModeStrictBusinessDays BusinessDayMode = "STRICT"
	// ModeCalendarSafeLanding counts weekends and holidays against the
	// required days too, except for the final remaining day: the walk keeps
	// going until it lands on a business day.
	ModeCalendarSafeLanding BusinessDayMode = "CALENDAR_SAFE_LANDING"
)

// HolidaySet is a lookup of substitute holidays keyed by YYYY-MM-DD.
type HolidaySet map[string]struct{}

// NewHolidaySet builds a HolidaySet from a list of dates.
func NewHolidaySet(dates []time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[d.Format(DateLayout)] = struct{}{}
	}
	return set
}

// Contains reports whether the date is a listed substitute holiday.
func (h HolidaySet) Contains(t time.Time) bool {
	_, ok := h[t.Format(DateLayout)]
	return ok
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBusinessDay reports whether t is a weekday that is not a substitute
// holiday.
func IsBusinessDay(t time.Time, holidays HolidaySet) bool {
	return !isWeekend(t) && !holidays.Contains(t)
}

// SettlementDayOffset walks forward from start one calendar day at a time
// until requiredDays settlement days have elapsed under the given mode, and
// returns the calendar-day offset of the landing day. The landing day is
// always a business day. Callers add the offset to start to obtain the date.
func SettlementDayOffset(start time.Time, requiredDays int, holidays HolidaySet, mode BusinessDayMode) int {
	left := requiredDays
	offset := 0

	for left > 0 {
		offset++
		next := start.AddDate(0, 0, offset)
		if isWeekend(next) || holidays.Contains(next) {
			// Safe-landing mode burns the day off anyway, unless it is the
			// last one: the final day must land on a business day.
			if mode == ModeCalendarSafeLanding && left > 1 {
				left--
			}
			continue
		}
		left--
	}

	return offset
}

// DaysBetweenExclusiveEnd counts whole calendar days from from's date up to,
// but not including, to's date. Returns 0 when from is on or after to's date.
func DaysBetweenExclusiveEnd(from, to time.Time) int {
	cur := DateOf(from)
	end := DateOf(to)
	days := 0
	for cur.Before(end) {
		days++
		cur = cur.AddDate(0, 0, 1)
	}
	return days
}
