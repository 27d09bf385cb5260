package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GOMI-PAYMENTS-INC/credot-api/internal/core/domain"
)

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSettlementDayOffset(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		required int
		holidays []string
		mode     domain.BusinessDayMode
		want     int
	}{
		{
			name:     "weekday start, strict, no holidays",
			start:    "2023-10-30", // Monday
			required: 2,
			mode:     domain.ModeStrictBusinessDays,
			want:     2, // Wednesday
		},
		{
			name:     "friday start, strict, weekend skipped",
			start:    "2023-11-03", // Friday
			required: 2,
			mode:     domain.ModeStrictBusinessDays,
			want:     4, // Tuesday
		},
		{
			name:     "friday start, strict, weekend and substitute monday skipped",
			start:    "2023-11-03",
			required: 2,
			holidays: []string{"2023-11-06"},
			mode:     domain.ModeStrictBusinessDays,
			want:     5, // Wednesday
		},
		{
			name:     "friday start, safe landing, weekend burns a day",
			start:    "2023-11-03",
			required: 2,
			mode:     domain.ModeCalendarSafeLanding,
			want:     3, // Saturday counts, Sunday is the held-back last day, lands Monday
		},
		{
			name:     "friday start, safe landing, substitute monday and tuesday push landing",
			start:    "2023-11-03",
			required: 2,
			holidays: []string{"2023-11-06", "2023-11-07"},
			mode:     domain.ModeCalendarSafeLanding,
			want:     5, // lands Wednesday
		},
		{
			name:     "one required day lands on next business day",
			start:    "2023-11-03",
			required: 1,
			mode:     domain.ModeStrictBusinessDays,
			want:     3, // Monday
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			holidays := make([]time.Time, 0, len(tt.holidays))
			for _, h := range tt.holidays {
				holidays = append(holidays, date(h))
			}
			got := domain.SettlementDayOffset(date(tt.start), tt.required, domain.NewHolidaySet(holidays), tt.mode)
			assert.Equal(t, tt.want, got)

			// the landing day must always be a business day
			landing := date(tt.start).AddDate(0, 0, got)
			assert.True(t, domain.IsBusinessDay(landing, domain.NewHolidaySet(holidays)))
		})
	}
}

func TestDaysBetweenExclusiveEnd(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want int
	}{
		{name: "one day apart", from: "2023-10-31", to: "2023-11-01", want: 1},
		{name: "same day", from: "2023-10-31", to: "2023-10-31", want: 0},
		{name: "from after to", from: "2023-11-02", to: "2023-11-01", want: 0},
		{name: "across a week", from: "2023-11-01", to: "2023-11-08", want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DaysBetweenExclusiveEnd(date(tt.from), date(tt.to))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHolidaySet_Contains(t *testing.T) {
	set := domain.NewHolidaySet([]time.Time{date("2023-11-06")})

	assert.True(t, set.Contains(date("2023-11-06")))
	assert.False(t, set.Contains(date("2023-11-07")))
	// time-of-day does not matter
	assert.True(t, set.Contains(date("2023-11-06").Add(15*time.Hour)))
}
