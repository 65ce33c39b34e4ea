package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// DateLayout is the ISO date format used for every roster date
const DateLayout = "2006-01-02"

var weekdayCodes = map[string]time.Weekday{
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
	"SU": time.Sunday,
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// ParseWeekday converts a two letter rrule day code (e.g. "SA") to a time.Weekday
func ParseWeekday(code string) (time.Weekday, error) {
	wd, ok := weekdayCodes[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday code %q", code)
	}
	return wd, nil
}

// UpcomingDates returns count consecutive occurrences of weekday formatted as YYYY-MM-DD.
// The first date is today if today falls on weekday, otherwise the next occurrence.
// "Today" is the calendar date of now in now's own location.
func UpcomingDates(now time.Time, weekday time.Weekday, count int) ([]string, error) {
	if count <= 0 {
		return []string{}, nil
	}

	byDay, ok := rruleWeekdays[weekday]
	if !ok {
		return nil, fmt.Errorf("unknown weekday %d", weekday)
	}

	// Work on the calendar date only so the time of day and zone offset can't shift it
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{byDay},
		Dtstart:   today,
		Count:     count,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build weekly rule: %w", err)
	}

	occurrences := rule.All()
	dates := make([]string, len(occurrences))
	for i, d := range occurrences {
		dates[i] = d.Format(DateLayout)
	}
	return dates, nil
}

// IsValidDate reports whether s is a YYYY-MM-DD calendar date
func IsValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
