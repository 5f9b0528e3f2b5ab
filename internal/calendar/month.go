package calendar

import (
	"fmt"

	"github.com/teambition/rrule-go"

	"rangecal/internal/locale"
	appLog "rangecal/internal/log"
)

// MonthOffset selects the month relative to an anchor. Navigation only ever
// moves one month at a time.
type MonthOffset int

const (
	Previous MonthOffset = -1
	Current  MonthOffset = 0
	Next     MonthOffset = 1
)

// ClampOffset maps any step to Previous, Current or Next by its sign.
func ClampOffset(step int) MonthOffset {
	return MonthOffset(sign(step))
}

// DatesForMonth returns every day of the month anchor.Month+offset in
// ascending order, day 1 first. Adjacent-month padding is left to the
// renderer. The result does not depend on the local time zone.
func DatesForMonth(anchor Date, offset MonthOffset) []Date {
	first := anchor.MonthOf(int(offset))
	n := first.DaysInMonth()

	// A month is a DAILY recurrence from its first to its last day.
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: first.Time(),
		Until:   first.AddDays(n - 1).Time(),
	})
	if err != nil {
		appLog.Error("calendar: daily rule rejected, stepping days directly", err, "month", first.MonthString())
		return stepDays(first, n)
	}

	occurrences := r.All()
	out := make([]Date, 0, len(occurrences))
	for _, t := range occurrences {
		out = append(out, FromTime(t))
	}
	return out
}

func stepDays(first Date, n int) []Date {
	out := make([]Date, n)
	for i := range out {
		out[i] = first.AddDays(i)
	}
	return out
}

// ColumnOf returns the 1-based grid column of d for the given week start.
//
//   - Monday:   the ISO weekday.
//   - Sunday:   Sunday is 1, Monday is 7, Tuesday..Saturday keep 2..6.
//   - Saturday: Saturday 1, Sunday 2, Monday..Friday 3..7.
func ColumnOf(d Date, ws locale.WeekStart) int {
	return columnOfWeekday(d.ISOWeekday(), ws)
}

func columnOfWeekday(iso int, ws locale.WeekStart) int {
	switch ws {
	case locale.Sunday:
		switch iso {
		case 7:
			return 1
		case 1:
			return 7
		default:
			return iso
		}
	case locale.Saturday:
		if iso >= 6 {
			return iso - 5
		}
		return iso + 2
	default:
		return iso
	}
}

// DefaultWeekdayLabels are short English names, Monday first.
var DefaultWeekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeekdayLabels places Monday-first labels into grid column order, using the
// same mapping as ColumnOf so the header always lines up with the dates.
func WeekdayLabels(ws locale.WeekStart, mondayFirst [7]string) [7]string {
	var out [7]string
	for iso := 1; iso <= 7; iso++ {
		out[columnOfWeekday(iso, ws)-1] = mondayFirst[iso-1]
	}
	return out
}

// MonthLabel renders the header caption, e.g. "January 2024".
func MonthLabel(d Date) string {
	return fmt.Sprintf("%s %d", d.Month, d.Year)
}
