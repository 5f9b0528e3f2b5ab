package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	ical "github.com/arran4/golang-ical"

	"rangecal/internal/calendar"
	appLog "rangecal/internal/log"
)

// ErrNoEvent is returned when a payload holds no usable all-day VEVENT.
var ErrNoEvent = errors.New("ics: no all-day event found")

// ParseRange reads the first all-day VEVENT of body and returns the inclusive
// day range it covers. Timed events are skipped. A missing DTEND means a
// single day.
func ParseRange(body []byte) (start, end calendar.Date, err error) {
	if len(body) == 0 {
		return calendar.Date{}, calendar.Date{}, errors.New("ics: empty body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return calendar.Date{}, calendar.Date{}, fmt.Errorf("ics: parse: %w", err)
	}

	for _, ve := range cal.Events() {
		if !isAllDay(ve) {
			continue
		}

		s, serr := ve.GetAllDayStartAt()
		if serr != nil {
			appLog.Error("ics vevent skipped", serr, "property", "DTSTART")
			continue
		}
		start = calendar.FromTime(s)
		end = start

		if ve.GetProperty(ical.ComponentPropertyDtEnd) != nil {
			e, eerr := ve.GetAllDayEndAt()
			if eerr != nil {
				appLog.Error("ics vevent skipped", eerr, "property", "DTEND")
				continue
			}
			// DTEND is exclusive.
			if last := calendar.FromTime(e).AddDays(-1); last.After(start) {
				end = last
			}
		}
		return start, end, nil
	}

	return calendar.Date{}, calendar.Date{}, ErrNoEvent
}

// isAllDay reports whether DTSTART carries VALUE=DATE or a bare YYYYMMDD value.
func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}
