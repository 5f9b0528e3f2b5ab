package ics

import (
	"errors"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"rangecal/internal/calendar"
	appLog "rangecal/internal/log"
	"rangecal/internal/picker"
)

const productID = "-//rangecal//date range picker//EN"

// ErrNoRange is returned when a picker has no committed range to export.
var ErrNoRange = errors.New("ics: selection is not a committed range")

// ExportOptions controls the generated VEVENT.
type ExportOptions struct {
	// UID of the event. A random UUID is used when empty.
	UID string
	// Summary is the event title; defaults to "Selected dates".
	Summary string
	// Stamp is DTSTAMP; time.Now when zero.
	Stamp time.Time
}

// ExportRange writes a calendar holding one all-day event covering start..end
// inclusive. The pair may be given in either order. DTEND is the day after
// the last selected day, as RFC 5545 requires for all-day events.
func ExportRange(start, end calendar.Date, opts ExportOptions) []byte {
	if end.Before(start) {
		start, end = end, start
	}
	if opts.UID == "" {
		opts.UID = uuid.NewString()
	}
	if opts.Summary == "" {
		opts.Summary = "Selected dates"
	}
	if opts.Stamp.IsZero() {
		opts.Stamp = time.Now()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	ev := cal.AddEvent(opts.UID)
	ev.SetDtStampTime(opts.Stamp.UTC())
	ev.SetSummary(opts.Summary)
	ev.SetAllDayStartAt(start.Time())
	ev.SetAllDayEndAt(end.AddDays(1).Time())

	appLog.Debug("ics export", "uid", opts.UID, "start", start.String(), "end", end.String())
	return []byte(cal.Serialize())
}

// ExportSelection exports the picker's committed range.
func ExportSelection(p *picker.Picker, opts ExportOptions) ([]byte, error) {
	start, end, ok := p.NormalizedRange()
	if !ok {
		return nil, ErrNoRange
	}
	return ExportRange(start, end, opts), nil
}
