package ics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rangecal/internal/calendar"
	"rangecal/internal/ics"
	"rangecal/internal/picker"
)

var stamp = time.Date(2024, time.January, 1, 8, 30, 0, 0, time.UTC)

func TestExportRange(t *testing.T) {
	t.Parallel()

	start := calendar.NewDate(2024, time.January, 10)
	end := calendar.NewDate(2024, time.January, 15)

	body := string(ics.ExportRange(start, end, ics.ExportOptions{UID: "range-1", Stamp: stamp}))

	require.Contains(t, body, "BEGIN:VCALENDAR")
	require.Contains(t, body, "METHOD:PUBLISH")
	require.Contains(t, body, "UID:range-1")
	require.Contains(t, body, "SUMMARY:Selected dates")
	require.Contains(t, body, "DTSTART;VALUE=DATE:20240110")
	require.Contains(t, body, "DTEND;VALUE=DATE:20240116")

	// Reversed input produces the same event.
	reversed := string(ics.ExportRange(end, start, ics.ExportOptions{UID: "range-1", Stamp: stamp}))
	require.Equal(t, body, reversed)
}

func TestExportRangeDefaultUID(t *testing.T) {
	t.Parallel()

	d := calendar.NewDate(2024, time.March, 3)
	a := string(ics.ExportRange(d, d, ics.ExportOptions{Stamp: stamp}))
	b := string(ics.ExportRange(d, d, ics.ExportOptions{Stamp: stamp}))
	require.NotEqual(t, a, b)
}

func TestExportSelection(t *testing.T) {
	t.Parallel()

	p := picker.New(picker.WithAnchor(calendar.NewDate(2024, time.February, 1)))

	_, err := ics.ExportSelection(p, ics.ExportOptions{})
	require.ErrorIs(t, err, ics.ErrNoRange)

	p.Click(calendar.NewDate(2024, time.February, 27))
	_, err = ics.ExportSelection(p, ics.ExportOptions{})
	require.ErrorIs(t, err, ics.ErrNoRange)

	p.Click(calendar.NewDate(2024, time.February, 20))
	body, err := ics.ExportSelection(p, ics.ExportOptions{UID: "sel", Summary: "Trip", Stamp: stamp})
	require.NoError(t, err)
	require.Contains(t, string(body), "SUMMARY:Trip")

	start, end, err := ics.ParseRange(body)
	require.NoError(t, err)
	require.Equal(t, calendar.NewDate(2024, time.February, 20), start)
	require.Equal(t, calendar.NewDate(2024, time.February, 27), end)
}

func TestParseRange(t *testing.T) {
	t.Parallel()

	const feed = "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//test//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:timed\r\n" +
		"DTSTAMP:20240101T000000Z\r\n" +
		"DTSTART:20240105T090000Z\r\n" +
		"DTEND:20240105T100000Z\r\n" +
		"END:VEVENT\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:single\r\n" +
		"DTSTAMP:20240101T000000Z\r\n" +
		"DTSTART;VALUE=DATE:20240220\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	start, end, err := ics.ParseRange([]byte(feed))
	require.NoError(t, err)
	require.Equal(t, calendar.NewDate(2024, time.February, 20), start)
	require.Equal(t, start, end)
}

func TestParseRangeErrors(t *testing.T) {
	t.Parallel()

	_, _, err := ics.ParseRange(nil)
	require.Error(t, err)

	const timedOnly = "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//test//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:timed\r\n" +
		"DTSTAMP:20240101T000000Z\r\n" +
		"DTSTART:20240105T090000Z\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"

	_, _, err = ics.ParseRange([]byte(timedOnly))
	require.ErrorIs(t, err, ics.ErrNoEvent)
}
