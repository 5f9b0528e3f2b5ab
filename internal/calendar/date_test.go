package calendar_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rangecal/internal/calendar"
)

func TestNewDateNormalizes(t *testing.T) {
	t.Parallel()

	require.Equal(t, calendar.Date{Year: 2024, Month: time.March, Day: 1}, calendar.NewDate(2024, time.February, 30))
	require.Equal(t, calendar.Date{Year: 2023, Month: time.December, Day: 31}, calendar.NewDate(2024, time.January, 0))
}

func TestFromTimeUsesOwnLocation(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)
	instant := time.Date(2024, time.January, 10, 20, 0, 0, 0, time.UTC)

	require.Equal(t, calendar.NewDate(2024, time.January, 10), calendar.FromTime(instant))
	require.Equal(t, calendar.NewDate(2024, time.January, 11), calendar.FromTime(instant.In(tokyo)))
}

func TestCompare(t *testing.T) {
	t.Parallel()

	a := calendar.NewDate(2023, time.December, 31)
	b := calendar.NewDate(2024, time.January, 1)

	require.True(t, a.Before(b))
	require.True(t, b.After(a))
	require.Equal(t, 0, a.Compare(a))
	require.True(t, a.Equal(calendar.NewDate(2023, time.December, 31)))
	require.Equal(t, -1, calendar.NewDate(2024, time.January, 1).Compare(calendar.NewDate(2024, time.February, 1)))
	require.Equal(t, 1, calendar.NewDate(2024, time.January, 2).Compare(calendar.NewDate(2024, time.January, 1)))
}

func TestParse(t *testing.T) {
	t.Parallel()

	d, err := calendar.ParseDate("2024-01-10")
	require.NoError(t, err)
	require.Equal(t, calendar.NewDate(2024, time.January, 10), d)
	require.Equal(t, "2024-01-10", d.String())
	require.Equal(t, 3, d.ISOWeekday())

	m, err := calendar.ParseMonth("2024-02")
	require.NoError(t, err)
	require.Equal(t, calendar.NewDate(2024, time.February, 1), m)
	require.Equal(t, "2024-02", m.MonthString())
	require.Equal(t, 29, m.DaysInMonth())

	_, err = calendar.ParseDate("2024-13-01")
	require.ErrorIs(t, err, calendar.ErrInvalidDate)
	_, err = calendar.ParseMonth("nope")
	require.ErrorIs(t, err, calendar.ErrInvalidDate)
}

func TestDateJSON(t *testing.T) {
	t.Parallel()

	var got struct {
		Date calendar.Date `json:"date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-01-15"}`), &got))
	require.Equal(t, calendar.NewDate(2024, time.January, 15), got.Date)

	out, err := json.Marshal(got)
	require.NoError(t, err)
	require.JSONEq(t, `{"date":"2024-01-15"}`, string(out))

	require.Error(t, json.Unmarshal([]byte(`{"date":"15/01/2024"}`), &got))
}
