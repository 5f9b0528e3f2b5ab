// Package picker implements the two-click range selection of a month grid.
//
// A Picker owns its month cursor, selection and hover state. It is not safe
// for concurrent use; callers serving several goroutines wrap it in their own
// lock. No operation fails: every input is an already valid calendar.Date.
package picker

import (
	"time"

	"rangecal/internal/calendar"
	"rangecal/internal/locale"
)

// State is the phase of the click protocol.
type State int

const (
	Empty State = iota
	StartOnly
	Range
)

func (s State) String() string {
	switch s {
	case StartOnly:
		return "start_only"
	case Range:
		return "range"
	default:
		return "empty"
	}
}

// Selection is a snapshot of the click state. End is set only in Range and
// may be before Start: the second click is stored as given.
type Selection struct {
	State State
	Start calendar.Date
	End   calendar.Date
}

// Cell is one rendered day. Date is the stable identity of the cell.
type Cell struct {
	Date   calendar.Date
	Day    int
	Column int
	Tags   Tags
}

// Clock reports the current instant; the picker derives "today" from it.
type Clock func() time.Time

type Option func(*Picker)

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(p *Picker) {
		if c != nil {
			p.now = c
		}
	}
}

// WithLocale sets the locale tag the week start is resolved from.
func WithLocale(tag string) Option {
	return func(p *Picker) { p.locale = tag }
}

// WithAnchor sets the initial month cursor; any day of the month will do.
func WithAnchor(d calendar.Date) Option {
	return func(p *Picker) { p.anchor = d }
}

// WithOnDateClicked registers a callback invoked once for every Click.
func WithOnDateClicked(fn func(calendar.Date)) Option {
	return func(p *Picker) { p.onDateClicked = fn }
}

// WithWeekdayLabels overrides the header labels. They are given in display
// order and bypass week-start reordering entirely.
func WithWeekdayLabels(labels [7]string) Option {
	return func(p *Picker) {
		p.labels = labels
		p.labelsOverride = true
	}
}

type Picker struct {
	now           Clock
	locale        string
	weekStart     locale.WeekStart
	anchor        calendar.Date
	onDateClicked func(calendar.Date)

	labels         [7]string
	labelsOverride bool

	sel     Selection
	hovered *calendar.Date
}

// New returns a picker with an empty selection. Without WithLocale the
// locale is locale.DefaultLocale; without WithAnchor the cursor is today.
func New(opts ...Option) *Picker {
	p := &Picker{
		now:    time.Now,
		locale: locale.DefaultLocale,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.weekStart = locale.Resolve(p.locale)
	if p.anchor.IsZero() {
		p.anchor = p.today()
	}
	p.anchor = p.anchor.MonthOf(0)
	return p
}

func (p *Picker) today() calendar.Date {
	return calendar.FromTime(p.now())
}

// Click advances the selection: Empty -> StartOnly(d) -> Range(start, d) ->
// Empty. A click on a completed range only clears it; d does not become a
// new start.
func (p *Picker) Click(d calendar.Date) {
	switch p.sel.State {
	case Empty:
		p.sel = Selection{State: StartOnly, Start: d}
	case StartOnly:
		p.sel = Selection{State: Range, Start: p.sel.Start, End: d}
	default:
		p.sel = Selection{}
	}
	if p.onDateClicked != nil {
		p.onDateClicked(d)
	}
}

// HoverEnter records d as hovered unless another date is already hovered.
// Repeated enter events for the same date are harmless.
func (p *Picker) HoverEnter(d calendar.Date) {
	if p.hovered == nil || *p.hovered == d {
		p.hovered = &d
	}
}

// HoverLeave clears the hover when the pointer leaves the hovered date.
func (p *Picker) HoverLeave(d calendar.Date) {
	if p.hovered != nil && *p.hovered == d {
		p.hovered = nil
	}
}

// Navigate moves the month cursor one month back or forward.
func (p *Picker) Navigate(offset calendar.MonthOffset) {
	p.anchor = p.anchor.MonthOf(int(calendar.ClampOffset(int(offset))))
}

// SetAnchor resynchronizes the month cursor with an externally chosen month.
func (p *Picker) SetAnchor(d calendar.Date) {
	p.anchor = d.MonthOf(0)
}

func (p *Picker) Selection() Selection        { return p.sel }
func (p *Picker) Month() calendar.Date        { return p.anchor }
func (p *Picker) Locale() string              { return p.locale }
func (p *Picker) WeekStart() locale.WeekStart { return p.weekStart }

func (p *Picker) Hovered() (calendar.Date, bool) {
	if p.hovered == nil {
		return calendar.Date{}, false
	}
	return *p.hovered, true
}

// NormalizedRange returns a committed range in chronological order.
func (p *Picker) NormalizedRange() (start, end calendar.Date, ok bool) {
	if p.sel.State != Range {
		return calendar.Date{}, calendar.Date{}, false
	}
	start, end = p.sel.Start, p.sel.End
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, true
}

// TagsFor computes the visual state of d from the current selection, hover
// and today. The column is not a tag; see ColumnOf.
func (p *Picker) TagsFor(d calendar.Date) Tags {
	var tags Tags

	if d == p.today() {
		tags = tags.With(TagToday)
	}

	switch p.sel.State {
	case StartOnly:
		start := p.sel.Start
		if d == start {
			tags = tags.With(TagSelectionStart)
		}
		if p.hovered != nil && start.Before(*p.hovered) {
			hovered := *p.hovered
			if d == hovered {
				tags = tags.With(TagSelectionEnd)
			}
			if start.Before(d) && d.Before(hovered) {
				tags = tags.With(TagSelection)
			}
		}
	case Range:
		start, end := p.sel.Start, p.sel.End
		if d == start {
			tags = tags.With(TagSelectionStart)
		}
		if d == end {
			tags = tags.With(TagSelectionEnd)
		}
		if start.Before(d) && d.Before(end) {
			tags = tags.With(TagSelection)
		}
	}

	return tags
}

// ColumnOf returns d's grid column under this picker's week start.
func (p *Picker) ColumnOf(d calendar.Date) int {
	return calendar.ColumnOf(d, p.weekStart)
}

// Cells returns the current month's days with their columns and tags.
func (p *Picker) Cells() []Cell {
	dates := calendar.DatesForMonth(p.anchor, calendar.Current)
	cells := make([]Cell, len(dates))
	for i, d := range dates {
		cells[i] = Cell{
			Date:   d,
			Day:    d.Day,
			Column: p.ColumnOf(d),
			Tags:   p.TagsFor(d),
		}
	}
	return cells
}

// WeekdayLabels returns the header labels in column order.
func (p *Picker) WeekdayLabels() [7]string {
	if p.labelsOverride {
		return p.labels
	}
	return calendar.WeekdayLabels(p.weekStart, calendar.DefaultWeekdayLabels)
}

// MonthLabel is the caption for the current month, e.g. "January 2024".
func (p *Picker) MonthLabel() string {
	return calendar.MonthLabel(p.anchor)
}
