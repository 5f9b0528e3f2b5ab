package web

import (
	"strconv"
	"strings"

	"rangecal/internal/model"
	"rangecal/internal/picker"
)

// buildView snapshots p for rendering. Callers hold the session lock.
func buildView(id string, p *picker.Picker) model.PickerView {
	month := p.Month()
	labels := p.WeekdayLabels()

	v := model.PickerView{
		ID:            id,
		Locale:        p.Locale(),
		WeekStart:     p.WeekStart().String(),
		Month:         month.MonthString(),
		PrevMonth:     month.MonthOf(-1).MonthString(),
		NextMonth:     month.MonthOf(1).MonthString(),
		MonthLabel:    p.MonthLabel(),
		WeekdayLabels: labels[:],
		Selection:     selectionView(p.Selection()),
	}

	if h, ok := p.Hovered(); ok {
		v.Hovered = h.String()
	}

	cells := p.Cells()
	v.Cells = make([]model.Cell, len(cells))
	for i, c := range cells {
		v.Cells[i] = model.Cell{
			Date:    c.Date.String(),
			Day:     c.Day,
			Column:  c.Column,
			Tags:    c.Tags.Names(),
			Classes: cellClasses(c),
		}
	}
	return v
}

func selectionView(s picker.Selection) model.Selection {
	out := model.Selection{State: s.State.String()}
	switch s.State {
	case picker.StartOnly:
		out.Start = s.Start.String()
	case picker.Range:
		out.Start = s.Start.String()
		out.End = s.End.String()
	}
	return out
}

// cellClasses maps a cell to its stylesheet classes. Tag names double as
// class names.
func cellClasses(c picker.Cell) string {
	var b strings.Builder
	b.WriteString("day grid-column-")
	b.WriteString(strconv.Itoa(c.Column))
	for _, name := range c.Tags.Names() {
		b.WriteByte(' ')
		b.WriteString(name)
	}
	return b.String()
}
