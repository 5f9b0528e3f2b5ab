package model

// PickerView is the JSON/HTML representation of one picker at a point in
// time. It is recomputed from the picker on every state change.
type PickerView struct {
	ID     string `json:"id"`
	Locale string `json:"locale"`
	// WeekStart is "monday", "sunday" or "saturday".
	WeekStart string `json:"week_start"`

	// Month is the displayed month as "2006-01"; Prev/Next are its neighbours
	// for navigation links.
	Month      string `json:"month"`
	PrevMonth  string `json:"prev_month"`
	NextMonth  string `json:"next_month"`
	MonthLabel string `json:"month_label"`

	WeekdayLabels []string `json:"weekday_labels"`
	Cells         []Cell   `json:"cells"`

	Selection Selection `json:"selection"`
	Hovered   string    `json:"hovered,omitempty"`
}

// Cell represents a single day of the grid. Date ("2006-01-02") identifies
// the cell across renders.
type Cell struct {
	Date   string   `json:"date"`
	Day    int      `json:"day"`
	Column int      `json:"column"`
	Tags   []string `json:"tags"`

	// Classes is the CSS class list derived from Column and Tags,
	// e.g. "day grid-column-3 today selection-start".
	Classes string `json:"classes"`
}

// Selection mirrors the click state: "empty", "start_only" or "range".
// End may be earlier than Start; see the picker package.
type Selection struct {
	State string `json:"state"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}
