package picker

import "strings"

// Tag is one visual state of a date cell. Tags combine freely; a cell may be
// both "today" and "selection-start", for example.
type Tag uint8

const (
	TagToday Tag = 1 << iota
	TagSelectionStart
	TagSelectionEnd
	TagSelection
)

// Tags is a set of Tag values.
type Tags uint8

var tagNames = []struct {
	tag  Tag
	name string
}{
	{TagToday, "today"},
	{TagSelectionStart, "selection-start"},
	{TagSelectionEnd, "selection-end"},
	{TagSelection, "selection"},
}

func (t Tag) String() string {
	for _, tn := range tagNames {
		if tn.tag == t {
			return tn.name
		}
	}
	return "unknown"
}

func (ts Tags) Has(t Tag) bool {
	return ts&Tags(t) != 0
}

func (ts Tags) With(t Tag) Tags {
	return ts | Tags(t)
}

// Names lists the set members in a fixed order.
func (ts Tags) Names() []string {
	out := make([]string, 0, len(tagNames))
	for _, tn := range tagNames {
		if ts.Has(tn.tag) {
			out = append(out, tn.name)
		}
	}
	return out
}

func (ts Tags) String() string {
	return strings.Join(ts.Names(), " ")
}
