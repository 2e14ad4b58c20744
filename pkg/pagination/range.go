package pagination

import (
	"encoding/json"
	"fmt"
)

// EllipsisMarker is how an ellipsis entry is encoded in JSON.
const EllipsisMarker = "..."

// Entry is one slot of the page-number display: a page, or an ellipsis
// standing for an elided run of pages.
type Entry struct {
	Page int
}

// Ellipsis is the elided-run marker.
var Ellipsis = Entry{}

func (e Entry) IsEllipsis() bool {
	return e.Page == 0
}

func (e Entry) String() string {
	if e.IsEllipsis() {
		return EllipsisMarker
	}
	return fmt.Sprint(e.Page)
}

func (e Entry) MarshalJSON() ([]byte, error) {
	if e.IsEllipsis() {
		return json.Marshal(EllipsisMarker)
	}
	return json.Marshal(e.Page)
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var page int
	if err := json.Unmarshal(data, &page); err == nil {
		if page < 1 {
			return fmt.Errorf("pagination: invalid page %d", page)
		}
		e.Page = page
		return nil
	}
	var marker string
	if err := json.Unmarshal(data, &marker); err != nil || marker != EllipsisMarker {
		return fmt.Errorf("pagination: invalid range entry %s", data)
	}
	*e = Ellipsis
	return nil
}

// Range builds the display sequence for current out of totalPages. The first
// and last pages are always present, plus siblings pages on each side of
// current. A one-page gap shows that page; a longer gap collapses into one
// ellipsis. There is nothing to show when totalPages <= 1.
func Range(current, totalPages, siblings int) []Entry {
	if totalPages <= 1 {
		return []Entry{}
	}
	if siblings < 0 {
		siblings = 0
	}
	current = clamp(current, 1, totalPages)

	pages := []int{1}
	for p := max(current-siblings, 2); p <= min(current+siblings, totalPages-1); p++ {
		pages = append(pages, p)
	}
	pages = append(pages, totalPages)

	out := make([]Entry, 0, len(pages)+2)
	prev := 0
	for _, p := range pages {
		if prev > 0 {
			switch gap := p - prev; {
			case gap == 2:
				out = append(out, Entry{Page: prev + 1})
			case gap > 2:
				out = append(out, Ellipsis)
			}
		}
		out = append(out, Entry{Page: p})
		prev = p
	}
	return out
}
