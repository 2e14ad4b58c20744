// Package pagination derives page state from an item count and the page
// number kept in the query string.
package pagination

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Payphone-Digital/storefront/pkg/urlstate"
)

const (
	DefaultItemsPerPage = 9
	DefaultSiblings     = 1
	DefaultParam        = "page"
)

// State is the derived pagination view for one render.
type State struct {
	CurrentPage  int     `json:"current_page"`
	TotalPages   int     `json:"total_pages"`
	TotalItems   int     `json:"total_items"`
	ItemsPerPage int     `json:"items_per_page"`
	StartIndex   int     `json:"start_index"`
	EndIndex     int     `json:"end_index"`
	Range        []Entry `json:"range"`
}

// Window clamps [StartIndex, EndIndex) to a collection of length n so callers
// can slice without bounds checks.
func (s State) Window(n int) (start, end int) {
	start, end = s.StartIndex, s.EndIndex
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	return start, end
}

// Paginator binds an item count to the page parameter of a urlstate.Store.
type Paginator struct {
	params       *urlstate.Store
	totalItems   int
	itemsPerPage int
	siblings     int
	param        string
}

type Option func(*Paginator)

func WithItemsPerPage(n int) Option {
	return func(p *Paginator) {
		if n > 0 {
			p.itemsPerPage = n
		}
	}
}

// WithSiblings sets how many pages are shown on each side of the current one.
func WithSiblings(n int) Option {
	return func(p *Paginator) {
		if n >= 0 {
			p.siblings = n
		}
	}
}

func WithParam(name string) Option {
	return func(p *Paginator) {
		if name != "" {
			p.param = name
		}
	}
}

func New(params *urlstate.Store, totalItems int, opts ...Option) *Paginator {
	if totalItems < 0 {
		totalItems = 0
	}
	p := &Paginator{
		params:       params,
		totalItems:   totalItems,
		itemsPerPage: DefaultItemsPerPage,
		siblings:     DefaultSiblings,
		param:        DefaultParam,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TotalPages is ceil(totalItems / itemsPerPage).
func (p *Paginator) TotalPages() int {
	return (p.totalItems + p.itemsPerPage - 1) / p.itemsPerPage
}

// Reconcile reads the page parameter, clamps it into range and returns the
// derived state. A stored page outside [1, max(totalPages,1)] is rewritten to
// the clamped value, so a stale bookmark corrects itself.
func (p *Paginator) Reconcile() State {
	raw, ok := p.params.Get(p.param)
	requested := ParsePage(raw, ok)

	totalPages := p.TotalPages()
	current := clamp(requested, 1, max(totalPages, 1))
	if current != requested {
		p.write(current)
	}

	start := (current - 1) * p.itemsPerPage
	return State{
		CurrentPage:  current,
		TotalPages:   totalPages,
		TotalItems:   p.totalItems,
		ItemsPerPage: p.itemsPerPage,
		StartIndex:   start,
		EndIndex:     start + p.itemsPerPage,
		Range:        Range(current, totalPages, p.siblings),
	}
}

// SetPage navigates to page n. Requests outside [1, totalPages] are ignored
// and reported as false; nothing is written.
func (p *Paginator) SetPage(n int) bool {
	if n < 1 || n > p.TotalPages() {
		return false
	}
	p.write(n)
	return true
}

// write stores n, dropping the parameter for the first page so its canonical
// URL carries no page number.
func (p *Paginator) write(n int) {
	if n == 1 {
		p.params.Set(p.param, urlstate.Null())
		return
	}
	p.params.Set(p.param, urlstate.String(strconv.Itoa(n)))
}

// ParsePage reads the leading integer of raw the way browsers' parseInt does
// ("3", " 3", "3abc" are all 3). Missing or non-numeric input yields 1.
// Numbers too large for an int saturate so the caller still sees them as out
// of range.
func ParsePage(raw string, present bool) int {
	if !present {
		return 1
	}
	s := strings.TrimLeft(raw, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 1
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		// Atoi already saturates to the bound matching the sign.
		return n
	}
	if err != nil {
		return 1
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
