package urlstate

import "sync"

// HistoryMode selects how a parameter change lands in the browser history.
type HistoryMode int

const (
	// Replace overwrites the current history entry so pagination and tab
	// changes do not pile up behind the back button.
	Replace HistoryMode = iota
	// Push adds a new history entry.
	Push
)

func (m HistoryMode) String() string {
	switch m {
	case Push:
		return "push"
	default:
		return "replace"
	}
}

// ParseHistoryMode maps "push" to Push and anything else to Replace.
func ParseHistoryMode(s string) HistoryMode {
	if s == "push" {
		return Push
	}
	return Replace
}

// Navigator applies a committed query string to the location.
type Navigator interface {
	Navigate(query string, mode HistoryMode)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(query string, mode HistoryMode)

func (f NavigatorFunc) Navigate(query string, mode HistoryMode) {
	f(query, mode)
}

// History is an in-memory session history.
type History struct {
	mu          sync.Mutex
	entries     []string
	index       int
	navigations int
}

func NewHistory(initial string) *History {
	return &History{entries: []string{initial}}
}

func (h *History) Navigate(query string, mode HistoryMode) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.navigations++
	if mode == Push {
		h.entries = append(h.entries[:h.index+1], query)
		h.index++
		return
	}
	h.entries[h.index] = query
}

// Current returns the query of the active entry.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Len returns the number of entries up to and including the active one.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index + 1
}

// Navigations counts Navigate calls.
func (h *History) Navigations() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.navigations
}

// Back moves to the previous entry.
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 {
		return h.entries[0], false
	}
	h.index--
	return h.entries[h.index], true
}
