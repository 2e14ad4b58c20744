package urlstate

// DefaultTabParam is the query parameter a TabBinding uses when none is given.
const DefaultTabParam = "tab"

// TabBinding binds one string parameter to a tab selection with a fallback.
type TabBinding struct {
	store      *Store
	param      string
	defaultTab string
}

func NewTabBinding(store *Store, param, defaultTab string) *TabBinding {
	if param == "" {
		param = DefaultTabParam
	}
	return &TabBinding{store: store, param: param, defaultTab: defaultTab}
}

// Current returns the stored tab, or the default when the parameter is
// absent or empty.
func (t *TabBinding) Current() string {
	if v, ok := t.store.Get(t.param); ok && v != "" {
		return v
	}
	return t.defaultTab
}

// IsSet reports whether the parameter is present, even if empty.
func (t *TabBinding) IsSet() bool {
	_, ok := t.store.Get(t.param)
	return ok
}

// Set writes tab verbatim; an empty string is kept as an empty parameter.
func (t *TabBinding) Set(tab string) {
	t.store.Set(t.param, String(tab))
}

// Clear removes the parameter.
func (t *TabBinding) Clear() {
	t.store.Set(t.param, Null())
}

func (t *TabBinding) Param() string {
	return t.param
}
