package urlstate

import "testing"

func TestTabBinding(t *testing.T) {
	h := NewHistory("")
	store := New("", h)
	tab := NewTabBinding(store, "", "description")

	if tab.Param() != "tab" {
		t.Errorf("Param() = %q, want default tab param", tab.Param())
	}
	if got := tab.Current(); got != "description" {
		t.Errorf("Current() with no param = %q", got)
	}

	tab.Set("reviews")
	if got := tab.Current(); got != "reviews" {
		t.Errorf("Current() after Set = %q", got)
	}

	tab.Set("")
	if !tab.IsSet() {
		t.Error("empty tab should still be present in the query")
	}
	if got := tab.Current(); got != "description" {
		t.Errorf("empty tab should fall back to default, got %q", got)
	}
	if h.Current() != "tab=" {
		t.Errorf("query after empty Set = %q", h.Current())
	}

	tab.Clear()
	if tab.IsSet() {
		t.Error("Clear should remove the parameter")
	}
	if h.Current() != "" {
		t.Errorf("query after Clear = %q", h.Current())
	}
}
