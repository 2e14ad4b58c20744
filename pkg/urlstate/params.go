package urlstate

import (
	"net/url"
	"strings"
)

// Params is an ordered multi-map of query parameters. Keys keep the order in
// which they first appeared; values keep their insertion order.
type Params struct {
	keys   []string
	values map[string][]string
}

// ParseQuery parses a raw query string (with or without the leading '?').
// Malformed escapes are kept verbatim instead of failing the whole query, the
// same way browsers treat a hand-edited address bar.
func ParseQuery(raw string) Params {
	p := Params{values: make(map[string][]string)}
	raw = strings.TrimPrefix(raw, "?")
	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key = unescape(key)
		if key == "" {
			continue
		}
		p.add(key, unescape(value))
	}
	return p
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

func (p *Params) add(key, value string) {
	if p.values == nil {
		p.values = make(map[string][]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = append(p.values[key], value)
}

// Get returns the first value for key.
func (p Params) Get(key string) (string, bool) {
	vs := p.values[key]
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// GetAll returns a copy of every value for key, or an empty slice.
func (p Params) GetAll(key string) []string {
	vs := p.values[key]
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}

// Has reports whether key is present.
func (p Params) Has(key string) bool {
	return len(p.values[key]) > 0
}

// Keys returns the keys in order.
func (p Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of distinct keys.
func (p Params) Len() int {
	return len(p.keys)
}

// Replace sets key to exactly values. An empty values slice deletes the key.
// A replaced key keeps its original position.
func (p *Params) Replace(key string, values []string) {
	if len(values) == 0 {
		p.Delete(key)
		return
	}
	if p.values == nil {
		p.values = make(map[string][]string)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	vs := make([]string, len(values))
	copy(vs, values)
	p.values[key] = vs
}

// Delete removes key and all of its values.
func (p *Params) Delete(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i:i], p.keys[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy.
func (p Params) Clone() Params {
	c := Params{
		keys:   make([]string, len(p.keys)),
		values: make(map[string][]string, len(p.values)),
	}
	copy(c.keys, p.keys)
	for k, vs := range p.values {
		c.values[k] = append([]string(nil), vs...)
	}
	return c
}

// Encode renders the params as a query string without the leading '?'.
func (p Params) Encode() string {
	var b strings.Builder
	for _, k := range p.keys {
		for _, v := range p.values[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}
