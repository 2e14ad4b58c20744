// Package catalog is the read-only product list served by the listing and
// detail endpoints.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Product struct {
	ID       int               `yaml:"id" json:"id"`
	Name     string            `yaml:"name" json:"name"`
	Category string            `yaml:"category" json:"category"`
	Price    float64           `yaml:"price" json:"price"`
	Images   []string          `yaml:"images" json:"images"`
	Tabs     map[string]string `yaml:"tabs" json:"tabs,omitempty"`
}

// Snapshot returns the fields a cart line keeps for display and pricing.
func (p Product) Snapshot() map[string]any {
	images := make([]any, len(p.Images))
	for i, img := range p.Images {
		images[i] = img
	}
	return map[string]any{
		"id":       p.ID,
		"name":     p.Name,
		"category": p.Category,
		"price":    p.Price,
		"images":   images,
	}
}

// TabNames lists the product's tabs in a stable order.
func (p Product) TabNames() []string {
	names := make([]string, 0, len(p.Tabs))
	for name := range p.Tabs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type file struct {
	Products []Product `yaml:"products"`
}

// Catalog is immutable after loading and safe for concurrent use.
type Catalog struct {
	products []Product
	byID     map[int]int
}

// Load reads a YAML catalog from path, or the built-in catalog when path is
// empty.
func Load(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
		}
		data = b
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(f.Products)
}

// New builds a catalog, rejecting non-positive or duplicate ids.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	for _, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("catalog: product %q has invalid id %d", p.Name, p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) Get(id int) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Filter returns the products in any of categories, in catalog order. No
// categories means every product.
func (c *Catalog) Filter(categories []string) []Product {
	if len(categories) == 0 {
		return append([]Product(nil), c.products...)
	}
	want := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		want[cat] = struct{}{}
	}
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if _, ok := want[p.Category]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range c.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
